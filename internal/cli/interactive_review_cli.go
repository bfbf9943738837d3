package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"

	"github.com/at-ishikawa/recurrence/internal/document"
	"github.com/at-ishikawa/recurrence/internal/notebook"
	"github.com/at-ishikawa/recurrence/internal/review"
)

var errEnd = errors.New("end")

// answerKeys maps the accepted inputs to answers
var answerKeys = map[string]notebook.Answer{
	"e":      notebook.AnswerEasy,
	"easy":   notebook.AnswerEasy,
	"m":      notebook.AnswerMedium,
	"medium": notebook.AnswerMedium,
	"h":      notebook.AnswerHard,
	"hard":   notebook.AnswerHard,
	"w":      notebook.AnswerWrong,
	"wrong":  notebook.AnswerWrong,
}

// ReviewSession is the part of review.Session the CLI drives
type ReviewSession interface {
	Next() (*review.Question, error)
	Answer(ctx context.Context, question *review.Question, answer notebook.Answer) error
}

// InteractiveReviewCLI shows due flashcards in the terminal and reads the answers
type InteractiveReviewCLI struct {
	session      ReviewSession
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
	faint        *color.Color
}

func NewInteractiveReviewCLI(session ReviewSession, stdin io.Reader, stdout io.Writer) *InteractiveReviewCLI {
	return &InteractiveReviewCLI{
		session:      session,
		stdinReader:  bufio.NewReader(stdin),
		stdoutWriter: stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
		faint:        color.New(color.Faint),
	}
}

//go:generate mockgen -source=interactive_review_cli.go -destination=../mocks/cli/mock_session.go -package=mock_cli Session

type Session interface {
	Session(context context.Context) error
}

// Run repeats session until it ends, fails or the process is interrupted.
func Run(ctx context.Context, stdout io.Writer, session Session) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := session.Session(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()
	select {
	case <-ctx.Done():
		fmt.Fprintln(stdout, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

// Session asks one flashcard. It returns errEnd when nothing is due or the reviewer quits.
func (cli *InteractiveReviewCLI) Session(ctx context.Context) error {
	question, err := cli.session.Next()
	if errors.Is(err, review.ErrNoDueCards) {
		fmt.Fprintln(cli.stdoutWriter, "No more due cards!")
		return errEnd
	}
	if err != nil {
		return fmt.Errorf("session.Next() > %w", err)
	}

	_, _ = cli.faint.Fprintf(cli.stdoutWriter, "%s, %d left\n", question.Card.Name(), question.Remaining)
	_, _ = cli.bold.Fprintf(cli.stdoutWriter, "%s", question.Flashcard.Front)
	fmt.Fprint(cli.stdoutWriter, "  (press Enter to show the answer, q to quit) ")

	input, err := cli.readLine()
	if err != nil {
		return err
	}
	if input == "q" {
		return errEnd
	}
	fmt.Fprintf(cli.stdoutWriter, "Answer: %s\n", cli.italic.Sprint(question.Flashcard.Back))

	answer, err := cli.readAnswer()
	if err != nil {
		return err
	}

	err = cli.session.Answer(ctx, question, answer)
	switch {
	case errors.Is(err, document.ErrLineNotFound):
		color.New(color.FgYellow).Fprintf(cli.stdoutWriter, "%s:%d changed since it was read and was not updated\n",
			question.Card.Path, question.Card.LineNumber)
	case err != nil:
		color.New(color.FgRed).Fprintf(cli.stdoutWriter, "failed to save the answer: %v\n", err)
	default:
		due := question.Flashcard.Difficulty.DueDate.Format("2006-01-02")
		color.New(color.FgGreen).Fprintf(cli.stdoutWriter, "Next review on %s\n", due)
	}
	fmt.Fprintln(cli.stdoutWriter)
	return nil
}

func (cli *InteractiveReviewCLI) readAnswer() (notebook.Answer, error) {
	for {
		fmt.Fprint(cli.stdoutWriter, "easy (e) / medium (m) / hard (h) / wrong (w) / quit (q): ")
		input, err := cli.readLine()
		if err != nil {
			return "", err
		}
		if input == "q" {
			return "", errEnd
		}
		if answer, ok := answerKeys[input]; ok {
			return answer, nil
		}
	}
}

// readLine returns the next input line, lowercased; the end of input ends the session
func (cli *InteractiveReviewCLI) readLine() (string, error) {
	line, err := cli.stdinReader.ReadString('\n')
	if errors.Is(err, io.EOF) && line == "" {
		return "", errEnd
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}
