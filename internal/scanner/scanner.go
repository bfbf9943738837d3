// Package scanner finds term/definition lines in a markdown document.
//
// Lines are read in order by a small state machine. Obsidian comments (%%…%%) and HTML
// comments may span lines, front matter is skipped when the document opens with it, and
// any other --- ends the scan. Review state is kept in %%sr…%% comments, which are
// reported separately instead of being stripped.
package scanner

import "strings"

// State is the scanner state carried from one line to the next.
type State int

const (
	StateNormal State = iota
	StateInPercentComment
	StateInHTMLComment
	StateInFrontMatter
	StateHalted
)

func (s State) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateInPercentComment:
		return "in-percent-comment"
	case StateInHTMLComment:
		return "in-html-comment"
	case StateInFrontMatter:
		return "in-front-matter"
	case StateHalted:
		return "halted"
	}
	return "unknown"
}

const (
	percentDelimiter   = "%%"
	annotationOpening  = "%%sr"
	htmlCommentOpening = "<!--"
	htmlCommentClosing = "-->"
	frontMatter        = "---"
	escape             = '\\'
)

// Annotation is a %%sr…%% span; Start and End are byte offsets in the line.
type Annotation struct {
	Text       string
	Start, End int
}

// Candidate is a line that looks like a term/definition pair.
type Candidate struct {
	// LineNumber is 1-based.
	LineNumber int
	// Line is the raw line without its line ending.
	Line string
	// Content is the line with comments and annotations removed, trimmed.
	Content     string
	Term        string
	Definition  string
	DoubleSided bool
	Annotations []Annotation
	// ContentEnd is the byte offset in Line where a trailing unclosed comment or a
	// halting --- begins, or len(Line). Review state must be written before it.
	ContentEnd int
}

// AnnotationTexts returns the annotation spans in order.
func (c Candidate) AnnotationTexts() []string {
	texts := make([]string, 0, len(c.Annotations))
	for _, annotation := range c.Annotations {
		texts = append(texts, annotation.Text)
	}
	return texts
}

type Scanner struct {
	state      State
	lineNumber int
}

func New() *Scanner {
	return &Scanner{state: StateNormal}
}

// State is the state the next line starts in.
func (s *Scanner) State() State {
	return s.state
}

// Scan returns the candidates of a whole document in line order.
func Scan(text string) []Candidate {
	s := New()
	var candidates []Candidate
	for _, line := range strings.Split(text, "\n") {
		if s.State() == StateHalted {
			break
		}
		if candidate, ok := s.ScanLine(line); ok {
			candidates = append(candidates, candidate)
		}
	}
	return candidates
}

// ScanLine consumes the next line of the document.
func (s *Scanner) ScanLine(line string) (Candidate, bool) {
	line = strings.TrimSuffix(line, "\r")
	s.lineNumber++

	switch s.state {
	case StateHalted:
		return Candidate{}, false
	case StateInFrontMatter:
		if strings.TrimSpace(line) == frontMatter {
			s.state = StateNormal
		}
		return Candidate{}, false
	}
	if s.lineNumber == 1 && strings.TrimSpace(line) == frontMatter {
		s.state = StateInFrontMatter
		return Candidate{}, false
	}

	content, annotations, contentEnd := s.strip(line)
	content = strings.TrimSpace(content)
	if content == "" {
		return Candidate{}, false
	}

	index, width := findDivider(content)
	if index < 0 {
		return Candidate{}, false
	}
	term := strings.TrimSpace(content[:index])
	definition := strings.TrimSpace(content[index+width:])
	if term == "" || definition == "" {
		return Candidate{}, false
	}

	return Candidate{
		LineNumber:  s.lineNumber,
		Line:        line,
		Content:     content,
		Term:        term,
		Definition:  definition,
		DoubleSided: width == 2,
		Annotations: annotations,
		ContentEnd:  contentEnd,
	}, true
}

// strip walks the line, removing comments and collecting annotations.
// Escape sequences are copied into the content untouched. The returned offset is where the
// live part of the line stops: an unclosed trailing comment, a halting ---, or the line end.
func (s *Scanner) strip(line string) (string, []Annotation, int) {
	var builder strings.Builder
	var annotations []Annotation
	opened := -1
	finish := func() (string, []Annotation, int) {
		end := len(line)
		if opened >= 0 {
			end = opened
		}
		return builder.String(), annotations, end
	}

	i := 0
	for i < len(line) {
		switch s.state {
		case StateInPercentComment:
			closing := findUnescaped(line, i, percentDelimiter)
			if closing < 0 {
				return finish()
			}
			i = closing + len(percentDelimiter)
			s.state = StateNormal
			opened = -1
			continue
		case StateInHTMLComment:
			closing := strings.Index(line[i:], htmlCommentClosing)
			if closing < 0 {
				return finish()
			}
			i += closing + len(htmlCommentClosing)
			s.state = StateNormal
			opened = -1
			continue
		case StateHalted:
			return finish()
		}

		rest := line[i:]
		switch {
		case rest[0] == escape && len(rest) > 1:
			builder.WriteString(rest[:2])
			i += 2
		case strings.HasPrefix(rest, annotationOpening):
			closing := findUnescaped(line, i+len(annotationOpening), percentDelimiter)
			if closing < 0 {
				s.state = StateInPercentComment
				opened = i
				i += len(percentDelimiter)
				continue
			}
			end := closing + len(percentDelimiter)
			annotations = append(annotations, Annotation{Text: line[i:end], Start: i, End: end})
			i = end
		case strings.HasPrefix(rest, percentDelimiter):
			s.state = StateInPercentComment
			opened = i
			i += len(percentDelimiter)
		case strings.HasPrefix(rest, htmlCommentOpening):
			s.state = StateInHTMLComment
			opened = i
			i += len(htmlCommentOpening)
		case strings.HasPrefix(rest, frontMatter):
			s.state = StateHalted
			opened = i
		default:
			builder.WriteByte(rest[0])
			i++
		}
	}
	return finish()
}

// findUnescaped returns the index of the first delimiter at or after from
// that is not preceded by an escape, or -1.
func findUnescaped(line string, from int, delimiter string) int {
	for j := from; j < len(line); j++ {
		if line[j] == escape {
			j++
			continue
		}
		if strings.HasPrefix(line[j:], delimiter) {
			return j
		}
	}
	return -1
}

// findDivider locates the first unescaped "::", or failing that the first unescaped ':'.
func findDivider(content string) (index, width int) {
	if i := findUnescaped(content, 0, "::"); i >= 0 {
		return i, 2
	}
	if i := findUnescaped(content, 0, ":"); i >= 0 {
		return i, 1
	}
	return -1, 0
}

// RemoveAnnotations cuts the annotation spans, and the space before each, out of the line.
func RemoveAnnotations(line string, annotations []Annotation) string {
	var builder strings.Builder
	last := 0
	for _, annotation := range annotations {
		start := annotation.Start
		if start > last && line[start-1] == ' ' {
			start--
		}
		builder.WriteString(line[last:start])
		last = annotation.End
	}
	builder.WriteString(line[last:])
	return strings.TrimRight(builder.String(), " \t")
}

// FindAnnotations returns the annotation spans of text, read as the start of a line.
func FindAnnotations(text string) []Annotation {
	_, annotations, _ := New().strip(text)
	return annotations
}
