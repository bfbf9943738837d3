package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/recurrence/internal/assets"
	"github.com/at-ishikawa/recurrence/internal/pdf"
)

func newPrintCommand() *cobra.Command {
	format := FormatMarkdown
	var all bool
	var pdfOptions pdf.Options

	command := &cobra.Command{
		Use:   "print",
		Short: "Write the due flashcards, or all of them, as a printable deck",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeck()
			if err != nil {
				return err
			}
			cards, err := d.cards()
			if err != nil {
				return err
			}

			now := time.Now()
			title := "Due flashcards"
			if all {
				title = "All flashcards"
			}
			data := assets.NewDeckTemplate(title, cards, now, !all)

			outputDir := d.cfg.Outputs.DeckDirectory
			if err := os.MkdirAll(outputDir, 0755); err != nil {
				return fmt.Errorf("os.MkdirAll(%s) > %w", outputDir, err)
			}
			name := "deck-" + now.Format("2006-01-02")

			var outputPath string
			switch format {
			case FormatHTML:
				outputPath = filepath.Join(outputDir, name+".html")
				err = writeFile(outputPath, func(file *os.File) error {
					return assets.WriteDeckHTML(file, d.cfg.Templates.DeckTemplate, data)
				})
			default:
				outputPath = filepath.Join(outputDir, name+".md")
				err = writeFile(outputPath, func(file *os.File) error {
					return assets.WriteDeck(file, d.cfg.Templates.DeckTemplate, data)
				})
			}
			if err != nil {
				return err
			}

			if format == FormatPDF {
				pdfPath, err := pdf.ConvertMarkdownToPDF(outputPath, pdfOptions)
				if err != nil {
					return fmt.Errorf("pdf.ConvertMarkdownToPDF() > %w", err)
				}
				outputPath = pdfPath
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d flashcards to %s\n", data.Count, outputPath)
			return nil
		},
	}
	flags := command.Flags()
	flags.Var(&format, "format", fmt.Sprintf("Output format. Possible values are %v", allFormats))
	flags.BoolVar(&all, "all", false, "Include flashcards that are not due")
	flags.BoolVar(&pdfOptions.Landscape, "landscape", false, "Landscape pages for the pdf format")
	flags.BoolVar(&pdfOptions.Dark, "dark", false, "Dark theme for the pdf format")

	return command
}

func writeFile(path string, write func(file *os.File) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	if err := write(file); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("file.Close() > %w", err)
	}
	return nil
}
