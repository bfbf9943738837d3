// Package pdf renders markdown documents as PDF.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mandolyte/mdtopdf"
)

// Options controls the page layout of a rendered document.
type Options struct {
	// Landscape turns the pages sideways, which suits wide tables.
	Landscape bool
	Dark      bool
}

// ConvertMarkdownToPDF converts a markdown file to a PDF next to it and returns the PDF path.
func ConvertMarkdownToPDF(markdownPath string, options Options) (string, error) {
	if !strings.HasSuffix(markdownPath, ".md") {
		return "", fmt.Errorf("input file must have .md extension: %s", markdownPath)
	}

	content, err := os.ReadFile(markdownPath)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", markdownPath, err)
	}

	pdfPath := strings.TrimSuffix(markdownPath, ".md") + ".pdf"

	orientation := "P"
	if options.Landscape {
		orientation = "L"
	}
	theme := mdtopdf.LIGHT
	if options.Dark {
		theme = mdtopdf.DARK
	}
	renderer := mdtopdf.NewPdfRenderer(orientation, "A4", pdfPath, "", nil, theme)
	if err := renderer.Process(content); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}
	return absPath, nil
}
