// Package document reads notes from disk and writes rewritten lines back.
package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrLineNotFound is returned when the line to replace is no longer in the document.
var ErrLineNotFound = errors.New("line not found in document")

// Replace replaces the first whole-line occurrence of oldLine in text.
func Replace(text, oldLine, newLine string) (string, error) {
	if oldLine == "" {
		return text, ErrLineNotFound
	}
	for from := 0; from <= len(text); {
		offset := strings.Index(text[from:], oldLine)
		if offset < 0 {
			break
		}
		start := from + offset
		end := start + len(oldLine)
		if isLineStart(text, start) && isLineEnd(text, end) {
			return text[:start] + newLine + text[end:], nil
		}
		from = start + 1
	}
	return text, ErrLineNotFound
}

func isLineStart(text string, i int) bool {
	return i == 0 || text[i-1] == '\n'
}

func isLineEnd(text string, i int) bool {
	return i == len(text) || text[i] == '\n' || text[i] == '\r'
}

// Store is where documents live.
type Store interface {
	Read(path string) (string, error)
	// ReplaceLine rewrites one line, failing with ErrLineNotFound if it is gone.
	ReplaceLine(path, oldLine, newLine string) error
}

// FileStore keeps documents as files on the local filesystem.
type FileStore struct{}

func NewFileStore() *FileStore {
	return &FileStore{}
}

func (s *FileStore) Read(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	return string(content), nil
}

func (s *FileStore) ReplaceLine(path, oldLine, newLine string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("os.Stat(%s) > %w", path, err)
	}
	text, err := s.Read(path)
	if err != nil {
		return err
	}

	replaced, err := Replace(text, oldLine, newLine)
	if err != nil {
		return fmt.Errorf("Replace(%s) > %w", path, err)
	}
	if replaced == text {
		return nil
	}
	if err := os.WriteFile(path, []byte(replaced), info.Mode().Perm()); err != nil {
		return fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}
	return nil
}

// FindMarkdownFiles returns the .md files under the directories, sorted.
// Hidden directories such as .obsidian and .git are skipped.
func FindMarkdownFiles(directories []string) ([]string, error) {
	var paths []string
	for _, directory := range directories {
		if directory == "" {
			continue
		}
		err := filepath.WalkDir(directory, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				if path != directory && strings.HasPrefix(entry.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) == ".md" {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("filepath.WalkDir(%s) > %w", directory, err)
		}
	}
	sort.Strings(paths)
	return paths, nil
}
