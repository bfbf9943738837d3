// Package testutil provides shared test helpers for creating config files and note fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// ConfigOption adds settings to the generated config file.
type ConfigOption func(*configFile)

type configFile struct {
	policy   string
	encoding string
	extra    []string
}

// WithPolicy sets scheduler.policy.
func WithPolicy(policy string) ConfigOption {
	return func(cfg *configFile) {
		cfg.policy = policy
	}
}

// WithEncoding sets annotations.encoding.
func WithEncoding(encoding string) ConfigOption {
	return func(cfg *configFile) {
		cfg.encoding = encoding
	}
}

// WithYAML appends raw YAML sections to the config file.
func WithYAML(section string) ConfigOption {
	return func(cfg *configFile) {
		cfg.extra = append(cfg.extra, section)
	}
}

// SetupTestConfig creates a config file and the notes and output directories under tmpDir.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string, opts ...ConfigOption) string {
	t.Helper()

	cfg := configFile{policy: "classic", encoding: "tagged"}
	for _, opt := range opts {
		opt(&cfg)
	}

	for _, d := range []string{"notes", "decks"} {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`notebooks:
  directories:
    - %s
scheduler:
  policy: %s
  location: UTC
annotations:
  encoding: %s
outputs:
  deck_directory: %s
`,
		filepath.Join(tmpDir, "notes"),
		cfg.policy,
		cfg.encoding,
		filepath.Join(tmpDir, "decks"),
	)
	configContent += strings.Join(cfg.extra, "")

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// CreateNote writes a markdown note under the notes directory of tmpDir and returns its path.
func CreateNote(t *testing.T, tmpDir, name string, lines ...string) string {
	t.Helper()

	path := filepath.Join(tmpDir, "notes", name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))
	return path
}

// ReadNote returns the content of a note written by CreateNote.
func ReadNote(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}
