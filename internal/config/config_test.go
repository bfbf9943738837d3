package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	return &Config{
		Notebooks:   NotebooksConfig{Directories: []string{"flashcards"}},
		Scheduler:   SchedulerConfig{Policy: "classic"},
		Annotations: AnnotationsConfig{Encoding: "tagged"},
		Outputs:     OutputsConfig{DeckDirectory: "outputs"},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     3306,
			Database: "recurrence",
			Username: "user",
		},
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		useExplicitPath   bool
		env               map[string]string
		wantErr           bool
		want              func() *Config
		wantErrorContains []string
	}{
		{
			name: "valid config file with custom values",
			configContent: `notebooks:
  directories:
    - vault/flashcards
    - vault/japanese
scheduler:
  policy: accelerated
  location: Asia/Tokyo
annotations:
  encoding: compact
outputs:
  deck_directory: custom/outputs
database:
  enabled: true
  host: db.example.com
  port: 3307
`,
			env: map[string]string{"RECURRENCE_DB_PASSWORD": "secret"},
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Notebooks.Directories = []string{"vault/flashcards", "vault/japanese"}
				cfg.Scheduler = SchedulerConfig{Policy: "accelerated", Location: "Asia/Tokyo"}
				cfg.Annotations.Encoding = "compact"
				cfg.Outputs.DeckDirectory = "custom/outputs"
				cfg.Database.Enabled = true
				cfg.Database.Host = "db.example.com"
				cfg.Database.Port = 3307
				cfg.Database.Password = "secret"
				return cfg
			},
		},
		{
			name: "invalid YAML format",
			configContent: `notebooks:
  directories: [
  invalid yaml format here [[[
`,
			wantErr: true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
		{
			name: "unknown keys use defaults",
			configContent: `wrong_key:
  some_value: test
`,
			want: defaultConfig,
		},
		{
			name:          "no config file uses defaults",
			configContent: "",
			want:          defaultConfig,
		},
		{
			name: "explicit config file path",
			configContent: `notebooks:
  directories:
    - explicit/flashcards
`,
			useExplicitPath: true,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Notebooks.Directories = []string{"explicit/flashcards"}
				return cfg
			},
		},
		{
			name: "unknown policy",
			configContent: `scheduler:
  policy: leitner
`,
			wantErr:           true,
			wantErrorContains: []string{"invalid configuration", "policy must be one of [classic accelerated]"},
		},
		{
			name: "unknown encoding",
			configContent: `annotations:
  encoding: binary
`,
			wantErr:           true,
			wantErrorContains: []string{"encoding must be one of [tagged compact]"},
		},
		{
			name: "unknown time zone",
			configContent: `scheduler:
  location: Mars/Olympus
`,
			wantErr:           true,
			wantErrorContains: []string{"invalid configuration", "scheduler.location must be an IANA time zone"},
		},
		{
			name: "missing deck template",
			configContent: `templates:
  deck_template: /nonexistent/deck.md.go.tmpl
`,
			wantErr:           true,
			wantErrorContains: []string{"deck_template must be an existing and readable file"},
		},
		{
			name: "enabled database without a host",
			configContent: `database:
  enabled: true
  host: ""
`,
			wantErr:           true,
			wantErrorContains: []string{"database.host is required when the database is enabled"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			t.Setenv("RECURRENCE_DB_PASSWORD", "")
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			var configPath string
			if tt.useExplicitPath {
				configPath = filepath.Join(tempDir, "recurrence.yml")
				require.NoError(t, os.WriteFile(configPath, []byte(tt.configContent), 0644))
			} else {
				if tt.configContent != "" {
					require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(tt.configContent), 0644))
				}
				t.Chdir(tempDir)
			}

			got, err := Load(configPath)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want(), got)
		})
	}
}

func TestSchedulerConfig_LoadLocation(t *testing.T) {
	location, err := SchedulerConfig{}.LoadLocation()
	require.NoError(t, err)
	assert.Equal(t, time.Local, location)

	location, err = SchedulerConfig{Location: "Asia/Tokyo"}.LoadLocation()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", location.String())

	_, err = SchedulerConfig{Location: "Mars/Olympus"}.LoadLocation()
	assert.Error(t, err)
}
