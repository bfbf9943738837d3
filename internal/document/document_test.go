package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplace(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		oldLine string
		newLine string
		want    string
		wantErr error
	}{
		{
			name:    "replaces a line in the middle",
			text:    "# Animals\ndog:犬\ncat:猫\n",
			oldLine: "dog:犬",
			newLine: "dog:犬 %%sr2025-01-034%%",
			want:    "# Animals\ndog:犬 %%sr2025-01-034%%\ncat:猫\n",
		},
		{
			name:    "replaces the last line without a newline",
			text:    "dog:犬\ncat:猫",
			oldLine: "cat:猫",
			newLine: "cat:猫 %%sr2025-01-034%%",
			want:    "dog:犬\ncat:猫 %%sr2025-01-034%%",
		},
		{
			name:    "keeps CRLF line endings",
			text:    "dog:犬\r\ncat:猫\r\n",
			oldLine: "dog:犬",
			newLine: "dog:犬 %%sr2025-01-034%%",
			want:    "dog:犬 %%sr2025-01-034%%\r\ncat:猫\r\n",
		},
		{
			name:    "skips partial matches",
			text:    "hotdog:ホットドッグ\ndog:犬\n",
			oldLine: "dog:犬",
			newLine: "dog:いぬ",
			want:    "hotdog:ホットドッグ\ndog:いぬ\n",
		},
		{
			name:    "replaces only the first occurrence",
			text:    "dog:犬\ndog:犬\n",
			oldLine: "dog:犬",
			newLine: "dog:いぬ",
			want:    "dog:いぬ\ndog:犬\n",
		},
		{
			name:    "line changed since it was read",
			text:    "dog:犬 %%sr2025-01-034%%\n",
			oldLine: "dog:犬",
			newLine: "dog:犬 %%sr2025-01-057%%",
			want:    "dog:犬 %%sr2025-01-034%%\n",
			wantErr: ErrLineNotFound,
		},
		{
			name:    "empty line",
			text:    "dog:犬\n\n",
			oldLine: "",
			newLine: "x",
			want:    "dog:犬\n\n",
			wantErr: ErrLineNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Replace(tt.text, tt.oldLine, tt.newLine)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileStore_ReplaceLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "animals.md")
	require.NoError(t, os.WriteFile(path, []byte("dog:犬\ncat:猫\n"), 0600))

	store := NewFileStore()
	require.NoError(t, store.ReplaceLine(path, "cat:猫", "cat:猫 %%sr2025-01-034%%"))

	got, err := store.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "dog:犬\ncat:猫 %%sr2025-01-034%%\n", got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	err = store.ReplaceLine(path, "cat:猫", "cat:ねこ")
	assert.ErrorIs(t, err, ErrLineNotFound)

	got, err = store.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "dog:犬\ncat:猫 %%sr2025-01-034%%\n", got)
}

func TestFileStore_MissingFile(t *testing.T) {
	store := NewFileStore()
	_, err := store.Read(filepath.Join(t.TempDir(), "missing.md"))
	assert.Error(t, err)
	assert.Error(t, store.ReplaceLine(filepath.Join(t.TempDir(), "missing.md"), "a", "b"))
}

func TestFindMarkdownFiles(t *testing.T) {
	root := t.TempDir()
	files := []string{
		"flashcards/animals.md",
		"flashcards/japanese/verbs.md",
		"flashcards/notes.txt",
		"flashcards/.obsidian/workspace.md",
		"other/colors.md",
	}
	for _, file := range files {
		path := filepath.Join(root, file)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("a:b"), 0644))
	}

	got, err := FindMarkdownFiles([]string{filepath.Join(root, "flashcards"), filepath.Join(root, "other"), ""})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "flashcards", "animals.md"),
		filepath.Join(root, "flashcards", "japanese", "verbs.md"),
		filepath.Join(root, "other", "colors.md"),
	}, got)

	_, err = FindMarkdownFiles([]string{filepath.Join(root, "missing")})
	assert.Error(t, err)
}
