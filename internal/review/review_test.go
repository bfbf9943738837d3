package review

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/recurrence/internal/annotation"
	"github.com/at-ishikawa/recurrence/internal/document"
	"github.com/at-ishikawa/recurrence/internal/notebook"
)

// memoryStore keeps documents in a map.
type memoryStore struct {
	files map[string]string
}

func newMemoryStore(files map[string]string) *memoryStore {
	return &memoryStore{files: files}
}

func (s *memoryStore) Read(path string) (string, error) {
	text, ok := s.files[path]
	if !ok {
		return "", fmt.Errorf("%s: %w", path, os.ErrNotExist)
	}
	return text, nil
}

func (s *memoryStore) ReplaceLine(path, oldLine, newLine string) error {
	replaced, err := document.Replace(s.files[path], oldLine, newLine)
	if err != nil {
		return err
	}
	s.files[path] = replaced
	return nil
}

type fixedFloat float64

func (f fixedFloat) Float64() float64 {
	return float64(f)
}

// sequence returns its values in turn, then 0.
type sequence struct {
	values []int
}

func (s *sequence) Intn(n int) int {
	if len(s.values) == 0 {
		return 0
	}
	value := s.values[0]
	s.values = s.values[1:]
	return value % n
}

func newTestCodec(t *testing.T, encoding annotation.Encoding) *annotation.Codec {
	t.Helper()
	codec, err := annotation.NewCodec(encoding, time.UTC)
	require.NoError(t, err)
	return codec
}

// newTestScheduler uses the classic policy without fuzz.
func newTestScheduler() *notebook.Scheduler {
	return notebook.NewScheduler(notebook.ClassicPolicy, fixedFloat(0.5), time.UTC)
}

func date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}
