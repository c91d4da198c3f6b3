package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
)

// pipeWith returns the read end of a pipe carrying the given text. A pipe
// is not a character device, so readStdin treats it as piped input.
func pipeWith(t *testing.T, text string) *os.File {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.WriteString(text); err != nil {
		t.Fatal(err)
	}
	w.Close()
	t.Cleanup(func() { r.Close() })
	return r
}

func TestReadBatchSource_Inline(t *testing.T) {
	got, err := ReadBatchSource("SELECT 1;", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "SELECT 1;" {
		t.Errorf("got %q", got)
	}
}

func TestReadBatchSource_Stdin(t *testing.T) {
	got, err := ReadBatchSource("", "", pipeWith(t, "SELECT 2;"))
	if err != nil {
		t.Fatal(err)
	}
	if got != "SELECT 2;" {
		t.Errorf("got %q", got)
	}
}

func TestReadBatchSource_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "query.sql")
	if err := os.WriteFile(path, []byte("SELECT 3;"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadBatchSource("", path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "SELECT 3;" {
		t.Errorf("got %q", got)
	}
}

func TestReadBatchSource_ZstdFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "query.sql.zst")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := enc.Write([]byte("SELECT 4;")); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := ReadBatchSource("", path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "SELECT 4;" {
		t.Errorf("got %q", got)
	}
}

func TestReadBatchSource_MissingFile(t *testing.T) {
	_, err := ReadBatchSource("", filepath.Join(t.TempDir(), "absent.sql"), nil)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	var usage *UsageError
	if errors.As(err, &usage) {
		t.Errorf("missing file should not be a usage error: %v", err)
	}
}

func TestReadBatchSource_MultipleSourcesRejected(t *testing.T) {
	tests := []struct {
		name   string
		inline string
		path   string
		piped  string
	}{
		{"sql and file", "SELECT 1;", "query.sql", ""},
		{"sql and stdin", "SELECT 1;", "", "SELECT 2;"},
		{"file and stdin", "", "query.sql", "SELECT 2;"},
		{"all three", "SELECT 1;", "query.sql", "SELECT 2;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdin *os.File
			if tt.piped != "" {
				stdin = pipeWith(t, tt.piped)
			}
			path := tt.path
			if path != "" {
				path = filepath.Join(t.TempDir(), path)
				if err := os.WriteFile(path, []byte("SELECT 3;"), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			_, err := ReadBatchSource(tt.inline, path, stdin)
			var usage *UsageError
			if !errors.As(err, &usage) {
				t.Errorf("want UsageError, got %v", err)
			}
		})
	}
}

func TestReadBatchSource_NoSources(t *testing.T) {
	got, err := ReadBatchSource("", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("got %q, want empty text for the interactive path", got)
	}
}
