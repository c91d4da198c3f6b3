package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// UsageError reports conflicting or missing batch-mode input sources. It is
// surfaced before any connection is opened and maps to a distinct exit
// code.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

// ReadBatchSource resolves the batch SQL text from exactly one of: the
// inline --sql argument, a file path, or piped standard input. More than
// one source is a usage error; no source at all returns empty text, which
// callers treat as a request for the interactive shell.
func ReadBatchSource(inline, path string, stdin *os.File) (string, error) {
	stdinText, err := readStdin(stdin)
	if err != nil {
		return "", err
	}

	sources := 0
	for _, s := range []string{inline, path, stdinText} {
		if s != "" {
			sources++
		}
	}
	if sources > 1 {
		return "", &UsageError{"SQL request should be supplied from only one of: --sql, --file, stdin. Multiple are specified"}
	}

	if path != "" {
		return readSQLFile(path)
	}
	if inline != "" {
		return inline, nil
	}
	return stdinText, nil
}

// readStdin drains piped input; an attached terminal yields empty text.
func readStdin(stdin *os.File) (string, error) {
	if stdin == nil || isTerminal(stdin) {
		return "", nil
	}

	raw, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read from stdin: %w", err)
	}
	return string(raw), nil
}

// readSQLFile reads a SQL script, transparently decompressing
// zstd-compressed files by extension.
func readSQLFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".zst") || strings.HasSuffix(path, ".zstd") {
		decoder, err := zstd.NewReader(f)
		if err != nil {
			return "", fmt.Errorf("failed to open zstd file %s: %w", path, err)
		}
		defer decoder.Close()
		reader = decoder
	}

	raw, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(raw), nil
}
