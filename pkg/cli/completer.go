package cli

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/c-bata/go-prompt"

	"firebolt-cli/pkg/fb"
)

// catalogQuery lists every table/column/type triple known to the backend.
const catalogQuery = "SELECT table_name, column_name, data_type FROM information_schema.columns"

// completionDelimiters mark the start of the token currently being typed.
const completionDelimiters = " ,\n);"

// Suggestion is one completion candidate. MatchLen is the number of leading
// characters of Label matched by the current token, for prefix highlighting.
type Suggestion struct {
	Label    string
	Meta     string
	MatchLen int
}

type columnEntry struct {
	Table string
	Name  string
	Type  string
}

// CompletionIndex is an immutable snapshot of known table names, column
// descriptors and the static keyword list. It is built at most once and
// never mutated after publication.
type CompletionIndex struct {
	tables   []string
	columns  []columnEntry
	keywords []string
}

// AutocompleteEngine answers completion queries against the current
// CompletionIndex snapshot. Construction spawns a single background task
// that fetches the catalog once; until it publishes, queries see the
// initial keyword-only index. A failed fetch leaves the engine on that
// initial index permanently, so completion degrades rather than erroring.
type AutocompleteEngine struct {
	index atomic.Pointer[CompletionIndex]
	done  chan struct{}
}

// NewAutocompleteEngine starts the one-shot background catalog fetch on the
// given cursor. The cursor must be dedicated to the engine; it is never
// used again after the fetch completes.
func NewAutocompleteEngine(cursor fb.Cursor) *AutocompleteEngine {
	e := &AutocompleteEngine{done: make(chan struct{})}
	e.index.Store(&CompletionIndex{keywords: Keywords})

	go func() {
		defer close(e.done)
		idx, err := buildIndex(cursor)
		if err != nil {
			// Degrade to keyword-only suggestions.
			return
		}
		e.index.Store(idx)
	}()

	return e
}

// buildIndex runs the catalog query and assembles a complete index. Table
// names keep their case and are deduplicated in first-seen order.
func buildIndex(cursor fb.Cursor) (*CompletionIndex, error) {
	if err := cursor.Execute(catalogQuery); err != nil {
		return nil, err
	}

	rows, err := cursor.FetchAll()
	if err != nil {
		return nil, err
	}

	idx := &CompletionIndex{keywords: Keywords}
	seen := make(map[string]bool)
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		table, column, dataType := row[0], row[1], row[2]

		if !seen[table] {
			seen[table] = true
			idx.tables = append(idx.tables, table)
		}
		idx.columns = append(idx.columns, columnEntry{Table: table, Name: column, Type: dataType})
	}

	return idx, nil
}

// currentToken extracts the token being typed: everything after the
// right-most delimiter in the text before the cursor.
func currentToken(text string) string {
	if i := strings.LastIndexAny(text, completionDelimiters); i >= 0 {
		return text[i+1:]
	}
	return text
}

// Complete returns all candidates whose name starts with the token being
// typed, matched case-insensitively: tables first, then columns, then
// keywords. An empty token yields no suggestions.
func (e *AutocompleteEngine) Complete(textBeforeCursor string) []Suggestion {
	token := currentToken(textBeforeCursor)
	if token == "" {
		return nil
	}

	idx := e.index.Load()
	upper := strings.ToUpper(token)
	matchLen := len(token)

	var out []Suggestion
	for _, table := range idx.tables {
		if strings.HasPrefix(strings.ToUpper(table), upper) {
			out = append(out, Suggestion{Label: table, Meta: "TABLE", MatchLen: matchLen})
		}
	}
	for _, col := range idx.columns {
		if strings.HasPrefix(strings.ToUpper(col.Name), upper) {
			out = append(out, Suggestion{
				Label:    col.Name,
				Meta:     fmt.Sprintf("COLUMN(%s, %s)", col.Type, col.Table),
				MatchLen: matchLen,
			})
		}
	}
	for _, keyword := range idx.keywords {
		if strings.HasPrefix(strings.ToUpper(keyword), upper) {
			out = append(out, Suggestion{Label: keyword, Meta: "KEYWORD", MatchLen: matchLen})
		}
	}

	return out
}

// PromptSuggestions adapts Complete to the go-prompt completer signature.
func (e *AutocompleteEngine) PromptSuggestions(doc prompt.Document) []prompt.Suggest {
	suggestions := e.Complete(doc.TextBeforeCursor())

	out := make([]prompt.Suggest, len(suggestions))
	for i, s := range suggestions {
		out[i] = prompt.Suggest{Text: s.Label, Description: s.Meta}
	}
	return out
}
