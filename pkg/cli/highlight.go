package cli

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter renders SQL with ANSI colors for echoing dispatched
// statements in interactive mode.
type Highlighter struct {
	lexer     chroma.Lexer
	formatter chroma.Formatter
	style     *chroma.Style
}

// NewHighlighter builds a highlighter using the Postgres lexer, the dialect
// closest to the backend's SQL.
func NewHighlighter() *Highlighter {
	lexer := lexers.Get("postgres")
	if lexer == nil {
		lexer = lexers.Get("sql")
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	return &Highlighter{lexer: lexer, formatter: formatter, style: style}
}

// Highlight returns the SQL with ANSI color codes, or the input unchanged
// when tokenizing fails.
func (h *Highlighter) Highlight(sql string) string {
	iterator, err := h.lexer.Tokenise(nil, sql)
	if err != nil {
		return sql
	}

	var buf strings.Builder
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return sql
	}
	return buf.String()
}
