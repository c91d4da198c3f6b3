// Package sqltext provides lexical helpers for working with raw SQL text:
// splitting a script into individual statements, classifying statements by
// their leading keyword, and compacting statements for display.
//
// Nothing here validates SQL. An unterminated string literal is passed
// through as-is and left for the backend to reject.
package sqltext

import "strings"

// Statement is one syntactically distinct statement extracted from a batch
// of SQL text. Seq is its 1-based position within the batch, Total the
// number of statements in the batch.
type Statement struct {
	Text  string
	Seq   int
	Total int
}

// SplitStatements splits raw SQL text on semicolons into an ordered list of
// statements. Semicolons inside single-quoted strings (with doubled-quote
// and backslash escapes), double-quoted strings, line comments (--) and block comments
// (/* */) are not treated as separators. Delimiting semicolons are removed
// and each statement is whitespace-trimmed; a blank trailing fragment after
// the last semicolon yields no statement.
func SplitStatements(sql string) []Statement {
	var parts []string
	var current strings.Builder

	i := 0
	n := len(sql)

	for i < n {
		ch := sql[i]

		// Line comment, consume until end of line.
		if ch == '-' && i+1 < n && sql[i+1] == '-' {
			for i < n && sql[i] != '\n' {
				current.WriteByte(sql[i])
				i++
			}
			continue
		}

		// Block comment, consume until */.
		if ch == '/' && i+1 < n && sql[i+1] == '*' {
			current.WriteString("/*")
			i += 2
			for i < n {
				if sql[i] == '*' && i+1 < n && sql[i+1] == '/' {
					current.WriteString("*/")
					i += 2
					break
				}
				current.WriteByte(sql[i])
				i++
			}
			continue
		}

		// Single-quoted string. Handles the '' escape and backslash escapes.
		if ch == '\'' {
			current.WriteByte(ch)
			i++
			for i < n {
				if sql[i] == '\'' {
					current.WriteByte(sql[i])
					i++
					if i < n && sql[i] == '\'' {
						current.WriteByte(sql[i])
						i++
						continue
					}
					break
				}
				if sql[i] == '\\' && i+1 < n {
					current.WriteByte(sql[i])
					i++
				}
				current.WriteByte(sql[i])
				i++
			}
			continue
		}

		// Double-quoted string or identifier, "" escapes the quote.
		if ch == '"' {
			current.WriteByte(ch)
			i++
			for i < n {
				if sql[i] == '"' {
					current.WriteByte(sql[i])
					i++
					if i < n && sql[i] == '"' {
						current.WriteByte(sql[i])
						i++
						continue
					}
					break
				}
				current.WriteByte(sql[i])
				i++
			}
			continue
		}

		if ch == ';' {
			if stmt := strings.TrimSpace(current.String()); stmt != "" {
				parts = append(parts, stmt)
			}
			current.Reset()
			i++
			continue
		}

		current.WriteByte(ch)
		i++
	}

	// A trailing fragment without a terminating semicolon is still a statement.
	if stmt := strings.TrimSpace(current.String()); stmt != "" {
		parts = append(parts, stmt)
	}

	statements := make([]Statement, len(parts))
	for idx, text := range parts {
		statements[idx] = Statement{Text: text, Seq: idx + 1, Total: len(parts)}
	}
	return statements
}
