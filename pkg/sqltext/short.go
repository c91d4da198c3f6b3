package sqltext

import "strings"

// ShortStatement renders a statement as a single display line: comments are
// stripped, runs of whitespace and newlines collapse to single spaces, and
// anything beyond maxLen characters is truncated with a " ..." marker.
// A non-positive maxLen disables truncation.
func ShortStatement(sql string, maxLen int) string {
	stripped := stripComments(sql)
	compact := strings.Join(strings.Fields(stripped), " ")

	if maxLen > 0 && len(compact) > maxLen {
		return compact[:maxLen] + " ..."
	}
	return compact
}

// stripComments removes line and block comments without touching quoted
// strings.
func stripComments(sql string) string {
	var out strings.Builder
	i := 0
	n := len(sql)

	for i < n {
		ch := sql[i]

		if ch == '-' && i+1 < n && sql[i+1] == '-' {
			for i < n && sql[i] != '\n' {
				i++
			}
			continue
		}

		if ch == '/' && i+1 < n && sql[i+1] == '*' {
			i += 2
			for i < n {
				if sql[i] == '*' && i+1 < n && sql[i+1] == '/' {
					i += 2
					break
				}
				i++
			}
			// Keep the statement tokenized where the comment sat.
			out.WriteByte(' ')
			continue
		}

		if ch == '\'' || ch == '"' {
			quote := ch
			out.WriteByte(ch)
			i++
			for i < n {
				out.WriteByte(sql[i])
				if sql[i] == quote {
					i++
					if i < n && sql[i] == quote {
						out.WriteByte(sql[i])
						i++
						continue
					}
					break
				}
				i++
			}
			continue
		}

		out.WriteByte(ch)
		i++
	}
	return out.String()
}
