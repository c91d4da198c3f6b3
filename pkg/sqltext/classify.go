package sqltext

import "strings"

// rowProducing holds the leading keywords of statements that are expected
// to yield a result set. Anything else (DDL, DML, SET, ...) is assumed not
// to produce rows even if the backend happens to return a result object.
var rowProducing = map[string]bool{
	"SELECT":   true,
	"WITH":     true,
	"SHOW":     true,
	"DESCRIBE": true,
	"EXPLAIN":  true,
}

// ProducesRows reports whether the statement's leading keyword marks it as
// data-producing. The keyword is matched case-insensitively after skipping
// whitespace and leading comments.
func ProducesRows(sql string) bool {
	return rowProducing[strings.ToUpper(LeadingKeyword(sql))]
}

// LeadingKeyword returns the first token of the statement, skipping
// whitespace and line/block comments. Case is preserved.
func LeadingKeyword(sql string) string {
	i := 0
	n := len(sql)

	for i < n {
		switch {
		case sql[i] == ' ' || sql[i] == '\t' || sql[i] == '\n' || sql[i] == '\r':
			i++
		case sql[i] == '-' && i+1 < n && sql[i+1] == '-':
			for i < n && sql[i] != '\n' {
				i++
			}
		case sql[i] == '/' && i+1 < n && sql[i+1] == '*':
			i += 2
			for i < n {
				if sql[i] == '*' && i+1 < n && sql[i+1] == '/' {
					i += 2
					break
				}
				i++
			}
		default:
			start := i
			for i < n && isWordByte(sql[i]) {
				i++
			}
			return sql[start:i]
		}
	}
	return ""
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '_'
}
