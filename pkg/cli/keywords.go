package cli

// Keywords is the static keyword list offered by autocompletion regardless
// of backend state.
var Keywords = []string{
	"ALL",
	"ALTER",
	"AND",
	"AS",
	"ASC",
	"BETWEEN",
	"BY",
	"CASE",
	"CAST",
	"CREATE",
	"CROSS",
	"DELETE",
	"DESC",
	"DESCRIBE",
	"DISTINCT",
	"DROP",
	"ELSE",
	"END",
	"EXCEPT",
	"EXISTS",
	"EXPLAIN",
	"EXTERNAL",
	"FALSE",
	"FROM",
	"FULL",
	"GROUP",
	"HAVING",
	"IF",
	"IN",
	"INDEX",
	"INNER",
	"INSERT",
	"INTERSECT",
	"INTO",
	"IS",
	"JOIN",
	"LEFT",
	"LIKE",
	"LIMIT",
	"NOT",
	"NULL",
	"OFFSET",
	"ON",
	"OR",
	"ORDER",
	"OUTER",
	"OVER",
	"PARTITION",
	"PRIMARY",
	"RIGHT",
	"SELECT",
	"SET",
	"SHOW",
	"TABLE",
	"THEN",
	"TRUE",
	"TRUNCATE",
	"UNION",
	"UPDATE",
	"USING",
	"VALUES",
	"VIEW",
	"WHEN",
	"WHERE",
	"WITH",
}
