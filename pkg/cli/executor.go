package cli

import (
	"fmt"
	"io"
	"time"

	"firebolt-cli/pkg/fb"
	"firebolt-cli/pkg/sqltext"
)

// shortStatementLen caps the statement rendering used in status lines.
const shortStatementLen = 80

// ExecuteAll splits the SQL text into statements and runs them in order on
// the cursor. The first failing statement aborts the rest of the batch and
// its error is returned; callers decide whether that ends the invocation
// (batch mode) or just the current buffer (interactive mode). In CSV mode
// success status lines are suppressed so the output stays machine-readable.
func ExecuteAll(cursor fb.Cursor, text string, useCSV bool, out io.Writer) error {
	for _, stmt := range sqltext.SplitStatements(text) {
		if err := executeAndPrint(cursor, stmt, useCSV, out); err != nil {
			return err
		}
	}
	return nil
}

// executeAndPrint runs one statement, emits its status line and renders its
// result sets.
func executeAndPrint(cursor fb.Cursor, stmt sqltext.Statement, useCSV bool, out io.Writer) error {
	short := sqltext.ShortStatement(stmt.Text, shortStatementLen)
	producesRows := sqltext.ProducesRows(stmt.Text)

	start := time.Now()
	if err := cursor.Execute(stmt.Text); err != nil {
		fmt.Fprintf(out, "%sError (%s): %s\n",
			batchPrefix(stmt), FormatTime(time.Since(start).Seconds()), short)
		return err
	}
	elapsed := time.Since(start)

	if !useCSV {
		fmt.Fprintf(out, "%sSuccess (%s): %s\n", batchPrefix(stmt), FormatTime(elapsed.Seconds()), short)
	}

	// Render every pending result set, but only for statements the
	// classifier marked as data-producing.
	for {
		if columns := cursor.Description(); len(columns) > 0 && producesRows {
			rows, err := cursor.FetchAll()
			if err != nil {
				return err
			}
			if useCSV {
				if err := WriteCSV(out, columns, rows); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(out, FormatGrid(columns, rows))
			}
		}

		more, err := cursor.NextSet()
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}

	return nil
}

// batchPrefix returns the "(i/n) " marker, present only for multi-statement
// batches.
func batchPrefix(stmt sqltext.Statement) string {
	if stmt.Total > 1 {
		return fmt.Sprintf("(%d/%d) ", stmt.Seq, stmt.Total)
	}
	return ""
}
