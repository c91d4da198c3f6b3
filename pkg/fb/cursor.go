package fb

import (
	"context"
	"database/sql"
	"fmt"

	"firebolt-cli/pkg/sqltext"
)

// Cursor is the execution surface the shell core consumes. Execute runs one
// statement; Description reports the column names of the current result set
// (nil when the statement produced none); FetchAll drains the current
// result set; NextSet advances to the next pending result set of a
// multi-statement round trip.
type Cursor interface {
	Execute(query string) error
	Description() []string
	FetchAll() ([][]string, error)
	NextSet() (bool, error)
	Close() error
}

// SQLCursor adapts a dedicated database/sql connection to the Cursor
// contract. Only one statement is ever in flight per cursor.
type SQLCursor struct {
	conn *sql.Conn
	rows *sql.Rows
	cols []string
}

// NewSQLCursor wraps a dedicated connection in a cursor.
func NewSQLCursor(conn *sql.Conn) *SQLCursor {
	return &SQLCursor{conn: conn}
}

// Execute runs the statement. database/sql forces the query/exec decision
// up front, so data-producing statements go through Query and everything
// else through Exec; for the latter Description stays nil.
func (c *SQLCursor) Execute(query string) error {
	if err := c.reset(); err != nil {
		return err
	}

	ctx := context.Background()
	if !sqltext.ProducesRows(query) {
		_, err := c.conn.ExecContext(ctx, query)
		return err
	}

	rows, err := c.conn.QueryContext(ctx, query)
	if err != nil {
		return err
	}

	cols, err := rows.Columns()
	if err != nil {
		rows.Close()
		return err
	}

	c.rows = rows
	c.cols = cols
	return nil
}

// Description returns the ordered column names of the current result set,
// or nil when there is none.
func (c *SQLCursor) Description() []string {
	return c.cols
}

// FetchAll reads all remaining rows of the current result set as strings.
func (c *SQLCursor) FetchAll() ([][]string, error) {
	if c.rows == nil {
		return nil, fmt.Errorf("no result set to fetch from")
	}

	var all [][]string
	values := make([]interface{}, len(c.cols))
	scanArgs := make([]interface{}, len(values))
	for i := range values {
		scanArgs[i] = &values[i]
	}

	for c.rows.Next() {
		if err := c.rows.Scan(scanArgs...); err != nil {
			return nil, err
		}

		row := make([]string, len(c.cols))
		for i, val := range values {
			switch v := val.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(v)
			default:
				row[i] = fmt.Sprintf("%v", v)
			}
		}
		all = append(all, row)
	}

	return all, c.rows.Err()
}

// NextSet advances to the next pending result set, reporting false when
// none remain.
func (c *SQLCursor) NextSet() (bool, error) {
	if c.rows == nil {
		return false, nil
	}

	if !c.rows.NextResultSet() {
		err := c.rows.Err()
		c.rows.Close()
		c.rows = nil
		c.cols = nil
		return false, err
	}

	cols, err := c.rows.Columns()
	if err != nil {
		return false, err
	}
	c.cols = cols
	return true, nil
}

// Close releases the result set and the underlying connection.
func (c *SQLCursor) Close() error {
	if err := c.reset(); err != nil {
		c.conn.Close()
		return err
	}
	return c.conn.Close()
}

func (c *SQLCursor) reset() error {
	if c.rows == nil {
		return nil
	}
	err := c.rows.Close()
	c.rows = nil
	c.cols = nil
	return err
}
