// Package fb talks to the Firebolt backend: a database/sql based cursor for
// statement execution and a thin REST client for the management API.
package fb

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Config carries the resolved connection parameters for one invocation.
type Config struct {
	ClientID     string
	ClientSecret string
	AccountName  string
	Database     string
	Engine       string // engine name or endpoint URL
	APIEndpoint  string
}

// Connection owns the pooled database handle for one session.
type Connection struct {
	db *sql.DB
}

// BuildDSN builds the connection string for an engine endpoint. The
// endpoint may carry an explicit port, otherwise the default 5432 is used.
func BuildDSN(clientID, clientSecret, endpoint, database string) string {
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "postgres://")
	if !strings.Contains(endpoint, ":") {
		endpoint += ":5432"
	}

	return fmt.Sprintf("postgres://%s:%s@%s/%s",
		url.QueryEscape(clientID), url.QueryEscape(clientSecret), endpoint, url.PathEscape(database))
}

// Connect opens and verifies a connection to the engine endpoint named in
// the config.
func Connect(ctx context.Context, cfg Config) (*Connection, error) {
	dsn := BuildDSN(cfg.ClientID, cfg.ClientSecret, cfg.Engine, cfg.Database)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to engine %s: %w", cfg.Engine, err)
	}

	return &Connection{db: db}, nil
}

// Cursor checks out a dedicated connection wrapped in a cursor. Callers own
// the returned cursor and must Close it.
func (c *Connection) Cursor(ctx context.Context) (*SQLCursor, error) {
	conn, err := c.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return NewSQLCursor(conn), nil
}

// Close shuts down the connection pool.
func (c *Connection) Close() error {
	return c.db.Close()
}
