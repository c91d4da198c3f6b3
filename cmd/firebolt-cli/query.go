package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"firebolt-cli/pkg/cli"
	"firebolt-cli/pkg/fb"
)

var (
	querySQL  string
	queryFile string
	queryCSV  bool

	flagClientID    string
	flagAccountName string
	flagDatabase    string
	flagEngine      string
	flagAPIEndpoint string
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Execute SQL queries",
	Long: `Execute SQL statements against a Firebolt engine.

With --sql, --file or piped standard input the statements run in batch
mode and the command exits. Without any of them an interactive shell is
started.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd.Context())
	},
}

func init() {
	queryCmd.Flags().StringVar(&querySQL, "sql", "", "SQL statements to execute")
	queryCmd.Flags().StringVarP(&queryFile, "file", "f", "", "Path to a file with SQL statements (.zst files are decompressed)")
	queryCmd.Flags().BoolVar(&queryCSV, "csv", false, "Print query results in CSV format")

	addConnectionFlags(queryCmd)
}

// addConnectionFlags registers the shared connection parameter overrides,
// inherited by any subcommands.
func addConnectionFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&flagClientID, "client-id", "", "Service account client ID")
	f.StringVar(&flagAccountName, "account-name", "", "Firebolt account name")
	f.StringVar(&flagDatabase, "database-name", "", "Database to connect to")
	f.StringVar(&flagEngine, "engine-name", "", "Engine name or endpoint URL")
	f.StringVar(&flagAPIEndpoint, "api-endpoint", "", "Management API endpoint")
	f.MarkHidden("api-endpoint")
}

func resolveConfig() (*fb.Config, error) {
	return cli.ResolveConfig(fb.Config{
		ClientID:    flagClientID,
		AccountName: flagAccountName,
		Database:    flagDatabase,
		Engine:      flagEngine,
		APIEndpoint: flagAPIEndpoint,
	})
}

// requireConnectionParams rejects an invocation with missing credentials
// before any network traffic happens.
func requireConnectionParams(cfg *fb.Config, needDatabase bool) error {
	var missing []string
	if cfg.ClientID == "" {
		missing = append(missing, "client-id")
	}
	if cfg.ClientSecret == "" {
		missing = append(missing, "client-secret")
	}
	if cfg.AccountName == "" {
		missing = append(missing, "account-name")
	}
	if needDatabase && cfg.Database == "" {
		missing = append(missing, "database-name")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing connection parameters: %s. Run firebolt-cli configure to set them up",
			strings.Join(missing, ", "))
	}
	return nil
}

// resolveEngineEndpoint turns the configured engine into a connectable
// endpoint. An empty engine falls back to the database's default engine; a
// bare name is looked up through the management API; anything containing a
// dot is already an endpoint.
func resolveEngineEndpoint(ctx context.Context, cfg *fb.Config) (string, error) {
	if strings.Contains(cfg.Engine, ".") {
		return cfg.Engine, nil
	}

	rm := fb.NewResourceManager(*cfg)
	if cfg.Engine == "" {
		engine, err := rm.DefaultDatabaseEngine(ctx, cfg.Database)
		if err != nil {
			return "", err
		}
		return engine.Endpoint, nil
	}

	engine, err := rm.GetEngine(ctx, cfg.Engine)
	if err != nil {
		return "", err
	}
	return engine.Endpoint, nil
}

func runQuery(ctx context.Context) error {
	text, err := cli.ReadBatchSource(querySQL, queryFile, os.Stdin)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if err := requireConnectionParams(cfg, true); err != nil {
		return err
	}

	endpoint, err := resolveEngineEndpoint(ctx, cfg)
	if err != nil {
		return err
	}
	cfg.Engine = endpoint

	conn, err := fb.Connect(ctx, *cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	cursor, err := conn.Cursor(ctx)
	if err != nil {
		return err
	}
	defer cursor.Close()

	if text != "" {
		return cli.ExecuteAll(cursor, text, queryCSV, os.Stdout)
	}

	// The completion engine reads the catalog on its own cursor so the
	// shell never waits on it.
	completionCursor, err := conn.Cursor(ctx)
	if err != nil {
		return err
	}
	defer completionCursor.Close()

	return cli.RunInteractive(cursor, completionCursor, queryCSV)
}
