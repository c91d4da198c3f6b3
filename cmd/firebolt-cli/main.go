package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"firebolt-cli/pkg/cli"
)

var rootCmd = &cobra.Command{
	Use:           "firebolt-cli",
	Short:         "Firebolt command-line tool",
	Long:          `A command line client for Firebolt with an interactive SQL shell and resource management commands.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(configureCmd)
	rootCmd.AddCommand(engineCmd)
	rootCmd.AddCommand(databaseCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var usage *cli.UsageError
		if errors.As(err, &usage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
