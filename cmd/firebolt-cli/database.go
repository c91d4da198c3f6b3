package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"firebolt-cli/pkg/cli"
)

var (
	databaseJSON         bool
	databaseNameContains string
	databaseDescription  string
	databaseRegion       string
	databaseYes          bool
)

var databaseCmd = &cobra.Command{
	Use:   "database",
	Short: "Manage Firebolt databases",
}

var databaseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List databases in the account",
	RunE: func(cmd *cobra.Command, args []string) error {
		rm, err := newResourceManager()
		if err != nil {
			return err
		}

		databases, err := rm.ListDatabases(cmd.Context(), databaseNameContains)
		if err != nil {
			return err
		}

		if databaseJSON {
			return printJSON(databases)
		}

		rows := make([][]string, 0, len(databases))
		for _, db := range databases {
			rows = append(rows, []string{db.Name, db.Region, db.Description})
		}
		fmt.Println(cli.FormatGrid([]string{"name", "region", "description"}, rows))
		return nil
	},
}

var databaseDescribeCmd = &cobra.Command{
	Use:   "describe <database>",
	Short: "Show a database's details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rm, err := newResourceManager()
		if err != nil {
			return err
		}

		db, err := rm.GetDatabase(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if databaseJSON {
			return printJSON(db)
		}

		rows := [][]string{
			{"name", db.Name},
			{"description", db.Description},
			{"region", db.Region},
			{"data_size", fmt.Sprintf("%d", db.DataSize)},
			{"create_time", db.CreateTime},
		}
		fmt.Println(cli.FormatGrid([]string{"property", "value"}, rows))
		return nil
	},
}

var databaseCreateCmd = &cobra.Command{
	Use:   "create <database>",
	Short: "Create a database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rm, err := newResourceManager()
		if err != nil {
			return err
		}

		db, err := rm.CreateDatabase(cmd.Context(), args[0], databaseDescription, databaseRegion)
		if err != nil {
			return err
		}

		fmt.Printf("Database %s created\n", db.Name)
		return nil
	},
}

var databaseDropCmd = &cobra.Command{
	Use:   "drop <database>",
	Short: "Drop a database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if !databaseYes && !confirmDrop(name) {
			fmt.Println("Aborted")
			return nil
		}

		rm, err := newResourceManager()
		if err != nil {
			return err
		}

		if err := rm.DropDatabase(cmd.Context(), name); err != nil {
			return err
		}

		fmt.Printf("Database %s dropped\n", name)
		return nil
	},
}

func init() {
	databaseListCmd.Flags().StringVar(&databaseNameContains, "name-contains", "", "Only list databases whose name contains this string")
	databaseListCmd.Flags().BoolVar(&databaseJSON, "json", false, "Print the result as JSON")
	databaseDescribeCmd.Flags().BoolVar(&databaseJSON, "json", false, "Print the result as JSON")
	databaseCreateCmd.Flags().StringVar(&databaseDescription, "description", "", "Description of the new database")
	databaseCreateCmd.Flags().StringVar(&databaseRegion, "region", "", "Region for the new database")
	databaseDropCmd.Flags().BoolVar(&databaseYes, "yes", false, "Drop without confirmation")

	databaseCmd.AddCommand(databaseListCmd)
	databaseCmd.AddCommand(databaseDescribeCmd)
	databaseCmd.AddCommand(databaseCreateCmd)
	databaseCmd.AddCommand(databaseDropCmd)

	addConnectionFlags(databaseCmd)
}

func confirmDrop(name string) bool {
	fmt.Printf("Drop database %s? [y/N] ", name)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
