package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"firebolt-cli/pkg/cli"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Store connection parameters for future invocations",
	Long: `Prompt for connection parameters and store them. The client secret
goes to the OS keyring, everything else to the config file. An empty
answer keeps the current value.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigure()
	},
}

var configureResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove all stored connection parameters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigureReset()
	},
}

func init() {
	configureCmd.AddCommand(configureResetCmd)
}

func runConfigure() error {
	current, err := cli.ReadConfig()
	if err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	values := map[string]string{}

	prompts := []struct {
		key     string
		label   string
		current string
		secret  bool
	}{
		{"client_id", "Client ID", current.ClientID, false},
		{"client_secret", "Client secret", current.ClientSecret, true},
		{"account_name", "Account name", current.AccountName, false},
		{"database_name", "Database name", current.Database, false},
		{"engine_name", "Engine name or URL", current.Engine, false},
	}

	for _, p := range prompts {
		answer, err := promptValue(reader, p.label, p.current, p.secret)
		if err != nil {
			return err
		}
		if answer != "" {
			values[p.key] = answer
		}
	}

	if err := cli.UpdateConfig(values); err != nil {
		return err
	}

	fmt.Printf("Settings saved to %s\n", cli.ConfigPath())
	return nil
}

// promptValue asks for one parameter, showing the current value as the
// default. Secrets are masked down to the last four characters.
func promptValue(reader *bufio.Reader, label, current string, secret bool) (string, error) {
	shown := current
	if secret && current != "" {
		shown = maskSecret(current)
	}

	if shown != "" {
		fmt.Printf("%s [%s]: ", label, shown)
	} else {
		fmt.Printf("%s: ", label)
	}

	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func maskSecret(value string) string {
	if len(value) <= 4 {
		return "****"
	}
	return "****" + value[len(value)-4:]
}

func runConfigureReset() error {
	// Drop the keyring secret first, then the config file.
	if err := cli.UpdateConfig(map[string]string{"client_secret": ""}); err != nil {
		return err
	}

	if err := os.Remove(cli.ConfigPath()); err != nil && !os.IsNotExist(err) {
		return err
	}

	fmt.Println("Settings removed")
	return nil
}
