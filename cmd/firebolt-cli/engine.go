package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"firebolt-cli/pkg/cli"
	"firebolt-cli/pkg/fb"
)

const (
	engineStatusRunning = "ENGINE_STATUS_RUNNING_REVISION_SERVING"
	engineStatusStopped = "ENGINE_STATUS_STOPPED"

	enginePollInterval = 5 * time.Second
	engineWaitTimeout  = 30 * time.Minute
)

var (
	engineJSON         bool
	engineWait         bool
	engineNameContains string
)

var engineCmd = &cobra.Command{
	Use:   "engine",
	Short: "Manage Firebolt engines",
}

var engineListCmd = &cobra.Command{
	Use:   "list",
	Short: "List engines in the account",
	RunE: func(cmd *cobra.Command, args []string) error {
		rm, err := newResourceManager()
		if err != nil {
			return err
		}

		engines, err := rm.ListEngines(cmd.Context(), engineNameContains)
		if err != nil {
			return err
		}

		if engineJSON {
			return printJSON(engines)
		}

		rows := make([][]string, 0, len(engines))
		for _, e := range engines {
			rows = append(rows, []string{e.Name, e.Status, e.Region, e.AttachedToDB})
		}
		fmt.Println(cli.FormatGrid([]string{"name", "status", "region", "attached_to"}, rows))
		return nil
	},
}

var engineStartCmd = &cobra.Command{
	Use:   "start <engine>",
	Short: "Start an engine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rm, err := newResourceManager()
		if err != nil {
			return err
		}

		engine, err := rm.StartEngine(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if engineWait {
			engine, err = waitForEngineStatus(cmd.Context(), rm, args[0], engineStatusRunning)
			if err != nil {
				return err
			}
		}

		fmt.Printf("Engine %s status: %s\n", engine.Name, engine.Status)
		return nil
	},
}

var engineStopCmd = &cobra.Command{
	Use:   "stop <engine>",
	Short: "Stop an engine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rm, err := newResourceManager()
		if err != nil {
			return err
		}

		engine, err := rm.StopEngine(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if engineWait {
			engine, err = waitForEngineStatus(cmd.Context(), rm, args[0], engineStatusStopped)
			if err != nil {
				return err
			}
		}

		fmt.Printf("Engine %s status: %s\n", engine.Name, engine.Status)
		return nil
	},
}

var engineStatusCmd = &cobra.Command{
	Use:   "status <engine>",
	Short: "Show the current status of an engine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rm, err := newResourceManager()
		if err != nil {
			return err
		}

		engine, err := rm.GetEngine(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Engine %s status: %s\n", engine.Name, engine.Status)
		return nil
	},
}

var engineDescribeCmd = &cobra.Command{
	Use:   "describe <engine>",
	Short: "Show an engine's details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rm, err := newResourceManager()
		if err != nil {
			return err
		}

		engine, err := rm.GetEngine(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if engineJSON {
			return printJSON(engine)
		}

		rows := [][]string{
			{"name", engine.Name},
			{"status", engine.Status},
			{"endpoint", engine.Endpoint},
			{"region", engine.Region},
			{"spec", engine.Spec},
			{"attached_to", engine.AttachedToDB},
			{"create_time", engine.CreateTime},
		}
		fmt.Println(cli.FormatGrid([]string{"property", "value"}, rows))
		return nil
	},
}

func init() {
	engineListCmd.Flags().StringVar(&engineNameContains, "name-contains", "", "Only list engines whose name contains this string")
	engineListCmd.Flags().BoolVar(&engineJSON, "json", false, "Print the result as JSON")
	engineDescribeCmd.Flags().BoolVar(&engineJSON, "json", false, "Print the result as JSON")
	engineStartCmd.Flags().BoolVar(&engineWait, "wait", false, "Wait until the engine is running")
	engineStopCmd.Flags().BoolVar(&engineWait, "wait", false, "Wait until the engine is stopped")

	engineCmd.AddCommand(engineListCmd)
	engineCmd.AddCommand(engineStartCmd)
	engineCmd.AddCommand(engineStopCmd)
	engineCmd.AddCommand(engineStatusCmd)
	engineCmd.AddCommand(engineDescribeCmd)

	addConnectionFlags(engineCmd)
}

func newResourceManager() (*fb.ResourceManager, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return nil, err
	}
	if err := requireConnectionParams(cfg, false); err != nil {
		return nil, err
	}
	return fb.NewResourceManager(*cfg), nil
}

// waitForEngineStatus polls the engine until it reaches the wanted status,
// rendering a spinner while it waits.
func waitForEngineStatus(ctx context.Context, rm *fb.ResourceManager, name, want string) (*fb.Engine, error) {
	spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("Waiting for engine %s", name))

	deadline := time.Now().Add(engineWaitTimeout)
	for {
		engine, err := rm.GetEngine(ctx, name)
		if err != nil {
			spinner.Fail(err.Error())
			return nil, err
		}
		if engine.Status == want {
			spinner.Success(fmt.Sprintf("Engine %s is %s", name, engine.Status))
			return engine, nil
		}

		spinner.UpdateText(fmt.Sprintf("Engine %s: %s", name, engine.Status))

		if time.Now().After(deadline) {
			spinner.Fail("timed out")
			return nil, fmt.Errorf("timed out waiting for engine %s to reach %s", name, want)
		}

		select {
		case <-ctx.Done():
			spinner.Fail("interrupted")
			return nil, ctx.Err()
		case <-time.After(enginePollInterval):
		}
	}
}

func printJSON(v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(raw))
	return nil
}
