package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lpf/internal/tui"
)

var stopCmd = &cobra.Command{
	Use:     "stop [local-port]",
	Aliases: []string{"rm", "remove"},
	Short:   "Stop and remove a configured tunnel by local port",
	Long: `Stop and remove a configured tunnel by local port.

The supervisor process is terminated if it is still running, the
tunnel's pidfile is removed, and the definition is deleted from the
state file. Run without arguments to pick a tunnel interactively.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStop,
}

func init() {
	rootCmd.AddCommand(stopCmd)
}

func runStop(cmd *cobra.Command, args []string) error {
	a, err := getApp()
	if err != nil {
		return err
	}

	var localPort int
	if len(args) == 1 {
		localPort, err = parsePortArg("local-port", args[0])
		if err != nil {
			return err
		}
	} else {
		entries, err := a.Registry.List()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			logInfo("No tunnels are configured.")
			return nil
		}
		entry, err := tui.Pick(entries)
		if err != nil {
			return fmt.Errorf("failed to run tunnel picker: %w", err)
		}
		if entry == nil {
			logInfo("Cancelled")
			return nil
		}
		localPort = entry.Record.LocalPort
	}

	res, err := a.Registry.Stop(context.Background(), localPort)
	if err != nil {
		return err
	}

	if res.Stopped {
		logSuccess("Tunnel %s stopped", res.Record.ID())
	} else {
		logInfo("Tunnel %s was already inactive; removed", res.Record.ID())
	}
	return nil
}
