package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var stopAllCmd = &cobra.Command{
	Use:     "stop-all",
	Aliases: []string{"kill-all", "remove-all"},
	Short:   "Stop all active tunnels",
	Args:    cobra.NoArgs,
	RunE:    runStopAll,
}

func init() {
	rootCmd.AddCommand(stopAllCmd)
}

func runStopAll(cmd *cobra.Command, args []string) error {
	a, err := getApp()
	if err != nil {
		return err
	}

	results, err := a.Registry.StopAll(context.Background())
	if err != nil {
		return err
	}

	if len(results) == 0 {
		logInfo("No tunnels to stop.")
		return nil
	}

	stopped := 0
	for _, res := range results {
		if res.Stopped {
			logSuccess("Tunnel %s stopped", res.Record.ID())
			stopped++
		} else {
			logInfo("Tunnel %s was already inactive", res.Record.ID())
		}
	}

	if stopped > 0 {
		logSuccess("All tunnels stopped.")
	} else {
		logInfo("All tunnels were already inactive.")
	}
	return nil
}
