package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history [local-port]",
	Short: "Display recorded tunnel events",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

var historyJSON bool

func init() {
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output events as JSON lines")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := getApp()
	if err != nil {
		return err
	}

	if a.Journal == nil {
		logInfo("Event history is unavailable.")
		return nil
	}

	localPort := 0
	if len(args) == 1 {
		localPort, err = parsePortArg("local-port", args[0])
		if err != nil {
			return err
		}
	}

	events, err := a.Journal.Events(context.Background(), localPort)
	if err != nil {
		return fmt.Errorf("failed to read event history: %w", err)
	}

	if len(events) == 0 {
		logInfo("No events recorded.")
		return nil
	}

	out := cmd.OutOrStdout()
	for _, e := range events {
		if historyJSON {
			data, err := json.Marshal(e)
			if err != nil {
				return fmt.Errorf("failed to marshal event: %w", err)
			}
			fmt.Fprintln(out, string(data))
		} else {
			ts := e.Time.Local().Format("2006-01-02 15:04:05")
			line := fmt.Sprintf("[%s] %-13s %s:%d", ts, e.Type, e.Host, e.LocalPort)
			if e.PID != 0 {
				line += fmt.Sprintf(" pid=%d", e.PID)
			}
			if e.Details != "" {
				line += fmt.Sprintf(" (%s)", e.Details)
			}
			fmt.Fprintln(out, line)
		}
	}

	return nil
}
