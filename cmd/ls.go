package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List all configured tunnels and their status",
	Args:    cobra.NoArgs,
	RunE:    runLs,
}

func init() {
	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	a, err := getApp()
	if err != nil {
		return err
	}

	entries, err := a.Registry.List()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		logInfo("No tunnels are configured. Add one with: lpf add <local-port> <host>")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TUNNEL\tSTATUS\tFORWARDING\tPID")
	fmt.Fprintln(w, "------\t------\t----------\t---")

	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			e.Record.ID(),
			formatStatus(e.Status),
			formatForward(e.Record),
			formatPID(e.Record),
		)
	}

	return w.Flush()
}
