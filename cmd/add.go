package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lpf/internal/errors"
	"lpf/internal/tui"
)

var addCmd = &cobra.Command{
	Use:   "add [local-port] [host] [remote-port]",
	Short: "Add and start a new SSH tunnel",
	Long: `Add and start a new SSH tunnel.

The tunnel forwards local-port to remote-port on the SSH host:

  lpf add 5432 user@db.example.com        # remote port defaults to 5432
  lpf add 8080 user@web.example.com 80

The definition is persisted before the supervisor starts, so a tunnel
whose launch fails stays registered and can be inspected with 'lpf ls'.

Run without arguments to enter the interactive wizard.`,
	Args: cobra.MaximumNArgs(3),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	a, err := getApp()
	if err != nil {
		return err
	}

	var host string
	var localPort, remotePort int

	switch len(args) {
	case 0:
		opts, err := tui.RunAddWizard()
		if err != nil {
			return fmt.Errorf("failed to run add wizard: %w", err)
		}
		if opts == nil {
			logInfo("Cancelled")
			return nil
		}
		host = opts.Host
		localPort = opts.LocalPort
		remotePort = opts.RemotePort
	case 2, 3:
		localPort, err = parsePortArg("local-port", args[0])
		if err != nil {
			return err
		}
		host = args[1]
		if len(args) == 3 {
			remotePort, err = parsePortArg("remote-port", args[2])
			if err != nil {
				return err
			}
		}
	default:
		return errors.ValidationError("add requires a local port and host, or no arguments for the wizard")
	}

	displayRemote := remotePort
	if displayRemote == 0 {
		displayRemote = localPort
	}
	logInfo("Starting tunnel: localhost:%d -> %s:%d", localPort, host, displayRemote)

	ctx := context.Background()
	res, err := a.Registry.Add(ctx, host, localPort, remotePort)
	if err != nil {
		return err
	}

	if res.LaunchErr != nil {
		logWarning("Tunnel %s was saved but did not start", res.Record.ID())
		return res.LaunchErr
	}

	logSuccess("Tunnel %s started (pid %d)", res.Record.ID(), res.Record.PIDOrZero())
	return nil
}
