package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"lpf/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "lpf",
	Short: "SSH local port forwarding tunnel manager",
	Long: `lpf manages persistent SSH local port forwarding tunnels.

Each tunnel is a supervised SSH connection that:
  - Forwards a local port to a port reachable from the remote host
  - Survives network interruptions through autossh restarts
  - Persists across invocations in a per-user state file`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
)
