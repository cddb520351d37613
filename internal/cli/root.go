// Package cli wires the cobra command tree for the gworkspace tool.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/mantara-io/gworkspace/internal/logger"
)

var version = "dev"

// Flags shared by every command.
var (
	verboseFlag bool
	configDir   string
	dataDir     string
)

var rootCmd = &cobra.Command{
	Use:   "gworkspace",
	Short: "Typed Google Workspace client with managed OAuth tokens",
	Long: `gworkspace talks to the Google Calendar, Gmail, and Tasks APIs with
an OAuth token that refreshes itself. Run 'gworkspace auth login' once;
subsequent commands reuse and silently refresh the stored token.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(
		&verboseFlag, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(
		&configDir, "config-dir", "", "Config directory (default ~/.gworkspace)")
	rootCmd.PersistentFlags().StringVar(
		&dataDir, "data-dir", "", "Data directory (default ~/.gworkspace/data)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	version = v
}
