package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"assetctl/internal/logger"
)

// debug indicates whether debug logging should be enabled.
// It can be toggled via the `--debug` command-line flag.
var debug bool

// rootCmd is the base command for the CLI tool `assetctl`.
var rootCmd = &cobra.Command{
	Use:   "assetctl",
	Short: "macOS asset inventory tool",

	// PersistentPreRun runs before any subcommand; it initializes the
	// logger based on the debug flag.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(debug)
	},
}

// Execute registers global flags and runs the selected subcommand.
// It's the entry point for the CLI when invoked by the user.
// Any command failure, including wrong argument counts, exits with status 1.
func Execute() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
