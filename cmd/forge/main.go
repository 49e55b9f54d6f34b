package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/forge/internal/logger"
)

var (
	// cliLogger is used by the offline commands; serve builds its own from
	// the environment configuration.
	cliLogger logger.Logger
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "forge",
	Short: "Countdown timer configurator and WordPress plugin exporter",
	Long: `forge designs countdown timer widgets and packages them as
ready-to-install WordPress plugins.

Run without arguments to start the HTTP service (same as 'forge serve').`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cliLogger = logger.New(logLevel, true)
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level of offline commands (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd, exportCmd, watchCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ forge: %v\n", err)
		os.Exit(1)
	}
}
