package main

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/forge/internal/app"
	"github.com/MrSnakeDoc/forge/internal/config"
	"github.com/MrSnakeDoc/forge/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the configurator HTTP service",
	Long: `Runs the HTTP service. All settings come from FORGE_* environment
variables; redis is used when FORGE_REDIS_ADDR is set, memory otherwise.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)
	defer func() { _ = loggerClient.Sync() }()

	a, err := app.New(cfg, loggerClient)
	if err != nil {
		return err
	}
	return a.Run()
}
