// cmd/dhirux/root.go
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhirajp15/dhirux-workflows/internal/config"
	"github.com/dhirajp15/dhirux-workflows/internal/logging"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:           "dhirux",
	Short:         "Dhirux agentic workflow orchestrator",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath(), "config file path")
}

// loadConfig loads the config file or exits. Commands that cannot run
// without configuration use this instead of per-command error plumbing.
func loadConfig() *config.Config {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func setupLogging(cfg *config.Config) {
	logging.Setup()
	if level, err := logging.ParseLevel(cfg.LogLevel); err == nil {
		logging.SetLevel(level)
	} else {
		slog.Warn("unknown log level, using info", "log_level", cfg.LogLevel)
	}
}
