package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/davesmith10/lsbsteg/internal/config"
)

var rootCmd = &cobra.Command{
	Use:               "lsbsteg",
	Short:             "Hide data in the least-significant bits of JPEG and PNG images",
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

// Loaded by loadSettings before any subcommand runs.
var (
	settings *config.Config
	logger   *slog.Logger
)

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML defaults file (or $"+config.EnvVar+")")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
}

func loadSettings(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	settings = cfg
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
