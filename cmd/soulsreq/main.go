// Command soulsreq checks which armaments a stat block can wield across
// the supported games, from the command line or over a JSON API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"soulsreq/internal/config"
	"soulsreq/internal/dataset"
	"soulsreq/internal/game"
	"soulsreq/internal/logger"
)

const (
	Version = "0.1.0"
	appName = "soulsreq"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries what every subcommand needs.
type app struct {
	cfg      *config.Config
	cache    *dataset.CachedProvider
	registry *game.Registry
	presets  *game.PresetTable
}

func rootCmd() *cobra.Command {
	var (
		dataDir  string
		logLevel string
		a        app
	)

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Armament requirement checker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("data") {
				cfg.DataDir = dataDir
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: appName, Version: Version})
			return a.init(cfg)
		},
	}

	cmd.PersistentFlags().StringVar(&dataDir, "data", "data", "Directory holding the per-game JSON datasets")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		serveCmd(&a),
		gamesCmd(&a),
		checkCmd(&a),
		sheetCmd(&a),
		validateCmd(&a),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			// Skip config loading for version.
			PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
			},
		},
	)
	return cmd
}

func (a *app) init(cfg *config.Config) error {
	cache := dataset.NewCachedProvider(dataset.NewDirProvider(cfg.DataDir), cfg.CacheSize, cfg.CacheTTL)
	reg, err := game.NewRegistry(cache, game.Builtin()...)
	if err != nil {
		return err
	}
	presets := game.DefaultPresets()
	if cfg.Presets != "" {
		if presets, err = game.LoadPresetsFile(cfg.Presets); err != nil {
			return fmt.Errorf("load presets: %w", err)
		}
	}
	a.cfg, a.cache, a.registry, a.presets = cfg, cache, reg, presets
	return nil
}
