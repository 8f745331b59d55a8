// Package commands implements the nextedit CLI commands using cobra.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jholhewres/nextedit/pkg/nextedit/config"
)

// NewRootCmd creates the root CLI command with all subcommands registered.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nextedit",
		Short: "Prompt compiler for next-edit prediction",
		Long: `nextedit compiles editing context (cursor excerpt, edit history,
related files) into model prompts for next-edit prediction, packing each
section into a token budget.

Examples:
  nextedit compile request.json
  nextedit compile --format seed request.json
  nextedit tokens prompt.txt
  nextedit clean --format 0120 output.txt
  nextedit formats`,
		Version: version,
	}

	rootCmd.AddCommand(
		newCompileCmd(),
		newFormatsCmd(),
		newTokensCmd(),
		newCleanCmd(),
		newPrefillCmd(),
		newCapturesCmd(),
	)

	// Global flags.
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to the configuration file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	return rootCmd
}

// resolveConfig loads configuration from the --config flag, an auto-discovered
// file, or defaults when no file exists.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Root().PersistentFlags().GetString("config")

	// Try explicit path first.
	if configPath != "" {
		cfg, err := config.LoadConfigFromFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}

	// Auto-discover config file.
	if found := config.FindConfigFile(); found != "" {
		cfg, err := config.LoadConfigFromFile(found)
		if err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", found, err)
		}
		return cfg, nil
	}

	return config.DefaultConfig(), nil
}

// newLogger builds a slog logger from the config and the --verbose flag.
// Logs go to stderr so prompt output on stdout stays clean.
func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	logLevel := cfg.LogLevel()
	if verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose"); verbose {
		logLevel = slog.LevelDebug
	}

	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	}
	return slog.New(handler)
}
