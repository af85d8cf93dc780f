// Command formstate loads declarative form definitions, checks values
// against them and fills them interactively in the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/internal/logging"
	"github.com/goliatone/go-formstate/pkg/config"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "formstate",
	Short:         "Validate and fill declarative forms",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "configuration file (YAML, JSON or TOML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")

	rootCmd.AddCommand(validateCmd, fillCmd, openapiCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "formstate:", err)
		os.Exit(1)
	}
}

// loadConfig resolves the configuration for a command run.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if logLevel != "" {
		logger, err := logging.New(logLevel, "console")
		if err != nil {
			return config.Config{}, err
		}
		cfg.Logger = logger
	}
	return cfg, nil
}

func syncLogger(logger *zap.Logger) {
	if logger != nil {
		_ = logger.Sync()
	}
}
