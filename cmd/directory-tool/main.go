// Command directory-tool inspects and maintains the business directory outside
// of the workflow engine: slug previews, ad-hoc searches, search index loads
// and the activity registry.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"trustgrade-workers/internal/common/config"
	"trustgrade-workers/internal/common/logger"
	"trustgrade-workers/internal/directory"
)

var (
	configPath string
	logLevel   string

	log logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "directory-tool",
	Short: "Business directory maintenance commands",
	Long: `Runs directory operations without a Zeebe broker.

Without --config the embedded seed directory is used.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if log == nil {
			log = logger.NewZapAdapter(logger.NewWithOutput(logLevel, "console", "stderr"))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = logger.Unwrap(log).Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a config.yaml (default: embedded seed directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level")

	rootCmd.AddCommand(slugifyCmd, searchCmd, resolveCmd, profileCmd, indexCmd, registryCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig returns the config named by --config, or a memory-backed default.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return &config.Config{
			Directory: config.DirectoryConfig{Source: "memory"},
			Profile:   config.DefaultProfile(),
		}, nil
	}
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openDirectory builds the directory without a Redis cache.
func openDirectory() (*directory.Stack, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	st, err := directory.Open(cfg, nil, log)
	if err != nil {
		return nil, nil, err
	}
	return st, cfg, nil
}
