package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"nodesim/util/file"
	"nodesim/util/logger"
	"nodesim/util/validation"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	rootCmd := &cobra.Command{
		Use:           "nodesim",
		Short:         "Blockchain node network simulator",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yml", "Path to the yaml config")

	rootCmd.AddCommand(newRunCmd(&configPath), newWatchCmd(&configPath))
	return rootCmd
}

// loadConfig reads and validates the config, every problem is reported at once
func loadConfig(path string) (*file.Config, error) {
	config, err := file.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if err = validation.ValidateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

// setupLogger installs the global logger for one run
func setupLogger(config *file.Config) (*logger.Logger, error) {
	loggerFilePath, err := file.LoggerFilePath(config)
	if err != nil {
		return nil, err
	}
	l, err := logger.New(&logger.Config{
		Level:          config.LogLevel(),
		FilePath:       loggerFilePath,
		PrintToConsole: config.PrintLogToConsole(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger.SetGlobal(l)
	return l, nil
}
