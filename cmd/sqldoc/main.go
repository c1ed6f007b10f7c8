package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/omniql-engine/sqldoc/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "sqldoc",
	Short:         "Run relational statements against MongoDB and migrate relational schemas into it",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to TOML config file")
	rootCmd.AddCommand(queryCmd, migrateCmd, validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads --config, or returns the defaults when it is not set.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		cfg := config.Defaults()
		return cfg, cfg.Validate()
	}
	return config.Load(configPath)
}
