package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/evdash/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:           "evdash",
	Short:         "Synthetic EV charging dataset generator and dashboard backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
