package cmd

import (
	"fmt"

	"github.com/gioe/quotient/internal/config"
	"github.com/gioe/quotient/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quotient",
	Short: "Adaptive IQ testing engine",
	Long:  "Quotient — computerized adaptive testing engine that estimates ability with a 2PL IRT model and reports IQ-scaled scores.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUOTIENT_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (defaults built in)")

	rootCmd.AddCommand(takeCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then QUOTIENT_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveConfig loads the YAML config named by --config, or the built-in
// defaults when the flag is unset.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	p, _ := cmd.Flags().GetString("config")
	if p == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(p)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
