// Package cmd contains the commands of the insights CLI.
package cmd

import (
	"fmt"
	"os"

	"github.com/Dan9191/delinquency-assistant/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// Global flags
	envFile  string
	logLevel string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "insights",
	Short: "Delinquency insights over the consolidated loan portfolio table",
	Long: `insights builds the strategic delinquency report for one reference month
and answers questions about it through the configured LLM.

Configuration is read from the environment (and an optional .env file):
DB_DRIVER, DB_CONN, DATA_TABLE, REPORT_MONTH, REPORT_YEAR, LLM_API_KEY, ...

Examples:
  insights report --month 12 --year 2024
  insights ask "Qual estado com maior inadimplência?"`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Path to a .env file (default: .env when present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level, overrides LOG_LEVEL")
}

// loadConfig reads the configuration and applies the global overrides
func loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return nil, err
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}
