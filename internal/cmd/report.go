package cmd

import (
	"fmt"

	"github.com/Dan9191/delinquency-assistant/internal/app"
	"github.com/Dan9191/delinquency-assistant/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	periodMonth int
	periodYear  int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the delinquency insight report",
	Long: `Loads the consolidated table and prints the strategic delinquency report
for the reference month. --month and --year override REPORT_MONTH/REPORT_YEAR.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	addPeriodFlags(reportCmd.Flags())
	rootCmd.AddCommand(reportCmd)
}

// addPeriodFlags registers --month and --year
func addPeriodFlags(flags *pflag.FlagSet) {
	flags.IntVar(&periodMonth, "month", 12, "Reference month (1-12), overrides REPORT_MONTH")
	flags.IntVar(&periodYear, "year", 2024, "Reference year, overrides REPORT_YEAR")
}

// applyPeriodFlags overrides the configured period with explicitly set flags
func applyPeriodFlags(flags *pflag.FlagSet, cfg *config.Config) error {
	if flags.Changed("month") {
		cfg.ReportMonth = periodMonth
	}
	if flags.Changed("year") {
		cfg.ReportYear = periodYear
	}
	_, err := cfg.Period()
	return err
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	if err := applyPeriodFlags(cmd.Flags(), cfg); err != nil {
		return err
	}
	logger := app.NewLogger(cfg.LogLevel)
	logger.SetOutput(cmd.ErrOrStderr())

	db, err := app.OpenDB(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	report, err := app.NewReportService(db, cfg, logger).GenerateReport(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), report)
	return nil
}
