package cmd

import (
	"fmt"
	"strings"

	"github.com/Dan9191/delinquency-assistant/internal/app"
	"github.com/Dan9191/delinquency-assistant/internal/session"
	"github.com/spf13/cobra"
)

var showQuery bool

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask one question about the report",
	Long: `Builds the insight report, classifies the question, runs the generated
query when the question needs data beyond the report and prints the answer.
--month and --year choose the period the answer is grounded on.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	addPeriodFlags(askCmd.Flags())
	askCmd.Flags().BoolVar(&showQuery, "show-query", false, "Also print the intent and generated query")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
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

	svc, err := app.NewChatService(cmd.Context(), app.NewRepository(db, cfg), cfg, logger)
	if err != nil {
		return err
	}

	reply, err := svc.Ask(cmd.Context(), session.New(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if showQuery {
		fmt.Fprintf(out, "Intenção: %s\n", reply.Intent)
		if reply.Query != "" {
			fmt.Fprintf(out, "Consulta:\n%s\n\n", reply.Query)
		}
	}
	fmt.Fprintln(out, reply.Answer)
	return nil
}
