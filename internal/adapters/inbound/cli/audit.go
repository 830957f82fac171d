package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/iceready/internal/adapters/outbound/config"
	"github.com/abdidvp/iceready/internal/adapters/outbound/cortex"
	"github.com/abdidvp/iceready/internal/adapters/outbound/history"
	"github.com/abdidvp/iceready/internal/adapters/outbound/snowflake"
	"github.com/abdidvp/iceready/internal/adapters/outbound/tui"
	"github.com/abdidvp/iceready/internal/application"
	"github.com/abdidvp/iceready/internal/domain"
)

func newAuditCmd() *cobra.Command {
	var (
		schema      string
		jsonOutput  bool
		workers     int
		topBlockers int
		noNarrative bool
		ciMode      bool
		minScore    float64
		showHistory bool
	)

	cmd := &cobra.Command{
		Use:   "audit [database]",
		Short: "Audit a database for Iceberg readiness",
		Long:  "Collect table metadata from a Snowflake database, classify every table against the Iceberg readiness rules, and render the readiness report.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hist := history.New()
			if showHistory {
				entries, err := hist.Load()
				if err != nil {
					return fmt.Errorf("loading history: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
				return nil
			}

			cfg, err := config.New().Load(".")
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if workers > 0 {
				cfg.Workers = workers
			}
			if topBlockers > 0 {
				cfg.TopBlockers = topBlockers
			}

			database := cfg.Connection.Database
			if len(args) > 0 {
				database = args[0]
			}
			if database == "" {
				return errors.New("no database given (pass one as an argument or set connection.database in .iceready.yaml)")
			}

			collector, err := snowflake.Connect(cfg.Connection)
			if err != nil {
				return fmt.Errorf("connecting to snowflake: %w", err)
			}
			defer collector.Close()

			var narrator domain.Narrator
			if !noNarrative {
				narrator = cortex.New(collector.DB(), cfg.Model)
			}

			svc := application.NewAuditService(collector, narrator, cfg)
			report, err := svc.AuditDatabase(cmd.Context(), database, schema)

			// A collaborator failure after classification still leaves a
			// complete report; render it and surface the warning.
			var collabErr *domain.CollaboratorError
			if err != nil {
				if report == nil || !errors.As(err, &collabErr) {
					return fmt.Errorf("audit failed: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", collabErr)
			}

			_ = hist.Save(domain.NewRunEntry(report)) // best-effort

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			}

			if ciMode && report.Summary.Score < minScore {
				return fmt.Errorf("readiness score %.2f is below minimum %.2f", report.Summary.Score, minScore)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&schema, "schema", "", "Audit only this schema")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel table evaluations (default from config)")
	cmd.Flags().IntVar(&topBlockers, "top", 0, "How many blocker categories to rank (default from config)")
	cmd.Flags().BoolVar(&noNarrative, "no-narrative", false, "Skip the Cortex executive summary")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 if score below --min-score")
	cmd.Flags().Float64Var(&minScore, "min-score", 0, "Minimum readiness score for CI mode")
	cmd.Flags().BoolVar(&showHistory, "history", false, "Show past audit runs")

	return cmd
}
