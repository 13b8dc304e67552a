package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/salman3757/passgauge/api/schemas"
	"github.com/salman3757/passgauge/internal/analysis"
	"github.com/salman3757/passgauge/internal/audit"
	"github.com/salman3757/passgauge/internal/config"
	"github.com/salman3757/passgauge/internal/observability"
	"github.com/salman3757/passgauge/internal/reporting"
	"github.com/salman3757/passgauge/internal/store"
)

// newAuditCmd creates the `audit` command.
func newAuditCmd(v *viper.Viper) *cobra.Command {
	auditCmd := &cobra.Command{
		Use:   "audit [file]",
		Short: "Analyze a file of candidate passwords, one per line",
		Long: `Audit runs the full analysis over every line of a candidate file ("-" or
no argument reads standard input), reports per-line results plus a summary,
and can gate CI runs on a minimum strength band or zxcvbn score. Reported
and persisted records identify candidates by SHA-256 digest only.`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			for flagName, key := range map[string]string{
				"concurrency": "audit.concurrency",
				"weakest":     "audit.weakest_count",
				"fail-below":  "audit.fail_below",
				"sets":        "wordlists.sets",
				"zxcvbn":      "analysis.zxcvbn_cross_check",
			} {
				if err := v.BindPFlag(key, cmd.Flags().Lookup(flagName)); err != nil {
					return fmt.Errorf("failed to bind --%s: %w", flagName, err)
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				return err
			}
			logger := observability.GetLogger()
			ctx := cmd.Context()

			input, err := openAuditInput(cmd, args)
			if err != nil {
				return err
			}
			defer input.Close()

			sets, err := loadWordSets(ctx, cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to load word sets: %w", err)
			}

			// The zxcvbn gate needs scores, so asking for it implies the
			// cross-check even when config disables it.
			minZxcvbn, _ := cmd.Flags().GetInt("min-zxcvbn")

			runner, err := audit.NewRunner(&audit.RunnerConfig{
				Estimator:        analysis.NewEstimator(logger, cfg.Analysis.Parallel),
				WordSets:         sets,
				Logger:           logger,
				Concurrency:      cfg.Audit.Concurrency,
				WeakestCount:     cfg.Audit.WeakestCount,
				ZxcvbnCrossCheck: cfg.Analysis.ZxcvbnCrossCheck || minZxcvbn > 0,
			})
			if err != nil {
				return err
			}

			envelope, err := runner.Run(ctx, input)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")

			reporter, err := reporting.New(format, output)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := reporter.Close(); closeErr != nil && err == nil {
					err = fmt.Errorf("failed to finalize report: %w", closeErr)
				}
			}()

			if err := reporter.Write(envelope); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}

			if cfg.Database.URL != "" {
				if err := persistRun(ctx, cfg.Database.URL, envelope, logger); err != nil {
					return err
				}
			}

			return evaluateGates(envelope, cfg.Audit.FailBelow, minZxcvbn)
		},
	}

	auditCmd.Flags().StringP("format", "f", "text", "output format: text, json, or junit")
	auditCmd.Flags().StringP("output", "o", "", "output path (default stdout)")
	auditCmd.Flags().IntP("concurrency", "j", 0, "number of candidates analyzed in parallel")
	auditCmd.Flags().Int("weakest", 0, "how many of the weakest lines to list in the summary")
	auditCmd.Flags().String("fail-below", "", "exit non-zero when any candidate scores below this band")
	auditCmd.Flags().Int("min-zxcvbn", 0, "exit non-zero when any candidate scores below this zxcvbn score (1-4)")
	auditCmd.Flags().StringSlice("sets", nil, "word sets to check (registry names, file paths, or URLs)")
	auditCmd.Flags().Bool("zxcvbn", true, "include the advisory zxcvbn cross-check score")

	return auditCmd
}

// openAuditInput returns the candidate stream. "-" or a missing argument
// selects standard input.
func openAuditInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to open candidate file: %w", err)
	}
	return f, nil
}

// persistRun stores the finished run in PostgreSQL.
func persistRun(ctx context.Context, databaseURL string, envelope *schemas.ReportEnvelope, logger *zap.Logger) error {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create database pool: %w", err)
	}
	defer pool.Close()

	st, err := store.New(ctx, pool, logger)
	if err != nil {
		return err
	}
	if err := st.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := st.PersistRun(ctx, envelope); err != nil {
		return err
	}

	logger.Info("Audit run persisted", zap.String("run_id", envelope.RunID))
	return nil
}

// evaluateGates turns gate violations into errors so the process exits
// non-zero for CI.
func evaluateGates(envelope *schemas.ReportEnvelope, failBelow string, minZxcvbn int) error {
	failures, err := audit.GateFailures(envelope.Summary, failBelow)
	if err != nil {
		return err
	}
	if failures > 0 {
		return fmt.Errorf("%d candidate(s) scored below %s", failures, failBelow)
	}

	if minZxcvbn > 0 {
		if n := audit.GateZxcvbnFailures(envelope.Records, minZxcvbn); n > 0 {
			return fmt.Errorf("%d candidate(s) scored below zxcvbn %d", n, minZxcvbn)
		}
	}
	return nil
}
