package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/salman3757/passgauge/api/schemas"
	"github.com/salman3757/passgauge/internal/analysis"
	"github.com/salman3757/passgauge/internal/config"
	"github.com/salman3757/passgauge/internal/observability"
	"github.com/salman3757/passgauge/internal/reporting"
)

// newAnalyzeCmd creates the `analyze` command.
func newAnalyzeCmd(v *viper.Viper) *cobra.Command {
	analyzeCmd := &cobra.Command{
		Use:   "analyze [password]",
		Short: "Estimate the strength of a single password",
		Long: `Analyze scores a password: naive entropy from the observed character
classes, minus a penalty for every weakness the detectors find. Pass the
password as an argument, or use --stdin to keep it out of shell history.`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			for flagName, key := range map[string]string{
				"sets":   "wordlists.sets",
				"zxcvbn": "analysis.zxcvbn_cross_check",
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

			password, err := resolvePassword(cmd, args)
			if err != nil {
				return err
			}

			sets, err := loadWordSets(cmd.Context(), cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to load word sets: %w", err)
			}

			estimator := analysis.NewEstimator(logger, cfg.Analysis.Parallel)
			report := estimator.Analyze(password, sets)

			score := -1
			if cfg.Analysis.ZxcvbnCrossCheck {
				score = analysis.CrossCheckScore(password)
			}

			format, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")

			reporter, err := reporting.New(format, output)
			if err != nil {
				return err
			}
			defer func() {
				// JSON and JUnit reporters emit on Close, so a close failure
				// means the report never landed.
				if closeErr := reporter.Close(); closeErr != nil && err == nil {
					err = fmt.Errorf("failed to finalize report: %w", closeErr)
				}
			}()

			envelope := &schemas.ReportEnvelope{
				Records: []schemas.AuditRecord{{
					Report:      *report,
					ZxcvbnScore: score,
					AnalyzedAt:  time.Now().UTC(),
				}},
			}
			return reporter.Write(envelope)
		},
	}

	analyzeCmd.Flags().Bool("stdin", false, "read the password from the first line of standard input")
	analyzeCmd.Flags().StringP("format", "f", "text", "output format: text or json")
	analyzeCmd.Flags().StringP("output", "o", "", "output path (default stdout)")
	analyzeCmd.Flags().StringSlice("sets", nil, "word sets to check (registry names, file paths, or URLs)")
	analyzeCmd.Flags().Bool("zxcvbn", true, "include the advisory zxcvbn cross-check score")

	return analyzeCmd
}

// resolvePassword takes the candidate from the argument or, with --stdin,
// from the first line of standard input.
func resolvePassword(cmd *cobra.Command, args []string) (string, error) {
	fromStdin, _ := cmd.Flags().GetBool("stdin")
	if fromStdin {
		scanner := bufio.NewScanner(cmd.InOrStdin())
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", fmt.Errorf("failed to read password from stdin: %w", err)
			}
			return "", errors.New("no password on stdin")
		}
		return scanner.Text(), nil
	}

	if len(args) == 0 || args[0] == "" {
		return "", errors.New("provide a password argument or --stdin")
	}
	return args[0], nil
}
