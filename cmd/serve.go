package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/salman3757/passgauge/internal/analysis"
	"github.com/salman3757/passgauge/internal/config"
	"github.com/salman3757/passgauge/internal/observability"
	"github.com/salman3757/passgauge/internal/server"
)

// newServeCmd creates the `serve` command.
func newServeCmd(v *viper.Viper) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generation and analysis engines over HTTP",
		Long: `Serve starts the local HTTP facade: POST /v1/generate, POST /v1/analyze,
and GET /healthz. Configured word sets are loaded once and shared by every
request. There is no authentication; keep the listener on loopback.`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			for flagName, key := range map[string]string{
				"addr":   "server.addr",
				"sets":   "wordlists.sets",
				"zxcvbn": "analysis.zxcvbn_cross_check",
			} {
				if err := v.BindPFlag(key, cmd.Flags().Lookup(flagName)); err != nil {
					return fmt.Errorf("failed to bind --%s: %w", flagName, err)
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				return err
			}
			logger := observability.GetLogger()
			ctx := cmd.Context()

			sets, err := loadWordSets(ctx, cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to load word sets: %w", err)
			}

			srv, err := server.New(server.Options{
				Config:           cfg.Server,
				Estimator:        analysis.NewEstimator(logger, cfg.Analysis.Parallel),
				Generator:        analysis.NewGenerator(logger),
				WordSets:         sets,
				ZxcvbnCrossCheck: cfg.Analysis.ZxcvbnCrossCheck,
				Logger:           logger,
			})
			if err != nil {
				return err
			}
			return srv.Run(ctx)
		},
	}

	serveCmd.Flags().String("addr", "", "listen address (host:port, default from config)")
	serveCmd.Flags().StringSlice("sets", nil, "word sets to check (registry names, file paths, or URLs)")
	serveCmd.Flags().Bool("zxcvbn", true, "include the advisory zxcvbn score in analyze responses")

	return serveCmd
}
