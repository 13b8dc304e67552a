// -- cmd/root.go --
package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/salman3757/passgauge/internal/config"
	"github.com/salman3757/passgauge/internal/observability"
)

// NewRootCommand builds the root command with every subcommand attached. A
// fresh command tree (and a fresh viper instance) is built per invocation so
// flag and config state never leaks between runs of the interactive shell.
func NewRootCommand() *cobra.Command {
	var cfgFile string
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "passgauge",
		Short: "Passgauge generates passwords and gauges how hard they are to guess.",
		Long: `Passgauge is a password toolkit: it synthesizes passwords from character
classes or patterns using a cryptographic randomness source, and it scores
existing passwords by estimating entropy and hunting for the structure
attackers exploit (keyboard walks, sequences, repetition, dates, word list
hits).`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env is a developer convenience; a missing file is fine.
			_ = godotenv.Load()

			config.SetDefaults(v)
			if err := initializeConfig(v, cfgFile); err != nil {
				return err
			}

			// Build the config once here so the logger comes up before any
			// subcommand logic. Subcommands rebuild it after binding their
			// flags, which is when flag overrides take effect.
			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				observability.InitializeLogger(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "passgauge"})
				return fmt.Errorf("failed to load or validate config: %w", err)
			}

			observability.InitializeLogger(cfg.Logger)
			observability.GetLogger().Debug("Starting passgauge", zap.String("version", Version))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./passgauge.yaml)")
	rootCmd.SetVersionTemplate("passgauge version {{.Version}}\n")

	rootCmd.AddCommand(newGenerateCmd(v))
	rootCmd.AddCommand(newAnalyzeCmd(v))
	rootCmd.AddCommand(newAuditCmd(v))
	rootCmd.AddCommand(newWordlistsCmd(v))
	rootCmd.AddCommand(newServeCmd(v))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the CLI under a signal-aware context. The caller decides the
// exit code; errors have already been logged here.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		observability.GetLogger().Error("Command execution failed", zap.Error(err))
		return err
	}
	return nil
}

// initializeConfig reads the config file and PASSGAUGE_* environment
// variables into v.
func initializeConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("passgauge")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("PASSGAUGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// No config file; defaults and env vars carry the run.
	}
	return nil
}
