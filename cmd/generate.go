package cmd

import (
	"fmt"

	"github.com/alexedwards/argon2id"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/salman3757/passgauge/api/schemas"
	"github.com/salman3757/passgauge/internal/analysis"
	"github.com/salman3757/passgauge/internal/config"
	"github.com/salman3757/passgauge/internal/observability"
)

// newGenerateCmd creates the `generate` command.
func newGenerateCmd(v *viper.Viper) *cobra.Command {
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate random passwords from character classes or a pattern",
		Long: `Generate synthesizes passwords with crypto/rand. The selected character
classes are unioned into a single pool, or --pattern places one class per
position:

  L  lowercase letter    U  uppercase letter
  D  digit               S  symbol
  ?  any rune from the union of the selected classes

Any other rune in the pattern is emitted verbatim, e.g. "ULLLL-DDDD".`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			for flagName, key := range map[string]string{
				"length":            "generator.length",
				"count":             "generator.count",
				"lower":             "generator.use_lower",
				"upper":             "generator.use_upper",
				"digits":            "generator.use_digits",
				"symbols":           "generator.use_symbols",
				"exclude-ambiguous": "generator.exclude_ambiguous",
				"exclude":           "generator.excluded_chars",
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

			pattern, _ := cmd.Flags().GetString("pattern")
			withHash, _ := cmd.Flags().GetBool("hash")
			verbose, _ := cmd.Flags().GetBool("verbose")

			opts := schemas.GeneratorOptions{
				Length:           cfg.Generator.Length,
				UseLower:         cfg.Generator.UseLower,
				UseUpper:         cfg.Generator.UseUpper,
				UseDigits:        cfg.Generator.UseDigits,
				UseSymbols:       cfg.Generator.UseSymbols,
				ExcludeAmbiguous: cfg.Generator.ExcludeAmbiguous,
				CustomPattern:    pattern,
				ExcludedChars:    cfg.Generator.ExcludedChars,
			}

			generator := analysis.NewGenerator(logger)
			for i := 0; i < cfg.Generator.Count; i++ {
				result, err := generator.Generate(opts)
				if err != nil {
					return err
				}

				switch {
				case withHash:
					phc, err := argon2id.CreateHash(result.Password, argon2id.DefaultParams)
					if err != nil {
						return fmt.Errorf("failed to hash password: %w", err)
					}
					cmd.Printf("%s  %s\n", result.Password, phc)
				case verbose:
					cmd.Printf("%s  (pool %d, %.1f bits)\n", result.Password, result.PoolSize, result.EntropyBits)
				default:
					cmd.Println(result.Password)
				}
			}
			return nil
		},
	}

	generateCmd.Flags().IntP("length", "l", 16, "password length in runes")
	generateCmd.Flags().IntP("count", "n", 1, "how many passwords to generate")
	generateCmd.Flags().Bool("lower", true, "include lowercase letters")
	generateCmd.Flags().Bool("upper", true, "include uppercase letters")
	generateCmd.Flags().Bool("digits", true, "include digits")
	generateCmd.Flags().Bool("symbols", true, "include symbols")
	generateCmd.Flags().Bool("exclude-ambiguous", false, "drop visually confusable characters (Il1O0o)")
	generateCmd.Flags().String("exclude", "", "additional characters to remove from the pool")
	generateCmd.Flags().StringP("pattern", "p", "", "positional template (L, U, D, S, ?; other runes are literals)")
	generateCmd.Flags().Bool("hash", false, "print an argon2id hash next to each password")
	generateCmd.Flags().Bool("verbose", false, "print pool size and entropy next to each password")

	return generateCmd
}
