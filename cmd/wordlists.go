package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/salman3757/passgauge/internal/config"
	"github.com/salman3757/passgauge/internal/observability"
	"github.com/salman3757/passgauge/internal/wordlist"
)

// newWordlistsCmd creates the `wordlists` command group.
func newWordlistsCmd(v *viper.Viper) *cobra.Command {
	wordlistsCmd := &cobra.Command{
		Use:   "wordlists",
		Short: "Manage the word lists used by dictionary checks",
	}

	wordlistsCmd.AddCommand(newWordlistsListCmd(v))
	wordlistsCmd.AddCommand(newWordlistsFetchCmd(v))
	return wordlistsCmd
}

func newWordlistsListCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in word list sources and their cache state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				return err
			}
			dataDir, err := cfg.ResolvedDataDir()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tKIND\tMIN LEN\tCACHED\tDESCRIPTION")
			for _, src := range wordlist.Sources() {
				cached := "-"
				if info, err := os.Stat(cachePath(dataDir, src)); err == nil {
					cached = fmt.Sprintf("%.1f MiB", float64(info.Size())/(1<<20))
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", src.Name, src.Kind, src.MinWordLen, cached, src.Description)
			}
			return w.Flush()
		},
	}
}

func newWordlistsFetchCmd(v *viper.Viper) *cobra.Command {
	fetchCmd := &cobra.Command{
		Use:   "fetch [name...]",
		Short: "Download word list sources into the local cache",
		Long: `Fetch downloads the named sources (all of them when no names are given)
into the data directory. Already cached lists are left alone unless --force
is set.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				return err
			}
			logger := observability.GetLogger()

			names := args
			if len(names) == 0 {
				names = wordlist.SourceNames()
			}

			loader, err := newWordlistLoader(cfg, logger)
			if err != nil {
				return err
			}
			dataDir, err := cfg.ResolvedDataDir()
			if err != nil {
				return err
			}
			force, _ := cmd.Flags().GetBool("force")

			for _, name := range names {
				src, err := wordlist.LookupSource(name)
				if err != nil {
					return err
				}

				if force {
					if err := os.Remove(cachePath(dataDir, src)); err != nil && !os.IsNotExist(err) {
						return fmt.Errorf("failed to evict cached %s: %w", name, err)
					}
				}

				path, err := loader.EnsureSource(cmd.Context(), src)
				if err != nil {
					return fmt.Errorf("failed to fetch %s: %w", name, err)
				}

				logger.Info("Word list ready", zap.String("source", name), zap.String("path", path))
				cmd.Printf("%s\t%s\n", name, path)
			}
			return nil
		},
	}

	fetchCmd.Flags().Bool("force", false, "re-download even when a cached copy exists")
	return fetchCmd
}

// cachePath mirrors the loader's cache layout: <dataDir>/<Name>.txt.
func cachePath(dataDir string, src wordlist.Source) string {
	return filepath.Join(dataDir, src.Name+".txt")
}
