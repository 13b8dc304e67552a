package cmd

import (
	"context"

	"go.uber.org/zap"

	"github.com/salman3757/passgauge/internal/analysis"
	"github.com/salman3757/passgauge/internal/config"
	"github.com/salman3757/passgauge/internal/network"
	"github.com/salman3757/passgauge/internal/wordlist"
)

// loadWordSets resolves and loads the configured word sets. An empty set
// list is not an error; analyses simply run without dictionary checks.
func loadWordSets(ctx context.Context, cfg *config.Config, logger *zap.Logger) ([]analysis.WordSet, error) {
	if len(cfg.Wordlists.Sets) == 0 {
		return nil, nil
	}

	loader, err := newWordlistLoader(cfg, logger)
	if err != nil {
		return nil, err
	}
	sets, err := loader.Load(ctx, cfg.Wordlists.Sets)
	if err != nil {
		return nil, err
	}
	return wordlist.AsWordSets(sets), nil
}

// newWordlistLoader wires a loader with the tuned HTTP client and the
// configured fetch limits.
func newWordlistLoader(cfg *config.Config, logger *zap.Logger) (*wordlist.Loader, error) {
	dataDir, err := cfg.ResolvedDataDir()
	if err != nil {
		return nil, err
	}

	clientCfg := network.NewDefaultClientConfig()
	clientCfg.RequestTimeout = cfg.Wordlists.FetchTimeout
	clientCfg.Logger = logger

	fetcher := wordlist.NewFetcher(&wordlist.FetcherConfig{
		Client:        network.NewClient(clientCfg),
		Logger:        logger,
		MaxBytes:      cfg.Wordlists.MaxFetchBytes,
		RatePerSecond: cfg.Wordlists.RatePerSecond,
	})
	return wordlist.NewLoader(dataDir, fetcher, logger), nil
}
