// File: internal/wordlist/fetcher.go

package wordlist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/salman3757/passgauge/internal/network"
)

const (
	// fetchUserAgent identifies the tool; the raw GitHub endpoints reject
	// blank agents.
	fetchUserAgent = "Mozilla/5.0 (compatible; passgauge/1.0)"

	// DefaultMaxDownloadBytes caps a single list at 200 MB. The largest
	// registry source is under 5 MB; anything bigger is a wrong URL.
	DefaultMaxDownloadBytes = 200 << 20

	// DefaultFetchesPerSecond keeps repeated fetches polite to the public
	// mirrors that host the registry lists.
	DefaultFetchesPerSecond = 2.0
)

// ErrSizeLimit is returned when a download exceeds the configured cap.
var ErrSizeLimit = errors.New("wordlist: download exceeds size limit")

// FetcherConfig tunes a Fetcher. Zero values fall back to the defaults
// above; a nil Client gets the shared download configuration.
type FetcherConfig struct {
	Client        *network.Client
	Logger        *zap.Logger
	MaxBytes      int64
	RatePerSecond float64
}

// Fetcher downloads word lists to local files. Downloads are rate limited,
// size capped, and written atomically so a torn transfer never poisons the
// cache.
type Fetcher struct {
	client   *network.Client
	limiter  *rate.Limiter
	logger   *zap.Logger
	maxBytes int64
}

// NewFetcher wires a Fetcher from config. Safe to call with nil.
func NewFetcher(cfg *FetcherConfig) *Fetcher {
	if cfg == nil {
		cfg = &FetcherConfig{}
	}
	client := cfg.Client
	if client == nil {
		client = network.NewClient(network.NewDefaultClientConfig())
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxDownloadBytes
	}
	perSecond := cfg.RatePerSecond
	if perSecond <= 0 {
		perSecond = DefaultFetchesPerSecond
	}
	return &Fetcher{
		client:   client,
		limiter:  rate.NewLimiter(rate.Limit(perSecond), 1),
		logger:   logger,
		maxBytes: maxBytes,
	}
}

// Fetch downloads url into destPath. The body lands in a temp file in the
// destination directory first and is renamed into place only after a clean
// copy, so concurrent readers never observe a partial list.
func (f *Fetcher) Fetch(ctx context.Context, url, destPath string) error {
	if err := f.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wordlist: rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("wordlist: building request for %q: %w", url, err)
	}
	req.Header.Set("User-Agent", fetchUserAgent)

	f.logger.Info("fetching word list",
		zap.String("url", url),
		zap.String("dest", destPath))

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("wordlist: fetching %q: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("wordlist: fetching %q: unexpected status %s", url, resp.Status)
	}
	if resp.ContentLength > f.maxBytes {
		return fmt.Errorf("%w: %q advertises %d bytes", ErrSizeLimit, url, resp.ContentLength)
	}

	written, err := writeAtomic(destPath, resp.Body, f.maxBytes)
	if err != nil {
		return fmt.Errorf("wordlist: writing %q: %w", destPath, err)
	}

	f.logger.Info("word list stored",
		zap.String("dest", destPath),
		zap.Int64("bytes", written))
	return nil
}

// writeAtomic streams r into path via a sibling temp file and a rename.
// Copying is capped at maxBytes; exceeding the cap aborts with ErrSizeLimit
// and leaves any previous file at path untouched.
func writeAtomic(path string, r io.Reader, maxBytes int64) (int64, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return 0, err
	}
	tmpName := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	// Read one byte past the cap so an at-limit body is distinguishable
	// from an over-limit one.
	written, err := io.Copy(tmp, io.LimitReader(r, maxBytes+1))
	if err != nil {
		cleanup()
		return 0, err
	}
	if written > maxBytes {
		cleanup()
		return 0, ErrSizeLimit
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return 0, err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return 0, err
	}
	return written, nil
}
