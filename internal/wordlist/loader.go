// File: internal/wordlist/loader.go

package wordlist

import (
	"compress/gzip"
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"go.uber.org/zap"
)

// Loader resolves word-set references into loaded Sets. A reference is one
// of:
//
//   - a registry name ("seclists_10k"), cached as <dataDir>/<name>.txt and
//     fetched on first use;
//   - an http://, https:// or s3:// URL, cached under dataDir and fetched
//     on first use;
//   - a file:// URL or a plain path, opened in place.
//
// Local and cached files ending in .gz or .br are decompressed while
// loading.
type Loader struct {
	dataDir string
	fetcher *Fetcher
	logger  *zap.Logger
}

// NewLoader builds a Loader caching under dataDir. A nil fetcher gets the
// defaults; a nil logger is replaced with a no-op one.
func NewLoader(dataDir string, fetcher *Fetcher, logger *zap.Logger) *Loader {
	if fetcher == nil {
		fetcher = NewFetcher(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{dataDir: dataDir, fetcher: fetcher, logger: logger}
}

// Load resolves every reference, fetching remote sources that are not
// cached yet. The returned sets preserve the reference order. Any failing
// reference aborts the whole load; partially usable analysis input is worse
// than a clear error.
func (l *Loader) Load(ctx context.Context, refs []string) ([]*Set, error) {
	sets := make([]*Set, 0, len(refs))
	for _, ref := range refs {
		set, err := l.loadOne(ctx, ref)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return sets, nil
}

func (l *Loader) loadOne(ctx context.Context, ref string) (*Set, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: empty reference", ErrInvalidWordSet)
	}

	if src, err := LookupSource(ref); err == nil {
		local, err := l.EnsureSource(ctx, src)
		if err != nil {
			return nil, err
		}
		return l.loadFile(local, src.Name, src.Kind, src.MinWordLen)
	}

	if strings.Contains(ref, "://") {
		return l.loadRemote(ctx, ref)
	}

	// Plain local path. User-supplied lists are treated as compromised
	// material: an exact hit should floor the score, whatever the file is.
	return l.loadFile(ref, labelForFile(ref), KindCompromised, 1)
}

// EnsureSource guarantees a registry source is present in the cache and
// returns its local path.
func (l *Loader) EnsureSource(ctx context.Context, src Source) (string, error) {
	local := filepath.Join(l.dataDir, src.Name+".txt")
	if _, err := os.Stat(local); err == nil {
		return local, nil
	}
	if err := l.fetcher.Fetch(ctx, src.URL, local); err != nil {
		return "", err
	}
	return local, nil
}

func (l *Loader) loadRemote(ctx context.Context, ref string) (*Set, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidWordSet, ref, err)
	}

	switch u.Scheme {
	case "file":
		return l.loadFile(u.Path, labelForFile(u.Path), KindCompromised, 1)

	case "http", "https":
		local := filepath.Join(l.dataDir, cacheFileName(ref))
		if _, err := os.Stat(local); err != nil {
			if err := l.fetcher.Fetch(ctx, ref, local); err != nil {
				return nil, err
			}
		}
		return l.loadFile(local, labelForFile(u.Path), KindCompromised, 1)

	case "s3":
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return nil, fmt.Errorf("%w: %q: want s3://bucket/key", ErrInvalidWordSet, ref)
		}
		local := filepath.Join(l.dataDir, cacheFileName(ref))
		if _, err := os.Stat(local); err != nil {
			if err := fetchS3(ctx, u.Host, key, local); err != nil {
				return nil, err
			}
		}
		return l.loadFile(local, labelForFile(key), KindCompromised, 1)

	default:
		return nil, fmt.Errorf("%w: %q: unsupported scheme %q", ErrInvalidWordSet, ref, u.Scheme)
	}
}

func (l *Loader) loadFile(path, label string, kind Kind, minWordLen int) (*Set, error) {
	r, err := openWordFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidWordSet, path, err)
	}
	defer r.Close()

	set, err := FromReader(label, kind, minWordLen, r)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("word set loaded",
		zap.String("label", set.Label()),
		zap.String("kind", string(kind)),
		zap.Int("entries", set.Len()))
	return set, nil
}

// openWordFile opens a local list, transparently decoding .gz and .br
// files.
func openWordFile(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return &decodedFile{Reader: zr, file: f, decoder: zr}, nil
	case ".br":
		return &decodedFile{Reader: brotli.NewReader(f), file: f}, nil
	default:
		return f, nil
	}
}

// decodedFile pairs a decompressing reader with the file underneath it so
// Close releases both.
type decodedFile struct {
	io.Reader
	file    *os.File
	decoder io.Closer
}

func (d *decodedFile) Close() error {
	var decodeErr error
	if d.decoder != nil {
		decodeErr = d.decoder.Close()
	}
	if err := d.file.Close(); err != nil {
		return err
	}
	return decodeErr
}

// labelForFile derives a set label from a path: base name with compression
// and list extensions stripped. "lists/rockyou.txt.gz" becomes "rockyou".
func labelForFile(p string) string {
	base := path.Base(filepath.ToSlash(p))
	for {
		ext := strings.ToLower(path.Ext(base))
		switch ext {
		case ".gz", ".br", ".txt", ".lst":
			base = strings.TrimSuffix(base, base[len(base)-len(ext):])
		default:
			return base
		}
	}
}

// cacheFileName maps a remote reference to a stable cache entry. The name
// keeps the human-readable base for browsing the cache dir and a hash of
// the full reference so distinct URLs sharing a base name never collide.
// Compression extensions survive so openWordFile decodes cached bodies.
func cacheFileName(ref string) string {
	sum := sha256.Sum256([]byte(ref))

	refPath := ref
	if u, err := url.Parse(ref); err == nil && u.Path != "" {
		refPath = u.Path
	}
	base := labelForFile(refPath)
	if base == "" || base == "." || base == "/" {
		base = "list"
	}
	ext := ""
	switch strings.ToLower(path.Ext(refPath)) {
	case ".gz":
		ext = ".gz"
	case ".br":
		ext = ".br"
	}
	return fmt.Sprintf("%s-%x%s", base, sum[:6], ext)
}
