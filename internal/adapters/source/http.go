package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/roster/pkg/logger"
	"github.com/okian/roster/pkg/metrics"
)

// Default fetch configuration.
const (
	defaultTimeout     = 60 * time.Second
	cachePermission    = 0o644
	cacheDirPermission = 0o755
)

// Option applies a configuration option to the HTTP source.
type Option func(*HTTP)

// WithTimeout sets the fetch timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(h *HTTP) {
		if timeout > 0 {
			h.client.Timeout = timeout
		}
	}
}

// WithClient replaces the underlying HTTP client.
func WithClient(client *http.Client) Option {
	return func(h *HTTP) {
		if client != nil {
			h.client = client
		}
	}
}

// HTTP fetches the dataset from a remote URL into a local cache path.
type HTTP struct {
	url       string
	cachePath string
	client    *http.Client
}

// NewHTTP creates a fetch-then-cache Source.
func NewHTTP(url, cachePath string, opts ...Option) *HTTP {
	h := &HTTP{
		url:       url,
		cachePath: cachePath,
		client:    &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Ensure returns the cache path, downloading first when no cached copy
// exists. A failed download is only a warning if a cached copy can serve
// instead; with no copy at all it is ErrMissingInput.
func (h *HTTP) Ensure(ctx context.Context) (string, error) {
	if _, err := os.Stat(h.cachePath); err == nil {
		return h.cachePath, nil
	}

	if err := h.fetch(ctx); err != nil {
		metrics.RecordFetchError()
		if _, statErr := os.Stat(h.cachePath); statErr == nil {
			logger.Get().Warn(ctx, "download failed, using cached copy",
				logger.String("url", h.url), logger.Error(err))
			return h.cachePath, nil
		}
		return "", fmt.Errorf("%w: download failed and no local copy at %s: %v",
			ErrMissingInput, h.cachePath, err)
	}

	return h.cachePath, nil
}

func (h *HTTP) fetch(ctx context.Context) error {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch raw dataset: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Warn(ctx, "failed to close response body", logger.Error(err))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch raw dataset: HTTP %d", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(h.cachePath), cacheDirPermission); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	f, err := os.OpenFile(h.cachePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, cachePermission)
	if err != nil {
		return fmt.Errorf("create cache file: %w", err)
	}

	n, err := io.Copy(f, resp.Body)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(h.cachePath) // do not leave a truncated cache behind
		return fmt.Errorf("write cache file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close cache file: %w", err)
	}

	metrics.RecordFetchDuration(float64(time.Since(start).Milliseconds()))
	logger.Get().Info(ctx, "downloaded raw dataset",
		logger.String("url", h.url),
		logger.String("path", h.cachePath),
		logger.Int("bytes", int(n)),
	)
	return nil
}
