package preview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // decoders for the formats the API serves
	_ "image/png"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// maxImageBytes caps a single download
const maxImageBytes = 16 << 20

// ErrTooLarge is returned for downloads over the size cap
var ErrTooLarge = errors.New("image too large")

// Fetcher downloads full-size images
type Fetcher struct {
	httpClient *http.Client
	logger     *zap.Logger
	maxBytes   int64
}

// NewFetcher creates a fetcher; a nil client falls back to http.DefaultClient
func NewFetcher(httpClient *http.Client, logger *zap.Logger) *Fetcher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{httpClient: httpClient, logger: logger.Named("preview"), maxBytes: maxImageBytes}
}

// Fetch returns the raw bytes at url
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building image request: %w", err)
	}

	start := time.Now()
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("downloading %s: unexpected status %d", url, resp.StatusCode)
	}

	// One byte past the cap tells a full-size image from a truncated one
	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("downloading %s: %w (over %d bytes)", url, ErrTooLarge, f.maxBytes)
	}
	f.logger.Debug("image downloaded",
		zap.String("url", url),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return data, nil
}

// Decode parses JPEG or PNG bytes
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

// Load downloads, decodes and renders url into a box of at most maxCols x maxRows cells
func (f *Fetcher) Load(ctx context.Context, url string, maxCols, maxRows int) (string, error) {
	data, err := f.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	img, err := Decode(data)
	if err != nil {
		return "", err
	}
	b := img.Bounds()
	cols, rows := Fit(b.Dx(), b.Dy(), maxCols, maxRows)
	return Render(img, cols, rows), nil
}
