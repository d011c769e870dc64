// Package fetcher downloads swatch images over HTTP and classifies the
// response. Every failure wraps apperr.ErrImageUnavailable; none of them is
// fatal to a report.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/AnyUserName/swatchcard/internal/apperr"
)

var (
	ErrNoURL    = fmt.Errorf("%w: missing or non-http url", apperr.ErrImageUnavailable)
	ErrStatus   = fmt.Errorf("%w: unexpected status", apperr.ErrImageUnavailable)
	ErrNotImage = fmt.Errorf("%w: response is not an image", apperr.ErrImageUnavailable)
	ErrTooLarge = fmt.Errorf("%w: response too large", apperr.ErrImageUnavailable)
)

// Config controls request identity and response classification.
type Config struct {
	Timeout   time.Duration
	UserAgent string
	// LenientContentType accepts a response without an image Content-Type
	// when its body is longer than MinImageBytes.
	LenientContentType bool
	MinImageBytes      int64
	MaxImageBytes      int64
}

// Fetcher retrieves raw image bytes for one URL at a time. Safe for
// concurrent use.
type Fetcher struct {
	client *http.Client
	cfg    Config
}

// New creates a Fetcher. A nil client gets a fresh one bounded by cfg.Timeout.
func New(cfg Config, client *http.Client) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MaxImageBytes <= 0 {
		cfg.MaxImageBytes = 20 << 20
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Fetcher{client: client, cfg: cfg}
}

// Eligible reports whether rawURL is worth a network call.
func Eligible(rawURL string) bool {
	return strings.HasPrefix(rawURL, "http")
}

// SanitizeURL percent-encodes the spaces and plus signs that hand-typed
// source URLs carry.
func SanitizeURL(rawURL string) string {
	return strings.NewReplacer(" ", "%20", "+", "%20").Replace(rawURL)
}

// Fetch downloads rawURL. It returns the body only for a 200 response that
// is classified as an image.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if !Eligible(rawURL) {
		return nil, ErrNoURL
	}

	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, SanitizeURL(rawURL), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", apperr.ErrImageUnavailable, err)
	}
	if f.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", f.cfg.UserAgent)
	}
	req.Header.Set("Accept", "image/*,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrImageUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w %d", ErrStatus, resp.StatusCode)
	}

	isImage := strings.Contains(strings.ToLower(resp.Header.Get("Content-Type")), "image")
	if !isImage && !f.cfg.LenientContentType {
		return nil, fmt.Errorf("%w: content-type %q", ErrNotImage, resp.Header.Get("Content-Type"))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", apperr.ErrImageUnavailable, err)
	}
	if int64(len(body)) > f.cfg.MaxImageBytes {
		return nil, fmt.Errorf("%w: over %d bytes", ErrTooLarge, f.cfg.MaxImageBytes)
	}
	if !isImage && int64(len(body)) <= f.cfg.MinImageBytes {
		return nil, fmt.Errorf("%w: content-type %q, %d bytes", ErrNotImage, resp.Header.Get("Content-Type"), len(body))
	}
	return body, nil
}
