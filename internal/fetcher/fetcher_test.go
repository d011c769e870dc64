package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnyUserName/swatchcard/internal/apperr"
	"github.com/AnyUserName/swatchcard/internal/fixture"
)

func newFetcher(cfg Config) *Fetcher {
	if cfg.UserAgent == "" {
		cfg.UserAgent = "Mozilla/5.0 test"
	}
	return New(cfg, nil)
}

func TestFetch_Success(t *testing.T) {
	img := fixture.JPEG(40, 30)
	var gotUA, gotURI string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotURI = r.RequestURI
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(img)
	}))
	defer srv.Close()

	body, err := newFetcher(Config{}).Fetch(context.Background(), srv.URL+"/swatch one+two.jpg")
	require.NoError(t, err)
	assert.Equal(t, img, body)
	assert.Equal(t, "Mozilla/5.0 test", gotUA)
	assert.Equal(t, "/swatch%20one%20two.jpg", gotURI)
}

func TestFetch_IneligibleURLMakesNoCall(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	f := newFetcher(Config{})
	for _, u := range []string{"", "ftp://x/img.jpg", "img.jpg", "  http://x", "/relative/" + srv.URL} {
		_, err := f.Fetch(context.Background(), u)
		assert.ErrorIs(t, err, ErrNoURL, "url %q", u)
		assert.ErrorIs(t, err, apperr.ErrImageUnavailable, "url %q", u)
	}
	assert.Equal(t, int32(0), calls.Load())
}

func TestFetch_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newFetcher(Config{}).Fetch(context.Background(), srv.URL+"/missing.jpg")
	assert.ErrorIs(t, err, ErrStatus)
	assert.Contains(t, err.Error(), "404")
}

func TestFetch_NotImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html>login</html>"))
	}))
	defer srv.Close()

	_, err := newFetcher(Config{}).Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestFetch_LenientContentType(t *testing.T) {
	img := fixture.JPEG(64, 64)
	require.Greater(t, len(img), 256)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		if r.URL.Path == "/tiny" {
			w.Write([]byte("GIF8"))
			return
		}
		w.Write(img)
	}))
	defer srv.Close()

	strict := newFetcher(Config{MinImageBytes: 256})
	_, err := strict.Fetch(context.Background(), srv.URL+"/big")
	assert.ErrorIs(t, err, ErrNotImage)

	lenient := newFetcher(Config{LenientContentType: true, MinImageBytes: 256})
	body, err := lenient.Fetch(context.Background(), srv.URL+"/big")
	require.NoError(t, err)
	assert.Equal(t, img, body)

	_, err = lenient.Fetch(context.Background(), srv.URL+"/tiny")
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestFetch_TooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(make([]byte, 2048))
	}))
	defer srv.Close()

	_, err := newFetcher(Config{MaxImageBytes: 1024}).Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestFetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	f := New(Config{Timeout: 50 * time.Millisecond}, nil)
	start := time.Now()
	_, err := f.Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, apperr.ErrImageUnavailable)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestFetch_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newFetcher(Config{}).Fetch(context.Background(), url+"/img.jpg")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrImageUnavailable))
}

func TestSanitizeURL(t *testing.T) {
	assert.Equal(t, "https://cdn/x/a%20b%20c.jpg", SanitizeURL("https://cdn/x/a b+c.jpg"))
	assert.Equal(t, "https://cdn/plain.jpg", SanitizeURL("https://cdn/plain.jpg"))
}
