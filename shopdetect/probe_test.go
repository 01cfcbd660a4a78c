package shopdetect

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeFollowsRedirectsAndCapturesResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/home", http.StatusFound)
	})
	mux.HandleFunc("/home", func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "Chrome")
		w.Header().Set("X-Shopify-Stage", "production")
		http.SetCookie(w, &http.Cookie{Name: "_shopify_y", Value: "tracking", Path: "/"})
		w.Write([]byte("<html><head><title>Demo shop</title></head><body>cdn.shopify.com</body></html>"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	d := New(srv.Client())
	d.Logger = testLogger()

	res, err := d.probe(context.Background(), srv.URL+"/")
	require.NoError(t, err)

	assert.Equal(t, srv.URL+"/home", res.FinalURL)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "production", res.Header.Get("X-Shopify-Stage"))
	assert.Equal(t, "Demo shop", res.Title)
	assert.Contains(t, res.Body, "cdn.shopify.com")

	require.Len(t, res.Cookies, 1)
	assert.Equal(t, "_shopify_y", res.Cookies[0].Name)
}

func TestProbeBodyIsCapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("a", 4096)))
	}))
	defer srv.Close()

	d := New(srv.Client())
	d.Logger = testLogger()
	d.MaxBodySize = 1024

	res, err := d.probe(context.Background(), srv.URL+"/")
	require.NoError(t, err)
	assert.Len(t, res.Body, 1024)
}

func TestProbeNetworkFailure(t *testing.T) {
	d := New(&http.Client{})
	d.Logger = testLogger()

	// Port 1 is never listening; the dial fails immediately.
	_, err := d.probe(context.Background(), "http://127.0.0.1:1/")
	require.Error(t, err)

	var pe *ProbeError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "http://127.0.0.1:1/", pe.URL)
	assert.Error(t, pe.Unwrap())
}

func TestProbeHonorsContextCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	d := New(srv.Client())
	d.Logger = testLogger()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.probe(ctx, srv.URL+"/")
	require.Error(t, err)
}

func TestExtractTitle(t *testing.T) {
	assert.Equal(t, "Tea Shop", extractTitle([]byte("<html><head><title> Tea Shop </title></head></html>")))
	assert.Equal(t, "", extractTitle([]byte("<html><head></head><body>no title</body></html>")))
	assert.Equal(t, "", extractTitle(nil))
}

func TestNewBrowserClientFollowsDefaults(t *testing.T) {
	c := NewBrowserClient(0)
	require.NotNil(t, c)
	assert.Nil(t, c.CheckRedirect) // default policy follows redirects
}
