package shopdetect

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/html"
)

// ProbeResult is the outcome of a single GET against one candidate URL.
// It is scoped to one candidate attempt and never persisted.
type ProbeResult struct {
	// FinalURL is the URL after all redirects were followed.
	FinalURL   string
	StatusCode int
	Header     http.Header
	// Cookies are the cookies set by the final response.
	Cookies []*http.Cookie
	Body    string
	// Title is the page <title>, captured for logging and display only.
	Title string
}

// probe issues one GET with the detector's browser identity, following
// redirects, and captures everything the signal extractor needs.
func (d *Detector) probe(ctx context.Context, candidate string) (*ProbeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, d.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, candidate, nil)
	if err != nil {
		return nil, &ProbeError{URL: candidate, Err: err}
	}
	d.setIdentity(req)

	d.Logger.Debug("GET", "url", candidate)
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, &ProbeError{URL: candidate, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, d.MaxBodySize))
	if err != nil {
		return nil, &ProbeError{URL: candidate, Err: err}
	}

	finalURL := candidate
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &ProbeResult{
		FinalURL:   finalURL,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Cookies:    resp.Cookies(),
		Body:       string(body),
		Title:      extractTitle(body),
	}, nil
}

// setIdentity stamps the fixed browser identity on an outbound request.
func (d *Detector) setIdentity(req *http.Request) {
	req.Header.Set("User-Agent", d.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
}

// NewBrowserClient builds the default probing client: redirects are
// followed automatically and https dials present a Chrome TLS
// ClientHello so the transport-level identity matches the User-Agent.
func NewBrowserClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialTLSContext: dialTLSChrome,
		},
	}
}

// dialTLSChrome establishes a TLS connection using a Chrome fingerprint
// via utls.
func dialTLSChrome(ctx context.Context, network, addr string) (net.Conn, error) {
	dialer := &net.Dialer{}
	rawConn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	host, _, _ := net.SplitHostPort(addr)
	tlsConn := utls.UClient(rawConn, &utls.Config{
		ServerName: host,
	}, utls.HelloChrome_Auto)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		rawConn.Close()
		return nil, err
	}
	return tlsConn, nil
}

// extractTitle pulls the <title> text out of raw HTML without building
// a full DOM.
func extractTitle(body []byte) string {
	tokenizer := html.NewTokenizer(bytes.NewReader(body))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			tn, _ := tokenizer.TagName()
			if string(tn) == "title" {
				if tokenizer.Next() == html.TextToken {
					return strings.TrimSpace(string(tokenizer.Text()))
				}
				return ""
			}
		}
	}
}
