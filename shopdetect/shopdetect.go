// Package shopdetect answers one question: is the site behind a
// user-supplied hostname or URL running on the Shopify platform?
//
// A detection run expands the input into at most four candidate root
// URLs, probes them sequentially with a fixed browser-like identity and
// combines three independent evidence classes (X-Shopify-* response
// headers, _shopify* cookies, markers in the HTML body) plus a /cart.js
// probe into a single Verdict carrying a confidence tier and the full
// evidence trail.
package shopdetect

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// chromeUA is the fixed browser identity sent with every request.
const chromeUA = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// HTTPDoer is an interface satisfied by *http.Client and compatible clients.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Detector classifies websites as Shopify storefronts. Construct with
// New; fields may be adjusted before the first Detect call. A Detector
// holds no per-run state, so one instance can serve concurrent runs.
type Detector struct {
	httpClient HTTPDoer

	// Signals is the evidence configuration table: vendor prefixes and
	// body markers are data, not logic. Override to test against mock
	// responses or to track prefix changes without touching the engine.
	Signals SignalConfig

	// RequestTimeout bounds every outbound request, including the
	// /cart.js check.
	RequestTimeout time.Duration

	// MaxBodySize caps how much of a response body is read.
	MaxBodySize int64

	// UserAgent is sent on every outbound request.
	UserAgent string

	// Logger receives operational events. It is never consulted for the
	// verdict; tests assert on evidence instead.
	Logger *slog.Logger
}

// New creates a Detector. If client is nil, a default client with a
// Chrome TLS ClientHello, automatic redirects and an 8 second timeout
// is used.
func New(client HTTPDoer) *Detector {
	d := &Detector{
		Signals:        DefaultSignalConfig(),
		RequestTimeout: 8 * time.Second,
		MaxBodySize:    10 * 1024 * 1024,
		UserAgent:      chromeUA,
		Logger:         slog.Default(),
	}
	if client == nil {
		client = NewBrowserClient(d.RequestTimeout)
	}
	d.httpClient = client
	return d
}

// Detect resolves input to candidate URLs and probes them in order until
// a verdict is reached. It never returns an error: unparseable input,
// unreachable hosts and malformed auxiliary responses all fold into the
// evidence trail of a negative or lower-confidence verdict.
func (d *Detector) Detect(ctx context.Context, input string) *Verdict {
	evidence := []string{}

	candidates := NormalizeCandidates(input)
	if len(candidates) == 0 {
		d.Logger.Warn("no probe candidates for input", "input", input)
		evidence = append(evidence, "input did not yield any probe candidates")
		return &Verdict{Confidence: ConfidenceLow, Evidence: evidence}
	}

	for _, candidate := range candidates {
		res, err := d.probe(ctx, candidate)
		if err != nil {
			cause := err
			var pe *ProbeError
			if errors.As(err, &pe) {
				cause = pe.Err
			}
			d.Logger.Warn("probe failed", "candidate", candidate, "error", cause)
			evidence = append(evidence, fmt.Sprintf("could not reach %s: %v", candidate, cause))
			continue
		}
		d.Logger.Info("probed candidate",
			"candidate", candidate,
			"status", res.StatusCode,
			"finalURL", res.FinalURL,
		)

		// Vendor headers only ever come from Shopify's edge, so they
		// decide on their own. The cart check still runs but its
		// outcome cannot change the verdict.
		if sig := d.Signals.HeaderSignal(res); sig != nil {
			d.Logger.Info("header signal", "candidate", candidate)
			evidence = append(evidence, sig.Description)
			if ok, note := d.VerifyCartEndpoint(ctx, res.FinalURL); ok {
				evidence = append(evidence, note)
			}
			return decided(ConfidenceHigh, res.FinalURL, evidence)
		}

		cookieSig := d.Signals.CookieSignal(res)
		if cookieSig != nil {
			d.Logger.Info("cookie signal", "candidate", candidate)
			evidence = append(evidence, cookieSig.Description)
		}
		markerSig := d.Signals.BodyMarkerSignal(res)
		if markerSig != nil {
			d.Logger.Info("body marker signal", "candidate", candidate)
			evidence = append(evidence, markerSig.Description)
		}

		cartOK, cartNote := d.VerifyCartEndpoint(ctx, res.FinalURL)
		if cartOK {
			d.Logger.Info("cart endpoint confirmed", "candidate", candidate)
			evidence = append(evidence, cartNote)
			return decided(ConfidenceHigh, res.FinalURL, evidence)
		}

		switch {
		case cookieSig != nil && markerSig != nil:
			evidence = append(evidence, cartNote)
			return decided(ConfidenceHigh, res.FinalURL, evidence)
		case cookieSig != nil || markerSig != nil:
			evidence = append(evidence, cartNote)
			return decided(ConfidenceMedium, res.FinalURL, evidence)
		}

		evidence = append(evidence, fmt.Sprintf("no Shopify signals at %s", res.FinalURL))
	}

	d.Logger.Info("no candidate produced a signal", "input", input)
	return &Verdict{Confidence: ConfidenceLow, Evidence: evidence}
}

func decided(conf Confidence, resolvedURL string, evidence []string) *Verdict {
	return &Verdict{
		IsShopify:   true,
		Confidence:  conf,
		ResolvedURL: resolvedURL,
		Evidence:    evidence,
	}
}
