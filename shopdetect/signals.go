package shopdetect

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SignalKind tags one class of evidence.
type SignalKind string

const (
	SignalHeader       SignalKind = "header"
	SignalCookie       SignalKind = "cookie"
	SignalBodyMarker   SignalKind = "body-marker"
	SignalCartEndpoint SignalKind = "cart-endpoint"
)

// Signal is one independently detected piece of evidence.
type Signal struct {
	Kind        SignalKind
	Description string
}

// BodyMarker is one compiled body pattern. ID is the stable identifier
// recorded in evidence when the pattern matches.
type BodyMarker struct {
	ID      string
	Pattern *regexp.Regexp
}

// SignalConfig is the evidence configuration table. The three checks it
// drives are independent and never short-circuit each other; weighting
// lives in the decision loop, not here.
type SignalConfig struct {
	// HeaderPrefix selects response headers by case-insensitive name
	// prefix.
	HeaderPrefix string
	// MaxHeaderNames caps how many header names the evidence records.
	MaxHeaderNames int

	// CookiePrefix selects cookies by case-insensitive name prefix.
	CookiePrefix string
	// MaxCookieNames caps how many cookie names the evidence records.
	MaxCookieNames int

	// BodyMarkers are matched against the raw body text and against
	// every script src extracted from the DOM.
	BodyMarkers []BodyMarker
}

// DefaultSignalConfig returns the fixed Shopify evidence table.
func DefaultSignalConfig() SignalConfig {
	return SignalConfig{
		HeaderPrefix:   "X-Shopify-",
		MaxHeaderNames: 5,
		CookiePrefix:   "_shopify",
		MaxCookieNames: 6,
		BodyMarkers: []BodyMarker{
			{ID: "cdn.shopify.com", Pattern: regexp.MustCompile(`(?i)cdn\.shopify\.com`)},
			{ID: "myshopify.com", Pattern: regexp.MustCompile(`(?i)\bmyshopify\.com\b`)},
			{ID: "window.Shopify", Pattern: regexp.MustCompile(`(?i)window\.Shopify\b`)},
			{ID: "Shopify.theme", Pattern: regexp.MustCompile(`(?i)Shopify\.theme\b`)},
			{ID: "shopify-digital-wallet", Pattern: regexp.MustCompile(`(?i)shopify-digital-wallet`)},
		},
	}
}

// HeaderSignal reports vendor response headers, the single
// highest-trust signal. Names are sorted so evidence is deterministic
// regardless of header map iteration order.
func (c SignalConfig) HeaderSignal(res *ProbeResult) *Signal {
	prefix := strings.ToLower(c.HeaderPrefix)
	var names []string
	for name := range res.Header {
		if strings.HasPrefix(strings.ToLower(name), prefix) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)
	if len(names) > c.MaxHeaderNames {
		names = names[:c.MaxHeaderNames]
	}
	return &Signal{
		Kind: SignalHeader,
		Description: fmt.Sprintf("response headers include %s* (%s)",
			c.HeaderPrefix, strings.Join(names, ", ")),
	}
}

// CookieSignal reports vendor cookies set by the response.
func (c SignalConfig) CookieSignal(res *ProbeResult) *Signal {
	prefix := strings.ToLower(c.CookiePrefix)
	var names []string
	for _, cookie := range res.Cookies {
		if strings.HasPrefix(strings.ToLower(cookie.Name), prefix) {
			names = append(names, cookie.Name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	if len(names) > c.MaxCookieNames {
		names = names[:c.MaxCookieNames]
	}
	return &Signal{
		Kind:        SignalCookie,
		Description: "Shopify cookies set: " + strings.Join(names, ", "),
	}
}

// BodyMarkerSignal reports vendor markers in the HTML. Every pattern is
// tried; all matches are listed in marker-table order.
func (c SignalConfig) BodyMarkerSignal(res *ProbeResult) *Signal {
	srcs := scriptSources(res.Body)
	var hits []string
	for _, m := range c.BodyMarkers {
		if m.Pattern.MatchString(res.Body) || matchAny(m.Pattern, srcs) {
			hits = append(hits, m.ID)
		}
	}
	if len(hits) == 0 {
		return nil
	}
	return &Signal{
		Kind:        SignalBodyMarker,
		Description: "HTML contains markers: " + strings.Join(hits, ", "),
	}
}

// scriptSources extracts script src attributes from the document so CDN
// markers are also tried against the exact asset URLs the page loads.
func scriptSources(body string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil
	}
	var srcs []string
	doc.Find("script[src]").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok {
			srcs = append(srcs, src)
		}
	})
	return srcs
}

func matchAny(re *regexp.Regexp, values []string) bool {
	for _, v := range values {
		if re.MatchString(v) {
			return true
		}
	}
	return false
}
