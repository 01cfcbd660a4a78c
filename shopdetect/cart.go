package shopdetect

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// cartPath is the well-known storefront cart API path. Every Shopify
// store serves it as JSON from the shop root.
const cartPath = "/cart.js"

// cartKeys are the top-level keys that mark a payload as a Shopify
// cart; any one of them is enough.
var cartKeys = []string{"items", "token", "attributes"}

// VerifyCartEndpoint probes <base>/cart.js with the detector's usual
// identity and timeout. The boolean is true only for a 200 response
// with a JSON content type whose body decodes to an object carrying at
// least one cart key. The note explains the outcome either way.
//
// The check is additive-only: a positive result upgrades confidence, a
// negative or failed one is recorded but never lowers a verdict, so no
// error path escapes this function.
func (d *Detector) VerifyCartEndpoint(ctx context.Context, base string) (bool, string) {
	cartURL, err := resolveCartURL(base)
	if err != nil {
		return false, fmt.Sprintf("%s check skipped: %v", cartPath, err)
	}

	ctx, cancel := context.WithTimeout(ctx, d.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cartURL, nil)
	if err != nil {
		return false, fmt.Sprintf("%s request failed: %v", cartURL, err)
	}
	d.setIdentity(req)

	d.Logger.Debug("GET", "url", cartURL)
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return false, fmt.Sprintf("%s request failed: %v", cartURL, err)
	}
	defer resp.Body.Close()

	ctype := strings.ToLower(resp.Header.Get("Content-Type"))
	d.Logger.Info("cart endpoint", "url", cartURL, "status", resp.StatusCode, "contentType", ctype)
	if resp.StatusCode != http.StatusOK || !strings.HasPrefix(ctype, "application/json") {
		return false, fmt.Sprintf("%s did not confirm Shopify (status=%d, type=%s)",
			cartURL, resp.StatusCode, ctype)
	}

	var payload any
	if err := json.NewDecoder(io.LimitReader(resp.Body, d.MaxBodySize)).Decode(&payload); err != nil {
		return false, fmt.Sprintf("%s returned malformed JSON: %v", cartURL, err)
	}
	obj, ok := payload.(map[string]any)
	if !ok {
		return false, fmt.Sprintf("%s JSON is not an object", cartURL)
	}
	for _, key := range cartKeys {
		if _, ok := obj[key]; ok {
			return true, fmt.Sprintf("%s is reachable (valid JSON with Shopify cart keys)", cartURL)
		}
	}
	return false, fmt.Sprintf("%s JSON lacks Shopify cart keys", cartURL)
}

// resolveCartURL joins cartPath against the resolved base URL.
func resolveCartURL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	ref := &url.URL{Path: cartPath}
	return u.ResolveReference(ref).String(), nil
}
