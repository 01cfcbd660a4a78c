package shopdetect

import (
	"net/url"
	"strings"
)

// NormalizeCandidates turns raw user input into the ordered list of root
// URLs a detection run will probe. For each host variant (the host as
// given first, then its www counterpart) it emits the https root before
// the http root, de-duplicated in first-seen order. The result holds at
// most four URLs and is empty when the input has no usable host.
//
// The function is pure: no network access, deterministic for identical
// input.
func NormalizeCandidates(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	withScheme := raw
	if !hasHTTPScheme(raw) {
		withScheme = "https://" + raw
	}

	u, err := url.Parse(withScheme)
	if err != nil {
		return nil
	}
	host := u.Host
	if host == "" {
		// Inputs like "https:///shop" parse with an empty host; fall
		// back to the path component the way lenient parsers do.
		host = u.Path
	}
	host = strings.Trim(host, "/")
	if host == "" {
		return nil
	}

	variants := []string{host}
	if strings.HasPrefix(host, "www.") {
		variants = append(variants, strings.TrimPrefix(host, "www."))
	} else {
		variants = append(variants, "www."+host)
	}

	seen := make(map[string]struct{}, 4)
	candidates := make([]string, 0, 4)
	for _, h := range variants {
		for _, scheme := range []string{"https", "http"} {
			c := scheme + "://" + h + "/"
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			candidates = append(candidates, c)
		}
	}
	return candidates
}

func hasHTTPScheme(s string) bool {
	l := strings.ToLower(s)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}
