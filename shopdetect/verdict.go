package shopdetect

import (
	"encoding/json"
	"fmt"
)

// Confidence is the coarse strength of a verdict.
type Confidence int

const (
	ConfidenceLow Confidence = iota
	ConfidenceMedium
	ConfidenceHigh
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	default:
		return "low"
	}
}

// MarshalJSON renders the tier as its lowercase name.
func (c Confidence) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// Verdict is the immutable result of one detection run. Evidence keeps
// discovery order across every visited candidate, including failed and
// negative ones.
type Verdict struct {
	IsShopify   bool       `json:"is_shopify"`
	Confidence  Confidence `json:"confidence"`
	ResolvedURL string     `json:"resolved_url,omitempty"`
	Evidence    []string   `json:"evidence"`
}

// ProbeError reports a network-level failure against one candidate URL.
// It never escapes Detect; the decision loop converts it into an
// evidence note and moves on.
type ProbeError struct {
	URL string
	Err error
}

func (e *ProbeError) Error() string { return fmt.Sprintf("probe %s: %v", e.URL, e.Err) }
func (e *ProbeError) Unwrap() error { return e.Err }
