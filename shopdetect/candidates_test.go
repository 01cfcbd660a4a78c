package shopdetect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCandidates(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "bare host without scheme",
			input: "example.com",
			want: []string{
				"https://example.com/",
				"http://example.com/",
				"https://www.example.com/",
				"http://www.example.com/",
			},
		},
		{
			name:  "www host comes first when given",
			input: "www.example.com",
			want: []string{
				"https://www.example.com/",
				"http://www.example.com/",
				"https://example.com/",
				"http://example.com/",
			},
		},
		{
			name:  "full url with path and query is reduced to the root",
			input: "https://shop.example.com/products/tea?variant=1",
			want: []string{
				"https://shop.example.com/",
				"http://shop.example.com/",
				"https://www.shop.example.com/",
				"http://www.shop.example.com/",
			},
		},
		{
			name:  "scheme detection is case-insensitive",
			input: "HTTP://example.com",
			want: []string{
				"https://example.com/",
				"http://example.com/",
				"https://www.example.com/",
				"http://www.example.com/",
			},
		},
		{
			name:  "surrounding whitespace is trimmed",
			input: "   example.com   ",
			want: []string{
				"https://example.com/",
				"http://example.com/",
				"https://www.example.com/",
				"http://www.example.com/",
			},
		},
		{
			name:  "only the first www label is stripped",
			input: "www.www.example.com",
			want: []string{
				"https://www.www.example.com/",
				"http://www.www.example.com/",
				"https://www.example.com/",
				"http://www.example.com/",
			},
		},
		{name: "empty input", input: "", want: nil},
		{name: "whitespace-only input", input: "   \t ", want: nil},
		{name: "scheme without host", input: "https://", want: nil},
		{name: "slashes only", input: "https:///", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeCandidates(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeCandidatesHTTPSBeforeHTTP(t *testing.T) {
	for _, input := range []string{"example.com", "www.example.org", "shop.test"} {
		got := NormalizeCandidates(input)
		for i := 0; i+1 < len(got); i += 2 {
			assert.Contains(t, got[i], "https://", "candidate %d for %q", i, input)
			assert.Contains(t, got[i+1], "http://", "candidate %d for %q", i+1, input)
		}
	}
}

func TestNormalizeCandidatesInvariants(t *testing.T) {
	inputs := []string{
		"example.com",
		"www.example.com",
		"https://www.example.com/checkout",
		"EXAMPLE.com/path",
		"http://example.com:8080/x",
	}
	for _, input := range inputs {
		got := NormalizeCandidates(input)
		assert.LessOrEqual(t, len(got), 4, "input %q", input)

		seen := map[string]bool{}
		for _, c := range got {
			assert.False(t, seen[c], "duplicate candidate %q for input %q", c, input)
			seen[c] = true
		}

		// Deterministic for identical input.
		assert.Equal(t, got, NormalizeCandidates(input))
	}
}
