package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	testCases := []struct {
		s, t     string
		expected int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"bonjour", "bonjour", 0},
		{"chat", "chien", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"ça va", "ca va", 1},
		{"bonjour", "bonsoir", 2},
	}
	for _, tc := range testCases {
		t.Run(tc.s+"/"+tc.t, func(t *testing.T) {
			assert.Equal(t, tc.expected, Levenshtein(tc.s, tc.t))
		})
	}
}

func TestLevenshteinMetricProperties(t *testing.T) {
	words := []string{"", "a", "chat", "chien", "chiens", "niche", "bonjour", "ça va", "oui et toi"}
	for _, a := range words {
		assert.Zero(t, Levenshtein(a, a))
		for _, b := range words {
			ab := Levenshtein(a, b)
			assert.Equal(t, ab, Levenshtein(b, a), "symmetry %q %q", a, b)
			for _, c := range words {
				assert.LessOrEqual(t, Levenshtein(a, c), ab+Levenshtein(b, c), "triangle %q %q %q", a, b, c)
			}
		}
	}
}
