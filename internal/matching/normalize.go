// Package matching provides the deterministic scorers used for
// candidate-job fit: skill classification, experience (years and kind),
// education/qualification matching, and the weighted overall aggregation.
// Every function here is pure given its injected similarity provider, so
// the scorers behave identically whether called directly or dispatched as
// tools by the reasoning loop.
package matching

import (
	"math"
	"strings"
)

// Normalize lowercases a string and collapses all whitespace runs to a
// single space. Shared by every lexical comparison in the engine.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// normalizeAll applies Normalize to every element.
func normalizeAll(items []string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = Normalize(item)
	}
	return out
}

// indexOf returns the index of target in items, or -1.
func indexOf(items []string, target string) int {
	for i, item := range items {
		if item == target {
			return i
		}
	}
	return -1
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
