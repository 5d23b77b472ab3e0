// Package suggest finds the closest known name for a mistyped one.
package suggest

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// limit is the largest edit distance still treated as a typo of a name of
// the given length.
func limit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// Closest returns the candidate nearest to name. A unique prefix match wins
// over edit distance; ties go to the earlier candidate.
func Closest(name string, candidates []string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", false
	}
	best, bestDist := "", -1
	for _, cand := range candidates {
		c := strings.ToLower(cand)
		if c == name {
			return cand, true
		}
		if len(name) >= 2 && strings.HasPrefix(c, name) {
			return cand, true
		}
		d := levenshtein.ComputeDistance(name, c)
		if d > limit(len(c)) {
			continue
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = cand, d
		}
	}
	return best, bestDist >= 0
}

// Hint formats a "did you mean" suffix, or "" when nothing is close.
func Hint(name string, candidates []string) string {
	if s, ok := Closest(name, candidates); ok {
		return " (did you mean " + s + "?)"
	}
	return ""
}
