// Package suggest offers "did you mean" hints for searches with no results.
package suggest

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Closest returns the candidate word nearest to query, or "" when nothing is
// within maxDistance edits. Candidates are split into words and compared
// case-insensitively; ties keep the first candidate seen.
func Closest(query string, candidates []string, maxDistance int) string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return ""
	}
	best := ""
	bestDist := maxDistance + 1
	seen := map[string]struct{}{}
	for _, candidate := range candidates {
		for _, word := range strings.Fields(candidate) {
			lower := strings.ToLower(word)
			if _, ok := seen[lower]; ok {
				continue
			}
			seen[lower] = struct{}{}
			dist := levenshtein.ComputeDistance(query, lower)
			if dist < bestDist {
				best = word
				bestDist = dist
			}
		}
	}
	if best == "" || strings.EqualFold(best, query) {
		return ""
	}
	return best
}

// MaxDistance scales the edit budget with the query length.
func MaxDistance(query string) int {
	n := len([]rune(strings.TrimSpace(query)))
	switch {
	case n <= 2:
		return 0
	case n <= 5:
		return 1
	default:
		return 2
	}
}
