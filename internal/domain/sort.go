package domain

import (
	"sort"
	"strings"
)

// SortForDisplay returns the matches in presentation order: simple matches
// before complex ones, each group ordered case-insensitively by trigger.
// The input slice is left untouched.
func SortForDisplay(matches []*Match) []*Match {
	sorted := make([]*Match, len(matches))
	copy(sorted, matches)

	sort.SliceStable(sorted, func(i, j int) bool {
		ci, cj := sorted[i].IsComplex(), sorted[j].IsComplex()
		if ci != cj {
			return !ci
		}
		ti := strings.ToLower(sorted[i].Trigger)
		tj := strings.ToLower(sorted[j].Trigger)
		if ti != tj {
			return ti < tj
		}
		// Tie-break case-sensitively so reordering is deterministic.
		return sorted[i].Trigger < sorted[j].Trigger
	})

	return sorted
}

// FilterMatches keeps the matches whose trigger or replacement contains the
// query, case-insensitively. An empty query keeps everything.
func FilterMatches(matches []*Match, query string) []*Match {
	if query == "" {
		return matches
	}
	q := strings.ToLower(query)

	var filtered []*Match
	for _, m := range matches {
		if strings.Contains(strings.ToLower(m.Trigger), q) ||
			strings.Contains(strings.ToLower(m.Replace), q) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}
