package datefield

import (
	"strconv"
	"strings"

	levenshtein "github.com/agnivade/levenshtein"
)

// maxMonthTypos bounds the edit distance accepted for a misspelt month name.
const maxMonthTypos = 2

// MonthName returns the English name of a 0-based month index.
func MonthName(index int) string {
	if index < 0 || index >= len(monthNames) {
		return ""
	}
	return monthNames[index]
}

// MonthIndex resolves a month to its 0-based index. It accepts 1-12, full
// names, three-letter abbreviations, and names within two edits of a full
// name ("Febuary"). Ambiguous misspellings are rejected.
func MonthIndex(name string) (int, bool) {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, false
		}
		return n - 1, true
	}
	for i, m := range monthNames {
		full := strings.ToLower(m)
		if s == full || (len(s) == 3 && strings.HasPrefix(full, s)) {
			return i, true
		}
	}
	best, bestDist, tie := -1, maxMonthTypos+1, false
	for i, m := range monthNames {
		dist := levenshtein.ComputeDistance(s, strings.ToLower(m))
		switch {
		case dist < bestDist:
			best, bestDist, tie = i, dist, false
		case dist == bestDist:
			tie = true
		}
	}
	if best < 0 || tie {
		return 0, false
	}
	return best, true
}
