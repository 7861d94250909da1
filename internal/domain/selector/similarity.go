package selector

import "github.com/agnivade/levenshtein"

// Distance is the Levenshtein edit distance between a and b with unit-cost
// insertion, deletion and substitution, measured in runes.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// Similarity maps the edit distance between a and b to a confidence.
// Identical strings score exactly 1.0; any other pair lands in [0.6, 0.9].
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}

	maxLen := max(len([]rune(a)), len([]rune(b)))
	similarity := 1.0
	if maxLen > 0 {
		similarity = 1 - float64(Distance(a, b))/float64(maxLen)
	}
	return 0.6 + similarity*0.3
}
