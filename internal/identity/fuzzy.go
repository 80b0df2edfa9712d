package identity

import (
	"math"
	"slices"
	"strings"
	"unicode"

	"github.com/agext/levenshtein"
)

// Substitutions cost as much as a delete plus an insert, so
// levenshtein.Similarity yields (len(a)+len(b)-distance)/(len(a)+len(b)),
// the classic normalized edit-distance ratio.
var ratioParams = levenshtein.NewParams().SubCost(2)

// MatchName scores two names on 0-100 using the most lenient of three
// heuristics:
//   - full-string edit-distance ratio
//   - partial ratio (best aligned substring, "Jon" vs "Jonathan")
//   - token-sort ratio (word order ignored, "Doe John" vs "John Doe")
//
// Both inputs are lowercased and trimmed first; an empty name scores 0.
func MatchName(a, b string) int {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}
	return max(Ratio(a, b), PartialRatio(a, b), TokenSortRatio(a, b))
}

// Ratio is the edit-distance similarity of the two full strings on 0-100.
func Ratio(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	return percent(similarity(a, b))
}

// PartialRatio slides the shorter string across the longer one and returns
// the best ratio of any equal-length window.
func PartialRatio(a, b string) int {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		return 0
	}

	needle := string(short)
	best := 0.0
	for start := 0; start+len(short) <= len(long); start++ {
		s := similarity(needle, string(long[start:start+len(short)]))
		if s > 0.995 {
			return 100
		}
		best = math.Max(best, s)
	}
	return percent(best)
}

// TokenSortRatio compares the inputs after reducing them to alphanumeric
// tokens and sorting those tokens.
func TokenSortRatio(a, b string) int {
	sa, sb := sortedTokens(a), sortedTokens(b)
	if sa == "" || sb == "" {
		return 0
	}
	return percent(similarity(sa, sb))
}

func similarity(a, b string) float64 {
	return levenshtein.Similarity(a, b, ratioParams)
}

func sortedTokens(s string) string {
	tokens := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	slices.Sort(tokens)
	return strings.Join(tokens, " ")
}

func percent(sim float64) int {
	return int(math.Round(sim * 100))
}
