package match

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// ratio is the percentage similarity of two strings based on edit
// distance. 100 means equal.
func ratio(a, b string) int {
	total := len([]rune(a)) + len([]rune(b))
	if total == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	return (total - 2*dist) * 100 / total
}

// partialRatio slides the shorter string across the longer one and
// returns the best window similarity.
func partialRatio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	if len(ra) == 0 {
		return 0
	}
	if len(ra) == len(rb) {
		return ratio(string(ra), string(rb))
	}

	best := 0
	for i := 0; i+len(ra) <= len(rb); i++ {
		if r := ratio(string(ra), string(rb[i:i+len(ra)])); r > best {
			best = r
			if best == 100 {
				break
			}
		}
	}
	return best
}

// tokenSortRatio compares the two strings with their tokens sorted, so
// word order does not matter.
func tokenSortRatio(a, b string) int {
	return ratio(sortTokens(a), sortTokens(b))
}

func sortTokens(s string) string {
	fields := strings.Fields(strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return ' '
	}, strings.ToLower(s)))
	sort.Strings(fields)
	return strings.Join(fields, " ")
}

// similarity is the best of the three fuzzy metrics.
func similarity(a, b string) int {
	s := ratio(a, b)
	if p := partialRatio(a, b); p > s {
		s = p
	}
	if t := tokenSortRatio(a, b); t > s {
		s = t
	}
	return s
}
