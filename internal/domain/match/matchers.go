// Package match implements the candidate pool filters used by the
// resolution phases: attribute locking, wagon compatibility and the
// digit, wildcard, semantic and partial-token matchers.
package match

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/railtools/consistfix/internal/domain/model"
)

var digitRuns = regexp.MustCompile(`\d+`)

// DigitNear keeps assets whose digit runs line up with the wanted name:
// same number of runs, every run within maxDiff of its counterpart. This
// resolves serial drift like BOXN_4521 against BOXN_4518.
func DigitNear(pool []*model.Record, wantedName string, maxDiff int) []*model.Record {
	wantedDigits := digitRuns.FindAllString(wantedName, -1)
	if len(wantedDigits) == 0 {
		return nil
	}

	var matches []*model.Record
	for _, asset := range pool {
		assetDigits := digitRuns.FindAllString(asset.Name, -1)
		if len(assetDigits) != len(wantedDigits) {
			continue
		}

		near := true
		for i, wd := range wantedDigits {
			wn, err1 := strconv.Atoi(wd)
			an, err2 := strconv.Atoi(assetDigits[i])
			if err1 != nil || err2 != nil || abs(wn-an) > maxDiff {
				near = false
				break
			}
		}
		if near {
			matches = append(matches, asset)
		}
	}
	return matches
}

// Wildcard matches asset names against glob patterns derived from the
// wanted name: underscores widened to '*', digit runs widened to '*',
// underscores narrowed to '?'.
func Wildcard(pool []*model.Record, wantedName string) []*model.Record {
	patterns := []string{
		strings.ToLower(strings.ReplaceAll(wantedName, "_", "*")),
		strings.ToLower(digitRuns.ReplaceAllString(wantedName, "*")),
		strings.ToLower(strings.ReplaceAll(wantedName, "_", "?")),
	}

	var matches []*model.Record
	for _, asset := range pool {
		name := strings.ToLower(asset.Name)
		for _, pattern := range patterns {
			// Malformed patterns from names with '[' just never match.
			if ok, err := filepath.Match(pattern, name); err == nil && ok {
				matches = append(matches, asset)
				break
			}
		}
	}
	return matches
}

// semanticThreshold is the minimum fuzzy similarity for a semantic match.
const semanticThreshold = 75

// Semantic keeps assets whose name is fuzzily similar to the wanted one.
func Semantic(pool []*model.Record, wantedName string) []*model.Record {
	wanted := strings.ToLower(wantedName)

	var matches []*model.Record
	for _, asset := range pool {
		if similarity(wanted, strings.ToLower(asset.Name)) >= semanticThreshold {
			matches = append(matches, asset)
		}
	}
	return matches
}

// partialTokenThreshold is the minimum Jaccard overlap for a partial
// token match.
const partialTokenThreshold = 0.4

// PartialToken keeps assets sharing enough name tokens with the wanted
// name, measured as Jaccard overlap.
func PartialToken(pool []*model.Record, wantedName string) []*model.Record {
	wantedTokens := model.TokenSet(wantedName)
	if len(wantedTokens) == 0 {
		return nil
	}

	var matches []*model.Record
	for _, asset := range pool {
		assetTokens := model.TokenSet(asset.Name)
		if len(assetTokens) == 0 {
			continue
		}

		intersection := 0
		for tok := range wantedTokens {
			if _, ok := assetTokens[tok]; ok {
				intersection++
			}
		}
		union := len(assetTokens)
		for tok := range wantedTokens {
			if _, ok := assetTokens[tok]; !ok {
				union++
			}
		}
		if union > 0 && float64(intersection)/float64(union) >= partialTokenThreshold {
			matches = append(matches, asset)
		}
	}
	return matches
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
