package model

import (
	"regexp"
	"strings"
)

var (
	nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	alnumRun = regexp.MustCompile(`[a-z0-9]+`)
)

// NormalizeName lowercases s and collapses every non-alphanumeric run into
// a single space. This is the canonical comparison form for asset names.
func NormalizeName(s string) string {
	return strings.TrimSpace(nonAlnum.ReplaceAllString(strings.ToLower(s), " "))
}

// TokenSet splits s into its lowercase alphanumeric tokens.
func TokenSet(s string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, tok := range alnumRun.FindAllString(strings.ToLower(s), -1) {
		tokens[tok] = struct{}{}
	}
	return tokens
}
