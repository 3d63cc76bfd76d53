package metadata

import "regexp"

// Coach-type fallback patterns, tried in order when no priority code was
// present as a token. Boundary checks consume a non-alphanumeric character
// since Go's regexp has no lookarounds; input is lowercase.
func b(core string) string {
	return `(?:^|[^a-z0-9])(?:` + core + `)(?:[^a-z0-9]|$)`
}

type coachPattern struct {
	re    *regexp.Regexp
	class string
}

var coachFallbackPatterns = func() []coachPattern {
	entries := []struct{ expr, class string }{
		{b(`1a`), "1A"},
		{b(`2a`), "2A"},
		{b(`3a`), "3A"},
		{b(`ac3`), "3A"},
		{b(`ac2`), "2A"},
		{b(`ac1`), "1A"},

		{`vbcc\d*(?:[^a-z0-9]|$)`, "CC"},
		{`vande[-_]?bharat[-_]?cc\d*(?:[^a-z0-9]|$)`, "CC"},
		{`vbexcc\d*(?:[^a-z0-9]|$)`, "EC"},
		{`vande[-_]?bharat[-_]?excc\d*(?:[^a-z0-9]|$)`, "EC"},
		{`executive[-_]?chair[-_]?car(?:[^a-z0-9]|$)`, "EC"},

		{`chaircar[-_]?ac|ac[-_]?chaircar`, "ACCC"},
		{`chair[-_]?car[-_]?ac|ac[-_]?chair[-_]?car`, "ACCC"},
		{`ac[-_]?cc|cc[-_]?ac`, "ACCC"},

		{`ac[-_]?3[-_]?tier|3[-_]?tier[-_]?ac`, "3A"},
		{`ac[-_]?2[-_]?tier|2[-_]?tier[-_]?ac`, "2A"},
		{`ac[-_]?1[-_]?tier|1[-_]?tier[-_]?ac`, "1A"},

		{`ac[-_]?chair|chair[-_]?ac`, "ACCC"},

		{`pantry[-_]?car|pantry`, "PC"},
		{`guard|luggage[-_]?van`, "SLR"},
		{`generator|power[-_]?car`, "EOG"},
		{`slr`, "SLR"},

		{`gs|general[-_]?second`, "GS"},
		{`slp|second[-_]?class[-_]?luggage`, "SL"},
		{`sl|second[-_]?class|sleeper`, "SL"},
		{`cc|chair[-_]?car`, "CC"},
		{`fc|first[-_]?class`, "FC"},
		{`sc|second[-_]?class`, "SC"},
	}

	out := make([]coachPattern, 0, len(entries))
	for _, e := range entries {
		out = append(out, coachPattern{regexp.MustCompile(e.expr), e.class})
	}
	return out
}()
