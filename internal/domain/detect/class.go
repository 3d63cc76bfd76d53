package detect

import (
	"regexp"
	"strings"

	"github.com/railtools/consistfix/internal/domain/types"
)

// Go's regexp has no lookarounds, so boundary checks consume one
// non-alphanumeric character on each side instead. Input is always
// lowercased before matching.
func bounded(core string) string {
	return `(?:^|[^a-z0-9])(?:` + core + `)(?:[^a-z0-9]|$)`
}

func leftBounded(core string) string {
	return `(?:^|[^a-z0-9])(?:` + core + `)`
}

type classPattern struct {
	re    *regexp.Regexp
	class string
}

func compileClassPatterns(entries []struct{ expr, class string }) []classPattern {
	out := make([]classPattern, 0, len(entries))
	for _, e := range entries {
		out = append(out, classPattern{regexp.MustCompile(e.expr), e.class})
	}
	return out
}

// compoundClassIndicators flag names carrying more than one wagon code;
// parcel vans win those ties.
var compoundClassIndicators = []string{
	"brn", "brna", "brd", "brw", "hcpv", "hpcv", "bcn", "boxn", "bvcm",
}

// brake van family, checked before everything else. Order matters: brn
// before brna keeps whole-token matching exact.
var brakeVanTokens = []struct{ token, class string }{
	{"brn", "BRN"},
	{"brna", "BRNA"},
	{"brd", "BRD"},
	{"brs", "BRS"},
	{"bru", "BRU"},
	{"brake", "BRAKE"},
	{"bvzi", "BVZI"},
	{"bvzc", "BVZC"},
}

var brakeVanBoundary = func() []classPattern {
	entries := make([]struct{ expr, class string }, 0, len(brakeVanTokens))
	for _, bv := range brakeVanTokens {
		entries = append(entries, struct{ expr, class string }{bounded(bv.token), bv.class})
	}
	return compileClassPatterns(entries)
}()

// locomotive class patterns; group 1 captures the base class code.
var locomotivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(wdg[-_]?(?:3a?|4[dg]?|5))`),
	regexp.MustCompile(`(wdm[-_]?(?:2[abc]?|3[abcdf]?|7|16847|18500))`),
	regexp.MustCompile(bounded(`(wap(?:1|4e?|5|7))`)),
	regexp.MustCompile(bounded(`(wag(?:5[adehp]?|7|9h?|12))`)),
	regexp.MustCompile(bounded(`(wdp(?:1|2a?|3a?|4[bd]?))`)),
	regexp.MustCompile(bounded(`(wcam(?:1|2p?|3))`)),
	regexp.MustCompile(bounded(`(wcg[12])`)),
	regexp.MustCompile(bounded(`(wcm[16]?)`)),
	regexp.MustCompile(bounded(`(wam4(?:6p)?)`)),
	regexp.MustCompile(bounded(`(vbdc)`)),
	regexp.MustCompile(bounded(`(vbdmc)`)),
	regexp.MustCompile(bounded(`(ydm4)`)),
	regexp.MustCompile(bounded(`(zdm506)`)),
}

// explicit wagon and coach class codes, priority ordered. BVCM sits before
// BRAKE, ACCC before CC, BCNA before BCN.
var explicitClassPatterns = compileClassPatterns([]struct{ expr, class string }{
	{bounded(`brn`), "BRN"},
	{bounded(`brna`), "BRNA"},
	{bounded(`brd`), "BRD"},
	{bounded(`brs`), "BRS"},
	{bounded(`bru`), "BRU"},
	{bounded(`bvcm`), "BVCM"},
	{bounded(`brake`), "BRAKE"},

	{bounded(`accc`), "ACCC"},
	{bounded(`1a`), "1A"},
	{bounded(`2a`), "2A"},
	{bounded(`3a`), "3A"},
	{bounded(`sl`), "SL"},
	{bounded(`slr`), "SLR"},
	{bounded(`sc`), "SC"},
	{bounded(`gs`), "GS"},
	{bounded(`pc`), "PC"},
	{bounded(`eog`), "EOG"},
	{bounded(`fc`), "FC"},
	{bounded(`ac\s*[-_]?\s*cc|cc\s*[-_]?\s*ac`), "ACCC"},
	{bounded(`cc`), "CC"},
	{bounded(`gn`), "GN"},
	{bounded(`2s`), "2S"},

	{bounded(`btcs`), "BTCS"},
	{bounded(`btpgln`), "BTPGLN"},
	{bounded(`apl`), "APL"},
	{bounded(`auto`), "AUTO"},
	{bounded(`coil`), "COIL"},
	{bounded(`hopper`), "HOPPER"},
	{bounded(`pipe`), "PIPE"},
	{bounded(`tender`), "TENDER"},

	{bounded(`hcpv`), "HCPV"},
	{bounded(`hpcv`), "HCPV"},
	{bounded(`parcel`), "PARCEL"},
	{bounded(`mail`), "MAIL"},

	{bounded(`bcna\d*`), "BCNA"},
	{bounded(`bcne`), "BCNE"},
	{bounded(`bcnh`), "BCNH"},
	{bounded(`bcnl`), "BCNL"},
	{bounded(`bccnr`), "BCCNR"},
	{bounded(`bccw`), "BCCW"},
	{bounded(`bcn`), "BCN"},
	{bounded(`bcnhl`), "BCNHL"},
	{bounded(`bccn`), "BCCN"},

	{leftBounded(`bobyn`), "BOBYN"},
	{leftBounded(`boxn`), "BOXN"},
	{leftBounded(`bosth`), "BOSTH"},

	{bounded(`btfln`), "BTFLN"},
	{bounded(`btpn`), "BTPN"},
	{bounded(`tank`), "TANK"},

	{bounded(`flat(?:car)?`), "FLAT"},
	{leftBounded(`blc`), "BLC"},

	// Train-number compounds like 12301_class or 22_goods.
	{bounded(`\d+[-_]?class`), "GN"},
	{bounded(`\d+[-_]?gc\d*`), "EOG"},
	{bounded(`\d+[-_]?gen\d*`), "EOG"},
	{bounded(`\d+gene`), "EOG"},
	{bounded(`\d+[-_]?gene`), "EOG"},
	{bounded(`\d+[-_]?goods?`), "BOXN"},
	{bounded(`\d+[-_]?cargo`), "BOXN"},
	{bounded(`\d+[-_]?cont`), "BOXN"},
	{bounded(`\d+car\d*`), "BOXN"},
	{bounded(`\d+grcar\d*`), "BOXN"},
	{bounded(`\d+wdcar\d*`), "BOXN"},
	{bounded(`oe\d+cardin\d*`), "BOXN"},
	{bounded(`oebarcar`), "BOXN"},

	// Branded liveries that imply a wagon type.
	{bounded(`cream[-_]?bell`), "MILKTANKER"},
	{bounded(`fanta[-_]?time`), "TANK"},
	{bounded(`gnfc`), "TANK"},
	{bounded(`chem`), "TANK"},
})

// embeddedClassPatterns catch codes glued inside compound names like
// "maxbcna" or "superboxn". More specific codes first.
var embeddedClassPatterns = compileClassPatterns([]struct{ expr, class string }{
	{`bcna\d*`, "BCNA"},
	{`bcne`, "BCNE"},
	{`bcnh`, "BCNH"},
	{`bcnl`, "BCNL"},
	{`bccn`, "BCCN"},
	{`bcn\d+`, "BCN"},
	{`bcn`, "BCN"},
	{`accc`, "ACCC"},
	{`boxn[a-z0-9]*`, "BOXN"},
	{`bobyn[a-z0-9]*`, "BOBYN"},
	{`btcs`, "BTCS"},
	{`bvcm`, "BVCM"},
	{`coil`, "COIL"},
	{`hopper`, "HOPPER"},
	{`btfln`, "BTFLN"},
	{`btpn`, "BTPN"},
})

var coachClassPatterns = compileClassPatterns([]struct{ expr, class string }{
	{bounded(`1a`), "1A"},
	{bounded(`2a`), "2A"},
	{bounded(`3a`), "3A"},
	{bounded(`ac3`), "3A"},
	{bounded(`ac2`), "2A"},
	{bounded(`ac1`), "1A"},

	{`vbcc\d*(?:[^a-z0-9]|$)`, "CC"},
	{`vande[-_]?bharat[-_]?cc\d*(?:[^a-z0-9]|$)`, "CC"},
	{`vbexcc\d*(?:[^a-z0-9]|$)`, "EC"},
	{`vande[-_]?bharat[-_]?excc\d*(?:[^a-z0-9]|$)`, "EC"},
	{`executive[-_]?chair[-_]?car(?:[^a-z0-9]|$)`, "EC"},

	{`ac[-_]?1[-_]?tier|1[-_]?tier[-_]?ac`, "1A"},
	{`ac[-_]?2[-_]?tier|2[-_]?tier[-_]?ac`, "2A"},
	{`ac[-_]?3[-_]?tier|3[-_]?tier[-_]?ac`, "3A"},

	{`chaircar[-_]?ac|ac[-_]?chaircar`, "ACCC"},
	{`chair[-_]?car[-_]?ac|ac[-_]?chair[-_]?car`, "ACCC"},
	{`ac[-_]?cc|cc[-_]?ac`, "ACCC"},
	{`ac[-_]?chair|chair[-_]?ac`, "ACCC"},

	{bounded(`gs`), "GS"},
	{bounded(`slp`), "SL"},
	{bounded(`sl`), "SL"},
	{bounded(`sleeper`), "SL"},

	{`pantry[-_]?car|pantry`, "PC"},
	{`guard|luggage[-_]?van`, "SLR"},
	{bounded(`slr`), "SLR"},
	{`generator|power[-_]?car`, "EOG"},
	{bounded(`pc`), "PC"},
	{bounded(`pantry`), "PC"},
	{bounded(`eog`), "EOG"},
	{bounded(`generator`), "EOG"},

	{bounded(`cc`), "CC"},
	{bounded(`chair`), "CC"},

	{bounded(`fc`), "FC"},
	{bounded(`sc`), "SC"},
	{bounded(`gn`), "GN"},
	{bounded(`gen`), "GN"},
	{bounded(`general`), "GN"},

	{`ac[-_]?first|first[-_]?ac`, "1A"},
	{`ac1|1ac`, "1A"},
	{`ac[-_]?second|second[-_]?ac`, "2A"},
	{`ac2|2ac`, "2A"},
	{`ac[-_]?third|third[-_]?ac`, "3A"},
	{`ac3|3ac`, "3A"},

	{`oe[-_]?sleep[-_]?car|oesleepcar`, "SL"},
	{`oe[-_]?serv[-_]?car|oeservcar`, "SLR"},

	{`second[-_]?class|secondclass`, "GS"},
	{`second[-_]?cla`, "GS"},
	{`express[-_]?second[-_]?cla`, "GS"},
	{`exp[-_]?second[-_]?cla`, "GS"},

	{`new[-_]?gc`, "GN"},
	{`gc$`, "GN"},
	{`^gc`, "GN"},
	{`h1$|ha1$`, "1A"},

	{`tender`, "TENDER"},
	{`container`, "CONTAINER"},
	{`con$`, "CONTAINER"},
	{`trans`, "CONTAINER"},
})

var nonAlnumRuns = regexp.MustCompile(`[^a-z0-9]+`)

// Class detects the specific rolling-stock class code (WAP7, 3A, BOXN,
// BRN, ...) from a name. Empty string means no class was recognized.
func (d *Detector) Class(name string, role types.Kind) string {
	if name == "" {
		return ""
	}
	lower := strings.ToLower(name)
	norm := strings.TrimSpace(nonAlnumRuns.ReplaceAllString(lower, " "))

	// Compound names with several wagon codes: parcel vans take priority.
	found := 0
	for _, ind := range compoundClassIndicators {
		if strings.Contains(lower, ind) {
			found++
		}
	}
	if found > 1 && (strings.Contains(lower, "hcpv") || strings.Contains(lower, "hpcv")) {
		return "HCPV"
	}
	if strings.Contains(lower, "bvcm") && strings.Contains(lower, "brake") {
		return "BVCM"
	}

	normTokens := strings.Fields(norm)
	for i, bv := range brakeVanTokens {
		if brakeVanBoundary[i].re.MatchString(lower) {
			return bv.class
		}
		for _, tok := range normTokens {
			if tok == bv.token {
				return bv.class
			}
		}
		if strings.Contains(lower, "_"+bv.token+"_") || strings.Contains(lower, "-"+bv.token+"-") {
			return bv.class
		}
		if strings.HasPrefix(lower, bv.token+"_") || strings.HasSuffix(lower, "_"+bv.token) {
			return bv.class
		}
	}

	if strings.Contains(lower, "plasser") {
		return "PLASSER"
	}
	for _, term := range []string{"tamper", "ballast_cleaner", "rail_grinder", "track_machine", "crane", "breakdown"} {
		if strings.Contains(lower, term) {
			return "MAINTENANCE"
		}
	}

	// Locomotive classes first so WAG9_HORN does not read as HORN.
	if role != types.KindWagon {
		for _, re := range locomotivePatterns {
			if m := re.FindStringSubmatch(lower); m != nil {
				cls := strings.NewReplacer("-", "", "_", "").Replace(m[1])
				return strings.ToUpper(cls)
			}
		}
	}

	if strings.Contains(lower, "ai") && strings.Contains(lower, "horn") {
		return "AI_HORN"
	}
	if strings.Contains(lower, "horn") {
		return "HORN"
	}

	if base, ok := strings.CutPrefix(lower, "bsam_"); ok {
		for _, ft := range []string{"boxn", "bobyn", "bcna", "tank", "flat"} {
			if strings.HasPrefix(base, ft) {
				return strings.ToUpper(ft)
			}
		}
		return "BSAM"
	}
	if base, ok := strings.CutPrefix(lower, "asmi"); ok {
		for _, ft := range []string{"bca", "bcb", "bcn", "btp", "blc"} {
			if strings.HasPrefix(base, ft) {
				return strings.ToUpper(ft)
			}
		}
		return "ASMI"
	}

	switch {
	case strings.Contains(lower, "memu"):
		return "MEMU"
	case strings.Contains(lower, "emu"):
		return "EMU"
	case strings.Contains(lower, "dmu") || strings.Contains(lower, "demu"):
		return "DMU"
	case strings.Contains(lower, "mmu"):
		return "MMU"
	}

	if strings.HasPrefix(lower, "con_") || strings.Contains(lower, "container") {
		return "CONTAINER"
	}

	for _, p := range explicitClassPatterns {
		if p.re.MatchString(lower) {
			return p.class
		}
	}
	for _, p := range explicitClassPatterns {
		if p.re.MatchString(norm) {
			return p.class
		}
	}

	for _, p := range embeddedClassPatterns {
		loc := p.re.FindStringIndex(lower)
		if loc == nil {
			continue
		}
		if loc[1] == len(lower) {
			return p.class
		}
		if loc[0] > 0 && isLetter(lower[loc[0]-1]) {
			// Preceded by a letter, likely part of another word.
			continue
		}
		return p.class
	}

	// Generic fallback: alias each token and probe the freight table,
	// longest match wins. Prefixes shorter than 3 never match.
	if cls := d.freightTokenFallback(normTokens); cls != "" {
		return cls
	}

	for _, p := range coachClassPatterns {
		if p.re.MatchString(lower) {
			return p.class
		}
	}
	for _, p := range coachClassPatterns {
		if p.re.MatchString(norm) {
			return p.class
		}
	}

	return ""
}

func (d *Detector) freightTokenFallback(tokens []string) string {
	freight := d.classifier.FreightTypes()
	aliases := d.classifier.Aliases()

	best := ""
	for _, tok := range tokens {
		canon := tok
		if mapped, ok := aliases[tok]; ok {
			canon = mapped
		}
		cand := ""
		if _, ok := freight[canon]; ok {
			cand = strings.ToUpper(canon)
		} else {
			for l := len(canon); l > 2; l-- {
				if _, ok := freight[canon[:l]]; ok {
					cand = strings.ToUpper(canon[:l])
					break
				}
			}
		}
		if cand != "" && len(cand) > len(best) {
			best = cand
		}
	}
	return best
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
