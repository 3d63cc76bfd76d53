package detect

import (
	"regexp"
	"strings"
)

// buildIndicators are priority ordered: branded liveries beat carbody
// builds, so a "lhb_tejas" coach reads as TEJAS.
var buildIndicators = []struct{ indicator, build string }{
	{"antyodaya", "ANTYODAYA"},
	{"antodaya", "ANTYODAYA"},
	{"duronto", "DURONTO"},
	{"utkrisht", "UTK"},
	{"utk", "UTK"},
	{"ukt", "UTK"},
	{"tejas", "TEJAS"},
	{"humsafar", "HUMSAFAR"},
	{"vande", "VANDE"},
	{"vandebharat", "VANDE"},
	{"garibrath", "GARIBRATH"},
	{"garib_rath", "GARIBRATH"},
	{"samparkkranti", "SAMPARKKRANTI"},
	{"doubledecker", "DOUBLEDECKER"},
	{"_ai", "AI"},
	{"ai_", "AI"},
	{" ai ", "AI"},
	{"artificial_intelligence", "AI"},
	{"ai_system", "AI"},
	{" ai-", "AI"},
	{"-ai ", "AI"},
	{"ai-horn", "AI"},
	{"ai_horn", "AI"},
	{"aihorn", "AI"},
	{"horn_ai", "AI"},
	{"horn-ai", "AI"},
	{"ai system", "AI"},
	{"ai-system", "AI"},
	{"lhb", "LHB"},
	{"linke_hofmann", "LHB"},
	{"modern", "LHB"},
	{"icf", "ICF"},
	{"integral", "ICF"},
	{"conventional", "ICF"},
	{"alco", "ALCO"},
	{"other", "OTHER"},
}

// Bare "ai" fragments need word boundaries so HYUNDAI never reads as AI.
var aiWordIndicators = map[string]*regexp.Regexp{}

func init() {
	for _, ind := range []string{"_ai", "ai_", " ai ", "artificial_intelligence", "ai_system", " ai-", "-ai "} {
		trimmed := strings.TrimSpace(ind)
		aiWordIndicators[ind] = regexp.MustCompile(`\b` + regexp.QuoteMeta(trimmed) + `\b`)
	}
}

// Build detects the build or livery code from name and folder combined.
func (d *Detector) Build(name, folder string) string {
	combined := strings.ToLower(name + " " + folder)

	for _, bi := range buildIndicators {
		if re, ok := aiWordIndicators[bi.indicator]; ok {
			if re.MatchString(combined) {
				return bi.build
			}
		} else if strings.Contains(combined, bi.indicator) {
			return bi.build
		}
	}
	return ""
}
