// Package detect implements the attribute detectors that derive Family,
// Subtype, Class and Build from raw asset names and folder names.
//
// Detection is pure string analysis: ordered pattern tables where the first
// hit wins. Order encodes priority and must not be rearranged casually;
// several guards exist only to keep, for example, container wagons from
// classifying as passenger stock.
package detect

import (
	"regexp"
	"strings"

	"github.com/railtools/consistfix/internal/domain/taxonomy"
	"github.com/railtools/consistfix/internal/domain/types"
)

// Detector derives classification attributes from names. Safe for
// concurrent use; all state is read-only after construction.
type Detector struct {
	classifier *taxonomy.Classifier
}

// New builds a Detector backed by the given classifier.
func New(classifier *taxonomy.Classifier) *Detector {
	return &Detector{classifier: classifier}
}

var familySeparators = regexp.MustCompile(`[\s_/-]`)

// locomotive family prefixes, most specific handling first. Short codes
// match whole tokens or token+digits only, so "wagons" never reads as WAG.
var locomotiveFamilies = []struct{ key, family string }{
	{"wap", "WAP"},
	{"wag", "WAG"},
	{"wdm", "WDM"},
	{"wdg", "WDG"},
	{"wdp", "WDP"},
	{"wds", "WDS"},
	{"wam", "WAM"},
	{"wcam", "WCAM"},
	{"wcg", "WCG"},
	{"wcm", "WCM"},
}

var genericFamilies = []struct{ key, family string }{
	{"ai", "AI"},
	{"acela", "ACELA"},
}

// Family detects the family attribute.
//
// Engines yield locomotive families (WAP, WAG, MEMU, ...); wagons yield
// coach families (RAJDHANI, SLEEPER, AC, ...).
func (d *Detector) Family(name string, role types.Kind) string {
	lower := strings.ToLower(name)

	if role == types.KindWagon {
		switch {
		case strings.Contains(lower, "rajdhani"):
			return "RAJDHANI"
		case strings.Contains(lower, "pantry") || strings.Contains(lower, "pc"):
			return "PANTRY"
		case strings.Contains(lower, "sleeper") || strings.Contains(lower, "sl"):
			return "SLEEPER"
		case strings.Contains(lower, "chair") || strings.Contains(lower, "accc"):
			return "CHAIR"
		case strings.Contains(lower, "ac") &&
			(strings.Contains(lower, "1a") || strings.Contains(lower, "2a") || strings.Contains(lower, "3a")):
			return "AC"
		case strings.Contains(lower, "general") || strings.Contains(lower, "gs"):
			return "GENERAL"
		case strings.Contains(lower, "power") || strings.Contains(lower, "eog"):
			return "POWER"
		}
		return ""
	}

	// MEMU before EMU, since every memu contains emu.
	switch {
	case strings.Contains(lower, "memu"):
		return "MEMU"
	case strings.Contains(lower, "emu"):
		return "EMU"
	case strings.Contains(lower, "demu") || strings.Contains(lower, "dmu"):
		return "DMU"
	case strings.Contains(lower, "mmu"):
		return "MMU"
	}

	if fam := matchFamilyTable(lower, locomotiveFamilies); fam != "" {
		return fam
	}
	return matchFamilyTable(lower, genericFamilies)
}

func matchFamilyTable(lower string, table []struct{ key, family string }) string {
	for _, entry := range table {
		if len(entry.key) <= 3 {
			for _, tok := range familySeparators.Split(lower, -1) {
				if !strings.Contains(tok, entry.key) {
					continue
				}
				if tok == entry.key {
					return entry.family
				}
				if rest, ok := strings.CutPrefix(tok, entry.key); ok && allDigits(rest) {
					return entry.family
				}
			}
		} else if strings.Contains(lower, entry.key) {
			return entry.family
		}
	}
	return ""
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FromFolder detects all four attributes from a folder name alone.
func (d *Detector) FromFolder(folder string) (family, subtype, class, build string) {
	if folder == "" {
		return "", "", "", ""
	}
	lower := strings.ToLower(folder)
	family = d.Family(lower, types.KindEngine)
	subtype = d.Subtype(lower)
	class = d.Class(lower, types.KindEngine)
	build = d.Build("", lower)
	return family, subtype, class, build
}

var (
	maintenanceIndicators = []string{
		"plasser", "tamper", "ballast_cleaner", "rail_grinder",
		"maintenance", "track_machine", "crane", "breakdown",
	}

	vandeBharatRoles = []struct {
		pattern string
		role    types.Kind
	}{
		{"vbpowercar", types.KindEngine},
		{"vb_powercar", types.KindEngine},
		{"powercar", types.KindEngine},
		{"power_car", types.KindEngine},
		{"vbdmc", types.KindEngine},
		{"vb_dmc", types.KindEngine},
		{"vbdc", types.KindEngine},
		{"vb_dc", types.KindEngine},
		{"drivingcar", types.KindEngine},
		{"driving_car", types.KindEngine},
		{"vbcc", types.KindWagon},
		{"vb_cc", types.KindWagon},
		{"vbac", types.KindWagon},
		{"vb_ac", types.KindWagon},
		{"vbcoach", types.KindWagon},
		{"vb_coach", types.KindWagon},
	}

	engineRolePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(wap|wag|wdm|wdg|wdp|wds|wam|wcam|wcg|wcm)\d*\b`),
		regexp.MustCompile(`\b(emu|memu|dmu|mmu|demu)\b`),
		regexp.MustCompile(`\b(locomotive|engine|loco)\b`),
	}

	wagonRolePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(coach|wagon|car)\b`),
		regexp.MustCompile(`\b(boxn|bcn|tank|flat|container)\b`),
		regexp.MustCompile(`\b(1a|2a|3a|sl|gs|cc|accc|eog|pc|slr)\b`),
	}
)

// Role guesses whether a name belongs to an engine or a wagon. The boolean
// is false when the name carries no role signal at all.
func (d *Detector) Role(name string) (types.Kind, bool) {
	lower := strings.ToLower(name)

	// Maintenance stock leads consists, so it counts as an engine.
	for _, ind := range maintenanceIndicators {
		if strings.Contains(lower, ind) {
			return types.KindEngine, true
		}
	}

	for _, vb := range vandeBharatRoles {
		if strings.Contains(lower, vb.pattern) {
			return vb.role, true
		}
	}

	for _, re := range engineRolePatterns {
		if re.MatchString(lower) {
			return types.KindEngine, true
		}
	}
	for _, re := range wagonRolePatterns {
		if re.MatchString(lower) {
			return types.KindWagon, true
		}
	}
	return types.KindWagon, false
}
