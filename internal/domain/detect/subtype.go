package detect

import (
	"regexp"
	"strings"

	"github.com/railtools/consistfix/internal/domain/types"
)

var (
	manufacturerPrefixes = []string{"bsam_", "asmi", "con_"}

	// Containers first so flat wagons never classify as passenger stock.
	containerIndicators = []string{
		"con_", "container", "concor", "intermodal",
		"flat", "flatcar", "blc", "blca", "blcb",
	}

	passengerIndicators = []string{
		"1a", "2a", "3a", "ac", "sl", "gen", "chair", "sleeper", "pantry",
		"eog", "pc", "slr", "fc", "sc", "gn", "cc", "accc",
	}

	freightLocoIndicators = []string{
		"wdg", "wag",
		"wdg3", "wdg3a", "wdg4", "wdg4d", "wdg4g",
		"wag5", "wag7", "wag9", "wag12",
		"freight", "goods", "cargo",
	}

	cabooseIndicators = []string{
		"caboose", "brake_van", "guard_van", "crew_car",
		"ir_caboose", "ir_brake", "ir_guard",
		"_caboose", "/caboose", "-caboose", "caboose_", "caboose/", "caboose-",
		"brakevan", "guardvan", "crewvan",
		"bvzi", "brd", "brn", "brna", "brw",
	}

	// Signals that a name is really a typed wagon or a locomotive, where a
	// brake-van token is likely just part of a compound name.
	compoundWagonIndicators = []string{
		"hcpv", "hpcv",
		"bcna", "bcne", "bcnh", "bcnl", "bccnr",
		"boxn", "boxnha", "boxnhl",
		"tank", "tanker",
		"flat", "flatbed",
		"cement", "coil", "container",
	}

	compoundLocoIndicators = []string{
		"wap", "wag", "wam", "wcam", "wcg", "wcm",
		"wdg", "wdm", "wdp", "wds",
		"emu", "memu", "mmu", "dmu", "demu",
		"brw", "mgs", "ajj", "tkd", "bza", "bpl", "et",
	}

	brakeVanClasses = map[string]struct{}{
		"BRD": {}, "BRN": {}, "BRNA": {}, "BRW": {}, "BRAKE": {}, "BVZI": {},
	}

	freightWagonIndicators = []string{
		"bcna", "bcne", "bcnh", "bcnl", "bccnr", "bccw", "bcn", "bccn",
		"bcbfg", "bcfc",
		"boxn", "boxnr", "boxng", "boxnhl", "boxnm1", "boxnm2", "bosth",
		"tank", "freight", "goods", "cargo",
		"bobo", "bobr", "boby", "bobyn",
		"btpn", "btap", "btfln", "bti",
		"flat", "flatcar", "container", "concor", "blc",
		"brd", "brn", "brna", "brake", "bca", "bcb",
		"hpcv", "hcpv", "parcel", "mail", "post", "baggage", "luggage_van",
		"coil", "slab", "billet", "pipe", "automobile", "timber", "cement",
		"milktanker",
		"bsam", "asmi", "apl",
	}

	passengerLocoIndicators = []string{
		"wap", "wdp",
		"wap1", "wap4", "wap5", "wap7",
		"wdp1", "wdp3", "wdp4", "wdp4b", "wdp4d", "wdp4e",
	}

	passengerCoachIndicators = []string{
		"1a", "2a", "3a", "1ac", "2ac", "3ac", "ac1", "ac2", "ac3",
		"sl", "slp", "sleeper", "sleeping",
		"gs", "gen", "general", "gencar", "unreserved",
		"cc", "chair", "chaircar", "accc", "ac_chair",
		"passenger", "coach",
		"utk", "utkrisht", "humsafar", "tejas", "rajdhani", "shatabdi",
		"duronto", "vande", "vandebharat",
	}

	serviceIndicators = []string{
		"eog", "generator", "power", "powercar",
		"maintenance", "service", "inspection",
		"pc", "pantry", "pantrycar", "catering",
		"ai_system", "ai_horn", "horn_system",
	}
)

var subtypeTokenSplit = regexp.MustCompile(`[\s_/-]`)

// Short freight locomotive codes need whole-word matches.
var freightLocoShort = func() map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp)
	for _, ind := range freightLocoIndicators {
		if len(ind) <= 3 {
			out[ind] = regexp.MustCompile(`\b` + ind + `\b`)
		}
	}
	return out
}()

// Subtype detects whether a name denotes Passenger, Freight, Caboose or
// Service stock. Empty string means undetermined.
func (d *Detector) Subtype(name string) string {
	lower := strings.ToLower(name)

	clean := lower
	for _, prefix := range manufacturerPrefixes {
		if rest, ok := strings.CutPrefix(clean, prefix); ok {
			clean = rest
			break
		}
	}

	if containsAny2(lower, clean, containerIndicators) {
		return types.SubtypeFreight
	}

	if containsAny(lower, passengerIndicators) {
		return types.SubtypePassenger
	}

	for _, ind := range freightLocoIndicators {
		if len(ind) <= 3 {
			if freightLocoShort[ind].MatchString(lower) {
				return types.SubtypeFreight
			}
		} else if strings.Contains(lower, ind) {
			return types.SubtypeFreight
		}
	}

	if sub := d.cabooseSubtype(name, lower, clean); sub != "" {
		return sub
	}

	if cls := d.Class(name, types.KindWagon); cls != "" {
		if _, ok := brakeVanClasses[cls]; ok {
			return types.SubtypeCaboose
		}
	}

	if containsAny2(lower, clean, freightWagonIndicators) {
		return types.SubtypeFreight
	}

	if containsAny(lower, passengerLocoIndicators) {
		return types.SubtypePassenger
	}

	// Coach codes only count outside container and manufacturer contexts,
	// and short codes must stand as whole tokens.
	if !containsAny2(lower, clean, []string{"con_", "container", "freight", "bsam", "asmi"}) {
		tokens := subtypeTokenSplit.Split(lower, -1)
		for _, ind := range passengerCoachIndicators {
			if len(ind) <= 2 {
				for _, tok := range tokens {
					if tok == ind {
						return types.SubtypePassenger
					}
				}
			} else if strings.Contains(lower, ind) || strings.Contains(clean, ind) {
				return types.SubtypePassenger
			}
		}
	}

	if containsAny2(lower, clean, serviceIndicators) {
		return types.SubtypeService
	}

	// SLR is the guard van of a passenger rake.
	if strings.Contains(lower, "slr") &&
		!containsAny2(lower, clean, []string{"con_", "container"}) {
		return types.SubtypePassenger
	}

	return ""
}

func (d *Detector) cabooseSubtype(name, lower, clean string) string {
	hasWagon := containsAny2(lower, clean, compoundWagonIndicators)
	hasLoco := containsAny2(lower, clean, compoundLocoIndicators)
	looksLikeLoco := hasDigit(name) &&
		(strings.Contains(name, "_") || len(strings.Fields(name)) > 1) &&
		len(name) > 6

	if hasWagon || hasLoco || looksLikeLoco {
		primary := d.Class(name, types.KindWagon)
		if primary == "" {
			primary = d.Class(clean, types.KindWagon)
		}
		if primary != "" {
			if _, ok := brakeVanClasses[primary]; !ok {
				return ""
			}
		} else if looksLikeLoco {
			return ""
		}
	}

	if containsAny2(lower, clean, cabooseIndicators) {
		return types.SubtypeCaboose
	}
	return ""
}

func containsAny(s string, indicators []string) bool {
	for _, ind := range indicators {
		if strings.Contains(s, ind) {
			return true
		}
	}
	return false
}

func containsAny2(a, b string, indicators []string) bool {
	for _, ind := range indicators {
		if strings.Contains(a, ind) || strings.Contains(b, ind) {
			return true
		}
	}
	return false
}

func hasDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
