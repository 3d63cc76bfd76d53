package match

import (
	"strings"

	"github.com/railtools/consistfix/internal/domain/model"
)

// manufacturerCompatible widens manufacturer series codes to the base
// wagon types they actually are.
var manufacturerCompatible = map[string][]string{
	"BSAM": {"BOXN", "BOBYN", "BCNA", "TANK", "FLAT", "FREIGHT"},
	"ASMI": {"BCA", "BCB", "BCN", "BTP", "BLC", "CONTAINER"},
	"CON":  {"CONTAINER", "FLAT", "BLC", "CONCOR"},
}

// incompatibleGroups lists classes that must never substitute for each
// other. A coil carrier cannot stand in for a covered wagon.
var incompatibleGroups = map[string][]string{
	"COIL":   {"BCNA", "BOXN", "TANK", "FLAT", "BLC", "CONTAINER", "FREIGHT"},
	"SLAB":   {"BCNA", "BOXN", "TANK", "FLAT", "BLC", "CONTAINER", "FREIGHT"},
	"AUTO":   {"BCNA", "BOXN", "TANK", "FLAT", "BLC", "CONTAINER", "FREIGHT"},
	"CEMENT": {"BCNA", "BOXN", "TANK", "FLAT", "BLC", "CONTAINER", "FREIGHT"},
	"BCNA":   {"COIL", "SLAB", "AUTO", "CEMENT", "TIPPLER"},
	"BOXN":   {"COIL", "SLAB", "AUTO", "CEMENT", "TIPPLER"},
	"TANK":   {"COIL", "SLAB", "AUTO", "CEMENT"},
}

// wagonCompatibility lists the classes allowed to substitute for a
// wanted class. Specialized wagons only match themselves.
var wagonCompatibility = map[string][]string{
	"COIL":    {"COIL"},
	"SLAB":    {"SLAB"},
	"AUTO":    {"AUTO"},
	"CEMENT":  {"CEMENT"},
	"TIPPLER": {"TIPPLER"},

	"CONTAINER": {"CONTAINER", "FLAT", "BLC", "BLCA", "BLCB", "CONCOR", "CON"},
	"CON":       {"CON", "CONTAINER", "FLAT", "BLC", "CONCOR"},

	"BCNA": {"BCNA", "BCNE", "BCNH", "BCNL", "BCN", "BCCN"},
	"BCNE": {"BCNA", "BCNE", "BCNH", "BCNL", "BCN", "BCCN"},
	"BCN":  {"BCNA", "BCNE", "BCNH", "BCNL", "BCN", "BCCN"},
	"BCCN": {"BCCN", "BCNA", "BCN", "BCBFG", "BCFC"},

	"BOXN":  {"BOXN", "BOXNR", "BOXNG", "BOXNHL", "BOXNM1", "BOXNM2", "BOSTH"},
	"BOXNR": {"BOXN", "BOXNR", "BOXNG", "BOXNHL", "BOXNM1", "BOXNM2", "BOSTH"},
	"BOSTH": {"BOXN", "BOXNR", "BOXNG", "BOXNHL", "BOXNM1", "BOXNM2", "BOSTH"},

	"BTPN":       {"BTPN", "BTAP", "BTCS", "BTFLN", "TANK", "BTI"},
	"BTFLN":      {"BTPN", "BTAP", "BTCS", "BTFLN", "TANK", "BTI"},
	"TANK":       {"BTPN", "BTAP", "BTCS", "BTFLN", "TANK", "BTI"},
	"BTI":        {"BTPN", "BTAP", "BTCS", "BTFLN", "TANK", "BTI"},
	"MILKTANKER": {"MILKTANKER", "VVN", "TANK"},

	"FLAT":   {"FLAT", "BLC", "BLCA", "CONTAINER", "CONCOR", "BCA", "BCB"},
	"BLC":    {"FLAT", "BLC", "BLCA", "CONTAINER", "CONCOR", "BCA", "BCB"},
	"BCA":    {"BCA", "BCB", "BLC", "CONTAINER", "FLAT"},
	"BCB":    {"BCA", "BCB", "BLC", "CONTAINER", "FLAT"},
	"CONCOR": {"FLAT", "BLC", "BLCA", "CONTAINER", "CONCOR"},

	"HPCV":   {"HPCV", "HCPV"},
	"HCPV":   {"HPCV", "HCPV"},
	"PARCEL": {"HPCV", "HCPV", "PARCEL"},

	"BRD":   {"BRD", "BRN", "BRNA", "BRW", "BRAKE", "BVZI"},
	"BRN":   {"BRD", "BRN", "BRNA", "BRW", "BRAKE", "BVZI"},
	"BRNA":  {"BRD", "BRN", "BRNA", "BRW", "BRAKE", "BVZI"},
	"BRW":   {"BRD", "BRN", "BRNA", "BRW", "BRAKE", "BVZI"},
	"BRAKE": {"BRD", "BRN", "BRNA", "BRW", "BRAKE", "BVZI"},
	"BVZI":  {"BRD", "BRN", "BRNA", "BRW", "BRAKE", "BVZI"},

	// BOBYN stays in the open freight family, never a crew vehicle.
	"BOBYN": {"BOBYN", "BOXN", "BOY", "BOST"},
}

// CompatibleWagons filters pool down to wagons allowed to substitute for
// wantedClass. Assets without a detectable class pass through name-based
// restrictions instead.
func CompatibleWagons(pool []*model.Record, wantedClass string) []*model.Record {
	if wantedClass == "" {
		return pool
	}

	var compatible []*model.Record

	if types, ok := manufacturerCompatible[wantedClass]; ok {
		for _, asset := range pool {
			if asset.Class == wantedClass || contains(types, asset.Class) {
				compatible = append(compatible, asset)
			}
		}
		return compatible
	}

	compatClasses := wagonCompatibility[wantedClass]
	if compatClasses == nil {
		compatClasses = []string{wantedClass}
	}
	incompatClasses := incompatibleGroups[wantedClass]

	for _, asset := range pool {
		// BCCW carries cars on two decks; only another BCCW will do.
		if wantedClass == "BCCW" {
			if asset.Class == "BCCW" {
				compatible = append(compatible, asset)
			}
			continue
		}

		if asset.Class != "" && contains(incompatClasses, asset.Class) {
			continue
		}

		if asset.Class != "" {
			if strings.EqualFold(asset.Class, wantedClass) || contains(compatClasses, asset.Class) {
				compatible = append(compatible, asset)
			}
			continue
		}

		if classlessAllowed(asset, wantedClass) {
			compatible = append(compatible, asset)
		}
	}

	return compatible
}

// classlessAllowed applies name-based restrictions to assets without a
// detectable class.
func classlessAllowed(asset *model.Record, wantedClass string) bool {
	name := strings.ToLower(asset.Name)

	if wantedClass == "CONTAINER" {
		return containsAnyTerm(name, "con_", "container", "flat", "blc")
	}

	if contains([]string{"COIL", "SLAB", "AUTO", "CEMENT", "TIPPLER"}, wantedClass) {
		if !strings.Contains(name, strings.ToLower(wantedClass)) {
			return false
		}
		for _, other := range []string{"coil", "slab", "auto", "cement", "tippler"} {
			if other == strings.ToLower(wantedClass) {
				continue
			}
			if strings.Contains(name, other) {
				return false
			}
		}
		return true
	}

	if wantedClass == "BCNA" || wantedClass == "BCN" {
		if containsAnyTerm(name, "coil", "slab", "auto", "cement", "con_") {
			return false
		}
		return containsAnyTerm(name, "bcna", "bcne", "bcnh", "covered")
	}

	if wantedClass == "BOXN" {
		if containsAnyTerm(name, "coil", "slab", "auto", "cement", "covered", "bcna", "con_") {
			return false
		}
		return containsAnyTerm(name, "boxn", "open")
	}

	if containsAnyTerm(name, "con_", "container") &&
		!contains([]string{"CONTAINER", "FLAT", "BLC"}, wantedClass) {
		return false
	}

	if containsAnyTerm(name, "coil", "slab", "auto", "cement") &&
		!contains([]string{"COIL", "SLAB", "AUTO", "CEMENT"}, wantedClass) {
		return false
	}

	if contains([]string{"VVN", "MILKTANKER", "TANK"}, wantedClass) {
		if containsAnyTerm(name, "maersk", "seal", "con_", "container", "ship", "marine", "navy") {
			return false
		}
		if !containsAnyTerm(name, "milk", "tanker", "tank", "vvn", "btpn", "btfln", "bti") {
			return false
		}
	}

	if wantedClass == "BOBYN" {
		if !containsAnyTerm(name, "bobyn", "brn", "brd", "brna") {
			return false
		}
		if containsAnyTerm(name, "caboose", "guard", "crew", "van", "control", "accommodation") {
			return false
		}
		if containsAnyTerm(name, "tank", "boxn", "bcna", "container", "flat", "coil", "slab", "auto", "cement") {
			return false
		}
	}

	return true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsAnyTerm(s string, terms ...string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
