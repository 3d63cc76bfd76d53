package taxonomy

// Vocabulary tables for Indian Railways rolling stock. All entries are
// lowercase; lookups normalize before probing.

func engineClasses() map[string]struct{} {
	return setOf(
		// Electric passenger
		"wap1", "wap4", "wap5", "wap7",
		// Electric freight
		"wag5", "wag7", "wag9", "wag12",
		// Electric mixed and heritage
		"wam4", "wcam2", "wcam3", "wcg2", "wcm1", "wcm2", "wcm3", "wcm4", "wcm5",
		// Diesel freight
		"wdg3", "wdg3a", "wdg4", "wdg4d", "wdg4g",
		// Diesel mixed and mainline
		"wdm2", "wdm3", "wdm3a", "wdm3d",
		// Diesel passenger
		"wdp1", "wdp3", "wdp4", "wdp4b", "wdp4d", "wdp4e",
		// Diesel shunting
		"wds4", "wds6",
		// Heritage and meter gauge
		"ydm4", "yam1",
		// Multiple units are treated as engine classes
		"emu", "memu", "dmu", "mmu", "demu",
		// Maintenance equipment
		"plasser", "maintenance",
	)
}

func coachTypes() map[string]struct{} {
	return setOf(
		"1a", "2a", "3a", "3e", "sl", "gs", "cc", "accc", "ec", "eog", "pc",
		"slr", "ac", "nonac", "chair", "executive", "general", "2s", "diner",
		"buffet", "restaurant", "luggage",
	)
}

func freightTypes() map[string]struct{} {
	return setOf(
		// Open wagons (BOXN family)
		"boxn", "boxnr", "boxncr", "boxng", "boxnhl", "boxnham", "boxnm1",
		"boxnm2", "boxnlb", "boxnhs", "boxnha",
		// Covered wagons
		"bcn", "bcna", "bcne", "bcnh", "bcnhl", "bcnl", "bccnr", "bccw",
		"bcbfg", "bcfc", "bvcm", "covered", "ventilated", "bccn", "bcnloa",
		// Tank wagons
		"tank", "tanker", "btpn", "btap", "btcs", "btpgln", "btaln", "btfln",
		"btmn", "btlr", "btcdl", "btk", "btc", "bti",
		// Flat and container wagons
		"flat", "flatcar", "blc", "blca", "blcb", "bcacm", "bcacbm", "bfns",
		"bfr", "bfki", "bfkn", "bfat", "bft", "nmg", "nmgc", "container",
		"concor", "intermodal", "bca", "bcb", "con",
		// Hopper wagons
		"bobr", "bobrn", "bobrnhs", "boby", "bobyn", "gondola", "hopper",
		"stone", "aggregate", "ballast", "coal", "ore",
		// Brake vans
		"brd", "brn", "brs", "bru", "bvzi", "bvzc", "brake", "brna",
		// Special wagons
		"hpcv", "hcpv", "parcel", "mail", "low_loader", "well_wagon",
		"schnabel", "heavy_haul", "transformer", "reactor",
		// Specialized freight
		"cement", "coil", "slab", "auto", "timber", "billet", "pipe",
		// Milk transport
		"milktanker", "vvn",
		// Manufacturer series
		"bsam", "asmi", "apl",
	)
}

func carbodyTypes() map[string]struct{} {
	return setOf("lhb", "icf", "integral", "conventional", "modern")
}

func specialSets() map[string]struct{} {
	return setOf(
		"vandebharat", "vande", "vb", "train18", "humsafar", "tejas",
		"gatiman", "rajdhani", "shatabdi", "janshatabdi", "duronto",
		"garibrath", "antyodaya", "deendayalu", "anubhuti", "utk", "utkrisht",
		"doubledecker", "samparkkranti", "yuva",
	)
}

func electricClasses() map[string]struct{} {
	return setOf(
		"wap1", "wap4", "wap5", "wap7",
		"wag5", "wag7", "wag9", "wag12",
		"wam4", "wcam2", "wcam3", "wcg2", "wcm1", "wcm2", "wcm3", "wcm4", "wcm5",
		"emu", "memu", "ac_emu", "dc_emu", "mmu",
	)
}

func dieselClasses() map[string]struct{} {
	return setOf(
		"wdg3", "wdg3a", "wdg4", "wdg4d", "wdg4g",
		"wdm2", "wdm3", "wdm3a", "wdm3d",
		"wdp1", "wdp3", "wdp4", "wdp4b", "wdp4d", "wdp4e",
		"wds4", "wds6",
	)
}

func defaultAliases() map[string]string {
	return map[string]string{
		// Multiple-unit classes and car roles
		"memu": "memu", "emu": "emu", "mmu": "mmu", "dmu": "dmu", "demu": "demu",
		"ac_emu": "ac_emu", "dc_emu": "dc_emu", "acemu": "ac_emu", "dcemu": "dc_emu",
		"dmc": "dmc", "dtc": "dtc", "mc": "mc", "tc": "tc", "dc": "dc", "dt": "dt",
		"dmc1": "dmc", "dmc2": "dmc", "dtc1": "dtc", "dtc2": "dtc",
		"motorcoach": "mc", "trailercoach": "tc", "drivingcar": "dc", "drivingtrailer": "dt",
		"dpc": "dpc", "dcc": "dcc", "dpc1": "dpc", "dpc2": "dpc", "dcc1": "dcc", "dcc2": "dcc",
		// AC coach variations
		"1ac": "1a", "ac1": "1a", "acfirst": "1a", "ac_first": "1a", "firstac": "1a",
		"2ac": "2a", "ac2": "2a", "acsecond": "2a", "ac_second": "2a", "secondac": "2a",
		"3ac": "3a", "ac3": "3a", "acthird": "3a", "ac_third": "3a", "thirdac": "3a",
		// General classes
		"gs": "gs", "general": "gs", "gencar": "gs", "unreserved": "gs", "second": "gs",
		// Sleeper variations
		"sl": "sl", "slp": "sl", "sleeper": "sl", "sleeping": "sl",
		// Chair cars
		"cc": "cc", "chair": "cc", "chaircar": "cc",
		"accc": "accc", "ac_chair": "accc", "ac_cc": "accc",
		// Special coaches
		"pc": "pc", "pantry": "pc", "pantrycar": "pc", "catering": "pc",
		"eog": "eog", "generator": "eog", "power": "eog", "powercar": "eog",
		"slr": "slr", "guard": "slr", "luggage": "slr", "caboose": "slr",
		// Engine variations with hyphens and underscores
		"wap-4": "wap4", "wap_4": "wap4", "wap-7": "wap7", "wap_7": "wap7",
		"wdg-3": "wdg3a", "wdg_3": "wdg3a", "wdg-4": "wdg4", "wdg_4": "wdg4",
		"wdm-2": "wdm2", "wdm_2": "wdm2", "wdm-3": "wdm3a", "wdm_3": "wdm3a",
		// Carbody aliases
		"icf": "icf", "integral": "icf", "conventional": "icf",
		"lhb": "lhb", "linke_hofmann": "lhb", "modern": "lhb",
		// Freight aliases
		"boxn": "boxn", "box": "boxn", "bcn": "bcn", "bcna": "bcna",
		"tank": "tank", "tanker": "tank", "btpn": "btpn",
		"flat": "flat", "flatcar": "flat", "container": "container",
		"parcel": "parcel", "hpcv": "hpcv", "hcpv": "hcpv",
		"bsam": "bsam", "asmi": "asmi", "con": "container",
		"cement": "cement", "coil": "coil", "coal": "coal",
		"milktanker": "milktanker", "milk": "vvn",
		// Special set aliases
		"utk": "utk", "utkrisht": "utk", "utkal": "utk",
		"vande": "vande", "vandebharat": "vande", "vb": "vande", "train18": "vande",
		"humsafar": "humsafar", "tejas": "tejas", "rajdhani": "rajdhani",
		"shatabdi": "shatabdi", "duronto": "duronto",
	}
}

func setOf(items ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}
