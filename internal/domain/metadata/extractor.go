// Package metadata extracts classification profiles from asset names and
// folders and builds indexed asset records from them.
package metadata

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/railtools/consistfix/internal/domain/detect"
	"github.com/railtools/consistfix/internal/domain/model"
	"github.com/railtools/consistfix/internal/domain/taxonomy"
	"github.com/railtools/consistfix/internal/domain/types"
)

// Extractor derives Metadata from raw names. Safe for concurrent use.
type Extractor struct {
	classifier *taxonomy.Classifier
	detector   *detect.Detector

	ignoreTokens map[string]struct{}

	// Deterministic scan orders, longest entry first.
	engineClassScan []string
	freightTypeScan []string
	carbodyScan     []string
	specialSetScan  []string
}

// Option applies a configuration option to the Extractor.
type Option func(*Extractor)

// WithIgnoreTokens adds tokens to drop before classification.
func WithIgnoreTokens(extra ...string) Option {
	return func(e *Extractor) {
		for _, tok := range extra {
			e.ignoreTokens[strings.ToLower(tok)] = struct{}{}
		}
	}
}

// New builds an Extractor over the given classifier and detector.
func New(classifier *taxonomy.Classifier, detector *detect.Detector, opts ...Option) *Extractor {
	e := &Extractor{
		classifier: classifier,
		detector:   detector,
		ignoreTokens: setOf(
			"sound", "horn", "ai-horn", "cab", "cabview", "cvf", "sms",
			"sfx", "audio", "wav", "mp3", "readme", "manual", "docs",
			"preview", "thumbnail", "texture", "textures", "common",
		),
		engineClassScan: scanOrder(classifier.EngineClasses()),
		freightTypeScan: scanOrder(classifier.FreightTypes()),
		carbodyScan:     scanOrder(classifier.CarbodyTypes()),
		specialSetScan:  scanOrder(classifier.SpecialSets()),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// scanOrder sorts a vocabulary for substring scans: longest first so BOBYN
// beats BOBY, alphabetical within a length for determinism.
func scanOrder(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}

var (
	nonAlnumRuns = regexp.MustCompile(`[^a-z0-9]+`)
	alnumRuns    = regexp.MustCompile(`[a-z0-9]+`)
	trailingNum  = regexp.MustCompile(`(\d+)$`)
)

// Extract builds the classification profile for an asset name and folder.
func (e *Extractor) Extract(kind types.Kind, name, folder string) model.Metadata {
	meta := model.Metadata{
		Kind:       kind,
		Name:       name,
		Folder:     folder,
		Normalized: model.NormalizeName(name),
	}

	combined := strings.ToLower(folder + " " + name)
	normalized := strings.TrimSpace(nonAlnumRuns.ReplaceAllString(combined, " "))

	tokens := make(map[string]struct{})
	for _, tok := range strings.Fields(normalized) {
		if _, skip := e.ignoreTokens[tok]; skip {
			continue
		}
		tokens[e.classifier.NormalizeAlias(tok)] = struct{}{}
	}
	meta.Tokens = tokens

	switch kind {
	case types.KindEngine:
		e.extractEngine(&meta, combined)
	case types.KindWagon:
		e.extractWagon(&meta, combined)
	}
	e.extractGeographic(&meta)
	e.extractTechnical(&meta)

	if m := trailingNum.FindStringSubmatch(name); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			meta.Variant = &v
		}
	}

	return meta
}

var unitIndicators = []string{"emu", "memu", "dmu", "demu", "mmu", "medha"}

// engineFamilies in priority order; GE last of the big builders since its
// code collides with too many substrings.
var engineFamilies = []struct{ token, family string }{
	{"alco", "ALCO"},
	{"emd", "EMD"},
	{"ge", "GE"},
	{"siemens", "Siemens"},
	{"alstom", "Alstom"},
}

func (e *Extractor) extractEngine(meta *model.Metadata, combined string) {
	allText := searchText(meta, combined)

	for _, tok := range sortedTokens(meta.Tokens) {
		if e.classifier.IsEngineClass(tok) {
			meta.EngineClass = strings.ToUpper(tok)
			meta.Traction = e.classifier.Traction(tok)
			break
		}
	}
	if meta.EngineClass == "" {
		for _, ec := range e.engineClassScan {
			if strings.Contains(allText, ec) {
				meta.EngineClass = strings.ToUpper(ec)
				meta.Traction = e.classifier.Traction(ec)
				break
			}
		}
	}

	if meta.EngineClass != "" {
		series := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(meta.EngineClass) + `[-_]?(\d{1,3}[a-z]?)`)
		if m := series.FindStringSubmatch(allText); m != nil {
			meta.EngineSeries = meta.EngineClass + strings.ToUpper(m[1])
		}
	}

	for _, u := range unitIndicators {
		if _, ok := meta.Tokens[u]; ok || strings.Contains(allText, u) {
			meta.IsUnit = true
			break
		}
	}
	if meta.IsUnit {
		switch {
		case strings.Contains(allText, "emu") || strings.Contains(allText, "mmu"):
			meta.Traction = types.TractionElectric
		case strings.Contains(allText, "dmu"):
			meta.Traction = types.TractionDiesel
		}
	}

	for _, ef := range engineFamilies {
		if _, ok := meta.Tokens[ef.token]; ok || strings.Contains(allText, ef.token) {
			meta.EngineFamily = ef.family
			break
		}
	}
}

// coachPriority lists coach codes most-specific first; PC and SLR beat the
// generic classes they embed.
var coachPriority = []string{"pc", "slr", "eog", "1a", "2a", "3a", "3e", "accc", "cc", "sl", "gs"}

var freightPriority = []string{"hcpv", "hpcv", "parcel", "mail"}

var carbodyTokens = setOf("lhb", "icf", "integral", "conventional")

var setTokens = setOf(
	"utk", "utkrisht", "humsafar", "tejas", "vande", "vandebharat",
	"rajdhani", "shatabdi", "duronto", "garibrath",
)

func (e *Extractor) extractWagon(meta *model.Metadata, combined string) {
	allText := searchText(meta, combined)

	for _, ct := range coachPriority {
		if _, ok := meta.Tokens[ct]; ok || strings.Contains(allText, ct) {
			meta.CoachType = strings.ToUpper(ct)
			break
		}
	}
	if meta.CoachType == "" {
		for _, p := range coachFallbackPatterns {
			if p.re.MatchString(allText) {
				meta.CoachType = p.class
				break
			}
		}
	}

	for _, ft := range freightPriority {
		if strings.Contains(allText, ft) {
			meta.FreightType = strings.ToUpper(ft)
			break
		}
	}
	if meta.FreightType == "" {
		for _, ft := range e.freightTypeScan {
			if strings.Contains(allText, ft) {
				meta.FreightType = strings.ToUpper(ft)
				break
			}
		}
	}

	for _, tok := range sortedTokens(meta.Tokens) {
		if _, ok := carbodyTokens[tok]; ok {
			meta.Carbody = strings.ToUpper(tok)
			break
		}
	}
	if meta.Carbody == "" {
		for _, cb := range e.carbodyScan {
			if strings.Contains(allText, cb) {
				meta.Carbody = strings.ToUpper(cb)
				break
			}
		}
	}

	for _, tok := range sortedTokens(meta.Tokens) {
		if _, ok := setTokens[tok]; ok {
			meta.SetType = strings.ToUpper(tok)
			break
		}
	}
	if meta.SetType == "" {
		for _, st := range e.specialSetScan {
			if strings.Contains(allText, st) {
				meta.SetType = strings.ToUpper(st)
				break
			}
		}
	}
}

var zoneCodes = map[string]string{
	"sr": "SR", "nr": "NR", "er": "ER", "wr": "WR", "cr": "CR",
	"scr": "SCR", "ecr": "ECR", "ncr": "NCR", "swr": "SWR", "nfr": "NFR",
	"nwr": "NWR", "ser": "SER", "secr": "SECR", "wcr": "WCR",
	"ecor": "ECOR", "ner": "NER",
}

var depotCodes = map[string]string{
	"mtp": "MTP", "bza": "BZA", "mas": "MAS", "ndls": "NDLS", "lko": "LKO",
	"mdg": "MDG", "kol": "KOL", "mum": "MUM", "pune": "PUNE", "gzb": "GZB",
	"ald": "ALD", "bbs": "BBS", "ghy": "GHY", "vskp": "VSKP", "kyn": "KYN",
	"trd": "TRD",
}

func (e *Extractor) extractGeographic(meta *model.Metadata) {
	for _, tok := range sortedTokens(meta.Tokens) {
		if meta.Region == "" {
			if z, ok := zoneCodes[tok]; ok {
				meta.Region = z
				continue
			}
		}
		if meta.Depot == "" {
			if d, ok := depotCodes[tok]; ok {
				meta.Depot = d
			}
		}
	}
}

var gaugeCodes = map[string]string{
	"bg": "BG", "mg": "MG", "ng": "NG",
	"broad": "BG", "meter": "MG", "narrow": "NG",
}

var manufacturerCodes = map[string]string{
	"clw": "CLW", "dlw": "DLW", "icf": "ICF", "rcf": "RCF", "beml": "BEML",
	"alstom": "Alstom", "siemens": "Siemens", "medha": "Medha", "bhel": "BHEL",
}

func (e *Extractor) extractTechnical(meta *model.Metadata) {
	for _, tok := range sortedTokens(meta.Tokens) {
		if meta.TechSpec == "" {
			if g, ok := gaugeCodes[tok]; ok {
				meta.TechSpec = g
				continue
			}
		}
		if meta.Manufacturer == "" {
			if m, ok := manufacturerCodes[tok]; ok {
				meta.Manufacturer = m
			}
		}
	}
}

// NewRecord builds a library asset record with its derived lookup keys.
func (e *Extractor) NewRecord(kind types.Kind, name, folder, path string) *model.Record {
	meta := e.Extract(kind, name, folder)

	rec := &model.Record{
		Kind:   kind,
		Name:   name,
		Folder: folder,
		Path:   path,
		Meta:   meta,
	}

	keyTokens := make(map[string]struct{}, len(meta.Tokens)+4)
	for tok := range meta.Tokens {
		keyTokens[tok] = struct{}{}
	}
	for _, tok := range alnumRuns.FindAllString(strings.ToLower(folder), -1) {
		keyTokens["f:"+tok] = struct{}{}
	}
	rec.KeyTokens = keyTokens

	rec.Composite = composite(&meta)
	rec.Class = e.detector.Class(name, kind)
	rec.Normalized = model.NormalizeName(name)
	rec.Tokens = model.TokenSet(rec.Normalized)

	return rec
}

// composite joins the classification codes into one comparable identifier.
func composite(meta *model.Metadata) string {
	var parts []string
	if meta.Carbody != "" {
		parts = append(parts, strings.ToLower(meta.Carbody))
	}
	if meta.FreightType != "" {
		parts = append(parts, strings.ToLower(meta.FreightType))
	} else if meta.CoachType != "" {
		parts = append(parts, strings.ToLower(meta.CoachType))
	}
	if meta.SetType != "" {
		parts = append(parts, strings.ToLower(meta.SetType))
	}
	if meta.EngineClass != "" {
		parts = append(parts, strings.ToLower(meta.EngineClass))
	}
	if meta.EngineSeries != "" {
		parts = append(parts, strings.ToLower(meta.EngineSeries))
	}
	return strings.Join(parts, "_")
}

func searchText(meta *model.Metadata, combined string) string {
	folderNorm := strings.ReplaceAll(strings.ToLower(meta.Folder), "_", " ")
	nameNorm := strings.ReplaceAll(strings.ToLower(meta.Name), "_", " ")
	return folderNorm + " " + nameNorm + " " + combined
}

func sortedTokens(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func setOf(items ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}
