// Package resolver implements attribute-locked asset resolution. Each
// consist entry has its family, subtype, class and build derived and
// locked, the candidate pool is filtered to assets agreeing with those
// attributes, and a cascade of matchers picks the replacement.
package resolver

import (
	"context"
	"strings"

	"github.com/railtools/consistfix/internal/adapters/index"
	"github.com/railtools/consistfix/internal/domain/detect"
	"github.com/railtools/consistfix/internal/domain/match"
	"github.com/railtools/consistfix/internal/domain/metadata"
	"github.com/railtools/consistfix/internal/domain/model"
	"github.com/railtools/consistfix/internal/domain/scoring"
	"github.com/railtools/consistfix/internal/domain/types"
	"github.com/railtools/consistfix/pkg/logger"
	"github.com/railtools/consistfix/pkg/metrics"
)

// defaultOilIndicators mark a classless freight wagon as tanker material.
var defaultOilIndicators = []string{
	"ongc", "oil", "gas", "petrol", "diesel", "fuel", "tanker", "tank",
	"crude", "refinery", "pipeline", "petroleum", "energy", "hydrocarbon",
}

// extraOilIndicators extend the oil check for entries with no detectable
// attributes at all, where a wider net is safe.
var extraOilIndicators = []string{"lng", "lpg", "chemical", "petrochem"}

// passengerHints disqualify an attribute-less wagon from the freight
// fallback; passenger stock with nothing detectable stays unresolved.
var passengerHints = []string{
	"1a", "2a", "3a", "ac", "sl", "gs", "cc", "chair", "sleeper",
	"passenger", "coach", "pantry", "eog", "rajdhani", "shatabdi",
}

// freightFallbackClasses are wagon classes that imply a Freight subtype
// when the subtype detector came up empty.
var freightFallbackClasses = map[string]struct{}{
	"BCNA": {}, "BCNE": {}, "BCNH": {}, "BCNL": {}, "BCCNR": {}, "BCCW": {},
	"BCN": {}, "BCCN": {}, "BCBFG": {}, "BCFC": {},
	"BOXN": {}, "BOXNR": {}, "BOXNG": {}, "BOXNHL": {}, "BOXNM1": {}, "BOXNM2": {}, "BOSTH": {},
	"BTPN": {}, "BTFLN": {}, "BTAP": {}, "BTCS": {}, "BTI": {}, "TANK": {}, "MILKTANKER": {}, "VVN": {},
	"FLAT": {}, "BLC": {}, "BLCA": {}, "BLCB": {}, "CONTAINER": {}, "CON": {}, "CONCOR": {}, "BCA": {}, "BCB": {},
	"BRD": {}, "BRN": {}, "BRNA": {}, "BRAKE": {}, "BOBYN": {}, "BVZI": {}, "BRW": {}, "BRS": {}, "BRU": {},
	"HCPV": {}, "HPCV": {}, "PARCEL": {}, "MAIL": {},
	"COIL": {}, "SLAB": {}, "AUTO": {}, "CEMENT": {}, "TIPPLER": {},
	"BSAM": {}, "ASMI": {}, "APL": {},
}

// Resolver resolves consist entries against the asset index.
type Resolver struct {
	idx       *index.Index
	extractor *metadata.Extractor
	detector  *detect.Detector
	filter    *match.Filter
	ranker    *scoring.Ranker

	oilIndicators []string
	semantic      bool

	stats  *Stats
	logger logger.Logger
}

// New creates a Resolver with configuration options.
func New(idx *index.Index, extractor *metadata.Extractor, detector *detect.Detector, ranker *scoring.Ranker, opts ...Option) *Resolver {
	r := &Resolver{
		idx:           idx,
		extractor:     extractor,
		detector:      detector,
		filter:        match.NewFilter(detector),
		ranker:        ranker,
		oilIndicators: defaultOilIndicators,
		semantic:      true,
		stats:         NewStats(),
		logger:        logger.Get().Named("resolver"),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Stats returns the live resolution counters.
func (r *Resolver) Stats() *Stats {
	return r.stats
}

// lock holds the attributes derived from a consist entry before matching.
type lock struct {
	family  string
	subtype string
	class   string
	build   string
}

// Resolve picks the best replacement asset for one consist entry.
func (r *Resolver) Resolve(ctx context.Context, kind types.Kind, folder, name string) *model.MatchResult {
	r.stats.recordProcessed()
	metrics.RecordEntryProcessed()

	target := r.extractor.Extract(kind, name, folder)

	lk := lock{
		family:  r.detectEither(name, folder, kind, r.detector.Family),
		subtype: firstNonEmpty(r.detector.Subtype(name), r.detector.Subtype(folder)),
		class:   r.detectEither(name, folder, kind, r.detector.Class),
		build:   r.detector.Build(name, folder),
	}

	// AI horn sounds ship as wagon assets; any library wagon carrying
	// both markers in its name will do.
	if lk.build == "AI" {
		for _, asset := range r.idx.ByKind(types.KindWagon) {
			lower := strings.ToLower(asset.Name)
			if strings.Contains(lower, "ai") && strings.Contains(lower, "horn") {
				return r.resolved(ctx, asset, types.PhaseExactName, 1000, target, 1, "ai-horn-special-match", lk)
			}
		}
		r.logger.Warn(ctx, "no ai horn wagon found in trainset", logger.String("name", name))
	}

	// Second chance: a freight wagon with no class sometimes reveals it
	// only when folder and name are read together.
	if lk.class == "" && strings.EqualFold(lk.subtype, types.SubtypeFreight) {
		if alt := r.detector.Class(folder+"_"+name, kind); alt != "" {
			lk.class = alt
		}
	}

	// Third chance: a recognizable freight wagon class implies the subtype.
	if lk.subtype == "" && lk.class != "" {
		if _, ok := freightFallbackClasses[strings.ToUpper(lk.class)]; ok {
			lk.subtype = types.SubtypeFreight
		}
	}

	// A freight wagon with no class defaults to a tanker when it smells
	// of oil, otherwise to generic freight.
	if lk.class == "" && strings.EqualFold(lk.subtype, types.SubtypeFreight) && kind == types.KindWagon {
		if r.hasOilIndicator(name, folder, false) {
			lk.class = "TANK"
		} else {
			lk.class = "FREIGHT"
		}
	}

	if lk.family == "" && lk.subtype == "" && lk.class == "" && lk.build == "" {
		if result := r.resolveNoAttributes(ctx, kind, folder, name, target, &lk); result != nil {
			return result
		}
	}

	all := r.idx.ByKind(kind)

	// Exact name anywhere in the pool wins outright, attributes or not.
	var exactAny []*model.Record
	for _, asset := range all {
		if model.NameEqual(asset.Name, name) {
			exactAny = append(exactAny, asset)
		}
	}
	if len(exactAny) > 0 {
		if chosen := r.ranker.ChooseBest(exactAny, folder); chosen != nil {
			return r.resolved(ctx, chosen, types.PhaseExactName, 1000, target, len(exactAny), "exact-name-any-attributes", lk)
		}
	}

	locked := r.filter.StrictAttributes(all, lk.family, lk.subtype, lk.class, lk.build)
	if len(locked) == 0 {
		locked = r.filter.LenientClass(all, lk.class)
		if len(locked) == 0 {
			return r.unresolved(ctx, target, len(all), "no-matching-attributes-even-lenient", lk)
		}
	}

	var exactLocked []*model.Record
	for _, asset := range locked {
		if model.NameEqual(asset.Name, name) {
			exactLocked = append(exactLocked, asset)
		}
	}
	if len(exactLocked) > 0 {
		if chosen := r.ranker.ChooseBest(exactLocked, folder); chosen != nil {
			return r.resolved(ctx, chosen, types.PhaseExactName, 1000, target, len(exactLocked), "exact-name-locked", lk)
		}
	}

	if chosen := r.ranker.RankByNameThenTokens(locked, name, folder, lk.class, lk.build); chosen != nil {
		return r.resolved(ctx, chosen, types.PhaseTokenAll, 900, target, len(locked), "token-match-locked", lk)
	}

	var local []*model.Record
	for _, asset := range locked {
		if strings.EqualFold(asset.Folder, folder) {
			local = append(local, asset)
		}
	}
	if len(local) > 0 {
		if chosen := r.ranker.RankByNameThenTokens(local, name, folder, lk.class, lk.build); chosen != nil {
			return r.resolved(ctx, chosen, types.PhaseLocalFolder, 850, target, len(local), "local-folder-match", lk)
		}
	}

	if near := match.DigitNear(locked, name, r.ranker.Weights().NearDigitMaxDiff); len(near) > 0 {
		if chosen := r.ranker.RankByNameThenTokens(near, name, folder, lk.class, lk.build); chosen != nil {
			return r.resolved(ctx, chosen, types.PhaseDigitNear, 800, target, len(near), "digit-near-match", lk)
		}
	}

	if wild := match.Wildcard(locked, name); len(wild) > 0 {
		if chosen := r.ranker.RankByNameThenTokens(wild, name, folder, lk.class, lk.build); chosen != nil {
			return r.resolved(ctx, chosen, types.PhaseWildcard, 750, target, len(wild), "wildcard-match", lk)
		}
	}

	if r.semantic {
		if sem := match.Semantic(locked, name); len(sem) > 0 {
			if chosen := r.ranker.RankByNameThenTokens(sem, name, folder, lk.class, lk.build); chosen != nil {
				return r.resolved(ctx, chosen, types.PhaseSemantic, 700, target, len(sem), "semantic-match", lk)
			}
		}
	}

	if partial := match.PartialToken(locked, name); len(partial) > 0 {
		if chosen := r.ranker.RankByNameThenTokens(partial, name, folder, lk.class, lk.build); chosen != nil {
			return r.resolved(ctx, chosen, types.PhaseTokenPartial, 650, target, len(partial), "partial-token-match", lk)
		}
	}

	defaults := r.idx.Defaults()
	if chosen := r.ranker.PickStrictDefault(defaults, kind, lk.family, lk.subtype, lk.class, lk.build); chosen != nil {
		phase := types.PhaseDefaultWagon
		if kind == types.KindEngine {
			phase = types.PhaseDefaultEngine
		}
		return r.resolved(ctx, chosen, phase, 600, target, len(defaults), "strict-default", lk)
	}

	// Engines never fall back to defaults well; the nearest engine by
	// name beats leaving the consist headless.
	if kind == types.KindEngine {
		engines := r.idx.ByKind(types.KindEngine)
		if chosen := r.ranker.RankByNameThenTokens(engines, name, folder, lk.class, lk.build); chosen != nil {
			return r.resolved(ctx, chosen, types.PhaseGlobalScore, 550, target, len(engines), "engine-nearest-match", lk)
		}
		if chosen := r.ranker.RankByNameThenTokens(engines, name, folder, lk.class, lk.build); chosen != nil {
			return r.resolved(ctx, chosen, types.PhaseGlobalScore, 500, target, len(engines), "engine-nearest-match-final", lk)
		}
	}

	return r.unresolved(ctx, target, len(locked), "no-final-match", lk)
}

// resolveNoAttributes handles entries where nothing was detectable. Wagons
// that do not look like passenger stock get freight fallback attributes
// and return nil so the normal cascade continues; engines go straight to
// the nearest name match.
func (r *Resolver) resolveNoAttributes(ctx context.Context, kind types.Kind, folder, name string, target model.Metadata, lk *lock) *model.MatchResult {
	if kind == types.KindWagon {
		combined := strings.ToLower(folder + " " + name)
		for _, hint := range passengerHints {
			if strings.Contains(combined, hint) {
				return r.unresolved(ctx, target, 0, "no-attributes-passenger", *lk)
			}
		}

		lk.subtype = types.SubtypeFreight
		if r.hasOilIndicator(name, folder, true) {
			lk.class = "TANK"
		} else {
			lk.class = "FREIGHT"
		}
		return nil
	}

	engines := r.idx.ByKind(types.KindEngine)
	if chosen := r.ranker.RankByNameThenTokens(engines, name, folder, lk.class, lk.build); chosen != nil {
		return r.resolved(ctx, chosen, types.PhaseGlobalScore, 550, target, len(engines), "engine-nearest-match-no-attributes", *lk)
	}

	return r.unresolved(ctx, target, 0, "no-attributes", *lk)
}

func (r *Resolver) hasOilIndicator(name, folder string, extended bool) bool {
	combined := strings.ToLower(folder + " " + name)
	for _, indicator := range r.oilIndicators {
		if strings.Contains(combined, indicator) {
			return true
		}
	}
	if extended {
		for _, indicator := range extraOilIndicators {
			if strings.Contains(combined, indicator) {
				return true
			}
		}
	}
	return false
}

// detectEither runs a detector over the name and falls back to the folder.
func (r *Resolver) detectEither(name, folder string, kind types.Kind, fn func(string, types.Kind) string) string {
	if v := fn(name, kind); v != "" {
		return v
	}
	return fn(folder, kind)
}

func (r *Resolver) resolved(ctx context.Context, chosen *model.Record, phase types.Phase, score float64, target model.Metadata, candidates int, reason string, lk lock) *model.MatchResult {
	result := &model.MatchResult{
		Chosen:     chosen,
		Phase:      phase,
		Score:      score,
		Target:     target,
		Candidates: candidates,
		Reason:     reason,
		Family:     lk.family,
		Subtype:    lk.subtype,
		Class:      lk.class,
		Build:      lk.build,
	}

	r.stats.recordResolved(phase, result.IsChanged())
	metrics.RecordEntryResolved()
	if result.IsChanged() {
		metrics.RecordEntryChanged()
	}
	metrics.RecordPhaseMatch(phase.String())

	r.logger.Debug(ctx, "entry resolved",
		logger.String("target", target.Folder+"/"+target.Name),
		logger.String("chosen", chosen.Folder+"/"+chosen.Name),
		logger.String("phase", phase.String()),
		logger.Float64("score", score),
		logger.String("reason", reason),
	)

	return result
}

func (r *Resolver) unresolved(ctx context.Context, target model.Metadata, candidates int, reason string, lk lock) *model.MatchResult {
	r.stats.recordUnresolved()
	metrics.RecordEntryUnresolved()
	metrics.RecordPhaseMatch(types.PhaseUnresolved.String())

	r.logger.Debug(ctx, "entry unresolved",
		logger.String("target", target.Folder+"/"+target.Name),
		logger.String("reason", reason),
	)

	return &model.MatchResult{
		Phase:      types.PhaseUnresolved,
		Score:      0,
		Target:     target,
		Candidates: candidates,
		Reason:     reason,
		Family:     lk.family,
		Subtype:    lk.subtype,
		Class:      lk.class,
		Build:      lk.build,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
