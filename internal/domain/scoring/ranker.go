package scoring

import (
	"hash/fnv"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"github.com/railtools/consistfix/internal/domain/detect"
	"github.com/railtools/consistfix/internal/domain/model"
	"github.com/railtools/consistfix/internal/domain/types"
)

// DefaultSeed keeps tie perturbation reproducible across runs.
const DefaultSeed = 42

// Ranker scores candidate pools against a wanted entry. The small random
// perturbation on tie scores is seeded, so runs with the same seed pick
// the same assets. Safe for concurrent use.
type Ranker struct {
	detector *detect.Detector
	weights  Weights

	mu  sync.Mutex
	rng *rand.Rand
}

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithSeed sets the tie-break perturbation seed.
func WithSeed(seed int64) Option {
	return func(r *Ranker) {
		r.rng = rand.New(rand.NewSource(seed))
	}
}

// WithWeights overrides the scoring weight table.
func WithWeights(w Weights) Option {
	return func(r *Ranker) {
		r.weights = w
	}
}

// New builds a Ranker with the default weights and seed.
func New(detector *detect.Detector, opts ...Option) *Ranker {
	r := &Ranker{
		detector: detector,
		weights:  DefaultWeights(),
		rng:      rand.New(rand.NewSource(DefaultSeed)),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Weights returns the active weight table.
func (r *Ranker) Weights() Weights { return r.weights }

func (r *Ranker) perturb(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

// premiumBuilds get a larger build-match bonus than plain carbody builds.
var premiumBuilds = map[string]struct{}{
	"UTK": {}, "TEJAS": {}, "HUMSAFAR": {}, "VANDE": {},
}

// brakeVanTieClasses get the narrowest random perturbation so brake van
// picks stay near-deterministic.
var brakeVanTieClasses = map[string]struct{}{
	"BOBYN": {}, "BOXN": {}, "BRN": {}, "BRNA": {},
}

var commonLocoTieClasses = map[string]struct{}{
	"WAG7": {}, "WAG9": {}, "WAP7": {},
}

// RankByNameThenTokens scores every asset in pool against the wanted name
// and folder and returns the best, or nil for an empty pool.
//
// Scoring favors exact normalized-name equality, then token containment
// within a compatible class, then Jaccard overlap, with folder, build and
// class bonuses on top. A small seeded random perturbation spreads picks
// across equally-scored candidates.
func (r *Ranker) RankByNameThenTokens(pool []*model.Record, wantedName, wantedFolder, class, build string) *model.Record {
	if len(pool) == 0 {
		return nil
	}

	wantedNorm := model.NormalizeName(wantedName)
	wantedTokens := model.TokenSet(wantedName)
	if wantedFolder != "" {
		for tok := range model.TokenSet(wantedFolder) {
			wantedTokens[tok] = struct{}{}
		}
	}

	type scored struct {
		rec   *model.Record
		score int
	}
	candidates := make([]scored, 0, len(pool))

	for _, asset := range pool {
		score := 0

		if asset.Normalized == wantedNorm {
			score += 1000
		}

		intersection := 0
		for tok := range wantedTokens {
			if _, ok := asset.Tokens[tok]; ok {
				intersection++
			}
		}
		containment := intersection == len(wantedTokens)
		overlap := intersection > 0

		exactClass := asset.Class != "" && strings.EqualFold(asset.Class, class)

		if containment || (overlap && exactClass) {
			classCompatible := false
			switch {
			case class == "":
				classCompatible = true
			case asset.Kind == types.KindWagon:
				classCompatible = exactClass || asset.Class == ""
			default:
				classCompatible = exactClass
			}

			switch {
			case classCompatible:
				if containment {
					score += 900
				} else {
					score += 700
				}
				if exactClass {
					score += 300
					if class == "HCPV" || class == "HPCV" {
						score += 100
					}
				}
			case asset.Class == "":
				score += 600
			default:
				score += 50
			}
		}

		if len(wantedTokens) > 0 && len(asset.Tokens) > 0 {
			union := len(asset.Tokens)
			for tok := range wantedTokens {
				if _, ok := asset.Tokens[tok]; !ok {
					union++
				}
			}
			if union > 0 {
				score += intersection * 800 / union
			}
		}

		if wantedFolder != "" && strings.EqualFold(asset.Folder, wantedFolder) {
			score += 100
		}

		if build != "" {
			if r.detector.Build(asset.Name, asset.Folder) == build {
				if _, premium := premiumBuilds[build]; premium {
					score += 200
				} else {
					score += 80
				}
			}
		}

		if class != "" && exactClass {
			score += 150
			if asset.Kind == types.KindWagon {
				score += 100
			}
		}

		if !asset.IsDefault() {
			score += 50
		}

		switch {
		case class == "":
			score += r.perturb(4)
		default:
			if _, ok := brakeVanTieClasses[class]; ok {
				score += r.perturb(3)
			} else if _, ok := commonLocoTieClasses[class]; ok {
				score += r.perturb(4)
			} else {
				score += r.perturb(5)
			}
		}

		candidates = append(candidates, scored{asset, score})
	}

	if class == "BOBYN" {
		// Brake van picks stay fully deterministic.
		sort.SliceStable(candidates, func(i, j int) bool {
			if candidates[i].score != candidates[j].score {
				return candidates[i].score > candidates[j].score
			}
			return strings.ToLower(candidates[i].rec.Name) < strings.ToLower(candidates[j].rec.Name)
		})
	} else {
		sort.SliceStable(candidates, func(i, j int) bool {
			if candidates[i].score != candidates[j].score {
				return candidates[i].score > candidates[j].score
			}
			hi, hj := hashMod(candidates[i].rec.Name, 100), hashMod(candidates[j].rec.Name, 100)
			if hi != hj {
				return hi < hj
			}
			return hashMod(candidates[i].rec.Folder, 100) < hashMod(candidates[j].rec.Folder, 100)
		})
	}

	return candidates[0].rec
}

// ChooseBest picks among exact matches: same folder first, then
// non-defaults, then a deterministic hash order.
func (r *Ranker) ChooseBest(candidates []*model.Record, wantedFolder string) *model.Record {
	if len(candidates) == 0 {
		return nil
	}

	pool := candidates
	var sameFolder []*model.Record
	for _, c := range pool {
		if strings.EqualFold(c.Folder, wantedFolder) {
			sameFolder = append(sameFolder, c)
		}
	}
	if len(sameFolder) > 0 {
		pool = sameFolder
	}

	var nonDefaults []*model.Record
	for _, c := range pool {
		if !c.IsDefault() {
			nonDefaults = append(nonDefaults, c)
		}
	}
	if len(nonDefaults) > 0 {
		pool = nonDefaults
	}

	if len(pool) > 1 {
		sorted := make([]*model.Record, len(pool))
		copy(sorted, pool)
		sort.SliceStable(sorted, func(i, j int) bool {
			return hashMod(sorted[i].Folder+sorted[i].Name, 1<<31) <
				hashMod(sorted[j].Folder+sorted[j].Name, 1<<31)
		})
		pool = sorted
	}

	return pool[0]
}

// PickStrictDefault selects a defaults-folder fallback. A subtype match
// is mandatory; family, class and build matches only improve the score.
func (r *Ranker) PickStrictDefault(defaults []*model.Record, kind types.Kind, family, subtype, class, build string) *model.Record {
	if len(defaults) == 0 || subtype == "" {
		return nil
	}

	type scored struct {
		rec   *model.Record
		score int
	}
	var matched []scored

	for _, d := range defaults {
		if d.Kind != kind {
			continue
		}

		dSubtype := r.detector.Subtype(d.Name)
		if dSubtype == "" {
			dSubtype = r.detector.Subtype(d.Folder)
		}
		if !strings.EqualFold(dSubtype, subtype) {
			continue
		}

		score := 100

		dFamily := r.detector.Family(d.Name, kind)
		if dFamily == "" {
			dFamily = r.detector.Family(d.Folder, kind)
		}
		dClass := r.detector.Class(d.Name, kind)
		dBuild := r.detector.Build(d.Name, d.Folder)

		if family != "" && strings.EqualFold(dFamily, family) {
			score += 50
		}
		if class != "" && strings.EqualFold(dClass, class) {
			score += 75
		}
		if build != "" && strings.EqualFold(dBuild, build) {
			score += 100
		}
		if strings.Contains(strings.ToLower(d.Name), "default") {
			score += 25
		}

		matched = append(matched, scored{d, score})
	}

	if len(matched) == 0 {
		return nil
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].score != matched[j].score {
			return matched[i].score > matched[j].score
		}
		return strings.ToLower(matched[i].rec.Name) < strings.ToLower(matched[j].rec.Name)
	})

	return matched[0].rec
}

func hashMod(s string, mod uint64) uint64 {
	h := fnv.New64a()
	h.Write([]byte(strings.ToLower(s)))
	return h.Sum64() % mod
}
