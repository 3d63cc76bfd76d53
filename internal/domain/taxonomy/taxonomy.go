// Package taxonomy holds the Indian Railways rolling-stock vocabulary and
// the alias normalization used by detectors and the metadata extractor.
//
// A Classifier is built once at startup and shared read-only afterwards;
// the alias cache is safe for concurrent use.
package taxonomy

import (
	"strings"
	"sync"

	"github.com/railtools/consistfix/internal/domain/types"
)

// Classifier answers membership questions about the vocabulary tables and
// canonicalizes spelling variants through the alias map.
type Classifier struct {
	engineClasses   map[string]struct{}
	coachTypes      map[string]struct{}
	freightTypes    map[string]struct{}
	carbodyTypes    map[string]struct{}
	specialSets     map[string]struct{}
	electricClasses map[string]struct{}
	dieselClasses   map[string]struct{}
	aliases         map[string]string

	aliasCache sync.Map // lowercase token -> canonical form
}

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithAliases merges extra alias entries over the built-in table.
func WithAliases(extra map[string]string) Option {
	return func(c *Classifier) {
		for k, v := range extra {
			c.aliases[strings.ToLower(k)] = strings.ToLower(v)
		}
	}
}

// New builds a Classifier with the built-in vocabulary.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		engineClasses:   engineClasses(),
		coachTypes:      coachTypes(),
		freightTypes:    freightTypes(),
		carbodyTypes:    carbodyTypes(),
		specialSets:     specialSets(),
		electricClasses: electricClasses(),
		dieselClasses:   dieselClasses(),
		aliases:         defaultAliases(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// NormalizeAlias maps a token to its canonical form, caching the result.
// Unknown tokens pass through lowercased.
func (c *Classifier) NormalizeAlias(token string) string {
	lower := strings.ToLower(token)
	if v, ok := c.aliasCache.Load(lower); ok {
		return v.(string)
	}
	canon := lower
	if mapped, ok := c.aliases[lower]; ok {
		canon = mapped
	}
	c.aliasCache.Store(lower, canon)
	return canon
}

// IsEngineClass reports whether token names a locomotive class.
func (c *Classifier) IsEngineClass(token string) bool {
	_, ok := c.engineClasses[strings.ToLower(token)]
	return ok
}

// IsCoachType reports whether token names a passenger coach type.
func (c *Classifier) IsCoachType(token string) bool {
	_, ok := c.coachTypes[strings.ToLower(token)]
	return ok
}

// IsFreightType reports whether token names a freight wagon type.
func (c *Classifier) IsFreightType(token string) bool {
	_, ok := c.freightTypes[strings.ToLower(token)]
	return ok
}

// IsCarbody reports whether token names a carbody style.
func (c *Classifier) IsCarbody(token string) bool {
	_, ok := c.carbodyTypes[strings.ToLower(token)]
	return ok
}

// IsSpecialSet reports whether token names a branded train set.
func (c *Classifier) IsSpecialSet(token string) bool {
	_, ok := c.specialSets[strings.ToLower(token)]
	return ok
}

// Traction derives the power source from an engine class.
func (c *Classifier) Traction(engineClass string) types.Traction {
	if engineClass == "" {
		return types.TractionUnknown
	}
	lower := strings.ToLower(engineClass)
	if _, ok := c.electricClasses[lower]; ok {
		return types.TractionElectric
	}
	if _, ok := c.dieselClasses[lower]; ok {
		return types.TractionDiesel
	}
	return types.TractionUnknown
}

// TractionForFamily derives the power source from a locomotive family code.
func (c *Classifier) TractionForFamily(family string) types.Traction {
	switch strings.ToLower(family) {
	case "wap", "wag", "wam", "wcam", "wcg", "wcm", "emu", "memu", "mmu":
		return types.TractionElectric
	case "wdm", "wdg", "wdp", "wds", "dmu", "demu":
		return types.TractionDiesel
	default:
		return types.TractionUnknown
	}
}

// EngineClasses exposes the locomotive class table for substring scans.
func (c *Classifier) EngineClasses() map[string]struct{} { return c.engineClasses }

// FreightTypes exposes the freight type table for longest-match scans.
func (c *Classifier) FreightTypes() map[string]struct{} { return c.freightTypes }

// CarbodyTypes exposes the carbody table for substring scans.
func (c *Classifier) CarbodyTypes() map[string]struct{} { return c.carbodyTypes }

// SpecialSets exposes the branded set table for substring scans.
func (c *Classifier) SpecialSets() map[string]struct{} { return c.specialSets }

// Aliases exposes the alias table for the generic class-token fallback.
func (c *Classifier) Aliases() map[string]string { return c.aliases }
