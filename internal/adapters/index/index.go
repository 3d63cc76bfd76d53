// Package index is the in-memory asset library: every discovered engine
// and wagon record, reachable through several lookup keys.
package index

import (
	"strings"
	"sync"

	"github.com/railtools/consistfix/internal/domain/model"
	"github.com/railtools/consistfix/internal/domain/types"
)

// Strategy selects how Candidates assembles its pool.
type Strategy string

const (
	// StrategyExact returns only exact name matches.
	StrategyExact Strategy = "exact"
	// StrategyKind returns every asset of the target's kind.
	StrategyKind Strategy = "kind"
	// StrategyTargeted returns assets sharing a classification attribute.
	StrategyTargeted Strategy = "targeted"
	// StrategyComprehensive unions the kind pool with the targeted pools.
	StrategyComprehensive Strategy = "comprehensive"
)

// Index holds asset records with multi-key lookups. Safe for concurrent
// use; reads far outnumber writes once the scan completes.
type Index struct {
	mu sync.RWMutex

	assets []*model.Record

	byName        map[string][]*model.Record
	byFolder      map[string][]*model.Record
	byKind        map[types.Kind][]*model.Record
	byEngineClass map[string][]*model.Record
	byCoachType   map[string][]*model.Record
	byFreightType map[string][]*model.Record
	byTraction    map[types.Traction][]*model.Record
	byComposite   map[string][]*model.Record
	byKeyToken    map[string][]*model.Record
}

// New builds an empty Index.
func New() *Index {
	return &Index{
		byName:        make(map[string][]*model.Record),
		byFolder:      make(map[string][]*model.Record),
		byKind:        make(map[types.Kind][]*model.Record),
		byEngineClass: make(map[string][]*model.Record),
		byCoachType:   make(map[string][]*model.Record),
		byFreightType: make(map[string][]*model.Record),
		byTraction:    make(map[types.Traction][]*model.Record),
		byComposite:   make(map[string][]*model.Record),
		byKeyToken:    make(map[string][]*model.Record),
	}
}

// Add registers a record under all its lookup keys.
func (ix *Index) Add(rec *model.Record) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.assets = append(ix.assets, rec)

	ix.byName[strings.ToLower(rec.Name)] = append(ix.byName[strings.ToLower(rec.Name)], rec)
	ix.byFolder[strings.ToLower(rec.Folder)] = append(ix.byFolder[strings.ToLower(rec.Folder)], rec)
	ix.byKind[rec.Kind] = append(ix.byKind[rec.Kind], rec)

	meta := rec.Meta
	if meta.EngineClass != "" {
		key := strings.ToLower(meta.EngineClass)
		ix.byEngineClass[key] = append(ix.byEngineClass[key], rec)
	}
	if meta.CoachType != "" {
		key := strings.ToLower(meta.CoachType)
		ix.byCoachType[key] = append(ix.byCoachType[key], rec)
	}
	if meta.FreightType != "" {
		key := strings.ToLower(meta.FreightType)
		ix.byFreightType[key] = append(ix.byFreightType[key], rec)
	}
	if meta.Traction != types.TractionUnknown {
		ix.byTraction[meta.Traction] = append(ix.byTraction[meta.Traction], rec)
	}
	if rec.Composite != "" {
		ix.byComposite[rec.Composite] = append(ix.byComposite[rec.Composite], rec)
	}
	for token := range rec.KeyTokens {
		ix.byKeyToken[token] = append(ix.byKeyToken[token], rec)
	}
}

// All returns every indexed record.
func (ix *Index) All() []*model.Record {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]*model.Record, len(ix.assets))
	copy(out, ix.assets)
	return out
}

// ByKind returns all records of one kind.
func (ix *Index) ByKind(kind types.Kind) []*model.Record {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	src := ix.byKind[kind]
	out := make([]*model.Record, len(src))
	copy(out, src)
	return out
}

// ByName returns all records sharing a name, case-insensitively.
func (ix *Index) ByName(name string) []*model.Record {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	src := ix.byName[strings.ToLower(name)]
	out := make([]*model.Record, len(src))
	copy(out, src)
	return out
}

// Defaults returns every record living in a defaults folder.
func (ix *Index) Defaults() []*model.Record {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	var out []*model.Record
	for _, rec := range ix.assets {
		if rec.IsDefault() {
			out = append(out, rec)
		}
	}
	return out
}

// Candidates assembles a deduplicated candidate pool for the target,
// restricted to the target's kind. Pool composition follows the strategy;
// insertion order is preserved so results are deterministic.
func (ix *Index) Candidates(target model.Metadata, strategy Strategy) []*model.Record {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	seen := make(map[*model.Record]struct{})
	var out []*model.Record
	add := func(recs []*model.Record) {
		for _, rec := range recs {
			if rec.Kind != target.Kind {
				continue
			}
			if _, ok := seen[rec]; ok {
				continue
			}
			seen[rec] = struct{}{}
			out = append(out, rec)
		}
	}

	switch strategy {
	case StrategyExact:
		add(ix.byName[strings.ToLower(target.Name)])

	case StrategyKind:
		add(ix.byKind[target.Kind])

	case StrategyTargeted:
		if target.EngineClass != "" {
			add(ix.byEngineClass[strings.ToLower(target.EngineClass)])
		}
		if target.CoachType != "" {
			add(ix.byCoachType[strings.ToLower(target.CoachType)])
		}
		if target.FreightType != "" {
			add(ix.byFreightType[strings.ToLower(target.FreightType)])
		}
		if target.Traction != types.TractionUnknown {
			add(ix.byTraction[target.Traction])
		}

	default:
		add(ix.byKind[target.Kind])
		if target.EngineClass != "" {
			add(ix.byEngineClass[strings.ToLower(target.EngineClass)])
		}
		if target.CoachType != "" {
			add(ix.byCoachType[strings.ToLower(target.CoachType)])
		}
		if target.FreightType != "" {
			add(ix.byFreightType[strings.ToLower(target.FreightType)])
		}
	}

	return out
}

// Stats summarizes index composition.
type Stats struct {
	TotalAssets   int
	Engines       int
	Wagons        int
	Folders       int
	EngineClasses int
	CoachTypes    int
	FreightTypes  int
	Composites    int
}

// Statistics returns the current index composition.
func (ix *Index) Statistics() Stats {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return Stats{
		TotalAssets:   len(ix.assets),
		Engines:       len(ix.byKind[types.KindEngine]),
		Wagons:        len(ix.byKind[types.KindWagon]),
		Folders:       len(ix.byFolder),
		EngineClasses: len(ix.byEngineClass),
		CoachTypes:    len(ix.byCoachType),
		FreightTypes:  len(ix.byFreightType),
		Composites:    len(ix.byComposite),
	}
}
