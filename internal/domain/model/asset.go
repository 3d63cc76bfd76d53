// Package model contains domain models passed between layers.
package model

import (
	"strings"

	"github.com/railtools/consistfix/internal/domain/types"
)

// Metadata is the classification profile extracted from an asset name and
// its folder. All string attributes are uppercase canonical codes; empty
// means "not detected".
type Metadata struct {
	Kind       types.Kind
	Name       string
	Folder     string
	Normalized string
	Tokens     map[string]struct{}

	// Engine attributes
	EngineClass  string
	EngineSeries string
	EngineFamily string
	Traction     types.Traction
	IsUnit       bool

	// Wagon attributes
	CoachType   string
	FreightType string
	Carbody     string
	SetType     string

	// Geographic and technical attributes
	Region       string
	Depot        string
	TechSpec     string
	Manufacturer string

	// Trailing numeric variant, if any. Nil when absent.
	Variant *int
}

// CoreTokens returns the classification tokens of the profile, lowercased.
func (m *Metadata) CoreTokens() map[string]struct{} {
	core := make(map[string]struct{}, 6)
	for _, v := range []string{
		m.EngineClass, m.EngineSeries, m.CoachType,
		m.FreightType, m.Carbody, m.SetType,
	} {
		if v != "" {
			core[strings.ToLower(v)] = struct{}{}
		}
	}
	return core
}

// Record is a library asset discovered on disk, with its extracted profile
// and the derived lookup keys cached at construction time.
type Record struct {
	Kind   types.Kind
	Name   string
	Folder string
	Path   string
	Meta   Metadata

	// Derived at construction; never mutated afterwards.
	KeyTokens  map[string]struct{}
	Composite  string
	Class      string
	Normalized string
	Tokens     map[string]struct{}
}

// Key returns the lowercase folder|name identity of the record.
func (r *Record) Key() string {
	return strings.ToLower(r.Folder + "|" + r.Name)
}

// IsDefault reports whether the record lives in a defaults folder.
func (r *Record) IsDefault() bool {
	return strings.HasPrefix(strings.ToLower(r.Folder), "_defaults")
}

// MatchResult is the outcome of resolving one consist entry.
type MatchResult struct {
	Chosen     *Record
	Phase      types.Phase
	Score      float64
	Target     Metadata
	Candidates int
	Reason     string

	// Locked attributes derived from the entry before matching.
	Family  string
	Subtype string
	Class   string
	Build   string
}

// IsResolved reports whether a replacement asset was chosen.
func (r *MatchResult) IsResolved() bool {
	return r.Chosen != nil
}

// IsChanged reports whether the chosen asset differs from the target,
// compared case-insensitively on folder and name.
func (r *MatchResult) IsChanged() bool {
	if r.Chosen == nil {
		return false
	}
	return !strings.EqualFold(r.Chosen.Folder, r.Target.Folder) ||
		!strings.EqualFold(r.Chosen.Name, r.Target.Name)
}

// NameEqual compares two asset names ignoring case and surrounding space.
func NameEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
