package match

import (
	"strings"

	"github.com/railtools/consistfix/internal/domain/detect"
	"github.com/railtools/consistfix/internal/domain/model"
	"github.com/railtools/consistfix/internal/domain/types"
)

// Filter applies attribute locking to candidate pools.
type Filter struct {
	detector *detect.Detector
}

// NewFilter builds a Filter over the given detector.
func NewFilter(detector *detect.Detector) *Filter {
	return &Filter{detector: detector}
}

// StrictAttributes keeps only assets whose detected family, subtype,
// class and build all agree with the locked attributes. Wagons get one
// concession: an inexact class passes if the compatibility table allows
// the substitution.
func (f *Filter) StrictAttributes(pool []*model.Record, family, subtype, class, build string) []*model.Record {
	if family == "" && subtype == "" && class == "" && build == "" {
		return nil
	}

	var filtered []*model.Record
	for _, asset := range pool {
		assetFamily := f.detector.Family(asset.Name, asset.Kind)
		if assetFamily == "" {
			assetFamily = f.detector.Family(asset.Folder, asset.Kind)
		}
		assetSubtype := f.detector.Subtype(asset.Name)
		if assetSubtype == "" {
			assetSubtype = f.detector.Subtype(asset.Folder)
		}
		assetBuild := f.detector.Build(asset.Name, asset.Folder)

		classOK := class == "" || strings.EqualFold(asset.Class, class)
		if !classOK && asset.Kind == types.KindWagon {
			classOK = len(CompatibleWagons([]*model.Record{asset}, class)) > 0
		}

		if !classOK {
			continue
		}
		if family != "" && !strings.EqualFold(assetFamily, family) {
			continue
		}
		if subtype != "" && !strings.EqualFold(assetSubtype, subtype) {
			continue
		}
		if build != "" && !strings.EqualFold(assetBuild, build) {
			continue
		}

		filtered = append(filtered, asset)
	}

	return filtered
}

// LenientClass keeps assets whose class equals the wanted one, or the
// whole pool when no class is wanted. Used as a fallback when strict
// locking leaves nothing.
func (f *Filter) LenientClass(pool []*model.Record, class string) []*model.Record {
	var lenient []*model.Record
	for _, asset := range pool {
		if class == "" || strings.EqualFold(asset.Class, class) {
			lenient = append(lenient, asset)
		}
	}
	return lenient
}
