package match

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/railtools/consistfix/internal/domain/detect"
	"github.com/railtools/consistfix/internal/domain/model"
	"github.com/railtools/consistfix/internal/domain/taxonomy"
	"github.com/railtools/consistfix/internal/domain/types"
)

func TestStrictAttributes(t *testing.T) {
	Convey("Given an attribute-locking filter", t, func() {
		f := NewFilter(detect.New(taxonomy.New()))

		wap7 := &model.Record{Kind: types.KindEngine, Name: "WAP7_30203", Folder: "IR_WAP7", Class: "WAP7"}
		wdm3a := &model.Record{Kind: types.KindEngine, Name: "WDM3A_16540", Folder: "IR_WDM3A", Class: "WDM3A"}
		pool := []*model.Record{wap7, wdm3a}

		Convey("Locked attributes keep only agreeing assets", func() {
			locked := f.StrictAttributes(pool, "WAP", "Passenger", "WAP7", "")
			So(locked, ShouldResemble, []*model.Record{wap7})
		})

		Convey("A disagreeing family rules an asset out", func() {
			locked := f.StrictAttributes(pool, "WCM", "", "", "")
			So(locked, ShouldBeEmpty)
		})

		Convey("Wagons get the compatibility concession on class", func() {
			boxnr := &model.Record{Kind: types.KindWagon, Name: "BOXNR_123", Folder: "IR_Wagons", Class: "BOXNR"}
			locked := f.StrictAttributes([]*model.Record{boxnr}, "", "Freight", "BOXN", "")
			So(locked, ShouldResemble, []*model.Record{boxnr})
		})

		Convey("No locked attributes at all filters everything", func() {
			So(f.StrictAttributes(pool, "", "", "", ""), ShouldBeEmpty)
		})
	})
}

func TestLenientClass(t *testing.T) {
	Convey("Given the lenient class fallback", t, func() {
		f := NewFilter(detect.New(taxonomy.New()))

		a := &model.Record{Name: "WAP7_1", Class: "WAP7"}
		b := &model.Record{Name: "WDM3A_1", Class: "WDM3A"}
		pool := []*model.Record{a, b}

		Convey("A wanted class keeps only matching assets", func() {
			So(f.LenientClass(pool, "wap7"), ShouldResemble, []*model.Record{a})
		})

		Convey("An empty wanted class keeps the whole pool", func() {
			So(f.LenientClass(pool, ""), ShouldResemble, pool)
		})
	})
}
