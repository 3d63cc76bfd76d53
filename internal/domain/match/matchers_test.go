package match

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/railtools/consistfix/internal/domain/model"
)

func recs(names ...string) []*model.Record {
	out := make([]*model.Record, 0, len(names))
	for _, n := range names {
		out = append(out, &model.Record{Name: n})
	}
	return out
}

func names(pool []*model.Record) []string {
	out := make([]string, 0, len(pool))
	for _, r := range pool {
		out = append(out, r.Name)
	}
	return out
}

func TestDigitNear(t *testing.T) {
	Convey("Given a pool with drifting serial numbers", t, func() {
		pool := recs("BOXN_4518", "BOXN_4600", "BOXN_extra_1_2")

		Convey("Serials within the allowed drift match", func() {
			matches := DigitNear(pool, "BOXN_4521", 5)
			So(names(matches), ShouldResemble, []string{"BOXN_4518"})
		})

		Convey("A tighter limit excludes the drift", func() {
			So(DigitNear(pool, "BOXN_4521", 2), ShouldBeEmpty)
		})

		Convey("Digit run counts must line up", func() {
			matches := DigitNear(pool, "BOXN_extra_2_3", 5)
			So(names(matches), ShouldResemble, []string{"BOXN_extra_1_2"})
		})

		Convey("Names without digits never match", func() {
			So(DigitNear(pool, "BOXN_plain", 5), ShouldBeEmpty)
		})
	})
}

func TestWildcard(t *testing.T) {
	Convey("Given a pool of similarly shaped names", t, func() {
		pool := recs("BOXN_9999", "BCNA_1234", "unrelated")

		Convey("Digit runs widen to wildcards", func() {
			matches := Wildcard(pool, "BOXN_4521")
			So(names(matches), ShouldResemble, []string{"BOXN_9999"})
		})

		Convey("Serial numbers widen to wildcards", func() {
			matches := Wildcard(pool, "BCNA_555")
			So(names(matches), ShouldContain, "BCNA_1234")
		})

		Convey("Unrelated names never match", func() {
			So(Wildcard(pool, "WAP7_30203"), ShouldBeEmpty)
		})
	})
}

func TestSemantic(t *testing.T) {
	Convey("Given a pool of fuzzily similar names", t, func() {
		pool := recs("wap7_30204", "totally_different_thing")

		Convey("Near-identical names pass the threshold", func() {
			matches := Semantic(pool, "wap7_30203")
			So(names(matches), ShouldResemble, []string{"wap7_30204"})
		})

		Convey("Dissimilar names fall below the threshold", func() {
			So(Semantic(recs("zq"), "wap7_30203"), ShouldBeEmpty)
		})
	})
}

func TestPartialToken(t *testing.T) {
	Convey("Given a pool with partially overlapping tokens", t, func() {
		pool := recs("lhb_sl_extra", "boxn_4521")

		Convey("Sufficient Jaccard overlap matches", func() {
			matches := PartialToken(pool, "lhb_sl_coach")
			So(names(matches), ShouldResemble, []string{"lhb_sl_extra"})
		})

		Convey("A wanted name without tokens matches nothing", func() {
			So(PartialToken(pool, "___"), ShouldBeEmpty)
		})
	})
}

func TestCompatibleWagons(t *testing.T) {
	Convey("Given the wagon compatibility table", t, func() {
		Convey("Open wagon variants substitute for each other", func() {
			pool := []*model.Record{
				{Name: "BOXNR_1", Class: "BOXNR"},
				{Name: "COIL_1", Class: "COIL"},
			}
			matches := CompatibleWagons(pool, "BOXN")
			So(names(matches), ShouldResemble, []string{"BOXNR_1"})
		})

		Convey("Specialized wagons only match themselves", func() {
			pool := []*model.Record{
				{Name: "COIL_1", Class: "COIL"},
				{Name: "BOXN_1", Class: "BOXN"},
			}
			matches := CompatibleWagons(pool, "COIL")
			So(names(matches), ShouldResemble, []string{"COIL_1"})
		})

		Convey("Manufacturer series widen to their base types", func() {
			pool := []*model.Record{
				{Name: "BOXN_1", Class: "BOXN"},
				{Name: "PARCEL_1", Class: "PARCEL"},
			}
			matches := CompatibleWagons(pool, "BSAM")
			So(names(matches), ShouldResemble, []string{"BOXN_1"})
		})

		Convey("Double-deck car carriers accept nothing else", func() {
			pool := []*model.Record{
				{Name: "BCCW_1", Class: "BCCW"},
				{Name: "FLAT_1", Class: "FLAT"},
			}
			matches := CompatibleWagons(pool, "BCCW")
			So(names(matches), ShouldResemble, []string{"BCCW_1"})
		})

		Convey("Classless assets pass name-based restrictions", func() {
			pool := []*model.Record{
				{Name: "open_hopper_special"},
				{Name: "container_flat_special"},
			}
			matches := CompatibleWagons(pool, "BOXN")
			So(names(matches), ShouldResemble, []string{"open_hopper_special"})
		})

		Convey("An empty wanted class passes the pool through", func() {
			pool := recs("anything")
			So(CompatibleWagons(pool, ""), ShouldResemble, pool)
		})
	})
}

func TestFuzzySimilarity(t *testing.T) {
	Convey("Given the fuzzy similarity metrics", t, func() {
		Convey("Equal strings score 100", func() {
			So(similarity("boxn", "boxn"), ShouldEqual, 100)
		})

		Convey("Token order does not matter", func() {
			So(similarity("wap7 ghaziabad", "ghaziabad wap7"), ShouldEqual, 100)
		})

		Convey("Substrings score through the partial window", func() {
			So(similarity("boxn", "boxn_4521_extra"), ShouldEqual, 100)
		})

		Convey("Unrelated strings score low", func() {
			So(similarity("wap7", "zzzz"), ShouldBeLessThan, 50)
		})
	})
}
