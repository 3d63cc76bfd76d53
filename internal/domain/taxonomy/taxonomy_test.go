package taxonomy

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/railtools/consistfix/internal/domain/types"
)

func TestClassifierMembership(t *testing.T) {
	Convey("Given a classifier with the built-in vocabulary", t, func() {
		c := New()

		Convey("Engine classes are recognized case-insensitively", func() {
			So(c.IsEngineClass("wap7"), ShouldBeTrue)
			So(c.IsEngineClass("WDM3A"), ShouldBeTrue)
			So(c.IsEngineClass("memu"), ShouldBeTrue)
			So(c.IsEngineClass("boxn"), ShouldBeFalse)
		})

		Convey("Coach types are recognized", func() {
			So(c.IsCoachType("sl"), ShouldBeTrue)
			So(c.IsCoachType("3a"), ShouldBeTrue)
			So(c.IsCoachType("wap7"), ShouldBeFalse)
		})

		Convey("Freight types are recognized", func() {
			So(c.IsFreightType("boxn"), ShouldBeTrue)
			So(c.IsFreightType("btpn"), ShouldBeTrue)
			So(c.IsFreightType("tank"), ShouldBeTrue)
			So(c.IsFreightType("sl"), ShouldBeFalse)
		})

		Convey("Carbody and special sets are recognized", func() {
			So(c.IsCarbody("lhb"), ShouldBeTrue)
			So(c.IsCarbody("icf"), ShouldBeTrue)
			So(c.IsSpecialSet("rajdhani"), ShouldBeTrue)
			So(c.IsSpecialSet("vande"), ShouldBeTrue)
		})
	})
}

func TestClassifierAliases(t *testing.T) {
	Convey("Given the built-in alias table", t, func() {
		c := New()

		Convey("Spelling variants normalize to canonical forms", func() {
			So(c.NormalizeAlias("WAP-4"), ShouldEqual, "wap4")
			So(c.NormalizeAlias("sleeper"), ShouldEqual, "sl")
			So(c.NormalizeAlias("3ac"), ShouldEqual, "3a")
			So(c.NormalizeAlias("tanker"), ShouldEqual, "tank")
		})

		Convey("Unknown tokens pass through lowercased", func() {
			So(c.NormalizeAlias("MYSTERY"), ShouldEqual, "mystery")
		})

		Convey("The cache returns the same answer on repeat lookups", func() {
			first := c.NormalizeAlias("wdm-3")
			So(c.NormalizeAlias("wdm-3"), ShouldEqual, first)
			So(first, ShouldEqual, "wdm3a")
		})

		Convey("Extra aliases merge over the built-ins", func() {
			custom := New(WithAliases(map[string]string{"goodswagon": "boxn"}))
			So(custom.NormalizeAlias("goodswagon"), ShouldEqual, "boxn")
		})
	})
}

func TestClassifierTraction(t *testing.T) {
	Convey("Given the traction tables", t, func() {
		c := New()

		Convey("Electric classes map to electric traction", func() {
			So(c.Traction("wap7"), ShouldEqual, types.TractionElectric)
			So(c.Traction("WAG9"), ShouldEqual, types.TractionElectric)
		})

		Convey("Diesel classes map to diesel traction", func() {
			So(c.Traction("wdm3a"), ShouldEqual, types.TractionDiesel)
			So(c.Traction("wdg4"), ShouldEqual, types.TractionDiesel)
		})

		Convey("Unknown classes map to unknown traction", func() {
			So(c.Traction(""), ShouldEqual, types.TractionUnknown)
			So(c.Traction("boxn"), ShouldEqual, types.TractionUnknown)
		})

		Convey("Family codes resolve traction too", func() {
			So(c.TractionForFamily("wag"), ShouldEqual, types.TractionElectric)
			So(c.TractionForFamily("WDM"), ShouldEqual, types.TractionDiesel)
			So(c.TractionForFamily("acela"), ShouldEqual, types.TractionUnknown)
		})
	})
}
