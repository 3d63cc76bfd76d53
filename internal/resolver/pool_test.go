package resolver

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/railtools/consistfix/internal/domain/detect"
	"github.com/railtools/consistfix/internal/domain/metadata"
	"github.com/railtools/consistfix/internal/domain/scoring"
	"github.com/railtools/consistfix/internal/domain/taxonomy"
	"github.com/railtools/consistfix/internal/domain/types"
	"github.com/railtools/consistfix/pkg/logger"
)

func TestPoolResolveAll(t *testing.T) {
	_ = logger.Init()

	Convey("Given a pool over a populated resolver", t, func() {
		r := newTestResolver()
		p := NewPool(r, 4)

		tasks := []Task{
			{Index: 0, Kind: types.KindEngine, Folder: "Other", Name: "WAP7_30203"},
			{Index: 1, Kind: types.KindWagon, Folder: "Old_Folder", Name: "BOXN_4521"},
			{Index: 2, Kind: types.KindWagon, Folder: "Mystery_Stock", Name: "zxq_999"},
		}

		results := p.ResolveAll(context.Background(), tasks)

		Convey("Then results come back in task order", func() {
			So(results, ShouldHaveLength, 3)
			So(results[0].Chosen.Name, ShouldEqual, "WAP7_30203")
			So(results[1].Chosen.Name, ShouldEqual, "BOXN_4521")
			So(results[2].IsResolved(), ShouldBeFalse)
		})
	})

	Convey("Given a canceled context", t, func() {
		r := newTestResolver()
		p := NewPool(r, 2)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		tasks := []Task{
			{Index: 0, Kind: types.KindWagon, Folder: "A", Name: "BOXN_4521"},
			{Index: 1, Kind: types.KindWagon, Folder: "B", Name: "BOXN_4518"},
		}

		results := p.ResolveAll(ctx, tasks)

		Convey("Then every unstarted task is marked canceled", func() {
			So(results, ShouldHaveLength, 2)
			for _, result := range results {
				So(result, ShouldNotBeNil)
				if !result.IsResolved() && result.Reason == "canceled" {
					So(result.Phase, ShouldEqual, types.PhaseUnresolved)
				}
			}
		})
	})
}

func TestPoolWorkerSizing(t *testing.T) {
	_ = logger.Init()

	Convey("Given worker count configuration", t, func() {
		r := newTestResolver()

		Convey("An explicit count is honored", func() {
			So(NewPool(r, 3).Workers(), ShouldEqual, 3)
		})

		Convey("A non-positive count picks a CPU-based size", func() {
			So(NewPool(r, 0).Workers(), ShouldBeGreaterThan, 0)
			So(NewPool(r, 0).Workers(), ShouldBeLessThanOrEqualTo, maxPoolWorkers)
		})

		Convey("Oversized counts are capped", func() {
			So(NewPool(r, 99).Workers(), ShouldEqual, maxPoolWorkers)
		})
	})
}

func TestPoolPanicRecovery(t *testing.T) {
	_ = logger.Init()

	Convey("Given a resolver with a broken index", t, func() {
		classifier := taxonomy.New()
		detector := detect.New(classifier)
		extractor := metadata.New(classifier, detector)
		broken := New(nil, extractor, detector, scoring.New(detector))

		p := NewPool(broken, 1)

		tasks := []Task{{Index: 0, Kind: types.KindWagon, Folder: "IR_Wagons", Name: "BOXN_4521"}}
		results := p.ResolveAll(context.Background(), tasks)

		Convey("Then the panic becomes an unresolved result", func() {
			So(results, ShouldHaveLength, 1)
			So(results[0].IsResolved(), ShouldBeFalse)
			So(results[0].Reason, ShouldStartWith, "resolution-panic")
		})
	})
}
