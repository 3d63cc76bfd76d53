package config_test

import (
	"context"
	"runtime"
	"testing"

	"github.com/railtools/consistfix/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.TrainsetDir, convey.ShouldEqual, "trainset")
			convey.So(cfg.ConsistDir, convey.ShouldEqual, "consists")
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*2)
			convey.So(cfg.DryRun, convey.ShouldBeFalse)
			convey.So(cfg.Explain, convey.ShouldBeFalse)
			convey.So(cfg.SemanticMatch, convey.ShouldBeTrue)
			convey.So(cfg.TieBreakSeed, convey.ShouldEqual, 42)
			convey.So(cfg.MetricsAddr, convey.ShouldBeEmpty)
			convey.So(cfg.Weights.CoachTypeMatch, convey.ShouldEqual, 120)
		})
	})
}
