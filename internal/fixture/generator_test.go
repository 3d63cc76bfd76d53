package fixture

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/railtools/consistfix/internal/adapters/consist"
	"github.com/railtools/consistfix/internal/adapters/scan"
	"github.com/railtools/consistfix/internal/domain/detect"
	"github.com/railtools/consistfix/internal/domain/metadata"
	"github.com/railtools/consistfix/internal/domain/taxonomy"
	"github.com/railtools/consistfix/pkg/logger"
)

func newGenerator(t *testing.T, opts ...Option) (*Generator, string, string) {
	t.Helper()
	root := t.TempDir()
	trainset := filepath.Join(root, "trainset")
	consists := filepath.Join(root, "consists")

	base := []Option{WithTrainsetDir(trainset), WithConsistDir(consists)}
	return New(append(base, opts...)...), trainset, consists
}

func TestGenerate(t *testing.T) {
	_ = logger.Init()

	Convey("Given a generator without drift", t, func() {
		ctx := context.Background()
		g, trainset, consists := newGenerator(t,
			WithConsistCount(4),
			WithRakeLength(6),
			WithDriftRate(0),
			WithSeed(42),
		)

		summary, err := g.Generate(ctx)

		Convey("Then the summary matches the requested sizing", func() {
			So(err, ShouldBeNil)
			So(summary.AssetsCreated, ShouldEqual, 23)
			So(summary.ConsistsCreated, ShouldEqual, 4)
			So(summary.EntriesWritten, ShouldEqual, 4*7)
			So(summary.DriftedEntries, ShouldEqual, 0)
		})

		Convey("Then the generated consists parse cleanly", func() {
			So(err, ShouldBeNil)
			files, parseErr := consist.NewParser().ParseDir(ctx, consists)
			So(parseErr, ShouldBeNil)
			So(files, ShouldHaveLength, 4)
			for _, f := range files {
				So(f.Entries, ShouldHaveLength, 7)
			}
		})

		Convey("Then every undrifted entry points at an installed asset", func() {
			So(err, ShouldBeNil)

			classifier := taxonomy.New()
			detector := detect.New(classifier)
			idx, scanErr := scan.New(metadata.New(classifier, detector), detector).Scan(ctx, trainset)
			So(scanErr, ShouldBeNil)

			files, parseErr := consist.NewParser().ParseDir(ctx, consists)
			So(parseErr, ShouldBeNil)
			for _, f := range files {
				for _, entry := range f.Entries {
					So(idx.ByName(entry.Name), ShouldNotBeEmpty)
				}
			}
		})
	})

	Convey("Given a generator that drifts everything", t, func() {
		ctx := context.Background()
		g, _, _ := newGenerator(t,
			WithConsistCount(2),
			WithRakeLength(3),
			WithDriftRate(1),
			WithSeed(7),
		)

		summary, err := g.Generate(ctx)

		Convey("Then every entry is drifted", func() {
			So(err, ShouldBeNil)
			So(summary.DriftedEntries, ShouldEqual, summary.EntriesWritten)
		})
	})

	Convey("Given two runs with the same seed", t, func() {
		ctx := context.Background()

		g1, _, consists1 := newGenerator(t, WithConsistCount(2), WithSeed(99))
		g2, _, consists2 := newGenerator(t, WithConsistCount(2), WithSeed(99))

		_, err1 := g1.Generate(ctx)
		_, err2 := g2.Generate(ctx)

		Convey("Then the generated files are identical", func() {
			So(err1, ShouldBeNil)
			So(err2, ShouldBeNil)

			a, readErr := os.ReadFile(filepath.Join(consists1, "rake_001.con"))
			So(readErr, ShouldBeNil)
			b, readErr := os.ReadFile(filepath.Join(consists2, "rake_001.con"))
			So(readErr, ShouldBeNil)
			So(string(a), ShouldEqual, string(b))
		})
	})
}

func TestBumpDigits(t *testing.T) {
	Convey("Given names with and without digits", t, func() {
		So(bumpDigits("BOXN_4518"), ShouldEqual, "BOXN_4519")
		So(bumpDigits("WAG9_31339"), ShouldEqual, "WAG9_31330")
		So(bumpDigits("no_digits"), ShouldEqual, "no_digits_x")
	})
}
