package service_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	service "github.com/railtools/consistfix/internal/app"
)

const fixtureConsist = `SIMISA@@@@@@@@@@JINX0D0t______

Train (
	TrainCfg ( "mixed_rake"
		Serial ( 1 )
		Engine (
			UiD ( 0 )
			EngineData ( WAP7_30203 "Old_WAP7" )
		)
		Wagon (
			UiD ( 1 )
			WagonData ( BOXN_4518 "IR_Wagons" )
		)
	)
)
`

// seedWorld lays out a small trainset and one consist whose engine points
// at a stale folder.
func seedWorld(t *testing.T) (trainset, consists, consistPath string) {
	t.Helper()
	root := t.TempDir()

	trainset = filepath.Join(root, "trainset")
	consists = filepath.Join(root, "consists")

	assets := map[string]string{
		"IR_WAP7/WAP7_30203.eng":      "placeholder",
		"IR_Wagons/BOXN_4518.wag":     "placeholder",
		"IR_BOXN_Other/BOXN_4521.wag": "placeholder",
	}
	for rel, content := range assets {
		path := filepath.Join(trainset, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if err := os.MkdirAll(consists, 0o755); err != nil {
		t.Fatal(err)
	}
	consistPath = filepath.Join(consists, "mixed_rake.con")
	if err := os.WriteFile(consistPath, []byte(fixtureConsist), 0o644); err != nil {
		t.Fatal(err)
	}

	return trainset, consists, consistPath
}

func TestServiceIntegration(t *testing.T) {
	Convey("Given a trainset and a consist with a stale folder", t, func() {
		ctx := context.Background()
		trainset, consists, consistPath := seedWorld(t)

		Convey("When running in dry-run mode", func() {
			var out bytes.Buffer
			svc := service.New(
				service.WithTrainsetDir(trainset),
				service.WithConsistDir(consists),
				service.WithWorkerCount(2),
				service.WithDryRun(true),
				service.WithOutput(&out),
			)

			report, err := svc.Run(ctx)

			Convey("Then the report counts the drift without writing", func() {
				So(err, ShouldBeNil)
				So(report.RunID, ShouldNotBeEmpty)
				So(report.TotalEntries, ShouldEqual, 2)
				So(report.AssetsIndexed, ShouldEqual, 3)
				So(report.Resolved, ShouldEqual, 2)
				So(report.Changed, ShouldEqual, 1)
				So(report.AlreadyMatching, ShouldEqual, 1)
				So(report.Unresolved, ShouldEqual, 0)
				So(report.FilesModified, ShouldEqual, 0)
				So(report.PhaseBreakdown["EXACT_NAME"], ShouldEqual, 2)
			})

			Convey("Then the consist file is untouched", func() {
				So(err, ShouldBeNil)
				data, readErr := os.ReadFile(consistPath)
				So(readErr, ShouldBeNil)
				So(string(data), ShouldContainSubstring, `EngineData ( WAP7_30203 "Old_WAP7" )`)
			})

			Convey("Then the summary suggests a real run", func() {
				So(err, ShouldBeNil)
				So(out.String(), ShouldContainSubstring, "Entries Processed")
				So(out.String(), ShouldContainSubstring, "Run without dry-run")
			})
		})

		Convey("When running for real with explain enabled", func() {
			var out bytes.Buffer
			svc := service.New(
				service.WithTrainsetDir(trainset),
				service.WithConsistDir(consists),
				service.WithWorkerCount(2),
				service.WithExplain(true),
				service.WithOutput(&out),
			)

			report, err := svc.Run(ctx)

			Convey("Then the stale folder is rewritten on disk", func() {
				So(err, ShouldBeNil)
				So(report.FilesModified, ShouldEqual, 1)

				data, readErr := os.ReadFile(consistPath)
				So(readErr, ShouldBeNil)
				So(string(data), ShouldContainSubstring, `EngineData ( WAP7_30203 "IR_WAP7" )`)
				So(string(data), ShouldNotContainSubstring, "Old_WAP7")
			})

			Convey("Then the explain report groups entries by outcome", func() {
				So(err, ShouldBeNil)
				So(out.String(), ShouldContainSubstring, "--- CHANGED ENTRIES ---")
				So(out.String(), ShouldContainSubstring, "--- UNCHANGED (already matching) ---")
				So(out.String(), ShouldContainSubstring, "Old_WAP7/WAP7_30203 -> IR_WAP7/WAP7_30203")
			})
		})

		Convey("When the consist directory is empty", func() {
			empty := t.TempDir()
			svc := service.New(
				service.WithTrainsetDir(trainset),
				service.WithConsistDir(empty),
				service.WithOutput(&bytes.Buffer{}),
			)

			_, err := svc.Run(ctx)

			Convey("Then the parse failure is surfaced", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "parsing consists")
			})
		})
	})
}
