package consist

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/railtools/consistfix/internal/domain/model"
	"github.com/railtools/consistfix/internal/domain/types"
	"github.com/railtools/consistfix/pkg/logger"
)

func TestWriter(t *testing.T) {
	_ = logger.Init()

	Convey("Given a parsed consist and its resolution results", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		path := writeConsist(t, dir, "goods.con", sampleConsist)

		file, err := NewParser().ParseFile(path)
		So(err, ShouldBeNil)
		So(file.Entries, ShouldHaveLength, 2)

		engineEntry := file.Entries[0]
		wagonEntry := file.Entries[1]

		Convey("When one entry changed and one already matches", func() {
			results := []*model.MatchResult{
				{
					Chosen: &model.Record{Kind: types.KindEngine, Name: "WAP7_30444", Folder: "IR_WAP7_New"},
					Target: model.Metadata{Name: engineEntry.Name, Folder: engineEntry.Folder},
				},
				{
					Chosen: &model.Record{Kind: types.KindWagon, Name: wagonEntry.Name, Folder: wagonEntry.Folder},
					Target: model.Metadata{Name: wagonEntry.Name, Folder: wagonEntry.Folder},
				},
			}

			modified, err := NewWriter().Write(ctx, []*File{file}, results)

			Convey("Then only the changed reference is rewritten", func() {
				So(err, ShouldBeNil)
				So(modified, ShouldEqual, 1)

				data, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				content := string(data)

				So(content, ShouldContainSubstring, `EngineData ( WAP7_30444 "IR_WAP7_New" )`)
				So(content, ShouldNotContainSubstring, "WAP7_30203")
				So(content, ShouldContainSubstring, `WagonData ( BOXN_4521 "IR_Wagons" )`)
				So(strings.HasSuffix(content, "\n"), ShouldBeTrue)
			})
		})

		Convey("When nothing changed", func() {
			results := []*model.MatchResult{
				{
					Chosen: &model.Record{Name: engineEntry.Name, Folder: engineEntry.Folder},
					Target: model.Metadata{Name: engineEntry.Name, Folder: engineEntry.Folder},
				},
				{
					Chosen: &model.Record{Name: wagonEntry.Name, Folder: wagonEntry.Folder},
					Target: model.Metadata{Name: wagonEntry.Name, Folder: wagonEntry.Folder},
				},
			}

			modified, err := NewWriter().Write(ctx, []*File{file}, results)

			Convey("Then the file is left alone", func() {
				So(err, ShouldBeNil)
				So(modified, ShouldEqual, 0)
			})
		})

		Convey("When an entry stayed unresolved", func() {
			results := []*model.MatchResult{
				{Target: model.Metadata{Name: engineEntry.Name, Folder: engineEntry.Folder}},
				{Target: model.Metadata{Name: wagonEntry.Name, Folder: wagonEntry.Folder}},
			}

			modified, err := NewWriter().Write(ctx, []*File{file}, results)

			Convey("Then nothing is written", func() {
				So(err, ShouldBeNil)
				So(modified, ShouldEqual, 0)
			})
		})

		Convey("When results are short of entries", func() {
			_, err := NewWriter().Write(ctx, []*File{file}, nil)

			Convey("Then the mismatch is reported", func() {
				So(errors.Is(err, ErrResultMismatch), ShouldBeTrue)
			})
		})
	})
}
