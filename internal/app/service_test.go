package service_test

import (
	"bytes"
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	service "github.com/railtools/consistfix/internal/app"
	"github.com/railtools/consistfix/pkg/logger"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should be created successfully", func() {
			So(svc, ShouldNotBeNil)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithTrainsetDir("assets/trainset"),
			service.WithConsistDir("assets/consists"),
			service.WithWorkerCount(8),
			service.WithDryRun(true),
			service.WithExplain(true),
			service.WithSemanticMatch(false),
			service.WithTieBreakSeed(7),
			service.WithOilIndicators([]string{"molasses"}),
			service.WithOutput(&bytes.Buffer{}),
		)

		Convey("Then it should be created successfully", func() {
			So(svc, ShouldNotBeNil)
		})
	})

	Convey("Given zero-value options", t, func() {
		svc := service.New(
			service.WithTrainsetDir(""),
			service.WithConsistDir(""),
			service.WithWorkerCount(0),
			service.WithOilIndicators(nil),
			service.WithOutput(nil),
		)

		Convey("Then the defaults survive", func() {
			So(svc, ShouldNotBeNil)
		})
	})
}

func TestService_RunErrors(t *testing.T) {
	Convey("Given a service pointed at a missing trainset", t, func() {
		svc := service.New(
			service.WithTrainsetDir("/nonexistent/trainset"),
			service.WithConsistDir("/nonexistent/consists"),
			service.WithOutput(&bytes.Buffer{}),
		)

		_, err := svc.Run(context.Background())

		Convey("Then the scan failure is surfaced", func() {
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "building asset index")
		})
	})
}

func TestReportRates(t *testing.T) {
	Convey("Given a report with mixed outcomes", t, func() {
		report := &service.Report{
			TotalEntries: 8,
			Resolved:     6,
			Changed:      2,
		}

		Convey("Then the rates follow the counts", func() {
			So(report.ResolutionRate(), ShouldEqual, 0.75)
			So(report.ChangeRate(), ShouldEqual, 0.25)
		})
	})

	Convey("Given an empty report", t, func() {
		report := &service.Report{}

		Convey("Then the rates stay at zero", func() {
			So(report.ResolutionRate(), ShouldEqual, 0)
			So(report.ChangeRate(), ShouldEqual, 0)
		})
	})
}
