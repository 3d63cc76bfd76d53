package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			metricPrefixOpt := WithMetricPrefix("test-prefix")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			metricsEnabledOpt := WithMetricsEnabled(true)
			refreshIntervalOpt := WithRefreshInterval(5 * time.Second)
			customLabelsOpt := WithCustomLabels(map[string]string{"env": "test"})

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(metricPrefixOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
				So(refreshIntervalOpt, ShouldNotBeNil)
				So(customLabelsOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithMetricPrefix("test-prefix"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithRefreshInterval(10*time.Second),
				WithCustomLabels(map[string]string{"env": "test", "version": "1.0"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with empty option values", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithMetricPrefix(""),
				WithHistogramBuckets(nil),
				WithCustomLabels(nil),
				WithRefreshInterval(0),
				WithPrometheusRegistry(registry),
			)

			Convey("Then defaults should be kept", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given metrics recording", t, func() {
		Convey("When recording resolution metrics", func() {
			Convey("Then it should record processed entries", func() {
				So(func() {
					RecordEntryProcessed()
					RecordEntryProcessed()
					RecordEntryProcessed()
				}, ShouldNotPanic)
			})

			Convey("And it should record resolution outcomes", func() {
				So(func() {
					RecordEntryResolved()
					RecordEntryChanged()
					RecordEntryUnresolved()
				}, ShouldNotPanic)
			})

			Convey("And it should record phase matches", func() {
				So(func() {
					RecordPhaseMatch("EXACT_NAME")
					RecordPhaseMatch("KEY_TOKEN_ALL")
					RecordPhaseMatch("UNRESOLVED")
					RecordPhaseMatch("")
				}, ShouldNotPanic)
			})
		})

		Convey("When recording run metrics", func() {
			Convey("Then it should update index gauges", func() {
				So(func() {
					UpdateIndexSize(120, 480)
					UpdateIndexSize(0, 0)
				}, ShouldNotPanic)
			})

			Convey("And it should update worker count", func() {
				So(func() {
					UpdateWorkerCount(8)
					UpdateWorkerCount(0)
					UpdateWorkerCount(-1)
				}, ShouldNotPanic)
			})

			Convey("And it should observe durations", func() {
				So(func() {
					ObserveScanDuration(1.25)
					ObserveScanDuration(0.0)
					ObserveResolutionDuration(42.0)
				}, ShouldNotPanic)
			})

			Convey("And it should count modified files", func() {
				So(func() {
					RecordFilesModified(3)
					RecordFilesModified(0)
				}, ShouldNotPanic)
			})
		})
	})
}

func TestMetricsHandler(t *testing.T) {
	Convey("Given the metrics HTTP handler", t, func() {
		Convey("When requesting the handler", func() {
			h := Handler()

			Convey("Then a handler should be returned", func() {
				So(h, ShouldNotBeNil)
			})
		})

		Convey("When requesting the registry", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given metrics concurrency", t, func() {
		Convey("When recording metrics concurrently", func() {
			done := make(chan bool, 10)

			for i := 0; i < 10; i++ {
				go func() {
					for j := 0; j < 100; j++ {
						RecordEntryProcessed()
						RecordPhaseMatch("EXACT_NAME")
						UpdateIndexSize(j, j*2)
						ObserveScanDuration(float64(j) / 100)
					}
					done <- true
				}()
			}

			for i := 0; i < 10; i++ {
				<-done
			}

			Convey("Then it should handle concurrent access without panics", func() {
				So(true, ShouldBeTrue)
			})
		})
	})
}
