package metrics

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given a private registry", t, func() {
		registry := prometheus.NewRegistry()

		Convey("When creating a manager with custom options", func() {
			m := NewManager(
				WithNamespace("hr"),
				WithSubsystem("test"),
				WithHistogramBuckets([]float64{1, 10, 100}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			m.recordsScored.Inc()

			Convey("Then collectors are registered under the custom names", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				names := map[string]bool{}
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["hr_test_records_scored_total"], ShouldBeTrue)
				So(testutil.ToFloat64(m.recordsScored), ShouldEqual, 1)
			})
		})

		Convey("When registering the same manager twice on one registry", func() {
			NewManager(WithPrometheusRegistry(registry))

			Convey("Then the duplicate registration panics", func() {
				So(func() { NewManager(WithPrometheusRegistry(registry)) }, ShouldPanic)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording scoring metrics", func() {
			before := testutil.ToFloat64(globalManager.recordsIngested)
			RecordRecordIngested()
			RecordRecordDuplicate()
			RecordRecordScored()
			RecordRecordInvalid()
			RecordScoringLatency(1.5)
			UpdateScoredEmployees(42)
			UpdateHighRiskCount(3)

			Convey("Then counters and gauges move", func() {
				So(testutil.ToFloat64(globalManager.recordsIngested), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.scoredEmployees), ShouldEqual, 42)
				So(testutil.ToFloat64(globalManager.highRiskCount), ShouldEqual, 3)
			})
		})

		Convey("When recording consultation failures by reason", func() {
			RecordConsultRequest("retention_analysis")
			RecordConsultFailure("timeout")
			RecordConsultFailure("timeout")
			RecordConsultLatency(250)

			Convey("Then each reason is its own series", func() {
				So(testutil.ToFloat64(globalManager.consultFailures.WithLabelValues("timeout")), ShouldBeGreaterThanOrEqualTo, 2)
			})
		})

		Convey("When recording analytics reports", func() {
			before := testutil.ToFloat64(globalManager.analyticsReports.WithLabelValues("benchmark", "ok"))
			RecordAnalyticsReport("benchmark", "ok")
			RecordAnalyticsReport("diversity", "invalid")

			Convey("Then kind and status label the series", func() {
				So(testutil.ToFloat64(globalManager.analyticsReports.WithLabelValues("benchmark", "ok")), ShouldEqual, before+1)
			})
		})

		Convey("When recording the remaining operational metrics", func() {
			So(func() {
				RecordHTTPRequest("/score", "POST", "200")
				RecordHTTPRequestDuration("/score", "POST", "200", 3)
				RecordRepositoryUpdateLatency(0.1)
				RecordRepositoryQueryLatency(0.2)
				UpdateQueueSize(5)
				UpdateQueueCapacity(10)
				UpdateQueueUtilization(0.5)
				RecordQueueEnqueue()
				RecordQueueDequeue()
				RecordQueueEnqueueError()
				UpdateWorkerCount(4)
				UpdateWorkerActiveCount(1)
				UpdateWorkerIdleCount(3)
				RecordWorkerProcessingLatency(2)
				RecordErrorByComponent("queue", "queue_full")
				RecordImport("ok")
				RecordConfigReload("rejected")
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(12)
			}, ShouldNotPanic)
			So(testutil.ToFloat64(globalManager.queueUtilization), ShouldEqual, 0.5)
		})

		Convey("Then the registry served on /healthz gathers without error", func() {
			_, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Concurrent recorders are safe", t, func() {
		before := testutil.ToFloat64(globalManager.queueEnqueued)
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					RecordQueueEnqueue()
				}
			}()
		}
		wg.Wait()
		So(testutil.ToFloat64(globalManager.queueEnqueued), ShouldEqual, before+1000)
	})
}
