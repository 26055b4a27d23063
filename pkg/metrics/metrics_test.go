package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given a fresh registry", t, func() {
		registry := prometheus.NewRegistry()

		Convey("When creating a manager with defaults", func() {
			manager := NewManager(WithRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating a manager with custom options", func() {
			manager := NewManager(
				WithNamespace("combine"),
				WithHistogramBuckets([]float64{1, 5, 25, 100}),
				WithRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "combine")
				So(manager.buckets, ShouldResemble, []float64{1, 5, 25, 100})
			})
		})
	})
}

func TestPackageHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording through every helper", func() {
			record := func() {
				RecordEntryCommitted()
				RecordEntryReplaced()
				RecordDuplicatePrompt()
				RecordAutoReplace()
				RecordEntryRejected("locked")
				RecordParseError("invalid_score")
				RecordLockToggle(true)
				RecordLockToggle(false)
				RecordLockVerifyFailure()
				RecordRankingRecompute()
				RecordRankingDuration(1.5)
				UpdateActiveSessions(3)
				RecordDrillSwitch()
				RecordCommandBackpressure()
				RecordStoreError("get_event")
				RecordHTTPRequest("entries", "POST", "200")
				RecordHTTPRequestDuration("entries", "POST", "200", 2.5)
			}

			Convey("Then none of them should panic", func() {
				So(record, ShouldNotPanic)
			})
		})

		Convey("When gathering the custom registry", func() {
			RecordEntryCommitted()
			families, err := GetRegistry().Gather()

			Convey("Then the service metrics are exposed", func() {
				So(err, ShouldBeNil)
				So(families, ShouldNotBeEmpty)

				found := false
				for _, f := range families {
					if f.GetName() == "scorekeeper_entry_entries_committed_total" {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})
	})
}
