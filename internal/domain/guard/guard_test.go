package guard_test

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/fieldday/scorekeeper/internal/domain/guard"
	"github.com/fieldday/scorekeeper/internal/domain/model"
	"github.com/fieldday/scorekeeper/internal/session"
)

func TestRequestSwitch(t *testing.T) {
	Convey("Given a fresh session on the vertical drill", t, func() {
		st := session.NewState("s1", "ev1", "lg1", "coach", "vertical")

		Convey("When switching before any entries were recorded", func() {
			out := guard.RequestSwitch(st, "shuttle")

			Convey("Then the switch applies immediately", func() {
				So(out, ShouldEqual, guard.OutcomeSwitched)
				So(st.ActiveDrillID, ShouldEqual, "shuttle")
				So(st.Phase, ShouldEqual, session.PhaseIdle)
			})
		})

		Convey("When requesting the already-active drill", func() {
			out := guard.RequestSwitch(st, "vertical")

			Convey("Then nothing changes", func() {
				So(out, ShouldEqual, guard.OutcomeUnchanged)
				So(st.ActiveDrillID, ShouldEqual, "vertical")
				So(st.Phase, ShouldEqual, session.PhaseIdle)
			})
		})

		Convey("When a duplicate decision is outstanding but no entries were recorded", func() {
			st.SetPending(&session.PendingDecision{
				Candidate: model.Candidate{EventID: "ev1", PlayerID: "p-7", DrillID: "vertical", Value: 30},
				Existing:  model.ScoreEntry{EventID: "ev1", PlayerID: "p-7", DrillID: "vertical", Value: 28},
			})
			out := guard.RequestSwitch(st, "shuttle")

			Convey("Then the switch still needs confirmation", func() {
				So(out, ShouldEqual, guard.OutcomeConfirmationRequired)
				So(st.ActiveDrillID, ShouldEqual, "vertical")
				So(st.PendingDrillID, ShouldEqual, "shuttle")
				So(st.Pending(), ShouldNotBeNil)
			})

			Convey("And confirming discards the decision with the switch", func() {
				res, err := guard.Confirm(st)
				So(err, ShouldBeNil)
				So(res.ImplicitCancel, ShouldBeTrue)
				So(st.Pending(), ShouldBeNil)
				So(st.ActiveDrillID, ShouldEqual, "shuttle")
			})
		})

		Convey("When entries exist for the active drill", func() {
			st.RecordEntry("vertical")
			out := guard.RequestSwitch(st, "shuttle")

			Convey("Then confirmation is required and the drill stays put", func() {
				So(out, ShouldEqual, guard.OutcomeConfirmationRequired)
				So(st.ActiveDrillID, ShouldEqual, "vertical")
				So(st.Phase, ShouldEqual, session.PhasePendingConfirmation)
				So(st.PendingDrillID, ShouldEqual, "shuttle")
			})

			Convey("And a repeated request re-shows the same confirmation", func() {
				So(guard.RequestSwitch(st, "sprint"), ShouldEqual, guard.OutcomeConfirmationRequired)
				So(st.PendingDrillID, ShouldEqual, "shuttle")
			})
		})
	})
}

func TestConfirmSwitch(t *testing.T) {
	Convey("Given a session with a pending switch", t, func() {
		st := session.NewState("s1", "ev1", "lg1", "coach", "vertical")
		st.RecordEntry("vertical")
		So(guard.RequestSwitch(st, "shuttle"), ShouldEqual, guard.OutcomeConfirmationRequired)

		Convey("When the operator confirms", func() {
			res, err := guard.Confirm(st)

			Convey("Then the new drill becomes active and the phase resets", func() {
				So(err, ShouldBeNil)
				So(res.OldDrillID, ShouldEqual, "vertical")
				So(res.NewDrillID, ShouldEqual, "shuttle")
				So(res.ImplicitCancel, ShouldBeFalse)
				So(st.ActiveDrillID, ShouldEqual, "shuttle")
				So(st.Phase, ShouldEqual, session.PhaseIdle)
				So(st.PendingDrillID, ShouldEqual, "")
			})
		})

		Convey("When a duplicate decision is outstanding at confirm time", func() {
			st.SetPending(&session.PendingDecision{
				Candidate: model.Candidate{EventID: "ev1", PlayerID: "p-7", DrillID: "vertical", Value: 30},
				Existing:  model.ScoreEntry{EventID: "ev1", PlayerID: "p-7", DrillID: "vertical", Value: 28},
			})
			res, err := guard.Confirm(st)

			Convey("Then it is discarded as an implicit cancel", func() {
				So(err, ShouldBeNil)
				So(res.ImplicitCancel, ShouldBeTrue)
				So(st.Pending(), ShouldBeNil)
			})
		})

		Convey("When the old drill carried an auto-replace preference", func() {
			st.SetAutoReplace("vertical")
			res, err := guard.Confirm(st)

			Convey("Then the preference is dropped and reported", func() {
				So(err, ShouldBeNil)
				So(res.ClearedAutoRepl, ShouldBeTrue)
				So(st.AutoReplace("vertical"), ShouldBeFalse)
				So(st.AutoReplace("shuttle"), ShouldBeFalse)
			})
		})

		Convey("When the operator cancels instead", func() {
			err := guard.CancelSwitch(st)

			Convey("Then the session stays on the old drill untouched", func() {
				So(err, ShouldBeNil)
				So(st.ActiveDrillID, ShouldEqual, "vertical")
				So(st.Phase, ShouldEqual, session.PhaseIdle)
				So(st.PendingDrillID, ShouldEqual, "")
				So(st.EntryCount("vertical"), ShouldEqual, 1)
			})
		})
	})

	Convey("Given a session with no pending switch", t, func() {
		st := session.NewState("s1", "ev1", "lg1", "coach", "vertical")

		Convey("When confirm or cancel arrives anyway", func() {
			_, cerr := guard.Confirm(st)
			xerr := guard.CancelSwitch(st)

			Convey("Then both are refused", func() {
				So(errors.Is(cerr, guard.ErrNoSwitchPending), ShouldBeTrue)
				So(errors.Is(xerr, guard.ErrNoSwitchPending), ShouldBeTrue)
			})
		})
	})
}
