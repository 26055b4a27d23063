package locksync_test

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/fieldday/scorekeeper/internal/adapters/audit"
	"github.com/fieldday/scorekeeper/internal/adapters/store"
	"github.com/fieldday/scorekeeper/internal/domain/locksync"
	"github.com/fieldday/scorekeeper/internal/domain/model"
	"github.com/fieldday/scorekeeper/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestToggle(t *testing.T) {
	Convey("Given a synchronizer over an unlocked event", t, func() {
		st := store.NewMemStore()
		ctx := context.Background()
		So(st.PutEvent(ctx, model.Event{ID: "ev1", LeagueID: "lg1"}), ShouldBeNil)

		log := audit.NewMemLog()
		at := time.Date(2026, 5, 14, 16, 0, 0, 0, time.UTC)
		sync := locksync.New(st, log, locksync.WithClock(func() time.Time { return at }))

		Convey("When locking the event", func() {
			res, err := sync.Toggle(ctx, "ev1", true, "director", "results final")

			Convey("Then the toggle is applied and verified", func() {
				So(err, ShouldBeNil)
				So(res, ShouldResemble, locksync.LockResult{IsLocked: true, Changed: true, Verified: true})

				ev, gerr := st.GetEvent(ctx, "ev1")
				So(gerr, ShouldBeNil)
				So(ev.Locked, ShouldBeTrue)
				So(ev.LockReason, ShouldEqual, "results final")
				So(ev.LockedAt, ShouldNotBeNil)
				So(*ev.LockedAt, ShouldEqual, at)
			})

			Convey("And an audit record is appended", func() {
				recs, aerr := log.Recent(ctx, "ev1", 10)
				So(aerr, ShouldBeNil)
				So(recs, ShouldHaveLength, 1)
				So(recs[0].Actor, ShouldEqual, "director")
				So(recs[0].Previous, ShouldBeFalse)
				So(recs[0].New, ShouldBeTrue)
				So(recs[0].Reason, ShouldEqual, "results final")
				So(recs[0].ID, ShouldNotBeEmpty)
			})

			Convey("And unlocking afterwards clears the timestamp", func() {
				res2, err2 := sync.Toggle(ctx, "ev1", false, "director", "reopened")
				So(err2, ShouldBeNil)
				So(res2, ShouldResemble, locksync.LockResult{IsLocked: false, Changed: true, Verified: true})

				ev, gerr := st.GetEvent(ctx, "ev1")
				So(gerr, ShouldBeNil)
				So(ev.Locked, ShouldBeFalse)
				So(ev.LockedAt, ShouldBeNil)
			})
		})

		Convey("When toggling to the state the event is already in", func() {
			res, err := sync.Toggle(ctx, "ev1", false, "director", "")

			Convey("Then it is an idempotent no-op with no audit row", func() {
				So(err, ShouldBeNil)
				So(res, ShouldResemble, locksync.LockResult{IsLocked: false, Changed: false, Verified: true})

				recs, aerr := log.Recent(ctx, "ev1", 10)
				So(aerr, ShouldBeNil)
				So(recs, ShouldBeEmpty)
			})
		})

		Convey("When the lock write is lost before the read-back", func() {
			st.DropLockMirror(true)
			res, err := sync.Toggle(ctx, "ev1", true, "director", "results final")

			Convey("Then the mismatch is reported, not swallowed", func() {
				So(errors.Is(err, locksync.ErrVerification), ShouldBeTrue)
				So(res.Verified, ShouldBeFalse)
				So(res.IsLocked, ShouldBeFalse)
			})

			Convey("And no audit record is written for the unverified toggle", func() {
				recs, aerr := log.Recent(ctx, "ev1", 10)
				So(aerr, ShouldBeNil)
				So(recs, ShouldBeEmpty)
			})
		})

		Convey("When the event does not exist", func() {
			_, err := sync.Toggle(ctx, "ghost", true, "director", "")

			Convey("Then the store error surfaces", func() {
				So(errors.Is(err, store.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When the lock write itself fails", func() {
			st.FailNext("set_locked")
			_, err := sync.Toggle(ctx, "ev1", true, "director", "")

			Convey("Then the error surfaces and the event stays unlocked", func() {
				So(errors.Is(err, store.ErrUnavailable), ShouldBeTrue)
				ev, gerr := st.GetEvent(ctx, "ev1")
				So(gerr, ShouldBeNil)
				So(ev.Locked, ShouldBeFalse)
			})
		})
	})
}
