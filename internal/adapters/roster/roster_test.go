package roster_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/fieldday/scorekeeper/internal/adapters/roster"
	"github.com/fieldday/scorekeeper/internal/domain/model"
)

func TestSnapshot(t *testing.T) {
	Convey("Given a snapshot seeded for one event", t, func() {
		snap := roster.NewSnapshot()
		snap.Replace("ev1", []model.Player{
			{ID: "p-1201", RosterNumber: "1201", Name: "Jamie Cole"},
		})
		ctx := context.Background()

		Convey("When resolving a known roster number", func() {
			p, err := snap.Resolve(ctx, "ev1", "1201")

			Convey("Then the player comes back", func() {
				So(err, ShouldBeNil)
				So(p.ID, ShouldEqual, "p-1201")
				So(p.Name, ShouldEqual, "Jamie Cole")
			})
		})

		Convey("When resolving an unknown roster number", func() {
			_, err := snap.Resolve(ctx, "ev1", "9999")

			Convey("Then it is ErrUnknownPlayer", func() {
				So(errors.Is(err, roster.ErrUnknownPlayer), ShouldBeTrue)
			})
		})

		Convey("When resolving against a different event", func() {
			_, err := snap.Resolve(ctx, "ev2", "1201")

			Convey("Then the roster does not leak across events", func() {
				So(errors.Is(err, roster.ErrUnknownPlayer), ShouldBeTrue)
			})
		})

		Convey("When the roster is replaced", func() {
			snap.Replace("ev1", []model.Player{
				{ID: "p-7", RosterNumber: "7", Name: "Sam Ortiz"},
			})

			Convey("Then the old numbers are gone and the new ones resolve", func() {
				_, err := snap.Resolve(ctx, "ev1", "1201")
				So(errors.Is(err, roster.ErrUnknownPlayer), ShouldBeTrue)

				p, err := snap.Resolve(ctx, "ev1", "7")
				So(err, ShouldBeNil)
				So(p.ID, ShouldEqual, "p-7")
			})
		})
	})
}
