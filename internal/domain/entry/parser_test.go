package entry_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/fieldday/scorekeeper/internal/adapters/roster"
	"github.com/fieldday/scorekeeper/internal/domain/entry"
	"github.com/fieldday/scorekeeper/internal/domain/model"
)

func testRoster() *roster.Snapshot {
	snap := roster.NewSnapshot()
	snap.Replace("ev1", []model.Player{
		{ID: "p-1201", RosterNumber: "1201", Name: "Jamie Cole"},
		{ID: "p-7", RosterNumber: "7", Name: "Sam Ortiz"},
	})
	return snap
}

func percentDrill() model.Drill {
	return model.Drill{ID: "free_throws", Label: "FT", Unit: "%", Min: 0, Max: 100, HigherIsBetter: true}
}

func TestParserRapidMode(t *testing.T) {
	Convey("Given a parser over a seeded roster", t, func() {
		p := entry.NewParser(testRoster())
		drill := percentDrill()
		ctx := context.Background()

		Convey("When parsing valid rapid input with each delimiter", func() {
			for _, raw := range []string{"1201 87", "1201,87", "1201-87"} {
				cand, err := p.Parse(ctx, "ev1", drill, "coach", entry.Input{Mode: entry.ModeRapid, Raw: raw})

				Convey("Then "+raw+" should resolve player 1201 with value 87", func() {
					So(err, ShouldBeNil)
					So(cand.PlayerID, ShouldEqual, "p-1201")
					So(cand.DrillID, ShouldEqual, "free_throws")
					So(cand.Value, ShouldEqual, 87)
				})
			}
		})

		Convey("When parsing the equivalent standard input", func() {
			std, err := p.Parse(ctx, "ev1", drill, "coach", entry.Input{
				Mode: entry.ModeStandard, PlayerField: "1201", ScoreField: "87",
			})
			rapid, rerr := p.Parse(ctx, "ev1", drill, "coach", entry.Input{Mode: entry.ModeRapid, Raw: "1201 87"})

			Convey("Then both modes should yield the same candidate", func() {
				So(err, ShouldBeNil)
				So(rerr, ShouldBeNil)
				So(std, ShouldResemble, rapid)
			})
		})

		Convey("When the input carries surrounding whitespace", func() {
			cand, err := p.Parse(ctx, "ev1", drill, "coach", entry.Input{Mode: entry.ModeRapid, Raw: "  1201 87  "})

			Convey("Then it should be trimmed before splitting", func() {
				So(err, ShouldBeNil)
				So(cand.Value, ShouldEqual, 87)
			})
		})

		Convey("When the input has no recognized delimiter", func() {
			_, err := p.Parse(ctx, "ev1", drill, "coach", entry.Input{Mode: entry.ModeRapid, Raw: "120187"})

			Convey("Then it should be a missing field error", func() {
				So(errors.Is(err, entry.ErrMissingField), ShouldBeTrue)
			})
		})

		Convey("When the roster number does not resolve", func() {
			_, err := p.Parse(ctx, "ev1", drill, "coach", entry.Input{Mode: entry.ModeRapid, Raw: "9999 87"})

			Convey("Then it should be an unknown player error", func() {
				So(errors.Is(err, entry.ErrUnknownPlayer), ShouldBeTrue)
			})
		})
	})
}

func TestParserValidation(t *testing.T) {
	Convey("Given a parser over a seeded roster", t, func() {
		p := entry.NewParser(testRoster())
		drill := percentDrill()
		ctx := context.Background()

		Convey("When a standard field is empty", func() {
			_, err := p.Parse(ctx, "ev1", drill, "coach", entry.Input{
				Mode: entry.ModeStandard, PlayerField: "1201", ScoreField: "   ",
			})

			Convey("Then it should be a missing field error", func() {
				So(errors.Is(err, entry.ErrMissingField), ShouldBeTrue)
			})
		})

		Convey("When both the player and the score are invalid", func() {
			_, err := p.Parse(ctx, "ev1", drill, "coach", entry.Input{
				Mode: entry.ModeStandard, PlayerField: "9999", ScoreField: "abc",
			})

			Convey("Then the player check should win (validation order)", func() {
				So(errors.Is(err, entry.ErrUnknownPlayer), ShouldBeTrue)
			})
		})

		Convey("When the score is not numeric", func() {
			_, err := p.Parse(ctx, "ev1", drill, "coach", entry.Input{
				Mode: entry.ModeStandard, PlayerField: "7", ScoreField: "fast",
			})

			Convey("Then it should be an invalid score error", func() {
				So(errors.Is(err, entry.ErrInvalidScore), ShouldBeTrue)
			})
		})

		Convey("When the score is outside the drill domain", func() {
			_, err := p.Parse(ctx, "ev1", drill, "coach", entry.Input{
				Mode: entry.ModeStandard, PlayerField: "7", ScoreField: "100.5",
			})

			Convey("Then it should be an invalid score error", func() {
				So(errors.Is(err, entry.ErrInvalidScore), ShouldBeTrue)
			})
		})

		Convey("When the score sits exactly on the domain boundary", func() {
			low, lerr := p.Parse(ctx, "ev1", drill, "coach", entry.Input{
				Mode: entry.ModeStandard, PlayerField: "7", ScoreField: "0",
			})
			high, herr := p.Parse(ctx, "ev1", drill, "coach", entry.Input{
				Mode: entry.ModeStandard, PlayerField: "7", ScoreField: "100",
			})

			Convey("Then both boundaries should be accepted (inclusive range)", func() {
				So(lerr, ShouldBeNil)
				So(low.Value, ShouldEqual, 0)
				So(herr, ShouldBeNil)
				So(high.Value, ShouldEqual, 100)
			})
		})
	})
}

func TestParseErrorKinds(t *testing.T) {
	Convey("Given the parse error kinds", t, func() {
		Convey("Then each sentinel should map to its machine-readable name", func() {
			So(entry.Kind(entry.ErrMissingField), ShouldEqual, "missing_field")
			So(entry.Kind(entry.ErrUnknownPlayer), ShouldEqual, "unknown_player")
			So(entry.Kind(entry.ErrInvalidScore), ShouldEqual, "invalid_score")
			So(entry.Kind(context.Canceled), ShouldEqual, "")
		})
	})
}
