package attributes

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/okian/matchday/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClamp(t *testing.T) {
	Convey("Given the clamp primitives", t, func() {
		So(ClampUnit(-3), ShouldEqual, 0)
		So(ClampUnit(140), ShouldEqual, 100)
		So(ClampUnit(55), ShouldEqual, 55)
		So(Clamp(7.5, 1.0, 10.0), ShouldEqual, 7.5)
		So(Clamp(11.2, 1.0, 10.0), ShouldEqual, 10.0)
		So(Floor0(int64(-20)), ShouldEqual, int64(0))
	})
}

func TestAdjust(t *testing.T) {
	Convey("Given a player near the bounds", t, func() {
		p := model.NewPlayer()
		p.Energy = 95
		p.Morale = 3
		p.Clout = 10

		Convey("When adjusting past the bounds", func() {
			out := Adjust(p, Delta{
				Energy:        30,
				Morale:        -10,
				Cash:          -500,
				Clout:         -50,
				PassiveIncome: 100,
				Relationships: model.RelationshipDelta{Manager: 80, Fans: -20},
			})

			Convey("Then bounded fields are clamped and cash is not", func() {
				So(out.Energy, ShouldEqual, 100)
				So(out.Morale, ShouldEqual, 0)
				So(out.Cash, ShouldEqual, int64(-400))
				So(out.Clout, ShouldEqual, int64(0))
				So(out.PassiveIncome, ShouldEqual, 100)
				So(out.Relationships.Manager, ShouldEqual, 100)
				So(out.Relationships.Fans, ShouldEqual, 0)
			})

			Convey("Then the input is untouched", func() {
				So(p.Energy, ShouldEqual, 95)
				So(p.Cash, ShouldEqual, int64(100))
			})
		})
	})
}

func TestNormalize(t *testing.T) {
	Convey("Given an out of range player", t, func() {
		p := model.NewPlayer()
		p.Energy = 250
		p.Form = -4
		p.LeagueID = 7
		p.Caps = -1
		p.Talents = []string{"engine", "engine", "leader"}

		n := Normalize(p)

		Convey("Then every field is in range", func() {
			So(n.Energy, ShouldEqual, 100)
			So(n.Form, ShouldEqual, 0)
			So(n.LeagueID, ShouldEqual, model.DefaultLeagueID)
			So(n.Caps, ShouldEqual, 0)
			So(n.Talents, ShouldResemble, []string{"engine", "leader"})
		})

		Convey("Then it is idempotent", func() {
			So(Normalize(n), ShouldResemble, n)
		})
	})
}

func TestNumber(t *testing.T) {
	Convey("Given values of assorted shapes", t, func() {
		So(Number(42.0, 1), ShouldEqual, 42.0)
		So(Number(7, 1), ShouldEqual, 7.0)
		So(Number("42", 1), ShouldEqual, 42.0)
		So(Number(" 3.5 ", 1), ShouldEqual, 3.5)
		So(Number(json.Number("12"), 1), ShouldEqual, 12.0)
		So(Number("abc", 9), ShouldEqual, 9.0)
		So(Number("", 9), ShouldEqual, 9.0)
		So(Number(nil, 9), ShouldEqual, 9.0)
		So(Number(true, 9), ShouldEqual, 9.0)
		So(Number(math.NaN(), 9), ShouldEqual, 9.0)
		So(Number(math.Inf(1), 9), ShouldEqual, 9.0)
		So(Number(map[string]any{}, 9), ShouldEqual, 9.0)
	})
}

func TestSanitize(t *testing.T) {
	Convey("Given a corrupted player document", t, func() {
		raw := map[string]any{
			"name":          "Jamie Vale",
			"energy":        "not a number",
			"morale":        math.NaN(),
			"cash":          "2500",
			"attacking":     130.0,
			"technique":     nil,
			"clout":         -40.0,
			"leagueId":      "1",
			"talents":       []any{"engine", 4.0, "engine", "clutch"},
			"inventory":     "boots_speed",
			"relationships": map[string]any{"manager": "70", "team": "bad"},
		}

		p, err := Sanitize(raw)

		Convey("Then every field falls back or is coerced", func() {
			So(err, ShouldBeNil)
			So(p.Name, ShouldEqual, "Jamie Vale")
			So(p.Energy, ShouldEqual, 100)
			So(p.Morale, ShouldEqual, 80)
			So(p.Cash, ShouldEqual, int64(2500))
			So(p.Attacking, ShouldEqual, 100)
			So(p.Technique, ShouldEqual, 40)
			So(p.Fitness, ShouldEqual, 40)
			So(p.Form, ShouldEqual, 50)
			So(p.Clout, ShouldEqual, int64(0))
			So(p.Wage, ShouldEqual, 100)
			So(p.LeagueID, ShouldEqual, 1)
			So(p.Talents, ShouldResemble, []string{"engine", "clutch"})
			So(p.Inventory, ShouldResemble, []string{})
			So(p.Relationships, ShouldResemble, model.Relationships{Manager: 70, Team: 50, Fans: 10})
		})

		Convey("Then sanitizing the result again changes nothing", func() {
			doc, err := ToDocument(p)
			So(err, ShouldBeNil)
			again, err := Sanitize(doc)
			So(err, ShouldBeNil)
			So(again, ShouldResemble, p)
		})
	})

	Convey("Given an empty document", t, func() {
		p, err := Sanitize(map[string]any{})

		Convey("Then it yields the documented fallbacks", func() {
			So(err, ShouldBeNil)
			So(p.Energy, ShouldEqual, 100)
			So(p.Cash, ShouldEqual, int64(100))
			So(p.Clout, ShouldEqual, int64(0))
			So(p.Relationships, ShouldResemble, model.Relationships{Manager: 50, Team: 50, Fans: 10})
			So(p.Talents, ShouldBeEmpty)
		})
	})

	Convey("Given no document", t, func() {
		_, err := Sanitize(nil)
		So(err, ShouldEqual, ErrMissingPlayer)
	})
}
