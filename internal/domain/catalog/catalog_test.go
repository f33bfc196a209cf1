package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDefault(t *testing.T) {
	Convey("Given the built-in catalog", t, func() {
		c := Default()

		Convey("Then it validates", func() {
			So(c.Validate(), ShouldBeNil)
		})

		Convey("Then it exposes three divisions of ten clubs", func() {
			So(len(c.AllClubs()), ShouldEqual, 30)
			So(c.Roster(2)[0], ShouldEqual, "Wrexham Dragons")
			So(c.Roster(5), ShouldBeNil)
			So(c.LeagueName(0), ShouldEqual, "Premier Division")
		})

		Convey("Then rosters are returned as copies", func() {
			r := c.Roster(0)
			r[0] = "Changed"
			So(c.Roster(0)[0], ShouldEqual, "Manchester Blue")
		})

		Convey("Then items and starter clubs resolve by key", func() {
			it, ok := c.Item("sports_car")
			So(ok, ShouldBeTrue)
			So(it.Effects.Clout, ShouldEqual, int64(25000))
			_, ok = c.Item("yacht")
			So(ok, ShouldBeFalse)

			club, ok := c.StarterClub("Derby Rams")
			So(ok, ShouldBeTrue)
			So(club.Wage, ShouldEqual, 120)
			So(club.SigningBonus, ShouldEqual, int64(50))
		})

		Convey("Then the call-up event has a single choice", func() {
			ev := CallUpEvent("England")
			So(ev.IsCallUp, ShouldBeTrue)
			So(ev.Choices, ShouldHaveLength, 1)
			So(ev.Text, ShouldContainSubstring, "England")
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Given a YAML override", t, func() {
		Convey("When it replaces the nations only", func() {
			c, err := Parse([]byte("nations: [\"Wales\", \"Scotland\"]\n"))

			Convey("Then other sections keep their defaults", func() {
				So(err, ShouldBeNil)
				So(c.Nations, ShouldResemble, []string{"Wales", "Scotland"})
				So(len(c.Items), ShouldEqual, 9)
				So(len(c.Events), ShouldEqual, 4)
			})
		})

		Convey("When it adds an item", func() {
			data := []byte(`
items:
  - id: ice_bath
    name: Ice Bath
    type: CONSUMABLE
    cost: 40
    effects:
      energy: 15
      fitness: 1
`)
			c, err := Parse(data)

			Convey("Then the item list is replaced", func() {
				So(err, ShouldBeNil)
				So(c.Items, ShouldHaveLength, 1)
				So(c.Items[0].Effects.Energy, ShouldEqual, 15)
			})
		})

		Convey("When a roster is short", func() {
			_, err := Parse([]byte("rosters: [[\"A\"], [\"B\"], [\"C\"]]\n"))
			So(errors.Is(err, ErrInvalidCatalog), ShouldBeTrue)
		})

		Convey("When an item type is unknown", func() {
			_, err := Parse([]byte("items: [{id: x, type: MAGIC, cost: 1}]\n"))
			So(errors.Is(err, ErrInvalidCatalog), ShouldBeTrue)
		})

		Convey("When the YAML is broken", func() {
			_, err := Parse([]byte("nations: [\n"))
			So(errors.Is(err, ErrInvalidCatalog), ShouldBeTrue)
		})
	})

	Convey("Given a catalog file", t, func() {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		So(os.WriteFile(path, []byte("squad_names: [\"A. Keeper (GK)\"]\n"), 0o600), ShouldBeNil)

		c, err := LoadFile(path)
		So(err, ShouldBeNil)
		So(c.SquadNames, ShouldResemble, []string{"A. Keeper (GK)"})

		_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
		So(errors.Is(err, ErrReadCatalog), ShouldBeTrue)
	})
}
