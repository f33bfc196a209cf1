package league

import (
	"errors"
	"testing"

	"github.com/okian/matchday/internal/domain/catalog"
	"github.com/okian/matchday/internal/domain/model"
	"github.com/okian/matchday/internal/domain/random"
	. "github.com/smartystreets/goconvey/convey"
)

func totalPoints(l model.League) int {
	sum := 0
	for _, t := range l.Teams {
		sum += t.Points
	}
	return sum
}

func TestSeedDivision(t *testing.T) {
	Convey("Given a roster", t, func() {
		roster := []string{"A", "B", "C", "D"}

		Convey("When the player's club is already listed", func() {
			l := SeedDivision(2, "League One", roster, "C")
			So(l.Tier, ShouldEqual, 3)
			So(l.Teams, ShouldHaveLength, 4)
			So(l.Teams[2].Name, ShouldEqual, "C")
		})

		Convey("When the player's club is new", func() {
			l := SeedDivision(2, "League One", roster, "Mine")

			Convey("Then it replaces the last club and is listed first", func() {
				So(l.Teams, ShouldHaveLength, 4)
				So(l.Teams[0].Name, ShouldEqual, "Mine")
				So(l.Find("D"), ShouldEqual, -1)
			})
		})

		Convey("Then the roster is not modified", func() {
			SeedDivision(0, "x", roster, "Mine")
			So(roster, ShouldResemble, []string{"A", "B", "C", "D"})
		})
	})

	Convey("Given the default catalog", t, func() {
		d := Initialize(catalog.Default(), "Sunday League FC", 2)

		Convey("Then three valid divisions exist and the club is in exactly one", func() {
			So(Validate(d), ShouldBeNil)
			id, ok := d.LeagueOf("Sunday League FC")
			So(ok, ShouldBeTrue)
			So(id, ShouldEqual, 2)
			So(d[2].Teams[0].Name, ShouldEqual, "Sunday League FC")
			So(d[2].Find("Derby Rams"), ShouldEqual, -1)
		})

		Convey("When a lower-tier club is placed in the top division", func() {
			cat := catalog.Default()
			lower := cat.Rosters[2][0]
			displaced := cat.Rosters[0][len(cat.Rosters[0])-1]
			d := Initialize(cat, lower, 0)

			Convey("Then it is listed once and the displaced club drops into its slot", func() {
				So(Validate(d), ShouldBeNil)
				So(d[0].Find(lower), ShouldEqual, 0)
				So(d[2].Find(lower), ShouldEqual, -1)
				So(d[2].Find(displaced), ShouldEqual, 0)
			})
		})
	})
}

func TestApplyMatchResult(t *testing.T) {
	Convey("Given fresh divisions", t, func() {
		d := Initialize(catalog.Default(), "Wrexham Dragons", 2)

		Convey("When the player wins 2-1", func() {
			d.ApplyMatchResult(2, "Wrexham Dragons", "Derby Rams", 2, 1)

			Convey("Then both rows are updated from their own perspective", func() {
				w := d[2].Teams[d[2].Find("Wrexham Dragons")]
				r := d[2].Teams[d[2].Find("Derby Rams")]
				So(w, ShouldResemble, model.TeamStanding{Name: "Wrexham Dragons", Played: 1, Won: 1, Points: 3, GoalDifference: 1})
				So(r, ShouldResemble, model.TeamStanding{Name: "Derby Rams", Played: 1, Lost: 1, GoalDifference: -1})
			})
		})

		Convey("When the opponent is in another division", func() {
			d.ApplyMatchResult(2, "Wrexham Dragons", "France", 1, 1)

			Convey("Then only the player's row changes", func() {
				So(totalPoints(d[2]), ShouldEqual, 1)
			})
		})

		Convey("When the division does not exist", func() {
			So(func() { d.ApplyMatchResult(9, "a", "b", 1, 0) }, ShouldNotPanic)
		})
	})
}

func TestSimulateRemainder(t *testing.T) {
	Convey("Given a division after the player's match", t, func() {
		d := Initialize(catalog.Default(), "Wrexham Dragons", 2)
		d.ApplyMatchResult(2, "Wrexham Dragons", "Derby Rams", 0, 0)
		before := totalPoints(d[2])

		Convey("When simulating the other eight clubs", func() {
			fixtures := d.SimulateRemainder(2, []string{"Wrexham Dragons", "Derby Rams"}, random.NewSeeded(11))

			Convey("Then four fixtures are played in insertion order pairs", func() {
				So(fixtures, ShouldHaveLength, 4)
				So(fixtures[0].Home, ShouldEqual, "Birmingham Blues")
				So(fixtures[0].Away, ShouldEqual, "Huddersfield Terriers")
			})

			Convey("Then points grow by three per decisive fixture and two per draw", func() {
				want := 0
				for _, f := range fixtures {
					if f.HomeScore == f.AwayScore {
						want += 2
					} else {
						want += 3
					}
					So(f.HomeScore, ShouldBeBetweenOrEqual, 0, 3)
					So(f.AwayScore, ShouldBeBetweenOrEqual, 0, 3)
				}
				So(totalPoints(d[2])-before, ShouldEqual, want)
				So(d[2].Teams, ShouldHaveLength, 10)
			})
		})

		Convey("When an odd number of clubs remain", func() {
			fixtures := d.SimulateRemainder(2, []string{"Wrexham Dragons"}, random.NewScripted(0.5))

			Convey("Then the trailing club has a bye", func() {
				So(fixtures, ShouldHaveLength, 4)
				last := d[2].Teams[d[2].Find("Portsmouth Pompey")]
				So(last.Played, ShouldEqual, 1)
				derby := d[2].Teams[d[2].Find("Derby Rams")]
				So(derby.Played, ShouldEqual, 1) // from the player's match only
			})
		})

		Convey("When the scores are scripted", func() {
			fixtures := d.SimulateRemainder(2, []string{"Wrexham Dragons", "Derby Rams"}, random.NewScripted(0.99, 0.0))
			So(fixtures[0].HomeScore, ShouldEqual, 3)
			So(fixtures[0].AwayScore, ShouldEqual, 0)
		})
	})
}

func TestRankedStandings(t *testing.T) {
	Convey("Given a division with ties", t, func() {
		d := Divisions{{ID: 0, Teams: []model.TeamStanding{
			{Name: "A", Points: 3, GoalDifference: 1},
			{Name: "B", Points: 6, GoalDifference: 0},
			{Name: "C", Points: 3, GoalDifference: 4},
			{Name: "D", Points: 3, GoalDifference: 1},
		}}}

		ranked := d.RankedStandings(0)

		Convey("Then points then goal difference then insertion order decide", func() {
			So(names(ranked), ShouldResemble, []string{"B", "C", "A", "D"})
			So(d.Position(0, "D"), ShouldEqual, 4)
		})

		Convey("Then ranking is idempotent and does not reorder the division", func() {
			So(d.RankedStandings(0), ShouldResemble, ranked)
			So(d[0].Teams[0].Name, ShouldEqual, "A")
		})
	})
}

// seededStandings gives the i-th club of each division 30-3i points.
func seededStandings(d Divisions) Divisions {
	for i := range d {
		for j := range d[i].Teams {
			d[i].Teams[j].Points = 30 - 3*j
			d[i].Teams[j].Won = 10 - j
			d[i].Teams[j].Played = 18
		}
	}
	return d
}

func TestEndOfSeason(t *testing.T) {
	Convey("Given a finished season with the player ninth in the top division", t, func() {
		d := seededStandings(Initialize(catalog.Default(), "Villa Midlands", 0))
		So(d.Position(0, "Villa Midlands"), ShouldEqual, 9)

		next, outcome, err := d.EndOfSeason("Villa Midlands", 0)

		Convey("Then the player's club is relegated", func() {
			So(err, ShouldBeNil)
			So(outcome.Movement, ShouldEqual, Relegated)
			So(outcome.LeagueID, ShouldEqual, 1)
			id, _ := next.LeagueOf("Villa Midlands")
			So(id, ShouldEqual, 1)
		})

		Convey("Then every division keeps ten zeroed clubs", func() {
			So(Validate(next), ShouldBeNil)
			for _, l := range next {
				So(l.Teams, ShouldHaveLength, 10)
				for _, tm := range l.Teams {
					So(tm, ShouldResemble, model.TeamStanding{Name: tm.Name})
				}
			}
		})

		Convey("Then the clubs are reassembled in order", func() {
			So(next[0].Teams[8].Name, ShouldEqual, "Leeds United")
			So(next[0].Teams[9].Name, ShouldEqual, "Sunderland Cats")
			So(names(next[1].Teams)[6:], ShouldResemble, []string{"Villa Midlands", "West Ham Irons", "Wrexham Dragons", "Birmingham Blues"})
			So(names(next[2].Teams)[8:], ShouldResemble, []string{"Middlesbrough Boro", "Blackburn Rovers"})
			So(outcome.Promoted[0], ShouldResemble, []string{"Leeds United", "Sunderland Cats"})
		})

		Convey("Then the input is untouched", func() {
			So(d[0].Teams[0].Points, ShouldEqual, 30)
		})
	})

	Convey("Given the player top of the bottom division", t, func() {
		d := seededStandings(Initialize(catalog.Default(), "Wrexham Dragons", 2))
		_, outcome, err := d.EndOfSeason("Wrexham Dragons", 2)
		So(err, ShouldBeNil)
		So(outcome.Movement, ShouldEqual, Promoted)
		So(outcome.LeagueID, ShouldEqual, 1)
	})

	Convey("Given a mid-table player", t, func() {
		d := seededStandings(Initialize(catalog.Default(), "Stoke Potters", 1))
		_, outcome, err := d.EndOfSeason("Stoke Potters", 1)
		So(err, ShouldBeNil)
		So(outcome.Movement, ShouldEqual, Unchanged)
		So(outcome.LeagueID, ShouldEqual, 1)
	})

	Convey("Given a short division", t, func() {
		d := Initialize(catalog.Default(), "X", 2)
		d[1].Teams = d[1].Teams[:9]
		_, _, err := d.EndOfSeason("X", 2)
		So(errors.Is(err, ErrDivisionSize), ShouldBeTrue)
	})
}

func TestValidate(t *testing.T) {
	Convey("Given divisions with a duplicated club", t, func() {
		d := Initialize(catalog.Default(), "Sunday League FC", 2)
		d[1].Teams[0].Name = d[0].Teams[0].Name
		So(errors.Is(Validate(d), ErrDuplicateTeam), ShouldBeTrue)
	})

	Convey("Given two divisions", t, func() {
		d := Initialize(catalog.Default(), "Sunday League FC", 2)[:2]
		So(errors.Is(Validate(d), ErrUnknownDivision), ShouldBeTrue)
	})

	Convey("Given a clone", t, func() {
		d := Initialize(catalog.Default(), "Sunday League FC", 2)
		c := d.Clone()
		c[0].Teams[0].Points = 99
		So(d[0].Teams[0].Points, ShouldEqual, 0)
	})
}
