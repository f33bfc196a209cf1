package autoplay

import (
	"context"
	"errors"
	"fmt"

	service "github.com/okian/matchday/internal/app"
	"github.com/okian/matchday/internal/domain/model"
)

// ErrTableViolation marks a league table that breaks the bookkeeping rules.
var ErrTableViolation = errors.New("league table violation")

// verifyTable checks one division table: every row adds up, wins and losses
// balance, goal differences sum to zero, every team has played the same
// number of matches and the rows are ranked by points.
func verifyTable(st service.StandingsView) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s: %s", ErrTableViolation, st.Name, fmt.Sprintf(format, args...)))
	}

	if len(st.Teams) == 0 {
		fail("no teams")
		return errors.Join(errs...)
	}

	var won, lost, gd int
	for i, t := range st.Teams {
		if t.Played != t.Won+t.Drawn+t.Lost {
			fail("%s played %d but W%d D%d L%d", t.Name, t.Played, t.Won, t.Drawn, t.Lost)
		}
		if t.Points != 3*t.Won+t.Drawn {
			fail("%s has %d points for W%d D%d", t.Name, t.Points, t.Won, t.Drawn)
		}
		if t.Played != st.Teams[0].Played {
			fail("%s played %d, %s played %d", t.Name, t.Played, st.Teams[0].Name, st.Teams[0].Played)
		}
		if i > 0 && t.Points > st.Teams[i-1].Points {
			fail("%s ranked below %s with more points", t.Name, st.Teams[i-1].Name)
		}
		won += t.Won
		lost += t.Lost
		gd += t.GoalDifference
	}
	if won != lost {
		fail("%d wins against %d losses", won, lost)
	}
	if gd != 0 {
		fail("goal differences sum to %d", gd)
	}
	return errors.Join(errs...)
}

// verifyCareerTable checks the player's own division against the career.
func verifyCareerTable(st service.StandingsView, c service.CareerView) error {
	row, ok := findTeam(st.Teams, c.Player.Team)
	if !ok {
		return fmt.Errorf("%w: %s missing from %s", ErrTableViolation, c.Player.Team, st.Name)
	}
	if row.Played != c.Player.SeasonMatchCount {
		return fmt.Errorf("%w: %s played %d but the season count is %d",
			ErrTableViolation, row.Name, row.Played, c.Player.SeasonMatchCount)
	}
	for i, t := range st.Teams {
		if t.Name == row.Name && i+1 != c.Position {
			return fmt.Errorf("%w: %s is ranked %d but the career reports %d",
				ErrTableViolation, row.Name, i+1, c.Position)
		}
	}
	return nil
}

func findTeam(teams []model.TeamStanding, name string) (model.TeamStanding, bool) {
	for _, t := range teams {
		if t.Name == name {
			return t, true
		}
	}
	return model.TeamStanding{}, false
}

// verifyStandings fetches every division of a career and checks them all.
// It returns the number of tables verified.
func verifyStandings(ctx context.Context, c *client, career service.CareerView) (int, error) {
	var errs []error
	n := 0
	for id := range maxDivisions {
		var st service.StandingsView
		err := c.get(ctx, fmt.Sprintf("%s/%s/leagues/%d", careersPath, career.ID, id), &st)
		if hasCode(err, codeUnknownDivision) {
			break
		}
		if err != nil {
			return n, err
		}
		n++
		errs = append(errs, verifyTable(st))
		if id == career.Player.LeagueID {
			errs = append(errs, verifyCareerTable(st, career))
		}
	}
	if n == 0 {
		return 0, fmt.Errorf("%w: career %s has no divisions", ErrTableViolation, career.ID)
	}
	return n, errors.Join(errs...)
}
