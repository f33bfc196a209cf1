package model

import "time"

// DivisionCount is the fixed number of tiers.
const DivisionCount = 3

// DivisionSize is the fixed number of clubs per division.
const DivisionSize = 10

// TeamStanding is one club's record for the current season.
type TeamStanding struct {
	Name           string `json:"name"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	Points         int    `json:"points"`
	GoalDifference int    `json:"gd"`
}

// Reset zeroes the season record, keeping the name.
func (t *TeamStanding) Reset() {
	*t = TeamStanding{Name: t.Name}
}

// League is one division. Teams keep insertion order; rank is computed.
type League struct {
	ID    int            `json:"id"`
	Name  string         `json:"name"`
	Tier  int            `json:"tier"`
	Teams []TeamStanding `json:"teams"`
}

// Find returns the index of the named team or -1.
func (l League) Find(name string) int {
	for i := range l.Teams {
		if l.Teams[i].Name == name {
			return i
		}
	}
	return -1
}

// SaveData is the persisted snapshot of one career.
type SaveData struct {
	Player    Player    `json:"player"`
	Week      int       `json:"week"`
	Leagues   []League  `json:"leagues"`
	LastSaved time.Time `json:"lastSaved"`
}
