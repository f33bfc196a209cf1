// Package model contains domain models passed between layers.
package model

// EventType classifies a match log line.
type EventType string

// Event types.
const (
	EventGoal    EventType = "GOAL"
	EventChance  EventType = "CHANCE"
	EventFoul    EventType = "FOUL"
	EventNormal  EventType = "NORMAL"
	EventWhistle EventType = "WHISTLE"
	EventHero    EventType = "HERO"
)

// Side tells which team a log line is about.
type Side string

// Sides.
const (
	SideHome    Side = "HOME"
	SideAway    Side = "AWAY"
	SideNeutral Side = "NEUTRAL"
)

// MatchEvent is one line of match commentary.
type MatchEvent struct {
	Minute int       `json:"minute"`
	Text   string    `json:"text"`
	Type   EventType `json:"type"`
	Side   Side      `json:"team"`
}

// RelationshipDelta is a signed change to manager/team/fans relationships.
type RelationshipDelta struct {
	Manager int `json:"manager"`
	Team    int `json:"team"`
	Fans    int `json:"fans"`
}

// MatchResult is handed from a finished match to the progression pipeline.
type MatchResult struct {
	HomeScore       int                `json:"homeScore"`
	AwayScore       int                `json:"awayScore"`
	Opponent        string             `json:"opponent"`
	Goals           int                `json:"goals"`
	Rating          float64            `json:"rating"`
	Expenses        int                `json:"expenses"`
	IsInternational bool               `json:"isInternational"`
	InterviewEffect *RelationshipDelta `json:"interviewEffect,omitempty"`
}

// Won reports a home win.
func (r MatchResult) Won() bool { return r.HomeScore > r.AwayScore }

// Lost reports a home loss.
func (r MatchResult) Lost() bool { return r.HomeScore < r.AwayScore }

// Outcome returns win, draw or loss.
func (r MatchResult) Outcome() string {
	switch {
	case r.Won():
		return "win"
	case r.Lost():
		return "loss"
	default:
		return "draw"
	}
}
