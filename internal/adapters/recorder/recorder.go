// Package recorder keeps a history of finished matches and seasons per career.
package recorder

import (
	"context"
	"time"
)

// MatchRecord is one finished match.
type MatchRecord struct {
	CareerID      string    `json:"careerId"`
	Week          int       `json:"week"`
	Opponent      string    `json:"opponent"`
	HomeScore     int       `json:"homeScore"`
	AwayScore     int       `json:"awayScore"`
	Goals         int       `json:"goals"`
	Rating        float64   `json:"rating"`
	International bool      `json:"isInternational"`
	PlayedAt      time.Time `json:"playedAt"`
}

// SeasonRecord is one season boundary.
type SeasonRecord struct {
	CareerID       string    `json:"careerId"`
	Team           string    `json:"team"`
	PreviousLeague int       `json:"previousLeague"`
	LeagueID       int       `json:"leagueId"`
	Movement       string    `json:"movement"`
	EndedAt        time.Time `json:"endedAt"`
}

// Recorder persists history. Failures are reported to the caller, which
// treats them as non-fatal.
type Recorder interface {
	RecordMatch(ctx context.Context, r MatchRecord) error
	RecordSeason(ctx context.Context, r SeasonRecord) error
	// Matches returns the latest limit matches of careerID, newest first.
	Matches(ctx context.Context, careerID string, limit int) ([]MatchRecord, error)
	Close() error
}

// Noop discards history.
type Noop struct{}

// RecordMatch implements Recorder.
func (Noop) RecordMatch(context.Context, MatchRecord) error { return nil }

// RecordSeason implements Recorder.
func (Noop) RecordSeason(context.Context, SeasonRecord) error { return nil }

// Matches implements Recorder.
func (Noop) Matches(context.Context, string, int) ([]MatchRecord, error) { return nil, nil }

// Close implements Recorder.
func (Noop) Close() error { return nil }
