package service

import (
	"sync/atomic"
	"time"

	"github.com/okian/matchday/internal/domain/catalog"
	"github.com/okian/matchday/internal/domain/match"
	"github.com/okian/matchday/internal/domain/model"
	"github.com/okian/matchday/internal/domain/progression"
	"github.com/okian/matchday/internal/domain/random"
)

// session is one loaded career. Every field except dirty is owned by the
// career's worker and only touched from inside a command.
type session struct {
	id   string
	slot string
	rng  random.Source

	state    progression.State
	match    *match.Match
	last     *progression.Outcome
	event    *catalog.NarrativeEvent
	offers   []progression.Offer
	callUp   bool
	driving  bool
	saveWait *time.Timer

	// unapplied holds an answered match whose result failed to apply.
	unapplied *model.MatchResult

	dirty atomic.Bool
}

// CareerView is the read model of a career returned to clients.
type CareerView struct {
	ID          string                  `json:"id"`
	Slot        string                  `json:"slot"`
	Player      model.Player            `json:"player"`
	Week        int                     `json:"week"`
	LeagueName  string                  `json:"leagueName"`
	Position    int                     `json:"tablePosition"`
	Overall     int                     `json:"overall"`
	MarketValue int64                   `json:"marketValue"`
	Event       *catalog.NarrativeEvent `json:"pendingEvent,omitempty"`
	Offers      []progression.Offer     `json:"offers,omitempty"`
	CallUp      bool                    `json:"callUpAccepted"`
	MatchPhase  match.Phase             `json:"matchPhase,omitempty"`
	LastOutcome *progression.Outcome    `json:"lastOutcome,omitempty"`
}

func (s *Service) view(sess *session) CareerView {
	p := sess.state.Player
	v := CareerView{
		ID:          sess.id,
		Slot:        sess.slot,
		Player:      p.Clone(),
		Week:        sess.state.Week,
		LeagueName:  s.catalog.LeagueName(p.LeagueID),
		Position:    sess.state.Divisions.Position(p.LeagueID, p.Team),
		Overall:     p.OverallRating(),
		MarketValue: p.MarketValue(),
		Event:       sess.event,
		Offers:      append([]progression.Offer(nil), sess.offers...),
		CallUp:      sess.callUp,
		LastOutcome: sess.last,
	}
	if sess.match != nil {
		v.MatchPhase = sess.match.Phase()
	}
	return v
}

// MatchUpdate is pushed to live subscribers of a career.
type MatchUpdate struct {
	CareerID  string             `json:"careerId"`
	Kind      string             `json:"kind"`
	Phase     match.Phase        `json:"phase"`
	Minute    int                `json:"minute"`
	HomeScore int                `json:"homeScore"`
	AwayScore int                `json:"awayScore"`
	Events    []model.MatchEvent `json:"events,omitempty"`
}

// Publisher receives live match updates.
type Publisher interface {
	Publish(careerID string, update MatchUpdate)
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, MatchUpdate) {}

func (s *Service) publish(sess *session, kind string, events []model.MatchEvent) {
	if sess.match == nil {
		return
	}
	snap := sess.match.Snapshot()
	s.publisher.Publish(sess.id, MatchUpdate{
		CareerID:  sess.id,
		Kind:      kind,
		Phase:     snap.Phase,
		Minute:    snap.State.Minute,
		HomeScore: snap.State.HomeScore,
		AwayScore: snap.State.AwayScore,
		Events:    events,
	})
}
