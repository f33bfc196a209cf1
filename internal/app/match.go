package service

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/matchday/internal/adapters/recorder"
	"github.com/okian/matchday/internal/domain/match"
	"github.com/okian/matchday/internal/domain/model"
	"github.com/okian/matchday/internal/domain/progression"
	"github.com/okian/matchday/pkg/logger"
	"github.com/okian/matchday/pkg/metrics"
)

// MatchView is the in-flight match with the interview answers once the
// final whistle has gone.
type MatchView struct {
	match.Snapshot
	Options []match.InterviewOption `json:"interviewOptions,omitempty"`
}

func matchView(m *match.Match) MatchView {
	v := MatchView{Snapshot: m.Snapshot()}
	if p := m.Phase(); p == match.FullTime || p == match.Interview {
		v.Options = match.InterviewOptions()
	}
	return v
}

// TickResult is what one or more simulated minutes produced.
type TickResult struct {
	Events []model.MatchEvent `json:"events"`
	Match  MatchView          `json:"match"`
}

// HeroResult is the outcome of a hero moment.
type HeroResult struct {
	Outcome match.HeroOutcome `json:"outcome"`
	Event   model.MatchEvent  `json:"event"`
	Match   MatchView         `json:"match"`
}

// FinishResult is a completed match folded into the career.
type FinishResult struct {
	Result  model.MatchResult   `json:"result"`
	Outcome progression.Outcome `json:"outcome"`
	Career  CareerView          `json:"career"`
}

func (s *Service) inMatch(ctx context.Context, careerID, commandID, kind string, fn func(*session, *match.Match) (any, error)) (any, error) {
	return s.exec(ctx, careerID, commandID, kind, false, func(sess *session) (any, error) {
		if sess.match == nil {
			return nil, ErrNoMatch
		}
		return fn(sess, sess.match)
	})
}

func typed[T any](v any, err error) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil //nolint:forcetypeassert // set by the command
}

// StartMatch sets up the next match. A match is international only after a
// call-up was accepted; international=true without one is refused.
func (s *Service) StartMatch(ctx context.Context, careerID, commandID string, international bool) (MatchView, error) {
	return call(ctx, s, careerID, commandID, "start_match", false, func(sess *session) (MatchView, error) {
		if sess.match != nil {
			return MatchView{}, fmt.Errorf("%w: phase %s", ErrMatchInProgress, sess.match.Phase())
		}
		if sess.event != nil {
			return MatchView{}, fmt.Errorf("%w: %s", ErrPendingEvent, sess.event.Title)
		}
		if international && !sess.callUp {
			return MatchView{}, ErrNoCallUp
		}
		m, err := match.New(match.Setup{
			Player:        sess.state.Player,
			Divisions:     sess.state.Divisions,
			International: sess.callUp,
			Nations:       s.catalog.Nations,
			Random:        sess.rng,
		})
		if err != nil {
			return MatchView{}, err
		}
		sess.match = m
		metrics.UpdateActiveMatches(int(s.activeMatches.Add(1)))
		s.logger.Debug(ctx, "match created",
			logger.Career(sess.id),
			logger.String("opponent", m.Opponent().Name),
			logger.Bool("international", m.International()),
		)
		s.publish(sess, "created", nil)
		return matchView(m), nil
	})
}

// Match returns the in-flight match.
func (s *Service) Match(ctx context.Context, careerID string) (MatchView, error) {
	return typed[MatchView](s.inMatch(ctx, careerID, "", "match", func(_ *session, m *match.Match) (any, error) {
		return matchView(m), nil
	}))
}

// Kickoff starts the match and its clock.
func (s *Service) Kickoff(ctx context.Context, careerID, commandID string) (MatchView, error) {
	return typed[MatchView](s.inMatch(ctx, careerID, commandID, "kickoff", func(sess *session, m *match.Match) (any, error) {
		if err := m.Kickoff(); err != nil {
			return nil, err
		}
		s.publish(sess, "kickoff", nil)
		s.ensureClock(sess)
		return matchView(m), nil
	}))
}

// Tick advances the match by one minute regardless of the clock speed.
func (s *Service) Tick(ctx context.Context, careerID, commandID string) (TickResult, error) {
	return typed[TickResult](s.inMatch(ctx, careerID, commandID, "tick", func(sess *session, m *match.Match) (any, error) {
		events, err := m.AdvanceMinute()
		if err != nil {
			return nil, err
		}
		s.afterMinutes(sess, events)
		return TickResult{Events: events, Match: matchView(m)}, nil
	}))
}

// Simulate plays the rest of the match at once.
func (s *Service) Simulate(ctx context.Context, careerID, commandID string) (TickResult, error) {
	return typed[TickResult](s.inMatch(ctx, careerID, commandID, "simulate", func(sess *session, m *match.Match) (any, error) {
		events, err := m.RunToFullTime()
		if err != nil {
			return nil, err
		}
		s.afterMinutes(sess, events)
		return TickResult{Events: events, Match: matchView(m)}, nil
	}))
}

// Hero attempts a hero moment in the current minute.
func (s *Service) Hero(ctx context.Context, careerID, commandID string) (HeroResult, error) {
	return typed[HeroResult](s.inMatch(ctx, careerID, commandID, "hero", func(sess *session, m *match.Match) (any, error) {
		outcome, ev, err := m.Hero()
		if err != nil {
			return nil, err
		}
		metrics.RecordHeroAction(string(outcome))
		if outcome == match.HeroGoal {
			metrics.RecordGoal(string(model.SideHome))
		}
		s.publish(sess, "hero", []model.MatchEvent{ev})
		return HeroResult{Outcome: outcome, Event: ev, Match: matchView(m)}, nil
	}))
}

// SetStance changes the tactical stance.
func (s *Service) SetStance(ctx context.Context, careerID, commandID string, st match.Stance) (MatchView, error) {
	return typed[MatchView](s.inMatch(ctx, careerID, commandID, "stance", func(_ *session, m *match.Match) (any, error) {
		if err := m.SetStance(st); err != nil {
			return nil, err
		}
		return matchView(m), nil
	}))
}

// SetSpeed changes the clock speed; Paused stops the clock.
func (s *Service) SetSpeed(ctx context.Context, careerID, commandID string, sp match.Speed) (MatchView, error) {
	return typed[MatchView](s.inMatch(ctx, careerID, commandID, "speed", func(sess *session, m *match.Match) (any, error) {
		if err := m.SetSpeed(sp); err != nil {
			return nil, err
		}
		s.ensureClock(sess)
		return matchView(m), nil
	}))
}

// Interview answers the post-match question and folds the result into the
// career.
func (s *Service) Interview(ctx context.Context, careerID, commandID string, choice int) (FinishResult, error) {
	return call(ctx, s, careerID, commandID, "interview", true, func(sess *session) (FinishResult, error) {
		m := sess.match
		if m == nil {
			return FinishResult{}, ErrNoMatch
		}
		var res model.MatchResult
		if m.Phase() == match.Complete && sess.unapplied != nil {
			// A retry reuses the answer already given.
			res = *sess.unapplied
		} else {
			if m.Phase() == match.FullTime {
				if err := m.BeginInterview(); err != nil {
					return FinishResult{}, err
				}
			}
			var err error
			if res, err = m.ResolveInterview(choice); err != nil {
				return FinishResult{}, err
			}
			s.publish(sess, "complete", nil)
		}
		out, err := s.finish(ctx, sess, res)
		if err != nil {
			sess.unapplied = &res
			return FinishResult{}, err
		}
		return FinishResult{Result: res, Outcome: out, Career: s.view(sess)}, nil
	})
}

// finish applies a completed match and records it. The match stays on the
// session until its result has been applied.
func (s *Service) finish(ctx context.Context, sess *session, res model.MatchResult) (progression.Outcome, error) {
	week := sess.state.Week
	out, err := progression.ApplyMatchResult(sess.state, res, sess.rng, s.catalog)
	if err != nil {
		s.logger.Error(ctx, "match result not applied", logger.Career(sess.id), logger.Error(err))
		return progression.Outcome{}, err
	}
	sess.match = nil
	sess.unapplied = nil
	metrics.UpdateActiveMatches(int(s.activeMatches.Add(-1)))
	sess.state = out.State
	sess.last = &out
	if out.Event != nil {
		sess.event = out.Event
	}
	if res.IsInternational {
		sess.callUp = false
	}
	metrics.RecordMatchFinished(res.IsInternational, res.Outcome())

	now := time.Now().UTC()
	s.history(ctx, s.recorder.RecordMatch(ctx, recorder.MatchRecord{
		CareerID:      sess.id,
		Week:          week,
		Opponent:      res.Opponent,
		HomeScore:     res.HomeScore,
		AwayScore:     res.AwayScore,
		Goals:         res.Goals,
		Rating:        res.Rating,
		International: res.IsInternational,
		PlayedAt:      now,
	}))
	if out.Season != nil {
		metrics.RecordSeasonEnd(string(out.Season.Movement))
		s.history(ctx, s.recorder.RecordSeason(ctx, recorder.SeasonRecord{
			CareerID:       sess.id,
			Team:           out.State.Player.Team,
			PreviousLeague: out.Season.PreviousLeague,
			LeagueID:       out.Season.LeagueID,
			Movement:       string(out.Season.Movement),
			EndedAt:        now,
		}))
		s.logger.Info(ctx, "season ended",
			logger.Career(sess.id),
			logger.String("movement", string(out.Season.Movement)),
			logger.Int("league", out.Season.LeagueID),
		)
	}
	return out, nil
}

func (s *Service) history(ctx context.Context, err error) {
	if err != nil {
		metrics.RecordHistoryWrite("error")
		s.logger.Warn(ctx, "history write failed", logger.Error(err))
		return
	}
	metrics.RecordHistoryWrite("ok")
}

func (s *Service) afterMinutes(sess *session, events []model.MatchEvent) {
	for _, ev := range events {
		if ev.Type == model.EventGoal {
			metrics.RecordGoal(string(ev.Side))
		}
	}
	s.publish(sess, "tick", events)
}

func (s *Service) interval(sp match.Speed) time.Duration {
	if sp == match.Fast {
		return s.tickFast
	}
	return s.tickNormal
}

// ensureClock starts the session's clock driver when the match is running
// at a non-zero speed. Must run on the career's worker.
func (s *Service) ensureClock(sess *session) {
	m := sess.match
	if m == nil || m.Phase() != match.Simulating || m.Speed() == match.Paused || sess.driving {
		return
	}
	sess.driving = true
	s.drivers.Add(1)
	go s.drive(sess.id, s.interval(m.Speed()))
}

// drive ticks the career's match through its worker until the match stops
// simulating, the clock is paused or the service stops.
func (s *Service) drive(careerID string, wait time.Duration) {
	defer s.drivers.Done()
	ctx := s.background()
	timer := time.NewTimer(wait)
	defer timer.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-timer.C:
		}
		next, err := call(ctx, s, careerID, "", "clock", false, func(sess *session) (time.Duration, error) {
			return s.clockTick(sess), nil
		})
		switch {
		case err == nil && next == 0:
			return
		case err == nil:
			timer.Reset(next)
		case isBusy(err):
			timer.Reset(wait)
		default:
			if !isStopping(err) {
				s.logger.Warn(ctx, "match clock stopped", logger.Career(careerID), logger.Error(err))
			}
			return
		}
	}
}

// clockTick advances one minute and returns the wait before the next, or 0
// when the driver should exit.
func (s *Service) clockTick(sess *session) time.Duration {
	m := sess.match
	if m == nil || m.Phase() != match.Simulating || m.Speed() == match.Paused {
		sess.driving = false
		return 0
	}
	events, err := m.AdvanceMinute()
	if err != nil {
		sess.driving = false
		return 0
	}
	s.afterMinutes(sess, events)
	if m.Phase() != match.Simulating {
		sess.driving = false
		return 0
	}
	return s.interval(m.Speed())
}
