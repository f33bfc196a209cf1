package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/okian/matchday/internal/domain/catalog"
	"github.com/okian/matchday/internal/domain/model"
	"github.com/okian/matchday/internal/domain/progression"
	"github.com/okian/matchday/pkg/logger"
)

// CreateRequest describes a new career. StarterClub, when set, names a
// catalog starter club whose wage and signing bonus are used; with neither
// a club nor a team the first starter club is used.
type CreateRequest struct {
	progression.NewCareer
	StarterClub string `json:"starterClub"`
}

// CreateCareer starts a new live career.
func (s *Service) CreateCareer(ctx context.Context, req CreateRequest) (CareerView, error) {
	if err := s.ready(); err != nil {
		return CareerView{}, err
	}
	cat := s.Catalog()
	nc := req.NewCareer
	switch {
	case req.StarterClub != "":
		club, ok := cat.StarterClub(req.StarterClub)
		if !ok {
			return CareerView{}, fmt.Errorf("%w: unknown starter club %q", progression.ErrInvalidCareer, req.StarterClub)
		}
		nc = progression.FromStarterClub(nc, club)
	case nc.Team == "" && len(cat.StarterClubs) > 0:
		nc = progression.FromStarterClub(nc, cat.StarterClubs[0])
	}

	rng, err := s.newRandom()
	if err != nil {
		return CareerView{}, err
	}
	st, err := progression.CreateCareer(nc, cat, rng)
	if err != nil {
		return CareerView{}, err
	}
	id := uuid.NewString()
	sess := &session{id: id, slot: id, rng: rng, state: st}
	s.addSession(sess)
	s.logger.Info(ctx, "career created",
		logger.Career(id),
		logger.String("team", st.Player.Team),
		logger.Int("league", st.Player.LeagueID),
		logger.Bool("sandbox", st.Player.Sandbox),
	)
	return s.Career(ctx, id)
}

// Career returns the current view of a career.
func (s *Service) Career(ctx context.Context, careerID string) (CareerView, error) {
	return call(ctx, s, careerID, "", "career", false, func(sess *session) (CareerView, error) {
		return s.view(sess), nil
	})
}

// idle rejects hub actions while a match is being played.
func idle(sess *session) error {
	if sess.match != nil {
		return fmt.Errorf("%w: phase %s", ErrMatchInProgress, sess.match.Phase())
	}
	return nil
}

// TrainResult is the outcome of a training session.
type TrainResult struct {
	Gain   int        `json:"gain"`
	Career CareerView `json:"career"`
}

// Train improves one attribute.
func (s *Service) Train(ctx context.Context, careerID, commandID string, attr progression.Attribute) (TrainResult, error) {
	return call(ctx, s, careerID, commandID, "train", true, func(sess *session) (TrainResult, error) {
		if err := idle(sess); err != nil {
			return TrainResult{}, err
		}
		p, gain, err := progression.Train(sess.state.Player, attr, sess.rng)
		if err != nil {
			return TrainResult{}, err
		}
		sess.state.Player = p
		return TrainResult{Gain: gain, Career: s.view(sess)}, nil
	})
}

// Buy purchases a catalog item.
func (s *Service) Buy(ctx context.Context, careerID, commandID, itemID string) (CareerView, error) {
	return s.mutate(ctx, careerID, commandID, "buy", func(sess *session) error {
		p, err := progression.BuyItem(sess.state.Player, s.catalog, itemID)
		if err != nil {
			return err
		}
		sess.state.Player = p
		return nil
	})
}

// UnlockTalent spends a talent point.
func (s *Service) UnlockTalent(ctx context.Context, careerID, commandID, talentID string) (CareerView, error) {
	return s.mutate(ctx, careerID, commandID, "talent", func(sess *session) error {
		p, err := progression.UnlockTalent(sess.state.Player, talentID)
		if err != nil {
			return err
		}
		sess.state.Player = p
		return nil
	})
}

// Bank actions.
const (
	BankDonate = "donate"
	BankGrant  = "grant"
)

// Bank runs a bank action.
func (s *Service) Bank(ctx context.Context, careerID, commandID, action string) (CareerView, error) {
	return s.mutate(ctx, careerID, commandID, "bank", func(sess *session) error {
		var (
			p   model.Player
			err error
		)
		switch action {
		case BankDonate:
			p, err = progression.Donate(sess.state.Player)
		case BankGrant:
			p, err = progression.Grant(sess.state.Player)
		default:
			return fmt.Errorf("%w: %q", ErrUnknownBankAction, action)
		}
		if err != nil {
			return err
		}
		sess.state.Player = p
		return nil
	})
}

// Offers asks the agent for fresh transfer offers, replacing any previous ones.
func (s *Service) Offers(ctx context.Context, careerID, commandID string) ([]progression.Offer, error) {
	return call(ctx, s, careerID, commandID, "offers", false, func(sess *session) ([]progression.Offer, error) {
		if err := idle(sess); err != nil {
			return nil, err
		}
		sess.offers = progression.Offers(sess.state.Player, s.catalog, sess.rng)
		return append([]progression.Offer(nil), sess.offers...), nil
	})
}

// NegotiationResult reports a wage negotiation.
type NegotiationResult struct {
	Accepted bool                `json:"accepted"`
	Offer    *progression.Offer  `json:"offer,omitempty"`
	Offers   []progression.Offer `json:"offers"`
}

// Negotiate asks for a raise on offer i. A refused negotiation withdraws
// the offer.
func (s *Service) Negotiate(ctx context.Context, careerID, commandID string, i int, raise progression.Raise) (NegotiationResult, error) {
	return call(ctx, s, careerID, commandID, "negotiate", false, func(sess *session) (NegotiationResult, error) {
		if i < 0 || i >= len(sess.offers) {
			return NegotiationResult{}, fmt.Errorf("%w: %d", ErrUnknownOffer, i)
		}
		o, ok, err := progression.Negotiate(sess.state.Player, sess.offers[i], raise, sess.rng)
		if err != nil {
			return NegotiationResult{}, err
		}
		res := NegotiationResult{Accepted: ok}
		if ok {
			sess.offers[i] = o
			res.Offer = &o
		} else {
			sess.offers = append(sess.offers[:i:i], sess.offers[i+1:]...)
		}
		res.Offers = append([]progression.Offer(nil), sess.offers...)
		return res, nil
	})
}

// TransferRequest accepts agent offer Offer, or, for sandbox careers only,
// moves directly to Team on Wage.
type TransferRequest struct {
	Offer *int   `json:"offer,omitempty"`
	Team  string `json:"team,omitempty"`
	Wage  int    `json:"wage,omitempty"`
}

// Transfer signs for a new club and reseeds the divisions.
func (s *Service) Transfer(ctx context.Context, careerID, commandID string, req TransferRequest) (CareerView, error) {
	return s.mutate(ctx, careerID, commandID, "transfer", func(sess *session) error {
		team, wage := req.Team, req.Wage
		if req.Offer != nil {
			i := *req.Offer
			if i < 0 || i >= len(sess.offers) {
				return fmt.Errorf("%w: %d", ErrUnknownOffer, i)
			}
			team, wage = sess.offers[i].Team, sess.offers[i].Wage
		} else if !sess.state.Player.Sandbox {
			return fmt.Errorf("%w: transfers without an offer", progression.ErrNotSandbox)
		}
		st, err := progression.Transfer(sess.state, s.catalog, team, wage)
		if err != nil {
			return err
		}
		sess.state = st
		sess.offers = nil
		s.logger.Info(ctx, "transfer completed",
			logger.Career(sess.id),
			logger.String("team", team),
			logger.Int("wage", wage),
			logger.Int("league", st.Player.LeagueID),
		)
		return nil
	})
}

// ResolveNarrative answers the pending narrative decision.
func (s *Service) ResolveNarrative(ctx context.Context, careerID, commandID string, choice int) (CareerView, error) {
	return s.mutate(ctx, careerID, commandID, "narrative", func(sess *session) error {
		if sess.event == nil {
			return ErrNoPendingEvent
		}
		p, intl, err := progression.ResolveNarrativeChoice(sess.state.Player, *sess.event, choice)
		if err != nil {
			return err
		}
		sess.state.Player = p
		sess.event = nil
		if intl {
			sess.callUp = true
		}
		return nil
	})
}

// StandingsView is one ranked division.
type StandingsView struct {
	ID    int                  `json:"id"`
	Name  string               `json:"name"`
	Tier  int                  `json:"tier"`
	Teams []model.TeamStanding `json:"teams"`
}

// Standings returns division id ranked by points, then goal difference, then
// table order.
func (s *Service) Standings(ctx context.Context, careerID string, id int) (StandingsView, error) {
	return call(ctx, s, careerID, "", "standings", false, func(sess *session) (StandingsView, error) {
		l, ok := sess.state.Divisions.Division(id)
		if !ok {
			return StandingsView{}, fmt.Errorf("%w: %d", ErrUnknownDivision, id)
		}
		return StandingsView{
			ID:    l.ID,
			Name:  l.Name,
			Tier:  l.Tier,
			Teams: sess.state.Divisions.RankedStandings(id),
		}, nil
	})
}

// Items returns the shop catalog.
func (s *Service) Items() []catalog.Item {
	return append([]catalog.Item(nil), s.Catalog().Items...)
}

// mutate runs a hub action that is refused during a match and answers with
// the updated career.
func (s *Service) mutate(ctx context.Context, careerID, commandID, kind string, fn func(*session) error) (CareerView, error) {
	return call(ctx, s, careerID, commandID, kind, true, func(sess *session) (CareerView, error) {
		if err := idle(sess); err != nil {
			return CareerView{}, err
		}
		if err := fn(sess); err != nil {
			return CareerView{}, err
		}
		return s.view(sess), nil
	})
}
