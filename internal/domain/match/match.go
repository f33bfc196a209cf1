// Package match simulates a single match minute by minute. A Match is driven
// through an explicit state machine and is not safe for concurrent use; the
// owner serializes every call.
package match

import (
	"fmt"

	"github.com/okian/matchday/internal/domain/attributes"
	"github.com/okian/matchday/internal/domain/league"
	"github.com/okian/matchday/internal/domain/model"
	"github.com/okian/matchday/internal/domain/random"
	"github.com/okian/matchday/internal/domain/talent"
)

// Match rules.
const (
	Duration        = 90
	MinEnergy       = 10
	HeroMinEnergy   = 5
	eventThreshold  = 15.0
	fillerEvery     = 10
	playerGoalShare = 0.3
	baseGoalProb    = 0.15

	minPossession = 20.0
	maxPossession = 80.0
	minMomentum   = -50.0
	maxMomentum   = 50.0
	minRating     = 1.0
	maxRating     = 10.0
	startRating   = 6.0
	momentumDecay = 0.9
)

// Stance is the tactical setting.
type Stance string

// Stances.
const (
	Balanced   Stance = "BALANCED"
	Aggressive Stance = "AGGRESSIVE"
	Defensive  Stance = "DEFENSIVE"
)

// modifiers returns the offense and defense adjustments of s.
func (s Stance) modifiers() (offense, defense float64) {
	switch s {
	case Aggressive:
		return 20, -20
	case Defensive:
		return -15, 20
	default:
		return 0, 0
	}
}

// ParseStance validates a stance name.
func ParseStance(s string) (Stance, error) {
	switch st := Stance(s); st {
	case Balanced, Aggressive, Defensive:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStance, s)
}

// Speed is the presentation cadence of the live clock. It never changes the
// simulated outcome.
type Speed int

// Speeds.
const (
	Paused Speed = 0
	Normal Speed = 1
	Fast   Speed = 2
)

// ParseSpeed validates a speed value.
func ParseSpeed(v int) (Speed, error) {
	switch s := Speed(v); s {
	case Paused, Normal, Fast:
		return s, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrInvalidSpeed, v)
}

// Opponent is the side the player's team faces.
type Opponent struct {
	Name     string `json:"name"`
	Strength int    `json:"strength"`
}

// State is the evolving match state.
type State struct {
	Minute        int                `json:"minute"`
	HomeScore     int                `json:"homeScore"`
	AwayScore     int                `json:"awayScore"`
	Possession    float64            `json:"possession"`
	Momentum      float64            `json:"momentum"`
	Rating        float64            `json:"rating"`
	Goals         int                `json:"goalsScored"`
	Shots         int                `json:"shots"`
	OpponentShots int                `json:"opponentShots"`
	Expenses      int                `json:"expenses"`
	Log           []model.MatchEvent `json:"logs"`
}

// Snapshot is a read-only copy of a match for callers outside the owner.
type Snapshot struct {
	Phase         Phase    `json:"phase"`
	Stance        Stance   `json:"stance"`
	Speed         Speed    `json:"speed"`
	International bool     `json:"isInternational"`
	Home          string   `json:"home"`
	Opponent      Opponent `json:"opponent"`
	HeroUsed      bool     `json:"heroUsed"`
	Question      string   `json:"question,omitempty"`
	State         State    `json:"state"`
}

// Setup describes the match to create.
type Setup struct {
	Player        model.Player
	Divisions     league.Divisions
	International bool
	Nations       []string
	Random        random.Source
}

// Match is one in-flight simulation.
type Match struct {
	player        model.Player
	mods          talent.Modifiers
	rng           random.Source
	international bool

	phase      Phase
	stance     Stance
	speed      Speed
	opponent   Opponent
	heroMinute int
	state      State
}

// New picks an opponent and prepares a match in PRE_MATCH. It fails with
// ErrTooTired when the player cannot start.
func New(s Setup) (*Match, error) {
	if s.Player.Energy < MinEnergy {
		return nil, fmt.Errorf("%w: energy %d below %d", ErrTooTired, s.Player.Energy, MinEnergy)
	}
	rng := s.Random
	if rng == nil {
		seed, err := random.NewSeed()
		if err != nil {
			return nil, err
		}
		rng = random.NewSeeded(seed)
	}
	m := &Match{
		player:        s.Player.Clone(),
		mods:          talent.For(s.Player),
		rng:           rng,
		international: s.International,
		phase:         PreMatch,
		stance:        Balanced,
		speed:         Normal,
		heroMinute:    -1,
		state: State{
			Possession: 50,
			Rating:     startRating,
			Log:        []model.MatchEvent{{Minute: 0, Text: kickoffLine, Type: model.EventWhistle, Side: model.SideNeutral}},
		},
	}
	m.opponent = pickOpponent(s, rng)
	return m, nil
}

func pickOpponent(s Setup, rng random.Source) Opponent {
	if s.International {
		return Opponent{
			Name:     random.Pick(rng, s.Nations),
			Strength: 75 + random.Intn(rng, 20),
		}
	}
	div, ok := s.Divisions.Division(s.Player.LeagueID)
	if !ok {
		return Opponent{Name: "Opponent FC", Strength: 50}
	}
	var rivals []string
	for _, t := range div.Teams {
		if t.Name != s.Player.Team {
			rivals = append(rivals, t.Name)
		}
	}
	name := random.Pick(rng, rivals)
	if name == "" {
		name = "Unknown FC"
	}
	tierBase := (3 - div.Tier) * 20
	return Opponent{Name: name, Strength: 30 + tierBase + random.Intn(rng, 40)}
}

// Phase returns the current phase.
func (m *Match) Phase() Phase { return m.phase }

// Opponent returns the opponent.
func (m *Match) Opponent() Opponent { return m.opponent }

// Speed returns the clock speed.
func (m *Match) Speed() Speed { return m.speed }

// International reports whether this is a national-team match.
func (m *Match) International() bool { return m.international }

// Minute returns the current minute.
func (m *Match) Minute() int { return m.state.Minute }

func (m *Match) apply(a Action) error {
	to, err := next(m.phase, a)
	if err != nil {
		return err
	}
	m.phase = to
	return nil
}

// Kickoff starts the simulation.
func (m *Match) Kickoff() error {
	return m.apply(ActKickoff)
}

// SetStance changes the tactical stance.
func (m *Match) SetStance(s Stance) error {
	if _, err := ParseStance(string(s)); err != nil {
		return err
	}
	if err := m.apply(ActStance); err != nil {
		return err
	}
	m.stance = s
	return nil
}

// SetSpeed changes the clock cadence.
func (m *Match) SetSpeed(s Speed) error {
	if _, err := ParseSpeed(int(s)); err != nil {
		return err
	}
	if err := m.apply(ActSpeed); err != nil {
		return err
	}
	m.speed = s
	return nil
}

func (m *Match) logf(minute int, typ model.EventType, side model.Side, text string) model.MatchEvent {
	ev := model.MatchEvent{Minute: minute, Text: text, Type: typ, Side: side}
	m.state.Log = append(m.state.Log, ev)
	return ev
}

// AdvanceMinute simulates one minute and returns the log lines it produced.
// The match moves to FULL_TIME after minute 90.
func (m *Match) AdvanceMinute() ([]model.MatchEvent, error) {
	if err := m.apply(ActTick); err != nil {
		return nil, err
	}
	prev := m.state
	minute := prev.Minute + 1
	offense, defense := m.stance.modifiers()
	p := m.player

	contribution := float64(p.Attacking+p.Technique+p.Fitness+m.mods.TeamPowerBonus) / 6
	teamPower := 40 + contribution + offense + prev.Momentum/2
	oppPower := float64(m.opponent.Strength) + defense

	bias := (teamPower-oppPower)/5 + m.mods.PossessionBonus
	possession := attributes.Clamp(prev.Possession+bias+(m.rng.Float64()*4-2), minPossession, maxPossession)
	momentum := prev.Momentum * momentumDecay
	rating := prev.Rating

	var events []model.MatchEvent
	if m.rng.Float64()*100 < eventThreshold {
		if m.rng.Float64()*100 < possession {
			m.state.Shots++
			goalProb := baseGoalProb + offense/200 + momentum/200
			if m.rng.Float64() < goalProb {
				m.state.HomeScore++
				momentum = 30
				if m.rng.Float64() < playerGoalShare {
					rating += 1.0
					m.state.Goals++
					events = append(events, m.logf(minute, model.EventGoal, model.SideHome, tapInLine(p.Name)))
				} else {
					events = append(events, m.logf(minute, model.EventGoal, model.SideHome, homeGoalLine))
				}
			} else {
				momentum += 5
				events = append(events, m.logf(minute, model.EventChance, model.SideHome, woodworkLine))
			}
		} else {
			m.state.OpponentShots++
			goalProb := baseGoalProb - defense/200
			if m.rng.Float64() < goalProb {
				m.state.AwayScore++
				momentum = -30
				rating -= 0.1
				events = append(events, m.logf(minute, model.EventGoal, model.SideAway, concededLine(m.opponent.Name)))
			} else {
				momentum -= 5
				rating += 0.1
				events = append(events, m.logf(minute, model.EventChance, model.SideAway, saveLine))
			}
		}
	} else if minute%fillerEvery == 0 && m.rng.Float64() > 0.5 {
		line := random.Pick(m.rng, fillerLines)
		events = append(events, m.logf(minute, model.EventNormal, model.SideNeutral, line))
	}

	m.state.Minute = minute
	m.state.Possession = possession
	m.state.Momentum = attributes.Clamp(momentum, minMomentum, maxMomentum)
	m.state.Rating = attributes.Clamp(rating, minRating, maxRating)

	if minute >= Duration {
		if err := m.apply(ActFinalWhistle); err != nil {
			return events, err
		}
		m.state.Expenses = Expenses(p)
	}
	return events, nil
}

// RunToFullTime advances until the final whistle and returns every line
// produced on the way.
func (m *Match) RunToFullTime() ([]model.MatchEvent, error) {
	var all []model.MatchEvent
	for m.phase == Simulating {
		evs, err := m.AdvanceMinute()
		all = append(all, evs...)
		if err != nil {
			return all, err
		}
	}
	if m.phase != FullTime {
		return all, fmt.Errorf("%w: run to full time during %s", ErrInvalidPhase, m.phase)
	}
	return all, nil
}

// Expenses is the living cost charged at full time.
func Expenses(p model.Player) int {
	return 50 + int(p.Clout/1000)*25 + len(p.Inventory)*10
}

// HeroOutcome is how a hero moment played out.
type HeroOutcome string

// Hero outcomes.
const (
	HeroGoal     HeroOutcome = "goal"
	HeroNearMiss HeroOutcome = "near_miss"
	HeroOverBar  HeroOutcome = "over_bar"
	HeroTurnover HeroOutcome = "turnover"
)

// Hero plays the player-initiated scoring attempt for the current minute.
func (m *Match) Hero() (HeroOutcome, model.MatchEvent, error) {
	if !Allowed(m.phase, ActHero) {
		_, err := next(m.phase, ActHero)
		return "", model.MatchEvent{}, err
	}
	p := m.player
	if p.Energy < HeroMinEnergy {
		return "", model.MatchEvent{}, fmt.Errorf("%w: energy %d below %d", ErrTooTired, p.Energy, HeroMinEnergy)
	}
	if m.heroMinute == m.state.Minute {
		return "", model.MatchEvent{}, fmt.Errorf("%w: minute %d", ErrHeroUsed, m.state.Minute)
	}
	if err := m.apply(ActHero); err != nil {
		return "", model.MatchEvent{}, err
	}
	m.heroMinute = m.state.Minute

	st := &m.state
	success := float64(p.Attacking+p.Technique)/250 + st.Momentum/250 + m.mods.HeroSuccessBonus

	var (
		outcome HeroOutcome
		ev      model.MatchEvent
	)
	if m.rng.Float64() < success {
		goalRoll := m.rng.Float64()
		switch {
		case goalRoll < 0.4+m.mods.HeroGoalBonus(st.Minute):
			st.HomeScore++
			st.Goals++
			st.Rating = min(maxRating, st.Rating+1.5)
			st.Momentum = 50
			st.Shots++
			outcome = HeroGoal
			ev = m.logf(st.Minute, model.EventGoal, model.SideHome, heroGoalLine(p.Name))
		case goalRoll < 0.8:
			st.Rating = min(maxRating, st.Rating+0.2)
			st.Momentum += 10
			st.Shots++
			outcome = HeroNearMiss
			ev = m.logf(st.Minute, model.EventChance, model.SideHome, heroSavedLine(p.Name))
		default:
			st.Rating = max(minRating, st.Rating-0.1)
			st.Momentum -= 5
			st.Shots++
			outcome = HeroOverBar
			ev = m.logf(st.Minute, model.EventNormal, model.SideHome, heroOverLine(p.Name))
		}
	} else {
		st.Rating = max(minRating, st.Rating-0.2)
		st.Momentum -= 10
		outcome = HeroTurnover
		ev = m.logf(st.Minute, model.EventNormal, model.SideAway, heroTurnoverLine(p.Name))
	}
	st.Momentum = attributes.Clamp(st.Momentum, minMomentum, maxMomentum)
	return outcome, ev, nil
}

// Snapshot returns a copy of the match for readers.
func (m *Match) Snapshot() Snapshot {
	st := m.state
	st.Log = append([]model.MatchEvent(nil), m.state.Log...)
	home := m.player.Team
	if m.international {
		home = m.player.Nationality
	}
	snap := Snapshot{
		Phase:         m.phase,
		Stance:        m.stance,
		Speed:         m.speed,
		International: m.international,
		Home:          home,
		Opponent:      m.opponent,
		HeroUsed:      m.heroMinute == m.state.Minute,
		State:         st,
	}
	if m.phase == FullTime || m.phase == Interview {
		snap.Question = m.Question()
	}
	return snap
}
