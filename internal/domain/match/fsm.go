package match

import "fmt"

// Phase is a state of the match lifecycle.
type Phase string

// Phases.
const (
	PreMatch   Phase = "PRE_MATCH"
	Simulating Phase = "SIMULATING"
	FullTime   Phase = "FULL_TIME"
	Interview  Phase = "INTERVIEW"
	Complete   Phase = "COMPLETE"
)

// Action is an input to the match state machine.
type Action string

// Actions.
const (
	ActKickoff      Action = "kickoff"
	ActTick         Action = "tick"
	ActHero         Action = "hero"
	ActStance       Action = "stance"
	ActSpeed        Action = "speed"
	ActFinalWhistle Action = "final_whistle"
	ActInterview    Action = "interview"
	ActAnswer       Action = "answer"
)

// transitions lists, per phase, the accepted actions and the phase they lead to.
var transitions = map[Phase]map[Action]Phase{ //nolint:gochecknoglobals // static table
	PreMatch: {
		ActKickoff: Simulating,
		ActStance:  PreMatch,
		ActSpeed:   PreMatch,
	},
	Simulating: {
		ActTick:         Simulating,
		ActHero:         Simulating,
		ActStance:       Simulating,
		ActSpeed:        Simulating,
		ActFinalWhistle: FullTime,
	},
	FullTime: {
		ActInterview: Interview,
	},
	Interview: {
		ActAnswer: Complete,
	},
}

// Allowed reports whether a is accepted in phase p.
func Allowed(p Phase, a Action) bool {
	_, ok := transitions[p][a]
	return ok
}

func next(p Phase, a Action) (Phase, error) {
	to, ok := transitions[p][a]
	if !ok {
		return p, fmt.Errorf("%w: %s during %s", ErrInvalidPhase, a, p)
	}
	return to, nil
}
