package match

import (
	"fmt"

	"github.com/okian/matchday/internal/domain/model"
)

// InterviewOption is one post-match answer and its relationship effect.
type InterviewOption struct {
	Text   string                  `json:"text"`
	Effect model.RelationshipDelta `json:"effect"`
}

// InterviewOptions returns the fixed answers, in order.
func InterviewOptions() []InterviewOption {
	return []InterviewOption{
		{Text: "I was the best player on the pitch.", Effect: model.RelationshipDelta{Manager: -5, Team: -5, Fans: 15}},
		{Text: "We stuck to the manager's plan.", Effect: model.RelationshipDelta{Manager: 10, Team: 0, Fans: -5}},
		{Text: "It was a complete team effort.", Effect: model.RelationshipDelta{Manager: 0, Team: 10, Fans: 0}},
	}
}

// Question is the reporter's question, chosen by the result.
func (m *Match) Question() string {
	if m.state.HomeScore >= m.state.AwayScore {
		return winQuestion
	}
	return lossQuestion
}

// BeginInterview moves a finished match into the interview.
func (m *Match) BeginInterview() error {
	return m.apply(ActInterview)
}

// Result converts the match into a result without an interview effect.
func (m *Match) Result() model.MatchResult {
	return model.MatchResult{
		HomeScore:       m.state.HomeScore,
		AwayScore:       m.state.AwayScore,
		Opponent:        m.opponent.Name,
		Goals:           m.state.Goals,
		Rating:          m.state.Rating,
		Expenses:        m.state.Expenses,
		IsInternational: m.international,
	}
}

// ResolveInterview applies answer i and completes the match. The returned
// result carries the answer's relationship effect.
func (m *Match) ResolveInterview(i int) (model.MatchResult, error) {
	opts := InterviewOptions()
	if i < 0 || i >= len(opts) {
		return model.MatchResult{}, fmt.Errorf("%w: %d", ErrInvalidChoice, i)
	}
	if err := m.apply(ActAnswer); err != nil {
		return model.MatchResult{}, err
	}
	res := m.Result()
	effect := opts[i].Effect
	res.InterviewEffect = &effect
	return res, nil
}
