package match

import "fmt"

const (
	kickoffLine  = "The referee blows the whistle to start the match!"
	homeGoalLine = "GOAL! The home team takes the lead with a stunning strike!"
	woodworkLine = "Close! The home team rattles the woodwork."
	saveLine     = "Great save! The defense holds firm."
	winQuestion  = "Great result today. How do you assess your own performance?"
	lossQuestion = "Disappointing result. What went wrong out there?"
)

var fillerLines = []string{ //nolint:gochecknoglobals // commentary pool
	"Midfield battle tightening up.",
	"The manager is screaming instructions.",
	"Possession is being traded cheaply.",
	"Crowd chanting for a goal.",
	"Tactical foul stops the play.",
}

func tapInLine(player string) string {
	return fmt.Sprintf("GOAL! %s is in the right spot to tap it in!", player)
}

func concededLine(opponent string) string {
	return fmt.Sprintf("GOAL! %s silence the crowd.", opponent)
}

func heroGoalLine(player string) string {
	return fmt.Sprintf("BRILLIANT! %s demands the ball, beats a man, and fires it home!", player)
}

func heroSavedLine(player string) string {
	return fmt.Sprintf("%s creates space and shoots, but the keeper pushes it wide!", player)
}

func heroOverLine(player string) string {
	return fmt.Sprintf("%s gets the ball but blasts it over the bar.", player)
}

func heroTurnoverLine(player string) string {
	return fmt.Sprintf("%s calls for the pass but is easily dispossessed.", player)
}
