package autoplay

import "time"

// API paths.
const (
	healthPath  = "/healthz"
	apiPrefix   = "/api/v1"
	careersPath = apiPrefix + "/careers"
	loadPath    = careersPath + "/load"
)

// Error codes the bot reacts to.
const (
	codeInsufficientCash = "insufficient_cash"
	codeUnknownDivision  = "unknown_division"
	codeBusy             = "busy"
)

// Career tuning.
const (
	energyDrink      = "energy_drink"
	restEnergy       = 45
	trainEnergy      = 70
	maxPrepareSteps  = 8
	maxDivisions     = 8
	interviewAnswers = 3
)

// Retry configuration.
const (
	maxRetries   = 4
	retryBackoff = 50 * time.Millisecond
)

// Runner configuration constants.
const (
	WorkerChannelMultiplier = 2
	PercentageMultiplier    = 100
)
