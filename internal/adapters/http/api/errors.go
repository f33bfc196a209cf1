package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/matchday/internal/adapters/mq/worker"
	"github.com/okian/matchday/internal/adapters/repository"
	service "github.com/okian/matchday/internal/app"
	"github.com/okian/matchday/internal/domain/match"
	"github.com/okian/matchday/internal/domain/progression"
	"github.com/okian/matchday/internal/domain/talent"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

type errorKind struct {
	err    error
	status int
	code   string
}

// errorKinds maps domain errors to responses. The first match wins.
var errorKinds = []errorKind{ //nolint:gochecknoglobals // lookup table
	{ErrBadRequest, http.StatusBadRequest, "bad_request"},

	{service.ErrCareerNotFound, http.StatusNotFound, "career_not_found"},
	{repository.ErrNotFound, http.StatusNotFound, "save_not_found"},

	{repository.ErrCorruptSave, http.StatusUnprocessableEntity, "corrupt_save"},

	{worker.ErrBusy, http.StatusServiceUnavailable, "busy"},
	{worker.ErrStopped, http.StatusServiceUnavailable, "unavailable"},
	{service.ErrNotStarted, http.StatusServiceUnavailable, "unavailable"},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, "timeout"},

	{progression.ErrInsufficientEnergy, http.StatusConflict, "insufficient_energy"},
	{progression.ErrInsufficientCash, http.StatusConflict, "insufficient_cash"},
	{progression.ErrAlreadyOwned, http.StatusConflict, "already_owned"},
	{progression.ErrNotSandbox, http.StatusConflict, "not_sandbox"},
	{talent.ErrAlreadyUnlocked, http.StatusConflict, "already_unlocked"},
	{talent.ErrNoTalentPoints, http.StatusConflict, "no_talent_points"},
	{match.ErrTooTired, http.StatusConflict, "too_tired"},
	{match.ErrInvalidPhase, http.StatusConflict, "invalid_phase"},
	{match.ErrHeroUsed, http.StatusConflict, "hero_used"},
	{service.ErrNoMatch, http.StatusConflict, "no_match"},
	{service.ErrMatchInProgress, http.StatusConflict, "match_in_progress"},
	{service.ErrPendingEvent, http.StatusConflict, "pending_event"},
	{service.ErrNoPendingEvent, http.StatusConflict, "no_pending_event"},
	{service.ErrNoCallUp, http.StatusConflict, "no_call_up"},
	{service.ErrInFlight, http.StatusConflict, "in_flight"},
	{repository.ErrPristineCareer, http.StatusConflict, "pristine_career"},

	{repository.ErrUnconfirmed, http.StatusBadRequest, "confirmation_required"},
	{repository.ErrInvalidSlot, http.StatusBadRequest, "invalid_slot"},
	{match.ErrInvalidStance, http.StatusBadRequest, "invalid_stance"},
	{match.ErrInvalidSpeed, http.StatusBadRequest, "invalid_speed"},
	{match.ErrInvalidChoice, http.StatusBadRequest, "invalid_choice"},
	{progression.ErrInvalidChoice, http.StatusBadRequest, "invalid_choice"},
	{progression.ErrUnknownAttribute, http.StatusBadRequest, "unknown_attribute"},
	{progression.ErrUnknownItem, http.StatusBadRequest, "unknown_item"},
	{progression.ErrInvalidCareer, http.StatusBadRequest, "invalid_career"},
	{progression.ErrInvalidTransfer, http.StatusBadRequest, "invalid_transfer"},
	{progression.ErrInvalidRaise, http.StatusBadRequest, "invalid_raise"},
	{talent.ErrUnknownTalent, http.StatusBadRequest, "unknown_talent"},
	{service.ErrUnknownOffer, http.StatusBadRequest, "unknown_offer"},
	{service.ErrUnknownDivision, http.StatusBadRequest, "unknown_division"},
	{service.ErrUnknownBankAction, http.StatusBadRequest, "unknown_bank_action"},
}

// statusFor returns the HTTP status and error code for err.
func statusFor(err error) (int, string) {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.status, k.code
		}
	}
	return http.StatusInternalServerError, "internal_error"
}
