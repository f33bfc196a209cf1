// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/okian/matchday/internal/adapters/http/docs"
	"github.com/okian/matchday/internal/adapters/recorder"
	"github.com/okian/matchday/internal/adapters/repository"
	service "github.com/okian/matchday/internal/app"
	"github.com/okian/matchday/internal/domain/catalog"
	"github.com/okian/matchday/internal/domain/match"
	"github.com/okian/matchday/internal/domain/progression"
	"github.com/okian/matchday/pkg/logger"
)

// IdempotencyHeader carries the client's command id. Retrying a request
// with the same id returns the first reply instead of applying it twice.
const IdempotencyHeader = "Idempotency-Key"

// Careers is the career surface of the service.
type Careers interface {
	CreateCareer(ctx context.Context, req service.CreateRequest) (service.CareerView, error)
	Career(ctx context.Context, careerID string) (service.CareerView, error)
	Train(ctx context.Context, careerID, commandID string, attr progression.Attribute) (service.TrainResult, error)
	Buy(ctx context.Context, careerID, commandID, itemID string) (service.CareerView, error)
	UnlockTalent(ctx context.Context, careerID, commandID, talentID string) (service.CareerView, error)
	Bank(ctx context.Context, careerID, commandID, action string) (service.CareerView, error)
	Offers(ctx context.Context, careerID, commandID string) ([]progression.Offer, error)
	Negotiate(ctx context.Context, careerID, commandID string, i int, raise progression.Raise) (service.NegotiationResult, error)
	Transfer(ctx context.Context, careerID, commandID string, req service.TransferRequest) (service.CareerView, error)
	ResolveNarrative(ctx context.Context, careerID, commandID string, choice int) (service.CareerView, error)
	Standings(ctx context.Context, careerID string, division int) (service.StandingsView, error)
	History(ctx context.Context, careerID string, limit int) ([]recorder.MatchRecord, error)
	Items() []catalog.Item
}

// Matches is the match surface of the service.
type Matches interface {
	StartMatch(ctx context.Context, careerID, commandID string, international bool) (service.MatchView, error)
	Match(ctx context.Context, careerID string) (service.MatchView, error)
	Kickoff(ctx context.Context, careerID, commandID string) (service.MatchView, error)
	Tick(ctx context.Context, careerID, commandID string) (service.TickResult, error)
	Simulate(ctx context.Context, careerID, commandID string) (service.TickResult, error)
	Hero(ctx context.Context, careerID, commandID string) (service.HeroResult, error)
	SetStance(ctx context.Context, careerID, commandID string, st match.Stance) (service.MatchView, error)
	SetSpeed(ctx context.Context, careerID, commandID string, sp match.Speed) (service.MatchView, error)
	Interview(ctx context.Context, careerID, commandID string, choice int) (service.FinishResult, error)
}

// Saves is the persistence surface of the service.
type Saves interface {
	Save(ctx context.Context, careerID, slot string) (repository.Slot, error)
	Load(ctx context.Context, slot string) (service.CareerView, error)
	DeleteSave(ctx context.Context, slot string, confirm bool) error
	ListSaves(ctx context.Context) ([]repository.Slot, error)
}

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Careers
	Matches
	Saves
	StatsProvider
}

// LiveFeed upgrades a request into a match update stream for one career.
type LiveFeed interface {
	Serve(w http.ResponseWriter, r *http.Request, careerID string)
}

// Server wires HTTP routes for the business API.
type Server struct {
	deps   Dependencies
	live   LiveFeed
	health *HealthHandler
	stats  *StatsHandler
	logger logger.Logger
}

// NewServer creates a new API server. live may be nil, in which case the
// websocket route is not registered.
func NewServer(deps Dependencies, live LiveFeed) *Server {
	return &Server{
		deps:   deps,
		live:   live,
		health: NewHealthHandler(),
		stats:  NewStatsHandler(deps, live),
		logger: logger.Get().Named("api"),
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(RecoveryMiddleware)
	router.Use(MetricsMiddleware)

	router.HandleFunc("/healthz", s.health.HandleHealth).Methods(http.MethodGet)
	router.HandleFunc("/metrics", s.health.HandleMetrics).Methods(http.MethodGet)
	router.HandleFunc("/stats", s.stats.HandleStats).Methods(http.MethodGet)
	docs.Register(router)

	api := router.PathPrefix("/api/v1").Subrouter()

	// Careers
	api.HandleFunc("/careers", s.handleCreateCareer).Methods(http.MethodPost)
	api.HandleFunc("/careers/load", s.handleLoad).Methods(http.MethodPost)
	api.HandleFunc("/careers/{id}", s.handleCareer).Methods(http.MethodGet)
	api.HandleFunc("/careers/{id}/train", s.handleTrain).Methods(http.MethodPost)
	api.HandleFunc("/careers/{id}/buy", s.handleBuy).Methods(http.MethodPost)
	api.HandleFunc("/careers/{id}/talents", s.handleTalent).Methods(http.MethodPost)
	api.HandleFunc("/careers/{id}/bank", s.handleBank).Methods(http.MethodPost)
	api.HandleFunc("/careers/{id}/offers", s.handleOffers).Methods(http.MethodGet)
	api.HandleFunc("/careers/{id}/negotiate", s.handleNegotiate).Methods(http.MethodPost)
	api.HandleFunc("/careers/{id}/transfer", s.handleTransfer).Methods(http.MethodPost)
	api.HandleFunc("/careers/{id}/narrative", s.handleNarrative).Methods(http.MethodPost)
	api.HandleFunc("/careers/{id}/leagues/{division:[0-9]+}", s.handleStandings).Methods(http.MethodGet)
	api.HandleFunc("/careers/{id}/history", s.handleHistory).Methods(http.MethodGet)
	api.HandleFunc("/careers/{id}/save", s.handleSave).Methods(http.MethodPost)

	// Match
	api.HandleFunc("/careers/{id}/match", s.handleStartMatch).Methods(http.MethodPost)
	api.HandleFunc("/careers/{id}/match", s.handleMatch).Methods(http.MethodGet)
	api.HandleFunc("/careers/{id}/match/kickoff", s.handleKickoff).Methods(http.MethodPost)
	api.HandleFunc("/careers/{id}/match/tick", s.handleTick).Methods(http.MethodPost)
	api.HandleFunc("/careers/{id}/match/simulate", s.handleSimulate).Methods(http.MethodPost)
	api.HandleFunc("/careers/{id}/match/hero", s.handleHero).Methods(http.MethodPost)
	api.HandleFunc("/careers/{id}/match/stance", s.handleStance).Methods(http.MethodPut)
	api.HandleFunc("/careers/{id}/match/speed", s.handleSpeed).Methods(http.MethodPut)
	api.HandleFunc("/careers/{id}/match/interview", s.handleInterview).Methods(http.MethodPost)

	// Saves and catalog
	api.HandleFunc("/saves", s.handleListSaves).Methods(http.MethodGet)
	api.HandleFunc("/saves/{slot}", s.handleDeleteSave).Methods(http.MethodDelete)
	api.HandleFunc("/items", s.handleItems).Methods(http.MethodGet)

	if s.live != nil {
		router.HandleFunc("/ws/careers/{id}/match", s.handleLive).Methods(http.MethodGet)
	}
	return router
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// reply writes v, or the response err maps to.
func (s *Server) reply(w http.ResponseWriter, r *http.Request, v any, err error) {
	if err != nil {
		status, code := statusFor(err)
		if status >= http.StatusInternalServerError {
			s.logger.Error(r.Context(), "request failed",
				logger.String("path", r.URL.Path),
				logger.String("code", code),
				logger.Error(err),
			)
		}
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// decode reads an optional JSON body into v. An empty body leaves v as is.
func decode(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrBadRequest, err)
}

func careerID(r *http.Request) string {
	return mux.Vars(r)["id"]
}

func commandID(r *http.Request) string {
	return r.Header.Get(IdempotencyHeader)
}

func intParam(r *http.Request, name string, fallback int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrBadRequest, name, v)
	}
	return n, nil
}
