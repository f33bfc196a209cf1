package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	service "github.com/okian/matchday/internal/app"
	"github.com/okian/matchday/internal/domain/progression"
)

func (s *Server) handleCreateCareer(w http.ResponseWriter, r *http.Request) {
	var req service.CreateRequest
	if err := decode(r, &req); err != nil {
		s.reply(w, r, nil, err)
		return
	}
	c, err := s.deps.CreateCareer(r.Context(), req)
	if err != nil {
		s.reply(w, r, nil, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleCareer(w http.ResponseWriter, r *http.Request) {
	c, err := s.deps.Career(r.Context(), careerID(r))
	s.reply(w, r, c, err)
}

type trainRequest struct {
	Attribute progression.Attribute `json:"attribute"`
}

func (s *Server) handleTrain(w http.ResponseWriter, r *http.Request) {
	var req trainRequest
	if err := decode(r, &req); err != nil {
		s.reply(w, r, nil, err)
		return
	}
	res, err := s.deps.Train(r.Context(), careerID(r), commandID(r), req.Attribute)
	s.reply(w, r, res, err)
}

type buyRequest struct {
	Item string `json:"item"`
}

func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	var req buyRequest
	if err := decode(r, &req); err != nil {
		s.reply(w, r, nil, err)
		return
	}
	c, err := s.deps.Buy(r.Context(), careerID(r), commandID(r), req.Item)
	s.reply(w, r, c, err)
}

type talentRequest struct {
	Talent string `json:"talent"`
}

func (s *Server) handleTalent(w http.ResponseWriter, r *http.Request) {
	var req talentRequest
	if err := decode(r, &req); err != nil {
		s.reply(w, r, nil, err)
		return
	}
	c, err := s.deps.UnlockTalent(r.Context(), careerID(r), commandID(r), req.Talent)
	s.reply(w, r, c, err)
}

type bankRequest struct {
	Action string `json:"action"`
}

func (s *Server) handleBank(w http.ResponseWriter, r *http.Request) {
	var req bankRequest
	if err := decode(r, &req); err != nil {
		s.reply(w, r, nil, err)
		return
	}
	c, err := s.deps.Bank(r.Context(), careerID(r), commandID(r), req.Action)
	s.reply(w, r, c, err)
}

func (s *Server) handleOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := s.deps.Offers(r.Context(), careerID(r), commandID(r))
	s.reply(w, r, offers, err)
}

type negotiateRequest struct {
	Offer int               `json:"offer"`
	Raise progression.Raise `json:"raise"`
}

func (s *Server) handleNegotiate(w http.ResponseWriter, r *http.Request) {
	var req negotiateRequest
	if err := decode(r, &req); err != nil {
		s.reply(w, r, nil, err)
		return
	}
	res, err := s.deps.Negotiate(r.Context(), careerID(r), commandID(r), req.Offer, req.Raise)
	s.reply(w, r, res, err)
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var req service.TransferRequest
	if err := decode(r, &req); err != nil {
		s.reply(w, r, nil, err)
		return
	}
	c, err := s.deps.Transfer(r.Context(), careerID(r), commandID(r), req)
	s.reply(w, r, c, err)
}

type choiceRequest struct {
	Choice int `json:"choice"`
}

func (s *Server) handleNarrative(w http.ResponseWriter, r *http.Request) {
	var req choiceRequest
	if err := decode(r, &req); err != nil {
		s.reply(w, r, nil, err)
		return
	}
	c, err := s.deps.ResolveNarrative(r.Context(), careerID(r), commandID(r), req.Choice)
	s.reply(w, r, c, err)
}

func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	division, err := strconv.Atoi(mux.Vars(r)["division"])
	if err != nil {
		s.reply(w, r, nil, fmt.Errorf("%w: division", ErrBadRequest))
		return
	}
	st, err := s.deps.Standings(r.Context(), careerID(r), division)
	s.reply(w, r, st, err)
}

const maxHistory = 100

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", 20)
	if err != nil {
		s.reply(w, r, nil, err)
		return
	}
	if limit < 1 || limit > maxHistory {
		s.reply(w, r, nil, fmt.Errorf("%w: limit must be 1..%d", ErrBadRequest, maxHistory))
		return
	}
	h, err := s.deps.History(r.Context(), careerID(r), limit)
	s.reply(w, r, h, err)
}

func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	s.reply(w, r, s.deps.Items(), nil)
}
