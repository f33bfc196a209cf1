package api

import (
	"net/http"

	"github.com/okian/matchday/internal/domain/match"
)

type startMatchRequest struct {
	International bool `json:"international"`
}

func (s *Server) handleStartMatch(w http.ResponseWriter, r *http.Request) {
	var req startMatchRequest
	if err := decode(r, &req); err != nil {
		s.reply(w, r, nil, err)
		return
	}
	m, err := s.deps.StartMatch(r.Context(), careerID(r), commandID(r), req.International)
	if err != nil {
		s.reply(w, r, nil, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	m, err := s.deps.Match(r.Context(), careerID(r))
	s.reply(w, r, m, err)
}

func (s *Server) handleKickoff(w http.ResponseWriter, r *http.Request) {
	m, err := s.deps.Kickoff(r.Context(), careerID(r), commandID(r))
	s.reply(w, r, m, err)
}

func (s *Server) handleTick(w http.ResponseWriter, r *http.Request) {
	res, err := s.deps.Tick(r.Context(), careerID(r), commandID(r))
	s.reply(w, r, res, err)
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	res, err := s.deps.Simulate(r.Context(), careerID(r), commandID(r))
	s.reply(w, r, res, err)
}

func (s *Server) handleHero(w http.ResponseWriter, r *http.Request) {
	res, err := s.deps.Hero(r.Context(), careerID(r), commandID(r))
	s.reply(w, r, res, err)
}

type stanceRequest struct {
	Stance string `json:"stance"`
}

func (s *Server) handleStance(w http.ResponseWriter, r *http.Request) {
	var req stanceRequest
	if err := decode(r, &req); err != nil {
		s.reply(w, r, nil, err)
		return
	}
	st, err := match.ParseStance(req.Stance)
	if err != nil {
		s.reply(w, r, nil, err)
		return
	}
	m, err := s.deps.SetStance(r.Context(), careerID(r), commandID(r), st)
	s.reply(w, r, m, err)
}

type speedRequest struct {
	Speed int `json:"speed"`
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	var req speedRequest
	if err := decode(r, &req); err != nil {
		s.reply(w, r, nil, err)
		return
	}
	sp, err := match.ParseSpeed(req.Speed)
	if err != nil {
		s.reply(w, r, nil, err)
		return
	}
	m, err := s.deps.SetSpeed(r.Context(), careerID(r), commandID(r), sp)
	s.reply(w, r, m, err)
}

func (s *Server) handleInterview(w http.ResponseWriter, r *http.Request) {
	var req choiceRequest
	if err := decode(r, &req); err != nil {
		s.reply(w, r, nil, err)
		return
	}
	res, err := s.deps.Interview(r.Context(), careerID(r), commandID(r), req.Choice)
	s.reply(w, r, res, err)
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	id := careerID(r)
	if _, err := s.deps.Career(r.Context(), id); err != nil {
		s.reply(w, r, nil, err)
		return
	}
	s.live.Serve(w, r, id)
}
