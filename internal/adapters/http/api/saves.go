package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

type slotRequest struct {
	Slot string `json:"slot"`
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	var req slotRequest
	if err := decode(r, &req); err != nil {
		s.reply(w, r, nil, err)
		return
	}
	meta, err := s.deps.Save(r.Context(), careerID(r), req.Slot)
	s.reply(w, r, meta, err)
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req slotRequest
	if err := decode(r, &req); err != nil {
		s.reply(w, r, nil, err)
		return
	}
	c, err := s.deps.Load(r.Context(), req.Slot)
	s.reply(w, r, c, err)
}

func (s *Server) handleListSaves(w http.ResponseWriter, r *http.Request) {
	slots, err := s.deps.ListSaves(r.Context())
	s.reply(w, r, slots, err)
}

func (s *Server) handleDeleteSave(w http.ResponseWriter, r *http.Request) {
	confirm, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	if err := s.deps.DeleteSave(r.Context(), mux.Vars(r)["slot"], confirm); err != nil {
		s.reply(w, r, nil, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
