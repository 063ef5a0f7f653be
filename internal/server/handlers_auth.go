package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/carsa-legal/cobros/internal/ledger"
)

type loginRequest struct {
	Username string `json:"usuario"`
	Secret   string `json:"contrasena"`
}

type loginResponse struct {
	Token          string `json:"token"`
	AttorneyFilter string `json:"attorney_filter"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	filter, err := ledger.Authenticate(s.store.Credentials(), req.Username, req.Secret)
	if err != nil {
		s.log.Info("login rejected", zap.String("user", req.Username))
		writeError(w, mapError(err), err.Error())
		return
	}

	sess := s.sessions.create(req.Username, filter)
	s.log.Info("login", zap.String("user", sess.Username))
	writeJSON(w, http.StatusOK, loginResponse{
		Token:          sess.Token,
		AttorneyFilter: sess.AttorneyFilter,
	})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	s.sessions.destroy(sess.Token)
	s.log.Info("logout", zap.String("user", sess.Username))
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
