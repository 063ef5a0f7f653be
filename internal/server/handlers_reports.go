package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/carsa-legal/cobros/internal/export"
	"github.com/carsa-legal/cobros/internal/ledger"
)

func (s *Server) searchClients(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	idQuery := r.URL.Query().Get("cedula")
	nameQuery := r.URL.Query().Get("nombre")

	visible, err := ledger.VisibleRows(s.store.Payments(), sess.AttorneyFilter)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}

	matches, err := ledger.ResolveClients(visible, idQuery, nameQuery)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}

	s.sessions.rememberSearch(sess.Token, idQuery, nameQuery)
	writeJSON(w, http.StatusOK, matches)
}

// reportFor runs the filter → client-rows → aggregate pipeline for one
// cédula within the session's visibility.
func (s *Server) reportFor(sess *ledger.Session, clientID string) (*ledger.Report, error) {
	visible, err := ledger.VisibleRows(s.store.Payments(), sess.AttorneyFilter)
	if err != nil {
		return nil, err
	}
	rows := ledger.ClientRows(visible, clientID)
	if len(rows) == 0 {
		return nil, ledger.ErrClientNotFound
	}
	return ledger.Aggregate(rows), nil
}

func (s *Server) clientReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.reportFor(sessionFrom(r), chi.URLParam(r, "cedula"))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) exportReport(w http.ResponseWriter, r *http.Request) {
	cedula := chi.URLParam(r, "cedula")
	rep, err := s.reportFor(sessionFrom(r), cedula)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}

	f, err := export.WritePivot(rep)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+export.Filename(cedula))
	if err := f.Write(w); err != nil {
		s.log.Error("write export", zap.Error(err))
	}
}
