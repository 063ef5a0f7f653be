package server

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/carsa-legal/cobros/internal/ledger"
)

// sessionStore keeps live sessions in memory, keyed by bearer token. Nothing
// is persisted: a process restart logs everyone out.
type sessionStore struct {
	mu sync.RWMutex
	m  map[string]*ledger.Session
}

func newSessionStore() *sessionStore {
	return &sessionStore{m: make(map[string]*ledger.Session)}
}

func (ss *sessionStore) create(username, attorneyFilter string) *ledger.Session {
	sess := &ledger.Session{
		Token:          uuid.NewString(),
		Username:       username,
		AttorneyFilter: attorneyFilter,
		CreatedAt:      time.Now().UTC(),
	}
	ss.mu.Lock()
	ss.m[sess.Token] = sess
	ss.mu.Unlock()
	return sess
}

func (ss *sessionStore) get(token string) (*ledger.Session, error) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	sess, ok := ss.m[token]
	if !ok {
		return nil, ledger.ErrSessionNotFound
	}
	return sess, nil
}

func (ss *sessionStore) rememberSearch(token, idQuery, nameQuery string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if sess, ok := ss.m[token]; ok {
		sess.IDQuery = idQuery
		sess.NameQuery = nameQuery
	}
}

func (ss *sessionStore) destroy(token string) {
	ss.mu.Lock()
	delete(ss.m, token)
	ss.mu.Unlock()
}

type contextKey int

const sessionKey contextKey = 0

// requireSession resolves the Authorization bearer token to a live session
// and stashes it in the request context.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, ledger.ErrSessionNotFound.Error())
			return
		}
		sess, err := s.sessions.get(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, sess)))
	})
}

func sessionFrom(r *http.Request) *ledger.Session {
	sess, _ := r.Context().Value(sessionKey).(*ledger.Session)
	return sess
}
