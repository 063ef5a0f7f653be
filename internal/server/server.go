package server

import (
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/carsa-legal/cobros/internal/store"
)

type Server struct {
	store    *store.Store
	sessions *sessionStore
	router   chi.Router
	addr     string
	log      *zap.Logger
}

func New(st *store.Store, addr string, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	s := &Server{
		store:    st,
		sessions: newSessionStore(),
		router:   r,
		addr:     addr,
		log:      log.Named("server"),
	}

	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", s.ping)
		r.Post("/login", s.login)

		// Everything behind the session gate sees only the rows the bound
		// attorney filter allows.
		r.Group(func(r chi.Router) {
			r.Use(s.requireSession)
			r.Post("/logout", s.logout)
			r.Get("/clients", s.searchClients)
			r.Get("/reports/client/{cedula}", s.clientReport)
			r.Get("/reports/client/{cedula}/export", s.exportReport)
		})
	})

	return s
}

func (s *Server) ListenAndServe() error {
	s.log.Info("listening", zap.String("addr", s.addr))
	return http.ListenAndServe(s.addr, s.router)
}

func (s *Server) Serve(ln net.Listener) error {
	s.log.Info("listening", zap.String("addr", ln.Addr().String()))
	return http.Serve(ln, s.router)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)))
	})
}

func (s *Server) ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
