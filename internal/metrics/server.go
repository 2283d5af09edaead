package metrics

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/stlalpha/simplekit/internal/logging"
)

// Server serves /metrics and /sessions
type Server struct {
	server   *http.Server
	listener net.Listener
	reg      *Registry
	prom     *prometheus.Registry
	log      *logrus.Entry
}

// NewServer creates a server for addr over reg. Extra collectors (e.g. an
// EventCounter) are registered next to the session collector.
func NewServer(addr string, reg *Registry, extra ...prometheus.Collector) (*Server, error) {
	prom := prometheus.NewRegistry()
	if err := prom.Register(NewCollector(reg)); err != nil {
		return nil, err
	}
	if err := prom.Register(prometheus.NewGoCollector()); err != nil {
		return nil, err
	}
	for _, c := range extra {
		if err := prom.Register(c); err != nil {
			return nil, err
		}
	}

	s := &Server{reg: reg, prom: prom, log: logging.For("metrics")}
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

func (s *Server) routes() *mux.Router {
	m := mux.NewRouter()
	m.Use(s.logRequests)
	m.Handle("/metrics", promhttp.HandlerFor(s.prom, promhttp.HandlerOpts{})).Methods("GET")
	m.HandleFunc("/sessions", s.listSessions).Methods("GET")
	m.HandleFunc("/sessions/{id}", s.getSession).Methods("GET")
	return m
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start listens and serves in the background
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}
	s.listener = ln
	go func() {
		switch err := s.server.Serve(ln); err {
		case nil, http.ErrServerClosed:
		default:
			s.log.Error(err)
		}
	}()
	s.log.Infof("Metrics server start at %s", ln.Addr())
	return nil
}

// Addr returns the listening address once started
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.server.Addr
	}
	return s.listener.Addr().String()
}

// Close shuts the server down
func (s *Server) Close(ctx context.Context) {
	if err := s.server.Shutdown(ctx); err != nil {
		s.log.WithError(err).Error("failed to shutdown metrics server")
	}
	s.log.Info("Metrics server close")
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.log.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
			"remote": r.RemoteAddr,
		}).Debug("http request")
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) listSessions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.reg.List())
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session id"})
		return
	}
	info, ok := s.reg.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	writeJSON(w, http.StatusOK, info)
}
