package status

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog"

	"sidesweep/internal/application/port/output"
	"sidesweep/internal/usecase/removal"
)

// ProgressSource yields the current run snapshot.
type ProgressSource interface {
	Progress() removal.Progress
}

// Server exposes read-only run progress for external tooling.
type Server struct {
	srv *http.Server
	log output.LoggerPort
}

func NewServer(addr string, src ProgressSource, log output.LoggerPort) *Server {
	r := chi.NewRouter()
	httpLogger := httplog.NewLogger("sidesweep", httplog.Options{
		JSON:    true,
		Concise: true,
	})
	r.Use(httplog.RequestLogger(httpLogger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/progress", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(src.Progress())
	})

	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		log: log,
	}
}

// Handler is exposed for tests.
func (s *Server) Handler() http.Handler { return s.srv.Handler }

// Start serves in the background until Shutdown.
func (s *Server) Start() {
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error("progress server failed", "error", err)
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
