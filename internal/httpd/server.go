// Package httpd exposes the content intake entry point over HTTP: the
// desktop counterpart of a mobile share sheet. Other tools POST shared
// text or a deep-linked bookmark id and the payload lands in the intake
// queue.
package httpd

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"hoard/internal/intake"
	"hoard/internal/logger"
)

// Server wraps the HTTP server for the intake endpoint.
type Server struct {
	http  *http.Server
	log   logger.Logger
	queue *intake.Queue
}

// ServerParams holds the collaborators for a new Server.
type ServerParams struct {
	Addr  string
	Queue *intake.Queue
	Log   logger.Logger
}

// NewServer builds the intake HTTP server.
func NewServer(params ServerParams) *Server {
	s := &Server{
		log:   params.Log,
		queue: params.Queue,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Second))

	r.Get("/healthz", s.handleHealthz)
	r.Post("/v1/share", s.handleShare)
	r.Post("/v1/deeplink/{id}", s.handleDeeplink)

	s.http = &http.Server{
		Addr:              params.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start runs the HTTP server and blocks until error or shutdown.
func (s *Server) Start() error {
	s.log.Info("intake endpoint listening", logger.String("addr", s.http.Addr))
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop gracefully shuts down the server with the provided context deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("intake endpoint shutting down")
	return s.http.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

type shareRequest struct {
	Text string `json:"text"`
}

// handleShare accepts a shared text payload, either as JSON {"text": ...}
// or as a raw text body.
func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 64<<10))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	text := string(body)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req shareRequest
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, "invalid json body", http.StatusBadRequest)
			return
		}
		text = req.Text
	}

	text = strings.TrimSpace(text)
	if text == "" {
		http.Error(w, "empty payload", http.StatusBadRequest)
		return
	}

	s.queue.PublishShare(text)
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleDeeplink(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "empty id", http.StatusBadRequest)
		return
	}

	s.queue.PublishDeeplink(id)
	w.WriteHeader(http.StatusAccepted)
}
