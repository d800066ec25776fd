// Package server exposes the agents over the wire: a small HTTP facade per
// agent process, and an MCP server publishing the research tools to any
// MCP-capable client.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/RoboJunior/Coding-Buddy/pkg/agent"
	"github.com/RoboJunior/Coding-Buddy/pkg/protocol"
	"github.com/RoboJunior/Coding-Buddy/pkg/tools"
)

// HTTPServer is one agent's HTTP facade: a run endpoint, the discovery
// card, health, and metrics.
type HTTPServer struct {
	agent  *agent.Agent
	server *http.Server
}

// NewHTTPServer builds the facade for one agent on the given address.
func NewHTTPServer(a *agent.Agent, addr string) *HTTPServer {
	s := &HTTPServer{agent: a}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/run", s.handleRun)
	r.Get(tools.AgentCardPath, s.handleAgentCard)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	s.server = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Start serves until the listener fails or Shutdown is called.
func (s *HTTPServer) Start() error {
	slog.Info("Agent listening", "agent", s.agent.Name(), "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the router, for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) handleRun(w http.ResponseWriter, r *http.Request) {
	var msg protocol.AgentMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	outcome, err := s.agent.Execute(r.Context(), msg)
	if err != nil {
		if errors.Is(err, protocol.ErrInvalidMessage) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("Run failed", "agent", s.agent.Name(), "error", err)
		writeError(w, http.StatusInternalServerError, "run failed")
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

func (s *HTTPServer) handleAgentCard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.agent.Card())
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
