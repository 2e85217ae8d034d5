// Package gateway serves the Hausgeist tools over HTTP.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dohr-michael/hausgeist/internal/store"
	"github.com/dohr-michael/hausgeist/internal/tools"
)

// maxBodyBytes caps tool invocation payloads.
const maxBodyBytes = 1 << 20

// Server is the Hausgeist gateway HTTP server.
type Server struct {
	httpServer *http.Server
	registry   *tools.Registry
	store      store.Store
}

// NewServer creates a gateway server exposing registry and read-only store queries.
func NewServer(registry *tools.Registry, s store.Store, host string, port int) *Server {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	srv := &Server{
		registry: registry,
		store:    s,
	}

	r.Get("/api/health", srv.handleHealth)
	r.Get("/api/tools", srv.handleListTools)
	r.Post("/api/tools/{name}", srv.handleInvokeTool)
	r.Get("/api/tasks", srv.handleTasks)

	srv.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", host, port),
		Handler: r,
	}
	return srv
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening. It blocks until the server is stopped.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	slog.Info("gateway: listening", "addr", ln.Addr().String())
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("gateway: encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListTools(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.Specs())
}

func (s *Server) handleInvokeTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("read body: %w", err))
		return
	}
	args := string(body)
	if len(body) == 0 {
		args = "{}"
	} else if !isJSONObject(body) {
		writeError(w, http.StatusBadRequest, errors.New("body must be a JSON object"))
		return
	}

	result, err := s.registry.Invoke(r.Context(), name, args)
	switch {
	case errors.Is(err, tools.ErrUnknownTool):
		writeError(w, http.StatusNotFound, err)
		return
	case err != nil:
		slog.Error("gateway: tool failed", "tool", name, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"result": result})
}

// isJSONObject reports whether body decodes as a JSON object. Arrays,
// scalars and null are rejected.
func isJSONObject(body []byte) bool {
	var obj map[string]json.RawMessage
	return json.Unmarshal(body, &obj) == nil && obj != nil
}

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	owner := r.URL.Query().Get("owner")
	list, err := s.store.OpenTasks(r.Context(), owner)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if list == nil {
		list = []*store.Item{}
	}
	writeJSON(w, http.StatusOK, list)
}
