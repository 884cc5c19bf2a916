// Package server exposes scenario runs over HTTP: trigger a run,
// list run IDs, fetch a manifest, browse recorded artifacts.
package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-chi/chi/v5"

	"greenwich/internal/runner"
	"greenwich/internal/scenario"
)

// Runner executes one scenario. Tests swap in a stub.
type Runner func(cfg *scenario.Config, opts runner.Options) (runner.Outcome, error)

// Options configure the server.
type Options struct {
	Logger *slog.Logger
	Run    Runner // nil uses runner.Run
}

// Server drives scenario runs against a workspace directory.
type Server struct {
	workspace string
	log       *slog.Logger
	run       Runner

	mu sync.Mutex // one browser run at a time
}

// New builds a server rooted at a workspace. Run records land under
// <workspace>/runs and are served back at /runs/.
func New(workspace string, opts Options) *Server {
	s := &Server{
		workspace: workspace,
		log:       opts.Logger,
		run:       opts.Run,
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.run == nil {
		s.run = runner.Run
	}
	return s
}

// Routes wires the HTTP handlers.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.handleHealth)
	r.Post("/v1/runs", s.handleCreateRun)
	r.Get("/v1/runs", s.handleListRuns)
	r.Get("/v1/runs/{id}", s.handleGetRun)

	runsDir := filepath.Join(s.workspace, "runs")
	r.Handle("/runs/*", http.StripPrefix("/runs/", http.FileServer(http.Dir(runsDir))))

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type createRunRequest struct {
	Scenario string `json:"scenario"`
	Headless *bool  `json:"headless,omitempty"`
}

func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var req createRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	if req.Scenario == "" {
		respondError(w, http.StatusBadRequest, fmt.Errorf("scenario is required"))
		return
	}

	cfg, ok := scenario.Builtin(req.Scenario)
	if !ok {
		loaded, err := scenario.Load(req.Scenario)
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Errorf("unknown scenario %q: %w", req.Scenario, err))
			return
		}
		cfg = loaded
	}

	headless := true
	if req.Headless != nil {
		headless = *req.Headless
	}

	s.log.Info("run requested", "scenario", cfg.Name, "headless", headless)

	s.mu.Lock()
	out, err := s.run(cfg, runner.Options{
		Headless:  headless,
		Workspace: s.workspace,
		Logger:    s.log,
	})
	s.mu.Unlock()

	if err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   err.Error(),
			"outcome": out,
		})
		return
	}
	respondJSON(w, http.StatusCreated, out)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	ids, err := runner.FindRuns(s.workspace)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	respondJSON(w, http.StatusOK, map[string][]string{"runs": ids})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	path := runner.ManifestPath(s.workspace, id)
	if _, err := os.Stat(path); err != nil {
		respondError(w, http.StatusNotFound, fmt.Errorf("run %s not found", id))
		return
	}
	out, err := runner.LoadManifest(path)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

// --- helpers ---

// respondJSON sends a JSON response with appropriate headers.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}

// respondError sends a structured JSON error response.
func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, map[string]string{"error": err.Error()})
}
