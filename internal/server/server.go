// Package server is the local development server for inspecting generated
// levels over HTTP.
package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/ChicagoDave/roadgen/pkg/config"
	"github.com/ChicagoDave/roadgen/pkg/generate"
	"github.com/ChicagoDave/roadgen/pkg/scene"
	"github.com/ChicagoDave/roadgen/pkg/validation"
)

// Server regenerates the project's level on demand and serves the result.
type Server struct {
	projectPath string
	port        int
	log         *slog.Logger

	mu     sync.Mutex
	graph  *scene.Graph
	stats  *generate.Stats
	report *validation.Report
}

// New creates a server for the given project directory.
func New(projectPath string, port int, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		projectPath: projectPath,
		port:        port,
		log:         log,
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/scene", s.handleScene)
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("GET /api/validation", s.handleValidation)
	mux.HandleFunc("GET /api/config", s.handleConfig)
	mux.HandleFunc("GET /", s.handleIndex)
	return mux
}

// Start launches the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.log.Info("roadgen server starting", "addr", "http://localhost"+addr, "project", s.projectPath)
	return http.ListenAndServe(addr, s.Handler())
}

// regenerate reloads the project and runs a fresh authoring pass.
func (s *Server) regenerate(seed int64) error {
	p, err := config.LoadProject(s.projectPath)
	if err != nil {
		return fmt.Errorf("loading project: %w", err)
	}
	report := validation.ValidateConfig(p)
	if !report.Valid {
		s.mu.Lock()
		s.report = report
		s.mu.Unlock()
		return fmt.Errorf("project has validation errors: %s", report.Summary)
	}

	p.Generation.Mode = config.ModeAuthoring
	g := generate.FromProject(p, nil, seed, s.log)
	if _, err := g.LoadTemplates(); err != nil {
		s.log.Warn("template bundle not loaded", "error", err)
	}
	if err := generate.SafeGenerate(g); err != nil {
		return err
	}
	report.Merge(g.Report())
	report.Merge(scene.ValidateGraph(g.Scene()))

	s.mu.Lock()
	s.graph, s.stats, s.report = g.Scene(), g.Stats(), report
	s.mu.Unlock()
	s.log.Info("level generated", "seed", g.Scene().Metadata.Seed, "nodes", g.Scene().Len())
	return nil
}

func (s *Server) current() (*scene.Graph, *generate.Stats, *validation.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph, s.stats, s.report
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>roadgen</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>roadgen</h1>
<p>GET <code>/api/scene</code> for the current level, POST <code>/api/generate?seed=N</code> to rebuild it.</p>
</div>
</body></html>`)
}

func (s *Server) handleScene(w http.ResponseWriter, _ *http.Request) {
	g, _, _ := s.current()
	if g == nil {
		if err := s.regenerate(0); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		g, _, _ = s.current()
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var seed int64
	if v := r.URL.Query().Get("seed"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid seed %q", v))
			return
		}
		seed = n
	}
	if err := s.regenerate(seed); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	g, stats, _ := s.current()
	writeJSON(w, http.StatusOK, map[string]any{
		"metadata": g.Metadata,
		"counts":   g.Counts(),
		"stats":    stats,
	})
}

func (s *Server) handleValidation(w http.ResponseWriter, _ *http.Request) {
	_, _, report := s.current()
	if report == nil {
		p, err := config.LoadProject(s.projectPath)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		report = validation.ValidateConfig(p)
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleConfig(w http.ResponseWriter, _ *http.Request) {
	p, err := config.LoadProject(s.projectPath)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
