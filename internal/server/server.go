// Package server exposes the reposcribe operations as a JSON API for the
// browser dashboard. Every endpoint returns either a success payload or
// {"error": "..."}; clients treat the presence of an error key as
// authoritative regardless of transport status.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/blackwell-systems/reposcribe/internal/analyzer"
	"github.com/blackwell-systems/reposcribe/internal/config"
	"github.com/blackwell-systems/reposcribe/internal/deploy"
	"github.com/blackwell-systems/reposcribe/internal/github"
	"github.com/blackwell-systems/reposcribe/internal/readme"
)

// Header names for per-request credential overrides. Tokens arrive with
// the request (or fall back to server config); they are never stored.
const (
	headerGitHubToken = "X-GitHub-Token"
	headerAIKey       = "X-AI-Key"
	headerVercelToken = "X-Vercel-Token"
)

// generatorFactory builds a text generator for a request's API key.
// Swappable in tests.
type generatorFactory func(ctx context.Context, apiKey, model string) (readme.Generator, error)

// Server routes dashboard requests to the analysis, health, deployment and
// generation components.
type Server struct {
	cfg          *config.Config
	mux          *http.ServeMux
	logger       *slog.Logger
	newGenerator generatorFactory

	// newGitHub and newDetector are swappable for tests.
	newGitHub   func(token string) *github.Client
	newDetector func(token string) *deploy.Detector

	// Detectors are held per token so their deployment-URL caches survive
	// across requests.
	mu        sync.Mutex
	detectors map[string]*deploy.Detector
}

// New returns a Server with all routes registered.
func New(cfg *config.Config, logger *slog.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		mux:    http.NewServeMux(),
		logger: logger,
		newGenerator: func(ctx context.Context, apiKey, model string) (readme.Generator, error) {
			return readme.NewGeminiGenerator(ctx, apiKey, model)
		},
		newGitHub: func(token string) *github.Client {
			return github.NewClient(token, cfg.RequestTimeout)
		},
		newDetector: deploy.NewDetector,
		detectors:   map[string]*deploy.Detector{},
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/health", s.handleHealth)
	s.mux.HandleFunc("GET /api/repos", s.handleListRepos)
	s.mux.HandleFunc("GET /api/analyze/{repo}", s.handleAnalyze)
	s.mux.HandleFunc("GET /api/deploy/{repo}", s.handleDeployURL)
	s.mux.HandleFunc("GET /api/score/{repo}", s.handleScore)
	s.mux.HandleFunc("GET /api/security/{repo}", s.handleSecurity)
	s.mux.HandleFunc("POST /api/generate", s.handleGenerate)
	s.mux.HandleFunc("POST /api/commit", s.handleCommit)
	s.mux.HandleFunc("POST /api/license", s.handleAddLicense)
	s.mux.HandleFunc("POST /api/gitignore", s.handleAddGitignore)
}

// ServeHTTP implements http.Handler with request logging.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s.mux.ServeHTTP(w, r)
	s.logger.Info("request",
		"method", r.Method,
		"path", r.URL.Path,
		"duration", time.Since(start).Truncate(time.Millisecond).String(),
	)
}

// ListenAndServe starts the server on the configured address.
func (s *Server) ListenAndServe() error {
	s.logger.Info("listening", "addr", s.cfg.ListenAddr)
	return http.ListenAndServe(s.cfg.ListenAddr, s)
}

// githubClient builds a per-request GitHub client, preferring the header
// token. Returns nil when no token is available.
func (s *Server) githubClient(r *http.Request) *github.Client {
	token := r.Header.Get(headerGitHubToken)
	if token == "" {
		token = s.cfg.GitHubToken
	}
	if token == "" {
		return nil
	}
	return s.newGitHub(token)
}

// maxDetectors bounds the per-token detector map against arbitrary header
// tokens; hitting the cap drops all cached detectors.
const maxDetectors = 64

func (s *Server) detector(r *http.Request) *deploy.Detector {
	token := r.Header.Get(headerVercelToken)
	if token == "" {
		token = s.cfg.VercelToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.detectors[token]; ok {
		return d
	}
	if len(s.detectors) >= maxDetectors {
		s.detectors = map[string]*deploy.Detector{}
	}
	d := s.newDetector(token)
	s.detectors[token] = d
	return d
}

func (s *Server) aiKey(r *http.Request) string {
	if key := r.Header.Get(headerAIKey); key != "" {
		return key
	}
	return s.cfg.AIKey
}

// generateTimeout bounds a single text-generation call, which runs much
// longer than a plain API fetch.
func (s *Server) generateTimeout() time.Duration {
	if s.cfg.GenerateTimeout > 0 {
		return s.cfg.GenerateTimeout
	}
	return config.DefaultGenerateTimeout
}

func (s *Server) analyzerFor(client *github.Client) *analyzer.Analyzer {
	client.TreeDepth = s.cfg.TreeDepth
	client.TreeWidth = s.cfg.TreeWidth
	return analyzer.New(client)
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy to a status code and always emits an
// {"error": ...} body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, github.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, github.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, github.ErrPermission):
		status = http.StatusForbidden
	case errors.Is(err, github.ErrRateLimited):
		status = http.StatusTooManyRequests
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeAuthError reports a missing credential.
func writeAuthError(w http.ResponseWriter, what string) {
	writeJSON(w, http.StatusUnauthorized, map[string]string{"error": what + " required"})
}
