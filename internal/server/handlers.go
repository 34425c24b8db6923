package server

import (
	"context"
	"encoding/json"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/reposcribe/internal/analyzer"
	"github.com/blackwell-systems/reposcribe/internal/health"
	"github.com/blackwell-systems/reposcribe/internal/readme"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "reposcribe"})
}

func (s *Server) handleListRepos(w http.ResponseWriter, r *http.Request) {
	client := s.githubClient(r)
	if client == nil {
		writeAuthError(w, "GitHub token")
		return
	}

	includeForks := r.URL.Query().Get("include_forks") == "true"
	repos, err := client.ListRepos(r.Context(), includeForks)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"repos": repos})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	client := s.githubClient(r)
	if client == nil {
		writeAuthError(w, "GitHub token")
		return
	}

	analysis, err := s.analyzerFor(client).Analyze(r.Context(), r.PathValue("repo"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"analysis": analysis})
}

// handleDeployURL never fails: an unresolvable URL is a null payload, not
// an error, because deployment status is best-effort enrichment.
func (s *Server) handleDeployURL(w http.ResponseWriter, r *http.Request) {
	repo := r.PathValue("repo")
	url := s.detector(r).ProjectURL(r.Context(), repo)

	payload := map[string]any{"repo": repo}
	if url != "" {
		payload["url"] = url
	} else {
		payload["url"] = nil
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	client := s.githubClient(r)
	if client == nil {
		writeAuthError(w, "GitHub token")
		return
	}

	repo := r.PathValue("repo")
	analysis, err := s.analyzerFor(client).Analyze(r.Context(), repo)
	if err != nil {
		writeError(w, err)
		return
	}

	report := health.Evaluate(r.Context(), client, repo, analysis)
	writeJSON(w, http.StatusOK, map[string]any{"repo": repo, "health": report})
}

func (s *Server) handleSecurity(w http.ResponseWriter, r *http.Request) {
	client := s.githubClient(r)
	if client == nil {
		writeAuthError(w, "GitHub token")
		return
	}

	repo := r.PathValue("repo")
	analysis, err := s.analyzerFor(client).Analyze(r.Context(), repo)
	if err != nil {
		writeError(w, err)
		return
	}

	report := health.ScanSecurity(r.Context(), client, repo, analysis)
	writeJSON(w, http.StatusOK, map[string]any{"repo": repo, "security": report})
}

type generateRequest struct {
	RepoName string `json:"repo_name"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RepoName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "repo_name is required"})
		return
	}

	client := s.githubClient(r)
	if client == nil {
		writeAuthError(w, "GitHub token")
		return
	}
	aiKey := s.aiKey(r)
	if aiKey == "" {
		writeAuthError(w, "AI API key")
		return
	}

	// Analysis and deployment lookup are independent; run both and join.
	// A failed deployment lookup degrades to no URL.
	var (
		analysis  *analyzer.Result
		deployURL string
	)
	g, gctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		analysis, err = s.analyzerFor(client).Analyze(gctx, req.RepoName)
		return err
	})
	g.Go(func() error {
		deployURL = s.detector(r).ProjectURL(gctx, req.RepoName)
		return nil
	})
	if err := g.Wait(); err != nil {
		writeError(w, err)
		return
	}

	generator, err := s.newGenerator(r.Context(), aiKey, s.cfg.Model)
	if err != nil {
		writeError(w, err)
		return
	}

	composer := readme.NewComposer(generator, s.cfg.Limits)
	genCtx, cancel := context.WithTimeout(r.Context(), s.generateTimeout())
	defer cancel()
	text, err := composer.Compose(genCtx, analysis, deployURL)
	if err != nil {
		writeError(w, err)
		return
	}

	payload := map[string]any{
		"readme":   text,
		"analysis": analysis,
	}
	if deployURL != "" {
		payload["deploy_url"] = deployURL
	}
	writeJSON(w, http.StatusOK, payload)
}

type commitRequest struct {
	RepoName string `json:"repo_name"`
	Readme   string `json:"readme"`
	Message  string `json:"message"`
}

func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	var req commitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RepoName == "" || req.Readme == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "repo_name and readme are required"})
		return
	}
	if req.Message == "" {
		req.Message = "Update README.md via reposcribe"
	}

	client := s.githubClient(r)
	if client == nil {
		writeAuthError(w, "GitHub token")
		return
	}

	if err := client.CommitReadme(r.Context(), req.RepoName, req.Readme, req.Message); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "repo": req.RepoName})
}

type scaffoldRequest struct {
	RepoName string `json:"repo_name"`
	Holder   string `json:"holder,omitempty"`
}

func (s *Server) handleAddLicense(w http.ResponseWriter, r *http.Request) {
	var req scaffoldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RepoName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "repo_name is required"})
		return
	}

	client := s.githubClient(r)
	if client == nil {
		writeAuthError(w, "GitHub token")
		return
	}

	holder := req.Holder
	if holder == "" {
		login, err := client.Login(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		holder = login
	}

	err := client.CommitFile(r.Context(), req.RepoName, "LICENSE",
		readme.MITLicense(holder), "Add MIT license", "")
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "repo": req.RepoName})
}

func (s *Server) handleAddGitignore(w http.ResponseWriter, r *http.Request) {
	var req scaffoldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RepoName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "repo_name is required"})
		return
	}

	client := s.githubClient(r)
	if client == nil {
		writeAuthError(w, "GitHub token")
		return
	}

	info, err := client.Repo(r.Context(), req.RepoName)
	if err != nil {
		writeError(w, err)
		return
	}

	err = client.CommitFile(r.Context(), req.RepoName, ".gitignore",
		readme.Gitignore(info.Language), "Add .gitignore", "")
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "repo": req.RepoName})
}
