// Package deploy resolves the public production URL of a deployment
// platform project linked to a repository. Deployment status is best-effort
// enrichment: every failure mode (no token, no matching project, platform
// error) reports "no URL" rather than an error.
package deploy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/blackwell-systems/reposcribe/internal/config"
)

const defaultBaseURL = "https://api.vercel.com"

// Detector queries the Vercel API for projects linked to GitHub
// repositories. Lookups are cached with a TTL because the dashboard asks
// for the same repositories repeatedly.
type Detector struct {
	token      string
	baseURL    string
	httpClient *http.Client
	cache      *expirable.LRU[string, string]
}

// NewDetector returns a Detector using the given API token. An empty token
// is valid and produces a detector that always reports no URL.
func NewDetector(token string) *Detector {
	return &Detector{
		token:      token,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: config.DefaultRequestTimeout},
		cache:      expirable.NewLRU[string, string](config.DefaultDeployCacheSize, nil, config.DefaultDeployCacheTTL),
	}
}

// project is the subset of a Vercel project the detector reads.
type project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Link struct {
		Type string `json:"type"`
		Repo string `json:"repo"`
	} `json:"link"`
	Targets struct {
		Production struct {
			Alias []string `json:"alias"`
		} `json:"production"`
	} `json:"targets"`
}

// ProjectURL returns the production URL for the project linked to the named
// repository, or "" when none can be resolved.
func (d *Detector) ProjectURL(ctx context.Context, repoName string) string {
	if d.token == "" {
		return ""
	}

	if cached, ok := d.cache.Get(repoName); ok {
		return cached
	}

	resolved := d.resolve(ctx, repoName)
	d.cache.Add(repoName, resolved)
	return resolved
}

func (d *Detector) resolve(ctx context.Context, repoName string) string {
	proj := d.findProject(ctx, repoName)
	if proj == nil {
		return ""
	}

	// Latest production deployment is authoritative.
	if u := d.latestDeploymentURL(ctx, proj.ID); u != "" {
		return u
	}

	// Fall back to the production alias, then the default project domain.
	if len(proj.Targets.Production.Alias) > 0 {
		return "https://" + proj.Targets.Production.Alias[0]
	}
	if proj.Name != "" {
		return fmt.Sprintf("https://%s.vercel.app", proj.Name)
	}
	return ""
}

// findProject matches a repository to a Vercel project: first by the
// project's GitHub link, then by exact name, then by normalized name.
func (d *Detector) findProject(ctx context.Context, repoName string) *project {
	var listing struct {
		Projects []project `json:"projects"`
	}
	if err := d.get(ctx, "/v9/projects", nil, &listing); err != nil {
		return nil
	}

	lower := strings.ToLower(repoName)
	for i, p := range listing.Projects {
		if p.Link.Type == "github" && strings.Contains(strings.ToLower(p.Link.Repo), lower) {
			return &listing.Projects[i]
		}
	}
	for i, p := range listing.Projects {
		if strings.ToLower(p.Name) == lower {
			return &listing.Projects[i]
		}
	}
	normalized := NormalizeName(repoName)
	for i, p := range listing.Projects {
		if NormalizeName(p.Name) == normalized {
			return &listing.Projects[i]
		}
	}
	return nil
}

func (d *Detector) latestDeploymentURL(ctx context.Context, projectID string) string {
	var listing struct {
		Deployments []struct {
			URL string `json:"url"`
		} `json:"deployments"`
	}
	params := url.Values{
		"projectId": {projectID},
		"target":    {"production"},
		"limit":     {"1"},
	}
	if err := d.get(ctx, "/v6/deployments", params, &listing); err != nil {
		return ""
	}
	if len(listing.Deployments) == 0 || listing.Deployments[0].URL == "" {
		return ""
	}
	return "https://" + listing.Deployments[0].URL
}

func (d *Detector) get(ctx context.Context, path string, params url.Values, out any) error {
	u := d.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+d.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("vercel API: status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// NormalizeName lowercases a name and strips everything that is not a
// letter or digit, so "My_Cool-Repo" and "mycoolrepo" compare equal.
func NormalizeName(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
