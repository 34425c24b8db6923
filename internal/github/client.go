package github

import (
	"context"
	"net/http"
	"sort"
	"time"

	gh "github.com/google/go-github/v75/github"

	"github.com/blackwell-systems/reposcribe/internal/config"
)

// Client is a thin wrapper around go-github scoped to the authenticated
// user. It holds no mutable state beyond the cached login, so a single
// Client is safe for concurrent use.
type Client struct {
	gh    *gh.Client
	login string

	// Structure walking caps. Zero values fall back to the package defaults.
	TreeDepth int
	TreeWidth int
}

// NewClient returns a Client authenticated with the given token. Every API
// call is bounded by timeout; zero falls back to the config default.
func NewClient(token string, timeout time.Duration) *Client {
	return &Client{gh: gh.NewClient(httpClient(timeout)).WithAuthToken(token)}
}

// NewEnterpriseClient returns a Client that talks to a GitHub Enterprise
// instance (or any server implementing the API) instead of github.com.
func NewEnterpriseClient(token, baseURL string, timeout time.Duration) (*Client, error) {
	ghc, err := gh.NewClient(httpClient(timeout)).WithAuthToken(token).WithEnterpriseURLs(baseURL, baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{gh: ghc}, nil
}

func httpClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = config.DefaultRequestTimeout
	}
	return &http.Client{Timeout: timeout}
}

// Login resolves and caches the authenticated user's login.
func (c *Client) Login(ctx context.Context) (string, error) {
	if c.login != "" {
		return c.login, nil
	}
	user, _, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return "", classify("resolving authenticated user", err)
	}
	c.login = user.GetLogin()
	return c.login, nil
}

// ListRepos returns summaries for every repository visible to the
// authenticated user, newest first. Forks are skipped unless includeForks
// is set. The has-README flag is probed per repository; a probe failure
// counts as "no README" rather than failing the listing.
func (c *Client) ListRepos(ctx context.Context, includeForks bool) ([]RepoSummary, error) {
	owner, err := c.Login(ctx)
	if err != nil {
		return nil, err
	}

	var repos []RepoSummary
	opts := &gh.RepositoryListByAuthenticatedUserOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	for {
		page, resp, err := c.gh.Repositories.ListByAuthenticatedUser(ctx, opts)
		if err != nil {
			return nil, classify("listing repositories", err)
		}

		for _, r := range page {
			if r.GetFork() && !includeForks {
				continue
			}
			summary := RepoSummary{
				Name:        r.GetName(),
				FullName:    r.GetFullName(),
				Description: r.GetDescription(),
				Language:    r.GetLanguage(),
				Stars:       r.GetStargazersCount(),
				URL:         r.GetHTMLURL(),
				Private:     r.GetPrivate(),
				Fork:        r.GetFork(),
			}
			if !r.GetUpdatedAt().IsZero() {
				summary.UpdatedAt = r.GetUpdatedAt().Format("2006-01-02T15:04:05Z07:00")
			}
			summary.HasReadme = c.hasReadme(ctx, owner, r.GetName())
			repos = append(repos, summary)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	sort.Slice(repos, func(i, j int) bool {
		return repos[i].UpdatedAt > repos[j].UpdatedAt
	})
	return repos, nil
}

// Repo returns the metadata for a single repository of the authenticated user.
func (c *Client) Repo(ctx context.Context, name string) (*RepoInfo, error) {
	owner, err := c.Login(ctx)
	if err != nil {
		return nil, err
	}

	r, _, err := c.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, classify("fetching repository "+name, err)
	}

	info := &RepoInfo{
		Name:        r.GetName(),
		Description: r.GetDescription(),
		Language:    r.GetLanguage(),
		Topics:      r.Topics,
		HasReadme:   c.hasReadme(ctx, owner, name),
	}
	if r.GetLicense() != nil {
		info.License = r.GetLicense().GetName()
	}
	return info, nil
}

// Languages returns the per-language byte counts GitHub reports for the
// repository. An empty map (not an error) means no language data.
func (c *Client) Languages(ctx context.Context, repo string) (map[string]int, error) {
	owner, err := c.Login(ctx)
	if err != nil {
		return nil, err
	}

	langs, _, err := c.gh.Repositories.ListLanguages(ctx, owner, repo)
	if err != nil {
		if IsNotFound(classify("", err)) {
			return map[string]int{}, nil
		}
		return nil, classify("fetching languages for "+repo, err)
	}
	if langs == nil {
		langs = map[string]int{}
	}
	return langs, nil
}

// FileContent fetches and decodes a single file. ErrNotFound when the path
// does not exist.
func (c *Client) FileContent(ctx context.Context, repo, path string) (*FileRef, error) {
	owner, err := c.Login(ctx)
	if err != nil {
		return nil, err
	}

	file, _, _, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		return nil, classify("fetching "+repo+"/"+path, err)
	}
	if file == nil {
		// Path resolved to a directory.
		return nil, classify("fetching "+repo+"/"+path, ErrNotFound)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, classify("decoding "+repo+"/"+path, err)
	}
	return &FileRef{Path: path, Content: content, SHA: file.GetSHA()}, nil
}

// Readme returns the repository's README via GitHub's README resolution
// (any of the supported filename variants). ErrNotFound when absent.
func (c *Client) Readme(ctx context.Context, repo string) (*FileRef, error) {
	owner, err := c.Login(ctx)
	if err != nil {
		return nil, err
	}

	readme, _, err := c.gh.Repositories.GetReadme(ctx, owner, repo, nil)
	if err != nil {
		return nil, classify("fetching README for "+repo, err)
	}
	content, err := readme.GetContent()
	if err != nil {
		return nil, classify("decoding README for "+repo, err)
	}
	return &FileRef{Path: readme.GetPath(), Content: content, SHA: readme.GetSHA()}, nil
}

func (c *Client) hasReadme(ctx context.Context, owner, repo string) bool {
	_, _, err := c.gh.Repositories.GetReadme(ctx, owner, repo, nil)
	return err == nil
}
