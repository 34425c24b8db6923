package github

import (
	"context"

	gh "github.com/google/go-github/v75/github"
)

// CommitFile writes content to path in the repository as a single commit.
//
// When priorSHA is empty the file is created; GitHub rejects the create if
// the path already exists, which surfaces as ErrConflict. When priorSHA is
// set the file is updated, and a stale SHA (the file changed since this
// session read it) fails with ErrConflict without writing anything.
// ErrPermission and ErrNotFound are reported distinctly from transport
// errors so callers can message the user accurately.
func (c *Client) CommitFile(ctx context.Context, repo, path, content, message, priorSHA string) error {
	owner, err := c.Login(ctx)
	if err != nil {
		return err
	}

	opts := &gh.RepositoryContentFileOptions{
		Message: gh.Ptr(message),
		Content: []byte(content),
	}

	if priorSHA == "" {
		_, _, err = c.gh.Repositories.CreateFile(ctx, owner, repo, path, opts)
		return classify("creating "+repo+"/"+path, err)
	}

	opts.SHA = gh.Ptr(priorSHA)
	_, _, err = c.gh.Repositories.UpdateFile(ctx, owner, repo, path, opts)
	return classify("updating "+repo+"/"+path, err)
}

// CommitReadme creates or updates README.md in one step: if the repository
// already has a README its current SHA is used, otherwise the file is
// created. A concurrent edit between the read and the write still fails
// with ErrConflict rather than clobbering.
func (c *Client) CommitReadme(ctx context.Context, repo, content, message string) error {
	sha := ""
	if existing, err := c.Readme(ctx, repo); err == nil {
		sha = existing.SHA
	}
	return c.CommitFile(ctx, repo, "README.md", content, message, sha)
}
