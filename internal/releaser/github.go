package releaser

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v84/github"
	"github.com/grokify/gogithub/release"
	"github.com/grokify/gogithub/tag"
	"github.com/grokify/mogo/net/http/retryhttp"

	"github.com/grokify/releaseconductor/internal/semver"
	"github.com/grokify/releaseconductor/pkg/model"
)

// GitHubPublisher implements Publisher for GitHub.
type GitHubPublisher struct {
	client *github.Client
}

// NewGitHubPublisher creates a new GitHub publisher. The underlying HTTP
// client retries 429 rate-limit responses automatically.
func NewGitHubPublisher(token string) *GitHubPublisher {
	rt := retryhttp.NewWithOptions()
	httpClient := &http.Client{Transport: rt}

	client := github.NewClient(httpClient)
	if token != "" {
		client = client.WithAuthToken(token)
	}

	return &GitHubPublisher{
		client: client,
	}
}

// CreateRelease creates a release for an already-pushed tag.
func (p *GitHubPublisher) CreateRelease(ctx context.Context, req *model.ReleaseRequest) (*model.Release, error) {
	ghRelease := &github.RepositoryRelease{
		TagName:              github.Ptr(req.TagName),
		Name:                 github.Ptr(req.Name),
		Body:                 github.Ptr(req.Body),
		Draft:                github.Ptr(req.Draft),
		Prerelease:           github.Ptr(req.Prerelease),
		GenerateReleaseNotes: github.Ptr(req.GenerateNotes),
	}

	if req.TargetCommitish != "" {
		ghRelease.TargetCommitish = github.Ptr(req.TargetCommitish)
	}

	created, err := release.CreateRelease(ctx, p.client, req.Repo.Owner, req.Repo.Name, ghRelease)
	if err != nil {
		return nil, fmt.Errorf("failed to create release: %w", err)
	}

	return &model.Release{
		ID:          created.GetID(),
		TagName:     created.GetTagName(),
		Name:        created.GetName(),
		Body:        created.GetBody(),
		Draft:       created.GetDraft(),
		Prerelease:  created.GetPrerelease(),
		CreatedAt:   created.GetCreatedAt().Time,
		PublishedAt: created.GetPublishedAt().Time,
		HTMLURL:     created.GetHTMLURL(),
		Repo:        req.Repo,
	}, nil
}

// GetLatestTag returns the highest semver tag on the remote, or "" when the
// repository carries none.
func (p *GitHubPublisher) GetLatestTag(ctx context.Context, repo model.RepoRef) (string, error) {
	tagNames, err := tag.GetTagNames(ctx, p.client, repo.Owner, repo.Name)
	if err != nil {
		return "", fmt.Errorf("failed to list tags: %w", err)
	}

	return semver.FindLatestVersion(tagNames), nil
}

// GetTagSHA returns the SHA for a given tag.
func (p *GitHubPublisher) GetTagSHA(ctx context.Context, repo model.RepoRef, tagName string) (string, error) {
	return tag.GetTagSHA(ctx, p.client, repo.Owner, repo.Name, tagName)
}
