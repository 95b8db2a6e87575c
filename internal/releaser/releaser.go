package releaser

import (
	"context"
	"fmt"

	"github.com/grokify/releaseconductor/pkg/model"
)

// Publisher publishes a cut release to the hosting service.
type Publisher interface {
	// CreateRelease creates a release for an already-pushed tag.
	CreateRelease(ctx context.Context, req *model.ReleaseRequest) (*model.Release, error)

	// GetLatestTag returns the highest semver tag on the remote, or "" when
	// the repository carries none.
	GetLatestTag(ctx context.Context, repo model.RepoRef) (string, error)

	// GetTagSHA returns the SHA for a given tag.
	GetTagSHA(ctx context.Context, repo model.RepoRef, tagName string) (string, error)
}

// Options configures release publication.
type Options struct {
	GenerateNotes bool // Use GitHub's auto-generated release notes
	Draft         bool // Create as draft
	Prerelease    bool // Mark as prerelease
}

// DefaultOptions returns sensible default publish options.
func DefaultOptions() Options {
	return Options{
		GenerateNotes: true,
		Draft:         false,
		Prerelease:    false,
	}
}

// NewGitHub creates a new GitHub publisher with the given token.
func NewGitHub(token string) Publisher {
	return NewGitHubPublisher(token)
}

// PublishForTag creates a release for a tag after confirming the remote can
// see it. Publishing before the push has landed would create a release that
// points at nothing.
func PublishForTag(ctx context.Context, p Publisher, req *model.ReleaseRequest) (*model.Release, error) {
	if _, err := p.GetTagSHA(ctx, req.Repo, req.TagName); err != nil {
		return nil, fmt.Errorf("tag %s not visible on %s: %w", req.TagName, req.Repo.FullName(), err)
	}
	return p.CreateRelease(ctx, req)
}
