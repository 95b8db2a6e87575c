// Package gitrepo abstracts the version-control operations the planner,
// cutter, and hotfix orchestrator need. Policy code depends only on the Repo
// interface so it stays unit-testable without a real repository.
package gitrepo

import (
	"context"

	"github.com/grokify/releaseconductor/pkg/model"
)

// Repo is the version-control capability surface for one local checkout with
// one remote.
type Repo interface {
	// Tags returns every tag name in the repository.
	Tags() ([]string, error)

	// LatestTag returns the highest semver tag, or "" when none exist.
	LatestTag() (string, error)

	// TagExists reports whether a tag is present in the tag namespace.
	TagExists(name string) (bool, error)

	// RemoteBranchExists reports whether a branch exists on the remote.
	RemoteBranchExists(ctx context.Context, name string) (bool, error)

	// CommitsSince returns the commits from HEAD back to (excluding) ref,
	// newest first. An empty ref returns the entire history.
	CommitsSince(ref string) ([]model.Commit, error)

	// HeadSHA returns the SHA of the current HEAD.
	HeadSHA() (string, error)

	// CheckoutBranch checks out an existing local or remote-tracking branch.
	CheckoutBranch(name string) error

	// CheckoutDetach detaches HEAD at the given tag or revision.
	CheckoutDetach(rev string) error

	// CreateBranch creates and checks out a new branch at HEAD.
	CreateBranch(name string) error

	// CommitFile stages one file and commits it.
	CommitFile(path, message string) error

	// CreateAnnotatedTag creates an annotated tag at HEAD.
	CreateAnnotatedTag(name, message string) error

	// PushBranch pushes a branch to the remote. Already-up-to-date is not an
	// error.
	PushBranch(ctx context.Context, name string) error

	// PushTag pushes a tag to the remote.
	PushTag(ctx context.Context, name string) error

	// CherryPick applies one commit onto the current HEAD, failing on
	// conflicts without leaving an in-progress pick behind.
	CherryPick(ctx context.Context, commitID string) error

	// ResetHard resets the working tree and HEAD to a revision.
	ResetHard(rev string) error
}
