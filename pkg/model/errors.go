package model

import (
	"errors"
	"fmt"
)

// ErrNothingToRelease signals an intentional no-op: zero commits since the
// last tag. Callers report it and exit 0.
var ErrNothingToRelease = errors.New("nothing to release: no commits since last tag")

// ErrInvalidFormat is wrapped by version parse failures.
var ErrInvalidFormat = errors.New("invalid version format")

// VersionMismatchError reports a proposed release version that contradicts
// the commit-derived classification.
type VersionMismatchError struct {
	Expected string
	Proposed string
	Bump     Bump
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("version mismatch: commits classify as %s, expected %s but %s was proposed",
		e.Bump, e.Expected, e.Proposed)
}

// BranchMissingError reports a patch release whose maintenance branch does
// not exist on the remote. Fatal and non-retryable.
type BranchMissingError struct {
	Branch string
}

func (e *BranchMissingError) Error() string {
	return fmt.Sprintf("maintenance branch %s does not exist on the remote; patch releases require an existing branch", e.Branch)
}

// ReleaseExistsError reports a tag collision for the proposed release.
type ReleaseExistsError struct {
	Tag string
}

func (e *ReleaseExistsError) Error() string {
	return fmt.Sprintf("release %s already exists", e.Tag)
}

// ConflictError reports the first commit that failed to cherry-pick cleanly.
// The orchestrator guarantees the repository was reset to the base tag before
// this error is surfaced.
type ConflictError struct {
	CommitID string
	BaseTag  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("cherry-pick of %s failed with conflicts; repository reset to %s, resolve manually and re-run", e.CommitID, e.BaseTag)
}
