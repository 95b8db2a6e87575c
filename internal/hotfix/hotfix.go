// Package hotfix replays an explicit list of commits onto the previous patch
// tag and tags the result. The operation is all-or-nothing: the first
// conflict rolls the repository back to the base tag.
package hotfix

import (
	"context"
	"fmt"
	"time"

	"github.com/grokify/releaseconductor/internal/policy"
	"github.com/grokify/releaseconductor/internal/semver"
	"github.com/grokify/releaseconductor/pkg/model"
)

// Repository is the repository surface the orchestrator needs.
// gitrepo.Repo satisfies it.
type Repository interface {
	TagExists(name string) (bool, error)
	CheckoutDetach(rev string) error
	CherryPick(ctx context.Context, commitID string) error
	ResetHard(rev string) error
	CreateAnnotatedTag(name, message string) error
	PushTag(ctx context.Context, name string) error
}

// Orchestrator applies hotfix requests against one repository.
type Orchestrator struct {
	repo   Repository
	policy *policy.ReleasePolicy
	dryRun bool
}

// New creates a hotfix orchestrator.
func New(repo Repository, pol *policy.ReleasePolicy, dryRun bool) *Orchestrator {
	return &Orchestrator{repo: repo, policy: pol, dryRun: dryRun}
}

// NewRequest validates the target version and derives the base tag: the
// target with its patch component decremented.
func NewRequest(targetVersion string, commitIDs []string, pol *policy.ReleasePolicy) (*model.HotfixRequest, error) {
	target, err := semver.Parse(targetVersion)
	if err != nil {
		return nil, err
	}
	if target.Snapshot {
		return nil, fmt.Errorf("hotfix target %s must not carry the snapshot suffix", targetVersion)
	}
	if target.Patch < 1 {
		return nil, fmt.Errorf("hotfix target %s must have patch >= 1; there is no base release to build on", targetVersion)
	}
	if len(commitIDs) == 0 {
		return nil, fmt.Errorf("hotfix requires at least one commit id")
	}

	base := &semver.Version{
		Major: target.Major,
		Minor: target.Minor,
		Patch: target.Patch - 1,
	}

	return &model.HotfixRequest{
		TargetVersion: target.Base().String(),
		BaseTag:       pol.TagName(base),
		CommitIDs:     commitIDs,
	}, nil
}

// Apply executes a hotfix request. On the first commit that does not apply
// cleanly, the repository is reset to the base tag before the ConflictError
// is returned; no tag is created.
func (o *Orchestrator) Apply(ctx context.Context, req *model.HotfixRequest) (*model.HotfixResult, error) {
	result := &model.HotfixResult{
		Timestamp: time.Now(),
		DryRun:    o.dryRun,
		BaseTag:   req.BaseTag,
	}

	exists, err := o.repo.TagExists(req.BaseTag)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("base tag %s does not exist", req.BaseTag)
	}

	target, err := semver.Parse(req.TargetVersion)
	if err != nil {
		return nil, err
	}
	tagName := o.policy.TagName(target)

	exists, err = o.repo.TagExists(tagName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &model.ReleaseExistsError{Tag: tagName}
	}

	if o.dryRun {
		result.Actions = append(result.Actions, model.Action{
			Kind: "checkout", Detail: "detach at " + req.BaseTag, Skipped: true,
		})
		for _, id := range req.CommitIDs {
			result.Actions = append(result.Actions, model.Action{
				Kind: "cherry-pick", Detail: id, Skipped: true,
			})
		}
		result.Actions = append(result.Actions,
			model.Action{Kind: "tag", Detail: tagName, Skipped: true},
			model.Action{Kind: "push", Detail: tagName, Skipped: true},
		)
		result.Tag = tagName
		return result, nil
	}

	if err := o.repo.CheckoutDetach(req.BaseTag); err != nil {
		return nil, err
	}
	result.Actions = append(result.Actions, model.Action{Kind: "checkout", Detail: "detach at " + req.BaseTag})

	for _, id := range req.CommitIDs {
		if err := o.repo.CherryPick(ctx, id); err != nil {
			if resetErr := o.repo.ResetHard(req.BaseTag); resetErr != nil {
				return nil, fmt.Errorf("rollback to %s failed after conflict on %s: %w", req.BaseTag, id, resetErr)
			}
			return nil, &model.ConflictError{CommitID: id, BaseTag: req.BaseTag}
		}
		result.Applied = append(result.Applied, id)
		result.Actions = append(result.Actions, model.Action{Kind: "cherry-pick", Detail: id})
	}

	message := fmt.Sprintf("Hotfix %s: %d commits on %s", req.TargetVersion, len(req.CommitIDs), req.BaseTag)
	if err := o.repo.CreateAnnotatedTag(tagName, message); err != nil {
		if resetErr := o.repo.ResetHard(req.BaseTag); resetErr != nil {
			return nil, fmt.Errorf("rollback to %s failed after tagging error: %w", req.BaseTag, resetErr)
		}
		return nil, err
	}
	result.Actions = append(result.Actions, model.Action{Kind: "tag", Detail: tagName})

	if err := o.repo.PushTag(ctx, tagName); err != nil {
		return nil, err
	}
	result.Actions = append(result.Actions, model.Action{Kind: "push", Detail: tagName})

	result.Tag = tagName
	return result, nil
}
