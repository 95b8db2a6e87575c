// Package plan builds a validated ReleasePlan from repository state, the
// commit classification, and the maintenance-branch policy.
package plan

import (
	"context"
	"fmt"

	"github.com/grokify/releaseconductor/internal/classify"
	"github.com/grokify/releaseconductor/internal/policy"
	"github.com/grokify/releaseconductor/internal/semver"
	"github.com/grokify/releaseconductor/pkg/model"
)

// Repository is the read-only repository surface the planner needs.
// gitrepo.Repo satisfies it.
type Repository interface {
	Tags() ([]string, error)
	TagExists(name string) (bool, error)
	RemoteBranchExists(ctx context.Context, name string) (bool, error)
	CommitsSince(ref string) ([]model.Commit, error)
}

// Request carries the caller-supplied inputs for one planning run.
type Request struct {
	// ReleaseVersion is the proposed version to release. Required.
	ReleaseVersion string

	// NextVersion is the development version to move to after the release.
	// Presence selects major/minor mode; absence selects patch mode.
	NextVersion string

	// CurrentVersion is the project version recorded in build metadata.
	// Empty skips the coherence checks (no property file present).
	CurrentVersion string
}

// Planner validates a proposed release and decides where it is cut from.
type Planner struct {
	repo   Repository
	policy *policy.ReleasePolicy
}

// New creates a planner over a repository and a release policy.
func New(repo Repository, pol *policy.ReleasePolicy) *Planner {
	return &Planner{repo: repo, policy: pol}
}

// BuildPlan runs the bump and branch policies and returns a plan the cutter
// can execute. Every violation is fatal; the only non-error early exit is
// model.ErrNothingToRelease on an empty commit set.
//
// The commit log is read from the current HEAD. Patch planning for an older
// line therefore expects that line's maintenance branch to be checked out;
// planning it from the default branch classifies mainline commits against the
// line baseline and rejects the release.
func (p *Planner) BuildPlan(ctx context.Context, req Request) (*model.ReleasePlan, error) {
	release, err := semver.Parse(req.ReleaseVersion)
	if err != nil {
		return nil, err
	}
	if release.Snapshot {
		return nil, fmt.Errorf("release version %s must not carry the snapshot suffix", req.ReleaseVersion)
	}

	patchMode := req.NextVersion == ""

	var next *semver.Version
	if !patchMode {
		next, err = semver.Parse(req.NextVersion)
		if err != nil {
			return nil, err
		}
		if !next.Snapshot {
			return nil, fmt.Errorf("next version %s must carry the snapshot suffix", req.NextVersion)
		}
		if next.Base().Compare(release) <= 0 {
			return nil, fmt.Errorf("next version %s must be greater than release version %s", req.NextVersion, req.ReleaseVersion)
		}
	}

	var current *semver.Version
	if req.CurrentVersion != "" {
		current, err = semver.Parse(req.CurrentVersion)
		if err != nil {
			return nil, fmt.Errorf("recorded project version is malformed: %w", err)
		}
	}

	tagName := p.policy.TagName(release)
	exists, err := p.repo.TagExists(tagName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &model.ReleaseExistsError{Tag: tagName}
	}

	if err := checkCoherence(release, current, patchMode); err != nil {
		return nil, err
	}

	tags, err := p.repo.Tags()
	if err != nil {
		return nil, err
	}

	// Patch releases measure against the last tag on their own maintenance
	// line; major/minor releases against the highest tag overall.
	baselineTag := semver.FindLatestVersion(tags)
	if patchMode {
		if lineTag := latestOnLine(tags, release); lineTag != "" {
			baselineTag = lineTag
		}
	}

	// No previous tag: the baseline is 0.0.0 and the commit set is the whole
	// history.
	base := &semver.Version{}
	if baselineTag != "" {
		base, err = semver.Parse(baselineTag)
		if err != nil {
			return nil, fmt.Errorf("baseline tag %s is malformed: %w", baselineTag, err)
		}
	}

	commits, err := p.repo.CommitsSince(baselineTag)
	if err != nil {
		return nil, err
	}
	if len(commits) == 0 {
		return nil, model.ErrNothingToRelease
	}

	bump := classify.Classify(commits)
	expected := ExpectedNext(base, bump)
	if err := ValidateProposed(release, expected, bump); err != nil {
		return nil, err
	}

	plan := &model.ReleasePlan{
		ReleaseVersion: release.Base().String(),
		ReleaseType:    releaseTypeFor(bump),
		Bump:           bump,
		TagName:        tagName,
		PreviousTag:    baselineTag,
		CommitCount:    len(commits),
	}
	if next != nil {
		plan.NextVersion = next.String()
	}

	if err := p.decideBranch(ctx, plan, release, patchMode); err != nil {
		return nil, err
	}

	return plan, nil
}

// decideBranch applies the branch policy: patch releases require an existing
// maintenance branch; major/minor releases run on the default branch and
// create the new line's maintenance branch when absent.
func (p *Planner) decideBranch(ctx context.Context, plan *model.ReleasePlan, release *semver.Version, patchMode bool) error {
	maintenance := p.policy.MaintenanceBranch(release)

	if patchMode {
		exists, err := p.repo.RemoteBranchExists(ctx, maintenance)
		if err != nil {
			return err
		}
		if !exists {
			return &model.BranchMissingError{Branch: maintenance}
		}
		plan.TargetBranch = maintenance
		plan.MustCreateBranch = false
		return nil
	}

	exists, err := p.repo.RemoteBranchExists(ctx, maintenance)
	if err != nil {
		return err
	}
	plan.TargetBranch = p.policy.DefaultBranch
	plan.MustCreateBranch = !exists
	return nil
}

// latestOnLine returns the highest tag on the release's MAJOR.MINOR line, or
// "" when the line has never been tagged.
func latestOnLine(tags []string, release *semver.Version) string {
	var best *semver.Version
	for _, tag := range tags {
		if !semver.IsSemver(tag) {
			continue
		}
		v, err := semver.Parse(tag)
		if err != nil || !v.SameLine(release) {
			continue
		}
		if best == nil || v.Compare(best) > 0 {
			best = v
		}
	}
	if best == nil {
		return ""
	}
	return best.String()
}
