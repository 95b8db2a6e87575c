// Package cutter executes a validated ReleasePlan: property-file commit,
// annotated tag, branch creation, pushes. In dry-run mode every mutating
// action is recorded and skipped.
package cutter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/grokify/releaseconductor/internal/policy"
	"github.com/grokify/releaseconductor/internal/props"
	"github.com/grokify/releaseconductor/internal/semver"
	"github.com/grokify/releaseconductor/pkg/model"
)

// Repository is the mutating repository surface the cutter needs.
// gitrepo.Repo satisfies it.
type Repository interface {
	CheckoutBranch(name string) error
	CreateBranch(name string) error
	CommitFile(path, message string) error
	CreateAnnotatedTag(name, message string) error
	PushBranch(ctx context.Context, name string) error
	PushTag(ctx context.Context, name string) error
}

// Options configures one execution.
type Options struct {
	// OverrideMinVersion, when set, overrides the minimum-compatible-version
	// property alongside the release version.
	OverrideMinVersion string

	// Verbose, when non-nil, receives progress lines.
	Verbose io.Writer
}

// Cutter executes release plans against one checkout.
type Cutter struct {
	repo     Repository
	repoPath string
	policy   *policy.ReleasePolicy
	dryRun   bool
}

// New creates a cutter.
func New(repo Repository, repoPath string, pol *policy.ReleasePolicy, dryRun bool) *Cutter {
	return &Cutter{repo: repo, repoPath: repoPath, policy: pol, dryRun: dryRun}
}

// Execute runs the plan to completion. Any failure is fatal and surfaces
// immediately; nothing is retried.
func (c *Cutter) Execute(ctx context.Context, plan *model.ReleasePlan, opts Options) (*model.CutResult, error) {
	result := &model.CutResult{
		Timestamp: time.Now(),
		DryRun:    c.dryRun,
		Repo:      c.repoPath,
		Plan:      plan,
	}

	release, err := semver.Parse(plan.ReleaseVersion)
	if err != nil {
		return nil, err
	}
	maintenance := c.policy.MaintenanceBranch(release)

	if err := c.checkout(ctx, result, plan.TargetBranch); err != nil {
		return nil, err
	}

	if err := c.writeVersion(result, plan.ReleaseVersion, opts.OverrideMinVersion,
		fmt.Sprintf("chore(release): %s", plan.ReleaseVersion)); err != nil {
		return nil, err
	}

	if err := c.tag(result, plan.TagName, fmt.Sprintf("Release %s", plan.ReleaseVersion)); err != nil {
		return nil, err
	}

	if plan.MustCreateBranch {
		if err := c.createBranch(result, maintenance, plan.TargetBranch); err != nil {
			return nil, err
		}
	} else if plan.TargetBranch != maintenance {
		c.logf(opts, "maintenance branch %s already exists, continuing\n", maintenance)
	}

	if err := c.pushBranch(ctx, result, plan.TargetBranch); err != nil {
		return nil, err
	}
	if plan.MustCreateBranch {
		if err := c.pushBranch(ctx, result, maintenance); err != nil {
			return nil, err
		}
	}
	if err := c.pushTag(ctx, result, plan.TagName); err != nil {
		return nil, err
	}

	// Major/minor releases move the working branch on to the next snapshot.
	if plan.NextVersion != "" {
		if err := c.writeVersion(result, plan.NextVersion, "",
			fmt.Sprintf("chore: begin %s", plan.NextVersion)); err != nil {
			return nil, err
		}
		if err := c.pushBranch(ctx, result, plan.TargetBranch); err != nil {
			return nil, err
		}
	}

	result.Tag = plan.TagName
	return result, nil
}

func (c *Cutter) checkout(_ context.Context, result *model.CutResult, branch string) error {
	if c.record(result, "checkout", branch) {
		return nil
	}
	return c.repo.CheckoutBranch(branch)
}

func (c *Cutter) createBranch(result *model.CutResult, name, back string) error {
	if c.record(result, "branch", name) {
		return nil
	}
	if err := c.repo.CreateBranch(name); err != nil {
		return err
	}
	// CreateBranch checks the new branch out; return to the target.
	return c.repo.CheckoutBranch(back)
}

func (c *Cutter) tag(result *model.CutResult, name, message string) error {
	if c.record(result, "tag", name) {
		return nil
	}
	return c.repo.CreateAnnotatedTag(name, message)
}

func (c *Cutter) pushBranch(ctx context.Context, result *model.CutResult, name string) error {
	if c.record(result, "push", "branch "+name) {
		return nil
	}
	return c.repo.PushBranch(ctx, name)
}

func (c *Cutter) pushTag(ctx context.Context, result *model.CutResult, name string) error {
	if c.record(result, "push", "tag "+name) {
		return nil
	}
	return c.repo.PushTag(ctx, name)
}

// writeVersion updates the property file and commits it. A repository
// without a property file skips the step.
func (c *Cutter) writeVersion(result *model.CutResult, version, minVersion, message string) error {
	path := filepath.Join(c.repoPath, c.policy.PropertyFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	if c.record(result, "commit", message) {
		return nil
	}

	f, err := props.Load(path)
	if err != nil {
		return err
	}
	f.Set(c.policy.VersionKey, version)
	if minVersion != "" {
		f.Set(c.policy.MinVersionKey, minVersion)
	}
	if err := f.Save(); err != nil {
		return err
	}

	return c.repo.CommitFile(c.policy.PropertyFile, message)
}

// record appends the action to the result and reports whether execution
// should be skipped (dry run).
func (c *Cutter) record(result *model.CutResult, kind, detail string) bool {
	result.Actions = append(result.Actions, model.Action{
		Kind:    kind,
		Detail:  detail,
		Skipped: c.dryRun,
	})
	return c.dryRun
}

func (c *Cutter) logf(opts Options, format string, args ...any) {
	if opts.Verbose != nil {
		fmt.Fprintf(opts.Verbose, format, args...)
	}
}
