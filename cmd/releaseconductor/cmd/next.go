package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/grokify/releaseconductor/internal/classify"
	"github.com/grokify/releaseconductor/internal/gitrepo"
	"github.com/grokify/releaseconductor/internal/plan"
	"github.com/grokify/releaseconductor/internal/policy"
	"github.com/grokify/releaseconductor/internal/releaser"
	"github.com/grokify/releaseconductor/internal/report"
	"github.com/grokify/releaseconductor/internal/semver"
	"github.com/grokify/releaseconductor/pkg/model"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the release version the commits since the last tag call for",
	Long: `Classify the commits since the last tag (Conventional Commits) and
print the release version that classification calls for. Nothing is
validated against a proposed version and nothing is written; use the
output as the argument to cut.

With --github-repo, the latest tag is looked up on the hosted repository
instead of the local tag namespace; shallow CI clones are often
tag-stale.

Examples:
  releaseconductor next
  releaseconductor next --repo ../service --format json
  releaseconductor next --github-repo grokify/releaseconductor`,
	Args: cobra.NoArgs,
	RunE: runNext,
}

func init() {
	rootCmd.AddCommand(nextCmd)
}

func runNext(cmd *cobra.Command, args []string) error {
	pol, err := loadPolicy()
	if err != nil {
		return err
	}

	repoPath := viper.GetString("repo")
	repo, err := gitrepo.Open(repoPath, viper.GetString("remote"))
	if err != nil {
		return err
	}

	formatter := report.ForFormat(viper.GetString("format"))
	result := &model.PlanResult{
		Timestamp: time.Now(),
		Repo:      repoPath,
	}

	latestTag, err := repo.LatestTag()
	if err != nil {
		return err
	}
	if ghRepo := viper.GetString("github-repo"); ghRepo != "" {
		pub := releaser.NewGitHub(viper.GetString("token"))
		latestTag, err = pub.GetLatestTag(context.Background(), model.ParseRepoRef(ghRepo))
		if err != nil {
			return err
		}
	}

	commits, err := repo.CommitsSince(latestTag)
	if err != nil {
		return err
	}
	if len(commits) == 0 {
		result.NoOp = true
		result.Reason = "no commits since last tag"
		return printPlanResult(formatter, result)
	}

	current := baselineVersion(latestTag, repoPath, pol)
	bump := classify.Classify(commits)
	expected := plan.ExpectedNext(current, bump)

	result.Plan = &model.ReleasePlan{
		ReleaseVersion: expected.String(),
		ReleaseType:    releaseType(bump),
		Bump:           bump,
		TagName:        pol.TagName(expected),
		PreviousTag:    latestTag,
		CommitCount:    len(commits),
	}
	return printPlanResult(formatter, result)
}

// baselineVersion picks the version the bump applies to: the latest tag when
// one exists, else the working version recorded in the property file, else
// zero.
func baselineVersion(latestTag, repoPath string, pol *policy.ReleasePolicy) *semver.Version {
	if latestTag != "" {
		if v, err := semver.Parse(latestTag); err == nil {
			return v
		}
	}
	if raw := currentVersion(repoPath, pol); raw != "" {
		if v, err := semver.Parse(raw); err == nil {
			return v.Base()
		}
	}
	return &semver.Version{}
}

func releaseType(bump model.Bump) model.ReleaseType {
	switch bump {
	case model.BumpBreaking:
		return model.ReleaseTypeMajor
	case model.BumpFeature:
		return model.ReleaseTypeMinor
	default:
		return model.ReleaseTypePatch
	}
}

func printPlanResult(formatter report.Formatter, result *model.PlanResult) error {
	output, err := formatter.FormatPlanResult(result)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	fmt.Print(output)
	return nil
}
