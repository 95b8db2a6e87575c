package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/grokify/releaseconductor/internal/cutter"
	"github.com/grokify/releaseconductor/internal/gitrepo"
	"github.com/grokify/releaseconductor/internal/hotfix"
	"github.com/grokify/releaseconductor/internal/plan"
	"github.com/grokify/releaseconductor/internal/policy"
	"github.com/grokify/releaseconductor/internal/props"
	"github.com/grokify/releaseconductor/internal/releaser"
	"github.com/grokify/releaseconductor/internal/report"
	"github.com/grokify/releaseconductor/pkg/model"
)

var cutCmd = &cobra.Command{
	Use:   "cut <releaseVersion> [nextVersion]",
	Short: "Validate and cut a release for the current checkout",
	Long: `Validate a proposed release version against the commits since the last
tag and cut the release: commit the version metadata, tag, and push.

Supplying a next snapshot version selects major/minor mode (cut from the
default branch, creating the maintenance branch for the new line).
Omitting it selects patch mode, which requires the maintenance branch
for the release's minor line to already exist on the remote and to be
the branch checked out: the commits to classify are read from HEAD.

Use --dry-run to log every mutating action without executing it.

Examples:
  # Cut a minor release
  releaseconductor cut 1.3.0 1.4.0-SNAPSHOT

  # See what a patch release would do first
  releaseconductor cut 1.2.4 --dry-run

  # Patch release on an existing maintenance branch
  releaseconductor cut 1.2.4

  # Hotfix: replay two commits onto v2.4.2 and tag v2.4.3
  releaseconductor cut 2.4.3 --commits abc123,def456`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCut,
}

func init() {
	rootCmd.AddCommand(cutCmd)

	cutCmd.Flags().String("commits", "", "Comma-separated commit ids; switches the run into hotfix mode")
	cutCmd.Flags().String("override-min-version", "", "Override the minimum-compatible-version property")
	cutCmd.Flags().Bool("publish-release", false, "Also publish a GitHub release for the new tag")

	_ = viper.BindPFlag("cut.commits", cutCmd.Flags().Lookup("commits"))
	_ = viper.BindPFlag("cut.override-min-version", cutCmd.Flags().Lookup("override-min-version"))
	_ = viper.BindPFlag("cut.publish-release", cutCmd.Flags().Lookup("publish-release"))
}

func runCut(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	releaseVersion := args[0]
	nextVersion := ""
	if len(args) > 1 {
		nextVersion = args[1]
	}

	pol, err := loadPolicy()
	if err != nil {
		return err
	}

	repoPath := viper.GetString("repo")
	repo, err := gitrepo.Open(repoPath, viper.GetString("remote"))
	if err != nil {
		return err
	}

	dryRun := viper.GetBool("dry-run")
	verbose := viper.GetBool("verbose")
	formatter := report.ForFormat(viper.GetString("format"))

	// An explicit commit list bypasses the bump and branch policies entirely.
	if commitsFlag := viper.GetString("cut.commits"); commitsFlag != "" {
		return runHotfix(ctx, repo, pol, releaseVersion, commitsFlag, repoPath, dryRun, formatter)
	}

	req := plan.Request{
		ReleaseVersion: releaseVersion,
		NextVersion:    nextVersion,
		CurrentVersion: currentVersion(repoPath, pol),
	}

	releasePlan, err := plan.New(repo, pol).BuildPlan(ctx, req)
	if errors.Is(err, model.ErrNothingToRelease) {
		result := &model.CutResult{
			Timestamp: time.Now(),
			DryRun:    dryRun,
			Repo:      repoPath,
			NoOp:      true,
			Reason:    "no commits since last tag",
		}
		return printCutResult(formatter, result)
	}
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Cutting %s (%s) from %s\n",
			releasePlan.ReleaseVersion, releasePlan.ReleaseType, releasePlan.TargetBranch)
	}

	opts := cutter.Options{
		OverrideMinVersion: viper.GetString("cut.override-min-version"),
	}
	if verbose {
		opts.Verbose = os.Stderr
	}

	result, err := cutter.New(repo, repoPath, pol, dryRun).Execute(ctx, releasePlan, opts)
	if err != nil {
		return err
	}

	if viper.GetBool("cut.publish-release") && !dryRun {
		url, err := publishRelease(ctx, releasePlan)
		if err != nil {
			return err
		}
		result.ReleaseURL = url
	}

	return printCutResult(formatter, result)
}

func runHotfix(ctx context.Context, repo *gitrepo.GoGitRepo, pol *policy.ReleasePolicy,
	targetVersion, commitsFlag, repoPath string, dryRun bool, formatter report.Formatter) error {
	var commitIDs []string
	for _, id := range strings.Split(commitsFlag, ",") {
		if id = strings.TrimSpace(id); id != "" {
			commitIDs = append(commitIDs, id)
		}
	}

	req, err := hotfix.NewRequest(targetVersion, commitIDs, pol)
	if err != nil {
		return err
	}

	result, err := hotfix.New(repo, pol, dryRun).Apply(ctx, req)
	if err != nil {
		return err
	}
	result.Repo = repoPath

	output, err := formatter.FormatHotfixResult(result)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	fmt.Print(output)
	return nil
}

func publishRelease(ctx context.Context, releasePlan *model.ReleasePlan) (string, error) {
	token := viper.GetString("token")
	if token == "" {
		return "", fmt.Errorf("GitHub token required to publish a release. Set GITHUB_TOKEN or use --token flag")
	}

	repoRef := model.ParseRepoRef(viper.GetString("github-repo"))
	if repoRef.Owner == "" {
		return "", fmt.Errorf("GitHub repository required to publish a release. Set github-repo to owner/repo")
	}

	pub := releaser.NewGitHub(token)
	opts := releaser.DefaultOptions()

	rel, err := releaser.PublishForTag(ctx, pub, &model.ReleaseRequest{
		Repo:          repoRef,
		TagName:       releasePlan.TagName,
		Name:          releasePlan.TagName,
		Draft:         opts.Draft,
		Prerelease:    opts.Prerelease,
		GenerateNotes: opts.GenerateNotes,
	})
	if err != nil {
		return "", err
	}
	return rel.HTMLURL, nil
}

func printCutResult(formatter report.Formatter, result *model.CutResult) error {
	output, err := formatter.FormatCutResult(result)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	fmt.Print(output)
	return nil
}

// loadPolicy returns the configured release policy, or the default one.
func loadPolicy() (*policy.ReleasePolicy, error) {
	if path := viper.GetString("policy"); path != "" {
		return policy.LoadFromFile(path)
	}
	return policy.Default(), nil
}

// currentVersion reads the project version recorded in the property file, or
// "" when the repository carries none.
func currentVersion(repoPath string, pol *policy.ReleasePolicy) string {
	f, err := props.Load(filepath.Join(repoPath, pol.PropertyFile))
	if err != nil {
		return ""
	}
	v, _ := f.Get(pol.VersionKey)
	return v
}
