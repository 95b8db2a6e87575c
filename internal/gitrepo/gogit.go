package gitrepo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/grokify/releaseconductor/internal/semver"
	"github.com/grokify/releaseconductor/pkg/model"
)

// GoGitRepo implements Repo on a local checkout via go-git. The one
// operation go-git does not provide, cherry-pick, shells out to the git
// binary.
type GoGitRepo struct {
	path   string
	remote string
	repo   *git.Repository
}

// Open opens the repository at path with the named remote.
func Open(path, remote string) (*GoGitRepo, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", path, err)
	}

	return &GoGitRepo{
		path:   path,
		remote: remote,
		repo:   repo,
	}, nil
}

// Path returns the checkout path.
func (r *GoGitRepo) Path() string {
	return r.path
}

// Tags returns every tag name in the repository.
func (r *GoGitRepo) Tags() ([]string, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}

	return names, nil
}

// LatestTag returns the highest semver tag, or "" when none exist.
func (r *GoGitRepo) LatestTag() (string, error) {
	names, err := r.Tags()
	if err != nil {
		return "", err
	}
	return semver.FindLatestVersion(names), nil
}

// TagExists reports whether a tag is present in the tag namespace.
func (r *GoGitRepo) TagExists(name string) (bool, error) {
	_, err := r.repo.Tag(name)
	if errors.Is(err, git.ErrTagNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up tag %s: %w", name, err)
	}
	return true, nil
}

// RemoteBranchExists reports whether a branch exists on the remote.
func (r *GoGitRepo) RemoteBranchExists(ctx context.Context, name string) (bool, error) {
	remote, err := r.repo.Remote(r.remote)
	if err != nil {
		return false, fmt.Errorf("failed to resolve remote %s: %w", r.remote, err)
	}

	refs, err := remote.ListContext(ctx, &git.ListOptions{})
	if err != nil {
		return false, fmt.Errorf("failed to list remote refs: %w", err)
	}

	want := plumbing.NewBranchReferenceName(name)
	for _, ref := range refs {
		if ref.Name() == want {
			return true, nil
		}
	}
	return false, nil
}

// CommitsSince returns the commits from HEAD back to (excluding) ref, newest
// first. An empty ref returns the entire history.
func (r *GoGitRepo) CommitsSince(ref string) ([]model.Commit, error) {
	head, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	var stop plumbing.Hash
	if ref != "" {
		h, err := r.resolveCommit(ref)
		if err != nil {
			return nil, err
		}
		stop = h
	}

	iter, err := r.repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("failed to read log: %w", err)
	}
	defer iter.Close()

	var commits []model.Commit
	for {
		c, err := iter.Next()
		if err != nil {
			// End of history; with a stop ref we never reach it on a
			// disjoint history, which still means "everything since".
			break
		}
		if ref != "" && c.Hash == stop {
			break
		}
		commits = append(commits, convertCommit(c))
	}

	return commits, nil
}

// HeadSHA returns the SHA of the current HEAD.
func (r *GoGitRepo) HeadSHA() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	return head.Hash().String(), nil
}

// CheckoutBranch checks out an existing branch.
func (r *GoGitRepo) CheckoutBranch(name string) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}

	err = wt.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
	})
	if err != nil {
		return fmt.Errorf("failed to checkout %s: %w", name, err)
	}
	return nil
}

// CheckoutDetach detaches HEAD at the given tag or revision.
func (r *GoGitRepo) CheckoutDetach(rev string) error {
	h, err := r.resolveCommit(rev)
	if err != nil {
		return err
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}

	err = wt.Checkout(&git.CheckoutOptions{Hash: h})
	if err != nil {
		return fmt.Errorf("failed to detach at %s: %w", rev, err)
	}
	return nil
}

// CreateBranch creates and checks out a new branch at HEAD.
func (r *GoGitRepo) CreateBranch(name string) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}

	err = wt.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
		Create: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create branch %s: %w", name, err)
	}
	return nil
}

// CommitFile stages one file and commits it.
func (r *GoGitRepo) CommitFile(path, message string) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}

	if _, err := wt.Add(path); err != nil {
		return fmt.Errorf("failed to stage %s: %w", path, err)
	}

	_, err = wt.Commit(message, &git.CommitOptions{
		Author: r.signature(),
	})
	if err != nil {
		return fmt.Errorf("failed to commit %s: %w", path, err)
	}
	return nil
}

// CreateAnnotatedTag creates an annotated tag at HEAD.
func (r *GoGitRepo) CreateAnnotatedTag(name, message string) error {
	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	_, err = r.repo.CreateTag(name, head.Hash(), &git.CreateTagOptions{
		Tagger:  r.signature(),
		Message: message,
	})
	if err != nil {
		return fmt.Errorf("failed to create tag %s: %w", name, err)
	}
	return nil
}

// PushBranch pushes a branch to the remote.
func (r *GoGitRepo) PushBranch(ctx context.Context, name string) error {
	spec := gitconfig.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", name, name))
	return r.push(ctx, spec)
}

// PushTag pushes a tag to the remote.
func (r *GoGitRepo) PushTag(ctx context.Context, name string) error {
	spec := gitconfig.RefSpec(fmt.Sprintf("refs/tags/%s:refs/tags/%s", name, name))
	return r.push(ctx, spec)
}

func (r *GoGitRepo) push(ctx context.Context, spec gitconfig.RefSpec) error {
	err := r.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: r.remote,
		RefSpecs:   []gitconfig.RefSpec{spec},
	})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to push %s: %w", spec, err)
	}
	return nil
}

// CherryPick applies one commit onto the current HEAD. go-git has no
// cherry-pick, so this shells out; on conflict the in-progress pick is
// aborted before the error is returned.
func (r *GoGitRepo) CherryPick(ctx context.Context, commitID string) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "git", "-C", r.path, "cherry-pick", commitID)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		abort := exec.CommandContext(ctx, "git", "-C", r.path, "cherry-pick", "--abort")
		_ = abort.Run()
		return fmt.Errorf("cherry-pick %s failed: %s", commitID, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// ResetHard resets the working tree and HEAD to a revision.
func (r *GoGitRepo) ResetHard(rev string) error {
	h, err := r.resolveCommit(rev)
	if err != nil {
		return err
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}

	err = wt.Reset(&git.ResetOptions{Mode: git.HardReset, Commit: h})
	if err != nil {
		return fmt.Errorf("failed to reset to %s: %w", rev, err)
	}
	return nil
}

// resolveCommit resolves a revision to a commit hash, peeling annotated tags.
func (r *GoGitRepo) resolveCommit(rev string) (plumbing.Hash, error) {
	h, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to resolve %s: %w", rev, err)
	}

	if tagObj, err := r.repo.TagObject(*h); err == nil {
		commit, err := tagObj.Commit()
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("failed to peel tag %s: %w", rev, err)
		}
		return commit.Hash, nil
	}

	return *h, nil
}

func (r *GoGitRepo) signature() *object.Signature {
	name, email := "releaseconductor", "releaseconductor@localhost"

	if cfg, err := r.repo.ConfigScoped(gitconfig.SystemScope); err == nil {
		if cfg.User.Name != "" {
			name = cfg.User.Name
		}
		if cfg.User.Email != "" {
			email = cfg.User.Email
		}
	}

	return &object.Signature{
		Name:  name,
		Email: email,
		When:  time.Now(),
	}
}

func convertCommit(c *object.Commit) model.Commit {
	subject := c.Message
	body := ""
	if idx := strings.Index(c.Message, "\n"); idx >= 0 {
		subject = c.Message[:idx]
		body = strings.TrimSpace(c.Message[idx+1:])
	}

	return model.Commit{
		SHA:       c.Hash.String(),
		Subject:   strings.TrimSpace(subject),
		Body:      body,
		Author:    c.Author.Name,
		Timestamp: c.Author.When,
	}
}
