package gitrepo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

type testRepo struct {
	path string
	repo *git.Repository
}

func initRepo(t *testing.T) *testRepo {
	t.Helper()

	path := t.TempDir()
	repo, err := git.PlainInit(path, false)
	if err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}

	return &testRepo{path: path, repo: repo}
}

func (tr *testRepo) commit(t *testing.T, filename, message string) string {
	t.Helper()

	if err := os.WriteFile(filepath.Join(tr.path, filename), []byte(message), 0644); err != nil {
		t.Fatal(err)
	}

	wt, err := tr.repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := wt.Add(filename); err != nil {
		t.Fatal(err)
	}

	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatal(err)
	}
	return hash.String()
}

func (tr *testRepo) tag(t *testing.T, name string) {
	t.Helper()

	head, err := tr.repo.Head()
	if err != nil {
		t.Fatal(err)
	}

	_, err = tr.repo.CreateTag(name, head.Hash(), &git.CreateTagOptions{
		Tagger:  &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()},
		Message: name,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func open(t *testing.T, tr *testRepo) *GoGitRepo {
	t.Helper()

	r, err := Open(tr.path, "origin")
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	return r
}

func TestLatestTag(t *testing.T) {
	tr := initRepo(t)
	tr.commit(t, "a.txt", "chore: first")
	tr.tag(t, "v1.0.0")
	tr.commit(t, "b.txt", "feat: second")
	tr.tag(t, "v1.1.0")

	r := open(t, tr)

	latest, err := r.LatestTag()
	if err != nil {
		t.Fatalf("LatestTag returned error: %v", err)
	}
	if latest != "v1.1.0" {
		t.Errorf("LatestTag = %s, want v1.1.0", latest)
	}
}

func TestLatestTag_NoTags(t *testing.T) {
	tr := initRepo(t)
	tr.commit(t, "a.txt", "chore: first")

	r := open(t, tr)

	latest, err := r.LatestTag()
	if err != nil {
		t.Fatalf("LatestTag returned error: %v", err)
	}
	if latest != "" {
		t.Errorf("LatestTag = %q, want empty", latest)
	}
}

func TestTagExists(t *testing.T) {
	tr := initRepo(t)
	tr.commit(t, "a.txt", "chore: first")
	tr.tag(t, "v1.0.0")

	r := open(t, tr)

	exists, err := r.TagExists("v1.0.0")
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Error("TagExists(v1.0.0) = false, want true")
	}

	exists, err = r.TagExists("v9.9.9")
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("TagExists(v9.9.9) = true, want false")
	}
}

func TestCommitsSince(t *testing.T) {
	tr := initRepo(t)
	tr.commit(t, "a.txt", "chore: first")
	tr.tag(t, "v1.0.0")
	tr.commit(t, "b.txt", "feat: add b")
	tr.commit(t, "c.txt", "fix: repair c")

	r := open(t, tr)

	commits, err := r.CommitsSince("v1.0.0")
	if err != nil {
		t.Fatalf("CommitsSince returned error: %v", err)
	}
	if len(commits) != 2 {
		t.Fatalf("CommitsSince = %d commits, want 2", len(commits))
	}
	// Newest first.
	if commits[0].Subject != "fix: repair c" {
		t.Errorf("commits[0].Subject = %q", commits[0].Subject)
	}
	if commits[1].Subject != "feat: add b" {
		t.Errorf("commits[1].Subject = %q", commits[1].Subject)
	}
}

func TestCommitsSince_WholeHistory(t *testing.T) {
	tr := initRepo(t)
	tr.commit(t, "a.txt", "chore: first")
	tr.commit(t, "b.txt", "chore: second")

	r := open(t, tr)

	commits, err := r.CommitsSince("")
	if err != nil {
		t.Fatalf("CommitsSince returned error: %v", err)
	}
	if len(commits) != 2 {
		t.Errorf("CommitsSince(\"\") = %d commits, want 2", len(commits))
	}
}

func TestResetHard_RestoresTagState(t *testing.T) {
	tr := initRepo(t)
	base := tr.commit(t, "a.txt", "chore: base")
	tr.tag(t, "v1.0.0")
	tr.commit(t, "b.txt", "feat: later work")

	r := open(t, tr)

	if err := r.ResetHard("v1.0.0"); err != nil {
		t.Fatalf("ResetHard returned error: %v", err)
	}

	head, err := r.HeadSHA()
	if err != nil {
		t.Fatal(err)
	}
	if head != base {
		t.Errorf("HeadSHA after reset = %s, want %s", head, base)
	}
}

func TestCheckoutDetach_PeelsAnnotatedTag(t *testing.T) {
	tr := initRepo(t)
	base := tr.commit(t, "a.txt", "chore: base")
	tr.tag(t, "v1.0.0")
	tr.commit(t, "b.txt", "feat: later work")

	r := open(t, tr)

	if err := r.CheckoutDetach("v1.0.0"); err != nil {
		t.Fatalf("CheckoutDetach returned error: %v", err)
	}

	head, err := r.HeadSHA()
	if err != nil {
		t.Fatal(err)
	}
	if head != base {
		t.Errorf("HeadSHA after detach = %s, want %s", head, base)
	}
}

func TestCreateBranchAndCheckout(t *testing.T) {
	tr := initRepo(t)
	tr.commit(t, "a.txt", "chore: base")

	r := open(t, tr)

	if err := r.CreateBranch("releases/v1.0.x"); err != nil {
		t.Fatalf("CreateBranch returned error: %v", err)
	}

	// Creating again must fail; checking out again must not.
	if err := r.CreateBranch("releases/v1.0.x"); err == nil {
		t.Error("CreateBranch on existing branch expected error")
	}
	if err := r.CheckoutBranch("releases/v1.0.x"); err != nil {
		t.Errorf("CheckoutBranch returned error: %v", err)
	}
}

func TestCommitFileAndTag(t *testing.T) {
	tr := initRepo(t)
	tr.commit(t, "a.txt", "chore: base")

	r := open(t, tr)

	if err := os.WriteFile(filepath.Join(tr.path, "gradle.properties"), []byte("version=1.1.0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := r.CommitFile("gradle.properties", "chore: release 1.1.0"); err != nil {
		t.Fatalf("CommitFile returned error: %v", err)
	}

	if err := r.CreateAnnotatedTag("v1.1.0", "release 1.1.0"); err != nil {
		t.Fatalf("CreateAnnotatedTag returned error: %v", err)
	}

	exists, err := r.TagExists("v1.1.0")
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Error("tag v1.1.0 missing after CreateAnnotatedTag")
	}

	commits, err := r.CommitsSince("")
	if err != nil {
		t.Fatal(err)
	}
	if commits[0].Subject != "chore: release 1.1.0" {
		t.Errorf("commits[0].Subject = %q", commits[0].Subject)
	}
}
