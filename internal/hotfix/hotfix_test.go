package hotfix

import (
	"context"
	"errors"
	"testing"

	"github.com/grokify/releaseconductor/internal/policy"
	"github.com/grokify/releaseconductor/pkg/model"
)

type fakeRepo struct {
	tags        map[string]bool
	conflictOn  string
	detachedAt  string
	picked      []string
	resetTo     string
	createdTags []string
	pushedTags  []string
}

func newFakeRepo(tags ...string) *fakeRepo {
	m := make(map[string]bool)
	for _, t := range tags {
		m[t] = true
	}
	return &fakeRepo{tags: m}
}

func (f *fakeRepo) TagExists(name string) (bool, error) {
	return f.tags[name], nil
}

func (f *fakeRepo) CheckoutDetach(rev string) error {
	f.detachedAt = rev
	return nil
}

func (f *fakeRepo) CherryPick(_ context.Context, commitID string) error {
	if commitID == f.conflictOn {
		return errors.New("cherry-pick c2 failed: could not apply")
	}
	f.picked = append(f.picked, commitID)
	return nil
}

func (f *fakeRepo) ResetHard(rev string) error {
	f.resetTo = rev
	f.picked = nil
	return nil
}

func (f *fakeRepo) CreateAnnotatedTag(name, _ string) error {
	f.createdTags = append(f.createdTags, name)
	f.tags[name] = true
	return nil
}

func (f *fakeRepo) PushTag(_ context.Context, name string) error {
	f.pushedTags = append(f.pushedTags, name)
	return nil
}

func TestNewRequest(t *testing.T) {
	pol := policy.Default()

	req, err := NewRequest("2.4.3", []string{"c1", "c2"}, pol)
	if err != nil {
		t.Fatalf("NewRequest returned error: %v", err)
	}

	if req.BaseTag != "v2.4.2" {
		t.Errorf("BaseTag = %s, want v2.4.2", req.BaseTag)
	}
	if req.TargetVersion != "2.4.3" {
		t.Errorf("TargetVersion = %s", req.TargetVersion)
	}
}

func TestNewRequest_Invalid(t *testing.T) {
	pol := policy.Default()

	if _, err := NewRequest("2.4.0", []string{"c1"}, pol); err == nil {
		t.Error("patch zero target expected error")
	}
	if _, err := NewRequest("2.4.3", nil, pol); err == nil {
		t.Error("empty commit list expected error")
	}
	if _, err := NewRequest("2.4.3-SNAPSHOT", []string{"c1"}, pol); err == nil {
		t.Error("snapshot target expected error")
	}
	if _, err := NewRequest("not-a-version", []string{"c1"}, pol); err == nil {
		t.Error("malformed target expected error")
	}
}

func TestApply_Success(t *testing.T) {
	repo := newFakeRepo("v2.4.2")
	o := New(repo, policy.Default(), false)

	req, err := NewRequest("2.4.3", []string{"c1", "c2"}, policy.Default())
	if err != nil {
		t.Fatal(err)
	}

	result, err := o.Apply(context.Background(), req)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	if result.Tag != "v2.4.3" {
		t.Errorf("Tag = %s, want v2.4.3", result.Tag)
	}
	if repo.detachedAt != "v2.4.2" {
		t.Errorf("detached at %s, want v2.4.2", repo.detachedAt)
	}
	if len(repo.picked) != 2 {
		t.Errorf("picked %d commits, want 2", len(repo.picked))
	}
	if len(repo.createdTags) != 1 || repo.createdTags[0] != "v2.4.3" {
		t.Errorf("createdTags = %v", repo.createdTags)
	}
	if len(repo.pushedTags) != 1 || repo.pushedTags[0] != "v2.4.3" {
		t.Errorf("pushedTags = %v", repo.pushedTags)
	}
}

func TestApply_ConflictRollsBack(t *testing.T) {
	repo := newFakeRepo("v2.4.2")
	repo.conflictOn = "c2"
	o := New(repo, policy.Default(), false)

	req, err := NewRequest("2.4.3", []string{"c1", "c2", "c3"}, policy.Default())
	if err != nil {
		t.Fatal(err)
	}

	_, err = o.Apply(context.Background(), req)

	var conflict *model.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflict.CommitID != "c2" {
		t.Errorf("CommitID = %s, want c2", conflict.CommitID)
	}
	if repo.resetTo != "v2.4.2" {
		t.Errorf("resetTo = %s, want v2.4.2", repo.resetTo)
	}
	if len(repo.picked) != 0 {
		t.Errorf("picked = %v, want none surviving rollback", repo.picked)
	}
	if len(repo.createdTags) != 0 {
		t.Errorf("createdTags = %v, want none", repo.createdTags)
	}
}

func TestApply_MissingBaseTag(t *testing.T) {
	repo := newFakeRepo() // no tags at all
	o := New(repo, policy.Default(), false)

	req, err := NewRequest("2.4.3", []string{"c1"}, policy.Default())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := o.Apply(context.Background(), req); err == nil {
		t.Error("missing base tag expected error")
	}
}

func TestApply_TargetTagCollision(t *testing.T) {
	repo := newFakeRepo("v2.4.2", "v2.4.3")
	o := New(repo, policy.Default(), false)

	req, err := NewRequest("2.4.3", []string{"c1"}, policy.Default())
	if err != nil {
		t.Fatal(err)
	}

	_, err = o.Apply(context.Background(), req)

	var exists *model.ReleaseExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("expected ReleaseExistsError, got %v", err)
	}
}

func TestApply_DryRun(t *testing.T) {
	repo := newFakeRepo("v2.4.2")
	o := New(repo, policy.Default(), true)

	req, err := NewRequest("2.4.3", []string{"c1", "c2"}, policy.Default())
	if err != nil {
		t.Fatal(err)
	}

	result, err := o.Apply(context.Background(), req)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	if repo.detachedAt != "" || len(repo.picked) != 0 || len(repo.createdTags) != 0 || len(repo.pushedTags) != 0 {
		t.Error("dry run must not touch the repository")
	}
	for _, a := range result.Actions {
		if !a.Skipped {
			t.Errorf("action %s %s not marked skipped in dry run", a.Kind, a.Detail)
		}
	}
}
