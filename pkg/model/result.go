package model

import "time"

// Action is one mutating VCS/build operation performed (or, in dry-run mode,
// skipped) while executing a plan.
type Action struct {
	Kind    string `json:"kind"` // checkout, branch, commit, tag, push, cherry-pick, release
	Detail  string `json:"detail"`
	Skipped bool   `json:"skipped,omitempty"` // true in dry-run mode
}

// PlanResult is the output of planning without execution.
type PlanResult struct {
	Timestamp time.Time    `json:"timestamp"`
	Repo      string       `json:"repo"`
	Plan      *ReleasePlan `json:"plan,omitempty"`
	NoOp      bool         `json:"noOp"`
	Reason    string       `json:"reason,omitempty"`
}

// CutResult contains the outcome of executing (or dry-running) a release.
type CutResult struct {
	Timestamp  time.Time    `json:"timestamp"`
	DryRun     bool         `json:"dryRun"`
	Repo       string       `json:"repo"`
	Plan       *ReleasePlan `json:"plan,omitempty"`
	Actions    []Action     `json:"actions,omitempty"`
	NoOp       bool         `json:"noOp"`
	Reason     string       `json:"reason,omitempty"`
	Tag        string       `json:"tag,omitempty"`
	ReleaseURL string       `json:"releaseUrl,omitempty"`
}

// HotfixResult contains the outcome of a hotfix run.
type HotfixResult struct {
	Timestamp time.Time `json:"timestamp"`
	DryRun    bool      `json:"dryRun"`
	Repo      string    `json:"repo"`
	BaseTag   string    `json:"baseTag"`
	Tag       string    `json:"tag,omitempty"`
	Applied   []string  `json:"applied,omitempty"`
	Actions   []Action  `json:"actions,omitempty"`
}
