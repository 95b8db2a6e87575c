package model

// ReleasePlan is the validated decision of the bump and branch policies.
// It is consumed by the cutter, which performs the actual VCS operations.
type ReleasePlan struct {
	ReleaseVersion   string      `json:"releaseVersion"`
	NextVersion      string      `json:"nextVersion,omitempty"` // snapshot version, empty in patch mode
	ReleaseType      ReleaseType `json:"releaseType"`
	Bump             Bump        `json:"bump"`
	TargetBranch     string      `json:"targetBranch"`
	MustCreateBranch bool        `json:"mustCreateBranch"` // maintenance branch to create for a new minor line
	TagName          string      `json:"tagName"`
	PreviousTag      string      `json:"previousTag,omitempty"`
	CommitCount      int         `json:"commitCount"`
}

// HotfixRequest describes an out-of-band patch built by replaying explicit
// commits onto the previous patch tag.
type HotfixRequest struct {
	TargetVersion string   `json:"targetVersion"`
	BaseTag       string   `json:"baseTag"`
	CommitIDs     []string `json:"commitIds"`
}
