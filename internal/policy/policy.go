// Package policy holds the release policy configuration: branch naming,
// snapshot suffix, and the build-metadata keys the cutter reads and writes.
package policy

import (
	"fmt"

	"github.com/grokify/releaseconductor/internal/semver"
)

// ReleasePolicy defines the conventions one repository releases under.
type ReleasePolicy struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`

	// Branching
	DefaultBranch string `json:"defaultBranch" yaml:"defaultBranch"`
	BranchPattern string `json:"branchPattern" yaml:"branchPattern"` // fmt pattern over MAJOR.MINOR
	Remote        string `json:"remote" yaml:"remote"`

	// Tagging
	TagPrefix string `json:"tagPrefix" yaml:"tagPrefix"`

	// Build metadata
	PropertyFile  string `json:"propertyFile" yaml:"propertyFile"`
	VersionKey    string `json:"versionKey" yaml:"versionKey"`
	MinVersionKey string `json:"minVersionKey" yaml:"minVersionKey"`
}

// Default returns the policy used when no policy file is configured.
func Default() *ReleasePolicy {
	return &ReleasePolicy{
		Name:          "default",
		Description:   "Trunk-based releases with releases/vM.N.x maintenance branches",
		DefaultBranch: "main",
		BranchPattern: "releases/v%s.x",
		Remote:        "origin",
		TagPrefix:     "v",
		PropertyFile:  "gradle.properties",
		VersionKey:    "version",
		MinVersionKey: "minCompatibleVersion",
	}
}

// MaintenanceBranch returns the maintenance branch name for a version's
// MAJOR.MINOR line, e.g. releases/v2.4.x for 2.4.7.
func (p *ReleasePolicy) MaintenanceBranch(v *semver.Version) string {
	return fmt.Sprintf(p.BranchPattern, v.MinorLine())
}

// TagName returns the tag name for a release version, e.g. v2.4.7.
func (p *ReleasePolicy) TagName(v *semver.Version) string {
	return fmt.Sprintf("%s%d.%d.%d", p.TagPrefix, v.Major, v.Minor, v.Patch)
}
