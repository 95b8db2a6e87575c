package plan

import (
	"github.com/grokify/releaseconductor/internal/semver"
	"github.com/grokify/releaseconductor/pkg/model"
)

// ExpectedNext computes the version the commit classification calls for.
// The result is bare: a tag prefix on the baseline must not leak into
// comparisons or diagnostics against the proposed version.
func ExpectedNext(current *semver.Version, bump model.Bump) *semver.Version {
	var next *semver.Version
	switch bump {
	case model.BumpBreaking:
		next = current.BumpMajor()
	case model.BumpFeature:
		next = current.BumpMinor()
	default:
		next = current.BumpPatch()
	}
	next.Prefix = ""
	return next
}

// ValidateProposed checks the proposed release version against the expected
// one. Equality is the exact numeric triple; there is no partial credit.
func ValidateProposed(proposed, expected *semver.Version, bump model.Bump) error {
	if proposed.Base().Equal(expected.Base()) {
		return nil
	}
	return &model.VersionMismatchError{
		Expected: expected.Base().String(),
		Proposed: proposed.Base().String(),
		Bump:     bump,
	}
}

// releaseTypeFor maps a classification to the release type it produces.
func releaseTypeFor(bump model.Bump) model.ReleaseType {
	switch bump {
	case model.BumpBreaking:
		return model.ReleaseTypeMajor
	case model.BumpFeature:
		return model.ReleaseTypeMinor
	default:
		return model.ReleaseTypePatch
	}
}
