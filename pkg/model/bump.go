package model

// Bump classifies a commit set by the strongest version bump it requires.
type Bump string

const (
	BumpBreaking Bump = "breaking"
	BumpFeature  Bump = "feature"
	BumpFix      Bump = "fix"
	BumpOther    Bump = "other"
)

// Severity returns the total order used to pick the dominant classification:
// breaking > feature > fix > other.
func (b Bump) Severity() int {
	switch b {
	case BumpBreaking:
		return 3
	case BumpFeature:
		return 2
	case BumpFix:
		return 1
	default:
		return 0
	}
}

// Max returns the more severe of the two classifications.
func (b Bump) Max(other Bump) Bump {
	if other.Severity() > b.Severity() {
		return other
	}
	return b
}

// ReleaseType is the shape of the release being cut.
type ReleaseType string

const (
	ReleaseTypeMajor ReleaseType = "major"
	ReleaseTypeMinor ReleaseType = "minor"
	ReleaseTypePatch ReleaseType = "patch"
)
