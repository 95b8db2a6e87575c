package plan

import (
	"fmt"

	"github.com/grokify/releaseconductor/internal/semver"
)

// checkCoherence validates the proposed release against the version currently
// recorded in the build metadata.
//
// The two patch rules are intentionally asymmetric: a SNAPSHOT rejects its own
// minor line as well as later ones, a stable version rejects only later ones.
// That mirrors the established release process; do not unify without product
// sign-off.
func checkCoherence(release, current *semver.Version, patchMode bool) error {
	if current == nil {
		return nil
	}

	if !patchMode {
		if !current.Snapshot {
			return fmt.Errorf("recorded project version %s is not a snapshot; major/minor releases cut from an in-development version", current)
		}
		if !release.Base().Equal(current.Base()) {
			return fmt.Errorf("release version %s does not match the current snapshot %s", release.Base(), current)
		}
		return nil
	}

	if current.Snapshot {
		if !lineBefore(release, current) {
			return fmt.Errorf("patch release %s targets the unreleased line %s or later; patch an older maintenance line instead", release.Base(), current.MinorLine())
		}
		return nil
	}

	if lineAfter(release, current) {
		return fmt.Errorf("patch release %s targets minor line %s, which is ahead of the current version %s", release.Base(), release.MinorLine(), current)
	}
	return nil
}

// lineBefore reports whether a's MAJOR.MINOR line is strictly older than b's.
func lineBefore(a, b *semver.Version) bool {
	if a.Major != b.Major {
		return a.Major < b.Major
	}
	return a.Minor < b.Minor
}

// lineAfter reports whether a's MAJOR.MINOR line is strictly newer than b's.
func lineAfter(a, b *semver.Version) bool {
	return lineBefore(b, a)
}
