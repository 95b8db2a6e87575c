package semver

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/grokify/releaseconductor/pkg/model"
)

// SnapshotSuffix marks an in-development version that must not be tagged.
const SnapshotSuffix = "-SNAPSHOT"

// Version represents a semantic version.
type Version struct {
	Major    int
	Minor    int
	Patch    int
	Snapshot bool
	Prefix   string // "v" or empty
}

// Parse parses a version string into a Version struct.
// The format is strict: MAJOR.MINOR.PATCH with an optional leading "v" and an
// optional -SNAPSHOT suffix. Missing components are an error, not zero.
func Parse(v string) (*Version, error) {
	orig := v
	ver := &Version{}

	if strings.HasPrefix(v, "v") {
		ver.Prefix = "v"
		v = strings.TrimPrefix(v, "v")
	}

	if strings.HasSuffix(v, SnapshotSuffix) {
		ver.Snapshot = true
		v = strings.TrimSuffix(v, SnapshotSuffix)
	}

	parts := strings.Split(v, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: %q must be MAJOR.MINOR.PATCH", model.ErrInvalidFormat, orig)
	}

	var err error

	ver.Major, err = parseComponent(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid major component in %q", model.ErrInvalidFormat, orig)
	}

	ver.Minor, err = parseComponent(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid minor component in %q", model.ErrInvalidFormat, orig)
	}

	ver.Patch, err = parseComponent(parts[2])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid patch component in %q", model.ErrInvalidFormat, orig)
	}

	return ver, nil
}

// parseComponent accepts decimal digit runs only; Atoi would let a sign
// through ("+2").
func parseComponent(s string) (int, error) {
	n, err := strconv.ParseUint(s, 10, 31)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// String returns the version as a string.
func (v *Version) String() string {
	s := fmt.Sprintf("%s%d.%d.%d", v.Prefix, v.Major, v.Minor, v.Patch)
	if v.Snapshot {
		s += SnapshotSuffix
	}
	return s
}

// Base returns the version with the snapshot flag cleared.
func (v *Version) Base() *Version {
	return &Version{
		Major:  v.Major,
		Minor:  v.Minor,
		Patch:  v.Patch,
		Prefix: v.Prefix,
	}
}

// MinorLine returns the "MAJOR.MINOR" line the version belongs to.
func (v *Version) MinorLine() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// BumpMajor increments the major version and resets minor and patch.
func (v *Version) BumpMajor() *Version {
	return &Version{
		Major:  v.Major + 1,
		Minor:  0,
		Patch:  0,
		Prefix: v.Prefix,
	}
}

// BumpMinor increments the minor version and resets patch.
func (v *Version) BumpMinor() *Version {
	return &Version{
		Major:  v.Major,
		Minor:  v.Minor + 1,
		Patch:  0,
		Prefix: v.Prefix,
	}
}

// BumpPatch increments the patch version.
func (v *Version) BumpPatch() *Version {
	return &Version{
		Major:  v.Major,
		Minor:  v.Minor,
		Patch:  v.Patch + 1,
		Prefix: v.Prefix,
	}
}

// Compare compares two versions.
// Returns -1 if v < other, 0 if v == other, 1 if v > other.
// A snapshot sorts below the release of the same triple.
func (v *Version) Compare(other *Version) int {
	if v.Major != other.Major {
		if v.Major < other.Major {
			return -1
		}
		return 1
	}

	if v.Minor != other.Minor {
		if v.Minor < other.Minor {
			return -1
		}
		return 1
	}

	if v.Patch != other.Patch {
		if v.Patch < other.Patch {
			return -1
		}
		return 1
	}

	if v.Snapshot && !other.Snapshot {
		return -1
	}
	if !v.Snapshot && other.Snapshot {
		return 1
	}

	return 0
}

// Equal reports whether the two versions have the same numeric triple and
// snapshot flag. The prefix is ignored.
func (v *Version) Equal(other *Version) bool {
	return v.Compare(other) == 0
}

// SameLine reports whether both versions are on the same MAJOR.MINOR line.
func (v *Version) SameLine(other *Version) bool {
	return v.Major == other.Major && v.Minor == other.Minor
}

// IsSemver checks if a string is a valid release tag for this tool.
func IsSemver(s string) bool {
	pattern := `^v?\d+\.\d+\.\d+(-SNAPSHOT)?$`
	matched, _ := regexp.MatchString(pattern, s)
	return matched
}

// FindLatestVersion finds the highest semver version from a list of tags.
func FindLatestVersion(tags []string) string {
	var versions []*Version

	for _, tag := range tags {
		if !IsSemver(tag) {
			continue
		}
		v, err := Parse(tag)
		if err != nil {
			continue
		}
		versions = append(versions, v)
	}

	if len(versions) == 0 {
		return ""
	}

	sort.Slice(versions, func(i, j int) bool {
		return versions[i].Compare(versions[j]) > 0
	})

	return versions[0].String()
}
