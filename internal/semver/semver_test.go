package semver

import (
	"errors"
	"testing"

	"github.com/grokify/releaseconductor/pkg/model"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		in       string
		major    int
		minor    int
		patch    int
		snapshot bool
		prefix   string
	}{
		{"1.2.3", 1, 2, 3, false, ""},
		{"v1.2.3", 1, 2, 3, false, "v"},
		{"0.0.0", 0, 0, 0, false, ""},
		{"2.5.0-SNAPSHOT", 2, 5, 0, true, ""},
		{"v10.20.30-SNAPSHOT", 10, 20, 30, true, "v"},
	}

	for _, tt := range tests {
		v, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", tt.in, err)
		}
		if v.Major != tt.major || v.Minor != tt.minor || v.Patch != tt.patch {
			t.Errorf("Parse(%q) = %d.%d.%d, want %d.%d.%d",
				tt.in, v.Major, v.Minor, v.Patch, tt.major, tt.minor, tt.patch)
		}
		if v.Snapshot != tt.snapshot {
			t.Errorf("Parse(%q) snapshot = %v, want %v", tt.in, v.Snapshot, tt.snapshot)
		}
		if v.Prefix != tt.prefix {
			t.Errorf("Parse(%q) prefix = %q, want %q", tt.in, v.Prefix, tt.prefix)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	bad := []string{
		"",
		"1",
		"1.2",
		"1.2.3.4",
		"1.2.x",
		"a.b.c",
		"1..3",
		"-1.2.3",
		"1.+2.3", // a sign is not a digit
		"1.-2.3",
		"1. 2.3",
		"1.2.3-rc1",
		"1.2.3-snapshot", // suffix is case-sensitive
	}

	for _, in := range bad {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) expected error, got nil", in)
		} else if !errors.Is(err, model.ErrInvalidFormat) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidFormat", in, err)
		}
	}
}

func TestString_RoundTrip(t *testing.T) {
	inputs := []string{"1.2.3", "v1.2.3", "0.0.1", "3.0.0-SNAPSHOT", "v2.4.1-SNAPSHOT"}

	for _, in := range inputs {
		v, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", in, err)
		}
		if got := v.String(); got != in {
			t.Errorf("round trip %q = %q", in, got)
		}
	}
}

func TestBump(t *testing.T) {
	v, err := Parse("1.2.3")
	if err != nil {
		t.Fatal(err)
	}

	if got := v.BumpMajor().String(); got != "2.0.0" {
		t.Errorf("BumpMajor = %s, want 2.0.0", got)
	}
	if got := v.BumpMinor().String(); got != "1.3.0" {
		t.Errorf("BumpMinor = %s, want 1.3.0", got)
	}
	if got := v.BumpPatch().String(); got != "1.2.4" {
		t.Errorf("BumpPatch = %s, want 1.2.4", got)
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.2.3", "1.2.3", 0},
		{"1.2.3", "1.2.4", -1},
		{"1.3.0", "1.2.9", 1},
		{"2.0.0", "1.9.9", 1},
		{"1.2.3-SNAPSHOT", "1.2.3", -1},
		{"1.2.3", "1.2.3-SNAPSHOT", 1},
	}

	for _, tt := range tests {
		a, err := Parse(tt.a)
		if err != nil {
			t.Fatal(err)
		}
		b, err := Parse(tt.b)
		if err != nil {
			t.Fatal(err)
		}
		if got := a.Compare(b); got != tt.want {
			t.Errorf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestBase(t *testing.T) {
	v, err := Parse("2.5.0-SNAPSHOT")
	if err != nil {
		t.Fatal(err)
	}
	if got := v.Base().String(); got != "2.5.0" {
		t.Errorf("Base = %s, want 2.5.0", got)
	}
	if !v.Snapshot {
		t.Error("Base must not mutate the receiver")
	}
}

func TestMinorLine(t *testing.T) {
	v, err := Parse("2.4.7")
	if err != nil {
		t.Fatal(err)
	}
	if got := v.MinorLine(); got != "2.4" {
		t.Errorf("MinorLine = %s, want 2.4", got)
	}
}

func TestFindLatestVersion(t *testing.T) {
	tags := []string{"v1.0.0", "v1.2.0", "not-a-version", "v1.1.5", "v0.9.0"}

	if got := FindLatestVersion(tags); got != "v1.2.0" {
		t.Errorf("FindLatestVersion = %s, want v1.2.0", got)
	}

	if got := FindLatestVersion([]string{"main", "nightly"}); got != "" {
		t.Errorf("FindLatestVersion with no semver tags = %q, want empty", got)
	}
}
