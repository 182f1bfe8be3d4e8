// Package version provides daemon version parsing and comparison.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Current is the version of this release.
const Current = "1.0.0"

// Version represents a parsed "major.minor.patch" version.
type Version struct {
	Major uint16
	Minor uint16
	Patch uint16
}

// Parse parses a "major.minor.patch" version string.
func Parse(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version %q: expected major.minor.patch", s)
	}

	major, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil || parts[0] == "" {
		return Version{}, fmt.Errorf("invalid version %q: bad major component", s)
	}

	minor, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil || parts[1] == "" {
		return Version{}, fmt.Errorf("invalid version %q: bad minor component", s)
	}

	patch, err := strconv.ParseUint(parts[2], 10, 16)
	if err != nil || parts[2] == "" {
		return Version{}, fmt.Errorf("invalid version %q: bad patch component", s)
	}

	return Version{Major: uint16(major), Minor: uint16(minor), Patch: uint16(patch)}, nil
}

// String returns the version as "major.minor.patch".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compatible returns true if the other version has the same major version.
func (v Version) Compatible(other Version) bool {
	return v.Major == other.Major
}

// Compare returns -1, 0 or 1 if v is older than, equal to or newer than other.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		return compareUint16(v.Major, other.Major)
	}
	if v.Minor != other.Minor {
		return compareUint16(v.Minor, other.Minor)
	}
	return compareUint16(v.Patch, other.Patch)
}

func compareUint16(a, b uint16) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
