package tagrelease

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

var (
	errVersionArity       = errors.New("version must have exactly three components (X.Y.Z)")
	errVersionNonNumeric  = errors.New("version component is not an integer")
	errVersionNegative    = errors.New("version component cannot be negative")
	errVersionLeadingZero = errors.New("version component has a leading zero")
)

// Version is a release version of the form major.minor.patch.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion parses "X.Y.Z". Surrounding whitespace is ignored. Each
// component must be plain decimal digits without a sign or a leading zero,
// so the parsed version always prints back as the same text.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("%w: %q", errVersionArity, s)
	}

	var nums [3]int
	for i, p := range parts {
		n, err := parseComponent(p)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q", err, s)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

func parseComponent(p string) (int, error) {
	digits := strings.TrimPrefix(p, "-")
	if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return 0, errVersionNonNumeric
	}
	if digits != p {
		return 0, errVersionNegative
	}
	if len(p) > 1 && p[0] == '0' {
		return 0, errVersionLeadingZero
	}
	n, err := strconv.Atoi(p)
	if err != nil {
		return 0, errVersionNonNumeric
	}
	return n, nil
}

// String returns the "X.Y.Z" form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// semver returns the canonical "vX.Y.Z" form understood by x/mod/semver.
func (v Version) semver() string {
	return "v" + v.String()
}

// Compare returns -1, 0 or +1 comparing v to other component by component.
func (v Version) Compare(other Version) int {
	return semver.Compare(v.semver(), other.semver())
}

// GreaterThan reports whether v is strictly newer than other.
func (v Version) GreaterThan(other Version) bool {
	return v.Compare(other) > 0
}

// ParseCandidate parses a user-supplied new version. Unlike versions read
// from metadata, a bad candidate is a validation failure.
func ParseCandidate(s string) (Version, error) {
	v, err := ParseVersion(s)
	if err != nil {
		return Version{}, newError(KindValidation, "parse new version", "", err)
	}
	return v, nil
}

// ValidateCandidate returns a validation error unless candidate is strictly
// greater than current.
func ValidateCandidate(candidate, current Version) error {
	const op = "validate new version"
	if !semver.IsValid(candidate.semver()) {
		return errorf(KindValidation, op, "%s is not a valid release version", candidate)
	}

	switch {
	case candidate == current:
		return errorf(KindValidation, op, "new version %s is the same as the current version", candidate)
	case candidate.Major < current.Major:
		return errorf(KindValidation, op, "major version %d is less than the current major version %d", candidate.Major, current.Major)
	case candidate.Major == current.Major && candidate.Minor < current.Minor:
		return errorf(KindValidation, op, "minor version %d is less than the current minor version %d", candidate.Minor, current.Minor)
	case candidate.Major == current.Major && candidate.Minor == current.Minor && candidate.Patch < current.Patch:
		return errorf(KindValidation, op, "patch version %d is less than the current patch version %d", candidate.Patch, current.Patch)
	}

	// Only reachable if the cases above drift from Compare.
	if !candidate.GreaterThan(current) {
		return errorf(KindValidation, op, "new version %s is not greater than %s", candidate, current)
	}
	return nil
}
