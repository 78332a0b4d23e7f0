package setversion

import (
	"errors"
	"fmt"
	"regexp"
)

// Version is the current version of the setversion tool
const Version = "0.1.0"

// Error kinds reported by this package. Callers can test for them with
// errors.Is; the wrapped message carries the file and field involved.
var (
	// ErrInvalidVersion means the candidate version string does not have
	// the MAJOR.MINOR.PATCH shape.
	ErrInvalidVersion = errors.New("invalid version")

	// ErrVersionNotFound means the current version could not be located
	// in the pipeline descriptor.
	ErrVersionNotFound = errors.New("current version not found")

	// ErrFieldNotFound means a patcher could not locate its version field
	// in the target file.
	ErrFieldNotFound = errors.New("version field not found")
)

// versionRegex accepts exactly three dot-separated groups of decimal
// digits. No surrounding whitespace, no "v" prefix, no prerelease or
// build metadata.
var versionRegex = regexp.MustCompile(`^[0-9]+\.[0-9]+\.[0-9]+$`)

// Validate checks that v is a version of the form MAJOR.MINOR.PATCH.
// The input is matched as-is, without any normalization.
func Validate(v string) error {
	if !versionRegex.MatchString(v) {
		return fmt.Errorf("%w: %q (expected MAJOR.MINOR.PATCH, e.g. 1.2.3)", ErrInvalidVersion, v)
	}
	return nil
}
