package profile

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidHandle rejects identifiers that are empty after trimming or
// contain characters outside [A-Za-z0-9_-].
var ErrInvalidHandle = errors.New("invalid github handle")

var handlePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// NormalizeHandle trims surrounding whitespace and validates the result.
// The handle is later interpolated into request paths, so anything that
// would require stripping characters is rejected outright instead of being
// silently truncated.
func NormalizeHandle(raw string) (string, error) {
	handle := strings.TrimSpace(raw)
	if handle == "" || !handlePattern.MatchString(handle) {
		return "", fmt.Errorf("%w: %q", ErrInvalidHandle, raw)
	}

	return handle, nil
}
