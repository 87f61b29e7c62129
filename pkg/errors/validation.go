package errors

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// maxNameLen bounds cell and net names read from snapshots.
const maxNameLen = 512

// ValidateName validates a cell or net name read from a snapshot.
//
// Names must be non-empty, at most 512 bytes, and free of control
// characters. Hierarchical separators ("/", ".", "[") are allowed since
// placement engines emit flattened hierarchical names.
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "name cannot be empty")
	}
	if len(name) > maxNameLen {
		return New(ErrCodeInvalidName, "name too long (max %d characters)", maxNameLen)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "name %q contains control characters", name)
		}
	}
	return nil
}

// ParsePoint parses a layout point given as "x,y".
//
// Both coordinates must be finite numbers; surrounding whitespace is
// ignored.
func ParsePoint(s string) (x, y float64, err error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, New(ErrCodeInvalidPoint, "point %q must be of the form x,y", s)
	}
	x, err = parseCoord(xs)
	if err != nil {
		return 0, 0, Wrap(ErrCodeInvalidPoint, err, "point %q", s)
	}
	y, err = parseCoord(ys)
	if err != nil {
		return 0, 0, Wrap(ErrCodeInvalidPoint, err, "point %q", s)
	}
	return x, y, nil
}

func parseCoord(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, New(ErrCodeInvalidPoint, "coordinate %q is not finite", s)
	}
	return v, nil
}
