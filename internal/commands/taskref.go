package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidTaskID indicates a task ID argument that is not a non-negative
// decimal integer.
var ErrInvalidTaskID = errors.New("invalid task ID")

// ParseTaskID parses a task ID argument.
//
// Accepted: one or more ASCII digits, optionally preceded by a single '+',
// whose value fits in 64 bits. Everything else (signs, spaces, hex, empty)
// is rejected.
func ParseTaskID(s string) (uint64, error) {
	digits := strings.TrimPrefix(s, "+")
	if !isAllDigits(digits) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTaskID, s)
	}
	id, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTaskID, s)
	}
	return id, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
