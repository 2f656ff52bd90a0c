package commands

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
)

// ErrTaskRefRequired indicates no task ID was provided.
var ErrTaskRefRequired = errors.New("task id required")

// ParseTaskID parses a single task ID from args.
// The ID must be all digits and at least 1; extra arguments are rejected.
func ParseTaskID(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("unexpected argument: %s", args[1])
	}

	ref := args[0]
	if !isAllDigits(ref) {
		return 0, fmt.Errorf("invalid task id: %s", ref)
	}
	id, err := strconv.Atoi(ref)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id: %s", ref)
	}
	return id, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
