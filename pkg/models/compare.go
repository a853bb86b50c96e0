package models

import (
	"fmt"
	"strings"
)

// CompareMethod determines how a line is tested against the search expression
type CompareMethod int

const (
	// CompareEqual is case-sensitive exact equality
	CompareEqual CompareMethod = iota
	// CompareEqualIgnoreCase is case-insensitive exact equality
	CompareEqualIgnoreCase
	// ComparePartialMatch treats the expression as a case-sensitive regex
	ComparePartialMatch
	// ComparePartialMatchIgnoreCase case-folds line and expression before the regex test
	ComparePartialMatchIgnoreCase
)

// String returns the CLI name of the compare method
func (m CompareMethod) String() string {
	switch m {
	case CompareEqual:
		return "equal"
	case CompareEqualIgnoreCase:
		return "equalignorecase"
	case ComparePartialMatch:
		return "partialmatch"
	case ComparePartialMatchIgnoreCase:
		return "partialmatchignorecase"
	default:
		return "unknown"
	}
}

// ParseCompareMethod parses a CLI compare method name
func ParseCompareMethod(name string) (CompareMethod, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "equal":
		return CompareEqual, nil
	case "equalignorecase":
		return CompareEqualIgnoreCase, nil
	case "partialmatch":
		return ComparePartialMatch, nil
	case "partialmatchignorecase":
		return ComparePartialMatchIgnoreCase, nil
	default:
		return 0, fmt.Errorf("unknown compare method: %s (expected equal, equalignorecase, partialmatch or partialmatchignorecase)", name)
	}
}
