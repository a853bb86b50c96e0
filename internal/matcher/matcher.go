package matcher

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cor1nthian/wincontentseeker/pkg/models"
)

// Matcher decides whether a line satisfies the search expression under
// one of the four comparison policies. Regex expressions are compiled
// once at construction.
type Matcher struct {
	method  models.CompareMethod
	pattern string
	re      *regexp.Regexp
}

// New creates a matcher for the given expression and compare method.
// For the partial-match methods the expression must be a valid regex;
// for the ignore-case variant the expression text itself is folded to
// lower case before compilation, not compiled with the (?i) flag.
func New(pattern string, method models.CompareMethod) (*Matcher, error) {
	m := &Matcher{
		method:  method,
		pattern: pattern,
	}

	switch method {
	case models.ComparePartialMatch:
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid search expression: %w", err)
		}
		m.re = re
	case models.ComparePartialMatchIgnoreCase:
		// Folding the pattern is deliberate: a folded character class or
		// escape may not mean the same thing as a case-insensitive flag.
		re, err := regexp.Compile(strings.ToLower(pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid search expression: %w", err)
		}
		m.re = re
	case models.CompareEqualIgnoreCase:
		m.pattern = strings.ToLower(pattern)
	}

	return m, nil
}

// Method returns the configured compare method
func (m *Matcher) Method() models.CompareMethod {
	return m.method
}

// Matches reports whether a single line satisfies the expression
func (m *Matcher) Matches(line string) bool {
	switch m.method {
	case models.CompareEqual:
		return line == m.pattern
	case models.CompareEqualIgnoreCase:
		return strings.ToLower(line) == m.pattern
	case models.ComparePartialMatch:
		return m.re.MatchString(line)
	case models.ComparePartialMatchIgnoreCase:
		return m.re.MatchString(strings.ToLower(line))
	default:
		return false
	}
}
