package unimatch

import (
	"strconv"

	"github.com/coregx/coregex"
)

// regexMatcher matches with a linear-time regex engine.
//
// coregex guarantees O(m*n) worst-case matching (no backtracking), which is
// what makes Regex safe to expose to untrusted configuration: a pathological
// pattern like `(a+)+$` cannot blow up at evaluation time. Backreferences
// and lookaround are not supported.
type regexMatcher struct {
	re      *coregex.Regex
	pattern string
}

// NewRegex returns a matcher that holds when pattern matches anywhere in the
// input string (unanchored search). Callers wanting a full match must anchor
// with `^...$`.
func NewRegex(pattern string) (ValueMatcher, error) {
	if len(pattern) > MaxRegexPatternBytes {
		return nil, &PatternTooLongError{MatcherKind: "regex", Length: len(pattern), Max: MaxRegexPatternBytes}
	}
	re, err := coregex.Compile(pattern)
	if err != nil {
		return nil, &InvalidPatternError{Pattern: pattern, Err: err}
	}
	return &regexMatcher{re: re, pattern: pattern}, nil
}

func (m *regexMatcher) Matches(v Value) bool {
	s, ok := v.AsString()
	if !ok {
		return false
	}
	return m.re.MatchString(s)
}

func (m *regexMatcher) String() string {
	return "regex(" + strconv.Quote(m.pattern) + ")"
}
