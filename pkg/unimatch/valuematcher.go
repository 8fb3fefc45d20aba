package unimatch

import (
	"strconv"
	"strings"
)

// ValueMatcher decides a boolean over a type-erased Value. Implementations
// must be pure and safe for concurrent use: Matches performs no I/O and no
// interior mutation.
//
// Every built-in returns false for non-string input, Absent included. The
// engine additionally short-circuits Absent to false in the Single predicate
// before any ValueMatcher is consulted, so implementations never observe
// Absent in practice.
type ValueMatcher interface {
	Matches(v Value) bool
}

// exactMatcher matches byte-equality against a fixed pattern.
type exactMatcher struct {
	pattern string
	fold    bool
}

// NewExact returns a matcher that holds when the input string is byte-equal
// to pattern. With ignoreCase, comparison folds ASCII letters; the pattern
// is folded once here, the input per call.
func NewExact(pattern string, ignoreCase bool) (ValueMatcher, error) {
	if err := checkPattern("exact", pattern); err != nil {
		return nil, err
	}
	if ignoreCase {
		pattern = FoldASCII(pattern)
	}
	return &exactMatcher{pattern: pattern, fold: ignoreCase}, nil
}

func (m *exactMatcher) Matches(v Value) bool {
	s, ok := v.AsString()
	if !ok {
		return false
	}
	if m.fold {
		return equalFoldASCII(s, m.pattern)
	}
	return s == m.pattern
}

func (m *exactMatcher) String() string {
	return builtinSummary("exact", m.pattern, m.fold)
}

// prefixMatcher matches when the pattern is a prefix of the input.
type prefixMatcher struct {
	pattern string
	fold    bool
}

// NewPrefix returns a matcher that holds when pattern is a prefix of the
// input string. ASCII folding as in NewExact.
func NewPrefix(pattern string, ignoreCase bool) (ValueMatcher, error) {
	if err := checkPattern("prefix", pattern); err != nil {
		return nil, err
	}
	if ignoreCase {
		pattern = FoldASCII(pattern)
	}
	return &prefixMatcher{pattern: pattern, fold: ignoreCase}, nil
}

func (m *prefixMatcher) Matches(v Value) bool {
	s, ok := v.AsString()
	if !ok {
		return false
	}
	if m.fold {
		return hasPrefixFoldASCII(s, m.pattern)
	}
	return strings.HasPrefix(s, m.pattern)
}

func (m *prefixMatcher) String() string {
	return builtinSummary("prefix", m.pattern, m.fold)
}

// suffixMatcher matches when the pattern is a suffix of the input.
type suffixMatcher struct {
	pattern string
	fold    bool
}

// NewSuffix returns a matcher that holds when pattern is a suffix of the
// input string. ASCII folding as in NewExact.
func NewSuffix(pattern string, ignoreCase bool) (ValueMatcher, error) {
	if err := checkPattern("suffix", pattern); err != nil {
		return nil, err
	}
	if ignoreCase {
		pattern = FoldASCII(pattern)
	}
	return &suffixMatcher{pattern: pattern, fold: ignoreCase}, nil
}

func (m *suffixMatcher) Matches(v Value) bool {
	s, ok := v.AsString()
	if !ok {
		return false
	}
	if m.fold {
		return hasSuffixFoldASCII(s, m.pattern)
	}
	return strings.HasSuffix(s, m.pattern)
}

func (m *suffixMatcher) String() string {
	return builtinSummary("suffix", m.pattern, m.fold)
}

// containsMatcher matches when the pattern occurs as a substring.
type containsMatcher struct {
	pattern string
	fold    bool
}

// NewContains returns a matcher that holds when pattern occurs as a
// substring of the input string. ASCII folding as in NewExact.
func NewContains(pattern string, ignoreCase bool) (ValueMatcher, error) {
	if err := checkPattern("contains", pattern); err != nil {
		return nil, err
	}
	if ignoreCase {
		pattern = FoldASCII(pattern)
	}
	return &containsMatcher{pattern: pattern, fold: ignoreCase}, nil
}

func (m *containsMatcher) Matches(v Value) bool {
	s, ok := v.AsString()
	if !ok {
		return false
	}
	if m.fold {
		return containsFoldASCII(s, m.pattern)
	}
	return strings.Contains(s, m.pattern)
}

func (m *containsMatcher) String() string {
	return builtinSummary("contains", m.pattern, m.fold)
}

func checkPattern(kind, pattern string) error {
	if len(pattern) > MaxPatternBytes {
		return &PatternTooLongError{MatcherKind: kind, Length: len(pattern), Max: MaxPatternBytes}
	}
	return nil
}

func builtinSummary(kind, pattern string, fold bool) string {
	if fold {
		return kind + "_fold(" + strconv.Quote(pattern) + ")"
	}
	return kind + "(" + strconv.Quote(pattern) + ")"
}
