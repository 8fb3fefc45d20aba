// Package exts ships registered extension matchers that exercise the
// registry's custom-match path: a multi-literal substring matcher backed by
// an Aho-Corasick automaton, and a value-kind matcher.
package exts

import (
	"fmt"
	"strconv"

	"github.com/coregx/ahocorasick"

	"github.com/vitaliisemenov/unimatch/pkg/unimatch"
	"github.com/vitaliisemenov/unimatch/pkg/unimatch/registry"
)

// AnyOfTypeURL identifies the multi-literal matcher in configs.
const AnyOfTypeURL = "type.unimatch.io/match/any-of"

// anyOfMatcher matches when any of its literals occurs as a substring of
// the input. The literal set is compiled to an Aho-Corasick automaton, so a
// single pass over the input covers all patterns regardless of how many
// there are.
type anyOfMatcher struct {
	automaton *ahocorasick.Automaton
	fold      bool
	summary   string
}

// NewAnyOf builds a matcher over values. With ignoreCase, literals are
// folded at construction and the input is folded per call (ASCII fold, as
// for the built-ins). The list must be non-empty, and each literal is
// subject to the same byte limit as built-in patterns.
func NewAnyOf(values []string, ignoreCase bool) (unimatch.ValueMatcher, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("any_of: values must not be empty")
	}
	builder := ahocorasick.NewBuilder()
	for i, v := range values {
		if len(v) > unimatch.MaxPatternBytes {
			return nil, &unimatch.PatternTooLongError{MatcherKind: "any_of", Length: len(v), Max: unimatch.MaxPatternBytes}
		}
		if v == "" {
			return nil, fmt.Errorf("any_of: values[%d] must not be empty", i)
		}
		if ignoreCase {
			v = unimatch.FoldASCII(v)
		}
		builder.AddPattern([]byte(v))
	}
	automaton, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("any_of: %w", err)
	}
	name := "any_of"
	if ignoreCase {
		name = "any_of_fold"
	}
	return &anyOfMatcher{
		automaton: automaton,
		fold:      ignoreCase,
		summary:   name + "(" + strconv.Itoa(len(values)) + " literals)",
	}, nil
}

func (m *anyOfMatcher) Matches(v unimatch.Value) bool {
	s, ok := v.AsString()
	if !ok {
		return false
	}
	if m.fold {
		s = unimatch.FoldASCII(s)
	}
	return m.automaton.Find([]byte(s), 0) != nil
}

func (m *anyOfMatcher) String() string {
	return m.summary
}

// AnyOfFactory builds an any_of matcher from
// {"values": [...], "ignore_case"?: bool}.
func AnyOfFactory(config map[string]any) (unimatch.ValueMatcher, error) {
	raw, ok := config["values"]
	if !ok {
		return nil, fmt.Errorf("missing required config key %q", "values")
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("config key %q: want an array of strings, got %T", "values", raw)
	}
	values := make([]string, 0, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("config key values[%d]: want a string, got %T", i, item)
		}
		values = append(values, s)
	}
	ignoreCase := false
	if raw, ok := config["ignore_case"]; ok {
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("config key %q: want a bool, got %T", "ignore_case", raw)
		}
		ignoreCase = b
	}
	return NewAnyOf(values, ignoreCase)
}

// RegisterAll adds every extension matcher to a registry builder.
func RegisterAll[C any](b *registry.Builder[C]) *registry.Builder[C] {
	return b.
		RegisterMatcher(AnyOfTypeURL, AnyOfFactory).
		RegisterMatcher(KindTypeURL, KindFactory)
}
