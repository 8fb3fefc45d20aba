package schema

import (
	"encoding/json"
	"fmt"
)

// Wire-form marshalling. The typed configs render the same key layout the
// decoders accept, so decode -> encode -> decode round-trips structurally.

// MarshalJSON renders {"matchers": [...], "on_no_match": {...}}.
func (c MatcherConfig) MarshalJSON() ([]byte, error) {
	obj := map[string]any{"matchers": c.FieldMatchers}
	if c.FieldMatchers == nil {
		obj["matchers"] = []FieldMatcherConfig{}
	}
	if c.OnNoMatch != nil {
		obj["on_no_match"] = c.OnNoMatch
	}
	return json.Marshal(obj)
}

// MarshalJSON renders {"predicate": {...}, "on_match": {...}}.
func (c FieldMatcherConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"predicate": c.Predicate,
		"on_match":  c.OnMatch,
	})
}

// MarshalJSON renders the tagged predicate union.
func (c PredicateConfig) MarshalJSON() ([]byte, error) {
	switch c.Type {
	case PredicateSingle:
		obj := map[string]any{"type": c.Type, "input": c.Input}
		if c.ValueMatch != nil {
			obj["value_match"] = c.ValueMatch
		}
		if c.CustomMatch != nil {
			obj["custom_match"] = c.CustomMatch
		}
		return json.Marshal(obj)
	case PredicateAnd, PredicateOr:
		preds := c.Predicates
		if preds == nil {
			preds = []PredicateConfig{}
		}
		return json.Marshal(map[string]any{"type": c.Type, "predicates": preds})
	case PredicateNot:
		return json.Marshal(map[string]any{"type": c.Type, "predicate": c.Predicate})
	default:
		return nil, fmt.Errorf("cannot marshal predicate with unknown type %q", c.Type)
	}
}

// MarshalJSON renders the tagged outcome union.
func (c OnMatchConfig) MarshalJSON() ([]byte, error) {
	switch c.Type {
	case OnMatchAction:
		return json.Marshal(map[string]any{"type": c.Type, "action": c.Action})
	case OnMatchMatcher:
		return json.Marshal(map[string]any{"type": c.Type, "matcher": c.Matcher})
	default:
		return nil, fmt.Errorf("cannot marshal on_match with unknown type %q", c.Type)
	}
}

// MarshalJSON renders {"<Op>": "<value>"} plus ignore_case when set.
func (c ValueMatchConfig) MarshalJSON() ([]byte, error) {
	switch c.Op {
	case OpExact, OpPrefix, OpSuffix, OpContains, OpRegex:
	default:
		return nil, fmt.Errorf("cannot marshal value match with unknown operation %q", c.Op)
	}
	obj := map[string]any{c.Op: c.Value}
	if c.IgnoreCase {
		obj["ignore_case"] = true
	}
	return json.Marshal(obj)
}

// MarshalJSON renders {"type_url": "...", "config": {...}}.
func (c TypedConfig) MarshalJSON() ([]byte, error) {
	cfg := c.Config
	if cfg == nil {
		cfg = map[string]any{}
	}
	return json.Marshal(map[string]any{"type_url": c.TypeURL, "config": cfg})
}
