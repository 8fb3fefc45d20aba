package schema

import "fmt"

// The decoders work on the generic tree produced by encoding/json or
// yaml.v3 so both formats share one strict walk with one error vocabulary.
// Unknown keys, missing keys, and wrong node types are all ParseErrors with
// the path of the offending node.

func decodeMatcher(path string, v any) (*MatcherConfig, error) {
	obj, err := asMap(path, v)
	if err != nil {
		return nil, err
	}
	if err := checkKeys(path, obj, "matchers", "on_no_match"); err != nil {
		return nil, err
	}
	rawMatchers, ok := obj["matchers"]
	if !ok {
		return nil, parseErrorf(path, "missing required key %q", "matchers")
	}
	list, err := asList(joinPath(path, "matchers"), rawMatchers)
	if err != nil {
		return nil, err
	}
	cfg := &MatcherConfig{FieldMatchers: make([]FieldMatcherConfig, 0, len(list))}
	for i, item := range list {
		fm, err := decodeFieldMatcher(fmt.Sprintf("%s[%d]", joinPath(path, "matchers"), i), item)
		if err != nil {
			return nil, err
		}
		cfg.FieldMatchers = append(cfg.FieldMatchers, *fm)
	}
	if raw, ok := obj["on_no_match"]; ok {
		om, err := decodeOnMatch(joinPath(path, "on_no_match"), raw)
		if err != nil {
			return nil, err
		}
		cfg.OnNoMatch = om
	}
	return cfg, nil
}

func decodeFieldMatcher(path string, v any) (*FieldMatcherConfig, error) {
	obj, err := asMap(path, v)
	if err != nil {
		return nil, err
	}
	if err := checkKeys(path, obj, "predicate", "on_match"); err != nil {
		return nil, err
	}
	rawPred, ok := obj["predicate"]
	if !ok {
		return nil, parseErrorf(path, "missing required key %q", "predicate")
	}
	pred, err := decodePredicate(joinPath(path, "predicate"), rawPred)
	if err != nil {
		return nil, err
	}
	rawOM, ok := obj["on_match"]
	if !ok {
		return nil, parseErrorf(path, "missing required key %q", "on_match")
	}
	om, err := decodeOnMatch(joinPath(path, "on_match"), rawOM)
	if err != nil {
		return nil, err
	}
	return &FieldMatcherConfig{Predicate: *pred, OnMatch: *om}, nil
}

func decodePredicate(path string, v any) (*PredicateConfig, error) {
	obj, err := asMap(path, v)
	if err != nil {
		return nil, err
	}
	typ, err := requireString(path, obj, "type")
	if err != nil {
		return nil, err
	}
	switch typ {
	case PredicateSingle:
		return decodeSingle(path, obj)
	case PredicateAnd, PredicateOr:
		if err := checkKeys(path, obj, "type", "predicates"); err != nil {
			return nil, err
		}
		rawChildren, ok := obj["predicates"]
		if !ok {
			return nil, parseErrorf(path, "missing required key %q", "predicates")
		}
		list, err := asList(joinPath(path, "predicates"), rawChildren)
		if err != nil {
			return nil, err
		}
		children := make([]PredicateConfig, 0, len(list))
		for i, item := range list {
			child, err := decodePredicate(fmt.Sprintf("%s[%d]", joinPath(path, "predicates"), i), item)
			if err != nil {
				return nil, err
			}
			children = append(children, *child)
		}
		return &PredicateConfig{Type: typ, Predicates: children}, nil
	case PredicateNot:
		if err := checkKeys(path, obj, "type", "predicate"); err != nil {
			return nil, err
		}
		rawChild, ok := obj["predicate"]
		if !ok {
			return nil, parseErrorf(path, "missing required key %q", "predicate")
		}
		child, err := decodePredicate(joinPath(path, "predicate"), rawChild)
		if err != nil {
			return nil, err
		}
		return &PredicateConfig{Type: typ, Predicate: child}, nil
	default:
		return nil, parseErrorf(path, "unknown predicate type %q (want single, and, or, not)", typ)
	}
}

func decodeSingle(path string, obj map[string]any) (*PredicateConfig, error) {
	if err := checkKeys(path, obj, "type", "input", "value_match", "custom_match"); err != nil {
		return nil, err
	}
	rawInput, ok := obj["input"]
	if !ok {
		return nil, parseErrorf(path, "missing required key %q", "input")
	}
	input, err := decodeTypedConfig(joinPath(path, "input"), rawInput)
	if err != nil {
		return nil, err
	}
	rawValue, hasValue := obj["value_match"]
	rawCustom, hasCustom := obj["custom_match"]
	switch {
	case hasValue && hasCustom:
		return nil, parseErrorf(path, "value_match and custom_match are mutually exclusive")
	case !hasValue && !hasCustom:
		return nil, parseErrorf(path, "one of value_match or custom_match is required")
	case hasValue:
		vm, err := decodeValueMatch(joinPath(path, "value_match"), rawValue)
		if err != nil {
			return nil, err
		}
		return &PredicateConfig{Type: PredicateSingle, Input: input, ValueMatch: vm}, nil
	default:
		cm, err := decodeTypedConfig(joinPath(path, "custom_match"), rawCustom)
		if err != nil {
			return nil, err
		}
		return &PredicateConfig{Type: PredicateSingle, Input: input, CustomMatch: cm}, nil
	}
}

func decodeOnMatch(path string, v any) (*OnMatchConfig, error) {
	obj, err := asMap(path, v)
	if err != nil {
		return nil, err
	}
	typ, err := requireString(path, obj, "type")
	if err != nil {
		return nil, err
	}
	switch typ {
	case OnMatchAction:
		if err := checkKeys(path, obj, "type", "action"); err != nil {
			return nil, err
		}
		action, ok := obj["action"]
		if !ok {
			return nil, parseErrorf(path, "missing required key %q", "action")
		}
		return &OnMatchConfig{Type: OnMatchAction, Action: action}, nil
	case OnMatchMatcher:
		if err := checkKeys(path, obj, "type", "matcher"); err != nil {
			return nil, err
		}
		rawMatcher, ok := obj["matcher"]
		if !ok {
			return nil, parseErrorf(path, "missing required key %q", "matcher")
		}
		nested, err := decodeMatcher(joinPath(path, "matcher"), rawMatcher)
		if err != nil {
			return nil, err
		}
		return &OnMatchConfig{Type: OnMatchMatcher, Matcher: nested}, nil
	default:
		return nil, parseErrorf(path, "unknown on_match type %q (want action, matcher)", typ)
	}
}

func decodeValueMatch(path string, v any) (*ValueMatchConfig, error) {
	obj, err := asMap(path, v)
	if err != nil {
		return nil, err
	}
	if err := checkKeys(path, obj, OpExact, OpPrefix, OpSuffix, OpContains, OpRegex, "ignore_case"); err != nil {
		return nil, err
	}
	var vm ValueMatchConfig
	for _, op := range []string{OpExact, OpPrefix, OpSuffix, OpContains, OpRegex} {
		raw, ok := obj[op]
		if !ok {
			continue
		}
		if vm.Op != "" {
			return nil, parseErrorf(path, "conflicting operations %s and %s; exactly one is allowed", vm.Op, op)
		}
		s, ok := raw.(string)
		if !ok {
			return nil, parseErrorf(joinPath(path, op), "want a string, got %s", typeName(raw))
		}
		vm.Op = op
		vm.Value = s
	}
	if vm.Op == "" {
		return nil, parseErrorf(path, "missing operation; want one of Exact, Prefix, Suffix, Contains, Regex")
	}
	if raw, ok := obj["ignore_case"]; ok {
		b, ok := raw.(bool)
		if !ok {
			return nil, parseErrorf(joinPath(path, "ignore_case"), "want a bool, got %s", typeName(raw))
		}
		if b && vm.Op == OpRegex {
			return nil, parseErrorf(path, "ignore_case is not supported with Regex")
		}
		vm.IgnoreCase = b
	}
	return &vm, nil
}

func decodeTypedConfig(path string, v any) (*TypedConfig, error) {
	obj, err := asMap(path, v)
	if err != nil {
		return nil, err
	}
	if err := checkKeys(path, obj, "type_url", "config"); err != nil {
		return nil, err
	}
	url, err := requireString(path, obj, "type_url")
	if err != nil {
		return nil, err
	}
	if url == "" {
		return nil, parseErrorf(joinPath(path, "type_url"), "must not be empty")
	}
	tc := &TypedConfig{TypeURL: url, Config: map[string]any{}}
	if raw, ok := obj["config"]; ok {
		m, err := asMap(joinPath(path, "config"), raw)
		if err != nil {
			return nil, err
		}
		tc.Config = m
	}
	return tc, nil
}

// asMap accepts the string-keyed maps produced by encoding/json and yaml.v3.
// yaml.v3 can produce map[any]any for exotic keys; those are normalized when
// every key is a string and rejected otherwise.
func asMap(path string, v any) (map[string]any, error) {
	switch m := v.(type) {
	case map[string]any:
		return m, nil
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			s, ok := k.(string)
			if !ok {
				return nil, parseErrorf(path, "object key %v is not a string", k)
			}
			out[s] = val
		}
		return out, nil
	default:
		return nil, parseErrorf(path, "want an object, got %s", typeName(v))
	}
}

func asList(path string, v any) ([]any, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, parseErrorf(path, "want an array, got %s", typeName(v))
	}
	return list, nil
}

func requireString(path string, obj map[string]any, key string) (string, error) {
	raw, ok := obj[key]
	if !ok {
		return "", parseErrorf(path, "missing required key %q", key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", parseErrorf(joinPath(path, key), "want a string, got %s", typeName(raw))
	}
	return s, nil
}

func checkKeys(path string, obj map[string]any, allowed ...string) error {
	for key := range obj {
		found := false
		for _, a := range allowed {
			if key == a {
				found = true
				break
			}
		}
		if !found {
			return parseErrorf(path, "unknown key %q", key)
		}
	}
	return nil
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case string:
		return "string"
	case float64, int, int64, uint64:
		return "number"
	case []any:
		return "array"
	case map[string]any, map[any]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
