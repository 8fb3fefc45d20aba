package registry

import (
	"errors"
	"fmt"

	"github.com/vitaliisemenov/unimatch/pkg/unimatch"
	"github.com/vitaliisemenov/unimatch/pkg/unimatch/schema"
)

// ActionDecoder converts the decoded wire action (any JSON/YAML value) to
// the caller's action type.
type ActionDecoder[A any] func(v any) (A, error)

// StringActions decodes string-typed actions and rejects everything else.
func StringActions(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("want a string action, got %T", v)
	}
	return s, nil
}

// RawActions passes the decoded wire value through unchanged.
func RawActions(v any) (any, error) {
	return v, nil
}

// Load walks cfg, resolves every type URL against reg, compiles the
// built-in matchers, and returns a fully validated Matcher. There are no
// partial results: on any failure no Matcher is returned, and once a
// Matcher exists every structural invariant (width, depth, pattern limits,
// regex validity) is known to hold.
func Load[C any, A any](reg *Registry[C], cfg *schema.MatcherConfig, actions ActionDecoder[A]) (*unimatch.Matcher[C, A], error) {
	if reg == nil {
		return nil, errors.New("nil registry")
	}
	if cfg == nil {
		return nil, errors.New("nil matcher config")
	}
	if actions == nil {
		return nil, errors.New("nil action decoder")
	}
	l := &loader[C, A]{reg: reg, actions: actions}
	return l.compileMatcher(cfg)
}

type loader[C any, A any] struct {
	reg     *Registry[C]
	actions ActionDecoder[A]
}

func (l *loader[C, A]) compileMatcher(cfg *schema.MatcherConfig) (*unimatch.Matcher[C, A], error) {
	// Width first, before compiling any entries.
	if len(cfg.FieldMatchers) > unimatch.MaxFieldMatchers {
		return nil, &unimatch.TooManyFieldMatchersError{Count: len(cfg.FieldMatchers), Max: unimatch.MaxFieldMatchers}
	}
	fms := make([]unimatch.FieldMatcher[C, A], 0, len(cfg.FieldMatchers))
	for i := range cfg.FieldMatchers {
		fmc := &cfg.FieldMatchers[i]
		pred, err := l.compilePredicate(&fmc.Predicate)
		if err != nil {
			return nil, err
		}
		om, err := l.compileOnMatch(&fmc.OnMatch)
		if err != nil {
			return nil, err
		}
		fms = append(fms, unimatch.FieldMatcher[C, A]{Predicate: pred, OnMatch: om})
	}
	var onNoMatch unimatch.OnMatch[C, A]
	if cfg.OnNoMatch != nil {
		om, err := l.compileOnMatch(cfg.OnNoMatch)
		if err != nil {
			return nil, err
		}
		onNoMatch = om
	}
	// NewMatcher re-checks the width and enforces the depth bound on the
	// assembled tree.
	return unimatch.NewMatcher(fms, onNoMatch)
}

func (l *loader[C, A]) compilePredicate(cfg *schema.PredicateConfig) (unimatch.Predicate[C], error) {
	switch cfg.Type {
	case schema.PredicateSingle:
		return l.compileSingle(cfg)
	case schema.PredicateAnd, schema.PredicateOr:
		if len(cfg.Predicates) > unimatch.MaxPredicateChildren {
			return nil, &unimatch.TooManyPredicatesError{Op: cfg.Type, Count: len(cfg.Predicates), Max: unimatch.MaxPredicateChildren}
		}
		children := make([]unimatch.Predicate[C], 0, len(cfg.Predicates))
		for i := range cfg.Predicates {
			child, err := l.compilePredicate(&cfg.Predicates[i])
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		if cfg.Type == schema.PredicateAnd {
			return unimatch.NewAnd(children...)
		}
		return unimatch.NewOr(children...)
	case schema.PredicateNot:
		if cfg.Predicate == nil {
			return nil, fmt.Errorf("not predicate without child")
		}
		child, err := l.compilePredicate(cfg.Predicate)
		if err != nil {
			return nil, err
		}
		return unimatch.NewNot(child)
	default:
		return nil, fmt.Errorf("unknown predicate type %q", cfg.Type)
	}
}

func (l *loader[C, A]) compileSingle(cfg *schema.PredicateConfig) (unimatch.Predicate[C], error) {
	if cfg.Input == nil {
		return nil, fmt.Errorf("single predicate without input")
	}
	factory, err := l.reg.extractorFactory(cfg.Input.TypeURL)
	if err != nil {
		return nil, err
	}
	extractor, err := factory(cfg.Input.Config)
	if err != nil {
		return nil, &InvalidConfigError{URL: cfg.Input.TypeURL, Err: err}
	}
	var matcher unimatch.ValueMatcher
	switch {
	case cfg.ValueMatch != nil:
		matcher, err = compileBuiltin(cfg.ValueMatch)
		if err != nil {
			return nil, err
		}
	case cfg.CustomMatch != nil:
		factory, err := l.reg.matcherFactory(cfg.CustomMatch.TypeURL)
		if err != nil {
			return nil, err
		}
		matcher, err = factory(cfg.CustomMatch.Config)
		if err != nil {
			return nil, &InvalidConfigError{URL: cfg.CustomMatch.TypeURL, Err: err}
		}
	default:
		return nil, fmt.Errorf("single predicate without value_match or custom_match")
	}
	return unimatch.NewSingle(extractor, matcher)
}

func compileBuiltin(cfg *schema.ValueMatchConfig) (unimatch.ValueMatcher, error) {
	switch cfg.Op {
	case schema.OpExact:
		return unimatch.NewExact(cfg.Value, cfg.IgnoreCase)
	case schema.OpPrefix:
		return unimatch.NewPrefix(cfg.Value, cfg.IgnoreCase)
	case schema.OpSuffix:
		return unimatch.NewSuffix(cfg.Value, cfg.IgnoreCase)
	case schema.OpContains:
		return unimatch.NewContains(cfg.Value, cfg.IgnoreCase)
	case schema.OpRegex:
		return unimatch.NewRegex(cfg.Value)
	default:
		return nil, fmt.Errorf("unknown built-in operation %q", cfg.Op)
	}
}

func (l *loader[C, A]) compileOnMatch(cfg *schema.OnMatchConfig) (unimatch.OnMatch[C, A], error) {
	switch cfg.Type {
	case schema.OnMatchAction:
		action, err := l.actions(cfg.Action)
		if err != nil {
			return nil, &ActionDecodeError{Err: err}
		}
		return unimatch.ActionOnMatch[C, A](action), nil
	case schema.OnMatchMatcher:
		if cfg.Matcher == nil {
			return nil, fmt.Errorf("matcher on_match without nested matcher")
		}
		nested, err := l.compileMatcher(cfg.Matcher)
		if err != nil {
			return nil, err
		}
		return unimatch.DescendOnMatch(nested)
	default:
		return nil, fmt.Errorf("unknown on_match type %q", cfg.Type)
	}
}
