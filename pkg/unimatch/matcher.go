package unimatch

// FieldMatcher pairs a predicate with its outcome. It is the unit of the
// first-match-wins scan.
type FieldMatcher[C any, A any] struct {
	// Predicate selects whether this entry applies to a context.
	Predicate Predicate[C]

	// OnMatch is taken when the predicate holds.
	OnMatch OnMatch[C, A]
}

// Matcher is the top-level evaluation structure: an ordered list of field
// matchers with an optional fallback outcome.
//
// A Matcher is immutable after construction and safe for concurrent
// evaluation with distinct contexts; evaluation takes no locks and performs
// no allocation beyond copying the returned action.
//
// Order matters absolutely: a broader predicate listed before a narrower
// one shadows it. Callers are responsible for ordering.
type Matcher[C any, A any] struct {
	fieldMatchers []FieldMatcher[C, A]
	onNoMatch     OnMatch[C, A]
	treeDepth     int
}

// NewMatcher builds and validates a Matcher. onNoMatch may be nil, meaning
// an exhausted scan yields no action.
//
// NewMatcher applies the same structural checks as the config compiler: at
// most MaxFieldMatchers entries, no nil predicates or outcomes, and a total
// tree depth (including nested matchers reachable through descents) of at
// most MaxDepth.
func NewMatcher[C any, A any](fieldMatchers []FieldMatcher[C, A], onNoMatch OnMatch[C, A]) (*Matcher[C, A], error) {
	if len(fieldMatchers) > MaxFieldMatchers {
		return nil, &TooManyFieldMatchersError{Count: len(fieldMatchers), Max: MaxFieldMatchers}
	}
	for _, fm := range fieldMatchers {
		if fm.Predicate == nil {
			return nil, ErrNilPredicate
		}
		if fm.OnMatch == nil {
			return nil, ErrNilOnMatch
		}
	}
	m := &Matcher[C, A]{
		fieldMatchers: append([]FieldMatcher[C, A](nil), fieldMatchers...),
		onNoMatch:     onNoMatch,
	}
	m.treeDepth = m.computeDepth()
	if m.treeDepth > MaxDepth {
		return nil, &DepthExceededError{Depth: m.treeDepth, Max: MaxDepth}
	}
	return m, nil
}

// computeDepth measures the longest root-to-leaf path: the matcher itself
// counts 1, each And/Or/Not combinator counts 1, and a descent counts the
// full depth of the nested matcher. Nested matchers were validated when
// they were built, so this terminates without revisiting them.
func (m *Matcher[C, A]) computeDepth() int {
	inner := 0
	for _, fm := range m.fieldMatchers {
		if d := fm.Predicate.depth(); d > inner {
			inner = d
		}
		if d := fm.OnMatch.depthOnMatch(); d > inner {
			inner = d
		}
	}
	if m.onNoMatch != nil {
		if d := m.onNoMatch.depthOnMatch(); d > inner {
			inner = d
		}
	}
	return 1 + inner
}

// Depth returns the measured tree depth. Always <= MaxDepth.
func (m *Matcher[C, A]) Depth() int {
	return m.treeDepth
}

// FieldMatcherCount returns the number of field matchers.
func (m *Matcher[C, A]) FieldMatcherCount() int {
	return len(m.fieldMatchers)
}

// Evaluate runs the first-match-wins scan against ctx.
//
// Field matchers are scanned in order. The first one whose predicate holds
// decides: an action outcome stops the scan and is returned; a descent
// outcome evaluates the nested matcher, and if that yields no action the
// scan continues with the next field matcher (sideways propagation — the
// parent's fallback is not consulted for an undecided descent). When the
// scan exhausts the list, the fallback outcome is resolved once by the same
// rules; a fallback descent that yields no action makes the whole matcher
// yield no action.
//
// Evaluate is infallible by contract: it never panics and never errors.
func (m *Matcher[C, A]) Evaluate(ctx C) (A, bool) {
	for i := range m.fieldMatchers {
		fm := &m.fieldMatchers[i]
		if !fm.Predicate.Evaluate(ctx) {
			continue
		}
		if a, ok := resolveOnMatch[C, A](fm.OnMatch, ctx); ok {
			return a, true
		}
	}
	if m.onNoMatch != nil {
		return resolveOnMatch[C, A](m.onNoMatch, ctx)
	}
	var zero A
	return zero, false
}
