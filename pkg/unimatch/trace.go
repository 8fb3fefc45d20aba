package unimatch

// TraceStep records one field matcher's outcome during a trace.
type TraceStep struct {
	// Index is the field matcher's position in the scan order.
	Index int

	// Predicate is the predicate's one-line summary.
	Predicate string

	// Matched reports whether the predicate held for the traced context.
	Matched bool
}

// Trace is the debugging counterpart of an evaluation: it records every
// top-level field matcher's outcome without short-circuiting, plus the
// result normal evaluation would have produced.
type Trace[A any] struct {
	// Steps has one entry per field matcher, in scan order.
	Steps []TraceStep

	// Result is the action evaluation yields; meaningful only when
	// Matched is true.
	Result A

	// Matched reports whether evaluation yields an action at all.
	Matched bool

	// UsedFallback reports whether the on-no-match outcome was consulted.
	UsedFallback bool
}

// Trace evaluates ctx the way Evaluate does but records every top-level
// field matcher's predicate outcome instead of stopping at the first
// decision. Descents and the fallback are resolved with the ordinary
// short-circuiting walk; only the top-level scan is exhaustive.
//
// Invariant: Trace(ctx).Result and .Matched always equal Evaluate(ctx).
func (m *Matcher[C, A]) Trace(ctx C) Trace[A] {
	t := Trace[A]{Steps: make([]TraceStep, 0, len(m.fieldMatchers))}
	decided := false
	for i := range m.fieldMatchers {
		fm := &m.fieldMatchers[i]
		held := fm.Predicate.Evaluate(ctx)
		t.Steps = append(t.Steps, TraceStep{Index: i, Predicate: fm.Predicate.Summary(), Matched: held})
		if held && !decided {
			if a, ok := resolveOnMatch[C, A](fm.OnMatch, ctx); ok {
				t.Result = a
				t.Matched = true
				decided = true
			}
		}
	}
	if !decided && m.onNoMatch != nil {
		t.UsedFallback = true
		t.Result, t.Matched = resolveOnMatch[C, A](m.onNoMatch, ctx)
	}
	return t
}
