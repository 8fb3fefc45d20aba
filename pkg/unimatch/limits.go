package unimatch

// Structural limits enforced at construction time. The limits are part of
// the wire contract and are not configurable at runtime; every port of the
// engine agrees on these values by name.
const (
	// MaxDepth bounds the total tree depth measured from the root
	// Matcher, counting nested matchers, predicate combinators, and
	// OnMatch descents.
	MaxDepth = 32

	// MaxFieldMatchers bounds the number of field matchers in a single
	// Matcher.
	MaxFieldMatchers = 256

	// MaxPredicateChildren bounds the direct children of an And or Or
	// node.
	MaxPredicateChildren = 256

	// MaxPatternBytes bounds the UTF-8 byte length of patterns passed to
	// the Exact, Prefix, Suffix, and Contains built-ins.
	MaxPatternBytes = 8192

	// MaxRegexPatternBytes bounds the byte length of Regex patterns.
	MaxRegexPatternBytes = 4096
)
