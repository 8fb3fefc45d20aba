// Package schema defines the serializable mirror of the matcher tree and
// the strict JSON/YAML codecs for it.
//
// The schema is wire-stable: the JSON and YAML documents it accepts follow
// the Unified Matcher layout (matchers / on_no_match / predicate / on_match
// keys). Extension leaves carry a type_url plus an opaque per-type config
// map; they are resolved against a registry by the compiler, not here.
//
// The codecs are collaborators around the engine core: the core never
// consumes raw text, only the typed configs produced here.
package schema

// Predicate type tags.
const (
	PredicateSingle = "single"
	PredicateAnd    = "and"
	PredicateOr     = "or"
	PredicateNot    = "not"
)

// OnMatch type tags.
const (
	OnMatchAction  = "action"
	OnMatchMatcher = "matcher"
)

// Built-in value match operations. The wire key is the operation name.
const (
	OpExact    = "Exact"
	OpPrefix   = "Prefix"
	OpSuffix   = "Suffix"
	OpContains = "Contains"
	OpRegex    = "Regex"
)

// MatcherConfig mirrors a Matcher: an ordered field matcher list plus an
// optional fallback outcome.
type MatcherConfig struct {
	// FieldMatchers is the ordered list under the wire key "matchers".
	FieldMatchers []FieldMatcherConfig

	// OnNoMatch is the optional fallback under "on_no_match".
	OnNoMatch *OnMatchConfig
}

// FieldMatcherConfig mirrors a FieldMatcher.
type FieldMatcherConfig struct {
	Predicate PredicateConfig
	OnMatch   OnMatchConfig
}

// PredicateConfig is the tagged predicate union. Type selects which of the
// remaining fields is populated.
type PredicateConfig struct {
	// Type is one of the Predicate* tags.
	Type string

	// Input is the extractor reference (single only).
	Input *TypedConfig

	// ValueMatch is the built-in match (single only; exclusive with
	// CustomMatch).
	ValueMatch *ValueMatchConfig

	// CustomMatch is the registered-matcher reference (single only;
	// exclusive with ValueMatch).
	CustomMatch *TypedConfig

	// Predicates are the children (and/or only).
	Predicates []PredicateConfig

	// Predicate is the negated child (not only).
	Predicate *PredicateConfig
}

// OnMatchConfig is the tagged outcome union.
type OnMatchConfig struct {
	// Type is one of the OnMatch* tags.
	Type string

	// Action is the decoded wire value (action only). It may be any JSON
	// value; the compiler converts it to the caller's action type.
	Action any

	// Matcher is the nested matcher (matcher only).
	Matcher *MatcherConfig
}

// ValueMatchConfig is a built-in value match: one operation, one string
// pattern, and an optional ASCII case-folding flag.
//
// IgnoreCase is accepted for Exact, Prefix, Suffix, and Contains; the
// linear-time regex engine carries no fold flag, so Regex rejects it at
// decode time.
type ValueMatchConfig struct {
	Op         string
	Value      string
	IgnoreCase bool
}

// TypedConfig references a registered extension: a type_url resolved by the
// registry plus an opaque per-type config map.
type TypedConfig struct {
	TypeURL string
	Config  map[string]any
}
