package exts

import (
	"fmt"
	"strconv"

	"github.com/vitaliisemenov/unimatch/pkg/unimatch"
)

// KindTypeURL identifies the value-kind matcher in configs.
const KindTypeURL = "type.unimatch.io/match/kind"

// kindMatcher matches when the erased value holds the named variant. It is
// the one matcher family that accepts non-string input; Absent still never
// reaches it (the Single predicate short-circuits first), so "absent" is
// not a valid kind here.
type kindMatcher struct {
	kind unimatch.Kind
}

// NewKind builds a matcher for the named kind: "string", "int", "bool", or
// "bytes".
func NewKind(kind string) (unimatch.ValueMatcher, error) {
	var k unimatch.Kind
	switch kind {
	case "string":
		k = unimatch.KindString
	case "int":
		k = unimatch.KindInt
	case "bool":
		k = unimatch.KindBool
	case "bytes":
		k = unimatch.KindBytes
	default:
		return nil, fmt.Errorf("unknown value kind %q (want string, int, bool, bytes)", kind)
	}
	return kindMatcher{kind: k}, nil
}

func (m kindMatcher) Matches(v unimatch.Value) bool {
	return v.Kind() == m.kind
}

func (m kindMatcher) String() string {
	return "kind(" + strconv.Quote(m.kind.String()) + ")"
}

// KindFactory builds a kind matcher from {"kind": "<name>"}.
func KindFactory(config map[string]any) (unimatch.ValueMatcher, error) {
	raw, ok := config["kind"]
	if !ok {
		return nil, fmt.Errorf("missing required config key %q", "kind")
	}
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("config key %q: want a string, got %T", "kind", raw)
	}
	return NewKind(s)
}
