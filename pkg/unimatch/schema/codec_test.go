package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
  "matchers": [
    {
      "predicate": {
        "type": "single",
        "input": {"type_url": "type.unimatch.io/extract/map-key", "config": {"key": "name"}},
        "value_match": {"Exact": "alice"}
      },
      "on_match": {"type": "action", "action": "admin"}
    },
    {
      "predicate": {
        "type": "and",
        "predicates": [
          {
            "type": "single",
            "input": {"type_url": "type.unimatch.io/extract/map-key", "config": {"key": "path"}},
            "value_match": {"Prefix": "/api", "ignore_case": true}
          },
          {
            "type": "not",
            "predicate": {
              "type": "single",
              "input": {"type_url": "type.unimatch.io/extract/map-key", "config": {"key": "path"}},
              "value_match": {"Regex": "\\.php$"}
            }
          }
        ]
      },
      "on_match": {
        "type": "matcher",
        "matcher": {
          "matchers": [
            {
              "predicate": {
                "type": "single",
                "input": {"type_url": "type.unimatch.io/extract/map-key", "config": {"key": "method"}},
                "custom_match": {"type_url": "type.unimatch.io/match/any-of", "config": {"values": ["GET", "HEAD"]}}
              },
              "on_match": {"type": "action", "action": "read"}
            }
          ]
        }
      }
    }
  ],
  "on_no_match": {"type": "action", "action": "guest"}
}`

func TestDecodeJSON(t *testing.T) {
	cfg, err := DecodeJSON([]byte(sampleJSON))
	require.NoError(t, err)

	require.Len(t, cfg.FieldMatchers, 2)
	require.NotNil(t, cfg.OnNoMatch)
	assert.Equal(t, OnMatchAction, cfg.OnNoMatch.Type)
	assert.Equal(t, "guest", cfg.OnNoMatch.Action)

	first := cfg.FieldMatchers[0]
	assert.Equal(t, PredicateSingle, first.Predicate.Type)
	require.NotNil(t, first.Predicate.Input)
	assert.Equal(t, "type.unimatch.io/extract/map-key", first.Predicate.Input.TypeURL)
	assert.Equal(t, map[string]any{"key": "name"}, first.Predicate.Input.Config)
	require.NotNil(t, first.Predicate.ValueMatch)
	assert.Equal(t, OpExact, first.Predicate.ValueMatch.Op)
	assert.Equal(t, "alice", first.Predicate.ValueMatch.Value)
	assert.False(t, first.Predicate.ValueMatch.IgnoreCase)

	second := cfg.FieldMatchers[1]
	assert.Equal(t, PredicateAnd, second.Predicate.Type)
	require.Len(t, second.Predicate.Predicates, 2)
	assert.True(t, second.Predicate.Predicates[0].ValueMatch.IgnoreCase)
	assert.Equal(t, PredicateNot, second.Predicate.Predicates[1].Type)

	require.Equal(t, OnMatchMatcher, second.OnMatch.Type)
	require.NotNil(t, second.OnMatch.Matcher)
	nested := second.OnMatch.Matcher.FieldMatchers[0]
	require.NotNil(t, nested.Predicate.CustomMatch)
	assert.Equal(t, "type.unimatch.io/match/any-of", nested.Predicate.CustomMatch.TypeURL)
}

func TestDecodeYAMLMatchesJSON(t *testing.T) {
	yamlDoc := `
matchers:
  - predicate:
      type: single
      input:
        type_url: type.unimatch.io/extract/map-key
        config:
          key: name
      value_match:
        Exact: alice
    on_match:
      type: action
      action: admin
on_no_match:
  type: action
  action: guest
`
	cfg, err := DecodeYAML([]byte(yamlDoc))
	require.NoError(t, err)
	require.Len(t, cfg.FieldMatchers, 1)
	assert.Equal(t, "alice", cfg.FieldMatchers[0].Predicate.ValueMatch.Value)
	assert.Equal(t, "guest", cfg.OnNoMatch.Action)
}

func TestDecodeTypedConfigDefaults(t *testing.T) {
	doc := `{
  "matchers": [
    {
      "predicate": {
        "type": "single",
        "input": {"type_url": "type.unimatch.io/extract/http-path"},
        "value_match": {"Prefix": "/"}
      },
      "on_match": {"type": "action", "action": "ok"}
    }
  ]
}`
	cfg, err := DecodeJSON([]byte(doc))
	require.NoError(t, err)
	assert.NotNil(t, cfg.FieldMatchers[0].Predicate.Input.Config)
	assert.Empty(t, cfg.FieldMatchers[0].Predicate.Input.Config)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		wantPath string
		wantMsg  string
	}{
		{
			name:     "not an object",
			doc:      `[1,2]`,
			wantPath: "",
			wantMsg:  "want an object",
		},
		{
			name:     "missing matchers",
			doc:      `{}`,
			wantPath: "",
			wantMsg:  `missing required key "matchers"`,
		},
		{
			name:     "matchers wrong type",
			doc:      `{"matchers": {}}`,
			wantPath: "matchers",
			wantMsg:  "want an array, got object",
		},
		{
			name:     "unknown top-level key",
			doc:      `{"matchers": [], "extra": 1}`,
			wantPath: "",
			wantMsg:  `unknown key "extra"`,
		},
		{
			name:     "field matcher missing predicate",
			doc:      `{"matchers": [{"on_match": {"type": "action", "action": 1}}]}`,
			wantPath: "matchers[0]",
			wantMsg:  `missing required key "predicate"`,
		},
		{
			name:     "field matcher missing on_match",
			doc:      `{"matchers": [{"predicate": {"type": "and", "predicates": []}}]}`,
			wantPath: "matchers[0]",
			wantMsg:  `missing required key "on_match"`,
		},
		{
			name:     "unknown predicate type",
			doc:      `{"matchers": [{"predicate": {"type": "xor", "predicates": []}, "on_match": {"type": "action", "action": 1}}]}`,
			wantPath: "matchers[0].predicate",
			wantMsg:  `unknown predicate type "xor"`,
		},
		{
			name:     "predicate type wrong json type",
			doc:      `{"matchers": [{"predicate": {"type": 5}, "on_match": {"type": "action", "action": 1}}]}`,
			wantPath: "matchers[0].predicate.type",
			wantMsg:  "want a string, got number",
		},
		{
			name:     "single without input",
			doc:      `{"matchers": [{"predicate": {"type": "single", "value_match": {"Exact": "x"}}, "on_match": {"type": "action", "action": 1}}]}`,
			wantPath: "matchers[0].predicate",
			wantMsg:  `missing required key "input"`,
		},
		{
			name:     "single with both match slots",
			doc:      `{"matchers": [{"predicate": {"type": "single", "input": {"type_url": "u"}, "value_match": {"Exact": "x"}, "custom_match": {"type_url": "u"}}, "on_match": {"type": "action", "action": 1}}]}`,
			wantPath: "matchers[0].predicate",
			wantMsg:  "mutually exclusive",
		},
		{
			name:     "single with neither match slot",
			doc:      `{"matchers": [{"predicate": {"type": "single", "input": {"type_url": "u"}}, "on_match": {"type": "action", "action": 1}}]}`,
			wantPath: "matchers[0].predicate",
			wantMsg:  "one of value_match or custom_match is required",
		},
		{
			name:     "value match with two operations",
			doc:      `{"matchers": [{"predicate": {"type": "single", "input": {"type_url": "u"}, "value_match": {"Exact": "x", "Prefix": "y"}}, "on_match": {"type": "action", "action": 1}}]}`,
			wantPath: "matchers[0].predicate.value_match",
			wantMsg:  "exactly one is allowed",
		},
		{
			name:     "value match without operation",
			doc:      `{"matchers": [{"predicate": {"type": "single", "input": {"type_url": "u"}, "value_match": {"ignore_case": true}}, "on_match": {"type": "action", "action": 1}}]}`,
			wantPath: "matchers[0].predicate.value_match",
			wantMsg:  "missing operation",
		},
		{
			name:     "value match non-string pattern",
			doc:      `{"matchers": [{"predicate": {"type": "single", "input": {"type_url": "u"}, "value_match": {"Exact": 7}}, "on_match": {"type": "action", "action": 1}}]}`,
			wantPath: "matchers[0].predicate.value_match.Exact",
			wantMsg:  "want a string, got number",
		},
		{
			name:     "regex with ignore_case",
			doc:      `{"matchers": [{"predicate": {"type": "single", "input": {"type_url": "u"}, "value_match": {"Regex": "x", "ignore_case": true}}, "on_match": {"type": "action", "action": 1}}]}`,
			wantPath: "matchers[0].predicate.value_match",
			wantMsg:  "ignore_case is not supported with Regex",
		},
		{
			name:     "typed config missing type_url",
			doc:      `{"matchers": [{"predicate": {"type": "single", "input": {"config": {}}, "value_match": {"Exact": "x"}}, "on_match": {"type": "action", "action": 1}}]}`,
			wantPath: "matchers[0].predicate.input",
			wantMsg:  `missing required key "type_url"`,
		},
		{
			name:     "typed config empty type_url",
			doc:      `{"matchers": [{"predicate": {"type": "single", "input": {"type_url": ""}, "value_match": {"Exact": "x"}}, "on_match": {"type": "action", "action": 1}}]}`,
			wantPath: "matchers[0].predicate.input.type_url",
			wantMsg:  "must not be empty",
		},
		{
			name:     "unknown on_match type",
			doc:      `{"matchers": [{"predicate": {"type": "and", "predicates": []}, "on_match": {"type": "descend"}}]}`,
			wantPath: "matchers[0].on_match",
			wantMsg:  `unknown on_match type "descend"`,
		},
		{
			name:     "on_match action missing action",
			doc:      `{"matchers": [{"predicate": {"type": "and", "predicates": []}, "on_match": {"type": "action"}}]}`,
			wantPath: "matchers[0].on_match",
			wantMsg:  `missing required key "action"`,
		},
		{
			name:     "on_match matcher missing matcher",
			doc:      `{"matchers": [{"predicate": {"type": "and", "predicates": []}, "on_match": {"type": "matcher"}}]}`,
			wantPath: "matchers[0].on_match",
			wantMsg:  `missing required key "matcher"`,
		},
		{
			name:     "not without child",
			doc:      `{"matchers": [{"predicate": {"type": "not"}, "on_match": {"type": "action", "action": 1}}]}`,
			wantPath: "matchers[0].predicate",
			wantMsg:  `missing required key "predicate"`,
		},
		{
			name:     "and without predicates",
			doc:      `{"matchers": [{"predicate": {"type": "and"}, "on_match": {"type": "action", "action": 1}}]}`,
			wantPath: "matchers[0].predicate",
			wantMsg:  `missing required key "predicates"`,
		},
		{
			name:     "invalid json",
			doc:      `{`,
			wantPath: "",
			wantMsg:  "invalid JSON",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJSON([]byte(tt.doc))
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr, "document must be rejected")
			assert.Equal(t, tt.wantPath, parseErr.Path)
			assert.Contains(t, parseErr.Message, tt.wantMsg)
		})
	}
}

// Decode -> encode -> decode must produce a structurally equal config.
func TestJSONRoundTrip(t *testing.T) {
	cfg, err := DecodeJSON([]byte(sampleJSON))
	require.NoError(t, err)

	encoded, err := EncodeJSON(cfg)
	require.NoError(t, err)

	again, err := DecodeJSON(encoded)
	require.NoError(t, err)

	assert.Equal(t, cfg, again)
}

func TestParseErrorMessage(t *testing.T) {
	err := &ParseError{Path: "matchers[0].predicate", Message: "boom"}
	assert.Equal(t, "config parse error at matchers[0].predicate: boom", err.Error())

	err = &ParseError{Message: "boom"}
	assert.Equal(t, "config parse error: boom", err.Error())
}
