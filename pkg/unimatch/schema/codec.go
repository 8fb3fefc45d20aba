package schema

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// DecodeJSON decodes a JSON document into a MatcherConfig. Violations of
// the schema (missing keys, wrong types, both-or-neither match slots,
// unknown tags, unknown keys) are reported as *ParseError with the path of
// the offending node.
func DecodeJSON(data []byte) (*MatcherConfig, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, &ParseError{Message: "invalid JSON: " + err.Error()}
	}
	return decodeMatcher("", v)
}

// DecodeYAML decodes a YAML document into a MatcherConfig with the same
// strictness as DecodeJSON.
func DecodeYAML(data []byte) (*MatcherConfig, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, &ParseError{Message: "invalid YAML: " + err.Error()}
	}
	return decodeMatcher("", v)
}

// EncodeJSON serializes cfg back to its wire form. Decoding the output
// yields a structurally equal config.
func EncodeJSON(cfg *MatcherConfig) ([]byte, error) {
	return json.Marshal(cfg)
}
