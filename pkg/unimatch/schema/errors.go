package schema

import "fmt"

// ParseError reports a document that does not decode against the schema.
// Path pinpoints the offending node, e.g. "matchers[2].predicate".
type ParseError struct {
	Path    string
	Message string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return "config parse error: " + e.Message
	}
	return fmt.Sprintf("config parse error at %s: %s", e.Path, e.Message)
}

func parseErrorf(path, format string, args ...any) error {
	return &ParseError{Path: path, Message: fmt.Sprintf(format, args...)}
}
