package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	defer func() {
		// Reset flag state for the next test.
		evalContextPairs = nil
		evalContextFile = ""
		evalTrace = false
		evalJSONOut = false
	}()
	err := rootCmd.Execute()
	return buf.String(), err
}

const cliConfigYAML = `
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

func TestCheckCommand(t *testing.T) {
	path := writeFile(t, "config.yaml", cliConfigYAML)

	out, err := runCLI(t, "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "OK: 1 field matchers, depth 1")
}

func TestCheckCommandRejectsBadConfig(t *testing.T) {
	path := writeFile(t, "config.json", `{"matchers": [{"predicate": {"type": "xor"}, "on_match": {"type": "action", "action": 1}}]}`)

	_, err := runCLI(t, "check", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown predicate type")
}

func TestEvalCommand(t *testing.T) {
	path := writeFile(t, "config.yaml", cliConfigYAML)

	out, err := runCLI(t, "eval", path, "--context", "name=alice")
	require.NoError(t, err)
	assert.Contains(t, out, "match: admin")

	out, err = runCLI(t, "eval", path, "--context", "name=bob")
	require.NoError(t, err)
	assert.Contains(t, out, "match: guest")
}

func TestEvalCommandTrace(t *testing.T) {
	path := writeFile(t, "config.yaml", cliConfigYAML)

	out, err := runCLI(t, "eval", path, "--context", "name=bob", "--trace")
	require.NoError(t, err)
	assert.Contains(t, out, "[0]")
	assert.Contains(t, out, "exact")
	assert.Contains(t, out, "fallback: used")
	assert.Contains(t, out, "match: guest")
}

func TestEvalCommandContextFile(t *testing.T) {
	cfgPath := writeFile(t, "config.yaml", cliConfigYAML)
	ctxPath := writeFile(t, "ctx.json", `{"name": "alice"}`)

	out, err := runCLI(t, "eval", cfgPath, "--context-file", ctxPath)
	require.NoError(t, err)
	assert.Contains(t, out, "match: admin")
}

func TestEvalCommandBadContextPair(t *testing.T) {
	path := writeFile(t, "config.yaml", cliConfigYAML)

	_, err := runCLI(t, "eval", path, "--context", "nonsense")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want key=value")
}

func TestRegistryCommand(t *testing.T) {
	out, err := runCLI(t, "registry")
	require.NoError(t, err)
	assert.Contains(t, out, "type.unimatch.io/extract/map-key")
	assert.Contains(t, out, "type.unimatch.io/match/any-of")
	assert.Contains(t, out, "type.unimatch.io/match/kind")
}
