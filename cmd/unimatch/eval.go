package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vitaliisemenov/unimatch/pkg/unimatch/contexts/mapctx"
)

var (
	evalContextPairs []string
	evalContextFile  string
	evalTrace        bool
	evalJSONOut      bool
)

var evalCmd = &cobra.Command{
	Use:   "eval <config-file>",
	Short: "Evaluate a matcher configuration against a context",
	Long: `Compile a matcher configuration and evaluate it against a key-value
context supplied with --context pairs and/or a JSON object file.

With --trace, every top-level field matcher's outcome is printed instead of
just the result; the traced result always equals the plain evaluation.`,
	Example: `  unimatch eval routes.yaml --context path=/api/v2/users --context method=GET
  unimatch eval routes.yaml --context-file request.json --trace`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := readConfig(args[0])
		if err != nil {
			return err
		}
		m, err := compileConfig(cfg)
		if err != nil {
			return err
		}
		ctx, err := buildContext()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if evalTrace {
			t := m.Trace(ctx)
			if evalJSONOut {
				return json.NewEncoder(out).Encode(t)
			}
			for _, step := range t.Steps {
				mark := " "
				if step.Matched {
					mark = "*"
				}
				fmt.Fprintf(out, "%s [%d] %s\n", mark, step.Index, step.Predicate)
			}
			if t.UsedFallback {
				fmt.Fprintln(out, "fallback: used")
			}
			printResult(out, t.Result, t.Matched)
			return nil
		}

		result, matched := m.Evaluate(ctx)
		if evalJSONOut {
			return json.NewEncoder(out).Encode(map[string]any{
				"matched": matched,
				"result":  result,
			})
		}
		printResult(out, result, matched)
		return nil
	},
}

func buildContext() (mapctx.Context, error) {
	ctx := mapctx.Context{}
	if evalContextFile != "" {
		data, err := os.ReadFile(evalContextFile)
		if err != nil {
			return nil, fmt.Errorf("read context file: %w", err)
		}
		if err := json.Unmarshal(data, &ctx); err != nil {
			return nil, fmt.Errorf("context file %s: want a JSON object of strings: %w", evalContextFile, err)
		}
	}
	for _, pair := range evalContextPairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --context %q: want key=value", pair)
		}
		ctx[key] = value
	}
	return ctx, nil
}

func printResult(out io.Writer, result any, matched bool) {
	if !matched {
		fmt.Fprintln(out, "no match")
		return
	}
	fmt.Fprintf(out, "match: %v\n", result)
}

func init() {
	evalCmd.Flags().StringArrayVar(&evalContextPairs, "context", nil, "context entry as key=value (repeatable)")
	evalCmd.Flags().StringVar(&evalContextFile, "context-file", "", "JSON object file with context entries")
	evalCmd.Flags().BoolVar(&evalTrace, "trace", false, "print the per-field-matcher trace")
	evalCmd.Flags().BoolVar(&evalJSONOut, "json", false, "emit JSON output")
	rootCmd.AddCommand(evalCmd)
}
