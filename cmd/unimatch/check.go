package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <config-file>",
	Short: "Validate a matcher configuration",
	Long: `Decode and compile a matcher configuration without evaluating it.

Exits non-zero with the construction error (parse error, unknown type URL,
invalid or oversized pattern, width or depth violation) when the config is
rejected.`,
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
		fmt.Fprintf(cmd.OutOrStdout(), "OK: %d field matchers, depth %d\n",
			m.FieldMatcherCount(), m.Depth())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
