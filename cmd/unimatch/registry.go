package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vitaliisemenov/unimatch/internal/server"
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "List registered extension type URLs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		reg, err := server.BuildRegistry()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "extractors:")
		for _, url := range reg.ExtractorTypeURLs() {
			fmt.Fprintf(out, "  %s\n", url)
		}
		fmt.Fprintln(out, "matchers:")
		for _, url := range reg.MatcherTypeURLs() {
			fmt.Fprintf(out, "  %s\n", url)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registryCmd)
}
