// Command unimatch is the matcher-engine CLI: it validates matcher
// configs, evaluates and traces them against key-value contexts, lists the
// registered extension type URLs, and runs the playground server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build)
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "unimatch",
	Short: "Unified Matcher engine toolbox",
	Long: `unimatch compiles declarative matcher configurations (predicate trees
with actions at the leaves) and evaluates them against key-value contexts.

Configs are accepted as YAML or JSON. All structural limits (tree depth,
matcher width, pattern length) are enforced at compile time; evaluation
itself cannot fail.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
