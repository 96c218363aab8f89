package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "cpg",
	Short: "C/C++ code property graph frontend",
	Long: `cpg lowers vendor C/C++ ASTs into a language-neutral code
property graph: declarations, statements and expressions connected by
AST containment, data-flow and reference edges.

The input is a JSON dump of the vendor parse tree, one file per
translation unit. Downstream passes (call resolution, control flow,
taint analysis) consume the resulting graph.`,
	Version: Version,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
