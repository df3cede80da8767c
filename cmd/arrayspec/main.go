// Command arrayspec is a small harness for exercising the specializing
// array-storage engine from the command line: construct literal arrays,
// drive the incremental builder, watch specialisation live, and benchmark
// transition counts.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"arrayrt/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "arrayspec",
	Short: "Exercise the specializing array-storage engine",
	Long:  `arrayspec drives literal-array construction and incremental building to observe shape specialisation.`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(literalCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace verbosity (off|error|phase|detail|debug)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
