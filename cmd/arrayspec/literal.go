package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"arrayrt/internal/literalsite"
	"arrayrt/internal/rtvalue"
	"arrayrt/internal/trace"
)

var literalRepeat int

func init() {
	literalCmd.Flags().IntVar(&literalRepeat, "repeat", 1, "evaluate the literal this many times against the same site")
}

var literalCmd = &cobra.Command{
	Use:   "literal [values...]",
	Short: "Build a fixed-arity literal array and report the shape it specialised to",
	Long: `literal constructs an array from the given values, left to right, the way a
literal-array expression would. Each value is parsed as an int64, then a
float64, then falls back to a boxed string. Passing --repeat > 1 evaluates
the same values against the same call site more than once, so you can watch
a site stay specialised across repeats.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		values := parseValues(args)
		site := literalsite.New()
		site.SetTracer(traceFromFlags(cmd))

		var result literalsite.Result
		for i := 0; i < literalRepeat; i++ {
			result = site.Build(context.Background(), len(values), func(idx int) rtvalue.Value {
				return values[idx]
			})
		}

		printResult(cmd, result.Store.Shape().String(), result.Length, result.Store.BoxedCopyOfRange(0, result.Length))
		return nil
	},
}

// parseValues turns CLI strings into rtvalue.Value, classifying each as
// tightly as the text itself demonstrates: an integer literal becomes
// KindInt, a literal with a decimal point or exponent becomes KindFloat,
// anything else is boxed verbatim as a string.
func parseValues(args []string) []rtvalue.Value {
	out := make([]rtvalue.Value, len(args))
	for i, a := range args {
		out[i] = parseValue(a)
	}
	return out
}

func parseValue(s string) rtvalue.Value {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return rtvalue.Int64(n)
	}
	if looksFloat(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return rtvalue.Float64(f)
		}
	}
	return rtvalue.Boxed(s)
}

func looksFloat(s string) bool {
	return strings.ContainsAny(s, ".eE") && s != "" && !strings.HasPrefix(s, "0x")
}

func printResult(cmd *cobra.Command, shape string, length int, values []rtvalue.Value) {
	out := cmd.OutOrStdout()
	shapeColor := color.New(color.FgGreen, color.Bold)
	if !colorEnabled(cmd) {
		shapeColor.DisableColor()
	}
	fmt.Fprintf(out, "shape: %s  length: %d\n", shapeColor.Sprint(shape), length)
	rendered := make([]string, len(values))
	for i, v := range values {
		rendered[i] = v.String()
	}
	fmt.Fprintf(out, "values: [%s]\n", strings.Join(rendered, ", "))
}

func colorEnabled(cmd *cobra.Command) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		f, ok := cmd.OutOrStdout().(*os.File)
		return ok && isTerminal(f)
	}
}

func traceFromFlags(cmd *cobra.Command) trace.Tracer {
	levelStr, _ := cmd.Root().PersistentFlags().GetString("trace-level")
	level, err := trace.ParseLevel(levelStr)
	if err != nil || level == trace.LevelOff {
		return trace.Nop
	}
	t, err := trace.New(trace.Config{Level: level, Mode: trace.ModeStream, OutputPath: "-"})
	if err != nil {
		return trace.Nop
	}
	return t
}
