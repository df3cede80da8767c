package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"arrayrt/internal/builder"
	"arrayrt/internal/config"
	"arrayrt/internal/rtvalue"
	"arrayrt/internal/sitectl"
)

var buildScript string

func init() {
	buildCmd.Flags().StringVar(&buildScript, "ops", "", `comma-separated operations, e.g. "push:1,push:2,push:x,push:3.5"`)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Drive the incremental builder through a scripted push sequence",
	Long: `build replays a sequence of push operations against one builder call site,
the way repeated array.push calls would, and reports the shape the site
ended up specialised to plus a count of every lattice transition it
recorded along the way.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		values, err := parseOps(buildScript)
		if err != nil {
			return err
		}

		cfg := config.Default()
		b := builder.New()
		b.SetTracer(traceFromFlags(cmd))

		s, length := b.Start(cfg.UninitializedSize)
		for _, v := range values {
			s = b.Ensure(s, length+1)
			s = b.AppendValue(s, length, v)
			length++
		}
		final := b.Finish(s, length)

		printResult(cmd, final.Shape().String(), length, final.BoxedCopyOfRange(0, length))
		printTransitions(cmd, b.Snapshot())
		return nil
	},
}

// parseOps reads a comma-separated "push:<value>" script into the values
// that would be pushed, in order.
func parseOps(script string) ([]rtvalue.Value, error) {
	if strings.TrimSpace(script) == "" {
		return nil, nil
	}
	parts := strings.Split(script, ",")
	out := make([]rtvalue.Value, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		op, arg, ok := strings.Cut(p, ":")
		if !ok || op != "push" {
			return nil, fmt.Errorf("unsupported op %q (only push:<value> is supported)", p)
		}
		out = append(out, parseValue(arg))
	}
	return out, nil
}

func printTransitions(cmd *cobra.Command, stats sitectl.Stats) {
	out := cmd.OutOrStdout()
	if stats.Total == 0 {
		fmt.Fprintln(out, "transitions: none")
		return
	}
	edges := make([]string, 0, len(stats.Transitions))
	for edge := range stats.Transitions {
		edges = append(edges, edge)
	}
	sort.Strings(edges)
	fmt.Fprintf(out, "transitions (%d total):\n", stats.Total)
	for _, edge := range edges {
		fmt.Fprintf(out, "  %-16s %d\n", edge, stats.Transitions[edge])
	}
}
