package main

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"arrayrt/internal/builder"
	"arrayrt/internal/config"
	"arrayrt/internal/literalsite"
	"arrayrt/internal/observ"
	"arrayrt/internal/prof"
	"arrayrt/internal/rtvalue"
	"arrayrt/internal/sitectl"
)

var (
	benchRepeats int
	benchWidth   int
	benchKind    string
	benchCPUProf string
)

func init() {
	benchCmd.Flags().IntVar(&benchRepeats, "repeats", 100, "number of times to rebuild against the same call site")
	benchCmd.Flags().IntVar(&benchWidth, "width", 8, "number of elements per build")
	benchCmd.Flags().StringVar(&benchKind, "kind", "literal", "site kind to exercise (literal|builder)")
	benchCmd.Flags().StringVar(&benchCPUProf, "cpuprofile", "", "write a CPU profile to this path")
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Repeat construction against one call site and report transition counts",
	Long: `bench rebuilds an array of the given width --repeats times against a single
call site, all with the same all-int values, and reports how many times the
site actually transitioned shape - a well-behaved site specialises once and
then counts zero further transitions for every repeat after the first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if benchCPUProf != "" {
			if err := prof.StartCPU(benchCPUProf); err != nil {
				return fmt.Errorf("cpuprofile: %w", err)
			}
			defer prof.StopCPU()
		}

		timer := observ.NewTimer()
		idx := timer.Begin("run")

		var stats sitectl.Stats
		switch benchKind {
		case "literal":
			stats = benchLiteral(benchRepeats, benchWidth)
		case "builder":
			stats = benchBuilder(benchRepeats, benchWidth)
		default:
			return fmt.Errorf("unknown --kind %q (want literal or builder)", benchKind)
		}

		timer.End(idx, fmt.Sprintf("%d repeats x %d elements", benchRepeats, benchWidth))

		printer := message.NewPrinter(language.English)
		out := cmd.OutOrStdout()
		printer.Fprintf(out, "repeats: %d  width: %d  total transitions: %d\n", benchRepeats, benchWidth, stats.Total)
		printTransitions(cmd, stats)
		fmt.Fprint(out, timer.Summary())
		return nil
	},
}

func benchLiteral(repeats, width int) sitectl.Stats {
	site := literalsite.New()
	values := randomInts(width)
	ctx := context.Background()
	for i := 0; i < repeats; i++ {
		site.Build(ctx, width, func(idx int) rtvalue.Value { return values[idx] })
	}
	return snapshotLiteral(site)
}

func benchBuilder(repeats, width int) sitectl.Stats {
	cfg := config.Default()
	b := builder.New()
	values := randomInts(width)
	var stats sitectl.Stats
	for i := 0; i < repeats; i++ {
		s, length := b.Start(cfg.UninitializedSize)
		for _, v := range values {
			s = b.Ensure(s, length+1)
			s = b.AppendValue(s, length, v)
			length++
		}
		b.Finish(s, length)
		stats = b.Snapshot()
	}
	return stats
}

func randomInts(n int) []rtvalue.Value {
	r := rand.New(rand.NewSource(1))
	out := make([]rtvalue.Value, n)
	for i := range out {
		out[i] = rtvalue.Int64(int64(r.Intn(1000)))
	}
	return out
}

func snapshotLiteral(s *literalsite.Site) sitectl.Stats {
	return s.Snapshot()
}
