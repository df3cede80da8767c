package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"arrayrt/internal/literalsite"
	"arrayrt/internal/rtvalue"
	"arrayrt/internal/store"
	"arrayrt/internal/trace"
	"arrayrt/internal/ui"
)

var (
	inspectSites  int
	inspectDelay  time.Duration
	inspectWidth  int
)

func init() {
	inspectCmd.Flags().IntVar(&inspectSites, "sites", 4, "number of simulated literal call sites to watch")
	inspectCmd.Flags().IntVar(&inspectWidth, "width", 6, "elements per build")
	inspectCmd.Flags().DurationVar(&inspectDelay, "delay", 150*time.Millisecond, "pause between simulated builds")
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Watch specialisation happen live across simulated call sites",
	Long: `inspect launches a small terminal UI that drives --sites independent literal
call sites through a handful of builds each, at random, and renders the
shape each one lands on as it specialises - useful for watching the lattice
widen in real time instead of reading transition counts after the fact.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		events := make(chan ui.Event)
		names := make([]string, inspectSites)
		for i := range names {
			names[i] = fmt.Sprintf("site-%d", i)
		}

		go simulateSites(names, inspectWidth, inspectDelay, events, traceFromFlags(cmd))

		model := ui.NewProgressModel("inspecting call sites", names, events)
		p := tea.NewProgram(model)
		_, err := p.Run()
		return err
	},
}

// simulateSites drives each named literal site through a short burst of
// builds with randomly shaped values, emitting a ui.Event after every build
// so the TUI can render the shape transition live, then closes events once
// every site has frozen at Object or exhausted its burst.
func simulateSites(names []string, width int, delay time.Duration, events chan<- ui.Event, tracer trace.Tracer) {
	defer close(events)

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	sites := make([]*literalsite.Site, len(names))
	lastShape := make([]store.Shape, len(names))
	for i := range sites {
		sites[i] = literalsite.New()
		sites[i].SetTracer(tracer)
		lastShape[i] = store.ShapeEmpty
	}

	ctx := context.Background()
	const burstsPerSite = 6
	for burst := 0; burst < burstsPerSite; burst++ {
		for i, site := range sites {
			values := randomBurstValues(r, width, burst)
			result := site.Build(ctx, width, func(idx int) rtvalue.Value { return values[idx] })

			from := "U"
			if burst > 0 {
				from = lastShape[i].String()
			}
			events <- ui.Event{Site: names[i], From: from, To: result.Store.Shape(), Done: burst == burstsPerSite-1}
			lastShape[i] = result.Store.Shape()

			time.Sleep(delay)
		}
	}
}

// randomBurstValues keeps every site all-int for its first burst so the
// viewer sees an initial specialisation, then on later bursts sometimes
// injects a string to trigger a widening to Object - purely illustrative.
func randomBurstValues(r *rand.Rand, width, burst int) []rtvalue.Value {
	out := make([]rtvalue.Value, width)
	for i := range out {
		out[i] = rtvalue.Int64(int64(r.Intn(1000)))
	}
	if burst > 0 && r.Intn(3) == 0 {
		out[r.Intn(width)] = rtvalue.Boxed(fmt.Sprintf("s%d", r.Intn(100)))
	}
	return out
}
