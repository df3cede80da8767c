// Package ui renders live specialisation progress for the arrayspec CLI's
// inspect subcommand: one row per watched call site, updated as transition
// events stream in from the engine.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"arrayrt/internal/store"
)

// Event reports the shape a watched call site holds after one build, and
// the shape it held before it; the inspect subcommand sends one per
// simulated build, whether or not the build changed the shape.
type Event struct {
	Site string
	From string // "U" for uninitialised, else a shape name
	To   store.Shape
	Done bool
}

type siteItem struct {
	name   string
	from   string
	shape  store.Shape
	frozen bool // Object is the absorbing top: once reached, no further transition is possible
}

type eventMsg Event
type doneMsg struct{}

type progressModel struct {
	title   string
	events  <-chan Event
	spinner spinner.Model
	prog    progress.Model
	items   []siteItem
	index   map[string]int
	width   int
	done    bool
}

// NewProgressModel returns a Bubble Tea model rendering live transitions for
// the named call sites as events arrive on the channel.
func NewProgressModel(title string, sites []string, events <-chan Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]siteItem, 0, len(sites))
	index := make(map[string]int, len(sites))
	for i, name := range sites {
		items = append(items, siteItem{name: name, from: "U", shape: store.ShapeEmpty})
		index[name] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		next, cmd := m.prog.Update(msg)
		m.prog = next.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.done {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	shapeWidth := 10
	nameWidth := m.width - shapeWidth - 4
	if nameWidth < 16 {
		nameWidth = 16
	}

	for _, item := range m.items {
		name := truncate(item.name, nameWidth)
		label := item.shape.String()
		styled := styleShape(item.shape).Render(fmt.Sprintf("%10s", label))
		b.WriteString(fmt.Sprintf("  %s %s\n", styled, name))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")

	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev Event) tea.Cmd {
	idx, ok := m.index[ev.Site]
	if !ok {
		return nil
	}
	m.items[idx].from = ev.From
	m.items[idx].shape = ev.To
	m.items[idx].frozen = ev.To == store.ShapeObject

	total := 0.0
	for _, item := range m.items {
		total += latticeProgress(item.shape)
	}
	return m.prog.SetPercent(total / float64(len(m.items)))
}

// latticeProgress maps a shape to a [0,1] fraction of the lattice's height
// (≤5), used only to drive the progress bar - Int/Long/Double are treated
// as equally "far along" since they are mutually incomparable.
func latticeProgress(shape store.Shape) float64 {
	switch shape {
	case store.ShapeEmpty:
		return 0.1
	case store.ShapeInt, store.ShapeLong, store.ShapeDouble:
		return 0.6
	case store.ShapeObject:
		return 1.0
	default:
		return 0.0
	}
}

func styleShape(shape store.Shape) lipgloss.Style {
	switch shape {
	case store.ShapeObject:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case store.ShapeInt, store.ShapeLong, store.ShapeDouble:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
