package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cba/internal/pipeline"
)

type Model struct {
	events    <-chan pipeline.Event
	interrupt func()
	started   time.Time
	width     int
	message   string
	folder    string
	index     int
	total     int
	fraction  float64
	aborted   bool
	quitting  bool
}

type doneMsg struct{}

type eventMsg pipeline.Event

// NewModel renders events until the channel is closed. interrupt, if set, is
// called once when the user presses ctrl+c; the view keeps running until the
// run winds down and closes the channel.
func NewModel(events <-chan pipeline.Event, interrupt func()) Model {
	return Model{events: events, interrupt: interrupt, started: time.Now()}
}

func (m Model) Init() tea.Cmd {
	return listenForEvents(m.events)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		m = m.apply(pipeline.Event(msg))
		return m, listenForEvents(m.events)
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC && m.interrupt != nil {
			m.interrupt()
			m.interrupt = nil
			m.message = "Stopping…"
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) apply(ev pipeline.Event) Model {
	switch ev.Kind {
	case pipeline.KindStarting:
		m.index, m.total, m.folder = ev.Index, ev.Total, ev.Folder
		m.message = ev.Text
	case pipeline.KindFraction:
		if ev.Fraction > m.fraction {
			m.fraction = ev.Fraction
		}
	case pipeline.KindMessage:
		m.message = ev.Text
	case pipeline.KindAborted:
		m.aborted = true
	case pipeline.KindDone:
		m.fraction = 1
	}
	return m
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	barWidth := 40
	if m.width > 0 {
		barWidth = int(math.Min(60, float64(m.width-10)))
		if barWidth < 20 {
			barWidth = 20
		}
	}

	elapsed := time.Since(m.started).Round(time.Millisecond)
	folder := "-"
	if m.total > 0 {
		folder = fmt.Sprintf("%d/%d %s", m.index, m.total, m.folder)
	}

	message := labelStyle.Render(m.message)
	if m.aborted {
		message = errorStyle.Render(m.message)
	}

	lines := []string{
		titleStyle.Render("cba"),
		labelStyle.Render("Folder: ") + dimStyle.Render(folder),
		message,
		dimStyle.Render(fmt.Sprintf("Elapsed: %s", elapsed)),
		barStyle.Render(renderBar(barWidth, m.fraction)),
	}

	return strings.Join(lines, "\n")
}

func listenForEvents(events <-chan pipeline.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func renderBar(width int, ratio float64) string {
	filled := int(math.Round(ratio * float64(width)))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "] " + fmt.Sprintf("%3.0f%%", ratio*100)
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	labelStyle = lipgloss.NewStyle().Foreground(ColorInk)
	barStyle   = lipgloss.NewStyle().Foreground(ColorSuccess)
	dimStyle   = lipgloss.NewStyle().Foreground(ColorDim)
	errorStyle = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
)
