package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cba/internal/pipeline"
)

func TestModelTracksEvents(t *testing.T) {
	events := make(chan pipeline.Event)
	var m tea.Model = NewModel(events, nil)

	for _, ev := range []pipeline.Event{
		{Kind: pipeline.KindMessage, Text: "Directory read"},
		{Kind: pipeline.KindStarting, Index: 1, Total: 2, Folder: "ch1", Text: "1/2 ch1"},
		{Kind: pipeline.KindFraction, Fraction: 0.5},
	} {
		m, _ = m.Update(eventMsg(ev))
	}

	model := m.(Model)
	if model.fraction != 0.5 || model.index != 1 || model.total != 2 || model.folder != "ch1" {
		t.Fatalf("model = %+v", model)
	}
	view := model.View()
	if !strings.Contains(view, "1/2 ch1") || !strings.Contains(view, "50%") {
		t.Fatalf("view = %q", view)
	}

	m, _ = m.Update(eventMsg{Kind: pipeline.KindAborted, Text: "x"})
	if !m.(Model).aborted {
		t.Fatalf("expected aborted")
	}
}

func TestModelInterruptsOnce(t *testing.T) {
	calls := 0
	var m tea.Model = NewModel(make(chan pipeline.Event), func() { calls++ })
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if calls != 1 {
		t.Fatalf("interrupt called %d times", calls)
	}
}

func TestModelQuitsWhenEventsClose(t *testing.T) {
	events := make(chan pipeline.Event)
	close(events)
	m := NewModel(events, nil)
	msg := m.Init()()
	if _, ok := msg.(doneMsg); !ok {
		t.Fatalf("expected doneMsg, got %T", msg)
	}
	next, cmd := m.Update(msg)
	if cmd == nil || next.View() != "" {
		t.Fatalf("expected quit with empty view")
	}
}

func TestRenderSummary(t *testing.T) {
	out := RenderSummary([]SummaryRow{{Label: "Archived", Value: "2"}, {Label: "Pages packed", Value: "40"}})
	lines := strings.Split(out, "\n")
	if len(lines) != 4 || !strings.Contains(lines[1], "Archived") || !strings.Contains(lines[2], "40") {
		t.Fatalf("summary = %q", out)
	}
}

func TestRenderSummaryAlignsValuesRight(t *testing.T) {
	out := RenderSummary([]SummaryRow{{Label: "Archived", Value: "2"}, {Label: "Input size", Value: "1.2 MB"}})
	lines := strings.Split(out, "\n")
	if lipgloss.Width(lines[1]) != lipgloss.Width(lines[2]) {
		t.Fatalf("rows differ in width: %q", out)
	}
	if !strings.HasSuffix(lines[1], "     2") || !strings.HasSuffix(lines[2], "1.2 MB") {
		t.Fatalf("values not right aligned: %q", out)
	}
}

func TestRenderEvent(t *testing.T) {
	if got := RenderEvent(pipeline.Event{Kind: pipeline.KindDone}); got != "" {
		t.Fatalf("done renders %q", got)
	}
	if got := RenderEvent(pipeline.Event{Kind: pipeline.KindMessage, Text: "Complete"}); !strings.Contains(got, "Complete") {
		t.Fatalf("message renders %q", got)
	}
	if got := RenderEvent(pipeline.Event{Kind: pipeline.KindFraction, Fraction: 1}); !strings.Contains(got, "100%") {
		t.Fatalf("fraction renders %q", got)
	}
}
