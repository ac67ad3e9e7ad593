package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cba/internal/pipeline"
)

// SummaryRow is one line of the end-of-run table. Values are counts or sizes
// and are right aligned.
type SummaryRow struct {
	Label string
	Value string
}

func RenderSummary(rows []SummaryRow) string {
	var labelWidth, valueWidth int
	for _, row := range rows {
		labelWidth = max(labelWidth, lipgloss.Width(row.Label))
		valueWidth = max(valueWidth, lipgloss.Width(row.Value))
	}

	rule := dimStyle.Render(strings.Repeat("─", labelWidth+valueWidth+3))
	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, rule)
	for _, row := range rows {
		label := pad(row.Label, labelWidth, false)
		value := pad(row.Value, valueWidth, true)
		lines = append(lines, labelStyle.Render(label)+dimStyle.Render(" │ ")+valueStyle.Render(value))
	}
	lines = append(lines, rule)
	return strings.Join(lines, "\n")
}

// RenderEvent formats one event as a single line for non-interactive output.
// Fraction events render as a percentage.
func RenderEvent(ev pipeline.Event) string {
	switch ev.Kind {
	case pipeline.KindStarting:
		return accentStyle.Render(ev.Text)
	case pipeline.KindFraction:
		return dimStyle.Render(fmt.Sprintf("  %3.0f%%", ev.Fraction*100))
	case pipeline.KindAborted:
		return errorStyle.Render("aborted")
	case pipeline.KindDone:
		return ""
	default:
		return labelStyle.Render(ev.Text)
	}
}

func pad(s string, width int, left bool) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	if left {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

var (
	valueStyle  = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	accentStyle = lipgloss.NewStyle().Foreground(ColorAccentAlt)
)
