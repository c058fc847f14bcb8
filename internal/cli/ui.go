package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/dyike/CortexFin/consts"
	"github.com/dyike/CortexFin/internal/storage"
)

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true)

	answerPrefixStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#10B981")).
				Bold(true)

	progressStyle = lipgloss.NewStyle().
			Faint(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Width(20)
)

func renderAnswer(output string) string {
	return answerPrefixStyle.Render(consts.AnswerPrefix) + output
}

func renderProgress(node string) string {
	return progressStyle.Render("  → " + node)
}

func renderField(label, value string) string {
	if value == "" {
		value = "-"
	}
	return labelStyle.Render(label) + value
}

func renderSessionHeader(id string, started time.Time) string {
	return hintStyle.Render(fmt.Sprintf("会话 %s，开始于 %s (%s)", id, started.Format("15:04:05"), humanize.Time(started)))
}

func renderTurn(t storage.Turn) string {
	header := fmt.Sprintf("%s (%s)  %s  %s", t.StartedAt.Format("2006-01-02 15:04:05"), humanize.Time(t.StartedAt),
		t.Intent, t.Duration.Round(time.Millisecond))
	body := renderField("Q", t.Query) + "\n" + renderField("A", t.Output)
	if t.Fallback {
		header += "  " + errorStyle.Render("fallback")
	}
	return hintStyle.Render(header) + "\n" + body + "\n"
}
