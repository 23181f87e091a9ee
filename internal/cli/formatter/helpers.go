package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(title) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// HumanTimestamp returns a relative timestamp such as "3분 전".
func HumanTimestamp(t time.Time) string {
	return HumanTimestampFrom(t, time.Now())
}

func HumanTimestampFrom(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < 0:
		return t.Local().Format("2006-01-02")
	case diff < time.Minute:
		return "방금 전"
	case diff < time.Hour:
		return fmt.Sprintf("%d분 전", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%d시간 전", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%d일 전", int(diff.Hours()/24))
	default:
		return t.Local().Format("2006-01-02")
	}
}

// TruncID shortens a UUID to its first 8 characters.
func TruncID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// Truncate cuts s to n display cells, adding an ellipsis.
func Truncate(s string, n int) string {
	if lipgloss.Width(s) <= n {
		return s
	}
	var b strings.Builder
	w := 0
	for _, r := range s {
		rw := lipgloss.Width(string(r))
		if w+rw > n-1 {
			break
		}
		b.WriteRune(r)
		w += rw
	}
	return b.String() + "…"
}
