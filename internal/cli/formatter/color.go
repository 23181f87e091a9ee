package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ecocafe/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// GradeStyle returns the color for a grade tier.
func GradeStyle(tier domain.GradeTier) lipgloss.Style {
	switch tier {
	case domain.TierExcellent:
		return StyleGreen
	case domain.TierGood:
		return StyleYellow
	case domain.TierBasic:
		return StyleRed
	default:
		return StyleDim
	}
}

// GradeBadge renders "🌳 최우수" in the tier's color.
func GradeBadge(g domain.Grade) string {
	if g.Tier == "" {
		return StyleDim.Render("● 등급 없음")
	}
	return GradeStyle(g.Tier).Render(fmt.Sprintf("%s %s", g.Icon, g.Tier))
}

// Stars renders n filled stars out of three.
func Stars(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 3 {
		n = 3
	}
	return StyleYellow.Render(strings.Repeat("★", n)) + StyleDim.Render(strings.Repeat("☆", 3-n))
}

// Header renders a section header with an underline sized to its display
// width.
func Header(text string) string {
	line := strings.Repeat("─", lipgloss.Width(text))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(text), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
