package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

func clampFraction(pct float64) float64 {
	switch {
	case pct < 0:
		return 0
	case pct > 1:
		return 1
	default:
		return pct
	}
}

// RenderProgress renders a bar like [████░░░░] 45%. Survey progress only
// grows, so the bar uses a single accent color.
func RenderProgress(pct float64, width int) string {
	pct = clampFraction(pct)
	if width < 2 {
		width = 2
	}
	filled := int(pct * float64(width))
	bar := StyleGreen.Render(strings.Repeat(filledBlock, filled)) +
		StyleDim.Render(strings.Repeat(emptyBlock, width-filled))
	return fmt.Sprintf("[%s] %3.0f%%", bar, pct*100)
}

// RenderSectionProgress renders the section indicator shown above intro and
// question screens, e.g. "섹션 2/4 [██████░░░░░░]  응답 7/18".
func RenderSectionProgress(section, sections, answered, total int) string {
	frac := 0.0
	if sections > 0 {
		frac = float64(section) / float64(sections)
	}
	return fmt.Sprintf("%s %s  %s",
		StyleBold.Render(fmt.Sprintf("섹션 %d/%d", section, sections)),
		RenderProgress(frac, 12),
		Dim(fmt.Sprintf("응답 %d/%d", answered, total)),
	)
}
