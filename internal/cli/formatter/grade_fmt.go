package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ecocafe/internal/domain"
)

// FormatGradeBoard renders the summary grade card: badge, stars, score bar
// and the tier message.
func FormatGradeBoard(g domain.Grade, answered, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n\n", GradeBadge(g), Stars(g.Stars))
	fmt.Fprintf(&b, "점수 %s\n", RenderProgress(g.Percent/100, 20))
	fmt.Fprintf(&b, "%s\n", Dim(fmt.Sprintf("응답 %d/%d", answered, total)))
	if g.Message != "" {
		fmt.Fprintf(&b, "\n%s", GradeStyle(g.Tier).Render(g.Message))
	}
	return RenderBox("진단 결과", strings.TrimRight(b.String(), "\n"))
}

// FormatResult renders a stored result for confirmation after submit.
func FormatResult(rec *domain.ResultRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(rec.SubjectName), GradeBadge(rec.Grade))
	if rec.SubjectAddress != "" {
		fmt.Fprintf(&b, "%s\n", Dim(rec.SubjectAddress))
	}
	if rec.Coordinates != nil {
		fmt.Fprintf(&b, "%s %s\n", Dim("위치"), rec.Coordinates.String())
	}
	if len(rec.Tags) > 0 {
		fmt.Fprintf(&b, "%s %s\n", Dim("태그"), StyleBlue.Render(strings.Join(rec.Tags, ", ")))
	}
	fmt.Fprintf(&b, "%s %s", Dim("ID"), TruncID(rec.ID))
	return b.String()
}
