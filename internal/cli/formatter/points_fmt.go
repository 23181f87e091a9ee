package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ecocafe/internal/cache"
	"github.com/alexanderramin/ecocafe/internal/catalog"
	"github.com/alexanderramin/ecocafe/internal/domain"
	"github.com/alexanderramin/ecocafe/internal/places"
)

// FormatPoints renders map points as a table.
func FormatPoints(points []domain.ResultPoint) string {
	if len(points) == 0 {
		return Dim("표시할 매장이 없습니다.") + "\n"
	}
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{
			Bold(Truncate(p.Name, 24)),
			Stars(p.Stars),
			fmt.Sprintf("%.5f,%.5f", p.Lat, p.Lng),
			StyleBlue.Render(strings.Join(p.Tags, ", ")),
			Dim(Truncate(p.Address, 32)),
		})
	}
	out := RenderTable([]string{"매장", "등급", "좌표", "태그", "주소"}, rows)
	return out + Dim(fmt.Sprintf("%d곳", len(points))) + "\n"
}

// FormatTags renders the filter presets on one line.
func FormatTags(tags []string) string {
	styled := make([]string, len(tags))
	for i, t := range tags {
		styled[i] = StyleBlue.Render("#" + t)
	}
	return strings.Join(styled, "  ") + "\n"
}

// FormatPlaces renders numbered place search candidates.
func FormatPlaces(found []places.Place) string {
	rows := make([][]string, 0, len(found))
	for i, p := range found {
		rows = append(rows, []string{
			StyleHeader.Render(fmt.Sprintf("%d", i+1)),
			Bold(p.Name),
			Dim(p.Address),
		})
	}
	return RenderTable([]string{"#", "장소", "주소"}, rows)
}

// FormatReports renders stored reports, newest first.
func FormatReports(reports []*domain.ReportRecord) string {
	if len(reports) == 0 {
		return Dim("접수된 의견이 없습니다.") + "\n"
	}
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		cafe := ""
		if r.Selection != nil {
			cafe = r.Selection.Name
		}
		rows = append(rows, []string{
			Dim(HumanTimestamp(r.CreatedAt)),
			StylePurple.Render(r.ContextLabel),
			Truncate(r.Message, 48),
			cafe,
		})
	}
	return RenderTable([]string{"시각", "화면", "내용", "매장"}, rows)
}

// FormatEvents renders recent submitted-result events.
func FormatEvents(events []cache.SubmittedEvent) string {
	if len(events) == 0 {
		return Dim("최근 제출 이벤트가 없습니다.") + "\n"
	}
	rows := make([][]string, 0, len(events))
	for _, ev := range events {
		rows = append(rows, []string{
			Dim(ev.StreamID),
			Bold(ev.CafeName),
			Stars(ev.Stars),
			TruncID(ev.ResultID),
		})
	}
	return RenderTable([]string{"이벤트", "매장", "등급", "결과"}, rows)
}

// FormatCatalog renders the section and question outline.
func FormatCatalog(c *catalog.Catalog) string {
	var b strings.Builder
	b.WriteString(Header(c.Title))
	b.WriteString("\n")
	for i, s := range c.Sections {
		fmt.Fprintf(&b, "\n%s %s\n", StyleHeader.Render(fmt.Sprintf("%d.", i+1)), Bold(s.Title))
		for _, q := range s.Questions {
			line := fmt.Sprintf("  %s %s", Dim(q.ID), q.Title)
			if q.Tag != "" {
				line += " " + StyleBlue.Render("#"+q.Tag)
			}
			b.WriteString(line + "\n")
		}
	}
	fmt.Fprintf(&b, "\n%s\n", Dim(fmt.Sprintf("%d개 섹션, %d개 문항", len(c.Sections), c.QuestionCount())))
	return b.String()
}
