package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ecocafe/internal/cli/formatter"
	"github.com/alexanderramin/ecocafe/internal/survey"
)

func (m surveyModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(formatter.Header(m.session.Catalog().Title))
	b.WriteString("\n\n")

	if m.session.ShowsProgress() {
		p := m.session.Progress()
		b.WriteString(formatter.RenderSectionProgress(p.Section, p.Sections, p.Answered, p.Total))
		b.WriteString("\n\n")
	}

	switch m.session.State().Step {
	case survey.StepStart:
		b.WriteString(m.viewStart())
	case survey.StepCafeInfo:
		b.WriteString(m.viewInfo())
	case survey.StepSectionIntro:
		b.WriteString(m.viewIntro())
	case survey.StepQuestion:
		b.WriteString(m.viewQuestion())
	case survey.StepSummary:
		b.WriteString(m.viewSummary())
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.statusLine())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(formatter.Dim(m.hint()))
	return b.String()
}

func (m surveyModel) statusLine() string {
	switch m.status {
	case statusSubmitted:
		return formatter.StyleGreen.Render(m.status)
	case statusSubmitFailed, statusNoFix:
		return formatter.StyleRed.Render(m.status)
	case statusSubmitting, statusLocating:
		return formatter.StylePurple.Render(m.status)
	default:
		return formatter.StyleYellow.Render(m.status)
	}
}

func (m surveyModel) hint() string {
	switch m.session.State().Step {
	case survey.StepStart:
		return "enter 시작 · q 종료"
	case survey.StepCafeInfo:
		return "enter 다음 · tab 이동 · esc 뒤로"
	case survey.StepSectionIntro:
		return "enter 시작 · b 뒤로"
	case survey.StepQuestion:
		return "1/y 예 · 2/n 아니요 · 3/d 모르겠어요 · ↑↓ enter 선택 · b 뒤로"
	case survey.StepSummary:
		if m.submitted != nil {
			return "q 종료"
		}
		return "↑↓ 이동 · enter 펼치기/수정 · s 제출 · q 종료"
	}
	return ""
}

func (m surveyModel) viewStart() string {
	var b strings.Builder
	b.WriteString("우리 카페의 탄소중립 실천 수준을 체크해 보세요.\n")
	if sel := m.session.Selection(); sel != nil {
		fmt.Fprintf(&b, "\n%s %s\n", formatter.Dim("선택한 카페"), formatter.Bold(sel.Name))
		if sel.Address != "" {
			fmt.Fprintf(&b, "%s\n", formatter.Dim(sel.Address))
		}
	}
	return b.String()
}

func (m surveyModel) viewInfo() string {
	var b strings.Builder
	b.WriteString(formatter.Bold("카페 정보를 입력해 주세요"))
	b.WriteString("\n\n")
	b.WriteString(m.name.View())
	b.WriteString("\n")
	b.WriteString(m.address.View())
	b.WriteString("\n\n")

	subject := m.session.Subject()
	switch {
	case m.session.Selection() != nil:
		b.WriteString(formatter.Dim("📍 선택한 카페 위치 사용"))
	case subject.GPSEnabled && subject.Coordinates != nil:
		b.WriteString(formatter.Dim("📍 현재 위치 " + subject.Coordinates.String()))
	case m.locating:
		b.WriteString(formatter.Dim("📍 위치 확인 중"))
	default:
		b.WriteString(formatter.Dim("📍 위치 정보 없음"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m surveyModel) viewIntro() string {
	sec, _ := m.session.CurrentSection()
	return fmt.Sprintf("%s\n\n%s\n", formatter.StyleHeader.Render(sec.Title), formatter.Dim("해당 섹션의 질문을 시작합니다."))
}

func (m surveyModel) viewQuestion() string {
	q, _ := m.session.CurrentQuestion()
	var b strings.Builder
	if m.session.Mode() == survey.ModeCorrecting {
		b.WriteString(formatter.StylePurple.Render("[수정 중]"))
		b.WriteString(" ")
	}
	b.WriteString(formatter.Bold(q.Title))
	b.WriteString("\n\n")

	prior, answered := m.session.Answers().Raw(q.ID)
	for i, label := range survey.Labels {
		cursor := "  "
		line := fmt.Sprintf("[%d] %s", i+1, label)
		if i == m.choice {
			cursor = formatter.StyleGreen.Render("› ")
			line = formatter.StyleGreen.Render(line)
		}
		if answered && prior == label {
			line += formatter.Dim("  ✓")
		}
		b.WriteString(cursor + line + "\n")
	}
	return b.String()
}

func (m surveyModel) viewSummary() string {
	p := m.session.Progress()
	var b strings.Builder
	b.WriteString(formatter.FormatGradeBoard(m.session.Grade(), p.Answered, p.Total))
	b.WriteString("\n\n")

	if m.submitted != nil {
		b.WriteString(formatter.FormatResult(m.submitted))
		b.WriteString("\n")
		return b.String()
	}

	answers := m.session.Answers()
	sections := m.session.Catalog().Sections
	for i, row := range m.summaryRows() {
		cursor := "  "
		if i == m.cursor {
			cursor = formatter.StyleGreen.Render("› ")
		}
		sec := sections[row.section]
		if row.isHeader() {
			arrow := "▾"
			if m.collapsed[row.section] {
				arrow = "▸"
			}
			yes := 0
			for _, q := range sec.Questions {
				if v, ok := answers.Value(q.ID); ok && v == survey.Yes {
					yes++
				}
			}
			fmt.Fprintf(&b, "%s%s %s %s\n", cursor, arrow, formatter.StyleHeader.Render(sec.Title),
				formatter.Dim(fmt.Sprintf("(예 %d/%d)", yes, len(sec.Questions))))
			continue
		}
		q, _ := sec.Question(row.questionID)
		raw, ok := answers.Raw(q.ID)
		answer := formatter.Dim("미응답")
		if ok {
			answer = answerStyle(raw)
		}
		fmt.Fprintf(&b, "%s    %s  %s\n", cursor, formatter.Truncate(q.Title, 44), answer)
	}
	return b.String()
}

func answerStyle(raw string) string {
	switch survey.Normalize(raw) {
	case survey.Yes:
		return formatter.StyleGreen.Render(raw)
	case survey.No:
		return formatter.StyleRed.Render(raw)
	default:
		return formatter.StyleYellow.Render(raw)
	}
}
