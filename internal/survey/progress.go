package survey

// Progress summarizes how far a session has come.
type Progress struct {
	Section  int // 1-based current section, 0 when none is active
	Sections int
	Answered int
	Total    int
}

// SectionFraction is the section-based fill used by the progress bar.
func (p Progress) SectionFraction() float64 {
	if p.Sections == 0 {
		return 0
	}
	return float64(p.Section) / float64(p.Sections)
}

// Progress reports section position and answer counts.
func (e *Engine) Progress() Progress {
	p := Progress{
		Sections: len(e.catalog.Sections),
		Answered: e.answers.Len(),
		Total:    e.catalog.QuestionCount(),
	}
	if e.state.SectionIndex >= 0 && e.state.SectionIndex < p.Sections {
		p.Section = e.state.SectionIndex + 1
	}
	return p
}

// ShowsProgress reports whether the progress bar belongs on the current
// screen: only inside sections.
func (e *Engine) ShowsProgress() bool {
	switch e.state.Step {
	case StepSectionIntro, StepQuestion:
		return true
	default:
		return false
	}
}

// ShowsBack reports whether back-navigation is offered on the current
// screen. The start screen and the summary have none.
func (e *Engine) ShowsBack() bool {
	return e.state.Step != StepStart && e.state.Step != StepSummary
}
