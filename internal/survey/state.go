package survey

import "fmt"

// Step is the kind of screen the session is focused on.
type Step int

const (
	StepStart Step = iota
	StepCafeInfo
	StepSectionIntro
	StepQuestion
	StepSummary
)

func (s Step) String() string {
	switch s {
	case StepStart:
		return "START"
	case StepCafeInfo:
		return "CAFE_INFO"
	case StepSectionIntro:
		return "SECTION_INTRO"
	case StepQuestion:
		return "QUESTION"
	case StepSummary:
		return "SUMMARY"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

// State is the single current focus of a session. SectionIndex is -1 on
// steps that have no active section; QuestionID is set only on StepQuestion.
type State struct {
	SectionIndex int
	Step         Step
	QuestionID   string
}

func (s State) String() string {
	switch s.Step {
	case StepQuestion:
		return fmt.Sprintf("%s(%d,%s)", s.Step, s.SectionIndex, s.QuestionID)
	case StepSectionIntro:
		return fmt.Sprintf("%s(%d)", s.Step, s.SectionIndex)
	default:
		return s.Step.String()
	}
}

func startState() State   { return State{SectionIndex: -1, Step: StepStart} }
func infoState() State    { return State{SectionIndex: -1, Step: StepCafeInfo} }
func summaryState() State { return State{SectionIndex: -1, Step: StepSummary} }

func introState(section int) State {
	return State{SectionIndex: section, Step: StepSectionIntro}
}

func questionState(section int, id string) State {
	return State{SectionIndex: section, Step: StepQuestion, QuestionID: id}
}

// Mode distinguishes the linear walk from a single-answer correction
// started on the summary.
type Mode int

const (
	ModeLinear Mode = iota
	ModeCorrecting
)

func (m Mode) String() string {
	if m == ModeCorrecting {
		return "correcting"
	}
	return "linear"
}
