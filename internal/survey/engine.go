// Package survey implements the navigation engine behind the café
// self-assessment: a single-focus state machine over the question catalog
// with a history stack for back-navigation, a correction mode for editing
// one answer from the summary, and grade derivation.
package survey

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/ecocafe/internal/catalog"
	"github.com/alexanderramin/ecocafe/internal/domain"
)

var (
	// ErrInvalidTransition is returned when an operation is not allowed from
	// the current step or mode. State is left unchanged.
	ErrInvalidTransition = errors.New("invalid survey transition")

	// ErrUnknownQuestion is returned when an edit targets a question that is
	// not in the named section.
	ErrUnknownQuestion = errors.New("unknown question")

	// ErrCatalogIntegrity is returned when a next reference names a question
	// that does not exist in the current section.
	ErrCatalogIntegrity = errors.New("catalog integrity violation")
)

// Engine owns navigation, history and answers for one survey session.
// Transitions are synchronous and must not be called concurrently.
type Engine struct {
	catalog *catalog.Catalog
	state   State
	history []historyEntry
	answers AnswerSet

	// correction is the return target while correcting, nil when linear.
	correction *State
}

func NewEngine(c *catalog.Catalog) *Engine {
	return &Engine{
		catalog: c,
		state:   startState(),
		answers: newAnswerSet(),
	}
}

func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// State returns the current focus.
func (e *Engine) State() State { return e.state }

// Mode reports whether the engine is correcting an answer.
func (e *Engine) Mode() Mode {
	if e.correction != nil {
		return ModeCorrecting
	}
	return ModeLinear
}

// historyEntry is a state pushed by a linear Select together with the
// answer the selected question held before, so Back can undo both.
type historyEntry struct {
	state    State
	hadPrior bool
	priorRaw string
}

// History returns the states on the history stack, oldest first.
func (e *Engine) History() []State {
	out := make([]State, len(e.history))
	for i, h := range e.history {
		out[i] = h.state
	}
	return out
}

// Answers returns a copy of the answer set.
func (e *Engine) Answers() AnswerSet { return e.answers.clone() }

// CurrentSection returns the active section, if any.
func (e *Engine) CurrentSection() (catalog.Section, bool) {
	return e.catalog.Section(e.state.SectionIndex)
}

// CurrentQuestion returns the question in focus, if any.
func (e *Engine) CurrentQuestion() (catalog.Question, bool) {
	if e.state.Step != StepQuestion {
		return catalog.Question{}, false
	}
	sec, ok := e.CurrentSection()
	if !ok {
		return catalog.Question{}, false
	}
	return sec.Question(e.state.QuestionID)
}

// GoToInfo moves from the start screen to subject info entry.
func (e *Engine) GoToInfo() error {
	if e.state.Step != StepStart {
		return e.invalid("go to info")
	}
	e.state = infoState()
	return nil
}

// StartSurvey enters the first section intro. Whether the subject is
// identified enough to start is the caller's decision.
func (e *Engine) StartSurvey() error {
	if e.state.Step != StepCafeInfo {
		return e.invalid("start survey")
	}
	if len(e.catalog.Sections) == 0 {
		return fmt.Errorf("%w: catalog has no sections", ErrCatalogIntegrity)
	}
	e.state = introState(0)
	return nil
}

// StartQuestions moves from a section intro to its first question.
func (e *Engine) StartQuestions() error {
	if e.state.Step != StepSectionIntro {
		return e.invalid("start questions")
	}
	sec, ok := e.CurrentSection()
	if !ok {
		return fmt.Errorf("%w: section %d out of range", ErrCatalogIntegrity, e.state.SectionIndex)
	}
	first, ok := sec.First()
	if !ok {
		return fmt.Errorf("%w: section %s has no questions", ErrCatalogIntegrity, sec.ID)
	}
	e.state = questionState(e.state.SectionIndex, first.ID)
	return nil
}

// Select records an answer for the question in focus and advances.
//
// While correcting, the answer is written and the engine returns to the
// correction's return target without touching history. Otherwise the
// current state is pushed and next is resolved: AdvanceSection enters the
// next section intro (or the summary after the last section), a question
// reference moves within the section.
func (e *Engine) Select(questionID, label string, next catalog.Next) error {
	if e.state.Step != StepQuestion || e.state.QuestionID != questionID {
		return e.invalid("select " + questionID)
	}

	if e.correction != nil {
		e.answers.set(questionID, label)
		e.state = *e.correction
		e.correction = nil
		return nil
	}

	var target State
	if next.IsAdvance() {
		idx := e.state.SectionIndex + 1
		if idx < len(e.catalog.Sections) {
			target = introState(idx)
		} else {
			target = summaryState()
		}
	} else {
		sec, _ := e.CurrentSection()
		if _, ok := sec.Question(next.QuestionID()); !ok {
			return fmt.Errorf("%w: %s points to %q outside section %s", ErrCatalogIntegrity, questionID, next.QuestionID(), sec.ID)
		}
		target = questionState(e.state.SectionIndex, next.QuestionID())
	}

	prior, had := e.answers.Raw(questionID)
	e.answers.set(questionID, label)
	e.history = append(e.history, historyEntry{state: e.state, hadPrior: had, priorRaw: prior})
	e.state = target
	return nil
}

// Answer selects label for the question in focus, following the catalog's
// next reference for it.
func (e *Engine) Answer(label string) error {
	q, ok := e.CurrentQuestion()
	if !ok {
		return e.invalid("answer")
	}
	return e.Select(q.ID, label, q.Next)
}

// Edit jumps from the summary to one question for correction. Nested edits
// are rejected.
func (e *Engine) Edit(sectionIndex int, questionID string) error {
	if e.state.Step != StepSummary || e.correction != nil {
		return e.invalid("edit " + questionID)
	}
	sec, ok := e.catalog.Section(sectionIndex)
	if !ok {
		return fmt.Errorf("%w: section %d", ErrUnknownQuestion, sectionIndex)
	}
	if _, ok := sec.Question(questionID); !ok {
		return fmt.Errorf("%w: %q in section %s", ErrUnknownQuestion, questionID, sec.ID)
	}
	ret := e.state
	e.correction = &ret
	e.state = questionState(sectionIndex, questionID)
	return nil
}

// Back steps to the previously visited state.
//
// From subject info it returns to start. While correcting it abandons the
// correction and returns to its target. Otherwise it pops the history
// stack, restoring the popped question's previous answer, and falls back to
// start when the stack is empty.
func (e *Engine) Back() {
	switch {
	case e.state.Step == StepCafeInfo:
		e.state = startState()
	case e.correction != nil:
		e.state = *e.correction
		e.correction = nil
	case len(e.history) > 0:
		last := len(e.history) - 1
		h := e.history[last]
		e.history = e.history[:last]
		e.state = h.state
		if h.hadPrior {
			e.answers.set(h.state.QuestionID, h.priorRaw)
		} else {
			e.answers.remove(h.state.QuestionID)
		}
	default:
		e.state = startState()
	}
}

// Grade derives the grade from the current answers. It has no side effects.
func (e *Engine) Grade() domain.Grade {
	return ComputeGrade(e.catalog, e.answers)
}

func (e *Engine) invalid(op string) error {
	return fmt.Errorf("%w: %s from %s (%s)", ErrInvalidTransition, op, e.state, e.Mode())
}
