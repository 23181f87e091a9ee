package survey

import (
	"testing"

	"github.com/alexanderramin/ecocafe/internal/catalog"
	"github.com/alexanderramin/ecocafe/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newEngineAtFirstQuestion walks a fresh engine to the first question.
func newEngineAtFirstQuestion(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine(catalog.Default())
	require.NoError(t, e.GoToInfo())
	require.NoError(t, e.StartSurvey())
	require.NoError(t, e.StartQuestions())
	return e
}

// answerAll answers every remaining question with label, entering section
// intros as they come, and returns the states seen before each Select.
func answerAll(t *testing.T, e *Engine, label string) []State {
	t.Helper()
	var before []State
	for e.State().Step != StepSummary {
		switch e.State().Step {
		case StepSectionIntro:
			require.NoError(t, e.StartQuestions())
		case StepQuestion:
			before = append(before, e.State())
			require.NoError(t, e.Answer(label))
		default:
			t.Fatalf("unexpected step %s", e.State())
		}
	}
	return before
}

func TestEngine_StartsAtStart(t *testing.T) {
	e := NewEngine(catalog.Default())

	assert.Equal(t, State{SectionIndex: -1, Step: StepStart}, e.State())
	assert.Equal(t, ModeLinear, e.Mode())
	assert.Empty(t, e.History())
	assert.Equal(t, 0, e.Answers().Len())
}

func TestEngine_IntroAndQuestionSequence(t *testing.T) {
	e := NewEngine(catalog.Default())

	require.NoError(t, e.GoToInfo())
	assert.Equal(t, StepCafeInfo, e.State().Step)

	require.NoError(t, e.StartSurvey())
	assert.Equal(t, State{SectionIndex: 0, Step: StepSectionIntro}, e.State())

	require.NoError(t, e.StartQuestions())
	assert.Equal(t, State{SectionIndex: 0, Step: StepQuestion, QuestionID: "q1_1"}, e.State())

	require.NoError(t, e.Select("q1_1", LabelYes, catalog.NextQuestion("q1_2")))
	assert.Equal(t, "q1_2", e.State().QuestionID)

	for _, id := range []string{"q1_2", "q1_3"} {
		require.NoError(t, e.Answer(LabelNo), id)
	}
	require.NoError(t, e.Answer(LabelUnknown))
	assert.Equal(t, State{SectionIndex: 1, Step: StepSectionIntro}, e.State())
}

func TestEngine_LinearWalkReachesSummary(t *testing.T) {
	e := newEngineAtFirstQuestion(t)

	before := answerAll(t, e, LabelYes)

	assert.Equal(t, StepSummary, e.State().Step)
	assert.Len(t, before, 18)
	assert.Len(t, e.History(), 18)
	assert.Equal(t, 18, e.Answers().Len())
}

func TestEngine_SummaryReachedOnlyAfterLastQuestion(t *testing.T) {
	c := catalog.Default()
	questions := c.Questions()
	last := questions[len(questions)-1]

	e := newEngineAtFirstQuestion(t)
	for {
		if e.State().Step == StepSectionIntro {
			require.NoError(t, e.StartQuestions())
			continue
		}
		require.Equal(t, StepQuestion, e.State().Step)
		id := e.State().QuestionID
		require.NoError(t, e.Answer(LabelNo))
		if id == last.ID {
			assert.Equal(t, StepSummary, e.State().Step)
			return
		}
		assert.NotEqual(t, StepSummary, e.State().Step, "summary reached after %s", id)
	}
}

func TestEngine_LastSectionAdvanceGoesToSummary(t *testing.T) {
	e := newEngineAtFirstQuestion(t)
	answerAll(t, e, LabelYes)

	assert.Equal(t, summaryState(), e.State())
	_, ok := e.CurrentSection()
	assert.False(t, ok)
}

func TestEngine_BackRestoresEachPriorState(t *testing.T) {
	e := newEngineAtFirstQuestion(t)
	before := answerAll(t, e, LabelYes)

	for n := len(before) - 1; n >= 0; n-- {
		e.Back()
		if diff := cmp.Diff(before[n], e.State()); diff != "" {
			t.Fatalf("state after back #%d mismatch (-want +got):\n%s", len(before)-n, diff)
		}
		_, answered := e.Answers().Raw(before[n].QuestionID)
		assert.False(t, answered, "answer for %s should be undone", before[n].QuestionID)
	}
	assert.Empty(t, e.History())

	e.Back()
	assert.Equal(t, startState(), e.State())
}

func TestEngine_BackAfterFirstAnswer(t *testing.T) {
	e := newEngineAtFirstQuestion(t)
	pre := e.State()

	require.NoError(t, e.Select("q1_1", LabelYes, catalog.NextQuestion("q1_2")))
	e.Back()

	if diff := cmp.Diff(pre, e.State()); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
	_, ok := e.Answers().Raw("q1_1")
	assert.False(t, ok)
	_, ok = e.Answers().Value("q1_1")
	assert.False(t, ok)
}

func TestEngine_ReanswerAfterBack(t *testing.T) {
	e := newEngineAtFirstQuestion(t)
	require.NoError(t, e.Answer(LabelNo))
	e.Back()
	require.NoError(t, e.Answer(LabelYes))

	v, ok := e.Answers().Value("q1_1")
	require.True(t, ok)
	assert.Equal(t, Yes, v)
	assert.Len(t, e.History(), 1)
	assert.Equal(t, questionState(0, "q1_2"), e.State())
}

func TestEngine_BackFromSectionIntroReturnsToLastQuestion(t *testing.T) {
	e := newEngineAtFirstQuestion(t)
	for i := 0; i < 4; i++ {
		require.NoError(t, e.Answer(LabelYes))
	}
	require.Equal(t, introState(1), e.State())

	e.Back()

	assert.Equal(t, questionState(0, "q1_4"), e.State())
}

func TestEngine_BackFromInfoAndEmptyHistory(t *testing.T) {
	e := NewEngine(catalog.Default())
	require.NoError(t, e.GoToInfo())
	e.Back()
	assert.Equal(t, startState(), e.State())

	e = newEngineAtFirstQuestion(t)
	e.Back()
	assert.Equal(t, startState(), e.State())

	// Back on start stays on start.
	e.Back()
	assert.Equal(t, startState(), e.State())
}

func TestEngine_EditLandsOnSummaryWithoutTouchingHistory(t *testing.T) {
	c := catalog.Default()
	for sIdx, sec := range c.Sections {
		for _, q := range sec.Questions {
			t.Run(q.ID, func(t *testing.T) {
				e := newEngineAtFirstQuestion(t)
				answerAll(t, e, LabelYes)
				history := e.History()

				require.NoError(t, e.Edit(sIdx, q.ID))
				assert.Equal(t, ModeCorrecting, e.Mode())
				assert.Equal(t, questionState(sIdx, q.ID), e.State())

				require.NoError(t, e.Answer(LabelNo))

				assert.Equal(t, summaryState(), e.State())
				assert.Equal(t, ModeLinear, e.Mode())
				if diff := cmp.Diff(history, e.History()); diff != "" {
					t.Fatalf("history changed (-want +got):\n%s", diff)
				}
				v, ok := e.Answers().Value(q.ID)
				require.True(t, ok)
				assert.Equal(t, No, v)
			})
		}
	}
}

func TestEngine_EditRules(t *testing.T) {
	e := newEngineAtFirstQuestion(t)
	err := e.Edit(0, "q1_1")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	answerAll(t, e, LabelYes)

	assert.ErrorIs(t, e.Edit(9, "q1_1"), ErrUnknownQuestion)
	assert.ErrorIs(t, e.Edit(1, "q1_1"), ErrUnknownQuestion)
	assert.Equal(t, summaryState(), e.State())

	require.NoError(t, e.Edit(2, "q3_3"))
	assert.ErrorIs(t, e.Edit(2, "q3_4"), ErrInvalidTransition, "nested edits are rejected")
	assert.Equal(t, questionState(2, "q3_3"), e.State())
}

func TestEngine_BackWhileCorrectingCancels(t *testing.T) {
	e := newEngineAtFirstQuestion(t)
	answerAll(t, e, LabelYes)
	history := e.History()

	require.NoError(t, e.Edit(1, "q2_3"))
	e.Back()

	assert.Equal(t, summaryState(), e.State())
	assert.Equal(t, ModeLinear, e.Mode())
	assert.Equal(t, history, e.History())
	v, _ := e.Answers().Value("q2_3")
	assert.Equal(t, Yes, v)
}

func TestEngine_BackFromSummaryPopsLastQuestion(t *testing.T) {
	e := newEngineAtFirstQuestion(t)
	answerAll(t, e, LabelYes)

	e.Back()

	assert.Equal(t, questionState(3, "q4_4"), e.State())
	assert.Len(t, e.History(), 17)
}

func TestEngine_InvalidTransitionsLeaveStateUnchanged(t *testing.T) {
	e := NewEngine(catalog.Default())

	assert.ErrorIs(t, e.StartSurvey(), ErrInvalidTransition)
	assert.ErrorIs(t, e.StartQuestions(), ErrInvalidTransition)
	assert.ErrorIs(t, e.Answer(LabelYes), ErrInvalidTransition)
	assert.ErrorIs(t, e.Select("q1_1", LabelYes, catalog.AdvanceSection()), ErrInvalidTransition)
	assert.Equal(t, startState(), e.State())

	e = newEngineAtFirstQuestion(t)
	assert.ErrorIs(t, e.GoToInfo(), ErrInvalidTransition)
	assert.ErrorIs(t, e.Select("q1_2", LabelYes, catalog.NextQuestion("q1_3")), ErrInvalidTransition)
	assert.Equal(t, questionState(0, "q1_1"), e.State())
	assert.Equal(t, 0, e.Answers().Len())
}

func TestEngine_BrokenNextReference(t *testing.T) {
	// Built by hand to bypass load-time validation.
	c := &catalog.Catalog{Title: "broken", Sections: []catalog.Section{
		{ID: "s", Title: "S", Questions: []catalog.Question{
			{ID: "a", Title: "A", Next: catalog.NextQuestion("ghost")},
			{ID: "b", Title: "B", Next: catalog.AdvanceSection()},
		}},
	}}
	e := NewEngine(c)
	require.NoError(t, e.GoToInfo())
	require.NoError(t, e.StartSurvey())
	require.NoError(t, e.StartQuestions())

	err := e.Answer(LabelYes)

	assert.ErrorIs(t, err, ErrCatalogIntegrity)
	assert.Equal(t, questionState(0, "a"), e.State())
	assert.Empty(t, e.History())
	assert.Equal(t, 0, e.Answers().Len())
}

func TestEngine_AnswerOverwriteKeepsMapsConsistent(t *testing.T) {
	e := newEngineAtFirstQuestion(t)
	answerAll(t, e, LabelUnknown)
	require.NoError(t, e.Edit(0, "q1_1"))
	require.NoError(t, e.Answer(LabelYes))

	a := e.Answers()
	raw := a.RawMap()
	norm := a.NormalizedMap()
	require.Len(t, raw, 18)
	require.Len(t, norm, 18)
	for id := range raw {
		_, ok := norm[id]
		assert.True(t, ok, id)
	}
	assert.Equal(t, LabelYes, raw["q1_1"])
	require.NotNil(t, norm["q1_1"])
	assert.True(t, *norm["q1_1"])
	assert.Nil(t, norm["q1_2"])
}

func TestEngine_AnswersAreCopies(t *testing.T) {
	e := newEngineAtFirstQuestion(t)
	require.NoError(t, e.Answer(LabelYes))

	raw := e.Answers().RawMap()
	raw["q1_1"] = LabelNo

	got, _ := e.Answers().Raw("q1_1")
	assert.Equal(t, LabelYes, got)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, Yes, Normalize("예"))
	assert.Equal(t, No, Normalize("아니요"))
	for _, other := range []string{"모르겠어요", "", "네", "yes", "예 ", "아니오"} {
		assert.Equal(t, Unknown, Normalize(other), other)
	}

	assert.True(t, *Yes.Bool())
	assert.False(t, *No.Bool())
	assert.Nil(t, Unknown.Bool())
}

func TestProgress(t *testing.T) {
	e := NewEngine(catalog.Default())
	assert.False(t, e.ShowsProgress())
	assert.False(t, e.ShowsBack())
	assert.Equal(t, 0.0, e.Progress().SectionFraction())

	require.NoError(t, e.GoToInfo())
	assert.False(t, e.ShowsProgress())
	assert.True(t, e.ShowsBack())

	require.NoError(t, e.StartSurvey())
	assert.True(t, e.ShowsProgress())
	assert.Equal(t, 0.25, e.Progress().SectionFraction())

	require.NoError(t, e.StartQuestions())
	require.NoError(t, e.Answer(LabelYes))
	p := e.Progress()
	assert.Equal(t, Progress{Section: 1, Sections: 4, Answered: 1, Total: 18}, p)

	answerAll(t, e, LabelYes)
	assert.False(t, e.ShowsProgress())
	assert.False(t, e.ShowsBack())
	assert.Equal(t, 18, e.Progress().Answered)
}

func TestGrade_Scenarios(t *testing.T) {
	t.Run("no answers", func(t *testing.T) {
		e := NewEngine(catalog.Default())
		g := e.Grade()
		assert.InDelta(t, 50.0, g.Percent, 1e-9)
		assert.Equal(t, domain.TierBasic, g.Tier)
		assert.Equal(t, 1, g.Stars)
	})

	t.Run("all yes", func(t *testing.T) {
		e := newEngineAtFirstQuestion(t)
		answerAll(t, e, LabelYes)
		g := e.Grade()
		assert.InDelta(t, 100.0, g.Percent, 1e-9)
		assert.Equal(t, domain.TierExcellent, g.Tier)
		assert.Equal(t, 3, g.Stars)
		assert.Equal(t, "🌿", g.Icon)
	})

	t.Run("all no", func(t *testing.T) {
		e := newEngineAtFirstQuestion(t)
		answerAll(t, e, LabelNo)
		g := e.Grade()
		assert.InDelta(t, 0.0, g.Percent, 1e-9)
		assert.Equal(t, domain.TierBasic, g.Tier)
	})

	t.Run("all unknown", func(t *testing.T) {
		e := newEngineAtFirstQuestion(t)
		answerAll(t, e, LabelUnknown)
		assert.InDelta(t, 50.0, e.Grade().Percent, 1e-9)
	})
}

func TestGrade_TierBoundaries(t *testing.T) {
	// x yes answers with the rest unknown scores (9 + x/2) / 18.
	tests := []struct {
		yes   int
		tier  domain.GradeTier
		stars int
	}{
		{3, domain.TierBasic, 1},
		{4, domain.TierGood, 2},
		{10, domain.TierGood, 2},
		{11, domain.TierExcellent, 3},
	}
	for _, tt := range tests {
		e := newEngineAtFirstQuestion(t)
		answered := 0
		for e.State().Step != StepSummary {
			if e.State().Step == StepSectionIntro {
				require.NoError(t, e.StartQuestions())
				continue
			}
			label := LabelUnknown
			if answered < tt.yes {
				label = LabelYes
			}
			require.NoError(t, e.Answer(label))
			answered++
		}
		g := e.Grade()
		assert.Equal(t, tt.tier, g.Tier, "yes=%d percent=%.2f", tt.yes, g.Percent)
		assert.Equal(t, tt.stars, g.Stars)
	}

	assert.Equal(t, domain.TierExcellent, TierFor(80).Tier)
	assert.Equal(t, domain.TierGood, TierFor(79.99).Tier)
	assert.Equal(t, domain.TierGood, TierFor(60).Tier)
	assert.Equal(t, domain.TierBasic, TierFor(59.99).Tier)
}

func TestGrade_IsPureAndMovesByOneQuestion(t *testing.T) {
	e := newEngineAtFirstQuestion(t)
	total := float64(catalog.Default().QuestionCount())

	first := e.Grade()
	assert.Equal(t, first, e.Grade())

	require.NoError(t, e.Answer(LabelYes))
	afterYes := e.Grade()
	assert.InDelta(t, 100/total*(1-0.5), afterYes.Percent-first.Percent, 1e-9)

	require.NoError(t, e.Answer(LabelNo))
	afterNo := e.Grade()
	assert.InDelta(t, 100/total*(0-0.5), afterNo.Percent-afterYes.Percent, 1e-9)
	assert.Equal(t, afterNo, e.Grade())
}

func TestGrade_EmptyCatalog(t *testing.T) {
	g := ComputeGrade(&catalog.Catalog{}, newAnswerSet())
	assert.Equal(t, 0.0, g.Percent)
	assert.Equal(t, domain.TierBasic, g.Tier)
}
