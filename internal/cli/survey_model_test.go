package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/ecocafe/internal/domain"
	"github.com/alexanderramin/ecocafe/internal/service"
	"github.com/alexanderramin/ecocafe/internal/survey"
	"github.com/alexanderramin/ecocafe/internal/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// surveyDriver wraps teatest.Driver with accessors for surveyModel state.
type surveyDriver struct {
	*teatest.Driver
}

func newSurveyDriver(t *testing.T, app *App, sel *domain.Selection) *surveyDriver {
	t.Helper()
	m := newSurveyModel(context.Background(), app, sel)
	d := teatest.New(t, m, teatest.WithSize(100, 40), teatest.WithCmdTimeout(100*time.Millisecond))
	d.DrainInit()
	return &surveyDriver{Driver: d}
}

func (d *surveyDriver) model() surveyModel { return d.Model.(surveyModel) }

func (d *surveyDriver) step() survey.Step { return d.model().session.State().Step }

// toQuestions fills in the cafe name and enters the first question.
func (d *surveyDriver) toQuestions(name string) {
	d.T.Helper()
	d.PressEnter()
	d.Type(name)
	d.PressEnter()
	d.PressEnter()
	require.Equal(d.T, survey.StepSectionIntro, d.step())
	d.PressEnter()
	require.Equal(d.T, survey.StepQuestion, d.step())
}

// answerAll presses key on every question until the summary.
func (d *surveyDriver) answerAll(key rune) {
	d.T.Helper()
	for i := 0; i < 40 && d.step() != survey.StepSummary; i++ {
		switch d.step() {
		case survey.StepSectionIntro:
			d.PressEnter()
		case survey.StepQuestion:
			d.PressKey(key)
		default:
			d.T.Fatalf("unexpected step %s", d.step())
		}
	}
	require.Equal(d.T, survey.StepSummary, d.step())
}

type failingSubmissions struct {
	service.SubmissionService
	calls int
}

func (f *failingSubmissions) Submit(context.Context, *domain.ResultRecord) (*domain.ResultRecord, error) {
	f.calls++
	return nil, errors.New("store down")
}

func TestSurveyTUI_StartScreen(t *testing.T) {
	d := newSurveyDriver(t, testApp(t), nil)
	assert.Equal(t, survey.StepStart, d.step())
	d.RequireView("탄소중립 매장 체크리스트", "우리 카페의 탄소중립 실천 수준을 체크해 보세요.", "enter 시작")
	assert.NotContains(t, d.View(), "섹션 ")
}

func TestSurveyTUI_InfoLocatesOnce(t *testing.T) {
	app := testApp(t)
	geo := &countingGeolocator{pos: domain.Coordinates{Lat: 37.5, Lng: 127}}
	app.Geolocator = geo
	d := newSurveyDriver(t, app, nil)

	d.PressEnter()
	require.Equal(t, survey.StepCafeInfo, d.step())
	assert.Equal(t, 1, geo.count())
	subject := d.model().session.Subject()
	assert.True(t, subject.GPSEnabled)
	require.NotNil(t, subject.Coordinates)
	d.RequireView("카페 정보를 입력해 주세요", "현재 위치 37.50000,127.00000")

	d.PressEsc()
	require.Equal(t, survey.StepStart, d.step())
	d.PressEnter()
	assert.Equal(t, 1, geo.count(), "a successful fix is not requested again")
}

func TestSurveyTUI_FailedLocateShowsStatus(t *testing.T) {
	app := testApp(t)
	app.Geolocator = &countingGeolocator{err: errors.New("denied")}
	d := newSurveyDriver(t, app, nil)

	d.PressEnter()
	assert.False(t, d.model().session.Subject().GPSEnabled)
	assert.Equal(t, statusNoFix, d.model().status)
	d.RequireView("위치 정보 없음")
}

func TestSurveyTUI_SelectionSkipsLocate(t *testing.T) {
	app := testApp(t)
	geo := &countingGeolocator{}
	app.Geolocator = geo
	d := newSurveyDriver(t, app, cafes[0].Selection())

	d.RequireView("선택한 카페", "초록카페")
	d.PressEnter()
	assert.Equal(t, 0, geo.count())
	assert.Equal(t, "초록카페", d.model().name.Value())
	d.RequireView("선택한 카페 위치 사용")

	d.PressEnter()
	d.PressEnter()
	assert.Equal(t, survey.StepSectionIntro, d.step())
}

func TestSurveyTUI_NameRequired(t *testing.T) {
	d := newSurveyDriver(t, testApp(t), nil)
	d.PressEnter()
	d.PressEnter()
	d.PressEnter()

	assert.Equal(t, survey.StepCafeInfo, d.step())
	assert.Equal(t, "카페 이름을 입력하세요", d.model().status)
	assert.Equal(t, 0, d.model().infoFocus, "focus returns to the name input")
}

func TestSurveyTUI_TabSwitchesInputs(t *testing.T) {
	d := newSurveyDriver(t, testApp(t), nil)
	d.PressEnter()
	d.Type("초록")
	d.PressTab()
	d.Type("메모")
	d.PressTab()
	d.Type("카페")

	assert.Equal(t, "초록카페", d.model().name.Value())
	assert.Equal(t, "메모", d.model().address.Value())
}

func TestSurveyTUI_IntroAndProgress(t *testing.T) {
	d := newSurveyDriver(t, testApp(t), nil)
	d.PressEnter()
	d.Type("초록카페")
	d.PressEnter()
	d.PressEnter()

	require.Equal(t, survey.StepSectionIntro, d.step())
	d.RequireView("1. 매장 운영·포장", "해당 섹션의 질문을 시작합니다.", "섹션 1/4", "응답 0/18")

	d.PressKey('b')
	assert.Equal(t, survey.StepStart, d.step(), "the first intro has no history to return to")
}

func TestSurveyTUI_AnswerKeys(t *testing.T) {
	d := newSurveyDriver(t, testApp(t), nil)
	d.toQuestions("초록카페")

	d.PressKey('3')
	raw, ok := d.model().session.Answers().Raw("q1_1")
	require.True(t, ok)
	assert.Equal(t, survey.LabelUnknown, raw)

	d.PressDown()
	d.PressEnter()
	raw, _ = d.model().session.Answers().Raw("q1_2")
	assert.Equal(t, survey.LabelNo, raw)

	d.PressKey('y')
	raw, _ = d.model().session.Answers().Raw("q1_3")
	assert.Equal(t, survey.LabelYes, raw)
	assert.Equal(t, 0, d.model().choice, "cursor resets for the next question")
}

func TestSurveyTUI_BackUndoesAnswer(t *testing.T) {
	d := newSurveyDriver(t, testApp(t), nil)
	d.toQuestions("초록카페")
	first := d.model().session.State()

	d.PressKey('y')
	assert.NotEqual(t, first, d.model().session.State())

	d.PressBackspace()
	assert.Equal(t, first, d.model().session.State())
	_, ok := d.model().session.Answers().Raw("q1_1")
	assert.False(t, ok)
	d.RequireView("응답 0/18")
}

func TestSurveyTUI_WalkAndSubmit(t *testing.T) {
	app := testApp(t)
	d := newSurveyDriver(t, app, nil)
	d.toQuestions("초록카페")
	d.answerAll('y')

	d.RequireView("진단 결과", "🌿 최우수", "★★★", "응답 18/18", "s 제출")
	assert.NotContains(t, d.View(), "섹션 ", "no progress bar on the summary")

	d.PressKey('s')
	m := d.model()
	require.NotNil(t, m.submitted)
	assert.Equal(t, statusSubmitted, m.status)
	assert.False(t, m.session.Submitting())
	d.RequireView("제출되었습니다. 감사합니다!", "q 종료")

	points, err := app.Map.Points(context.Background(), service.PointFilter{})
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "초록카페", points[0].Name)
	assert.Equal(t, 3, points[0].Stars)

	d.PressKey('s')
	points, err = app.Map.Points(context.Background(), service.PointFilter{})
	require.NoError(t, err)
	assert.Len(t, points, 1, "a submitted survey cannot be sent twice")

	d.PressKey('q')
	assert.True(t, d.Quitting)
}

func TestSurveyTUI_SubmitFailureKeepsSummary(t *testing.T) {
	app := testApp(t)
	failing := &failingSubmissions{}
	app.Submissions = failing
	d := newSurveyDriver(t, app, nil)
	d.toQuestions("초록카페")
	d.answerAll('n')

	d.PressKey('s')
	assert.Equal(t, 1, failing.calls)
	assert.Nil(t, d.model().submitted)
	assert.Equal(t, statusSubmitFailed, d.model().status)
	d.RequireView("제출 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요.")

	d.PressKey('s')
	assert.Equal(t, 2, failing.calls, "retry is allowed after a failure")
}

func TestSurveyTUI_SubmittingBlocksInput(t *testing.T) {
	d := newSurveyDriver(t, testApp(t), nil)
	d.toQuestions("초록카페")
	d.answerAll('y')

	require.NoError(t, d.model().session.BeginSubmit())
	d.PressDown()
	d.PressEnter()
	assert.Equal(t, survey.StepSummary, d.step())
	assert.Equal(t, 0, d.model().cursor)
}

func TestSurveyTUI_EditFromSummary(t *testing.T) {
	d := newSurveyDriver(t, testApp(t), nil)
	d.toQuestions("초록카페")
	d.answerAll('n')
	historyLen := len(d.model().session.History())
	d.RequireView("기초")

	d.PressDown()
	d.PressEnter()
	require.Equal(t, survey.StepQuestion, d.step())
	assert.Equal(t, survey.ModeCorrecting, d.model().session.Mode())
	assert.Equal(t, 1, d.model().choice, "cursor starts on the stored answer")
	d.RequireView("[수정 중]")

	d.PressKey('y')
	assert.Equal(t, survey.StepSummary, d.step())
	assert.Len(t, d.model().session.History(), historyLen)
	raw, _ := d.model().session.Answers().Raw("q1_1")
	assert.Equal(t, survey.LabelYes, raw)
}

func TestSurveyTUI_BackCancelsCorrection(t *testing.T) {
	d := newSurveyDriver(t, testApp(t), nil)
	d.toQuestions("초록카페")
	d.answerAll('n')

	d.PressDown()
	d.PressKey('e')
	require.Equal(t, survey.ModeCorrecting, d.model().session.Mode())
	d.PressKey('b')

	assert.Equal(t, survey.StepSummary, d.step())
	raw, _ := d.model().session.Answers().Raw("q1_1")
	assert.Equal(t, survey.LabelNo, raw)
}

func TestSurveyTUI_CollapseSection(t *testing.T) {
	d := newSurveyDriver(t, testApp(t), nil)
	d.toQuestions("초록카페")
	d.answerAll('y')
	full := len(d.model().summaryRows())
	assert.Equal(t, 4+18, full)

	d.PressEnter()
	assert.True(t, d.model().collapsed[0])
	assert.Len(t, d.model().summaryRows(), full-4)
	d.RequireView("▸")

	d.PressSpace()
	assert.Len(t, d.model().summaryRows(), full)
}

func TestSurveyTUI_CtrlCQuits(t *testing.T) {
	d := newSurveyDriver(t, testApp(t), nil)
	d.toQuestions("초록카페")
	d.PressCtrlC()
	assert.True(t, d.Quitting)
	assert.Empty(t, d.View())
}
