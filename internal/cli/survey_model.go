package cli

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alexanderramin/ecocafe/internal/domain"
	"github.com/alexanderramin/ecocafe/internal/survey"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type locateDoneMsg struct {
	coords domain.Coordinates
	err    error
}

type submitDoneMsg struct {
	rec *domain.ResultRecord
	err error
}

// summaryRow is one line of the summary accordion: a section header when
// questionID is empty, otherwise a question inside section.
type summaryRow struct {
	section    int
	questionID string
}

func (r summaryRow) isHeader() bool { return r.questionID == "" }

// surveyModel is the bubbletea Model for one survey session. The Update
// loop serializes every engine transition; geolocation and submission run
// as tea.Cmds and report back through messages.
type surveyModel struct {
	ctx     context.Context
	app     *App
	session *survey.Session
	now     func() time.Time

	name      textinput.Model
	address   textinput.Model
	infoFocus int

	choice    int
	cursor    int
	collapsed map[int]bool

	locating   bool
	submitted  *domain.ResultRecord
	status     string
	quitting   bool
	width      int
}

func newSurveyModel(ctx context.Context, app *App, sel *domain.Selection) surveyModel {
	s := survey.NewSession(app.Catalog, app.Geolocator)
	if sel != nil {
		s.SelectPlace(sel)
	}

	name := textinput.New()
	name.Prompt = "이름  "
	name.Placeholder = "카페 이름을 입력하세요"
	name.CharLimit = 80

	address := textinput.New()
	address.Prompt = "주소  "
	address.Placeholder = "주소/참고 메모 (선택)"
	address.CharLimit = 160

	subject := s.Subject()
	name.SetValue(subject.Name)
	address.SetValue(subject.Address)

	return surveyModel{
		ctx:       ctx,
		app:       app,
		session:   s,
		now:       time.Now,
		name:      name,
		address:   address,
		collapsed: map[int]bool{},
	}
}

// prefill seeds the info inputs from command flags.
func (m *surveyModel) prefill(name, address string) {
	if name != "" {
		m.name.SetValue(name)
	}
	if address != "" {
		m.address.SetValue(address)
	}
}

func (m surveyModel) Init() tea.Cmd {
	return nil
}

func (m surveyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case locateDoneMsg:
		m.locating = false
		m.session.Binder().ApplyFix(msg.coords, msg.err)
		if msg.err != nil {
			m.status = statusNoFix
		} else if m.status == statusLocating {
			m.status = ""
		}
		return m, nil

	case submitDoneMsg:
		m.session.EndSubmit()
		if msg.err != nil {
			m.status = statusSubmitFailed
			return m, nil
		}
		m.submitted = msg.rec
		m.status = statusSubmitted
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.session.State().Step {
		case survey.StepStart:
			return m.updateStart(msg)
		case survey.StepCafeInfo:
			return m.updateInfo(msg)
		case survey.StepSectionIntro:
			return m.updateIntro(msg)
		case survey.StepQuestion:
			return m.updateQuestion(msg)
		case survey.StepSummary:
			return m.updateSummary(msg)
		}
	}

	if m.session.State().Step == survey.StepCafeInfo {
		return m.updateInputs(msg)
	}
	return m, nil
}

func isBackKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "b", "backspace", "esc":
		return true
	}
	return false
}

func (m surveyModel) updateStart(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "enter", " ", "space":
		if err := m.session.GoToInfo(); err != nil {
			m.status = UserMessage(err)
			return m, nil
		}
		return m.enterInfo()
	}
	return m, nil
}

// enterInfo focuses the name input and issues the geolocation request when
// one is due.
func (m surveyModel) enterInfo() (tea.Model, tea.Cmd) {
	m.status = ""
	m.infoFocus = 0
	m.address.Blur()
	cmds := []tea.Cmd{m.name.Focus()}
	if m.session.BeginLocate() {
		m.locating = true
		m.status = statusLocating
		cmds = append(cmds, m.locateCmd())
	}
	return m, tea.Batch(cmds...)
}

func (m surveyModel) locateCmd() tea.Cmd {
	geo := m.session.Binder().Geolocator()
	ctx := m.ctx
	return func() tea.Msg {
		c, err := geo.CurrentPosition(ctx)
		return locateDoneMsg{coords: c, err: err}
	}
}

func (m surveyModel) updateInfo(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.name.Blur()
		m.address.Blur()
		m.session.Back()
		m.status = ""
		return m, nil
	case "tab", "down", "shift+tab", "up":
		return m.focusInput(1 - m.infoFocus)
	case "enter":
		if m.infoFocus == 0 {
			return m.focusInput(1)
		}
		return m.startSurvey()
	}
	return m.updateInputs(msg)
}

func (m surveyModel) focusInput(i int) (tea.Model, tea.Cmd) {
	m.infoFocus = i
	if i == 0 {
		m.address.Blur()
		return m, m.name.Focus()
	}
	m.name.Blur()
	return m, m.address.Focus()
}

func (m surveyModel) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.infoFocus == 0 {
		m.name, cmd = m.name.Update(msg)
	} else {
		m.address, cmd = m.address.Update(msg)
	}
	return m, cmd
}

func (m surveyModel) startSurvey() (tea.Model, tea.Cmd) {
	m.session.SetName(strings.TrimSpace(m.name.Value()))
	m.session.SetAddress(strings.TrimSpace(m.address.Value()))
	if err := m.session.StartSurvey(); err != nil {
		m.status = UserMessage(err)
		if errors.Is(err, survey.ErrSubjectRequired) {
			return m.focusInput(0)
		}
		return m, nil
	}
	m.name.Blur()
	m.address.Blur()
	m.status = ""
	return m, nil
}

func (m surveyModel) updateIntro(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if isBackKey(msg) {
		return m.back()
	}
	switch msg.String() {
	case "enter", " ", "space":
		if err := m.session.StartQuestions(); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.choice = 0
	}
	return m, nil
}

func (m surveyModel) updateQuestion(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if isBackKey(msg) {
		return m.back()
	}
	switch msg.String() {
	case "y", "1":
		return m.answer(survey.LabelYes)
	case "n", "2":
		return m.answer(survey.LabelNo)
	case "d", "3":
		return m.answer(survey.LabelUnknown)
	case "up", "k":
		if m.choice > 0 {
			m.choice--
		}
	case "down", "j":
		if m.choice < len(survey.Labels)-1 {
			m.choice++
		}
	case "enter":
		return m.answer(survey.Labels[m.choice])
	}
	return m, nil
}

func (m surveyModel) answer(label string) (tea.Model, tea.Cmd) {
	if err := m.session.Answer(label); err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.status = ""
	m.choice = 0
	return m, nil
}

func (m surveyModel) back() (tea.Model, tea.Cmd) {
	m.session.Back()
	m.status = ""
	m.choice = 0
	if m.session.State().Step == survey.StepCafeInfo {
		return m.focusInput(0)
	}
	return m, nil
}

func (m surveyModel) summaryRows() []summaryRow {
	var rows []summaryRow
	for i, s := range m.session.Catalog().Sections {
		rows = append(rows, summaryRow{section: i})
		if m.collapsed[i] {
			continue
		}
		for _, q := range s.Questions {
			rows = append(rows, summaryRow{section: i, questionID: q.ID})
		}
	}
	return rows
}

func (m surveyModel) updateSummary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.submitted != nil {
		switch msg.String() {
		case "q", "enter", "esc":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}
	if m.session.Submitting() {
		return m, nil
	}

	rows := m.summaryRows()
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case "enter", " ", "space", "e":
		if m.cursor >= len(rows) {
			return m, nil
		}
		row := rows[m.cursor]
		if row.isHeader() {
			m.collapsed[row.section] = !m.collapsed[row.section]
			return m, nil
		}
		if err := m.session.Edit(row.section, row.questionID); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = ""
		m.choice = labelIndex(m.currentRaw())
	case "s":
		if m.session.BeginSubmit() != nil {
			return m, nil
		}
		m.status = statusSubmitting
		return m, m.submitCmd()
	}
	return m, nil
}

func (m surveyModel) submitCmd() tea.Cmd {
	rec := m.session.Record(m.now())
	ctx := m.ctx
	submissions := m.app.Submissions
	return func() tea.Msg {
		stored, err := submissions.Submit(ctx, &rec)
		return submitDoneMsg{rec: stored, err: err}
	}
}

// currentRaw returns the stored raw answer for the question in focus.
func (m surveyModel) currentRaw() string {
	q, ok := m.session.CurrentQuestion()
	if !ok {
		return ""
	}
	raw, _ := m.session.Answers().Raw(q.ID)
	return raw
}

func labelIndex(raw string) int {
	for i, l := range survey.Labels {
		if l == raw {
			return i
		}
	}
	return 0
}
