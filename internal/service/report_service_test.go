package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/ecocafe/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportService_Submit(t *testing.T) {
	repo := &memReportRepo{}
	svc := NewReportService(repo)
	sel := &domain.Selection{ID: "k1", Name: "숲카페"}

	rep, err := svc.Submit(context.Background(), ReportInput{
		Context:   "mapSearch",
		Message:   "  주소가 틀려요\n",
		Selection: sel,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rep.ID)
	assert.Equal(t, domain.ContextMapSearch, rep.Context)
	assert.Equal(t, "지도(검색)", rep.ContextLabel)
	assert.Equal(t, "주소가 틀려요", rep.Message)
	assert.Equal(t, sel, rep.Selection)
	assert.False(t, rep.CreatedAt.IsZero())
	require.Len(t, repo.reports, 1)
}

func TestReportService_BlankMessage(t *testing.T) {
	repo := &memReportRepo{}
	obs := &recordingObserver{}
	svc := NewReportService(repo, obs)

	for _, msg := range []string{"", "   ", "\n\t"} {
		_, err := svc.Submit(context.Background(), ReportInput{Context: "survey", Message: msg})
		assert.ErrorIs(t, err, ErrEmptyReport)
	}
	assert.Empty(t, repo.reports)
	assert.False(t, obs.last().Success)
}

func TestReportService_UnknownContextIsMenu(t *testing.T) {
	svc := NewReportService(&memReportRepo{})

	for _, c := range []string{"", "settings", "SURVEY"} {
		rep, err := svc.Submit(context.Background(), ReportInput{Context: c, Message: "hi"})
		require.NoError(t, err)
		assert.Equal(t, domain.ContextMenu, rep.Context, c)
		assert.Equal(t, "메뉴", rep.ContextLabel)
	}
}

func TestReportContextLabels(t *testing.T) {
	assert.Equal(t, "설문", domain.ContextSurvey.Label())
	assert.Equal(t, "지도(검색)", domain.ContextMapSearch.Label())
	assert.Equal(t, "지도(전체)", domain.ContextMapOverview.Label())
	assert.Equal(t, "메뉴", domain.ContextMenu.Label())
	assert.Equal(t, "메뉴", domain.ReportContext("other").Label())
}
