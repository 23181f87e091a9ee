package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/ecocafe/internal/catalog"
	"github.com/alexanderramin/ecocafe/internal/domain"
	"github.com/alexanderramin/ecocafe/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmit_AssignsIDAndTime(t *testing.T) {
	repo := &memResultRepo{}
	fixed := time.Date(2026, 6, 1, 3, 0, 0, 0, time.UTC)
	svc := NewSubmissionService(repo, catalog.Default(), withClock(func() time.Time { return fixed }))

	rec := testutil.NewTestResult("초록카페")
	rec.ID = ""
	rec.CreatedAt = time.Time{}

	stored, err := svc.Submit(context.Background(), rec)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, fixed, stored.CreatedAt)
	assert.Equal(t, 1, repo.count())
}

func TestSubmit_DerivesTagsFromYesAnswers(t *testing.T) {
	repo := &memResultRepo{}
	svc := NewSubmissionService(repo, catalog.Default())

	rec := testutil.NewTestResult("숲카페",
		testutil.WithAnswer("q1_2", "예"),
		testutil.WithAnswer("q4_2", "예"),
		testutil.WithAnswer("q2_1", "아니요"),
		testutil.WithTags("직접 입력 태그"),
	)
	stored, err := svc.Submit(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, []string{"직접 입력 태그", "텀블러 할인", "커피박 활용"}, stored.Tags)
}

func TestSubmit_Validation(t *testing.T) {
	svc := NewSubmissionService(&memResultRepo{}, catalog.Default())

	_, err := svc.Submit(context.Background(), testutil.NewTestResult("  "))
	assert.ErrorIs(t, err, ErrInvalidResult)

	bad := testutil.NewTestResult("x")
	bad.Grade.Tier = "만점"
	_, err = svc.Submit(context.Background(), bad)
	assert.ErrorIs(t, err, ErrInvalidResult)

	_, err = svc.Submit(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidResult)
}

func TestSubmit_InvalidatesCacheAndPublishes(t *testing.T) {
	cache := &memPointCache{ok: true, points: []domain.ResultPoint{{ID: "stale"}}}
	pub := &memPublisher{}
	svc := NewSubmissionService(&memResultRepo{}, catalog.Default(), WithPointCache(cache), WithPublisher(pub))

	rec, err := svc.Submit(context.Background(), testutil.NewTestResult("a"))
	require.NoError(t, err)

	assert.Equal(t, 1, cache.invalidated)
	assert.False(t, cache.ok)
	require.Len(t, pub.published, 1)
	assert.Equal(t, rec.ID, pub.published[0].ID)
}

func TestSubmit_PublishFailureDoesNotFailSubmission(t *testing.T) {
	obs := &recordingObserver{}
	pub := &memPublisher{err: errors.New("redis down")}
	svc := NewSubmissionService(&memResultRepo{}, catalog.Default(), WithPublisher(pub), WithSubmissionObserver(obs))

	_, err := svc.Submit(context.Background(), testutil.NewTestResult("a"))
	require.NoError(t, err)

	ev := obs.last()
	assert.True(t, ev.Success)
	assert.Equal(t, "redis down", ev.Fields["publish_error"])
}

func TestSubmit_StoreFailure(t *testing.T) {
	obs := &recordingObserver{}
	pub := &memPublisher{}
	repo := &memResultRepo{err: errors.New("disk full")}
	svc := NewSubmissionService(repo, catalog.Default(), WithPublisher(pub), WithSubmissionObserver(obs))

	_, err := svc.Submit(context.Background(), testutil.NewTestResult("a"))
	require.Error(t, err)
	assert.Empty(t, pub.published)
	assert.False(t, obs.last().Success)
	assert.Equal(t, "submit-result", obs.last().Name)

	// Later submissions succeed once the store recovers.
	repo.err = nil
	_, err = svc.Submit(context.Background(), testutil.NewTestResult("b"))
	assert.NoError(t, err)
}

func TestSubmitAnswers_UnrelatedSubmittersDoNotBlockEachOther(t *testing.T) {
	repo := &memResultRepo{entered: make(chan struct{}), release: make(chan struct{})}
	svc := NewSubmissionService(repo, catalog.Default())
	ctx := context.Background()

	done := make(chan error)
	go func() {
		_, err := svc.SubmitAnswers(ctx, AnswerSubmission{CafeName: "카페A", Answers: map[string]string{"q1_1": "예"}})
		done <- err
	}()
	<-repo.entered

	// The first submission is parked inside Create; a second client must
	// still get through.
	repo.mu.Lock()
	repo.entered = nil
	repo.mu.Unlock()
	stored, err := svc.SubmitAnswers(ctx, AnswerSubmission{CafeName: "카페B", Answers: map[string]string{"q1_1": "아니요"}})
	require.NoError(t, err)
	assert.Equal(t, "카페B", stored.SubjectName)

	close(repo.release)
	require.NoError(t, <-done)
	assert.Equal(t, 2, repo.count())
}

func TestSubmitAnswers_DerivesGrade(t *testing.T) {
	repo := &memResultRepo{}
	svc := NewSubmissionService(repo, catalog.Default())

	answers := map[string]string{}
	for _, q := range catalog.Default().Questions() {
		answers[q.ID] = "예"
	}
	rec, err := svc.SubmitAnswers(context.Background(), AnswerSubmission{
		CafeName: "만점카페",
		Answers:  answers,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TierExcellent, rec.Grade.Tier)
	assert.InDelta(t, 100, rec.Grade.Percent, 1e-9)
	assert.Len(t, rec.NormalizedAnswers, 18)
	assert.False(t, rec.GPSEnabled)
	assert.Nil(t, rec.Coordinates)
	assert.Len(t, rec.Tags, 6)
}

func TestSubmitAnswers_UsesSelection(t *testing.T) {
	svc := NewSubmissionService(&memResultRepo{}, catalog.Default())

	rec, err := svc.SubmitAnswers(context.Background(), AnswerSubmission{
		Answers:   map[string]string{"q1_1": "모르겠어요"},
		Selection: &domain.Selection{ID: "k", Name: "지도카페", Lat: 37.2, Lng: 127.3, Address: "경기"},
	})
	require.NoError(t, err)
	assert.Equal(t, "지도카페", rec.SubjectName)
	assert.Equal(t, "경기", rec.SubjectAddress)
	assert.True(t, rec.GPSEnabled)
	require.NotNil(t, rec.Coordinates)
	assert.Equal(t, 37.2, rec.Coordinates.Lat)
	assert.InDelta(t, 50, rec.Grade.Percent, 1e-9)
}

func TestSubmitAnswers_RejectsUnknownInput(t *testing.T) {
	svc := NewSubmissionService(&memResultRepo{}, catalog.Default())

	_, err := svc.SubmitAnswers(context.Background(), AnswerSubmission{
		CafeName: "x", Answers: map[string]string{"q9_9": "예"},
	})
	assert.ErrorIs(t, err, ErrInvalidResult)

	_, err = svc.SubmitAnswers(context.Background(), AnswerSubmission{
		CafeName: "x", Answers: map[string]string{"q1_1": "네"},
	})
	assert.ErrorIs(t, err, ErrInvalidResult)
}

func TestImport(t *testing.T) {
	repo := &memResultRepo{}
	cache := &memPointCache{ok: true}
	svc := NewSubmissionService(repo, catalog.Default(), WithPointCache(cache))

	n, err := svc.Import(context.Background(), []*domain.ResultRecord{
		testutil.NewTestResult("a"),
		testutil.NewTestResult("b"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, repo.count())
	assert.Equal(t, 1, cache.invalidated)

	_, err = svc.Import(context.Background(), []*domain.ResultRecord{
		testutil.NewTestResult("ok"),
		testutil.NewTestResult(""),
	})
	require.ErrorIs(t, err, ErrInvalidResult)
	assert.Contains(t, err.Error(), "record 2")
	assert.Equal(t, 2, repo.count())
}
