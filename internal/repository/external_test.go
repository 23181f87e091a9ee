package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/ecocafe/internal/db"
	"github.com/alexanderramin/ecocafe/internal/domain"
	"github.com/alexanderramin/ecocafe/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseResultRepo runs the same contract checks against any backend.
// Each call uses fresh IDs so shared databases do not collide.
func exerciseResultRepo(t *testing.T, repo ResultRepo) {
	t.Helper()
	ctx := context.Background()

	rec := testutil.NewTestResult("contract-"+uuid.NewString()[:8],
		testutil.WithAnswer("q1_1", "예"),
		testutil.WithAnswer("q1_2", "모르겠어요"),
		testutil.WithTags("채식 메뉴"),
		testutil.WithCreatedAt(time.Now().Add(24*time.Hour)),
	)
	require.NoError(t, repo.Create(ctx, rec))

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.SubjectName, got.SubjectName)
	assert.Equal(t, rec.RawAnswers, got.RawAnswers)
	assert.Nil(t, got.NormalizedAnswers["q1_2"])
	assert.Equal(t, []string{"채식 메뉴"}, got.Tags)

	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)

	batch := []*domain.ResultRecord{testutil.NewTestResult("batch-a"), testutil.NewTestResult("batch-b")}
	require.NoError(t, repo.CreateAll(ctx, batch))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, list)
	assert.Equal(t, rec.ID, list[0].ID, "future-dated record sorts first")
}

func exerciseReportRepo(t *testing.T, repo ReportRepo) {
	t.Helper()
	ctx := context.Background()

	rep := testutil.NewTestReport("contract report",
		testutil.WithReportContext(domain.ContextMapOverview),
		testutil.WithReportCreatedAt(time.Now().Add(24*time.Hour)),
	)
	require.NoError(t, repo.Create(ctx, rep))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, list)
	assert.Equal(t, rep.ID, list[0].ID)
	assert.Equal(t, "지도(전체)", list[0].ContextLabel)
}

func TestMongoRepos(t *testing.T) {
	uri := testutil.RequireEnv(t, "ECOCAFE_TEST_MONGO_URI")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, mdb, err := db.ConnectMongo(ctx, uri, "ecocafe_test_"+uuid.NewString()[:8])
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = mdb.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	exerciseResultRepo(t, NewMongoResultRepo(mdb))
	exerciseReportRepo(t, NewMongoReportRepo(mdb))
}

func TestPgRepos(t *testing.T) {
	url := testutil.RequireEnv(t, "ECOCAFE_TEST_POSTGRES_URL")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	exerciseResultRepo(t, NewPgResultRepo(pool))
	exerciseReportRepo(t, NewPgReportRepo(pool))
}

func TestSQLiteRepos_Contract(t *testing.T) {
	database := testutil.NewTestDB(t)
	exerciseResultRepo(t, NewSQLiteResultRepo(database))
	exerciseReportRepo(t, NewSQLiteReportRepo(database))
}
