package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kiranshivaraju/sentilytics/internal/config"
	"github.com/kiranshivaraju/sentilytics/internal/store"
	"github.com/kiranshivaraju/sentilytics/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB spins up a Postgres container, runs migrations, and returns a pool + connection string.
func setupTestDB(t *testing.T) (*pgxpool.Pool, string) {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("sentilytics_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, pgContainer.Terminate(ctx))
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Run migrations
	err = store.RunMigrations(connStr)
	require.NoError(t, err)

	pool, err := store.Connect(ctx, config.DatabaseConfig{
		URL:             connStr,
		MaxOpenConns:    5,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	return pool, connStr
}

func strPtr(s string) *string { return &s }

func newRun(createdAt time.Time) *models.AnalysisRun {
	return &models.AnalysisRun{
		ID:               uuid.New(),
		Source:           models.SourceCSV,
		Backend:          "vader",
		Fingerprint:      "fp-" + uuid.NewString()[:8],
		Rows:             15,
		Columns:          2,
		TextColumn:       strPtr("review"),
		PredictiveStatus: strPtr("skipped"),
		Status:           models.RunStatusSucceeded,
		DurationMS:       42,
		CreatedAt:        createdAt.UTC().Truncate(time.Microsecond),
	}
}

// --- Migrations ---

func TestRunMigrations_Idempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	_, connStr := setupTestDB(t)

	// Second run is a no-op.
	assert.NoError(t, store.RunMigrations(connStr))
}

func TestConnect_InvalidURL(t *testing.T) {
	_, err := store.Connect(context.Background(), config.DatabaseConfig{URL: "://bad"})
	assert.Error(t, err)
}

// --- Ping ---

func TestPing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool, _ := setupTestDB(t)
	s := store.NewPostgresStore(pool)
	assert.NoError(t, s.Ping(context.Background()))
}

// --- Analysis Runs ---

func TestRun_CreateAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool, _ := setupTestDB(t)
	s := store.NewPostgresStore(pool)
	ctx := context.Background()

	run := newRun(time.Now())
	require.NoError(t, s.CreateRun(ctx, run))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, run.Source, got.Source)
	assert.Equal(t, run.Backend, got.Backend)
	assert.Equal(t, run.Fingerprint, got.Fingerprint)
	assert.Equal(t, 15, got.Rows)
	assert.Equal(t, 2, got.Columns)
	require.NotNil(t, got.TextColumn)
	assert.Equal(t, "review", *got.TextColumn)
	require.NotNil(t, got.PredictiveStatus)
	assert.Equal(t, "skipped", *got.PredictiveStatus)
	assert.Nil(t, got.ErrorMessage)
	assert.False(t, got.CacheHit)
	assert.Equal(t, int64(42), got.DurationMS)
	assert.True(t, run.CreatedAt.Equal(got.CreatedAt))
}

func TestRun_FailedWithoutTextColumn(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool, _ := setupTestDB(t)
	s := store.NewPostgresStore(pool)
	ctx := context.Background()

	run := newRun(time.Now())
	run.TextColumn = nil
	run.PredictiveStatus = nil
	run.Status = models.RunStatusFailed
	run.ErrorMessage = strPtr("score 3 texts with vader: boom")
	require.NoError(t, s.CreateRun(ctx, run))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Nil(t, got.TextColumn)
	assert.Nil(t, got.PredictiveStatus)
	assert.Equal(t, models.RunStatusFailed, got.Status)
	require.NotNil(t, got.ErrorMessage)
	assert.Equal(t, "score 3 texts with vader: boom", *got.ErrorMessage)
}

func TestRun_DuplicateID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool, _ := setupTestDB(t)
	s := store.NewPostgresStore(pool)
	ctx := context.Background()

	run := newRun(time.Now())
	require.NoError(t, s.CreateRun(ctx, run))
	assert.ErrorIs(t, s.CreateRun(ctx, run), store.ErrDuplicateKey)
}

func TestRun_InvalidStatusRejected(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool, _ := setupTestDB(t)
	s := store.NewPostgresStore(pool)

	run := newRun(time.Now())
	run.Status = "pending"
	assert.Error(t, s.CreateRun(context.Background(), run))
}

func TestGetRun_NotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool, _ := setupTestDB(t)
	s := store.NewPostgresStore(pool)

	_, err := s.GetRun(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListRuns_NewestFirstAndFilters(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool, _ := setupTestDB(t)
	s := store.NewPostgresStore(pool)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		run := newRun(base.Add(time.Duration(i) * time.Minute))
		if i == 2 {
			run.Status = models.RunStatusFailed
			run.ErrorMessage = strPtr("boom")
		}
		if i >= 3 {
			run.Fingerprint = "shared"
		}
		require.NoError(t, s.CreateRun(ctx, run))
		ids = append(ids, run.ID)
	}

	all, err := s.ListRuns(ctx, store.RunFilter{})
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, ids[4], all[0].ID)
	assert.Equal(t, ids[0], all[4].ID)

	limited, err := s.ListRuns(ctx, store.RunFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, ids[4], limited[0].ID)

	failed, err := s.ListRuns(ctx, store.RunFilter{Status: models.RunStatusFailed})
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, ids[2], failed[0].ID)

	shared, err := s.ListRuns(ctx, store.RunFilter{Fingerprint: "shared", Limit: 500})
	require.NoError(t, err)
	assert.Len(t, shared, 2)
}

func TestListRuns_EmptyIsNotNil(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool, _ := setupTestDB(t)
	s := store.NewPostgresStore(pool)

	runs, err := s.ListRuns(context.Background(), store.RunFilter{})
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}

func TestPostgresStore_ImplementsStore(t *testing.T) {
	var _ store.Store = (*store.PostgresStore)(nil)
}
