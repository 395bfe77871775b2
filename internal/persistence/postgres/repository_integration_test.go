//go:build integration

package postgres

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"example.com/exercisetracker/internal/domain"
)

func TestCreateUserMapsDuplicateToUsernameTaken(t *testing.T) {
	ctx := context.Background()
	repo, pool, cleanup := setupRepository(t, ctx)
	defer cleanup()

	user := domain.User{ID: uuid.NewString(), Username: "alice", CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.CreateUser(ctx, user))

	dup := domain.User{ID: uuid.NewString(), Username: "alice", CreatedAt: time.Now().UTC()}
	err := repo.CreateUser(ctx, dup)
	require.ErrorIs(t, err, domain.ErrUsernameTaken)

	var outboxRows int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM outbox WHERE event_type='user.registered'`).Scan(&outboxRows))
	require.Equal(t, 1, outboxRows, "rolled-back create must not leave outbox rows")
}

func TestGetUserByIDMissingReturnsNil(t *testing.T) {
	ctx := context.Background()
	repo, _, cleanup := setupRepository(t, ctx)
	defer cleanup()

	user, err := repo.GetUserByID(ctx, uuid.NewString())
	require.NoError(t, err)
	require.Nil(t, user)
}

func TestExerciseRangeQuery(t *testing.T) {
	ctx := context.Background()
	repo, pool, cleanup := setupRepository(t, ctx)
	defer cleanup()

	user := domain.User{ID: uuid.NewString(), Username: "bob", CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.CreateUser(ctx, user))

	dates := []time.Time{
		time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC),
	}
	for i, date := range dates {
		exercise := domain.Exercise{
			ID:          uuid.NewString(),
			UserID:      user.ID,
			Username:    user.Username,
			Description: "run",
			Duration:    10 + i,
			Date:        date,
			CreatedAt:   time.Now().UTC(),
		}
		require.NoError(t, repo.CreateExercise(ctx, exercise))
	}

	// Everything, newest first.
	all, err := repo.ListExercisesByUser(ctx, user.ID, time.Unix(0, 0).UTC(), time.Now().UTC(), 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.True(t, all[0].Date.Equal(dates[2]))
	require.True(t, all[2].Date.Equal(dates[0]))

	// Inclusive bounds.
	mid, err := repo.ListExercisesByUser(ctx, user.ID, dates[1], dates[1], 0)
	require.NoError(t, err)
	require.Len(t, mid, 1)
	require.Equal(t, 11, mid[0].Duration)

	// Limit truncates to the most recent.
	limited, err := repo.ListExercisesByUser(ctx, user.ID, time.Unix(0, 0).UTC(), time.Now().UTC(), 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	require.True(t, limited[0].Date.Equal(dates[2]))

	var outboxRows int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM outbox WHERE event_type='exercise.recorded'`).Scan(&outboxRows))
	require.Equal(t, 3, outboxRows)
}

func TestSchemaRejectsShortDuration(t *testing.T) {
	ctx := context.Background()
	repo, _, cleanup := setupRepository(t, ctx)
	defer cleanup()

	user := domain.User{ID: uuid.NewString(), Username: "carol", CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.CreateUser(ctx, user))

	exercise := domain.Exercise{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		Username:    user.Username,
		Description: "run",
		Duration:    0,
		Date:        time.Now().UTC(),
		CreatedAt:   time.Now().UTC(),
	}
	require.Error(t, repo.CreateExercise(ctx, exercise), "CHECK constraint must reject duration < 1")
}

func setupRepository(t *testing.T, ctx context.Context) (*Repository, *pgxpool.Pool, func()) {
	t.Helper()

	pg, err := postgrescontainer.RunContainer(ctx,
		postgrescontainer.WithDatabase("exercise_track"),
		postgrescontainer.WithUsername("exercise"),
		postgrescontainer.WithPassword("exercise"),
	)
	require.NoError(t, err)

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	require.NoError(t, waitForDatabase(ctx, pool))

	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "db", "postgres", "migrations", "0001_init.up.sql"))
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(schema))
	require.NoError(t, err)

	cleanup := func() {
		pool.Close()
		_ = pg.Terminate(ctx)
	}
	return NewRepository(pool), pool, cleanup
}

func waitForDatabase(ctx context.Context, pool *pgxpool.Pool) error {
	var err error
	for i := 0; i < 30; i++ {
		if err = pool.Ping(ctx); err == nil {
			return nil
		}
		time.Sleep(time.Second)
	}
	return err
}
