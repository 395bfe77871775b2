// Package postgres provides pgx-backed persistence for users, exercises, and
// outbox events.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/exercisetracker/internal/domain"
	"example.com/exercisetracker/internal/events"
	"example.com/exercisetracker/internal/observability"
)

// uniqueViolation is the Postgres error code raised by the username index.
const uniqueViolation = "23505"

// Repository provides Postgres-backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateUser persists the user and records a user.registered outbox event in
// a single transaction. A duplicate username maps to domain.ErrUsernameTaken.
func (r *Repository) CreateUser(ctx context.Context, user domain.User) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	const insertUser = `INSERT INTO users (user_id, username, created_at) VALUES ($1,$2,$3)`
	if _, err = tx.Exec(ctx, insertUser, user.ID, user.Username, user.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			err = domain.ErrUsernameTaken
		}
		return err
	}

	if err = insertOutbox(ctx, tx, "user.registered", user.ID, events.UserRegistered{
		UserID:       user.ID,
		Username:     user.Username,
		RegisteredAt: user.CreatedAt,
	}); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return err
	}
	observability.RecordUserRegistered(user.CreatedAt)
	return nil
}

// GetUserByID returns the user or nil when no row matches.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT user_id, username, created_at FROM users WHERE user_id=$1`

	row := r.pool.QueryRow(ctx, query, id)
	var user domain.User
	if err := row.Scan(&user.ID, &user.Username, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// ListUsers returns all users in insertion order.
func (r *Repository) ListUsers(ctx context.Context) ([]domain.User, error) {
	const query = `SELECT user_id, username, created_at FROM users ORDER BY created_at, user_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Username, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// CreateExercise persists the exercise and records an exercise.recorded
// outbox event in a single transaction.
func (r *Repository) CreateExercise(ctx context.Context, exercise domain.Exercise) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	const insertExercise = `INSERT INTO exercises (exercise_id, user_id, username, description, duration, exercise_date, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`

	_, err = tx.Exec(ctx, insertExercise,
		exercise.ID,
		exercise.UserID,
		exercise.Username,
		exercise.Description,
		exercise.Duration,
		exercise.Date,
		exercise.CreatedAt,
	)
	if err != nil {
		return err
	}

	if err = insertOutbox(ctx, tx, "exercise.recorded", exercise.ID, events.ExerciseRecorded{
		ExerciseID:  exercise.ID,
		UserID:      exercise.UserID,
		Username:    exercise.Username,
		Description: exercise.Description,
		DurationMin: exercise.Duration,
		Date:        exercise.Date,
		RecordedAt:  exercise.CreatedAt,
	}); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return err
	}
	observability.RecordExercisePersisted(exercise.CreatedAt)
	return nil
}

// ListExercisesByUser returns entries inside [from, to] inclusive, newest
// first, truncated to limit when positive.
func (r *Repository) ListExercisesByUser(ctx context.Context, userID string, from, to time.Time, limit int) ([]domain.Exercise, error) {
	query := `SELECT exercise_id, user_id, username, description, duration, exercise_date, created_at
        FROM exercises
        WHERE user_id=$1 AND exercise_date >= $2 AND exercise_date <= $3
        ORDER BY exercise_date DESC, created_at DESC`
	args := []interface{}{userID, from, to}

	if limit > 0 {
		query += ` LIMIT $4`
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := make([]domain.Exercise, 0)
	for rows.Next() {
		var exercise domain.Exercise
		if err := rows.Scan(&exercise.ID, &exercise.UserID, &exercise.Username, &exercise.Description, &exercise.Duration, &exercise.Date, &exercise.CreatedAt); err != nil {
			return nil, err
		}
		exercises = append(exercises, exercise)
	}
	return exercises, rows.Err()
}

func insertOutbox(ctx context.Context, tx pgx.Tx, eventType, aggregateID string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	meta, ok := eventCatalog[eventType]
	if !ok {
		return fmt.Errorf("unknown event type: %s", eventType)
	}

	const stmt = `INSERT INTO outbox (aggregate_type, aggregate_id, event_type, topic, partition_key, payload, dedupe_key)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`

	dedupeKey := fmt.Sprintf("%s:%s", aggregateID, eventType)
	_, err = tx.Exec(ctx, stmt,
		meta.AggregateType,
		aggregateID,
		eventType,
		meta.Topic,
		meta.PartitionKey(payload),
		body,
		dedupeKey,
	)
	return err
}

// EventMetadata describes how to route an outbox event.
type EventMetadata struct {
	AggregateType string
	Topic         string
	PartitionKey  func(payload interface{}) string
}

var eventCatalog = map[string]EventMetadata{
	"user.registered": {
		AggregateType: "user",
		Topic:         "user_events",
		PartitionKey: func(payload interface{}) string {
			return payload.(events.UserRegistered).UserID
		},
	},
	"exercise.recorded": {
		AggregateType: "exercise",
		Topic:         "exercise_events",
		PartitionKey: func(payload interface{}) string {
			return payload.(events.ExerciseRecorded).UserID
		},
	},
}
