// Package memory stores users and exercises in memory for local development
// and unit tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"example.com/exercisetracker/internal/domain"
)

// Repository implements domain.UserRepository and domain.ExerciseRepository
// without external storage.
type Repository struct {
	mu        sync.RWMutex
	users     []domain.User
	byID      map[string]domain.User
	byName    map[string]struct{}
	exercises map[string][]domain.Exercise
}

// NewRepository constructs an empty Repository.
func NewRepository() *Repository {
	return &Repository{
		byID:      make(map[string]domain.User),
		byName:    make(map[string]struct{}),
		exercises: make(map[string][]domain.Exercise),
	}
}

// CreateUser implements domain.UserRepository. Duplicate usernames are
// rejected the same way the unique index rejects them in Postgres.
func (r *Repository) CreateUser(ctx context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[user.Username]; exists {
		return domain.ErrUsernameTaken
	}
	r.users = append(r.users, user)
	r.byID[user.ID] = user
	r.byName[user.Username] = struct{}{}
	return nil
}

// GetUserByID implements domain.UserRepository.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// ListUsers implements domain.UserRepository, returning users in insertion
// order.
func (r *Repository) ListUsers(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

// CreateExercise appends an exercise entry for its user.
func (r *Repository) CreateExercise(ctx context.Context, exercise domain.Exercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.exercises[exercise.UserID] = append(r.exercises[exercise.UserID], exercise)
	return nil
}

// ListExercisesByUser filters the user's exercises to [from, to] inclusive,
// sorts them descending by date, and truncates to limit when positive.
func (r *Repository) ListExercisesByUser(ctx context.Context, userID string, from, to time.Time, limit int) ([]domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Exercise, 0)
	for _, exercise := range r.exercises[userID] {
		if exercise.Date.Before(from) || exercise.Date.After(to) {
			continue
		}
		out = append(out, exercise)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
