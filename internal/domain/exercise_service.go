package domain

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxDescriptionLength mirrors the column bound on exercises.description.
const MaxDescriptionLength = 20

// ExerciseRepository captures persistence operations for exercises.
// ListExercisesByUser returns entries with dates inside [from, to] (inclusive),
// sorted descending by date; limit <= 0 means no truncation.
type ExerciseRepository interface {
	CreateExercise(ctx context.Context, exercise Exercise) error
	ListExercisesByUser(ctx context.Context, userID string, from, to time.Time, limit int) ([]Exercise, error)
}

// ExerciseService owns validation and persistence rules for exercises.
type ExerciseService struct {
	exercises ExerciseRepository
	users     UserRepository
}

// NewExerciseService constructs an ExerciseService.
func NewExerciseService(exercises ExerciseRepository, users UserRepository) *ExerciseService {
	return &ExerciseService{exercises: exercises, users: users}
}

// RecordExerciseInput captures the payload from the route layer. A nil Date
// means the entry is stamped with the current date at save time.
type RecordExerciseInput struct {
	UserID      string
	Description string
	Duration    int
	Date        *time.Time
}

// RecordExercise resolves the owning user, validates the candidate entry,
// stamps the denormalized username, and persists the exercise.
//
// The user is resolved twice: once up front and once immediately before the
// save. The second lookup replaces what used to be an implicit pre-save hook
// and is kept even though it duplicates the first check.
func (s *ExerciseService) RecordExercise(ctx context.Context, input RecordExerciseInput) (*Exercise, error) {
	user, err := s.users.GetUserByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnknownUser
	}

	if err := validateExercise(input); err != nil {
		return nil, err
	}

	// Pre-persist stamp step.
	owner, err := s.users.GetUserByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, ErrUnknownUserAtSave
	}

	now := time.Now().UTC()
	date := now
	if input.Date != nil {
		date = input.Date.UTC()
	}

	exercise := Exercise{
		ID:          uuid.NewString(),
		UserID:      owner.ID,
		Username:    owner.Username,
		Description: input.Description,
		Duration:    input.Duration,
		Date:        date,
		CreatedAt:   now,
	}
	if err := s.exercises.CreateExercise(ctx, exercise); err != nil {
		return nil, err
	}
	return &exercise, nil
}

// Log resolves the user and returns their exercises inside the requested
// range. A nil bound means no bound: the lower falls back to the Unix epoch,
// the upper to the current moment. Limit <= 0 returns everything.
func (s *ExerciseService) Log(ctx context.Context, userID string, from, to *time.Time, limit int) (*User, []Exercise, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUnknownUser
	}

	lower := time.Unix(0, 0).UTC()
	if from != nil {
		lower = from.UTC()
	}
	upper := time.Now().UTC()
	if to != nil {
		upper = to.UTC()
	}

	exercises, err := s.exercises.ListExercisesByUser(ctx, userID, lower, upper, limit)
	if err != nil {
		return nil, nil, err
	}
	return user, exercises, nil
}

func validateExercise(input RecordExerciseInput) error {
	switch {
	case input.Description == "":
		return fieldError("description", "description is required")
	case utf8.RuneCountInString(input.Description) > MaxDescriptionLength:
		return fieldError("description", "description too long")
	}
	switch {
	case input.Duration == 0:
		return fieldError("duration", "duration is required")
	case input.Duration < 1:
		return fieldError("duration", "duration too short")
	}
	return nil
}
