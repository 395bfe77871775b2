// Package domain defines the business logic for the exercise tracker.
package domain

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxUsernameLength mirrors the column bound on users.username.
const MaxUsernameLength = 20

// UserRepository captures persistence operations for users.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
}

// UserService owns validation and persistence rules for users.
type UserService struct {
	repo UserRepository
}

// NewUserService constructs a UserService.
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// CreateUser validates and persists a new user. Duplicate usernames surface
// as ErrUsernameTaken from the repository.
func (s *UserService) CreateUser(ctx context.Context, username string) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}

	user := User{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns every stored user in storage order.
func (s *UserService) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.ListUsers(ctx)
}

func validateUsername(username string) error {
	switch {
	case username == "":
		return fieldError("username", "username is required")
	case utf8.RuneCountInString(username) > MaxUsernameLength:
		return fieldError("username", "username too long")
	}
	return nil
}
