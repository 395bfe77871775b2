// Package events defines the payloads published by the exercise tracker.
package events

import "time"

// UserRegistered is emitted when a new user is accepted.
type UserRegistered struct {
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	RegisteredAt time.Time `json:"registered_at"`
}

// ExerciseRecorded is emitted when a new exercise entry is persisted.
type ExerciseRecorded struct {
	ExerciseID  string    `json:"exercise_id"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	Description string    `json:"description"`
	DurationMin int       `json:"duration_min"`
	Date        time.Time `json:"date"`
	RecordedAt  time.Time `json:"recorded_at"`
}
