package domain

import "time"

// User is a registered owner of exercise entries.
type User struct {
	ID        string
	Username  string
	CreatedAt time.Time
}
