package domain

import "time"

// Exercise is a single recorded workout entry. Username is a denormalized
// copy of the owning user's name, stamped when the entry is saved.
type Exercise struct {
	ID          string
	UserID      string
	Username    string
	Description string
	Duration    int
	Date        time.Time
	CreatedAt   time.Time
}
