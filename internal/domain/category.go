package domain

import "time"

// Category groups todos for a single user. (text, user_id) pairs are unique
// per user; todos attach to categories through the todo_categories join
// table.
type Category struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"` // Foreign key to users table
	Text      string    `db:"text"`
	CreatedAt time.Time `db:"created_at"`
}
