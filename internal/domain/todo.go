package domain

import "time"

type Todo struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"` // Foreign key to users table
	Text      string    `db:"text"`
	Done      bool      `db:"done"`
	CreatedAt time.Time `db:"created_at"`
}

// TodoWithUser is a Todo joined with its owner's username, used by listings
// that print the owner alongside the todo.
type TodoWithUser struct {
	Todo
	Username string `db:"username"`
}
