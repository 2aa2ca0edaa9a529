package domain

import "time"

type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"` // argon2id encoded, never plaintext
	CreatedAt    time.Time `db:"created_at"`
}
