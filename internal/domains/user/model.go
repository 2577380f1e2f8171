package user

import (
	"time"

	"github.com/google/uuid"
)

// User is the account entity. PasswordHash never crosses the API boundary.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Bio          string    `json:"bio" db:"bio"`
	Image        *string   `json:"image" db:"image"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// NewUser carries the validated registration input
type NewUser struct {
	Username     string
	Email        string
	PasswordHash string
}

// UpdateDetails is a partial update: nil fields are left unchanged
type UpdateDetails struct {
	Username     *string
	Email        *string
	PasswordHash *string
	Bio          *string
	Image        *string
}
