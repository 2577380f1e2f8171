package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for user accounts.
// Single-row lookups return (nil, nil) on absence; callers attach
// business meaning (ErrUserNotFound) where existence is required.
type Repository interface {
	// Create inserts the user row and the self-follow edge in one
	// transaction so the user's own articles appear in their feed.
	// Errors: ErrEmailTaken, ErrUsernameTaken on unique violations
	Create(ctx context.Context, u NewUser) (*User, error)

	// GetByID returns nil without error when the id is unknown
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByEmail returns nil without error when the email is unknown
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByUsername returns nil without error when the username is unknown
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Update applies only the non-nil fields of details.
	// Errors: ErrUserNotFound, ErrEmailTaken, ErrUsernameTaken
	Update(ctx context.Context, id uuid.UUID, details UpdateDetails) (*User, error)
}

// Service defines the account business logic consumed by handlers
type Service interface {
	// Register creates the account (bcrypt-hashed password, self-follow
	// edge) and returns the stored user.
	// Errors: ErrEmailTaken, ErrUsernameTaken
	Register(ctx context.Context, req *RegisterRequest) (*User, error)

	// Login verifies credentials; repeated failures against one email
	// lock the account for a cooldown window.
	// Errors: ErrInvalidCredentials, ErrAccountLocked
	Login(ctx context.Context, req *LoginRequest) (*User, error)

	// Current fetches the caller's own account.
	// Errors: ErrUserNotFound
	Current(ctx context.Context, id uuid.UUID) (*User, error)

	// Update applies a partial self-update, re-hashing the password when
	// one is supplied.
	// Errors: ErrUserNotFound, ErrEmailTaken, ErrUsernameTaken
	Update(ctx context.Context, id uuid.UUID, req *UpdateUserRequest) (*User, error)
}
