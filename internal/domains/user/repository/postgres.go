package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"conduit-backend/internal/domains/user"
	"conduit-backend/pkg/database"
)

// postgresRepository implements user.Repository over pgx
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the user repository
func NewPostgresRepository(pool *pgxpool.Pool) user.Repository {
	return &postgresRepository{pool: pool}
}

const userColumns = `id, username, email, password_hash, bio, image, created_at, updated_at`

// Create inserts the user and the registration self-follow edge in one
// transaction - either both rows exist afterwards or neither does.
func (r *postgresRepository) Create(ctx context.Context, nu user.NewUser) (*user.User, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*user.User, error) {
		query := `
            INSERT INTO users (username, email, password_hash)
            VALUES ($1, $2, $3)
            RETURNING ` + userColumns

		var created user.User
		err := tx.QueryRow(ctx, query, nu.Username, nu.Email, nu.PasswordHash).Scan(
			&created.ID,
			&created.Username,
			&created.Email,
			&created.PasswordHash,
			&created.Bio,
			&created.Image,
			&created.CreatedAt,
			&created.UpdatedAt,
		)
		if err != nil {
			if mapped := mapUniqueViolation(err); mapped != nil {
				return nil, mapped
			}
			return nil, fmt.Errorf("failed to create user: %w", err)
		}

		// Self-follow edge: the user's own articles belong in their feed
		edge := `
            INSERT INTO user_followers (user_id, followee_id)
            VALUES ($1, $1)
            ON CONFLICT (user_id, followee_id) DO NOTHING
        `
		if _, err := tx.Exec(ctx, edge, created.ID); err != nil {
			return nil, fmt.Errorf("failed to insert self-follow edge: %w", err)
		}

		return &created, nil
	})
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.getBy(ctx, "id = $1", id)
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getBy(ctx, "email = $1", email)
}

func (r *postgresRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.getBy(ctx, "username = $1", username)
}

// getBy performs a single-row lookup; absence is a nil result, not an error
func (r *postgresRepository) getBy(ctx context.Context, where string, arg any) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where

	var u user.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Bio,
		&u.Image,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

// Update applies only the non-nil fields of details
func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, details user.UpdateDetails) (*user.User, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []any{id}
	argPos := 2

	addSet := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if details.Username != nil {
		addSet("username", *details.Username)
	}
	if details.Email != nil {
		addSet("email", *details.Email)
	}
	if details.PasswordHash != nil {
		addSet("password_hash", *details.PasswordHash)
	}
	if details.Bio != nil {
		addSet("bio", *details.Bio)
	}
	if details.Image != nil {
		addSet("image", *details.Image)
	}

	query := fmt.Sprintf(`
        UPDATE users
        SET %s
        WHERE id = $1
        RETURNING %s
    `, strings.Join(setClauses, ", "), userColumns)

	var updated user.User
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&updated.ID,
		&updated.Username,
		&updated.Email,
		&updated.PasswordHash,
		&updated.Bio,
		&updated.Image,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		if mapped := mapUniqueViolation(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &updated, nil
}

// mapUniqueViolation translates a 23505 on users into the domain error,
// or returns nil when the error is something else
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "email") {
			return user.ErrEmailTaken
		}
		if strings.Contains(pgErr.ConstraintName, "username") {
			return user.ErrUsernameTaken
		}
	}
	return nil
}
