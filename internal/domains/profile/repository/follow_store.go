package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"conduit-backend/pkg/database"
)

// followStore implements profile.FollowStore over the user_followers table
type followStore struct {
	db database.Querier
}

// NewFollowStore creates the follow-graph store
func NewFollowStore(db database.Querier) *followStore {
	return &followStore{db: db}
}

// WithTx returns a copy of the store bound to the given querier,
// typically a transaction opened by an orchestrator
func (s *followStore) WithTx(q database.Querier) *followStore {
	return &followStore{db: q}
}

// Follow inserts the edge; ON CONFLICT keeps it idempotent
func (s *followStore) Follow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	query := `
        INSERT INTO user_followers (user_id, followee_id)
        VALUES ($1, $2)
        ON CONFLICT (user_id, followee_id) DO NOTHING
    `

	if _, err := s.db.Exec(ctx, query, followerID, followeeID); err != nil {
		return fmt.Errorf("failed to insert follow edge: %w", err)
	}
	return nil
}

// Unfollow deletes the edge; deleting a missing edge is a no-op
func (s *followStore) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	query := `
        DELETE FROM user_followers
        WHERE user_id = $1 AND followee_id = $2
    `

	if _, err := s.db.Exec(ctx, query, followerID, followeeID); err != nil {
		return fmt.Errorf("failed to delete follow edge: %w", err)
	}
	return nil
}

// IsFollowing checks edge membership
func (s *followStore) IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	query := `
        SELECT EXISTS(
            SELECT 1 FROM user_followers
            WHERE user_id = $1 AND followee_id = $2
        )
    `

	var exists bool
	if err := s.db.QueryRow(ctx, query, followerID, followeeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check follow edge: %w", err)
	}
	return exists, nil
}
