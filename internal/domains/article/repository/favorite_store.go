package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"conduit-backend/internal/domains/article"
	"conduit-backend/pkg/database"
)

// favoriteStore implements article.FavoriteStore
type favoriteStore struct {
	db database.Querier
}

// NewFavoriteStore creates the favorite store
func NewFavoriteStore(db database.Querier) article.FavoriteStore {
	return &favoriteStore{db: db}
}

// Favorite inserts the (article, user) pair; ON CONFLICT keeps it idempotent
func (s *favoriteStore) Favorite(ctx context.Context, slug uuid.UUID, userID uuid.UUID) error {
	query := `
        INSERT INTO article_favorites (article_slug, user_id)
        VALUES ($1, $2)
        ON CONFLICT (article_slug, user_id) DO NOTHING
    `

	if _, err := s.db.Exec(ctx, query, slug, userID); err != nil {
		return fmt.Errorf("failed to favorite article: %w", err)
	}
	return nil
}

// Unfavorite deletes the pair; deleting a missing row is a no-op
func (s *favoriteStore) Unfavorite(ctx context.Context, slug uuid.UUID, userID uuid.UUID) error {
	query := `
        DELETE FROM article_favorites
        WHERE article_slug = $1 AND user_id = $2
    `

	if _, err := s.db.Exec(ctx, query, slug, userID); err != nil {
		return fmt.Errorf("failed to unfavorite article: %w", err)
	}
	return nil
}

func (s *favoriteStore) IsFavorited(ctx context.Context, slug uuid.UUID, userID uuid.UUID) (bool, error) {
	query := `
        SELECT EXISTS(
            SELECT 1 FROM article_favorites
            WHERE article_slug = $1 AND user_id = $2
        )
    `

	var exists bool
	if err := s.db.QueryRow(ctx, query, slug, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return exists, nil
}

func (s *favoriteStore) Count(ctx context.Context, slug uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM article_favorites WHERE article_slug = $1`

	var count int64
	if err := s.db.QueryRow(ctx, query, slug).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count favorites: %w", err)
	}
	return count, nil
}
