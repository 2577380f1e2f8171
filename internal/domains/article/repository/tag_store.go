package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"conduit-backend/internal/domains/article"
	"conduit-backend/pkg/database"
)

// tagStore implements article.TagStore
type tagStore struct {
	db database.Querier
}

// NewTagStore creates the tag store
func NewTagStore(db database.Querier) article.TagStore {
	return &tagStore{db: db}
}

func (s *tagStore) WithTx(q database.Querier) article.TagStore {
	return &tagStore{db: q}
}

// GetOrCreate resolves the tag id for a normalized name, inserting it if
// absent. Race-safe under concurrent callers: the insert ignores the
// unique-violation and the follow-up read observes whichever insert won.
// A duplicate-key error never reaches the caller.
func (s *tagStore) GetOrCreate(ctx context.Context, name string) (int64, error) {
	insert := `
        INSERT INTO tags (tag)
        VALUES ($1)
        ON CONFLICT (tag) DO NOTHING
        RETURNING id
    `

	var id int64
	err := s.db.QueryRow(ctx, insert, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("failed to insert tag %q: %w", name, err)
	}

	// Conflict path: the row already exists, possibly created by a
	// concurrent caller between our insert and this read
	err = s.db.QueryRow(ctx, `SELECT id FROM tags WHERE tag = $1`, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to read tag %q after conflict: %w", name, err)
	}
	return id, nil
}

// TagsForArticle joins through article_tags
func (s *tagStore) TagsForArticle(ctx context.Context, slug uuid.UUID) ([]string, error) {
	query := `
        SELECT t.tag
        FROM tags t
        INNER JOIN article_tags at ON at.tag_id = t.id
        WHERE at.article_slug = $1
        ORDER BY t.tag ASC
    `

	rows, err := s.db.Query(ctx, query, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags for article: %w", err)
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}
	return tags, nil
}

// All enumerates every tag
func (s *tagStore) All(ctx context.Context) ([]article.Tag, error) {
	rows, err := s.db.Query(ctx, `SELECT id, tag FROM tags ORDER BY tag ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	tags := []article.Tag{}
	for rows.Next() {
		var t article.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}
	return tags, nil
}

// AttachTags writes the join rows in one batch. Duplicate pairs are
// ignored so re-attaching is harmless.
func (s *tagStore) AttachTags(ctx context.Context, slug uuid.UUID, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}

	query := `
        INSERT INTO article_tags (article_slug, tag_id)
        SELECT $1, unnest($2::int[])
        ON CONFLICT (article_slug, tag_id) DO NOTHING
    `

	if _, err := s.db.Exec(ctx, query, slug, tagIDs); err != nil {
		return fmt.Errorf("failed to attach tags: %w", err)
	}
	return nil
}
