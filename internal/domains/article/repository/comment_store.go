package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"conduit-backend/internal/domains/article"
	"conduit-backend/pkg/database"
)

// commentStore implements article.CommentStore
type commentStore struct {
	db      database.Querier
	follows article.FollowChecker
}

// NewCommentStore creates the comment store
func NewCommentStore(db database.Querier, follows article.FollowChecker) article.CommentStore {
	return &commentStore{db: db, follows: follows}
}

type commentRow struct {
	c        article.Comment
	authorID uuid.UUID
}

const commentSelect = `
    SELECT c.id, c.comment, c.created_at, c.updated_at,
           u.id, u.username, u.bio, u.image
    FROM comments c
    INNER JOIN users u ON u.id = c.author_id
`

func scanCommentRow(row pgx.Row) (*commentRow, error) {
	var r commentRow
	err := row.Scan(
		&r.c.ID,
		&r.c.Body,
		&r.c.CreatedAt,
		&r.c.UpdatedAt,
		&r.authorID,
		&r.c.Author.Username,
		&r.c.Author.Bio,
		&r.c.Author.Image,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *commentStore) Add(ctx context.Context, slug uuid.UUID, authorID uuid.UUID, body string) (int64, error) {
	query := `
        INSERT INTO comments (article_slug, author_id, comment)
        VALUES ($1, $2, $3)
        RETURNING id
    `

	var id int64
	if err := s.db.QueryRow(ctx, query, slug, authorID, body).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert comment: %w", err)
	}
	return id, nil
}

func (s *commentStore) Get(ctx context.Context, id int64, viewer *uuid.UUID) (*article.Comment, error) {
	query := commentSelect + ` WHERE c.id = $1`

	r, err := scanCommentRow(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}

	if err := s.fillFollowing(ctx, r, viewer); err != nil {
		return nil, err
	}
	return &r.c, nil
}

// ListForArticle orders newest first; the author following flags are
// filled concurrently and awaited before return
func (s *commentStore) ListForArticle(ctx context.Context, slug uuid.UUID, viewer *uuid.UUID) ([]article.Comment, error) {
	query := commentSelect + `
        WHERE c.article_slug = $1
        ORDER BY c.created_at DESC, c.id DESC
    `

	rows, err := s.db.Query(ctx, query, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var primary []*commentRow
	for rows.Next() {
		r, err := scanCommentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		primary = append(primary, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, r := range primary {
		g.Go(func() error {
			return s.fillFollowing(gctx, r, viewer)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]article.Comment, len(primary))
	for i, r := range primary {
		result[i] = r.c
	}
	return result, nil
}

func (s *commentStore) SameAuthor(ctx context.Context, id int64, userID uuid.UUID) (bool, bool, error) {
	var authorID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT author_id FROM comments WHERE id = $1`, id).Scan(&authorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, false, nil
		}
		return false, false, fmt.Errorf("failed to read comment author: %w", err)
	}
	return authorID == userID, true, nil
}

// Delete is scoped to the article so a comment id from another article
// never matches
func (s *commentStore) Delete(ctx context.Context, slug uuid.UUID, id int64) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM comments WHERE id = $1 AND article_slug = $2`, id, slug)
	if err != nil {
		return 0, fmt.Errorf("failed to delete comment: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *commentStore) fillFollowing(ctx context.Context, r *commentRow, viewer *uuid.UUID) error {
	if viewer == nil {
		return nil
	}
	following, err := s.follows.IsFollowing(ctx, *viewer, r.authorID)
	if err != nil {
		return err
	}
	r.c.Author.Following = following
	return nil
}
