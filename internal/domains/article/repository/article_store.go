package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"conduit-backend/internal/domains/article"
	"conduit-backend/internal/shared"
	"conduit-backend/internal/shared/utils"
	"conduit-backend/pkg/database"
)

// articleStore implements article.Store. The favorite count is
// aggregated in the primary query; the tag list and viewer-relative
// flags are separate read-only round-trips fanned out per row.
type articleStore struct {
	db        database.Querier
	tags      article.TagStore
	favorites article.FavoriteStore
	follows   article.FollowChecker
}

// NewArticleStore creates the article store
func NewArticleStore(db database.Querier, tags article.TagStore, favorites article.FavoriteStore, follows article.FollowChecker) article.Store {
	return &articleStore{db: db, tags: tags, favorites: favorites, follows: follows}
}

// WithTx binds the row queries to a transaction. Enrichment collaborators
// stay pool-backed: a pgx transaction does not support concurrent
// queries, and the composed reads run after the writes commit.
func (s *articleStore) WithTx(q database.Querier) article.Store {
	return &articleStore{db: q, tags: s.tags, favorites: s.favorites, follows: s.follows}
}

// articleRow is the primary row set before enrichment
type articleRow struct {
	a        article.Article
	authorID uuid.UUID
}

const articleSelect = `
    SELECT a.slug, a.title, a.description, a.body, a.created_at, a.updated_at,
           u.id, u.username, u.bio, u.image,
           COUNT(af.user_id) AS favorites_count
    FROM articles a
    INNER JOIN users u ON u.id = a.author_id
    LEFT JOIN article_favorites af ON af.article_slug = a.slug
`

const articleGroupBy = ` GROUP BY a.slug, u.id`

func scanArticleRow(row pgx.Row) (*articleRow, error) {
	var r articleRow
	err := row.Scan(
		&r.a.Slug,
		&r.a.Title,
		&r.a.Description,
		&r.a.Body,
		&r.a.CreatedAt,
		&r.a.UpdatedAt,
		&r.authorID,
		&r.a.Author.Username,
		&r.a.Author.Bio,
		&r.a.Author.Image,
		&r.a.FavoritesCount,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *articleStore) Insert(ctx context.Context, a article.NewArticle, authorID uuid.UUID) (uuid.UUID, error) {
	query := `
        INSERT INTO articles (title, description, body, author_id)
        VALUES ($1, $2, $3, $4)
        RETURNING slug
    `

	var slug uuid.UUID
	err := s.db.QueryRow(ctx, query, a.Title, a.Description, a.Body, authorID).Scan(&slug)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert article: %w", err)
	}
	return slug, nil
}

func (s *articleStore) Find(ctx context.Context, slug uuid.UUID, viewer *uuid.UUID) (*article.Article, error) {
	query := articleSelect + ` WHERE a.slug = $1` + articleGroupBy

	r, err := scanArticleRow(s.db.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find article: %w", err)
	}

	if err := s.enrich(ctx, r, viewer); err != nil {
		return nil, err
	}
	return &r.a, nil
}

// buildUpdateQuery composes the partial UPDATE from the non-nil fields.
// ok is false when no field is set; the statement would only advance
// updated_at, so it must not run.
func buildUpdateQuery(slug uuid.UUID, details article.UpdateDetails) (string, []any, bool) {
	setClauses := []string{"updated_at = NOW()"}
	args := []any{slug}
	argPos := 2

	addSet := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if details.Title != nil {
		addSet("title", *details.Title)
	}
	if details.Description != nil {
		addSet("description", *details.Description)
	}
	if details.Body != nil {
		addSet("body", *details.Body)
	}

	if len(setClauses) == 1 {
		return "", nil, false
	}

	query := fmt.Sprintf(`UPDATE articles SET %s WHERE slug = $1`, strings.Join(setClauses, ", "))
	return query, args, true
}

// Update applies only the non-nil fields. An update with no fields set
// is a no-op: updated_at stays put and only existence is reported.
func (s *articleStore) Update(ctx context.Context, slug uuid.UUID, details article.UpdateDetails) (int64, error) {
	query, args, ok := buildUpdateQuery(slug, details)
	if !ok {
		exists, err := s.Exists(ctx, slug)
		if err != nil {
			return 0, err
		}
		if exists {
			return 1, nil
		}
		return 0, nil
	}

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update article: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Delete removes the article; article_tags, article_favorites and
// comments cascade at the schema level
func (s *articleStore) Delete(ctx context.Context, slug uuid.UUID) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM articles WHERE slug = $1`, slug); err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	return nil
}

func (s *articleStore) Exists(ctx context.Context, slug uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM articles WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check article existence: %w", err)
	}
	return exists, nil
}

func (s *articleStore) IsSameAuthor(ctx context.Context, slug uuid.UUID, userID uuid.UUID) (bool, bool, error) {
	var authorID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT author_id FROM articles WHERE slug = $1`, slug).Scan(&authorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, false, nil
		}
		return false, false, fmt.Errorf("failed to read article author: %w", err)
	}
	return authorID == userID, true, nil
}

// buildListQuery AND-composes the active filters onto the primary
// select. Filters are EXISTS subqueries so the favorite-count aggregate
// never double-counts rows.
func buildListQuery(f article.ListFilter) (string, []any) {
	var conditions []string
	args := []any{}
	argPos := 1

	if f.Author != "" {
		conditions = append(conditions, fmt.Sprintf("u.username = $%d", argPos))
		args = append(args, f.Author)
		argPos++
	}

	if f.Tag != "" {
		conditions = append(conditions, fmt.Sprintf(`EXISTS (
            SELECT 1 FROM article_tags at
            INNER JOIN tags t ON t.id = at.tag_id
            WHERE at.article_slug = a.slug AND t.tag = $%d
        )`, argPos))
		args = append(args, f.Tag)
		argPos++
	}

	if f.FavoritedBy != "" {
		conditions = append(conditions, fmt.Sprintf(`EXISTS (
            SELECT 1 FROM article_favorites fav
            INNER JOIN users fu ON fu.id = fav.user_id
            WHERE fav.article_slug = a.slug AND fu.username = $%d
        )`, argPos))
		args = append(args, f.FavoritedBy)
		argPos++
	}

	var query strings.Builder
	query.WriteString(articleSelect)
	if len(conditions) > 0 {
		query.WriteString(" WHERE ")
		query.WriteString(utils.JoinWithAnd(conditions))
	}
	query.WriteString(articleGroupBy)

	// Newest first; slug breaks creation-time ties deterministically
	query.WriteString(" ORDER BY a.created_at DESC, a.slug ASC")
	query.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1))
	args = append(args, f.Limit.Value(), f.Offset.Value())

	return query.String(), args
}

func (s *articleStore) ListFiltered(ctx context.Context, filter article.ListFilter) ([]article.Article, error) {
	query, args := buildListQuery(filter)
	return s.queryComposed(ctx, query, args, filter.Viewer)
}

// buildFeedQuery restricts the primary select to authors the viewer
// follows (the self-follow edge includes the viewer's own articles)
func buildFeedQuery(viewerID uuid.UUID, limit shared.Limit, offset shared.Offset) (string, []any) {
	query := articleSelect + `
    WHERE EXISTS (
        SELECT 1 FROM user_followers uf
        WHERE uf.user_id = $1 AND uf.followee_id = a.author_id
    )` + articleGroupBy + `
    ORDER BY a.created_at DESC, a.slug ASC
    LIMIT $2 OFFSET $3`

	return query, []any{viewerID, limit.Value(), offset.Value()}
}

func (s *articleStore) Feed(ctx context.Context, viewerID uuid.UUID, limit shared.Limit, offset shared.Offset) ([]article.Article, error) {
	query, args := buildFeedQuery(viewerID, limit, offset)
	return s.queryComposed(ctx, query, args, &viewerID)
}

// queryComposed runs the primary query, then enriches every row before
// returning - the fan-out is awaited, so cancelling ctx cancels all of
// it and no orphaned lookups outlive the call. The enrichment lookups
// run on the pool, not inside the primary query's snapshot: a favorite
// or follow committed between the two reads can leave the flag one
// write ahead of the aggregated count for that response.
func (s *articleStore) queryComposed(ctx context.Context, query string, args []any, viewer *uuid.UUID) ([]article.Article, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	var primary []*articleRow
	for rows.Next() {
		r, err := scanArticleRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		primary = append(primary, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating articles: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, r := range primary {
		g.Go(func() error {
			return s.enrich(gctx, r, viewer)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]article.Article, len(primary))
	for i, r := range primary {
		result[i] = r.a
	}
	return result, nil
}

// enrich fills the tag list and the viewer-relative flags of one row.
// The three lookups are independent reads and run concurrently.
func (s *articleStore) enrich(ctx context.Context, r *articleRow, viewer *uuid.UUID) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		tags, err := s.tags.TagsForArticle(gctx, r.a.Slug)
		if err != nil {
			return err
		}
		r.a.TagList = tags
		return nil
	})

	if viewer != nil {
		g.Go(func() error {
			favorited, err := s.favorites.IsFavorited(gctx, r.a.Slug, *viewer)
			if err != nil {
				return err
			}
			r.a.Favorited = favorited
			return nil
		})
		g.Go(func() error {
			following, err := s.follows.IsFollowing(gctx, *viewer, r.authorID)
			if err != nil {
				return err
			}
			r.a.Author.Following = following
			return nil
		})
	}

	return g.Wait()
}
