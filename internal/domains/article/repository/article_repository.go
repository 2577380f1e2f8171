package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"conduit-backend/internal/domains/article"
	"conduit-backend/internal/shared"
	"conduit-backend/pkg/database"
	"conduit-backend/pkg/logger"
)

// articleRepository is the orchestrator composing the stores into the
// operations handlers consume. Multi-statement writes run inside one
// transaction; composed read-backs run after commit so a caller never
// observes a half-written article.
type articleRepository struct {
	runner    database.TxRunner
	articles  article.Store
	tags      article.TagStore
	favorites article.FavoriteStore
	comments  article.CommentStore
}

// NewArticleRepository wires the orchestrator. The runner opens the
// transactions the stores are rebound to.
func NewArticleRepository(
	runner database.TxRunner,
	articles article.Store,
	tags article.TagStore,
	favorites article.FavoriteStore,
	comments article.CommentStore,
) article.Repository {
	return &articleRepository{
		runner:    runner,
		articles:  articles,
		tags:      tags,
		favorites: favorites,
		comments:  comments,
	}
}

// Add resolves every tag concurrently (get-or-create is race-safe and
// global, so it runs outside the article transaction), then inserts the
// article row and its tag joins atomically, then re-reads the composed
// view. A failure anywhere leaves no partially tagged article behind.
func (r *articleRepository) Add(ctx context.Context, a article.NewArticle, authorID uuid.UUID) (*article.Article, error) {
	tagIDs := make([]int64, len(a.TagList))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range a.TagList {
		g.Go(func() error {
			id, err := r.tags.GetOrCreate(gctx, name)
			if err != nil {
				return err
			}
			tagIDs[i] = id
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.ErrorWith("article add: tag resolution failed", err, map[string]interface{}{
			"author_id": authorID.String(),
		})
		return nil, err
	}

	var slug uuid.UUID
	err := r.runner.InTx(ctx, func(tx pgx.Tx) error {
		var err error
		slug, err = r.articles.WithTx(tx).Insert(ctx, a, authorID)
		if err != nil {
			return err
		}
		return r.tags.WithTx(tx).AttachTags(ctx, slug, tagIDs)
	})
	if err != nil {
		logger.ErrorWith("article add failed", err, map[string]interface{}{
			"author_id": authorID.String(),
		})
		return nil, err
	}

	logger.Info("article created", map[string]interface{}{"slug": slug.String()})

	created, err := r.articles.Find(ctx, slug, &authorID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		// The commit succeeded, so the row must be readable
		return nil, fmt.Errorf("article %s vanished after insert", slug)
	}
	return created, nil
}

func (r *articleRepository) Get(ctx context.Context, slug uuid.UUID, viewer *uuid.UUID) (*article.Article, error) {
	found, err := r.articles.Find(ctx, slug, viewer)
	if err != nil {
		logger.ErrorWith("article get failed", err, map[string]interface{}{"slug": slug.String()})
		return nil, err
	}
	if found == nil {
		return nil, article.ErrArticleNotFound
	}
	return found, nil
}

// Update checks authorship before mutating: an unknown slug is
// ErrArticleNotFound, a foreign author is ErrForbidden - never inferred
// from a constraint violation
func (r *articleRepository) Update(ctx context.Context, slug uuid.UUID, details article.UpdateDetails, userID uuid.UUID) (*article.Article, error) {
	err := r.runner.InTx(ctx, func(tx pgx.Tx) error {
		store := r.articles.WithTx(tx)

		if err := authorize(ctx, store, slug, userID); err != nil {
			return err
		}

		affected, err := store.Update(ctx, slug, details)
		if err != nil {
			return err
		}
		if affected == 0 {
			return article.ErrArticleNotFound
		}
		return nil
	})
	if err != nil {
		if !article.IsDomainError(err) {
			logger.ErrorWith("article update failed", err, map[string]interface{}{"slug": slug.String()})
		}
		return nil, err
	}

	return r.Get(ctx, slug, &userID)
}

// Remove follows the same authorization sequence as Update
func (r *articleRepository) Remove(ctx context.Context, slug uuid.UUID, userID uuid.UUID) error {
	err := r.runner.InTx(ctx, func(tx pgx.Tx) error {
		store := r.articles.WithTx(tx)

		if err := authorize(ctx, store, slug, userID); err != nil {
			return err
		}
		return store.Delete(ctx, slug)
	})
	if err != nil {
		if !article.IsDomainError(err) {
			logger.ErrorWith("article remove failed", err, map[string]interface{}{"slug": slug.String()})
		}
		return err
	}

	logger.Info("article removed", map[string]interface{}{"slug": slug.String()})
	return nil
}

// Favorite applies the idempotent insert and returns the fresh composed
// view so the caller always sees the updated count and flag
func (r *articleRepository) Favorite(ctx context.Context, slug uuid.UUID, userID uuid.UUID) (*article.Article, error) {
	return r.setFavorite(ctx, slug, userID, r.favorites.Favorite)
}

// Unfavorite mirrors Favorite; unfavoriting twice is not an error
func (r *articleRepository) Unfavorite(ctx context.Context, slug uuid.UUID, userID uuid.UUID) (*article.Article, error) {
	return r.setFavorite(ctx, slug, userID, r.favorites.Unfavorite)
}

func (r *articleRepository) setFavorite(
	ctx context.Context,
	slug uuid.UUID,
	userID uuid.UUID,
	apply func(context.Context, uuid.UUID, uuid.UUID) error,
) (*article.Article, error) {
	exists, err := r.articles.Exists(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, article.ErrArticleNotFound
	}

	if err := apply(ctx, slug, userID); err != nil {
		logger.ErrorWith("favorite toggle failed", err, map[string]interface{}{
			"slug":    slug.String(),
			"user_id": userID.String(),
		})
		return nil, err
	}

	return r.Get(ctx, slug, &userID)
}

func (r *articleRepository) List(ctx context.Context, filter article.ListFilter) ([]article.Article, error) {
	articles, err := r.articles.ListFiltered(ctx, filter)
	if err != nil {
		logger.Error("article list failed", err)
		return nil, err
	}
	return articles, nil
}

func (r *articleRepository) Feed(ctx context.Context, viewerID uuid.UUID, limit shared.Limit, offset shared.Offset) ([]article.Article, error) {
	articles, err := r.articles.Feed(ctx, viewerID, limit, offset)
	if err != nil {
		logger.ErrorWith("feed failed", err, map[string]interface{}{"viewer_id": viewerID.String()})
		return nil, err
	}
	return articles, nil
}

// Comments requires the article to exist; an existing article with no
// comments is success with an empty list
func (r *articleRepository) Comments(ctx context.Context, slug uuid.UUID, viewer *uuid.UUID) ([]article.Comment, error) {
	exists, err := r.articles.Exists(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, article.ErrArticleNotFound
	}

	return r.comments.ListForArticle(ctx, slug, viewer)
}

func (r *articleRepository) AddComment(ctx context.Context, slug uuid.UUID, authorID uuid.UUID, body string) (*article.Comment, error) {
	exists, err := r.articles.Exists(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, article.ErrArticleNotFound
	}

	id, err := r.comments.Add(ctx, slug, authorID, body)
	if err != nil {
		logger.ErrorWith("comment add failed", err, map[string]interface{}{"slug": slug.String()})
		return nil, err
	}

	created, err := r.comments.Get(ctx, id, &authorID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("comment %d vanished after insert", id)
	}
	return created, nil
}

func (r *articleRepository) RemoveComment(ctx context.Context, slug uuid.UUID, commentID int64, userID uuid.UUID) error {
	exists, err := r.articles.Exists(ctx, slug)
	if err != nil {
		return err
	}
	if !exists {
		return article.ErrArticleNotFound
	}

	same, found, err := r.comments.SameAuthor(ctx, commentID, userID)
	if err != nil {
		return err
	}
	if !found {
		return article.ErrCommentNotFound
	}
	if !same {
		return article.ErrForbidden
	}

	if _, err := r.comments.Delete(ctx, slug, commentID); err != nil {
		logger.ErrorWith("comment remove failed", err, map[string]interface{}{
			"slug":       slug.String(),
			"comment_id": commentID,
		})
		return err
	}
	return nil
}

func (r *articleRepository) Tags(ctx context.Context) ([]article.Tag, error) {
	tags, err := r.tags.All(ctx)
	if err != nil {
		logger.Error("tag enumeration failed", err)
		return nil, err
	}
	return tags, nil
}

// authorize resolves the tri-state authorship check into domain errors
func authorize(ctx context.Context, store article.Store, slug uuid.UUID, userID uuid.UUID) error {
	same, found, err := store.IsSameAuthor(ctx, slug, userID)
	if err != nil {
		return err
	}
	if !found {
		return article.ErrArticleNotFound
	}
	if !same {
		return article.ErrForbidden
	}
	return nil
}
