package article

import (
	"context"

	"github.com/google/uuid"

	"conduit-backend/internal/shared"
	"conduit-backend/pkg/database"
)

// Store is the article row store. Find/ListFiltered/Feed return composed
// views; single-row absence is a nil result, not an error - the
// orchestrator attaches business meaning where existence is required.
type Store interface {
	// Insert creates the row and returns the generated slug.
	// Tag associations are the caller's job.
	Insert(ctx context.Context, a NewArticle, authorID uuid.UUID) (uuid.UUID, error)

	// Find returns the composed view relative to the optional viewer,
	// or nil when the slug does not exist
	Find(ctx context.Context, slug uuid.UUID, viewer *uuid.UUID) (*Article, error)

	// Update applies only the non-nil fields and reports rows affected
	// (0 means not found)
	Update(ctx context.Context, slug uuid.UUID, details UpdateDetails) (int64, error)

	// Delete removes the article; join rows cascade
	Delete(ctx context.Context, slug uuid.UUID) error

	// Exists is a lightweight existence probe
	Exists(ctx context.Context, slug uuid.UUID) (bool, error)

	// IsSameAuthor is tri-state: found=false means the slug is unknown
	IsSameAuthor(ctx context.Context, slug uuid.UUID, userID uuid.UUID) (same bool, found bool, err error)

	// ListFiltered AND-composes the active filters, orders newest first
	// (slug ascending on ties) and paginates after ordering
	ListFiltered(ctx context.Context, filter ListFilter) ([]Article, error)

	// Feed restricts to authors the viewer follows; same ordering and
	// pagination rules as ListFiltered
	Feed(ctx context.Context, viewerID uuid.UUID, limit shared.Limit, offset shared.Offset) ([]Article, error)

	// WithTx binds the store to a transaction
	WithTx(q database.Querier) Store
}

// TagStore normalizes free-text tags to stable identifiers and owns the
// article_tags join table
type TagStore interface {
	// GetOrCreate is race-safe: concurrent callers creating the same new
	// tag both succeed and observe the same id
	GetOrCreate(ctx context.Context, name string) (int64, error)

	// TagsForArticle returns the tag names attached to an article
	TagsForArticle(ctx context.Context, slug uuid.UUID) ([]string, error)

	// All enumerates every tag; cardinality is assumed small
	All(ctx context.Context) ([]Tag, error)

	// AttachTags batch-inserts the (article, tag) join rows
	AttachTags(ctx context.Context, slug uuid.UUID, tagIDs []int64) error

	// WithTx binds the store to a transaction
	WithTx(q database.Querier) TagStore
}

// FavoriteStore maintains the (user, article) favorite relation.
// Favorite and Unfavorite are idempotent.
type FavoriteStore interface {
	Favorite(ctx context.Context, slug uuid.UUID, userID uuid.UUID) error
	Unfavorite(ctx context.Context, slug uuid.UUID, userID uuid.UUID) error
	IsFavorited(ctx context.Context, slug uuid.UUID, userID uuid.UUID) (bool, error)
	Count(ctx context.Context, slug uuid.UUID) (int64, error)
}

// CommentStore is CRUD for comments scoped to an article
type CommentStore interface {
	// Add inserts the comment and returns its generated id
	Add(ctx context.Context, slug uuid.UUID, authorID uuid.UUID, body string) (int64, error)

	// Get returns nil when the comment id is unknown
	Get(ctx context.Context, id int64, viewer *uuid.UUID) (*Comment, error)

	// ListForArticle orders by creation time, most recent first
	ListForArticle(ctx context.Context, slug uuid.UUID, viewer *uuid.UUID) ([]Comment, error)

	// SameAuthor is tri-state like Store.IsSameAuthor
	SameAuthor(ctx context.Context, id int64, userID uuid.UUID) (same bool, found bool, err error)

	// Delete reports rows affected (0 means not found)
	Delete(ctx context.Context, slug uuid.UUID, id int64) (int64, error)
}

// FollowChecker is the slice of the follow graph the composed views
// need: the per-row following flag
type FollowChecker interface {
	IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
}

// Repository is the public facade composing the stores into the
// operations request handlers consume. It owns the cross-store
// invariants: tags exist before the join rows are written, authorization
// is checked before mutation, and every favorite/unfavorite returns a
// freshly composed view.
type Repository interface {
	// Add resolves/creates every tag, inserts the article and its join
	// rows in one transaction, then re-reads the composed view. No
	// partial "article without tags" state is ever observable.
	Add(ctx context.Context, a NewArticle, authorID uuid.UUID) (*Article, error)

	// Get maps absence to ErrArticleNotFound
	Get(ctx context.Context, slug uuid.UUID, viewer *uuid.UUID) (*Article, error)

	// Update checks authorship first: unknown slug is ErrArticleNotFound,
	// a different author is ErrForbidden
	Update(ctx context.Context, slug uuid.UUID, details UpdateDetails, userID uuid.UUID) (*Article, error)

	// Remove follows the same authorization sequence as Update
	Remove(ctx context.Context, slug uuid.UUID, userID uuid.UUID) error

	// Favorite verifies existence, applies the idempotent insert and
	// returns the fresh composed view
	Favorite(ctx context.Context, slug uuid.UUID, userID uuid.UUID) (*Article, error)

	// Unfavorite is the idempotent inverse of Favorite
	Unfavorite(ctx context.Context, slug uuid.UUID, userID uuid.UUID) (*Article, error)

	// List is a pass-through to the store with defaults already applied
	// by the filter's value objects
	List(ctx context.Context, filter ListFilter) ([]Article, error)

	// Feed lists articles authored by users the viewer follows
	Feed(ctx context.Context, viewerID uuid.UUID, limit shared.Limit, offset shared.Offset) ([]Article, error)

	// Comments requires the article to exist
	Comments(ctx context.Context, slug uuid.UUID, viewer *uuid.UUID) ([]Comment, error)

	// AddComment requires the article to exist and returns the stored
	// comment with its author profile
	AddComment(ctx context.Context, slug uuid.UUID, authorID uuid.UUID, body string) (*Comment, error)

	// RemoveComment requires the article to exist, the comment id to be
	// known (ErrCommentNotFound) and the caller to own the comment
	// (ErrForbidden)
	RemoveComment(ctx context.Context, slug uuid.UUID, commentID int64, userID uuid.UUID) error

	// Tags enumerates all tags for tag-cloud browsing
	Tags(ctx context.Context) ([]Tag, error)
}
