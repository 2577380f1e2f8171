package article

import (
	"time"

	"github.com/google/uuid"

	"conduit-backend/internal/domains/profile"
	"conduit-backend/internal/shared"
)

// Article is the composed view returned to callers: the stored row
// enriched with the tag list, the aggregated favorite count and the
// viewer-relative favorited/following flags.
type Article struct {
	Slug           uuid.UUID       `json:"slug"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Body           string          `json:"body"`
	TagList        []string        `json:"tagList"`
	Favorited      bool            `json:"favorited"`
	FavoritesCount int64           `json:"favoritesCount"`
	Author         profile.Profile `json:"author"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// NewArticle carries the validated creation input. The slug is generated
// by the store, never derived from the title.
type NewArticle struct {
	Title       string
	Description string
	Body        string
	TagList     []string
}

// UpdateDetails is a partial update: nil fields are left unchanged
type UpdateDetails struct {
	Title       *string
	Description *string
	Body        *string
}

// Tag pairs the normalized text with its surrogate identifier
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Comment is scoped to exactly one article; author carries the
// viewer-relative following flag like the article view does.
type Comment struct {
	ID        int64           `json:"id"`
	Body      string          `json:"body"`
	Author    profile.Profile `json:"author"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ListFilter selects articles for ListFiltered. Empty string fields are
// inactive; active filters are ANDed together.
type ListFilter struct {
	Tag         string
	Author      string
	FavoritedBy string
	Viewer      *uuid.UUID
	Limit       shared.Limit
	Offset      shared.Offset
}
