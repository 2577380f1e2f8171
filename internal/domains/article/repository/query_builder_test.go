package repository

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conduit-backend/internal/domains/article"
	"conduit-backend/internal/shared"
)

func mustLimit(t *testing.T, v int) shared.Limit {
	t.Helper()
	l, err := shared.NewLimit(v)
	require.NoError(t, err)
	return l
}

func mustOffset(t *testing.T, v int) shared.Offset {
	t.Helper()
	o, err := shared.NewOffset(v)
	require.NoError(t, err)
	return o
}

func TestBuildListQuery(t *testing.T) {
	base := article.ListFilter{Limit: shared.DefaultLimit, Offset: shared.DefaultOffset}

	t.Run("no filters", func(t *testing.T) {
		query, args := buildListQuery(base)

		assert.NotContains(t, query, "WHERE")
		assert.Contains(t, query, "ORDER BY a.created_at DESC, a.slug ASC")
		assert.Contains(t, query, "LIMIT $1 OFFSET $2")
		assert.Equal(t, []any{20, 0}, args)
	})

	t.Run("author only", func(t *testing.T) {
		f := base
		f.Author = "jake"
		query, args := buildListQuery(f)

		assert.Contains(t, query, "u.username = $1")
		assert.Contains(t, query, "LIMIT $2 OFFSET $3")
		assert.Equal(t, []any{"jake", 20, 0}, args)
	})

	t.Run("tag only", func(t *testing.T) {
		f := base
		f.Tag = "dragons"
		query, args := buildListQuery(f)

		assert.Contains(t, query, "t.tag = $1")
		assert.Contains(t, query, "EXISTS")
		assert.Equal(t, []any{"dragons", 20, 0}, args)
	})

	t.Run("favorited only", func(t *testing.T) {
		f := base
		f.FavoritedBy = "anne"
		query, args := buildListQuery(f)

		assert.Contains(t, query, "fu.username = $1")
		assert.Equal(t, []any{"anne", 20, 0}, args)
	})

	t.Run("all filters compose with AND", func(t *testing.T) {
		f := article.ListFilter{
			Tag:         "dragons",
			Author:      "jake",
			FavoritedBy: "anne",
			Limit:       mustLimit(t, 5),
			Offset:      mustOffset(t, 10),
		}
		query, args := buildListQuery(f)

		assert.Contains(t, query, "u.username = $1")
		assert.Contains(t, query, "t.tag = $2")
		assert.Contains(t, query, "fu.username = $3")
		assert.Contains(t, query, "LIMIT $4 OFFSET $5")
		assert.Equal(t, []any{"jake", "dragons", "anne", 5, 10}, args)
	})

	t.Run("filters never join the favorites aggregate", func(t *testing.T) {
		// Subqueries keep COUNT(af.user_id) correct; only the single
		// LEFT JOIN from the base select may touch article_favorites
		f := base
		f.FavoritedBy = "anne"
		query, _ := buildListQuery(f)

		assert.Equal(t, 1, strings.Count(query, "LEFT JOIN article_favorites"))
		assert.NotContains(t, query, "JOIN article_favorites fav")
	})

	t.Run("pagination follows ordering", func(t *testing.T) {
		query, _ := buildListQuery(base)
		assert.Less(t, strings.Index(query, "ORDER BY"), strings.Index(query, "LIMIT"))
	})
}

func TestBuildUpdateQuery(t *testing.T) {
	slug := uuid.New()
	title := "renamed"
	body := "rewritten"

	t.Run("no fields set builds no statement", func(t *testing.T) {
		_, _, ok := buildUpdateQuery(slug, article.UpdateDetails{})
		assert.False(t, ok)
	})

	t.Run("title only", func(t *testing.T) {
		query, args, ok := buildUpdateQuery(slug, article.UpdateDetails{Title: &title})
		require.True(t, ok)
		assert.Equal(t, `UPDATE articles SET updated_at = NOW(), title = $2 WHERE slug = $1`, query)
		assert.Equal(t, []any{slug, "renamed"}, args)
	})

	t.Run("title and body", func(t *testing.T) {
		query, args, ok := buildUpdateQuery(slug, article.UpdateDetails{Title: &title, Body: &body})
		require.True(t, ok)
		assert.Contains(t, query, "title = $2")
		assert.Contains(t, query, "body = $3")
		assert.Equal(t, []any{slug, "renamed", "rewritten"}, args)
	})
}

func TestBuildFeedQuery(t *testing.T) {
	viewer := uuid.New()
	query, args := buildFeedQuery(viewer, mustLimit(t, 7), mustOffset(t, 14))

	assert.Contains(t, query, "user_followers")
	assert.Contains(t, query, "uf.user_id = $1")
	assert.Contains(t, query, "uf.followee_id = a.author_id")
	assert.Contains(t, query, "ORDER BY a.created_at DESC, a.slug ASC")
	assert.Contains(t, query, "LIMIT $2 OFFSET $3")
	assert.Equal(t, []any{viewer, 7, 14}, args)
}
