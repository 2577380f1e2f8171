package database

import (
	"context"
	"fmt"
)

// Schema bootstrap. Join tables cascade on article/user deletion so a
// single DELETE on articles or users removes tag links, favorites and
// comments with it. tags.tag carries the uniqueness constraint that the
// race-safe get-or-create relies on.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		username      VARCHAR(255) NOT NULL UNIQUE,
		email         VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		bio           TEXT NOT NULL DEFAULT '',
		image         TEXT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS user_followers (
		user_id     UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		followee_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		PRIMARY KEY (user_id, followee_id)
	)`,

	`CREATE TABLE IF NOT EXISTS articles (
		slug        UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title       VARCHAR(255) NOT NULL,
		description VARCHAR(255) NOT NULL DEFAULT '',
		body        TEXT NOT NULL DEFAULT '',
		author_id   UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS tags (
		id  SERIAL PRIMARY KEY,
		tag VARCHAR(255) NOT NULL UNIQUE
	)`,

	`CREATE TABLE IF NOT EXISTS article_tags (
		article_slug UUID NOT NULL REFERENCES articles(slug) ON DELETE CASCADE,
		tag_id       INT  NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
		PRIMARY KEY (article_slug, tag_id)
	)`,

	`CREATE TABLE IF NOT EXISTS article_favorites (
		article_slug UUID NOT NULL REFERENCES articles(slug) ON DELETE CASCADE,
		user_id      UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		PRIMARY KEY (article_slug, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS comments (
		id           SERIAL PRIMARY KEY,
		article_slug UUID NOT NULL REFERENCES articles(slug) ON DELETE CASCADE,
		author_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		comment      TEXT NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_articles_author_id ON articles(author_id)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_created_at ON articles(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_article_slug ON comments(article_slug)`,
	`CREATE INDEX IF NOT EXISTS idx_user_followers_followee ON user_followers(followee_id)`,
}

// CreateSchema applies the schema statements in order
func (db *PostgresDB) CreateSchema(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	for _, stmt := range schemaStatements {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}

	return nil
}
