package profile

import (
	"context"

	"github.com/google/uuid"
)

// FollowStore maintains the directed "follows" edge set between users.
// Follow and Unfollow are idempotent: acting twice has the same effect
// as acting once. The store does not prevent self-follows - registration
// intentionally inserts the self-edge so a user's own articles show up
// in their feed.
type FollowStore interface {
	// Follow inserts the follower -> followee edge, ignoring duplicates
	Follow(ctx context.Context, followerID, followeeID uuid.UUID) error

	// Unfollow removes the edge; removing a missing edge is not an error
	Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error

	// IsFollowing reports whether the edge exists
	IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
}

// Service exposes viewer-relative profile reads and follow mutations
type Service interface {
	// Get returns the profile of the named user. The following flag is
	// computed relative to viewerID; anonymous viewers always see false.
	// Errors: ErrProfileNotFound
	Get(ctx context.Context, username string, viewerID *uuid.UUID) (*Profile, error)

	// Follow makes viewerID follow the named user and returns the
	// refreshed profile (following == true).
	// Errors: ErrProfileNotFound
	Follow(ctx context.Context, username string, viewerID uuid.UUID) (*Profile, error)

	// Unfollow removes the edge and returns the refreshed profile.
	// Errors: ErrProfileNotFound
	Unfollow(ctx context.Context, username string, viewerID uuid.UUID) (*Profile, error)
}
