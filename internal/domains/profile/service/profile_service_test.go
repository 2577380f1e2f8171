package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conduit-backend/internal/domains/profile"
	"conduit-backend/internal/domains/user"
)

type fakeUserRepo struct {
	byUsername map[string]*user.User
}

func (f *fakeUserRepo) Create(context.Context, user.NewUser) (*user.User, error) { return nil, nil }
func (f *fakeUserRepo) GetByID(context.Context, uuid.UUID) (*user.User, error)   { return nil, nil }
func (f *fakeUserRepo) GetByEmail(context.Context, string) (*user.User, error)   { return nil, nil }
func (f *fakeUserRepo) Update(context.Context, uuid.UUID, user.UpdateDetails) (*user.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*user.User, error) {
	return f.byUsername[username], nil
}

type fakeFollowStore struct {
	edges map[[2]uuid.UUID]bool
}

func newFakeFollowStore() *fakeFollowStore {
	return &fakeFollowStore{edges: make(map[[2]uuid.UUID]bool)}
}

func (f *fakeFollowStore) Follow(_ context.Context, followerID, followeeID uuid.UUID) error {
	f.edges[[2]uuid.UUID{followerID, followeeID}] = true
	return nil
}

func (f *fakeFollowStore) Unfollow(_ context.Context, followerID, followeeID uuid.UUID) error {
	delete(f.edges, [2]uuid.UUID{followerID, followeeID})
	return nil
}

func (f *fakeFollowStore) IsFollowing(_ context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	return f.edges[[2]uuid.UUID{followerID, followeeID}], nil
}

func TestProfileGet(t *testing.T) {
	ctx := context.Background()
	celeb := &user.User{ID: uuid.New(), Username: "celeb", Bio: "famous"}
	viewer := uuid.New()

	users := &fakeUserRepo{byUsername: map[string]*user.User{"celeb": celeb}}
	follows := newFakeFollowStore()
	svc := NewProfileService(users, follows)

	t.Run("unknown username", func(t *testing.T) {
		_, err := svc.Get(ctx, "ghost", nil)
		assert.ErrorIs(t, err, profile.ErrProfileNotFound)
	})

	t.Run("anonymous viewer sees following false", func(t *testing.T) {
		require.NoError(t, follows.Follow(ctx, viewer, celeb.ID))

		p, err := svc.Get(ctx, "celeb", nil)
		require.NoError(t, err)
		assert.False(t, p.Following)
		assert.Equal(t, "famous", p.Bio)
	})

	t.Run("follower sees following true", func(t *testing.T) {
		p, err := svc.Get(ctx, "celeb", &viewer)
		require.NoError(t, err)
		assert.True(t, p.Following)
	})
}

func TestProfileFollowUnfollow(t *testing.T) {
	ctx := context.Background()
	celeb := &user.User{ID: uuid.New(), Username: "celeb"}
	viewer := uuid.New()

	users := &fakeUserRepo{byUsername: map[string]*user.User{"celeb": celeb}}
	follows := newFakeFollowStore()
	svc := NewProfileService(users, follows)

	t.Run("follow unknown username", func(t *testing.T) {
		_, err := svc.Follow(ctx, "ghost", viewer)
		assert.ErrorIs(t, err, profile.ErrProfileNotFound)
	})

	t.Run("follow twice stays followed", func(t *testing.T) {
		p, err := svc.Follow(ctx, "celeb", viewer)
		require.NoError(t, err)
		assert.True(t, p.Following)

		p, err = svc.Follow(ctx, "celeb", viewer)
		require.NoError(t, err)
		assert.True(t, p.Following)

		following, err := follows.IsFollowing(ctx, viewer, celeb.ID)
		require.NoError(t, err)
		assert.True(t, following)
	})

	t.Run("unfollow twice stays unfollowed", func(t *testing.T) {
		p, err := svc.Unfollow(ctx, "celeb", viewer)
		require.NoError(t, err)
		assert.False(t, p.Following)

		p, err = svc.Unfollow(ctx, "celeb", viewer)
		require.NoError(t, err)
		assert.False(t, p.Following)
	})
}
