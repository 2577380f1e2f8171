package service

import (
	"context"

	"github.com/google/uuid"

	"conduit-backend/internal/domains/profile"
	"conduit-backend/internal/domains/user"
)

// profileService implements profile.Service by joining user lookups with
// the follow graph
type profileService struct {
	users   user.Repository
	follows profile.FollowStore
}

// NewProfileService creates the profile service
func NewProfileService(users user.Repository, follows profile.FollowStore) profile.Service {
	return &profileService{users: users, follows: follows}
}

func (s *profileService) Get(ctx context.Context, username string, viewerID *uuid.UUID) (*profile.Profile, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, profile.ErrProfileNotFound
	}

	following := false
	if viewerID != nil {
		following, err = s.follows.IsFollowing(ctx, *viewerID, u.ID)
		if err != nil {
			return nil, err
		}
	}

	return &profile.Profile{
		Username:  u.Username,
		Bio:       u.Bio,
		Image:     u.Image,
		Following: following,
	}, nil
}

func (s *profileService) Follow(ctx context.Context, username string, viewerID uuid.UUID) (*profile.Profile, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, profile.ErrProfileNotFound
	}

	if err := s.follows.Follow(ctx, viewerID, u.ID); err != nil {
		return nil, err
	}

	return &profile.Profile{
		Username:  u.Username,
		Bio:       u.Bio,
		Image:     u.Image,
		Following: true,
	}, nil
}

func (s *profileService) Unfollow(ctx context.Context, username string, viewerID uuid.UUID) (*profile.Profile, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, profile.ErrProfileNotFound
	}

	if err := s.follows.Unfollow(ctx, viewerID, u.ID); err != nil {
		return nil, err
	}

	return &profile.Profile{
		Username:  u.Username,
		Bio:       u.Bio,
		Image:     u.Image,
		Following: false,
	}, nil
}
