package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"conduit-backend/internal/domains/user"
	"conduit-backend/pkg/cache"
	"conduit-backend/pkg/logger"
)

const (
	failedLoginKeyPrefix = "login:failed:"
	maxFailedLogins      = 5
	lockoutWindow        = 15 * time.Minute
)

// userService implements user.Service
type userService struct {
	repo  user.Repository
	cache cache.Cache
}

// NewUserService creates the account service
func NewUserService(repo user.Repository, c cache.Cache) user.Service {
	return &userService{repo: repo, cache: c}
}

func (s *userService) Register(ctx context.Context, req *user.RegisterRequest) (*user.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, user.NewUser{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}

	logger.Info("user registered", map[string]interface{}{
		"user_id":  created.ID.String(),
		"username": created.Username,
	})
	return created, nil
}

func (s *userService) Login(ctx context.Context, req *user.LoginRequest) (*user.User, error) {
	if locked, err := s.isLockedOut(ctx, req.Email); err == nil && locked {
		return nil, user.ErrAccountLocked
	}

	u, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		// Track misses against unknown emails as well, so the counter
		// does not reveal which addresses exist
		s.trackFailedLogin(ctx, req.Email)
		return nil, user.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		s.trackFailedLogin(ctx, req.Email)
		return nil, user.ErrInvalidCredentials
	}

	s.clearFailedLogins(ctx, req.Email)
	return u, nil
}

func (s *userService) Current(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, req *user.UpdateUserRequest) (*user.User, error) {
	details := user.UpdateDetails{
		Username: req.Username,
		Email:    req.Email,
		Bio:      req.Bio,
		Image:    req.Image,
	}

	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		hashed := string(hash)
		details.PasswordHash = &hashed
	}

	return s.repo.Update(ctx, id, details)
}

// Failed-login tracking. Cache failures are deliberately non-fatal:
// losing the counter degrades to no lockout, never to a login failure.

func (s *userService) isLockedOut(ctx context.Context, email string) (bool, error) {
	var count int64
	found, err := s.cache.Get(ctx, failedLoginKeyPrefix+email, &count)
	if err != nil || !found {
		return false, err
	}
	return count >= maxFailedLogins, nil
}

func (s *userService) trackFailedLogin(ctx context.Context, email string) {
	key := failedLoginKeyPrefix + email
	count, err := s.cache.Increment(ctx, key)
	if err != nil {
		logger.Warn("failed to track failed login", map[string]interface{}{"error": err.Error()})
		return
	}
	if count == 1 {
		if err := s.cache.Expire(ctx, key, lockoutWindow); err != nil {
			logger.Warn("failed to set lockout window", map[string]interface{}{"error": err.Error()})
		}
	}
}

func (s *userService) clearFailedLogins(ctx context.Context, email string) {
	if err := s.cache.Delete(ctx, failedLoginKeyPrefix+email); err != nil {
		logger.Warn("failed to clear login counter", map[string]interface{}{"error": err.Error()})
	}
}
