package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"conduit-backend/internal/domains/user"
)

type fakeRepo struct {
	byEmail map[string]*user.User
	created []user.NewUser
}

func (f *fakeRepo) Create(_ context.Context, nu user.NewUser) (*user.User, error) {
	f.created = append(f.created, nu)
	return &user.User{ID: uuid.New(), Username: nu.Username, Email: nu.Email, PasswordHash: nu.PasswordHash}, nil
}

func (f *fakeRepo) GetByID(context.Context, uuid.UUID) (*user.User, error) { return nil, nil }

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeRepo) GetByUsername(context.Context, string) (*user.User, error) { return nil, nil }

func (f *fakeRepo) Update(context.Context, uuid.UUID, user.UpdateDetails) (*user.User, error) {
	return nil, nil
}

// memCache is an in-memory stand-in for the redis cache
type memCache struct {
	counters map[string]int64
}

func newMemCache() *memCache { return &memCache{counters: make(map[string]int64)} }

func (m *memCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	v, ok := m.counters[key]
	if !ok {
		return false, nil
	}
	*dest.(*int64) = v
	return true, nil
}

func (m *memCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (m *memCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.counters, k)
	}
	return nil
}

func (m *memCache) Increment(_ context.Context, key string) (int64, error) {
	m.counters[key]++
	return m.counters[key], nil
}

func (m *memCache) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.counters[key]
	return ok, nil
}

func (m *memCache) Expire(context.Context, string, time.Duration) error { return nil }
func (m *memCache) TTL(context.Context, string) (time.Duration, error)  { return 0, nil }
func (m *memCache) Ping(context.Context) error                          { return nil }

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := &fakeRepo{byEmail: map[string]*user.User{}}
	svc := NewUserService(repo, newMemCache())

	created, err := svc.Register(context.Background(), &user.RegisterRequest{
		Username: "jake",
		Email:    "jake@jake.jake",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)

	assert.NotEqual(t, "hunter2hunter2", repo.created[0].PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("hunter2hunter2")))
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	jake := &user.User{ID: uuid.New(), Username: "jake", Email: "jake@jake.jake", PasswordHash: hash(t, "hunter2hunter2")}

	t.Run("valid credentials", func(t *testing.T) {
		repo := &fakeRepo{byEmail: map[string]*user.User{jake.Email: jake}}
		svc := NewUserService(repo, newMemCache())

		u, err := svc.Login(ctx, &user.LoginRequest{Email: jake.Email, Password: "hunter2hunter2"})
		require.NoError(t, err)
		assert.Equal(t, jake.ID, u.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := &fakeRepo{byEmail: map[string]*user.User{jake.Email: jake}}
		svc := NewUserService(repo, newMemCache())

		_, err := svc.Login(ctx, &user.LoginRequest{Email: jake.Email, Password: "nope"})
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("unknown email looks like wrong password", func(t *testing.T) {
		repo := &fakeRepo{byEmail: map[string]*user.User{}}
		svc := NewUserService(repo, newMemCache())

		_, err := svc.Login(ctx, &user.LoginRequest{Email: "ghost@x.y", Password: "whatever"})
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("repeated failures lock the account", func(t *testing.T) {
		repo := &fakeRepo{byEmail: map[string]*user.User{jake.Email: jake}}
		c := newMemCache()
		svc := NewUserService(repo, c)

		for i := 0; i < 5; i++ {
			_, err := svc.Login(ctx, &user.LoginRequest{Email: jake.Email, Password: "nope"})
			assert.ErrorIs(t, err, user.ErrInvalidCredentials)
		}

		// Even the correct password is rejected while locked
		_, err := svc.Login(ctx, &user.LoginRequest{Email: jake.Email, Password: "hunter2hunter2"})
		assert.ErrorIs(t, err, user.ErrAccountLocked)
	})

	t.Run("success clears the failure counter", func(t *testing.T) {
		repo := &fakeRepo{byEmail: map[string]*user.User{jake.Email: jake}}
		c := newMemCache()
		svc := NewUserService(repo, c)

		for i := 0; i < 4; i++ {
			_, err := svc.Login(ctx, &user.LoginRequest{Email: jake.Email, Password: "nope"})
			assert.ErrorIs(t, err, user.ErrInvalidCredentials)
		}

		_, err := svc.Login(ctx, &user.LoginRequest{Email: jake.Email, Password: "hunter2hunter2"})
		require.NoError(t, err)

		exists, err := c.Exists(ctx, "login:failed:"+jake.Email)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
