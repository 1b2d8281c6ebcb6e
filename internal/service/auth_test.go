package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideaforge/backend/internal/config"
	"github.com/ideaforge/backend/internal/model"
	"github.com/ideaforge/backend/internal/token"
)

type fakeUserStore struct {
	nextID int64
	users  map[int64]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*model.User)}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	f.nextID++
	stored := *user
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.users[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, userID int64) (*model.User, error) {
	if user, ok := f.users[userID]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserStore) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:        "test-secret",
		JWTAlgorithm:     "HS256",
		AccessTTLMinutes: "30",
		RefreshTTLDays:   "7",
	}
}

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserStore) {
	t.Helper()
	store := newFakeUserStore()
	svc, err := NewAuthService(store, testAuthConfig())
	require.NoError(t, err)
	return svc, store
}

func registerAlice(t *testing.T, svc *AuthService) *model.User {
	t.Helper()
	user, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "S3cret123",
	})
	require.NoError(t, err)
	return user
}

func TestNewAuthService_Misconfigured(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.AuthConfig)
	}{
		{name: "missing secret", mutate: func(c *config.AuthConfig) { c.JWTSecret = "" }},
		{name: "non-hmac algorithm", mutate: func(c *config.AuthConfig) { c.JWTAlgorithm = "RS256" }},
		{name: "bad access ttl", mutate: func(c *config.AuthConfig) { c.AccessTTLMinutes = "soon" }},
		{name: "zero access ttl", mutate: func(c *config.AuthConfig) { c.AccessTTLMinutes = "0" }},
		{name: "bad refresh ttl", mutate: func(c *config.AuthConfig) { c.RefreshTTLDays = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testAuthConfig()
			tt.mutate(&cfg)
			_, err := NewAuthService(newFakeUserStore(), cfg)
			assert.ErrorIs(t, err, ErrMisconfigured)
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := hashPassword("S3cret123")
	require.NoError(t, err)
	assert.NotEqual(t, "S3cret123", hash)

	assert.True(t, verifyPassword("S3cret123", hash))
	assert.False(t, verifyPassword("S3cret124", hash))
	assert.False(t, verifyPassword("S3cret123", "not-a-bcrypt-hash"))
	assert.False(t, verifyPassword("S3cret123", ""))
}

func TestRegister(t *testing.T) {
	svc, _ := newTestAuthService(t)
	user := registerAlice(t, svc)

	assert.Equal(t, "alice", user.Username)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsVerified)
	assert.NotEqual(t, "S3cret123", user.PasswordHash)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestAuthService(t)

	tests := []struct {
		name string
		req  model.RegisterRequest
		want error
	}{
		{
			name: "short username",
			req:  model.RegisterRequest{Username: "al", Email: "a@b.c", Password: "S3cret123"},
			want: ErrInvalidInput,
		},
		{
			name: "short password",
			req:  model.RegisterRequest{Username: "bob", Email: "b@b.c", Password: "S3c"},
			want: ErrInvalidInput,
		},
		{
			name: "password without digit",
			req:  model.RegisterRequest{Username: "bob", Email: "b@b.c", Password: "NoDigitsHere"},
			want: ErrInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRegister_Duplicates(t *testing.T) {
	svc, _ := newTestAuthService(t)
	registerAlice(t, svc)

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "alice", Email: "other@example.com", Password: "S3cret123",
	})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Register(context.Background(), model.RegisterRequest{
		Username: "alice2", Email: "alice@example.com", Password: "S3cret123",
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestAuthService(t)
	user := registerAlice(t, svc)

	access, refresh, err := svc.Login(context.Background(), "alice", "S3cret123")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	resolved, err := svc.ResolveUser(context.Background(), access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestLogin_Failures(t *testing.T) {
	svc, store := newTestAuthService(t)
	user := registerAlice(t, svc)

	_, _, err := svc.Login(context.Background(), "nobody", "S3cret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "alice", "wrong-passw0rd")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	store.users[user.ID].IsActive = false
	_, _, err = svc.Login(context.Background(), "alice", "S3cret123")
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestResolveUser(t *testing.T) {
	svc, store := newTestAuthService(t)
	user := registerAlice(t, svc)

	access, refresh, err := svc.Login(context.Background(), "alice", "S3cret123")
	require.NoError(t, err)

	resolved, err := svc.ResolveUser(context.Background(), access)
	require.NoError(t, err)
	assert.Equal(t, "alice", resolved.Username)

	// a refresh token never authorizes an API call
	_, err = svc.ResolveUser(context.Background(), refresh)
	assert.ErrorIs(t, err, ErrInvalidTokenType)

	_, err = svc.ResolveUser(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	store.users[user.ID].IsActive = false
	_, err = svc.ResolveUser(context.Background(), access)
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestResolveUser_UnknownSubject(t *testing.T) {
	svc, store := newTestAuthService(t)
	user := registerAlice(t, svc)

	access, _, err := svc.Login(context.Background(), "alice", "S3cret123")
	require.NoError(t, err)

	delete(store.users, user.ID)
	_, err = svc.ResolveUser(context.Background(), access)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestResolveUser_Expired(t *testing.T) {
	svc, _ := newTestAuthService(t)
	user := registerAlice(t, svc)

	codec, err := token.NewCodec("test-secret", "HS256")
	require.NoError(t, err)
	expired, err := codec.Encode(token.Claims{
		TokenType: token.TypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	require.NoError(t, err)

	_, err = svc.ResolveUser(context.Background(), expired)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestResolveUser_NonNumericSubject(t *testing.T) {
	svc, _ := newTestAuthService(t)
	registerAlice(t, svc)

	codec, err := token.NewCodec("test-secret", "HS256")
	require.NoError(t, err)
	tok, err := codec.Encode(token.Claims{
		TokenType: token.TypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	require.NoError(t, err)

	_, err = svc.ResolveUser(context.Background(), tok)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh_Rotation(t *testing.T) {
	svc, _ := newTestAuthService(t)
	registerAlice(t, svc)

	access, refresh, err := svc.Login(context.Background(), "alice", "S3cret123")
	require.NoError(t, err)

	newAccess, newRefresh, err := svc.Refresh(context.Background(), refresh)
	require.NoError(t, err)
	assert.NotEqual(t, access, newAccess)
	assert.NotEqual(t, refresh, newRefresh)

	// rotation does not revoke: the old refresh token stays usable until
	// its own expiry
	_, _, err = svc.Refresh(context.Background(), refresh)
	assert.NoError(t, err)
}

func TestRefresh_Failures(t *testing.T) {
	svc, store := newTestAuthService(t)
	user := registerAlice(t, svc)

	access, refresh, err := svc.Login(context.Background(), "alice", "S3cret123")
	require.NoError(t, err)

	// an access token never mints a new pair
	_, _, err = svc.Refresh(context.Background(), access)
	assert.ErrorIs(t, err, ErrInvalidTokenType)

	_, _, err = svc.Refresh(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, _, err = svc.Refresh(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	store.users[user.ID].IsActive = false
	_, _, err = svc.Refresh(context.Background(), refresh)
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestRequireActive(t *testing.T) {
	assert.ErrorIs(t, RequireActive(nil), ErrUnauthenticated)
	assert.ErrorIs(t, RequireActive(&model.User{IsActive: false}), ErrInactiveUser)
	assert.NoError(t, RequireActive(&model.User{IsActive: true}))
}
