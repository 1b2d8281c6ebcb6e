package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/ideaforge/backend/internal/config"
	"github.com/ideaforge/backend/internal/db"
	"github.com/ideaforge/backend/internal/model"
	"github.com/ideaforge/backend/internal/token"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 50
	minPasswordLength = 8
	maxPasswordLength = 128
)

// UserStore is the persistence surface the auth core depends on.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

type AuthService struct {
	store  UserStore
	codec  *token.Codec
	issuer *token.Issuer
}

func NewAuthService(store UserStore, cfg config.AuthConfig) (*AuthService, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}

	codec, err := token.NewCodec(cfg.JWTSecret, cfg.JWTAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMisconfigured, err)
	}

	accessMinutes, err := strconv.Atoi(cfg.AccessTTLMinutes)
	if err != nil || accessMinutes <= 0 {
		return nil, fmt.Errorf("%w: invalid JWT_ACCESS_TOKEN_EXPIRE_MINUTES", ErrMisconfigured)
	}
	refreshDays, err := strconv.Atoi(cfg.RefreshTTLDays)
	if err != nil || refreshDays <= 0 {
		return nil, fmt.Errorf("%w: invalid JWT_REFRESH_TOKEN_EXPIRE_DAYS", ErrMisconfigured)
	}

	issuer := token.NewIssuer(codec,
		time.Duration(accessMinutes)*time.Minute,
		time.Duration(refreshDays)*24*time.Hour,
	)

	return &AuthService{store: store, codec: codec, issuer: issuer}, nil
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	if _, err := s.store.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("%w: username already registered", ErrConflict)
	} else if !db.IsNoRows(err) {
		return nil, err
	}
	if _, err := s.store.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	} else if !db.IsNoRows(err) {
		return nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.store.CreateUser(ctx, &model.User{
		Username:        req.Username,
		Email:           req.Email,
		PasswordHash:    hash,
		FullName:        req.FullName,
		Bio:             req.Bio,
		ProfileImageURL: req.ProfileImageURL,
		IsActive:        true,
		IsVerified:      false,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: username or email already registered", ErrConflict)
		}
		return nil, err
	}

	log.Info().Str("username", user.Username).Int64("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Login verifies the credentials and mints an access+refresh pair.
func (s *AuthService) Login(ctx context.Context, username, password string) (access, refresh string, err error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if db.IsNoRows(err) {
			log.Warn().Str("username", username).Msg("login failed: unknown user")
			return "", "", ErrInvalidCredentials
		}
		return "", "", err
	}

	if !verifyPassword(password, user.PasswordHash) {
		log.Warn().Str("username", username).Msg("login failed: wrong password")
		return "", "", ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", "", ErrInactiveUser
	}

	return s.issuer.Pair(user.ID)
}

// Refresh validates a refresh token and rotates the full pair. The old
// refresh token is not revoked server-side; it stays valid until its own
// expiry (stateless sessions).
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (access, refresh string, err error) {
	if strings.TrimSpace(refreshToken) == "" {
		return "", "", ErrUnauthenticated
	}

	user, err := s.resolve(ctx, refreshToken, token.TypeRefresh)
	if err != nil {
		return "", "", err
	}

	return s.issuer.Pair(user.ID)
}

// ResolveUser turns a bearer access token into the current user. This is
// the per-request identity resolution every protected endpoint relies on.
func (s *AuthService) ResolveUser(ctx context.Context, accessToken string) (*model.User, error) {
	return s.resolve(ctx, accessToken, token.TypeAccess)
}

func (s *AuthService) resolve(ctx context.Context, tokenStr, expectedType string) (*model.User, error) {
	claims, err := s.codec.Decode(tokenStr, expectedType)
	if err != nil {
		return nil, mapTokenError(err)
	}

	userID, err := claims.SubjectID()
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	return user, nil
}

// RequireActive is the reusable inactive-user guard for identities that
// arrived through paths other than ResolveUser.
func RequireActive(user *model.User) error {
	if user == nil {
		return ErrUnauthenticated
	}
	if !user.IsActive {
		return ErrInactiveUser
	}
	return nil
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, token.ErrWrongType):
		return ErrInvalidTokenType
	case errors.Is(err, token.ErrExpired):
		return ErrTokenExpired
	default:
		return ErrInvalidCredentials
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashing, err)
	}
	return string(hash), nil
}

// verifyPassword never errors: a corrupt stored hash presents as a wrong
// password, not a crash.
func verifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func validateRegistration(req model.RegisterRequest) error {
	username := strings.TrimSpace(req.Username)
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return fmt.Errorf("%w: username must be %d-%d characters", ErrInvalidInput, minUsernameLength, maxUsernameLength)
	}
	if len(req.Password) < minPasswordLength || len(req.Password) > maxPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	hasDigit := false
	for _, r := range req.Password {
		if unicode.IsDigit(r) {
			hasDigit = true
			break
		}
	}
	if !hasDigit {
		return fmt.Errorf("%w: password must contain at least one digit", ErrInvalidInput)
	}
	return nil
}
