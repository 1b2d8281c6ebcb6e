package service

import (
	"context"
	"fmt"

	"github.com/ideaforge/backend/internal/db"
	"github.com/ideaforge/backend/internal/model"
)

type UsersService struct {
	repo *db.Postgres
}

func NewUsersService(repo *db.Postgres) *UsersService {
	return &UsersService{repo: repo}
}

func (s *UsersService) Get(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *UsersService) List(ctx context.Context, search string, offset, limit int) ([]model.User, int64, error) {
	return s.repo.ListUsers(ctx, search, offset, limit)
}

// UpdateProfile applies the provided fields to the current user. An email
// change is checked for uniqueness first.
func (s *UsersService) UpdateProfile(ctx context.Context, user *model.User, req model.UserUpdateRequest) (*model.User, error) {
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.ProfileImageURL != nil {
		user.ProfileImageURL = *req.ProfileImageURL
	}
	if req.Email != nil && *req.Email != user.Email {
		if _, err := s.repo.GetUserByEmail(ctx, *req.Email); err == nil {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		} else if !db.IsNoRows(err) {
			return nil, err
		}
		user.Email = *req.Email
	}

	updated, err := s.repo.UpdateUser(ctx, user)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, err
	}
	return updated, nil
}

func (s *UsersService) Deactivate(ctx context.Context, userID int64) error {
	return s.repo.SetUserActive(ctx, userID, false)
}
