package model

import "time"

type User struct {
	ID              int64
	Username        string
	Email           string
	PasswordHash    string
	FullName        string
	Bio             string
	ProfileImageURL string
	IsActive        bool
	IsVerified      bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type UserResponse struct {
	ID              int64     `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	FullName        string    `json:"full_name,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	ProfileImageURL string    `json:"profile_image_url,omitempty"`
	IsActive        bool      `json:"is_active"`
	IsVerified      bool      `json:"is_verified"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Username:        u.Username,
		Email:           u.Email,
		FullName:        u.FullName,
		Bio:             u.Bio,
		ProfileImageURL: u.ProfileImageURL,
		IsActive:        u.IsActive,
		IsVerified:      u.IsVerified,
		CreatedAt:       u.CreatedAt,
	}
}

type UserUpdateRequest struct {
	FullName        *string `json:"full_name"`
	Bio             *string `json:"bio"`
	ProfileImageURL *string `json:"profile_image_url"`
	Email           *string `json:"email"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int64          `json:"total"`
}
