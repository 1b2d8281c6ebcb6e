package db

import (
	"context"

	"github.com/ideaforge/backend/internal/model"
)

const userColumns = `id, username, email, password_hash, full_name, bio, profile_image_url,
	is_active, is_verified, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.Bio,
		&user.ProfileImageURL,
		&user.IsActive,
		&user.IsVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *Postgres) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, full_name, bio, profile_image_url,
			is_active, is_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING ` + userColumns
	row := db.Pool.QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.Bio,
		user.ProfileImageURL,
		user.IsActive,
		user.IsVerified,
	)
	return scanUser(row)
}

func (db *Postgres) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, userID))
}

func (db *Postgres) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, username))
}

func (db *Postgres) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, email))
}

func (db *Postgres) UpdateUser(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
		UPDATE users
		SET email = $2, full_name = $3, bio = $4, profile_image_url = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns
	row := db.Pool.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.FullName,
		user.Bio,
		user.ProfileImageURL,
	)
	return scanUser(row)
}

func (db *Postgres) SetUserActive(ctx context.Context, userID int64, active bool) error {
	query := `UPDATE users SET is_active = $2, updated_at = NOW() WHERE id = $1`
	_, err := db.Pool.Exec(ctx, query, userID, active)
	return err
}

// ListUsers returns a page of users, optionally filtered by a case-insensitive
// match on username or full name.
func (db *Postgres) ListUsers(ctx context.Context, search string, offset, limit int) ([]model.User, int64, error) {
	pattern := "%" + search + "%"

	var total int64
	countQuery := `
		SELECT COUNT(*) FROM users
		WHERE $1 = '' OR username ILIKE $2 OR full_name ILIKE $2`
	if err := db.Pool.QueryRow(ctx, countQuery, search, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE $1 = '' OR username ILIKE $2 OR full_name ILIKE $2
		ORDER BY created_at DESC
		OFFSET $3 LIMIT $4`
	rows, err := db.Pool.Query(ctx, query, search, pattern, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *user)
	}
	return users, total, rows.Err()
}
