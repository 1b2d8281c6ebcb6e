package db

import (
	"context"

	"github.com/ideaforge/backend/internal/model"
)

const collaborationColumns = `id, user_id, project_id, message, role, status,
	created_at, updated_at, responded_at`

func scanCollaboration(row interface{ Scan(dest ...any) error }) (*model.CollaborationRequest, error) {
	var r model.CollaborationRequest
	err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.ProjectID,
		&r.Message,
		&r.Role,
		&r.Status,
		&r.CreatedAt,
		&r.UpdatedAt,
		&r.RespondedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (db *Postgres) CreateCollaborationRequest(ctx context.Context, r *model.CollaborationRequest) (*model.CollaborationRequest, error) {
	query := `
		INSERT INTO collaboration_requests (user_id, project_id, message, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING ` + collaborationColumns
	row := db.Pool.QueryRow(ctx, query, r.UserID, r.ProjectID, r.Message, r.Role, r.Status)
	return scanCollaboration(row)
}

func (db *Postgres) GetCollaborationRequestByID(ctx context.Context, requestID int64) (*model.CollaborationRequest, error) {
	query := `SELECT ` + collaborationColumns + ` FROM collaboration_requests WHERE id = $1`
	return scanCollaboration(db.Pool.QueryRow(ctx, query, requestID))
}

// HasPendingRequest reports whether the user already has a pending request
// for the project.
func (db *Postgres) HasPendingRequest(ctx context.Context, projectID, userID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM collaboration_requests
			WHERE project_id = $1 AND user_id = $2 AND status = 'pending'
		)`
	var exists bool
	err := db.Pool.QueryRow(ctx, query, projectID, userID).Scan(&exists)
	return exists, err
}

// ListSentRequests returns requests made by the user, newest first.
func (db *Postgres) ListSentRequests(ctx context.Context, userID int64, status model.RequestStatus, offset, limit int) ([]model.CollaborationRequest, int64, error) {
	cond := `user_id = $1 AND ($2 = '' OR status = $2)`
	return db.listRequests(ctx, cond, []any{userID, string(status)}, offset, limit)
}

// ListReceivedRequests returns requests targeting projects the user created,
// newest first.
func (db *Postgres) ListReceivedRequests(ctx context.Context, creatorID int64, status model.RequestStatus, offset, limit int) ([]model.CollaborationRequest, int64, error) {
	cond := `project_id IN (SELECT id FROM projects WHERE creator_id = $1) AND ($2 = '' OR status = $2)`
	return db.listRequests(ctx, cond, []any{creatorID, string(status)}, offset, limit)
}

func (db *Postgres) listRequests(ctx context.Context, cond string, args []any, offset, limit int) ([]model.CollaborationRequest, int64, error) {
	var total int64
	if err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM collaboration_requests WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + collaborationColumns + `
		FROM collaboration_requests
		WHERE ` + cond + `
		ORDER BY created_at DESC
		OFFSET $3 LIMIT $4`
	rows, err := db.Pool.Query(ctx, query, append(args, offset, limit)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var requests []model.CollaborationRequest
	for rows.Next() {
		r, err := scanCollaboration(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, *r)
	}
	return requests, total, rows.Err()
}

// SetRequestStatus finalizes a pending request and stamps responded_at.
func (db *Postgres) SetRequestStatus(ctx context.Context, requestID int64, status model.RequestStatus) (*model.CollaborationRequest, error) {
	query := `
		UPDATE collaboration_requests
		SET status = $2, responded_at = NOW(), updated_at = NOW()
		WHERE id = $1
		RETURNING ` + collaborationColumns
	return scanCollaboration(db.Pool.QueryRow(ctx, query, requestID, status))
}

func (db *Postgres) DeleteCollaborationRequest(ctx context.Context, requestID int64) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM collaboration_requests WHERE id = $1`, requestID)
	return err
}
