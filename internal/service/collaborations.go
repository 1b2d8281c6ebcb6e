package service

import (
	"context"
	"fmt"

	"github.com/ideaforge/backend/internal/db"
	"github.com/ideaforge/backend/internal/model"
	"github.com/rs/zerolog/log"
)

type CollaborationsService struct {
	repo *db.Postgres
}

func NewCollaborationsService(repo *db.Postgres) *CollaborationsService {
	return &CollaborationsService{repo: repo}
}

// Create files a collaboration request against an open project.
func (s *CollaborationsService) Create(ctx context.Context, userID int64, req model.CollaborationCreateRequest) (*model.CollaborationRequest, error) {
	project, err := s.repo.GetProjectByID(ctx, req.ProjectID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("%w: project", ErrNotFound)
		}
		return nil, err
	}

	if !project.IsActive {
		return nil, fmt.Errorf("%w: project is not active", ErrInvalidInput)
	}
	if project.IsCompleted {
		return nil, fmt.Errorf("%w: project is already completed", ErrInvalidInput)
	}
	if project.CreatorID == userID {
		return nil, fmt.Errorf("%w: you cannot request to collaborate on your own project", ErrInvalidInput)
	}

	member, err := s.repo.IsCollaborator(ctx, req.ProjectID, userID)
	if err != nil {
		return nil, err
	}
	if member {
		return nil, fmt.Errorf("%w: you are already a collaborator on this project", ErrInvalidInput)
	}

	pending, err := s.repo.HasPendingRequest(ctx, req.ProjectID, userID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, fmt.Errorf("%w: you already have a pending request for this project", ErrConflict)
	}

	return s.repo.CreateCollaborationRequest(ctx, &model.CollaborationRequest{
		UserID:    userID,
		ProjectID: req.ProjectID,
		Message:   req.Message,
		Role:      req.Role,
		Status:    model.StatusPending,
	})
}

func (s *CollaborationsService) ListSent(ctx context.Context, userID int64, status model.RequestStatus, offset, limit int) ([]model.CollaborationRequest, int64, error) {
	return s.repo.ListSentRequests(ctx, userID, status, offset, limit)
}

func (s *CollaborationsService) ListReceived(ctx context.Context, creatorID int64, status model.RequestStatus, offset, limit int) ([]model.CollaborationRequest, int64, error) {
	return s.repo.ListReceivedRequests(ctx, creatorID, status, offset, limit)
}

// Get returns a request visible to its requester or the project creator.
func (s *CollaborationsService) Get(ctx context.Context, userID, requestID int64) (*model.CollaborationRequest, error) {
	request, project, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.UserID != userID && project.CreatorID != userID {
		return nil, fmt.Errorf("%w: you don't have permission to view this request", ErrForbidden)
	}
	return request, nil
}

// Respond accepts or rejects a pending request; only the project creator
// may respond. Accepting adds the requester as a collaborator.
func (s *CollaborationsService) Respond(ctx context.Context, userID, requestID int64, status model.RequestStatus) (*model.CollaborationRequest, error) {
	if status != model.StatusAccepted && status != model.StatusRejected {
		return nil, fmt.Errorf("%w: status must be accepted or rejected", ErrInvalidInput)
	}

	request, project, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if project.CreatorID != userID {
		return nil, fmt.Errorf("%w: only the project creator can accept or reject collaboration requests", ErrForbidden)
	}
	if request.Status != model.StatusPending {
		return nil, fmt.Errorf("%w: request is already %s", ErrInvalidInput, request.Status)
	}

	updated, err := s.repo.SetRequestStatus(ctx, requestID, status)
	if err != nil {
		return nil, err
	}

	if status == model.StatusAccepted {
		if err := s.repo.AddCollaborator(ctx, request.ProjectID, request.UserID); err != nil {
			return nil, err
		}
		log.Info().
			Int64("project_id", request.ProjectID).
			Int64("user_id", request.UserID).
			Msg("collaboration request accepted")
	}

	return updated, nil
}

// Withdraw deletes a pending request; only its requester may withdraw it.
func (s *CollaborationsService) Withdraw(ctx context.Context, userID, requestID int64) error {
	request, _, err := s.load(ctx, requestID)
	if err != nil {
		return err
	}
	if request.UserID != userID {
		return fmt.Errorf("%w: you don't have permission to withdraw this request", ErrForbidden)
	}
	if request.Status != model.StatusPending {
		return fmt.Errorf("%w: request is already %s and cannot be withdrawn", ErrInvalidInput, request.Status)
	}
	return s.repo.DeleteCollaborationRequest(ctx, requestID)
}

func (s *CollaborationsService) load(ctx context.Context, requestID int64) (*model.CollaborationRequest, *model.Project, error) {
	request, err := s.repo.GetCollaborationRequestByID(ctx, requestID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, nil, fmt.Errorf("%w: collaboration request", ErrNotFound)
		}
		return nil, nil, err
	}

	project, err := s.repo.GetProjectByID(ctx, request.ProjectID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, nil, fmt.Errorf("%w: project", ErrNotFound)
		}
		return nil, nil, err
	}

	return request, project, nil
}
