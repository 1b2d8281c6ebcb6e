package service

import (
	"context"
	"fmt"

	"github.com/ideaforge/backend/internal/db"
	"github.com/ideaforge/backend/internal/model"
)

type ProjectsService struct {
	repo *db.Postgres
}

func NewProjectsService(repo *db.Postgres) *ProjectsService {
	return &ProjectsService{repo: repo}
}

func (s *ProjectsService) Create(ctx context.Context, creatorID int64, req model.ProjectCreateRequest) (*model.Project, error) {
	return s.repo.CreateProject(ctx, &model.Project{
		Title:        req.Title,
		Summary:      req.Summary,
		Description:  req.Description,
		Category:     req.Category,
		GithubLink:   req.GithubLink,
		SkillsNeeded: req.SkillsNeeded,
		Tags:         model.JoinTags(req.Tags),
		Progress:     0,
		IsCompleted:  false,
		IsActive:     true,
		CreatorID:    creatorID,
	})
}

func (s *ProjectsService) Get(ctx context.Context, projectID int64) (*model.Project, error) {
	project, err := s.repo.GetProjectByID(ctx, projectID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("%w: project", ErrNotFound)
		}
		return nil, err
	}
	return project, nil
}

func (s *ProjectsService) List(ctx context.Context, filter db.ProjectFilter, offset, limit int) ([]model.Project, int64, error) {
	return s.repo.ListProjects(ctx, filter, offset, limit)
}

// Update applies the provided fields; only the creator may update.
func (s *ProjectsService) Update(ctx context.Context, userID, projectID int64, req model.ProjectUpdateRequest) (*model.Project, error) {
	project, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.CreatorID != userID {
		return nil, fmt.Errorf("%w: only the project creator can update this project", ErrForbidden)
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Summary != nil {
		project.Summary = *req.Summary
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Category != nil {
		project.Category = *req.Category
	}
	if req.GithubLink != nil {
		project.GithubLink = *req.GithubLink
	}
	if req.SkillsNeeded != nil {
		project.SkillsNeeded = *req.SkillsNeeded
	}
	if req.Tags != nil {
		project.Tags = model.JoinTags(req.Tags)
	}
	if req.Progress != nil {
		if *req.Progress < 0 || *req.Progress > 100 {
			return nil, fmt.Errorf("%w: progress must be between 0 and 100", ErrInvalidInput)
		}
		project.Progress = *req.Progress
	}
	if req.IsCompleted != nil {
		project.IsCompleted = *req.IsCompleted
	}
	if req.IsActive != nil {
		project.IsActive = *req.IsActive
	}

	return s.repo.UpdateProject(ctx, project)
}

func (s *ProjectsService) Delete(ctx context.Context, userID, projectID int64) error {
	project, err := s.Get(ctx, projectID)
	if err != nil {
		return err
	}
	if project.CreatorID != userID {
		return fmt.Errorf("%w: only the project creator can delete this project", ErrForbidden)
	}
	return s.repo.DeleteProject(ctx, projectID)
}

// AddCollaborator lets the creator add a user to the project directly.
func (s *ProjectsService) AddCollaborator(ctx context.Context, actorID, projectID, userID int64) (*model.Project, error) {
	project, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.CreatorID != actorID {
		return nil, fmt.Errorf("%w: only the project creator can add collaborators", ErrForbidden)
	}

	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}

	already, err := s.repo.IsCollaborator(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if already {
		return nil, fmt.Errorf("%w: user is already a collaborator on this project", ErrConflict)
	}

	if err := s.repo.AddCollaborator(ctx, projectID, userID); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectsService) RemoveCollaborator(ctx context.Context, actorID, projectID, userID int64) (*model.Project, error) {
	project, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.CreatorID != actorID {
		return nil, fmt.Errorf("%w: only the project creator can remove collaborators", ErrForbidden)
	}

	member, err := s.repo.IsCollaborator(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, fmt.Errorf("%w: user is not a collaborator on this project", ErrInvalidInput)
	}

	if err := s.repo.RemoveCollaborator(ctx, projectID, userID); err != nil {
		return nil, err
	}
	return project, nil
}
