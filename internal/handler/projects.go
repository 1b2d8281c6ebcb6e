package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ideaforge/backend/internal/db"
	"github.com/ideaforge/backend/internal/model"
	"github.com/ideaforge/backend/internal/service"
)

type ProjectsHandler struct {
	svc *service.ProjectsService
}

func NewProjectsHandler(svc *service.ProjectsService) *ProjectsHandler {
	return &ProjectsHandler{svc: svc}
}

// Create godoc
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.ProjectCreateRequest true "New project"
// @Success 201 {object} model.ProjectCreateResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/projects [post]
func (h *ProjectsHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req model.ProjectCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	project, err := h.svc.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.ProjectCreateResponse{
		Project: model.NewProjectResponse(project),
		Message: fmt.Sprintf("Project '%s' created successfully!", project.Title),
		Success: true,
	})
}

// List godoc
// @Summary List projects with filters
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Offset"
// @Param limit query int false "Page size"
// @Param search query string false "Match on title, summary or description"
// @Param category query string false "Category filter"
// @Param tags query string false "Comma-separated tags, any match"
// @Param active_only query bool false "Only active projects (default true)"
// @Success 200 {object} model.ProjectListResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/projects [get]
func (h *ProjectsHandler) List(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}
	skip, limit := pageParams(c)

	activeOnly := c.DefaultQuery("active_only", "true") != "false"
	filter := db.ProjectFilter{
		Search:     c.Query("search"),
		Category:   c.Query("category"),
		Tags:       model.SplitTags(c.Query("tags")),
		ActiveOnly: activeOnly,
	}

	h.list(c, filter, skip, limit)
}

// MyProjects godoc
// @Summary List projects created by the current user
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.ProjectListResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/projects/my-projects [get]
func (h *ProjectsHandler) MyProjects(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	skip, limit := pageParams(c)

	h.list(c, db.ProjectFilter{CreatorID: user.ID}, skip, limit)
}

func (h *ProjectsHandler) list(c *gin.Context, filter db.ProjectFilter, skip, limit int) {
	projects, total, err := h.svc.List(c.Request.Context(), filter, skip, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	out := make([]model.ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, model.NewProjectResponse(&projects[i]))
	}
	page, totalPages := pageInfo(total, skip, limit)
	c.JSON(http.StatusOK, model.ProjectListResponse{
		Projects:   out,
		Total:      total,
		Page:       page,
		PageSize:   limit,
		TotalPages: totalPages,
	})
}

// Get godoc
// @Summary Get a project by ID
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} model.ProjectResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/projects/{id} [get]
func (h *ProjectsHandler) Get(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	project, err := h.svc.Get(c.Request.Context(), projectID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewProjectResponse(project))
}

// Update godoc
// @Summary Update a project (creator only)
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body model.ProjectUpdateRequest true "Fields to update"
// @Success 200 {object} model.ProjectResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/projects/{id} [put]
func (h *ProjectsHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	var req model.ProjectUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	project, err := h.svc.Update(c.Request.Context(), user.ID, projectID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewProjectResponse(project))
}

// Delete godoc
// @Summary Delete a project (creator only)
// @Tags projects
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 204
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/projects/{id} [delete]
func (h *ProjectsHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), user.ID, projectID); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddCollaborator godoc
// @Summary Add a collaborator to a project (creator only)
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param user_id path int true "User ID"
// @Success 200 {object} model.ProjectResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/projects/{id}/collaborators/{user_id} [post]
func (h *ProjectsHandler) AddCollaborator(c *gin.Context) {
	h.collaborator(c, h.svc.AddCollaborator)
}

// RemoveCollaborator godoc
// @Summary Remove a collaborator from a project (creator only)
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param user_id path int true "User ID"
// @Success 200 {object} model.ProjectResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/projects/{id}/collaborators/{user_id} [delete]
func (h *ProjectsHandler) RemoveCollaborator(c *gin.Context) {
	h.collaborator(c, h.svc.RemoveCollaborator)
}

func (h *ProjectsHandler) collaborator(c *gin.Context, op func(ctx context.Context, actorID, projectID, userID int64) (*model.Project, error)) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	project, err := op(c.Request.Context(), user.ID, projectID, userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewProjectResponse(project))
}
