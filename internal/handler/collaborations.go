package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ideaforge/backend/internal/model"
	"github.com/ideaforge/backend/internal/service"
)

type CollaborationsHandler struct {
	svc *service.CollaborationsService
}

func NewCollaborationsHandler(svc *service.CollaborationsService) *CollaborationsHandler {
	return &CollaborationsHandler{svc: svc}
}

// Create godoc
// @Summary Request to collaborate on a project
// @Tags collaborations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CollaborationCreateRequest true "Request"
// @Success 201 {object} model.CollaborationResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Router /api/v1/collaborations [post]
func (h *CollaborationsHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req model.CollaborationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	request, err := h.svc.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewCollaborationResponse(request))
}

// Sent godoc
// @Summary List collaboration requests sent by the current user
// @Tags collaborations
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Offset"
// @Param limit query int false "Page size"
// @Param status query string false "Status filter"
// @Success 200 {object} model.CollaborationListResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/collaborations/sent [get]
func (h *CollaborationsHandler) Sent(c *gin.Context) {
	h.list(c, h.svc.ListSent)
}

// Received godoc
// @Summary List collaboration requests for the current user's projects
// @Tags collaborations
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Offset"
// @Param limit query int false "Page size"
// @Param status query string false "Status filter"
// @Success 200 {object} model.CollaborationListResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/collaborations/received [get]
func (h *CollaborationsHandler) Received(c *gin.Context) {
	h.list(c, h.svc.ListReceived)
}

type listFunc func(ctx context.Context, userID int64, status model.RequestStatus, offset, limit int) ([]model.CollaborationRequest, int64, error)

func (h *CollaborationsHandler) list(c *gin.Context, fn listFunc) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	skip, limit := pageParams(c)

	status := model.RequestStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	requests, total, err := fn(c.Request.Context(), user.ID, status, skip, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	out := make([]model.CollaborationResponse, 0, len(requests))
	for i := range requests {
		out = append(out, model.NewCollaborationResponse(&requests[i]))
	}
	page, totalPages := pageInfo(total, skip, limit)
	c.JSON(http.StatusOK, model.CollaborationListResponse{
		Requests:   out,
		Total:      total,
		Page:       page,
		PageSize:   limit,
		TotalPages: totalPages,
	})
}

// Get godoc
// @Summary Get a collaboration request
// @Description Visible to the requester and the project creator only.
// @Tags collaborations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} model.CollaborationResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/collaborations/{id} [get]
func (h *CollaborationsHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	requestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	request, err := h.svc.Get(c.Request.Context(), user.ID, requestID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewCollaborationResponse(request))
}

// Respond godoc
// @Summary Accept or reject a collaboration request (project creator only)
// @Tags collaborations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param request body model.CollaborationUpdateRequest true "New status"
// @Success 200 {object} model.CollaborationResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/collaborations/{id} [put]
func (h *CollaborationsHandler) Respond(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	requestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	var req model.CollaborationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	request, err := h.svc.Respond(c.Request.Context(), user.ID, requestID, req.Status)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewCollaborationResponse(request))
}

// Withdraw godoc
// @Summary Withdraw a pending collaboration request (requester only)
// @Tags collaborations
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 204
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/collaborations/{id} [delete]
func (h *CollaborationsHandler) Withdraw(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	requestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	if err := h.svc.Withdraw(c.Request.Context(), user.ID, requestID); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
