package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ideaforge/backend/internal/model"
	"github.com/ideaforge/backend/internal/service"
)

type UsersHandler struct {
	svc *service.UsersService
}

func NewUsersHandler(svc *service.UsersService) *UsersHandler {
	return &UsersHandler{svc: svc}
}

// List godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Offset"
// @Param limit query int false "Page size"
// @Param search query string false "Match on username or full name"
// @Success 200 {object} model.UserListResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/users [get]
func (h *UsersHandler) List(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}
	skip, limit := pageParams(c)

	users, total, err := h.svc.List(c.Request.Context(), c.Query("search"), skip, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	out := make([]model.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, model.NewUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, model.UserListResponse{Users: out, Total: total})
}

// Get godoc
// @Summary Get a user by ID
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} model.UserResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/users/{id} [get]
func (h *UsersHandler) Get(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewUserResponse(user))
}

// UpdateMe godoc
// @Summary Update current user's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.UserUpdateRequest true "Fields to update"
// @Success 200 {object} model.UserResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Router /api/v1/users/me [put]
func (h *UsersHandler) UpdateMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req model.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	updated, err := h.svc.UpdateProfile(c.Request.Context(), user, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewUserResponse(updated))
}

// DeactivateMe godoc
// @Summary Deactivate the current user's account
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.StatusResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/users/me [delete]
func (h *UsersHandler) DeactivateMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.svc.Deactivate(c.Request.Context(), user.ID); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.StatusResponse{Status: "deactivated"})
}
