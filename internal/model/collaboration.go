package model

import "time"

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusAccepted RequestStatus = "accepted"
	StatusRejected RequestStatus = "rejected"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

type CollaborationRequest struct {
	ID          int64
	UserID      int64
	ProjectID   int64
	Message     string
	Role        string
	Status      RequestStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
	RespondedAt *time.Time
}

type CollaborationCreateRequest struct {
	ProjectID int64  `json:"project_id" binding:"required"`
	Message   string `json:"message"`
	Role      string `json:"role"`
}

type CollaborationUpdateRequest struct {
	Status RequestStatus `json:"status" binding:"required"`
}

type CollaborationResponse struct {
	ID          int64         `json:"id"`
	UserID      int64         `json:"user_id"`
	ProjectID   int64         `json:"project_id"`
	Message     string        `json:"message,omitempty"`
	Role        string        `json:"role,omitempty"`
	Status      RequestStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	RespondedAt *time.Time    `json:"responded_at,omitempty"`
}

func NewCollaborationResponse(r *CollaborationRequest) CollaborationResponse {
	return CollaborationResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		ProjectID:   r.ProjectID,
		Message:     r.Message,
		Role:        r.Role,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		RespondedAt: r.RespondedAt,
	}
}

type CollaborationListResponse struct {
	Requests   []CollaborationResponse `json:"requests"`
	Total      int64                   `json:"total"`
	Page       int                     `json:"page"`
	PageSize   int                     `json:"page_size"`
	TotalPages int                     `json:"total_pages"`
}
