package model

import (
	"strings"
	"time"
)

type Project struct {
	ID           int64
	Title        string
	Summary      string
	Description  string
	Category     string
	GithubLink   string
	SkillsNeeded string
	Tags         string
	Progress     float64
	IsCompleted  bool
	IsActive     bool
	CreatorID    int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ProjectCreateRequest struct {
	Title        string   `json:"title" binding:"required"`
	Summary      string   `json:"summary" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	Category     string   `json:"category" binding:"required"`
	GithubLink   string   `json:"github_link"`
	SkillsNeeded string   `json:"skills_needed"`
	Tags         []string `json:"tags"`
}

type ProjectUpdateRequest struct {
	Title        *string  `json:"title"`
	Summary      *string  `json:"summary"`
	Description  *string  `json:"description"`
	Category     *string  `json:"category"`
	GithubLink   *string  `json:"github_link"`
	SkillsNeeded *string  `json:"skills_needed"`
	Tags         []string `json:"tags"`
	Progress     *float64 `json:"progress"`
	IsCompleted  *bool    `json:"is_completed"`
	IsActive     *bool    `json:"is_active"`
}

type ProjectResponse struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Summary      string    `json:"summary"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	GithubLink   string    `json:"github_link,omitempty"`
	SkillsNeeded string    `json:"skills_needed,omitempty"`
	Tags         []string  `json:"tags"`
	Progress     float64   `json:"progress"`
	IsCompleted  bool      `json:"is_completed"`
	IsActive     bool      `json:"is_active"`
	CreatorID    int64     `json:"creator_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewProjectResponse(p *Project) ProjectResponse {
	return ProjectResponse{
		ID:           p.ID,
		Title:        p.Title,
		Summary:      p.Summary,
		Description:  p.Description,
		Category:     p.Category,
		GithubLink:   p.GithubLink,
		SkillsNeeded: p.SkillsNeeded,
		Tags:         SplitTags(p.Tags),
		Progress:     p.Progress,
		IsCompleted:  p.IsCompleted,
		IsActive:     p.IsActive,
		CreatorID:    p.CreatorID,
		CreatedAt:    p.CreatedAt,
	}
}

type ProjectCreateResponse struct {
	Project ProjectResponse `json:"project"`
	Message string          `json:"message"`
	Success bool            `json:"success"`
}

type ProjectListResponse struct {
	Projects   []ProjectResponse `json:"projects"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// Tags are stored as a comma-separated string.
func JoinTags(tags []string) string {
	trimmed := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	return strings.Join(trimmed, ",")
}

func SplitTags(tags string) []string {
	if tags == "" {
		return []string{}
	}
	parts := strings.Split(tags, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
