package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/ideaforge/backend/internal/model"
)

const projectColumns = `id, title, summary, description, category, github_link, skills_needed,
	tags, progress, is_completed, is_active, creator_id, created_at, updated_at`

func scanProject(row interface{ Scan(dest ...any) error }) (*model.Project, error) {
	var p model.Project
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Summary,
		&p.Description,
		&p.Category,
		&p.GithubLink,
		&p.SkillsNeeded,
		&p.Tags,
		&p.Progress,
		&p.IsCompleted,
		&p.IsActive,
		&p.CreatorID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (db *Postgres) CreateProject(ctx context.Context, p *model.Project) (*model.Project, error) {
	query := `
		INSERT INTO projects (title, summary, description, category, github_link, skills_needed,
			tags, progress, is_completed, is_active, creator_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING ` + projectColumns
	row := db.Pool.QueryRow(ctx, query,
		p.Title, p.Summary, p.Description, p.Category, p.GithubLink, p.SkillsNeeded,
		p.Tags, p.Progress, p.IsCompleted, p.IsActive, p.CreatorID,
	)
	return scanProject(row)
}

func (db *Postgres) GetProjectByID(ctx context.Context, projectID int64) (*model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	return scanProject(db.Pool.QueryRow(ctx, query, projectID))
}

func (db *Postgres) UpdateProject(ctx context.Context, p *model.Project) (*model.Project, error) {
	query := `
		UPDATE projects
		SET title = $2, summary = $3, description = $4, category = $5, github_link = $6,
			skills_needed = $7, tags = $8, progress = $9, is_completed = $10, is_active = $11,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + projectColumns
	row := db.Pool.QueryRow(ctx, query,
		p.ID, p.Title, p.Summary, p.Description, p.Category, p.GithubLink,
		p.SkillsNeeded, p.Tags, p.Progress, p.IsCompleted, p.IsActive,
	)
	return scanProject(row)
}

func (db *Postgres) DeleteProject(ctx context.Context, projectID int64) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, projectID)
	return err
}

// ProjectFilter narrows ListProjects. Zero values mean "no filter".
type ProjectFilter struct {
	Search     string
	Category   string
	Tags       []string
	ActiveOnly bool
	CreatorID  int64
}

func (db *Postgres) ListProjects(ctx context.Context, filter ProjectFilter, offset, limit int) ([]model.Project, int64, error) {
	where := []string{"TRUE"}
	args := []any{}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.ActiveOnly {
		where = append(where, "is_active = TRUE")
	}
	if filter.CreatorID != 0 {
		where = append(where, "creator_id = "+arg(filter.CreatorID))
	}
	if filter.Category != "" {
		where = append(where, "category = "+arg(filter.Category))
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		where = append(where, fmt.Sprintf("(title ILIKE %s OR description ILIKE %s OR summary ILIKE %s)", p, p, p))
	}
	if len(filter.Tags) > 0 {
		tagConds := make([]string, 0, len(filter.Tags))
		for _, tag := range filter.Tags {
			tagConds = append(tagConds, "tags ILIKE "+arg("%"+tag+"%"))
		}
		where = append(where, "("+strings.Join(tagConds, " OR ")+")")
	}

	cond := strings.Join(where, " AND ")

	var total int64
	if err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM projects WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM projects
		WHERE %s
		ORDER BY created_at DESC
		OFFSET %s LIMIT %s`, projectColumns, cond, arg(offset), arg(limit))
	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, err
		}
		projects = append(projects, *p)
	}
	return projects, total, rows.Err()
}

func (db *Postgres) AddCollaborator(ctx context.Context, projectID, userID int64) error {
	query := `
		INSERT INTO project_collaborators (project_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`
	_, err := db.Pool.Exec(ctx, query, projectID, userID)
	return err
}

func (db *Postgres) RemoveCollaborator(ctx context.Context, projectID, userID int64) error {
	query := `DELETE FROM project_collaborators WHERE project_id = $1 AND user_id = $2`
	_, err := db.Pool.Exec(ctx, query, projectID, userID)
	return err
}

func (db *Postgres) IsCollaborator(ctx context.Context, projectID, userID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM project_collaborators WHERE project_id = $1 AND user_id = $2)`
	var exists bool
	err := db.Pool.QueryRow(ctx, query, projectID, userID).Scan(&exists)
	return exists, err
}
