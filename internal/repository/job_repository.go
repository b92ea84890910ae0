package repository

import (
	"context"
	"database/sql"
	"errors"

	"skillsense/internal/database"
	"skillsense/internal/domain/job"
	"skillsense/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrJobRequirementNotFound = errors.New("job requirement not found")

type JobRepository interface {
	CreateRequirement(ctx context.Context, req job.Requirement, skills []job.RequiredSkill) error
	FindRequirement(ctx context.Context, id uuid.UUID) (job.Requirement, error)
	FindRequirementsByUser(ctx context.Context, userID uuid.UUID) ([]job.Requirement, error)
	FindRequiredSkills(ctx context.Context, requirementID uuid.UUID) ([]job.RequiredSkill, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

// CreateRequirement writes the requirement and its skill rows in one
// transaction so a half-written requirement never matches against anyone.
func (r *PostgresJobRepository) CreateRequirement(ctx context.Context, req job.Requirement, skills []job.RequiredSkill) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO job_requirements (id, user_id, title, description) VALUES ($1, $2, $3, $4)`,
		req.ID, req.UserID, req.Title, req.Description,
	)
	if err != nil {
		return err
	}

	for i, rs := range skills {
		if rs.ID == uuid.Nil {
			rs.ID = uuid.New()
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO required_skills (id, requirement_id, name, required_level, importance, position)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			rs.ID, req.ID, rs.Name, string(rs.RequiredLevel), string(rs.Importance), i,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresJobRepository) FindRequirement(ctx context.Context, id uuid.UUID) (job.Requirement, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, title, COALESCE(description, ''), created_at FROM job_requirements WHERE id = $1`, id)

	var req job.Requirement
	if err := row.Scan(&req.ID, &req.UserID, &req.Title, &req.Description, &req.CreatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return job.Requirement{}, ErrJobRequirementNotFound
		}
		return job.Requirement{}, err
	}
	return req, nil
}

func (r *PostgresJobRepository) FindRequirementsByUser(ctx context.Context, userID uuid.UUID) ([]job.Requirement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, title, COALESCE(description, ''), created_at
		 FROM job_requirements WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []job.Requirement
	for rows.Next() {
		var req job.Requirement
		if err := rows.Scan(&req.ID, &req.UserID, &req.Title, &req.Description, &req.CreatedAt); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

func (r *PostgresJobRepository) FindRequiredSkills(ctx context.Context, requirementID uuid.UUID) ([]job.RequiredSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, requirement_id, name, required_level, importance, position
		 FROM required_skills WHERE requirement_id = $1 ORDER BY position ASC`, requirementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var skills []job.RequiredSkill
	for rows.Next() {
		var rs job.RequiredSkill
		var level, importance string
		if err := rows.Scan(&rs.ID, &rs.RequirementID, &rs.Name, &level, &importance, &rs.Position); err != nil {
			return nil, err
		}
		rs.RequiredLevel = skill.Level(level)
		rs.Importance = job.Importance(importance)
		skills = append(skills, rs)
	}
	return skills, rows.Err()
}
