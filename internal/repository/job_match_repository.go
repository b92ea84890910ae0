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

var ErrJobMatchNotFound = errors.New("job match not found")

type JobMatchRepository interface {
	CreateMatch(ctx context.Context, m job.Match, skills []job.MatchSkill) error
	FindLatestByRequirement(ctx context.Context, userID, requirementID uuid.UUID) (job.Match, []job.MatchSkill, error)
}

type PostgresJobMatchRepository struct {
	db database.DB
}

func NewPostgresJobMatchRepository(db database.DB) *PostgresJobMatchRepository {
	return &PostgresJobMatchRepository{db: db}
}

func (r *PostgresJobMatchRepository) CreateMatch(ctx context.Context, m job.Match, skills []job.MatchSkill) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO job_matches (id, user_id, requirement_id, match_score) VALUES ($1, $2, $3, $4)`,
		m.ID, m.UserID, m.RequirementID, m.MatchScore,
	)
	if err != nil {
		return err
	}

	for _, ms := range skills {
		if ms.ID == uuid.Nil {
			ms.ID = uuid.New()
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO job_match_skills (id, match_id, skill_name, is_matched, is_critical, user_proficiency, user_confidence, required_level)
			 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)`,
			ms.ID, m.ID, ms.SkillName, ms.IsMatched, ms.IsCritical, string(ms.UserProficiency), ms.UserConfidence, string(ms.RequiredLevel),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresJobMatchRepository) FindLatestByRequirement(ctx context.Context, userID, requirementID uuid.UUID) (job.Match, []job.MatchSkill, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, requirement_id, match_score, created_at
		 FROM job_matches WHERE user_id = $1 AND requirement_id = $2
		 ORDER BY created_at DESC LIMIT 1`,
		userID, requirementID,
	)

	var m job.Match
	if err := row.Scan(&m.ID, &m.UserID, &m.RequirementID, &m.MatchScore, &m.CreatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return job.Match{}, nil, ErrJobMatchNotFound
		}
		return job.Match{}, nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, match_id, skill_name, is_matched, is_critical, COALESCE(user_proficiency, ''), user_confidence, required_level
		 FROM job_match_skills WHERE match_id = $1 ORDER BY is_critical DESC, skill_name ASC`, m.ID)
	if err != nil {
		return job.Match{}, nil, err
	}
	defer rows.Close()

	var skills []job.MatchSkill
	for rows.Next() {
		var ms job.MatchSkill
		var userLevel, requiredLevel string
		if err := rows.Scan(&ms.ID, &ms.MatchID, &ms.SkillName, &ms.IsMatched, &ms.IsCritical, &userLevel, &ms.UserConfidence, &requiredLevel); err != nil {
			return job.Match{}, nil, err
		}
		ms.UserProficiency = skill.Level(userLevel)
		ms.RequiredLevel = skill.Level(requiredLevel)
		skills = append(skills, ms)
	}
	return m, skills, rows.Err()
}
