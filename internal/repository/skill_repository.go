package repository

import (
	"context"
	"database/sql"
	"errors"

	"skillsense/internal/database"
	"skillsense/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrSkillNotFound = errors.New("skill not found")

type SkillRepository interface {
	Upsert(ctx context.Context, s skill.Skill) (skill.Skill, error)
	AddEvidence(ctx context.Context, ev skill.Evidence) error
	FindByID(ctx context.Context, id uuid.UUID) (skill.Skill, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]skill.Skill, error)
	FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]skill.Skill, error)
	FindEvidence(ctx context.Context, skillID uuid.UUID) ([]skill.Evidence, error)
	Update(ctx context.Context, s skill.Skill) (skill.Skill, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

const skillColumns = `id, user_id, name, category, confidence_score, COALESCE(proficiency, ''), years_experience, is_explicit, created_at, updated_at`

// Upsert inserts the skill or, when the user already has one with the same
// name (case-insensitive), merges into the existing row keeping the higher
// confidence and proficiency.
func (r *PostgresSkillRepository) Upsert(ctx context.Context, s skill.Skill) (skill.Skill, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO skills (id, user_id, name, category, confidence_score, proficiency, years_experience, is_explicit)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)
		 ON CONFLICT (user_id, lower(name)) DO UPDATE
		 SET category = EXCLUDED.category,
		     confidence_score = GREATEST(skills.confidence_score, EXCLUDED.confidence_score),
		     proficiency = COALESCE(EXCLUDED.proficiency, skills.proficiency),
		     years_experience = GREATEST(skills.years_experience, EXCLUDED.years_experience),
		     is_explicit = skills.is_explicit OR EXCLUDED.is_explicit,
		     updated_at = now()
		 RETURNING `+skillColumns,
		s.ID, s.UserID, s.Name, string(s.Category), s.ConfidenceScore, string(s.Proficiency), s.YearsExperience, s.IsExplicit,
	)
	return scanSkill(row)
}

func (r *PostgresSkillRepository) AddEvidence(ctx context.Context, ev skill.Evidence) error {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO skill_evidence (id, skill_id, document_id, evidence_type, snippet, reliability)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		ev.ID, ev.SkillID, ev.DocumentID, string(ev.Type), ev.Snippet, ev.Reliability,
	)
	return err
}

func (r *PostgresSkillRepository) FindByID(ctx context.Context, id uuid.UUID) (skill.Skill, error) {
	row := r.db.QueryRow(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = $1`, id)
	return scanSkill(row)
}

func (r *PostgresSkillRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+skillColumns+` FROM skills WHERE user_id = $1 ORDER BY confidence_score DESC, name ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSkills(rows)
}

// FindByUserIDs loads skills for a set of users in one query. Used by the
// organization team-skill aggregation.
func (r *PostgresSkillRepository) FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]skill.Skill, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+skillColumns+` FROM skills WHERE user_id = ANY($1) ORDER BY name ASC`, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSkills(rows)
}

func (r *PostgresSkillRepository) FindEvidence(ctx context.Context, skillID uuid.UUID) ([]skill.Evidence, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, skill_id, document_id, evidence_type, COALESCE(snippet, ''), reliability, created_at
		 FROM skill_evidence WHERE skill_id = $1 ORDER BY created_at ASC`, skillID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evidence []skill.Evidence
	for rows.Next() {
		var ev skill.Evidence
		var evType string
		if err := rows.Scan(&ev.ID, &ev.SkillID, &ev.DocumentID, &evType, &ev.Snippet, &ev.Reliability, &ev.CreatedAt); err != nil {
			return nil, err
		}
		ev.Type = skill.EvidenceType(evType)
		evidence = append(evidence, ev)
	}
	return evidence, rows.Err()
}

func (r *PostgresSkillRepository) Update(ctx context.Context, s skill.Skill) (skill.Skill, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE skills
		 SET name = $1, category = $2, confidence_score = $3, proficiency = NULLIF($4, ''),
		     years_experience = $5, is_explicit = $6, updated_at = now()
		 WHERE id = $7 AND user_id = $8
		 RETURNING `+skillColumns,
		s.Name, string(s.Category), s.ConfidenceScore, string(s.Proficiency), s.YearsExperience, s.IsExplicit, s.ID, s.UserID,
	)
	return scanSkill(row)
}

func (r *PostgresSkillRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM skills WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSkillNotFound
	}
	return nil
}

func scanSkill(row database.Row) (skill.Skill, error) {
	var s skill.Skill
	var category, proficiency string
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &category, &s.ConfidenceScore, &proficiency,
		&s.YearsExperience, &s.IsExplicit, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return skill.Skill{}, ErrSkillNotFound
		}
		return skill.Skill{}, err
	}
	s.Category = skill.Category(category)
	s.Proficiency = skill.Level(proficiency)
	return s, nil
}

func collectSkills(rows database.Rows) ([]skill.Skill, error) {
	var skills []skill.Skill
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}
