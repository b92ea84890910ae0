package usecase

import (
	"context"
	"errors"
	"strings"

	"skillsense/internal/domain/extraction"
	"skillsense/internal/domain/skill"
	"skillsense/internal/repository"

	"github.com/google/uuid"
)

var ErrSkillNotFound = errors.New("skill not found")

type SkillWithEvidence struct {
	Skill    skill.Skill
	Evidence []skill.Evidence
}

type CreateSkillInput struct {
	Name            string
	Category        string
	Proficiency     string
	YearsExperience int
}

type UpdateSkillInput struct {
	Name            string
	Category        string
	Proficiency     string
	YearsExperience int
}

type SkillUsecase interface {
	CreateSkill(ctx context.Context, userID uuid.UUID, in CreateSkillInput) (skill.Skill, error)
	ListSkills(ctx context.Context, userID uuid.UUID) ([]skill.Skill, error)
	GetSkill(ctx context.Context, userID, skillID uuid.UUID) (SkillWithEvidence, error)
	UpdateSkill(ctx context.Context, userID, skillID uuid.UUID, in UpdateSkillInput) (skill.Skill, error)
	DeleteSkill(ctx context.Context, userID, skillID uuid.UUID) error
}

type Skill struct {
	repo repository.SkillRepository
}

func NewSkillUsecase(repo repository.SkillRepository) *Skill {
	return &Skill{repo: repo}
}

// CreateSkill records a manually entered skill. Self-reported skills are
// explicit by definition and carry full confidence.
func (u *Skill) CreateSkill(ctx context.Context, userID uuid.UUID, in CreateSkillInput) (skill.Skill, error) {
	if userID == uuid.Nil {
		return skill.Skill{}, ErrUnauthorized
	}

	name := strings.TrimSpace(in.Name)
	if name == "" || in.YearsExperience < 0 {
		return skill.Skill{}, ErrInvalidInput
	}

	s := skill.Skill{
		UserID:          userID,
		Name:            name,
		ConfidenceScore: 1.0,
		Proficiency:     skill.LevelIntermediate,
		YearsExperience: in.YearsExperience,
		IsExplicit:      true,
	}
	if in.Category != "" {
		cat, ok := skill.ParseCategory(in.Category)
		if !ok {
			return skill.Skill{}, ErrInvalidInput
		}
		s.Category = cat
	} else {
		s.Category = extraction.NewCategorizer(extraction.DefaultKeywords()).Categorize(name)
	}
	if in.Proficiency != "" {
		lvl, ok := skill.ParseLevel(in.Proficiency)
		if !ok {
			return skill.Skill{}, ErrInvalidInput
		}
		s.Proficiency = lvl
	}

	created, err := u.repo.Upsert(ctx, s)
	if err != nil {
		return skill.Skill{}, ErrInternal
	}
	return created, nil
}

func (u *Skill) ListSkills(ctx context.Context, userID uuid.UUID) ([]skill.Skill, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	items, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Skill) GetSkill(ctx context.Context, userID, skillID uuid.UUID) (SkillWithEvidence, error) {
	s, err := u.owned(ctx, userID, skillID)
	if err != nil {
		return SkillWithEvidence{}, err
	}
	evidence, err := u.repo.FindEvidence(ctx, skillID)
	if err != nil {
		return SkillWithEvidence{}, ErrInternal
	}
	return SkillWithEvidence{Skill: s, Evidence: evidence}, nil
}

// UpdateSkill applies manual corrections. Manual edits never change the
// confidence score; that stays owned by the extraction pipeline.
func (u *Skill) UpdateSkill(ctx context.Context, userID, skillID uuid.UUID, in UpdateSkillInput) (skill.Skill, error) {
	s, err := u.owned(ctx, userID, skillID)
	if err != nil {
		return skill.Skill{}, err
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		s.Name = name
	}
	if in.Category != "" {
		cat, ok := skill.ParseCategory(in.Category)
		if !ok {
			return skill.Skill{}, ErrInvalidInput
		}
		s.Category = cat
	}
	if in.Proficiency != "" {
		lvl, ok := skill.ParseLevel(in.Proficiency)
		if !ok {
			return skill.Skill{}, ErrInvalidInput
		}
		s.Proficiency = lvl
	}
	if in.YearsExperience < 0 {
		return skill.Skill{}, ErrInvalidInput
	}
	if in.YearsExperience > 0 {
		s.YearsExperience = in.YearsExperience
	}

	updated, err := u.repo.Update(ctx, s)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return skill.Skill{}, ErrSkillNotFound
		}
		return skill.Skill{}, ErrInternal
	}
	return updated, nil
}

func (u *Skill) DeleteSkill(ctx context.Context, userID, skillID uuid.UUID) error {
	if _, err := u.owned(ctx, userID, skillID); err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, skillID, userID); err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return ErrSkillNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *Skill) owned(ctx context.Context, userID, skillID uuid.UUID) (skill.Skill, error) {
	if userID == uuid.Nil {
		return skill.Skill{}, ErrUnauthorized
	}
	s, err := u.repo.FindByID(ctx, skillID)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return skill.Skill{}, ErrSkillNotFound
		}
		return skill.Skill{}, ErrInternal
	}
	if s.UserID != userID {
		return skill.Skill{}, ErrSkillNotFound
	}
	return s, nil
}
