package skill

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryTechnical  Category = "technical"
	CategoryTools      Category = "tools"
	CategorySoftSkills Category = "soft_skills"
	CategoryDomain     Category = "domain"
)

func ParseCategory(s string) (Category, bool) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryTechnical:
		return CategoryTechnical, true
	case CategoryTools:
		return CategoryTools, true
	case CategorySoftSkills:
		return CategorySoftSkills, true
	case CategoryDomain:
		return CategoryDomain, true
	default:
		return "", false
	}
}

// Level is a totally ordered proficiency scale. A user meets a required
// level iff Ordinal(user) >= Ordinal(required).
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelExpert       Level = "expert"
)

func (l Level) Ordinal() int {
	switch l {
	case LevelBeginner:
		return 1
	case LevelIntermediate:
		return 2
	case LevelAdvanced:
		return 3
	case LevelExpert:
		return 4
	default:
		return 0
	}
}

func (l Level) Meets(required Level) bool {
	return l.Ordinal() >= required.Ordinal()
}

func ParseLevel(s string) (Level, bool) {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case LevelBeginner:
		return LevelBeginner, true
	case LevelIntermediate:
		return LevelIntermediate, true
	case LevelAdvanced:
		return LevelAdvanced, true
	case LevelExpert:
		return LevelExpert, true
	default:
		return "", false
	}
}

type EvidenceType string

const (
	EvidenceExplicitMention     EvidenceType = "explicit_mention"
	EvidenceCodeRepository      EvidenceType = "code_repository"
	EvidenceProject             EvidenceType = "project"
	EvidenceCertification       EvidenceType = "certification"
	EvidenceEndorsement         EvidenceType = "endorsement"
	EvidenceAchievement         EvidenceType = "achievement"
	EvidenceToolUsage           EvidenceType = "tool_usage"
	EvidenceInferredFromContext EvidenceType = "inferred_from_context"
)

type Skill struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Name            string
	Category        Category
	ConfidenceScore float64
	Proficiency     Level
	YearsExperience int
	IsExplicit      bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Evidence struct {
	ID          uuid.UUID
	SkillID     uuid.UUID
	DocumentID  *uuid.UUID
	Type        EvidenceType
	Snippet     string
	Reliability float64
	CreatedAt   time.Time
}
