package job

import (
	"strings"
	"time"

	"skillsense/internal/domain/skill"

	"github.com/google/uuid"
)

type Importance string

const (
	ImportanceRequired   Importance = "required"
	ImportancePreferred  Importance = "preferred"
	ImportanceNiceToHave Importance = "nice_to_have"
)

func ParseImportance(s string) (Importance, bool) {
	switch Importance(strings.ToLower(strings.TrimSpace(s))) {
	case ImportanceRequired:
		return ImportanceRequired, true
	case ImportancePreferred:
		return ImportancePreferred, true
	case ImportanceNiceToHave:
		return ImportanceNiceToHave, true
	default:
		return "", false
	}
}

// Critical reports whether a missing skill at this importance should be
// flagged as a critical gap.
func (i Importance) Critical() bool {
	return i == ImportanceRequired
}

type Requirement struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Description string
	CreatedAt   time.Time
}

type RequiredSkill struct {
	ID            uuid.UUID
	RequirementID uuid.UUID
	Name          string
	RequiredLevel skill.Level
	Importance    Importance
	Position      int
}

type Match struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	RequirementID uuid.UUID
	MatchScore    int
	CreatedAt     time.Time
}

type MatchSkill struct {
	ID              uuid.UUID
	MatchID         uuid.UUID
	SkillName       string
	IsMatched       bool
	IsCritical      bool
	UserProficiency skill.Level
	UserConfidence  float64
	RequiredLevel   skill.Level
}
