package organization

import (
	"time"

	"github.com/google/uuid"
)

type Organization struct {
	ID        uuid.UUID
	Name      string
	CreatedBy uuid.UUID
	CreatedAt time.Time
}

type Member struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	UserID         uuid.UUID
	Role           string
	CreatedAt      time.Time
}

// TeamSkill is an additive aggregation of one skill name across members.
type TeamSkill struct {
	Name           string
	MemberCount    int
	AvgConfidence  float64
	MaxProficiency string
}
