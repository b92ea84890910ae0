package dto

import (
	"time"

	"skillsense/internal/domain/organization"

	"github.com/google/uuid"
)

type OrganizationResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type MemberResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type TeamSkillResponse struct {
	Name           string  `json:"name"`
	MemberCount    int     `json:"member_count"`
	AvgConfidence  float64 `json:"avg_confidence"`
	MaxProficiency string  `json:"max_proficiency,omitempty"`
}

func FromOrganization(org organization.Organization) OrganizationResponse {
	return OrganizationResponse{ID: org.ID, Name: org.Name, CreatedBy: org.CreatedBy, CreatedAt: org.CreatedAt}
}

func FromOrganizations(orgs []organization.Organization) []OrganizationResponse {
	out := make([]OrganizationResponse, 0, len(orgs))
	for _, o := range orgs {
		out = append(out, FromOrganization(o))
	}
	return out
}

func FromMembers(members []organization.Member) []MemberResponse {
	out := make([]MemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, MemberResponse{ID: m.ID, UserID: m.UserID, Role: m.Role, CreatedAt: m.CreatedAt})
	}
	return out
}

func FromTeamSkills(skills []organization.TeamSkill) []TeamSkillResponse {
	out := make([]TeamSkillResponse, 0, len(skills))
	for _, s := range skills {
		out = append(out, TeamSkillResponse{
			Name:           s.Name,
			MemberCount:    s.MemberCount,
			AvgConfidence:  s.AvgConfidence,
			MaxProficiency: s.MaxProficiency,
		})
	}
	return out
}
