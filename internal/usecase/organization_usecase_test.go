package usecase

import (
	"context"
	"errors"
	"testing"

	"skillsense/internal/domain/skill"

	"github.com/google/uuid"
)

func TestOrganization_TeamSkills_Aggregates(t *testing.T) {
	orgs := newMockOrgRepo()
	skills := newMockSkillRepo()
	users := newMockUserRepo()

	admin := uuid.New()
	member := uuid.New()

	uc := NewOrganizationUsecase(orgs, users, skills, testLogger())
	org, err := uc.Create(context.Background(), admin, "Platform Team")
	if err != nil {
		t.Fatalf("create org: %v", err)
	}
	orgs.members[org.ID] = append(orgs.members[org.ID], organizationMember(org.ID, member))

	skills.skills[uuid.New()] = skill.Skill{UserID: admin, Name: "Go", ConfidenceScore: 0.9, Proficiency: skill.LevelExpert}
	skills.skills[uuid.New()] = skill.Skill{UserID: member, Name: "go", ConfidenceScore: 0.7, Proficiency: skill.LevelIntermediate}
	skills.skills[uuid.New()] = skill.Skill{UserID: member, Name: "Kubernetes", ConfidenceScore: 0.6, Proficiency: skill.LevelBeginner}

	team, err := uc.TeamSkills(context.Background(), admin, org.ID)
	if err != nil {
		t.Fatalf("team skills: %v", err)
	}
	if len(team) != 2 {
		t.Fatalf("expected 2 aggregated skills, got %d", len(team))
	}

	// "Go" and "go" merge case-insensitively and sort first on member count.
	top := team[0]
	if top.MemberCount != 2 {
		t.Fatalf("expected Go to cover 2 members, got %d", top.MemberCount)
	}
	if top.AvgConfidence < 0.79 || top.AvgConfidence > 0.81 {
		t.Fatalf("expected avg confidence 0.8, got %f", top.AvgConfidence)
	}
	if top.MaxProficiency != string(skill.LevelExpert) {
		t.Fatalf("expected expert max proficiency, got %s", top.MaxProficiency)
	}
}

func TestOrganization_TeamSkills_NonMemberRejected(t *testing.T) {
	orgs := newMockOrgRepo()
	uc := NewOrganizationUsecase(orgs, newMockUserRepo(), newMockSkillRepo(), testLogger())

	org, err := uc.Create(context.Background(), uuid.New(), "Team")
	if err != nil {
		t.Fatalf("create org: %v", err)
	}
	if _, err := uc.TeamSkills(context.Background(), uuid.New(), org.ID); !errors.Is(err, ErrNotMember) {
		t.Fatalf("expected ErrNotMember, got %v", err)
	}
}

func TestOrganization_AddMember_ByEmail(t *testing.T) {
	orgs := newMockOrgRepo()
	users := newMockUserRepo()
	admin := uuid.New()
	target := uuid.New()
	users.users[target] = userWithEmail(target, "dev@example.com")

	uc := NewOrganizationUsecase(orgs, users, newMockSkillRepo(), testLogger())
	org, err := uc.Create(context.Background(), admin, "Team")
	if err != nil {
		t.Fatalf("create org: %v", err)
	}

	m, err := uc.AddMember(context.Background(), admin, org.ID, "dev@example.com", "")
	if err != nil {
		t.Fatalf("add member: %v", err)
	}
	if m.Role != "member" {
		t.Fatalf("expected default role member, got %s", m.Role)
	}

	if _, err := uc.AddMember(context.Background(), admin, org.ID, "dev@example.com", ""); !errors.Is(err, ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}
	if _, err := uc.AddMember(context.Background(), admin, org.ID, "nobody@example.com", ""); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
}
