package usecase

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"

	"skillsense/internal/domain/organization"
	"skillsense/internal/domain/user"
	"skillsense/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrNotMember            = errors.New("not a member of this organization")
	ErrAlreadyMember        = errors.New("user is already a member")
	ErrMemberNotFound       = errors.New("member user not found")
)

type OrganizationUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, name string) (organization.Organization, error)
	List(ctx context.Context, userID uuid.UUID) ([]organization.Organization, error)
	AddMember(ctx context.Context, actorID, orgID uuid.UUID, email, role string) (organization.Member, error)
	Members(ctx context.Context, actorID, orgID uuid.UUID) ([]organization.Member, error)
	TeamSkills(ctx context.Context, actorID, orgID uuid.UUID) ([]organization.TeamSkill, error)
}

type Organization struct {
	orgs   repository.OrganizationRepository
	users  user.Repository
	skills repository.SkillRepository
	logger *log.Logger
}

func NewOrganizationUsecase(orgs repository.OrganizationRepository, users user.Repository, skills repository.SkillRepository, logger *log.Logger) *Organization {
	return &Organization{orgs: orgs, users: users, skills: skills, logger: logger}
}

func (u *Organization) Create(ctx context.Context, userID uuid.UUID, name string) (organization.Organization, error) {
	if userID == uuid.Nil {
		return organization.Organization{}, ErrUnauthorized
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return organization.Organization{}, ErrInvalidInput
	}

	org := organization.Organization{
		ID:        uuid.New(),
		Name:      name,
		CreatedBy: userID,
	}
	if err := u.orgs.Create(ctx, org); err != nil {
		u.logger.Printf("create organization failed: %v", err)
		return organization.Organization{}, ErrInternal
	}
	return org, nil
}

func (u *Organization) List(ctx context.Context, userID uuid.UUID) ([]organization.Organization, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	orgs, err := u.orgs.FindByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return orgs, nil
}

func (u *Organization) AddMember(ctx context.Context, actorID, orgID uuid.UUID, email, role string) (organization.Member, error) {
	if err := u.requireMembership(ctx, actorID, orgID); err != nil {
		return organization.Member{}, err
	}

	target, err := u.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return organization.Member{}, ErrMemberNotFound
		}
		return organization.Member{}, ErrInternal
	}

	role = strings.TrimSpace(role)
	if role == "" {
		role = "member"
	}

	m := organization.Member{
		ID:             uuid.New(),
		OrganizationID: orgID,
		UserID:         target.ID,
		Role:           role,
	}
	if err := u.orgs.AddMember(ctx, m); err != nil {
		if errors.Is(err, repository.ErrAlreadyMember) {
			return organization.Member{}, ErrAlreadyMember
		}
		return organization.Member{}, ErrInternal
	}
	return m, nil
}

func (u *Organization) Members(ctx context.Context, actorID, orgID uuid.UUID) ([]organization.Member, error) {
	if err := u.requireMembership(ctx, actorID, orgID); err != nil {
		return nil, err
	}
	members, err := u.orgs.ListMembers(ctx, orgID)
	if err != nil {
		return nil, ErrInternal
	}
	return members, nil
}

// TeamSkills aggregates every member's skill rows by case-insensitive name:
// how many members have the skill, the average confidence, and the highest
// proficiency seen. Sorted by member count, then name.
func (u *Organization) TeamSkills(ctx context.Context, actorID, orgID uuid.UUID) ([]organization.TeamSkill, error) {
	if err := u.requireMembership(ctx, actorID, orgID); err != nil {
		return nil, err
	}

	memberIDs, err := u.orgs.MemberUserIDs(ctx, orgID)
	if err != nil {
		return nil, ErrInternal
	}
	rows, err := u.skills.FindByUserIDs(ctx, memberIDs)
	if err != nil {
		return nil, ErrInternal
	}

	type accum struct {
		name       string
		members    map[uuid.UUID]bool
		confSum    float64
		confCount  int
		maxOrdinal int
		maxLevel   string
	}
	byName := make(map[string]*accum)
	for _, s := range rows {
		key := strings.ToLower(s.Name)
		a, ok := byName[key]
		if !ok {
			a = &accum{name: s.Name, members: make(map[uuid.UUID]bool)}
			byName[key] = a
		}
		a.members[s.UserID] = true
		a.confSum += s.ConfidenceScore
		a.confCount++
		if ord := s.Proficiency.Ordinal(); ord > a.maxOrdinal {
			a.maxOrdinal = ord
			a.maxLevel = string(s.Proficiency)
		}
	}

	out := make([]organization.TeamSkill, 0, len(byName))
	for _, a := range byName {
		out = append(out, organization.TeamSkill{
			Name:           a.name,
			MemberCount:    len(a.members),
			AvgConfidence:  a.confSum / float64(a.confCount),
			MaxProficiency: a.maxLevel,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MemberCount != out[j].MemberCount {
			return out[i].MemberCount > out[j].MemberCount
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (u *Organization) requireMembership(ctx context.Context, actorID, orgID uuid.UUID) error {
	if actorID == uuid.Nil {
		return ErrUnauthorized
	}
	if _, err := u.orgs.FindByID(ctx, orgID); err != nil {
		if errors.Is(err, repository.ErrOrganizationNotFound) {
			return ErrOrganizationNotFound
		}
		return ErrInternal
	}
	ok, err := u.orgs.IsMember(ctx, orgID, actorID)
	if err != nil {
		return ErrInternal
	}
	if !ok {
		return ErrNotMember
	}
	return nil
}
