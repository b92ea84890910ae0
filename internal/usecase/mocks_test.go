package usecase

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"sync"

	"skillsense/internal/domain/document"
	"skillsense/internal/domain/extraction"
	"skillsense/internal/domain/job"
	"skillsense/internal/domain/matching"
	"skillsense/internal/domain/organization"
	"skillsense/internal/domain/skill"
	"skillsense/internal/domain/user"
	"skillsense/internal/extractor"
	"skillsense/internal/repository"

	"github.com/google/uuid"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type mockDocumentRepo struct {
	mu       sync.Mutex
	docs     map[uuid.UUID]document.Document
	statuses []document.Status
	err      error
}

func newMockDocumentRepo() *mockDocumentRepo {
	return &mockDocumentRepo{docs: make(map[uuid.UUID]document.Document)}
}

func (m *mockDocumentRepo) Create(_ context.Context, d document.Document) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[d.ID] = d
	return nil
}

func (m *mockDocumentRepo) FindByID(_ context.Context, id uuid.UUID) (document.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[id]
	if !ok {
		return document.Document{}, repository.ErrDocumentNotFound
	}
	return d, nil
}

func (m *mockDocumentRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]document.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []document.Document
	for _, d := range m.docs {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockDocumentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status document.Status, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[id]
	if !ok {
		return repository.ErrDocumentNotFound
	}
	d.Status = status
	d.ErrorMessage = errMsg
	m.docs[id] = d
	m.statuses = append(m.statuses, status)
	return nil
}

func (m *mockDocumentRepo) Delete(_ context.Context, id uuid.UUID, _ uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return repository.ErrDocumentNotFound
	}
	delete(m.docs, id)
	return nil
}

type mockSkillRepo struct {
	mu       sync.Mutex
	skills   map[uuid.UUID]skill.Skill
	evidence []skill.Evidence
	err      error
}

func newMockSkillRepo() *mockSkillRepo {
	return &mockSkillRepo{skills: make(map[uuid.UUID]skill.Skill)}
}

func (m *mockSkillRepo) Upsert(_ context.Context, s skill.Skill) (skill.Skill, error) {
	if m.err != nil {
		return skill.Skill{}, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, existing := range m.skills {
		if existing.UserID == s.UserID && strings.EqualFold(existing.Name, s.Name) {
			if s.ConfidenceScore > existing.ConfidenceScore {
				existing.ConfidenceScore = s.ConfidenceScore
			}
			m.skills[id] = existing
			return existing, nil
		}
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	m.skills[s.ID] = s
	return s, nil
}

func (m *mockSkillRepo) AddEvidence(_ context.Context, ev skill.Evidence) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evidence = append(m.evidence, ev)
	return nil
}

func (m *mockSkillRepo) FindByID(_ context.Context, id uuid.UUID) (skill.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.skills[id]
	if !ok {
		return skill.Skill{}, repository.ErrSkillNotFound
	}
	return s, nil
}

func (m *mockSkillRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]skill.Skill, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []skill.Skill
	for _, s := range m.skills {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSkillRepo) FindByUserIDs(_ context.Context, userIDs []uuid.UUID) ([]skill.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []skill.Skill
	for _, s := range m.skills {
		for _, id := range userIDs {
			if s.UserID == id {
				out = append(out, s)
				break
			}
		}
	}
	return out, nil
}

func (m *mockSkillRepo) FindEvidence(_ context.Context, skillID uuid.UUID) ([]skill.Evidence, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []skill.Evidence
	for _, ev := range m.evidence {
		if ev.SkillID == skillID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *mockSkillRepo) Update(_ context.Context, s skill.Skill) (skill.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.skills[s.ID]; !ok {
		return skill.Skill{}, repository.ErrSkillNotFound
	}
	m.skills[s.ID] = s
	return s, nil
}

func (m *mockSkillRepo) Delete(_ context.Context, id uuid.UUID, _ uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.skills[id]; !ok {
		return repository.ErrSkillNotFound
	}
	delete(m.skills, id)
	return nil
}

type mockKeywordRepo struct{}

func (mockKeywordRepo) ListKeywords(context.Context) ([]extraction.KeywordCategory, error) {
	return extraction.DefaultKeywords(), nil
}

type mockJobRepo struct {
	reqs   map[uuid.UUID]job.Requirement
	skills map[uuid.UUID][]job.RequiredSkill
	err    error
}

func newMockJobRepo() *mockJobRepo {
	return &mockJobRepo{reqs: make(map[uuid.UUID]job.Requirement), skills: make(map[uuid.UUID][]job.RequiredSkill)}
}

func (m *mockJobRepo) CreateRequirement(_ context.Context, req job.Requirement, skills []job.RequiredSkill) error {
	if m.err != nil {
		return m.err
	}
	m.reqs[req.ID] = req
	m.skills[req.ID] = skills
	return nil
}

func (m *mockJobRepo) FindRequirement(_ context.Context, id uuid.UUID) (job.Requirement, error) {
	req, ok := m.reqs[id]
	if !ok {
		return job.Requirement{}, repository.ErrJobRequirementNotFound
	}
	return req, nil
}

func (m *mockJobRepo) FindRequirementsByUser(_ context.Context, userID uuid.UUID) ([]job.Requirement, error) {
	var out []job.Requirement
	for _, r := range m.reqs {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockJobRepo) FindRequiredSkills(_ context.Context, requirementID uuid.UUID) ([]job.RequiredSkill, error) {
	return m.skills[requirementID], nil
}

type mockJobMatchRepo struct {
	matches []job.Match
	skills  map[uuid.UUID][]job.MatchSkill
	err     error
}

func newMockJobMatchRepo() *mockJobMatchRepo {
	return &mockJobMatchRepo{skills: make(map[uuid.UUID][]job.MatchSkill)}
}

func (m *mockJobMatchRepo) CreateMatch(_ context.Context, match job.Match, skills []job.MatchSkill) error {
	if m.err != nil {
		return m.err
	}
	m.matches = append(m.matches, match)
	m.skills[match.ID] = skills
	return nil
}

func (m *mockJobMatchRepo) FindLatestByRequirement(_ context.Context, userID, requirementID uuid.UUID) (job.Match, []job.MatchSkill, error) {
	for i := len(m.matches) - 1; i >= 0; i-- {
		match := m.matches[i]
		if match.UserID == userID && match.RequirementID == requirementID {
			return match, m.skills[match.ID], nil
		}
	}
	return job.Match{}, nil, repository.ErrJobMatchNotFound
}

type mockOrgRepo struct {
	orgs    map[uuid.UUID]organization.Organization
	members map[uuid.UUID][]organization.Member
}

func newMockOrgRepo() *mockOrgRepo {
	return &mockOrgRepo{orgs: make(map[uuid.UUID]organization.Organization), members: make(map[uuid.UUID][]organization.Member)}
}

func (m *mockOrgRepo) Create(_ context.Context, org organization.Organization) error {
	m.orgs[org.ID] = org
	m.members[org.ID] = append(m.members[org.ID], organization.Member{
		ID: uuid.New(), OrganizationID: org.ID, UserID: org.CreatedBy, Role: "admin",
	})
	return nil
}

func (m *mockOrgRepo) FindByID(_ context.Context, id uuid.UUID) (organization.Organization, error) {
	org, ok := m.orgs[id]
	if !ok {
		return organization.Organization{}, repository.ErrOrganizationNotFound
	}
	return org, nil
}

func (m *mockOrgRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]organization.Organization, error) {
	var out []organization.Organization
	for id, org := range m.orgs {
		for _, mem := range m.members[id] {
			if mem.UserID == userID {
				out = append(out, org)
				break
			}
		}
	}
	return out, nil
}

func (m *mockOrgRepo) AddMember(_ context.Context, mem organization.Member) error {
	for _, existing := range m.members[mem.OrganizationID] {
		if existing.UserID == mem.UserID {
			return repository.ErrAlreadyMember
		}
	}
	m.members[mem.OrganizationID] = append(m.members[mem.OrganizationID], mem)
	return nil
}

func (m *mockOrgRepo) ListMembers(_ context.Context, orgID uuid.UUID) ([]organization.Member, error) {
	return m.members[orgID], nil
}

func (m *mockOrgRepo) IsMember(_ context.Context, orgID, userID uuid.UUID) (bool, error) {
	for _, mem := range m.members[orgID] {
		if mem.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockOrgRepo) MemberUserIDs(_ context.Context, orgID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, mem := range m.members[orgID] {
		ids = append(ids, mem.UserID)
	}
	return ids, nil
}

type mockUserRepo struct {
	users    map[uuid.UUID]user.User
	profiles map[uuid.UUID]user.Profile
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]user.User), profiles: make(map[uuid.UUID]user.Profile)}
}

func (m *mockUserRepo) CreateUser(_ context.Context, u user.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *mockUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := m.GetUserByEmail(context.Background(), email)
	return err == nil, nil
}

func (m *mockUserRepo) GetProfile(_ context.Context, userID uuid.UUID) (user.Profile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return user.Profile{}, user.ErrNotFound
	}
	return p, nil
}

func (m *mockUserRepo) UpsertProfile(_ context.Context, p user.Profile) (user.Profile, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.profiles[p.UserID] = p
	return p, nil
}

func organizationMember(orgID, userID uuid.UUID) organization.Member {
	return organization.Member{ID: uuid.New(), OrganizationID: orgID, UserID: userID, Role: "member"}
}

func userWithEmail(id uuid.UUID, email string) user.User {
	return user.User{ID: id, Email: email}
}

// fakeExtractor returns canned candidates without a model call.
type fakeExtractor struct {
	candidates []extraction.Candidate
	required   []matching.RequiredSkill
	enhance    extractor.EnhanceResult
	err        error
}

func (f fakeExtractor) ExtractSkills(context.Context, string) ([]extraction.Candidate, error) {
	return f.candidates, f.err
}

func (f fakeExtractor) ExtractJobRequirements(context.Context, string) ([]matching.RequiredSkill, error) {
	return f.required, f.err
}

func (f fakeExtractor) EnhanceResume(context.Context, string, extractor.EnhanceAction) (extractor.EnhanceResult, error) {
	return f.enhance, f.err
}

// memStore keeps uploaded blobs in a map.
type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
	getErr  error
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string][]byte)}
}

func (m *memStore) PutDocument(_ context.Context, key, _ string, data []byte) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func (m *memStore) GetDocument(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, errors.New("object not found")
	}
	return data, nil
}
