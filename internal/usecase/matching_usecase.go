package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"skillsense/internal/domain/job"
	"skillsense/internal/domain/matching"
	"skillsense/internal/extractor"
	"skillsense/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrRequirementNotFound = errors.New("job requirement not found")
	ErrNoSkillProfile      = errors.New("no skills recorded for user")
)

type CreateRequirementInput struct {
	Title       string
	Description string
	// Skills may be provided directly; when empty they are extracted from
	// the description.
	Skills []job.RequiredSkill
}

type MatchResult struct {
	Requirement job.Requirement
	Report      matching.Report
}

type MatchingUsecase interface {
	CreateRequirement(ctx context.Context, userID uuid.UUID, in CreateRequirementInput) (job.Requirement, []job.RequiredSkill, error)
	ListRequirements(ctx context.Context, userID uuid.UUID) ([]job.Requirement, error)
	GetRequirement(ctx context.Context, userID, requirementID uuid.UUID) (job.Requirement, []job.RequiredSkill, error)
	Match(ctx context.Context, userID, requirementID uuid.UUID) (MatchResult, error)
	LatestMatch(ctx context.Context, userID, requirementID uuid.UUID) (job.Match, []job.MatchSkill, error)
}

type Matching struct {
	jobs      repository.JobRepository
	matches   repository.JobMatchRepository
	skills    repository.SkillRepository
	extractor extractor.Extractor
	logger    *log.Logger
}

func NewMatchingUsecase(jobs repository.JobRepository, matches repository.JobMatchRepository, skills repository.SkillRepository, ext extractor.Extractor, logger *log.Logger) *Matching {
	return &Matching{jobs: jobs, matches: matches, skills: skills, extractor: ext, logger: logger}
}

func (u *Matching) CreateRequirement(ctx context.Context, userID uuid.UUID, in CreateRequirementInput) (job.Requirement, []job.RequiredSkill, error) {
	if userID == uuid.Nil {
		return job.Requirement{}, nil, ErrUnauthorized
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return job.Requirement{}, nil, ErrInvalidInput
	}

	skills := in.Skills
	if len(skills) == 0 {
		if strings.TrimSpace(in.Description) == "" {
			return job.Requirement{}, nil, ErrInvalidInput
		}
		extracted, err := u.extractRequiredSkills(ctx, in.Description)
		if err != nil {
			return job.Requirement{}, nil, err
		}
		skills = extracted
	}

	req := job.Requirement{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: in.Description,
	}
	for i := range skills {
		skills[i].ID = uuid.New()
		skills[i].RequirementID = req.ID
		skills[i].Position = i
		if skills[i].Importance == "" {
			skills[i].Importance = job.ImportanceRequired
		}
	}

	if err := u.jobs.CreateRequirement(ctx, req, skills); err != nil {
		u.logger.Printf("create requirement failed: %v", err)
		return job.Requirement{}, nil, ErrInternal
	}
	return req, skills, nil
}

func (u *Matching) extractRequiredSkills(ctx context.Context, description string) ([]job.RequiredSkill, error) {
	extracted, err := u.extractor.ExtractJobRequirements(ctx, description)
	if err != nil {
		u.logger.Printf("requirement extraction failed: %v", err)
		return nil, ErrInternal
	}
	if len(extracted) == 0 {
		return nil, ErrInvalidInput
	}

	out := make([]job.RequiredSkill, 0, len(extracted))
	for _, rs := range extracted {
		importance := job.ImportancePreferred
		if rs.Critical {
			importance = job.ImportanceRequired
		}
		out = append(out, job.RequiredSkill{
			Name:          rs.Name,
			RequiredLevel: rs.RequiredLevel,
			Importance:    importance,
		})
	}
	return out, nil
}

func (u *Matching) ListRequirements(ctx context.Context, userID uuid.UUID) ([]job.Requirement, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	reqs, err := u.jobs.FindRequirementsByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return reqs, nil
}

func (u *Matching) GetRequirement(ctx context.Context, userID, requirementID uuid.UUID) (job.Requirement, []job.RequiredSkill, error) {
	req, err := u.ownedRequirement(ctx, userID, requirementID)
	if err != nil {
		return job.Requirement{}, nil, err
	}
	skills, err := u.jobs.FindRequiredSkills(ctx, requirementID)
	if err != nil {
		return job.Requirement{}, nil, ErrInternal
	}
	return req, skills, nil
}

// Match scores the user's current skill profile against a stored requirement
// and persists the outcome so gap history survives re-extraction.
func (u *Matching) Match(ctx context.Context, userID, requirementID uuid.UUID) (MatchResult, error) {
	req, err := u.ownedRequirement(ctx, userID, requirementID)
	if err != nil {
		return MatchResult{}, err
	}

	requiredRows, err := u.jobs.FindRequiredSkills(ctx, requirementID)
	if err != nil {
		return MatchResult{}, ErrInternal
	}

	userRows, err := u.skills.FindByUserID(ctx, userID)
	if err != nil {
		return MatchResult{}, ErrInternal
	}
	if len(userRows) == 0 {
		return MatchResult{}, ErrNoSkillProfile
	}

	userSkills := make([]matching.UserSkill, 0, len(userRows))
	for _, s := range userRows {
		userSkills = append(userSkills, matching.UserSkill{
			Name:       s.Name,
			Level:      s.Proficiency,
			Confidence: s.ConfidenceScore,
		})
	}

	required := make([]matching.RequiredSkill, 0, len(requiredRows))
	for _, rs := range requiredRows {
		required = append(required, matching.RequiredSkill{
			Name:          rs.Name,
			RequiredLevel: rs.RequiredLevel,
			Critical:      rs.Importance.Critical(),
		})
	}

	report := matching.Score(userSkills, required)

	match := job.Match{
		ID:            uuid.New(),
		UserID:        userID,
		RequirementID: requirementID,
		MatchScore:    report.MatchScore,
	}
	if err := u.matches.CreateMatch(ctx, match, reportToMatchSkills(match.ID, report)); err != nil {
		u.logger.Printf("persist match failed: %v", err)
		return MatchResult{}, ErrInternal
	}

	return MatchResult{Requirement: req, Report: report}, nil
}

func (u *Matching) LatestMatch(ctx context.Context, userID, requirementID uuid.UUID) (job.Match, []job.MatchSkill, error) {
	if _, err := u.ownedRequirement(ctx, userID, requirementID); err != nil {
		return job.Match{}, nil, err
	}
	m, skills, err := u.matches.FindLatestByRequirement(ctx, userID, requirementID)
	if err != nil {
		if errors.Is(err, repository.ErrJobMatchNotFound) {
			return job.Match{}, nil, ErrNotFound
		}
		return job.Match{}, nil, ErrInternal
	}
	return m, skills, nil
}

func (u *Matching) ownedRequirement(ctx context.Context, userID, requirementID uuid.UUID) (job.Requirement, error) {
	if userID == uuid.Nil {
		return job.Requirement{}, ErrUnauthorized
	}
	req, err := u.jobs.FindRequirement(ctx, requirementID)
	if err != nil {
		if errors.Is(err, repository.ErrJobRequirementNotFound) {
			return job.Requirement{}, ErrRequirementNotFound
		}
		return job.Requirement{}, ErrInternal
	}
	if req.UserID != userID {
		return job.Requirement{}, ErrRequirementNotFound
	}
	return req, nil
}

func reportToMatchSkills(matchID uuid.UUID, report matching.Report) []job.MatchSkill {
	out := make([]job.MatchSkill, 0, len(report.Matched)+len(report.Missing))
	for _, v := range report.Matched {
		out = append(out, verdictToMatchSkill(matchID, v))
	}
	for _, v := range report.Missing {
		out = append(out, verdictToMatchSkill(matchID, v))
	}
	return out
}

func verdictToMatchSkill(matchID uuid.UUID, v matching.Verdict) job.MatchSkill {
	return job.MatchSkill{
		MatchID:         matchID,
		SkillName:       v.SkillName,
		IsMatched:       v.IsMatched,
		IsCritical:      v.IsCritical,
		UserProficiency: v.UserProficiency,
		UserConfidence:  v.UserConfidence,
		RequiredLevel:   v.RequiredLevel,
	}
}
