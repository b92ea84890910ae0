package dto

import (
	"time"

	"skillsense/internal/domain/job"
	"skillsense/internal/domain/matching"

	"github.com/google/uuid"
)

type RequiredSkillResponse struct {
	Name          string `json:"name"`
	RequiredLevel string `json:"required_level"`
	Importance    string `json:"importance"`
}

type RequirementResponse struct {
	ID          uuid.UUID               `json:"id"`
	Title       string                  `json:"title"`
	Description string                  `json:"description,omitempty"`
	Skills      []RequiredSkillResponse `json:"skills,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
}

type VerdictResponse struct {
	SkillName       string  `json:"skill_name"`
	RequiredLevel   string  `json:"required_level"`
	IsMatched       bool    `json:"is_matched"`
	IsCritical      bool    `json:"is_critical"`
	UserSkillName   string  `json:"user_skill_name,omitempty"`
	UserProficiency string  `json:"user_proficiency,omitempty"`
	UserConfidence  float64 `json:"user_confidence,omitempty"`
}

type MatchReportResponse struct {
	RequirementID uuid.UUID         `json:"requirement_id"`
	MatchScore    int               `json:"match_score"`
	Matched       []VerdictResponse `json:"matched_skills"`
	Missing       []VerdictResponse `json:"missing_skills"`
}

func FromRequirement(req job.Requirement, skills []job.RequiredSkill) RequirementResponse {
	out := RequirementResponse{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   req.CreatedAt,
	}
	for _, rs := range skills {
		out.Skills = append(out.Skills, RequiredSkillResponse{
			Name:          rs.Name,
			RequiredLevel: string(rs.RequiredLevel),
			Importance:    string(rs.Importance),
		})
	}
	return out
}

func FromRequirements(reqs []job.Requirement) []RequirementResponse {
	out := make([]RequirementResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, FromRequirement(r, nil))
	}
	return out
}

func FromMatchReport(requirementID uuid.UUID, report matching.Report) MatchReportResponse {
	return MatchReportResponse{
		RequirementID: requirementID,
		MatchScore:    report.MatchScore,
		Matched:       fromVerdicts(report.Matched),
		Missing:       fromVerdicts(report.Missing),
	}
}

func fromVerdicts(verdicts []matching.Verdict) []VerdictResponse {
	out := make([]VerdictResponse, 0, len(verdicts))
	for _, v := range verdicts {
		out = append(out, VerdictResponse{
			SkillName:       v.SkillName,
			RequiredLevel:   string(v.RequiredLevel),
			IsMatched:       v.IsMatched,
			IsCritical:      v.IsCritical,
			UserSkillName:   v.UserSkillName,
			UserProficiency: string(v.UserProficiency),
			UserConfidence:  v.UserConfidence,
		})
	}
	return out
}

func FromStoredMatch(m job.Match, skills []job.MatchSkill) MatchReportResponse {
	out := MatchReportResponse{RequirementID: m.RequirementID, MatchScore: m.MatchScore}
	for _, ms := range skills {
		v := VerdictResponse{
			SkillName:       ms.SkillName,
			RequiredLevel:   string(ms.RequiredLevel),
			IsMatched:       ms.IsMatched,
			IsCritical:      ms.IsCritical,
			UserProficiency: string(ms.UserProficiency),
			UserConfidence:  ms.UserConfidence,
		}
		if ms.UserProficiency == "" && !ms.IsMatched && ms.UserConfidence == 0 {
			out.Missing = append(out.Missing, v)
			continue
		}
		out.Matched = append(out.Matched, v)
	}
	return out
}
