package dto

import (
	"time"

	"skillsense/internal/domain/extraction"
	"skillsense/internal/domain/skill"

	"github.com/google/uuid"
)

type SkillResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	ConfidenceScore float64   `json:"confidence_score"`
	Proficiency     string    `json:"proficiency,omitempty"`
	YearsExperience int       `json:"years_experience,omitempty"`
	IsExplicit      bool      `json:"is_explicit"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type EvidenceResponse struct {
	ID          uuid.UUID  `json:"id"`
	DocumentID  *uuid.UUID `json:"document_id,omitempty"`
	Type        string     `json:"evidence_type"`
	Snippet     string     `json:"snippet,omitempty"`
	Reliability float64    `json:"reliability"`
	CreatedAt   time.Time  `json:"created_at"`
}

type SkillDetailResponse struct {
	SkillResponse
	Evidence []EvidenceResponse `json:"evidence"`
}

type ExtractedSkillResponse struct {
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	ConfidenceScore float64 `json:"confidence_score"`
	Proficiency     string  `json:"proficiency,omitempty"`
	YearsExperience int     `json:"years_experience,omitempty"`
	IsExplicit      bool    `json:"is_explicit"`
	EvidenceCount   int     `json:"evidence_count"`
}

type ExtractionStatsResponse struct {
	Kept                int     `json:"kept"`
	Explicit            int     `json:"explicit"`
	Inferred            int     `json:"inferred"`
	HiddenLowConfidence int     `json:"hidden_low_confidence"`
	AvgConfidence       float64 `json:"avg_confidence"`
}

func FromSkill(s skill.Skill) SkillResponse {
	return SkillResponse{
		ID:              s.ID,
		Name:            s.Name,
		Category:        string(s.Category),
		ConfidenceScore: s.ConfidenceScore,
		Proficiency:     string(s.Proficiency),
		YearsExperience: s.YearsExperience,
		IsExplicit:      s.IsExplicit,
		UpdatedAt:       s.UpdatedAt,
	}
}

func FromSkills(skills []skill.Skill) []SkillResponse {
	out := make([]SkillResponse, 0, len(skills))
	for _, s := range skills {
		out = append(out, FromSkill(s))
	}
	return out
}

func FromEvidence(evidence []skill.Evidence) []EvidenceResponse {
	out := make([]EvidenceResponse, 0, len(evidence))
	for _, ev := range evidence {
		out = append(out, EvidenceResponse{
			ID:          ev.ID,
			DocumentID:  ev.DocumentID,
			Type:        string(ev.Type),
			Snippet:     ev.Snippet,
			Reliability: ev.Reliability,
			CreatedAt:   ev.CreatedAt,
		})
	}
	return out
}

func FromAggregated(skills []extraction.AggregatedSkill) []ExtractedSkillResponse {
	out := make([]ExtractedSkillResponse, 0, len(skills))
	for _, s := range skills {
		out = append(out, ExtractedSkillResponse{
			Name:            s.Name,
			Category:        string(s.Category),
			ConfidenceScore: s.Confidence,
			Proficiency:     string(s.Proficiency),
			YearsExperience: s.YearsExperience,
			IsExplicit:      s.IsExplicit,
			EvidenceCount:   len(s.Evidence),
		})
	}
	return out
}

func FromStats(st extraction.Stats) ExtractionStatsResponse {
	return ExtractionStatsResponse{
		Kept:                st.Kept,
		Explicit:            st.Explicit,
		Inferred:            st.Inferred,
		HiddenLowConfidence: st.HiddenLowConfidence,
		AvgConfidence:       st.AvgConfidence,
	}
}
