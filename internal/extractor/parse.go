package extractor

import (
	"encoding/json"
	"fmt"
	"strings"

	"skillsense/internal/domain/extraction"
	"skillsense/internal/domain/job"
	"skillsense/internal/domain/matching"
	"skillsense/internal/domain/skill"
)

type candidateWire struct {
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	Confidence      float64 `json:"confidence"`
	Proficiency     string  `json:"proficiency_level"`
	YearsExperience int     `json:"years_experience"`
	Evidence        string  `json:"evidence"`
	IsExplicit      *bool   `json:"is_explicit"`
}

type requiredSkillWire struct {
	Name          string `json:"name"`
	RequiredLevel string `json:"required_level"`
	Importance    string `json:"importance"`
}

type enhanceWire struct {
	Suggestions []Suggestion `json:"suggestions"`
	Rewritten   string       `json:"rewritten_cv"`
}

// cleanJSON strips markdown code fences the model sometimes wraps around
// its output, then narrows to the outermost JSON value.
func cleanJSON(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)

	start := strings.IndexAny(clean, "[{")
	if start < 0 {
		return clean
	}
	var end int
	if clean[start] == '[' {
		end = strings.LastIndex(clean, "]")
	} else {
		end = strings.LastIndex(clean, "}")
	}
	if end <= start {
		return clean
	}
	return clean[start : end+1]
}

// parseCandidates decodes the model's skill array. deriveExplicit drops the
// model-supplied is_explicit flag so explicitness falls back to the
// confidence threshold during aggregation.
func parseCandidates(raw string, deriveExplicit bool) ([]extraction.Candidate, error) {
	cleaned := cleanJSON(raw)
	if cleaned == "" {
		return nil, ErrEmptyResponse
	}

	var wires []candidateWire
	if err := json.Unmarshal([]byte(cleaned), &wires); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	out := make([]extraction.Candidate, 0, len(wires))
	for _, w := range wires {
		name := strings.TrimSpace(w.Name)
		if name == "" {
			continue
		}
		c := extraction.Candidate{
			Name:            name,
			Confidence:      clamp01(w.Confidence),
			YearsExperience: maxInt(w.YearsExperience, 0),
			Snippet:         strings.TrimSpace(w.Evidence),
		}
		if cat, ok := skill.ParseCategory(w.Category); ok {
			c.Category = cat
		}
		if lvl, ok := skill.ParseLevel(w.Proficiency); ok {
			c.Proficiency = lvl
		}
		if w.IsExplicit != nil && !deriveExplicit {
			c.Explicit = *w.IsExplicit
			c.ExplicitSet = true
		}
		out = append(out, c)
	}
	return out, nil
}

func parseRequiredSkills(raw string) ([]matching.RequiredSkill, error) {
	cleaned := cleanJSON(raw)
	if cleaned == "" {
		return nil, ErrEmptyResponse
	}

	var wires []requiredSkillWire
	if err := json.Unmarshal([]byte(cleaned), &wires); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	out := make([]matching.RequiredSkill, 0, len(wires))
	for _, w := range wires {
		name := strings.TrimSpace(w.Name)
		if name == "" {
			continue
		}
		rs := matching.RequiredSkill{Name: name, RequiredLevel: skill.LevelIntermediate}
		if lvl, ok := skill.ParseLevel(w.RequiredLevel); ok {
			rs.RequiredLevel = lvl
		}
		if imp, ok := job.ParseImportance(w.Importance); ok {
			rs.Critical = imp.Critical()
		}
		out = append(out, rs)
	}
	return out, nil
}

func parseEnhance(raw string, action EnhanceAction) (EnhanceResult, error) {
	cleaned := cleanJSON(raw)
	if cleaned == "" {
		return EnhanceResult{}, ErrEmptyResponse
	}

	var w enhanceWire
	if err := json.Unmarshal([]byte(cleaned), &w); err != nil {
		return EnhanceResult{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	res := EnhanceResult{Suggestions: w.Suggestions, RewrittenCV: strings.TrimSpace(w.Rewritten)}
	if action == ActionEnhance && res.RewrittenCV == "" {
		return EnhanceResult{}, ErrBadResponse
	}
	return res, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
