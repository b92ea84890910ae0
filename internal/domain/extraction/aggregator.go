package extraction

import (
	"strings"

	"skillsense/internal/domain/skill"
)

const (
	// MinConfidence is the persistence threshold; 0.50 is kept, 0.49 dropped.
	MinConfidence = 0.5
	// ExplicitThreshold derives is_explicit when the extractor did not say.
	ExplicitThreshold = 0.7
)

// Candidate is one raw skill produced by an extractor before filtering.
// ExplicitSet marks whether Explicit came from the extractor itself; when
// false, explicitness is derived from the confidence threshold instead.
type Candidate struct {
	Name            string
	Category        skill.Category
	Confidence      float64
	Proficiency     skill.Level
	YearsExperience int
	Explicit        bool
	ExplicitSet     bool
	Snippet         string
	EvidenceType    skill.EvidenceType
}

type EvidenceEntry struct {
	Type        skill.EvidenceType
	Snippet     string
	Reliability float64
}

type AggregatedSkill struct {
	Name            string
	Category        skill.Category
	Confidence      float64
	Proficiency     skill.Level
	YearsExperience int
	IsExplicit      bool
	Evidence        []EvidenceEntry
}

type Aggregation struct {
	Skills []AggregatedSkill
	// HiddenLowConfidence counts candidates dropped by MinConfidence. They
	// are reported, never persisted.
	HiddenLowConfidence int
}

// Aggregate filters, categorizes, and dedupes extractor candidates into the
// list ready for storage. Dedupe is by case-insensitive name: the highest
// confidence candidate wins the scalar fields, evidence accumulates.
func Aggregate(candidates []Candidate, categorizer *Categorizer) Aggregation {
	out := Aggregation{Skills: make([]AggregatedSkill, 0, len(candidates))}
	index := make(map[string]int, len(candidates))

	for _, c := range candidates {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			continue
		}
		if c.Confidence < MinConfidence {
			out.HiddenLowConfidence++
			continue
		}

		category := c.Category
		if category == "" {
			category = categorizer.Categorize(name)
		}

		explicit := c.Confidence >= ExplicitThreshold
		if c.ExplicitSet {
			explicit = c.Explicit
		}

		evidenceType := c.EvidenceType
		if evidenceType == "" {
			if explicit {
				evidenceType = skill.EvidenceExplicitMention
			} else {
				evidenceType = skill.EvidenceInferredFromContext
			}
		}
		entry := EvidenceEntry{Type: evidenceType, Snippet: c.Snippet, Reliability: c.Confidence}

		key := strings.ToLower(name)
		if i, ok := index[key]; ok {
			agg := &out.Skills[i]
			agg.Evidence = append(agg.Evidence, entry)
			if c.Confidence > agg.Confidence {
				agg.Name = name
				agg.Confidence = c.Confidence
				agg.IsExplicit = explicit
				agg.Category = category
			}
			if c.Proficiency.Ordinal() > agg.Proficiency.Ordinal() {
				agg.Proficiency = c.Proficiency
			}
			if c.YearsExperience > agg.YearsExperience {
				agg.YearsExperience = c.YearsExperience
			}
			continue
		}

		index[key] = len(out.Skills)
		out.Skills = append(out.Skills, AggregatedSkill{
			Name:            name,
			Category:        category,
			Confidence:      c.Confidence,
			Proficiency:     c.Proficiency,
			YearsExperience: c.YearsExperience,
			IsExplicit:      explicit,
			Evidence:        []EvidenceEntry{entry},
		})
	}

	return out
}

// Stats summarizes an aggregation for API responses.
type Stats struct {
	Kept                int
	Explicit            int
	Inferred            int
	HiddenLowConfidence int
	AvgConfidence       float64
}

func (a Aggregation) Stats() Stats {
	st := Stats{Kept: len(a.Skills), HiddenLowConfidence: a.HiddenLowConfidence}
	if len(a.Skills) == 0 {
		return st
	}
	var sum float64
	for _, s := range a.Skills {
		sum += s.Confidence
		if s.IsExplicit {
			st.Explicit++
		} else {
			st.Inferred++
		}
	}
	st.AvgConfidence = sum / float64(len(a.Skills))
	return st
}
