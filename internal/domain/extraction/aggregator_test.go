package extraction

import (
	"testing"

	"skillsense/internal/domain/skill"
)

func defaultCategorizer() *Categorizer {
	return NewCategorizer(DefaultKeywords())
}

func TestAggregate_ConfidenceBoundary(t *testing.T) {
	agg := Aggregate([]Candidate{
		{Name: "Go", Confidence: 0.49},
		{Name: "Python", Confidence: 0.50},
	}, defaultCategorizer())

	if len(agg.Skills) != 1 {
		t.Fatalf("expected 1 kept skill, got %d", len(agg.Skills))
	}
	if agg.Skills[0].Name != "Python" {
		t.Fatalf("expected Python kept, got %s", agg.Skills[0].Name)
	}
	if agg.HiddenLowConfidence != 1 {
		t.Fatalf("expected 1 hidden low-confidence candidate, got %d", agg.HiddenLowConfidence)
	}
}

func TestAggregate_ExplicitnessBoundary(t *testing.T) {
	agg := Aggregate([]Candidate{
		{Name: "Go", Confidence: 0.70},
		{Name: "Python", Confidence: 0.69},
	}, defaultCategorizer())

	if len(agg.Skills) != 2 {
		t.Fatalf("expected 2 skills, got %d", len(agg.Skills))
	}
	byName := map[string]AggregatedSkill{}
	for _, s := range agg.Skills {
		byName[s.Name] = s
	}
	if !byName["Go"].IsExplicit {
		t.Fatalf("confidence 0.70 must derive explicit=true")
	}
	if byName["Python"].IsExplicit {
		t.Fatalf("confidence 0.69 must derive explicit=false")
	}
}

func TestAggregate_ExtractorSuppliedExplicitWins(t *testing.T) {
	agg := Aggregate([]Candidate{
		{Name: "Go", Confidence: 0.95, Explicit: false, ExplicitSet: true},
		{Name: "Python", Confidence: 0.55, Explicit: true, ExplicitSet: true},
	}, defaultCategorizer())

	byName := map[string]AggregatedSkill{}
	for _, s := range agg.Skills {
		byName[s.Name] = s
	}
	if byName["Go"].IsExplicit {
		t.Fatalf("extractor-supplied explicit=false must override the threshold")
	}
	if !byName["Python"].IsExplicit {
		t.Fatalf("extractor-supplied explicit=true must override the threshold")
	}
}

func TestAggregate_CategorizationFallback(t *testing.T) {
	agg := Aggregate([]Candidate{
		{Name: "Docker", Confidence: 0.8},
		{Name: "Leadership", Confidence: 0.8},
		{Name: "Fintech", Confidence: 0.8},
		{Name: "Something Unheard Of", Confidence: 0.8},
		{Name: "Kafka", Confidence: 0.8, Category: skill.CategoryTools},
	}, defaultCategorizer())

	byName := map[string]skill.Category{}
	for _, s := range agg.Skills {
		byName[s.Name] = s.Category
	}
	if byName["Docker"] != skill.CategoryTools {
		t.Fatalf("Docker: got %s", byName["Docker"])
	}
	if byName["Leadership"] != skill.CategorySoftSkills {
		t.Fatalf("Leadership: got %s", byName["Leadership"])
	}
	if byName["Fintech"] != skill.CategoryDomain {
		t.Fatalf("Fintech: got %s", byName["Fintech"])
	}
	if byName["Something Unheard Of"] != skill.CategoryTechnical {
		t.Fatalf("unknown names default to technical, got %s", byName["Something Unheard Of"])
	}
	if byName["Kafka"] != skill.CategoryTools {
		t.Fatalf("extractor-supplied category must be kept, got %s", byName["Kafka"])
	}
}

func TestAggregate_DedupeMergesEvidence(t *testing.T) {
	agg := Aggregate([]Candidate{
		{Name: "Go", Confidence: 0.6, Snippet: "built services in Go"},
		{Name: "go", Confidence: 0.9, Snippet: "Go listed in skills section"},
		{Name: "GO", Confidence: 0.7, Snippet: "Go side projects"},
	}, defaultCategorizer())

	if len(agg.Skills) != 1 {
		t.Fatalf("expected case-insensitive dedupe to 1 skill, got %d", len(agg.Skills))
	}
	s := agg.Skills[0]
	if s.Confidence != 0.9 {
		t.Fatalf("highest confidence must win, got %f", s.Confidence)
	}
	if len(s.Evidence) != 3 {
		t.Fatalf("evidence must accumulate, got %d entries", len(s.Evidence))
	}
	if !s.IsExplicit {
		t.Fatalf("winning confidence 0.9 must derive explicit=true")
	}
}

func TestAggregate_EveryKeptSkillHasEvidence(t *testing.T) {
	agg := Aggregate([]Candidate{
		{Name: "Go", Confidence: 0.8, Snippet: "Go services"},
		{Name: "Teamwork", Confidence: 0.5},
	}, defaultCategorizer())

	for _, s := range agg.Skills {
		if len(s.Evidence) == 0 {
			t.Fatalf("skill %s persisted without evidence", s.Name)
		}
		for _, e := range s.Evidence {
			if e.Reliability < MinConfidence {
				t.Fatalf("evidence reliability below threshold: %f", e.Reliability)
			}
		}
	}
}

func TestAggregate_EvidenceTypeDefaults(t *testing.T) {
	agg := Aggregate([]Candidate{
		{Name: "Go", Confidence: 0.9},
		{Name: "Teamwork", Confidence: 0.55},
		{Name: "Docker", Confidence: 0.6, EvidenceType: skill.EvidenceToolUsage},
	}, defaultCategorizer())

	byName := map[string]AggregatedSkill{}
	for _, s := range agg.Skills {
		byName[s.Name] = s
	}
	if byName["Go"].Evidence[0].Type != skill.EvidenceExplicitMention {
		t.Fatalf("explicit skill should default to explicit_mention")
	}
	if byName["Teamwork"].Evidence[0].Type != skill.EvidenceInferredFromContext {
		t.Fatalf("inferred skill should default to inferred_from_context")
	}
	if byName["Docker"].Evidence[0].Type != skill.EvidenceToolUsage {
		t.Fatalf("supplied evidence type must be kept")
	}
}

func TestStats(t *testing.T) {
	agg := Aggregate([]Candidate{
		{Name: "Go", Confidence: 0.9},
		{Name: "Python", Confidence: 0.5},
		{Name: "Noise", Confidence: 0.2},
	}, defaultCategorizer())

	st := agg.Stats()
	if st.Kept != 2 || st.HiddenLowConfidence != 1 {
		t.Fatalf("unexpected stats: %+v", st)
	}
	if st.Explicit != 1 || st.Inferred != 1 {
		t.Fatalf("unexpected explicit split: %+v", st)
	}
	if st.AvgConfidence != 0.7 {
		t.Fatalf("expected avg 0.7, got %f", st.AvgConfidence)
	}
}
