package matching

import (
	"testing"

	"skillsense/internal/domain/skill"
)

func TestScore_LevelOrderingIsTotal(t *testing.T) {
	levels := []skill.Level{skill.LevelBeginner, skill.LevelIntermediate, skill.LevelAdvanced, skill.LevelExpert}

	for _, userLevel := range levels {
		for _, reqLevel := range levels {
			rep := Score(
				[]UserSkill{{Name: "Go", Level: userLevel, Confidence: 0.9}},
				[]RequiredSkill{{Name: "Go", RequiredLevel: reqLevel, Critical: true}},
			)
			if len(rep.Matched) != 1 {
				t.Fatalf("user=%s req=%s: expected 1 matched verdict, got %d", userLevel, reqLevel, len(rep.Matched))
			}
			wantMet := userLevel.Ordinal() >= reqLevel.Ordinal()
			if rep.Matched[0].IsMatched != wantMet {
				t.Fatalf("user=%s req=%s: IsMatched=%v, want %v", userLevel, reqLevel, rep.Matched[0].IsMatched, wantMet)
			}
		}
	}
}

func TestScore_EmptyRequiredIsZero(t *testing.T) {
	rep := Score([]UserSkill{{Name: "Go", Level: skill.LevelExpert}}, nil)
	if rep.MatchScore != 0 {
		t.Fatalf("expected score 0, got %d", rep.MatchScore)
	}
	if len(rep.Matched) != 0 || len(rep.Missing) != 0 {
		t.Fatalf("expected empty verdict lists")
	}
}

func TestScore_FullMatchIsHundred(t *testing.T) {
	rep := Score(
		[]UserSkill{
			{Name: "Go", Level: skill.LevelExpert},
			{Name: "PostgreSQL", Level: skill.LevelAdvanced},
		},
		[]RequiredSkill{
			{Name: "Go", RequiredLevel: skill.LevelAdvanced},
			{Name: "PostgreSQL", RequiredLevel: skill.LevelAdvanced},
		},
	)
	if rep.MatchScore != 100 {
		t.Fatalf("expected score 100, got %d", rep.MatchScore)
	}
}

func TestScore_ReactScenario(t *testing.T) {
	rep := Score(
		[]UserSkill{{Name: "React", Level: skill.LevelAdvanced, Confidence: 0.8}},
		[]RequiredSkill{{Name: "React", RequiredLevel: skill.LevelIntermediate, Critical: true}},
	)
	if len(rep.Matched) != 1 {
		t.Fatalf("expected 1 matched record, got %d", len(rep.Matched))
	}
	if !rep.Matched[0].IsMatched {
		t.Fatalf("expected IsMatched=true")
	}
	if rep.MatchScore != 100 {
		t.Fatalf("expected score 100, got %d", rep.MatchScore)
	}
}

func TestScore_NoUserSkills(t *testing.T) {
	rep := Score(nil, []RequiredSkill{{Name: "Python", RequiredLevel: skill.LevelBeginner, Critical: true}})
	if len(rep.Missing) != 1 {
		t.Fatalf("expected 1 missing record, got %d", len(rep.Missing))
	}
	if rep.Missing[0].IsMatched {
		t.Fatalf("missing record must have IsMatched=false")
	}
	if !rep.Missing[0].IsCritical {
		t.Fatalf("expected critical missing record")
	}
	if rep.MatchScore != 0 {
		t.Fatalf("expected score 0, got %d", rep.MatchScore)
	}
}

func TestScore_EveryRequirementAppearsExactlyOnce(t *testing.T) {
	required := []RequiredSkill{
		{Name: "Go", RequiredLevel: skill.LevelAdvanced, Critical: true},
		{Name: "Kubernetes", RequiredLevel: skill.LevelIntermediate},
		{Name: "Terraform", RequiredLevel: skill.LevelBeginner, Critical: true},
		{Name: "Communication", RequiredLevel: skill.LevelIntermediate},
	}
	rep := Score([]UserSkill{
		{Name: "Go", Level: skill.LevelIntermediate},
		{Name: "Communication", Level: skill.LevelExpert},
	}, required)

	if got := len(rep.Matched) + len(rep.Missing); got != len(required) {
		t.Fatalf("expected %d verdicts total, got %d", len(required), got)
	}

	seen := map[string]int{}
	for _, v := range rep.Matched {
		seen[v.SkillName]++
	}
	for _, v := range rep.Missing {
		seen[v.SkillName]++
	}
	for _, r := range required {
		if seen[r.Name] != 1 {
			t.Fatalf("requirement %q appeared %d times", r.Name, seen[r.Name])
		}
	}
}

func TestScore_BelowLevelCountsAsUnmatched(t *testing.T) {
	rep := Score(
		[]UserSkill{{Name: "Go", Level: skill.LevelBeginner}},
		[]RequiredSkill{{Name: "Go", RequiredLevel: skill.LevelExpert}},
	)
	if len(rep.Matched) != 1 {
		t.Fatalf("expected found-below-level skill in matched list")
	}
	if rep.Matched[0].IsMatched {
		t.Fatalf("below-level skill must not be matched")
	}
	if rep.MatchScore != 0 {
		t.Fatalf("expected score 0, got %d", rep.MatchScore)
	}
}

func TestScore_SubstringContainmentBothDirections(t *testing.T) {
	// "Java" is contained in "JavaScript"; the loose rule accepts it.
	rep := Score(
		[]UserSkill{{Name: "JavaScript", Level: skill.LevelAdvanced}},
		[]RequiredSkill{{Name: "Java", RequiredLevel: skill.LevelIntermediate}},
	)
	if len(rep.Matched) != 1 || !rep.Matched[0].IsMatched {
		t.Fatalf("expected containment over-match to count")
	}

	rep = Score(
		[]UserSkill{{Name: "SQL", Level: skill.LevelAdvanced}},
		[]RequiredSkill{{Name: "PostgreSQL", RequiredLevel: skill.LevelIntermediate}},
	)
	if len(rep.Matched) != 1 {
		t.Fatalf("expected reverse containment to match")
	}
}

func TestScore_MissingCriticalSortsFirst(t *testing.T) {
	rep := Score(nil, []RequiredSkill{
		{Name: "Docs", RequiredLevel: skill.LevelBeginner},
		{Name: "Go", RequiredLevel: skill.LevelAdvanced, Critical: true},
		{Name: "Figma", RequiredLevel: skill.LevelBeginner},
		{Name: "SQL", RequiredLevel: skill.LevelIntermediate, Critical: true},
	})
	if len(rep.Missing) != 4 {
		t.Fatalf("expected 4 missing records, got %d", len(rep.Missing))
	}
	if !rep.Missing[0].IsCritical || !rep.Missing[1].IsCritical {
		t.Fatalf("critical gaps must sort first: %+v", rep.Missing)
	}
	if rep.Missing[0].SkillName != "Go" || rep.Missing[1].SkillName != "SQL" {
		t.Fatalf("critical ordering must be stable: %+v", rep.Missing)
	}
}

func TestScore_RoundingIsInteger(t *testing.T) {
	// 1 of 3 met => round(33.33) = 33.
	rep := Score(
		[]UserSkill{{Name: "Go", Level: skill.LevelExpert}},
		[]RequiredSkill{
			{Name: "Go", RequiredLevel: skill.LevelBeginner},
			{Name: "Rust", RequiredLevel: skill.LevelBeginner},
			{Name: "Zig", RequiredLevel: skill.LevelBeginner},
		},
	)
	if rep.MatchScore != 33 {
		t.Fatalf("expected 33, got %d", rep.MatchScore)
	}

	// 2 of 3 met => round(66.67) = 67.
	rep = Score(
		[]UserSkill{
			{Name: "Go", Level: skill.LevelExpert},
			{Name: "Rust", Level: skill.LevelExpert},
		},
		[]RequiredSkill{
			{Name: "Go", RequiredLevel: skill.LevelBeginner},
			{Name: "Rust", RequiredLevel: skill.LevelBeginner},
			{Name: "Zig", RequiredLevel: skill.LevelBeginner},
		},
	)
	if rep.MatchScore != 67 {
		t.Fatalf("expected 67, got %d", rep.MatchScore)
	}
}
