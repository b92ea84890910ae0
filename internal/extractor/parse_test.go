package extractor

import (
	"errors"
	"testing"

	"skillsense/internal/domain/skill"
)

func TestParseCandidates_FencedJSON(t *testing.T) {
	raw := "```json\n" + `[
		{"name": "Go", "category": "technical", "confidence": 0.9, "proficiency_level": "advanced", "years_experience": 5, "evidence": "5 years of Go"},
		{"name": "Leadership", "category": "soft_skills", "confidence": 0.6, "proficiency_level": "intermediate"}
	]` + "\n```"

	cands, err := parseCandidates(raw, false)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(cands))
	}
	if cands[0].Name != "Go" || cands[0].Category != skill.CategoryTechnical {
		t.Fatalf("unexpected first candidate: %+v", cands[0])
	}
	if cands[0].Proficiency != skill.LevelAdvanced || cands[0].YearsExperience != 5 {
		t.Fatalf("unexpected first candidate: %+v", cands[0])
	}
	if cands[0].ExplicitSet {
		t.Fatalf("candidate without is_explicit must not carry the flag")
	}
}

func TestParseCandidates_ExplicitFlag(t *testing.T) {
	raw := `[{"name": "Go", "confidence": 0.4, "is_explicit": true}]`

	cands, err := parseCandidates(raw, false)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !cands[0].ExplicitSet || !cands[0].Explicit {
		t.Fatalf("is_explicit must be honored: %+v", cands[0])
	}

	cands, err = parseCandidates(raw, true)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cands[0].ExplicitSet {
		t.Fatalf("deriveExplicit must drop the supplied flag: %+v", cands[0])
	}
}

func TestParseCandidates_SurroundingProse(t *testing.T) {
	raw := `Here are the skills I found:
[{"name": "Python", "confidence": 0.8}]
Let me know if you need more.`

	cands, err := parseCandidates(raw, false)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(cands) != 1 || cands[0].Name != "Python" {
		t.Fatalf("unexpected candidates: %+v", cands)
	}
}

func TestParseCandidates_ClampsConfidence(t *testing.T) {
	raw := `[{"name": "Go", "confidence": 1.4}, {"name": "Rust", "confidence": -0.2}]`
	cands, err := parseCandidates(raw, false)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cands[0].Confidence != 1 || cands[1].Confidence != 0 {
		t.Fatalf("confidence must clamp to [0,1]: %+v", cands)
	}
}

func TestParseCandidates_SkipsNameless(t *testing.T) {
	raw := `[{"name": "  ", "confidence": 0.9}, {"name": "Go", "confidence": 0.9}]`
	cands, err := parseCandidates(raw, false)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(cands) != 1 {
		t.Fatalf("expected nameless candidate skipped, got %d", len(cands))
	}
}

func TestParseCandidates_Malformed(t *testing.T) {
	_, err := parseCandidates(`{"not": "an array"}`, false)
	if !errors.Is(err, ErrBadResponse) {
		t.Fatalf("expected ErrBadResponse, got %v", err)
	}
}

func TestParseRequiredSkills(t *testing.T) {
	raw := `[
		{"name": "Go", "required_level": "advanced", "importance": "required"},
		{"name": "Docker", "required_level": "intermediate", "importance": "preferred"},
		{"name": "Mystery", "required_level": "telepathic", "importance": "unknown"}
	]`

	reqs, err := parseRequiredSkills(raw)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(reqs) != 3 {
		t.Fatalf("expected 3 requirements, got %d", len(reqs))
	}
	if !reqs[0].Critical || reqs[0].RequiredLevel != skill.LevelAdvanced {
		t.Fatalf("required importance must be critical: %+v", reqs[0])
	}
	if reqs[1].Critical {
		t.Fatalf("preferred importance must not be critical")
	}
	if reqs[2].RequiredLevel != skill.LevelIntermediate {
		t.Fatalf("unknown level must default to intermediate, got %s", reqs[2].RequiredLevel)
	}
}

func TestParseEnhance_Analyze(t *testing.T) {
	raw := "```json\n" + `{"suggestions": [{"section": "Experience", "issue": "vague", "advice": "quantify impact"}], "rewritten_cv": ""}` + "\n```"
	res, err := parseEnhance(raw, ActionAnalyze)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.Suggestions) != 1 || res.Suggestions[0].Section != "Experience" {
		t.Fatalf("unexpected suggestions: %+v", res.Suggestions)
	}
}

func TestParseEnhance_EnhanceRequiresRewrite(t *testing.T) {
	_, err := parseEnhance(`{"suggestions": [], "rewritten_cv": ""}`, ActionEnhance)
	if !errors.Is(err, ErrBadResponse) {
		t.Fatalf("expected ErrBadResponse for empty rewrite, got %v", err)
	}

	res, err := parseEnhance(`{"rewritten_cv": "Better resume."}`, ActionEnhance)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.RewrittenCV != "Better resume." {
		t.Fatalf("unexpected rewrite: %q", res.RewrittenCV)
	}
}
