package matching

import (
	"math"
	"sort"
	"strings"

	"skillsense/internal/domain/skill"
)

type UserSkill struct {
	Name       string
	Level      skill.Level
	Confidence float64
}

type RequiredSkill struct {
	Name          string
	RequiredLevel skill.Level
	Critical      bool
}

// Verdict is the per-requirement outcome. Exactly one verdict is emitted per
// required skill: into Matched when a user skill was found (matched or not at
// level), into Missing when none was.
type Verdict struct {
	SkillName       string
	RequiredLevel   skill.Level
	IsMatched       bool
	IsCritical      bool
	UserSkillName   string
	UserProficiency skill.Level
	UserConfidence  float64
}

type Report struct {
	MatchScore int
	Matched    []Verdict
	Missing    []Verdict
}

// Score compares a user's skill set against a job's required skills.
//
// Matching is case-insensitive exact or substring containment in either
// direction. That admits over-matches ("Java" against "JavaScript") and has
// no synonym table ("JS" never matches "JavaScript"); compatible behavior,
// kept deliberately.
//
// MatchScore = round(100 * metLevel / len(required)), 0 when required is
// empty. Missing critical entries sort first.
func Score(userSkills []UserSkill, required []RequiredSkill) Report {
	matched := make([]Verdict, 0, len(required))
	missing := make([]Verdict, 0)

	met := 0
	for _, r := range required {
		us, ok := findUserSkill(userSkills, r.Name)
		if !ok {
			missing = append(missing, Verdict{
				SkillName:     r.Name,
				RequiredLevel: r.RequiredLevel,
				IsMatched:     false,
				IsCritical:    r.Critical,
			})
			continue
		}

		meetsLevel := us.Level.Meets(r.RequiredLevel)
		if meetsLevel {
			met++
		}
		matched = append(matched, Verdict{
			SkillName:       r.Name,
			RequiredLevel:   r.RequiredLevel,
			IsMatched:       meetsLevel,
			IsCritical:      r.Critical,
			UserSkillName:   us.Name,
			UserProficiency: us.Level,
			UserConfidence:  us.Confidence,
		})
	}

	score := 0
	if len(required) > 0 {
		score = int(math.Round(100 * float64(met) / float64(len(required))))
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	sort.SliceStable(missing, func(i, j int) bool {
		return missing[i].IsCritical && !missing[j].IsCritical
	})

	return Report{MatchScore: score, Matched: matched, Missing: missing}
}

func findUserSkill(userSkills []UserSkill, name string) (UserSkill, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" {
		return UserSkill{}, false
	}
	for _, us := range userSkills {
		have := strings.ToLower(strings.TrimSpace(us.Name))
		if have == "" {
			continue
		}
		if have == want || strings.Contains(have, want) || strings.Contains(want, have) {
			return us, true
		}
	}
	return UserSkill{}, false
}
