package extraction

import (
	"strings"

	"skillsense/internal/domain/skill"
)

// KeywordCategory is one row of the injected keyword -> category table.
type KeywordCategory struct {
	Keyword  string
	Category skill.Category
}

// Categorizer classifies skill names that arrive without a category. The
// table is data-driven (seeded in the database) so it can be extended
// without code changes.
type Categorizer struct {
	byKeyword map[string]skill.Category
}

func NewCategorizer(entries []KeywordCategory) *Categorizer {
	m := make(map[string]skill.Category, len(entries))
	for _, e := range entries {
		k := strings.ToLower(strings.TrimSpace(e.Keyword))
		if k == "" {
			continue
		}
		m[k] = e.Category
	}
	return &Categorizer{byKeyword: m}
}

// Categorize returns the category for a skill name, defaulting to technical
// when no keyword matches.
func (c *Categorizer) Categorize(name string) skill.Category {
	if c == nil {
		return skill.CategoryTechnical
	}
	key := strings.ToLower(strings.TrimSpace(name))
	if cat, ok := c.byKeyword[key]; ok {
		return cat
	}
	return skill.CategoryTechnical
}

// DefaultKeywords is the fallback table used when the seeded lookup is
// unavailable (tests, fresh databases).
func DefaultKeywords() []KeywordCategory {
	languages := []string{
		"go", "golang", "python", "java", "javascript", "typescript", "c", "c++",
		"c#", "rust", "ruby", "php", "kotlin", "swift", "scala", "sql", "html", "css",
	}
	tools := []string{
		"docker", "kubernetes", "git", "jenkins", "terraform", "ansible", "jira",
		"figma", "postman", "grafana", "prometheus", "excel", "tableau",
	}
	softSkills := []string{
		"communication", "leadership", "teamwork", "collaboration", "mentoring",
		"problem solving", "time management", "public speaking", "negotiation",
	}
	domains := []string{
		"fintech", "healthcare", "e-commerce", "logistics", "accounting",
		"project management", "data analysis", "machine learning", "devops",
	}

	out := make([]KeywordCategory, 0, len(languages)+len(tools)+len(softSkills)+len(domains))
	for _, k := range languages {
		out = append(out, KeywordCategory{Keyword: k, Category: skill.CategoryTechnical})
	}
	for _, k := range tools {
		out = append(out, KeywordCategory{Keyword: k, Category: skill.CategoryTools})
	}
	for _, k := range softSkills {
		out = append(out, KeywordCategory{Keyword: k, Category: skill.CategorySoftSkills})
	}
	for _, k := range domains {
		out = append(out, KeywordCategory{Keyword: k, Category: skill.CategoryDomain})
	}
	return out
}
