package github

import (
	"sort"
	"strings"

	"skillsense/internal/domain/skill"
)

// Repo is the subset of repository metadata the aggregation consumes.
type Repo struct {
	Name        string
	Description string
	Topics      []string
	Stars       int
	Forks       int
	Languages   map[string]int64
}

type LanguageStat struct {
	Name       string
	Bytes      int64
	Percent    float64
	RepoCount  int
	Confidence float64
}

type ToolSignal struct {
	Name       string
	RepoCount  int
	Confidence float64
}

type SoftSignal struct {
	Name       string
	Confidence float64
	Basis      string
}

type Summary struct {
	TotalBytes  int64
	RepoCount   int
	TotalStars  int
	AvgForks    float64
	Languages   []LanguageStat
	Tools       []ToolSignal
	SoftSignals []SoftSignal
}

// Config holds the heuristic constants. They are tunables, not invariants.
type Config struct {
	LanguagePercentWeight float64
	LanguageRepoWeight    float64
	LanguageRepoNorm      float64
	ToolRepoNorm          float64
	PopularStarsThreshold int
	PopularStarsNorm      float64
	CollabForksThreshold  float64
	CollabForksNorm       float64
	ToolKeywords          []string
}

func DefaultConfig() Config {
	return Config{
		LanguagePercentWeight: 0.7,
		LanguageRepoWeight:    0.3,
		LanguageRepoNorm:      30,
		ToolRepoNorm:          5,
		PopularStarsThreshold: 50,
		PopularStarsNorm:      200,
		CollabForksThreshold:  2,
		CollabForksNorm:       10,
		ToolKeywords: []string{
			"docker", "kubernetes", "terraform", "react", "vue", "django",
			"rails", "spring", "postgres", "redis", "kafka", "graphql", "grpc",
		},
	}
}

// Aggregate sums per-language byte counts across repositories and derives
// heuristic skill signals.
//
// language confidence = min(w1*percent + w2*(repoCount/norm), 1)
// tool confidence     = min(reposWithEvidence/norm, 1)
func Aggregate(repos []Repo, cfg Config) Summary {
	sum := Summary{RepoCount: len(repos)}

	langBytes := make(map[string]int64)
	langRepos := make(map[string]int)
	toolRepos := make(map[string]int)

	var totalForks int
	for _, r := range repos {
		sum.TotalStars += r.Stars
		totalForks += r.Forks

		for lang, b := range r.Languages {
			if b <= 0 {
				continue
			}
			langBytes[lang] += b
			langRepos[lang]++
			sum.TotalBytes += b
		}

		haystack := strings.ToLower(r.Name + " " + r.Description + " " + strings.Join(r.Topics, " "))
		for _, kw := range cfg.ToolKeywords {
			if strings.Contains(haystack, kw) {
				toolRepos[kw]++
			}
		}
	}
	if len(repos) > 0 {
		sum.AvgForks = float64(totalForks) / float64(len(repos))
	}

	for lang, b := range langBytes {
		pct := 0.0
		if sum.TotalBytes > 0 {
			pct = float64(b) / float64(sum.TotalBytes)
		}
		conf := cfg.LanguagePercentWeight*pct + cfg.LanguageRepoWeight*(float64(langRepos[lang])/cfg.LanguageRepoNorm)
		if conf > 1 {
			conf = 1
		}
		sum.Languages = append(sum.Languages, LanguageStat{
			Name:       lang,
			Bytes:      b,
			Percent:    pct,
			RepoCount:  langRepos[lang],
			Confidence: conf,
		})
	}
	sort.Slice(sum.Languages, func(i, j int) bool {
		if sum.Languages[i].Bytes != sum.Languages[j].Bytes {
			return sum.Languages[i].Bytes > sum.Languages[j].Bytes
		}
		return sum.Languages[i].Name < sum.Languages[j].Name
	})

	for kw, n := range toolRepos {
		conf := float64(n) / cfg.ToolRepoNorm
		if conf > 1 {
			conf = 1
		}
		sum.Tools = append(sum.Tools, ToolSignal{Name: kw, RepoCount: n, Confidence: conf})
	}
	sort.Slice(sum.Tools, func(i, j int) bool {
		if sum.Tools[i].RepoCount != sum.Tools[j].RepoCount {
			return sum.Tools[i].RepoCount > sum.Tools[j].RepoCount
		}
		return sum.Tools[i].Name < sum.Tools[j].Name
	})

	if sum.TotalStars >= cfg.PopularStarsThreshold && cfg.PopularStarsNorm > 0 {
		conf := float64(sum.TotalStars) / cfg.PopularStarsNorm
		if conf > 1 {
			conf = 1
		}
		sum.SoftSignals = append(sum.SoftSignals, SoftSignal{Name: "Popular Projects", Confidence: conf, Basis: "total stars"})
	}
	if sum.AvgForks >= cfg.CollabForksThreshold && cfg.CollabForksNorm > 0 {
		conf := sum.AvgForks / cfg.CollabForksNorm
		if conf > 1 {
			conf = 1
		}
		sum.SoftSignals = append(sum.SoftSignals, SoftSignal{Name: "Collaboration", Confidence: conf, Basis: "average forks"})
	}

	return sum
}

// Candidates converts a summary into extractor-style candidates so GitHub
// signals flow through the same aggregation pipeline as document text.
func (s Summary) Candidates() []CandidateSignal {
	out := make([]CandidateSignal, 0, len(s.Languages)+len(s.Tools)+len(s.SoftSignals))
	for _, l := range s.Languages {
		out = append(out, CandidateSignal{
			Name:       l.Name,
			Category:   skill.CategoryTechnical,
			Confidence: l.Confidence,
			Evidence:   "language usage across repositories",
		})
	}
	for _, t := range s.Tools {
		out = append(out, CandidateSignal{
			Name:       t.Name,
			Category:   skill.CategoryTools,
			Confidence: t.Confidence,
			Evidence:   "repository descriptions and topics",
		})
	}
	for _, ss := range s.SoftSignals {
		out = append(out, CandidateSignal{
			Name:       ss.Name,
			Category:   skill.CategorySoftSkills,
			Confidence: ss.Confidence,
			Evidence:   ss.Basis,
		})
	}
	return out
}

type CandidateSignal struct {
	Name       string
	Category   skill.Category
	Confidence float64
	Evidence   string
}
