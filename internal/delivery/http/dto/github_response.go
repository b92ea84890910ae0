package dto

import "skillsense/internal/domain/github"

type LanguageStatResponse struct {
	Name       string  `json:"name"`
	Bytes      int64   `json:"bytes"`
	Percent    float64 `json:"percent"`
	RepoCount  int     `json:"repo_count"`
	Confidence float64 `json:"confidence"`
}

type ToolSignalResponse struct {
	Name       string  `json:"name"`
	RepoCount  int     `json:"repo_count"`
	Confidence float64 `json:"confidence"`
}

type SoftSignalResponse struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	Basis      string  `json:"basis"`
}

type GitHubAnalysisResponse struct {
	Username    string                 `json:"username"`
	RepoCount   int                    `json:"repo_count"`
	TotalStars  int                    `json:"total_stars"`
	Languages   []LanguageStatResponse `json:"languages"`
	Tools       []ToolSignalResponse   `json:"tools"`
	SoftSignals []SoftSignalResponse   `json:"soft_signals"`
	Persisted   []SkillResponse        `json:"persisted_skills,omitempty"`
}

func FromGitHubSummary(username string, s github.Summary) GitHubAnalysisResponse {
	out := GitHubAnalysisResponse{
		Username:   username,
		RepoCount:  s.RepoCount,
		TotalStars: s.TotalStars,
	}
	for _, l := range s.Languages {
		out.Languages = append(out.Languages, LanguageStatResponse{
			Name: l.Name, Bytes: l.Bytes, Percent: l.Percent, RepoCount: l.RepoCount, Confidence: l.Confidence,
		})
	}
	for _, t := range s.Tools {
		out.Tools = append(out.Tools, ToolSignalResponse{Name: t.Name, RepoCount: t.RepoCount, Confidence: t.Confidence})
	}
	for _, ss := range s.SoftSignals {
		out.SoftSignals = append(out.SoftSignals, SoftSignalResponse{Name: ss.Name, Confidence: ss.Confidence, Basis: ss.Basis})
	}
	return out
}
