package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"skillsense/internal/domain/extraction"
	"skillsense/internal/domain/github"
	"skillsense/internal/domain/skill"
	"skillsense/internal/githubclient"
	"skillsense/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrGitHubUserNotFound = errors.New("github user not found")
	ErrGitHubRateLimited  = errors.New("github rate limit exceeded")
)

type GitHubProfileFetcher interface {
	FetchProfile(ctx context.Context, username string) (githubclient.Profile, error)
}

type GitHubAnalysis struct {
	Username string
	Summary  github.Summary
	// Persisted lists the skills written to the profile when persistence
	// was requested.
	Persisted []skill.Skill
}

type GitHubUsecase interface {
	Analyze(ctx context.Context, userID uuid.UUID, username string, persist bool) (GitHubAnalysis, error)
}

type GitHub struct {
	fetcher GitHubProfileFetcher
	skills  repository.SkillRepository
	cfg     github.Config
	logger  *log.Logger
}

func NewGitHubUsecase(fetcher GitHubProfileFetcher, skills repository.SkillRepository, cfg github.Config, logger *log.Logger) *GitHub {
	return &GitHub{fetcher: fetcher, skills: skills, cfg: cfg, logger: logger}
}

// Analyze fetches a public GitHub profile, aggregates language and tool
// signals, and optionally persists them as code_repository-evidenced skills
// on the calling user's profile.
func (u *GitHub) Analyze(ctx context.Context, userID uuid.UUID, username string, persist bool) (GitHubAnalysis, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return GitHubAnalysis{}, ErrInvalidInput
	}

	profile, err := u.fetcher.FetchProfile(ctx, username)
	if err != nil {
		var rle *githubclient.RateLimitError
		switch {
		case errors.Is(err, githubclient.ErrUserNotFound):
			return GitHubAnalysis{}, ErrGitHubUserNotFound
		case errors.As(err, &rle):
			// Keep the reset time reachable via errors.As for the handler.
			return GitHubAnalysis{}, fmt.Errorf("%w: %w", ErrGitHubRateLimited, rle)
		default:
			u.logger.Printf("github fetch failed for %s: %v", username, err)
			return GitHubAnalysis{}, ErrInternal
		}
	}

	summary := github.Aggregate(profile.Repos, u.cfg)
	analysis := GitHubAnalysis{Username: profile.User.Login, Summary: summary}
	if analysis.Username == "" {
		analysis.Username = username
	}

	if persist && userID != uuid.Nil {
		persisted, err := u.persistSignals(ctx, userID, summary)
		if err != nil {
			u.logger.Printf("github persist failed for %s: %v", username, err)
			return GitHubAnalysis{}, ErrInternal
		}
		analysis.Persisted = persisted
	}

	return analysis, nil
}

func (u *GitHub) persistSignals(ctx context.Context, userID uuid.UUID, summary github.Summary) ([]skill.Skill, error) {
	var out []skill.Skill
	for _, c := range summary.Candidates() {
		if c.Confidence < extraction.MinConfidence {
			continue
		}
		stored, err := u.skills.Upsert(ctx, skill.Skill{
			UserID:          userID,
			Name:            c.Name,
			Category:        c.Category,
			ConfidenceScore: c.Confidence,
			IsExplicit:      false,
		})
		if err != nil {
			return nil, err
		}
		err = u.skills.AddEvidence(ctx, skill.Evidence{
			SkillID:     stored.ID,
			Type:        skill.EvidenceCodeRepository,
			Snippet:     c.Evidence,
			Reliability: c.Confidence,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, stored)
	}
	return out, nil
}
