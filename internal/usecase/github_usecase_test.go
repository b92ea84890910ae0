package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"skillsense/internal/domain/github"
	"skillsense/internal/domain/skill"
	"skillsense/internal/githubclient"

	"github.com/google/uuid"
)

type fakeFetcher struct {
	profile githubclient.Profile
	err     error
}

func (f fakeFetcher) FetchProfile(context.Context, string) (githubclient.Profile, error) {
	return f.profile, f.err
}

func TestGitHubAnalyze_AggregatesLanguages(t *testing.T) {
	fetcher := fakeFetcher{profile: githubclient.Profile{
		User: githubclient.User{Login: "octocat"},
		Repos: []github.Repo{
			{Name: "svc", Languages: map[string]int64{"Go": 1000, "Python": 200}},
			{Name: "tool", Languages: map[string]int64{"Go": 800}},
		},
	}}

	uc := NewGitHubUsecase(fetcher, newMockSkillRepo(), github.DefaultConfig(), testLogger())
	res, err := uc.Analyze(context.Background(), uuid.New(), "octocat", false)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Username != "octocat" {
		t.Fatalf("unexpected username %q", res.Username)
	}
	if len(res.Summary.Languages) != 2 {
		t.Fatalf("expected 2 languages, got %d", len(res.Summary.Languages))
	}
	if res.Summary.Languages[0].Name != "Go" {
		t.Fatalf("expected Go to rank first, got %s", res.Summary.Languages[0].Name)
	}
	if len(res.Persisted) != 0 {
		t.Fatalf("persist=false should not write skills")
	}
}

func TestGitHubAnalyze_PersistsHighConfidenceSignals(t *testing.T) {
	fetcher := fakeFetcher{profile: githubclient.Profile{
		User: githubclient.User{Login: "octocat"},
		Repos: []github.Repo{
			{Name: "api", Languages: map[string]int64{"Go": 10000}},
		},
	}}
	skills := newMockSkillRepo()

	uc := NewGitHubUsecase(fetcher, skills, github.DefaultConfig(), testLogger())
	userID := uuid.New()
	res, err := uc.Analyze(context.Background(), userID, "octocat", true)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.Persisted) == 0 {
		t.Fatalf("expected persisted skills")
	}
	for _, ev := range skills.evidence {
		if ev.Type != skill.EvidenceCodeRepository {
			t.Fatalf("expected code_repository evidence, got %s", ev.Type)
		}
	}
}

func TestGitHubAnalyze_MapsClientErrors(t *testing.T) {
	uc := NewGitHubUsecase(fakeFetcher{err: githubclient.ErrUserNotFound}, newMockSkillRepo(), github.DefaultConfig(), testLogger())
	if _, err := uc.Analyze(context.Background(), uuid.New(), "ghost", false); !errors.Is(err, ErrGitHubUserNotFound) {
		t.Fatalf("expected ErrGitHubUserNotFound, got %v", err)
	}

	uc = NewGitHubUsecase(fakeFetcher{err: &githubclient.RateLimitError{}}, newMockSkillRepo(), github.DefaultConfig(), testLogger())
	if _, err := uc.Analyze(context.Background(), uuid.New(), "octocat", false); !errors.Is(err, ErrGitHubRateLimited) {
		t.Fatalf("expected ErrGitHubRateLimited, got %v", err)
	}
}

func TestGitHubAnalyze_RateLimitKeepsResetTime(t *testing.T) {
	reset := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fetcher := fakeFetcher{err: &githubclient.RateLimitError{ResetAt: reset}}

	uc := NewGitHubUsecase(fetcher, newMockSkillRepo(), github.DefaultConfig(), testLogger())
	_, err := uc.Analyze(context.Background(), uuid.New(), "octocat", false)
	if !errors.Is(err, ErrGitHubRateLimited) {
		t.Fatalf("expected ErrGitHubRateLimited, got %v", err)
	}

	var rle *githubclient.RateLimitError
	if !errors.As(err, &rle) {
		t.Fatalf("reset time not recoverable from %v", err)
	}
	if !rle.ResetAt.Equal(reset) {
		t.Fatalf("expected reset at %s, got %s", reset, rle.ResetAt)
	}
}
