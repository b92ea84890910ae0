package extractor

import (
	"context"
	"errors"

	"skillsense/internal/domain/extraction"
	"skillsense/internal/domain/matching"
)

var (
	ErrEmptyInput    = errors.New("empty input text")
	ErrEmptyResponse = errors.New("empty model response")
	ErrBadResponse   = errors.New("malformed model response")
)

// EnhanceAction selects the enhance-cv behavior: analyze returns
// suggestions, enhance returns a rewritten resume.
type EnhanceAction string

const (
	ActionAnalyze EnhanceAction = "analyze"
	ActionEnhance EnhanceAction = "enhance"
)

type Suggestion struct {
	Section string `json:"section"`
	Issue   string `json:"issue"`
	Advice  string `json:"advice"`
}

type EnhanceResult struct {
	Suggestions []Suggestion
	RewrittenCV string
}

// Extractor is the injected LLM capability. Keeping it behind an interface
// lets the aggregation and matching logic run against fixture candidates in
// tests instead of a live gateway.
type Extractor interface {
	ExtractSkills(ctx context.Context, text string) ([]extraction.Candidate, error)
	ExtractJobRequirements(ctx context.Context, description string) ([]matching.RequiredSkill, error)
	EnhanceResume(ctx context.Context, text string, action EnhanceAction) (EnhanceResult, error)
}
