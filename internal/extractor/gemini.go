package extractor

import (
	"context"
	"fmt"
	"strings"

	"skillsense/internal/domain/extraction"
	"skillsense/internal/domain/matching"

	"google.golang.org/genai"
)

// Gemini implements Extractor against the hosted Gemini API. One
// prompt-and-parse round trip per call; no retries, failures surface to the
// caller (re-analyze is a manual re-trigger).
type Gemini struct {
	client *genai.Client
	model  string
	// deriveExplicit ignores the model's is_explicit flag so explicitness is
	// always derived from the confidence threshold.
	deriveExplicit bool
}

func NewGemini(ctx context.Context, apiKey, model string, deriveExplicit bool) (*Gemini, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("empty AI API key")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	if strings.TrimSpace(model) == "" {
		model = "gemini-2.0-flash"
	}
	return &Gemini{client: client, model: model, deriveExplicit: deriveExplicit}, nil
}

func (g *Gemini) ExtractSkills(ctx context.Context, text string) ([]extraction.Candidate, error) {
	raw, err := g.generate(ctx, skillExtractionPrompt(text), text)
	if err != nil {
		return nil, err
	}
	return parseCandidates(raw, g.deriveExplicit)
}

func (g *Gemini) ExtractJobRequirements(ctx context.Context, description string) ([]matching.RequiredSkill, error) {
	raw, err := g.generate(ctx, jobRequirementsPrompt(description), description)
	if err != nil {
		return nil, err
	}
	return parseRequiredSkills(raw)
}

func (g *Gemini) EnhanceResume(ctx context.Context, text string, action EnhanceAction) (EnhanceResult, error) {
	raw, err := g.generate(ctx, enhancePrompt(text, action), text)
	if err != nil {
		return EnhanceResult{}, err
	}
	return parseEnhance(raw, action)
}

func (g *Gemini) generate(ctx context.Context, prompt, input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", ErrEmptyInput
	}

	temp := float32(0.2)
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: &temp,
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	out := resp.Text()
	if strings.TrimSpace(out) == "" {
		return "", ErrEmptyResponse
	}
	return out, nil
}
