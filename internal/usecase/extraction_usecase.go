package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"skillsense/internal/domain/extraction"
	"skillsense/internal/domain/skill"
	"skillsense/internal/extractor"
	"skillsense/internal/repository"

	"github.com/google/uuid"
)

// ExtractionResult carries the aggregated skills for an ad-hoc text
// extraction. Nothing is persisted unless Persist was requested.
type ExtractionResult struct {
	Skills []extraction.AggregatedSkill
	Stats  extraction.Stats
}

type ExtractionUsecase interface {
	ExtractFromText(ctx context.Context, userID uuid.UUID, text string, persist bool) (ExtractionResult, error)
	EnhanceResume(ctx context.Context, text string, action extractor.EnhanceAction) (extractor.EnhanceResult, error)
}

type Extraction struct {
	skills    repository.SkillRepository
	keywords  repository.KeywordRepository
	extractor extractor.Extractor
	logger    *log.Logger
}

func NewExtractionUsecase(skills repository.SkillRepository, keywords repository.KeywordRepository, ext extractor.Extractor, logger *log.Logger) *Extraction {
	return &Extraction{skills: skills, keywords: keywords, extractor: ext, logger: logger}
}

func (u *Extraction) ExtractFromText(ctx context.Context, userID uuid.UUID, text string, persist bool) (ExtractionResult, error) {
	if strings.TrimSpace(text) == "" {
		return ExtractionResult{}, ErrInvalidInput
	}

	candidates, err := u.extractor.ExtractSkills(ctx, text)
	if err != nil {
		if errors.Is(err, extractor.ErrEmptyInput) {
			return ExtractionResult{}, ErrInvalidInput
		}
		u.logger.Printf("skill extraction failed: %v", err)
		return ExtractionResult{}, ErrInternal
	}

	agg := extraction.Aggregate(candidates, u.categorizer(ctx))

	if persist && userID != uuid.Nil {
		for _, s := range agg.Skills {
			if _, err := persistAggregated(ctx, u.skills, userID, s, nil); err != nil {
				u.logger.Printf("skill persist failed: %v", err)
				return ExtractionResult{}, ErrInternal
			}
		}
	}

	return ExtractionResult{Skills: agg.Skills, Stats: agg.Stats()}, nil
}

func (u *Extraction) EnhanceResume(ctx context.Context, text string, action extractor.EnhanceAction) (extractor.EnhanceResult, error) {
	if strings.TrimSpace(text) == "" {
		return extractor.EnhanceResult{}, ErrInvalidInput
	}
	if action != extractor.ActionAnalyze && action != extractor.ActionEnhance {
		return extractor.EnhanceResult{}, ErrInvalidInput
	}

	res, err := u.extractor.EnhanceResume(ctx, text, action)
	if err != nil {
		if errors.Is(err, extractor.ErrEmptyInput) {
			return extractor.EnhanceResult{}, ErrInvalidInput
		}
		u.logger.Printf("resume enhancement failed: %v", err)
		return extractor.EnhanceResult{}, ErrInternal
	}
	return res, nil
}

func aggregatedToSkill(userID uuid.UUID, s extraction.AggregatedSkill) skill.Skill {
	return skill.Skill{
		UserID:          userID,
		Name:            s.Name,
		Category:        s.Category,
		ConfidenceScore: s.Confidence,
		Proficiency:     s.Proficiency,
		YearsExperience: s.YearsExperience,
		IsExplicit:      s.IsExplicit,
	}
}

// persistAggregated upserts one aggregated skill together with its evidence
// entries, so every persisted skill keeps at least one evidence row. docID is
// nil for skills that did not come from a stored document.
func persistAggregated(ctx context.Context, repo repository.SkillRepository, userID uuid.UUID, s extraction.AggregatedSkill, docID *uuid.UUID) (skill.Skill, error) {
	stored, err := repo.Upsert(ctx, aggregatedToSkill(userID, s))
	if err != nil {
		return skill.Skill{}, err
	}
	for _, ev := range s.Evidence {
		err := repo.AddEvidence(ctx, skill.Evidence{
			SkillID:     stored.ID,
			DocumentID:  docID,
			Type:        ev.Type,
			Snippet:     ev.Snippet,
			Reliability: ev.Reliability,
		})
		if err != nil {
			return skill.Skill{}, err
		}
	}
	return stored, nil
}

func (u *Extraction) categorizer(ctx context.Context) *extraction.Categorizer {
	entries, err := u.keywords.ListKeywords(ctx)
	if err != nil {
		entries = extraction.DefaultKeywords()
	}
	return extraction.NewCategorizer(entries)
}
