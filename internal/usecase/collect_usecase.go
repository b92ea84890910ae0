package usecase

import (
	"context"
	"errors"
	"log"

	"skillsense/internal/collector"
	"skillsense/internal/domain/extraction"
	"skillsense/internal/extractor"
	"skillsense/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrBlogURLInvalid = errors.New("invalid blog url")
	ErrBlogNoContent  = errors.New("no readable content at url")
)

type PageCollector interface {
	Collect(ctx context.Context, rawURL string) ([]collector.Page, error)
}

type CollectResult struct {
	PagesVisited int
	Skills       []extraction.AggregatedSkill
	Stats        extraction.Stats
}

type CollectUsecase interface {
	CollectBlog(ctx context.Context, userID uuid.UUID, rawURL string, persist bool) (CollectResult, error)
}

type Collect struct {
	collector PageCollector
	skills    repository.SkillRepository
	keywords  repository.KeywordRepository
	extractor extractor.Extractor
	logger    *log.Logger
}

func NewCollectUsecase(c PageCollector, skills repository.SkillRepository, keywords repository.KeywordRepository, ext extractor.Extractor, logger *log.Logger) *Collect {
	return &Collect{collector: c, skills: skills, keywords: keywords, extractor: ext, logger: logger}
}

// CollectBlog crawls a blog or portfolio URL and runs the gathered text
// through the same extraction pipeline as uploaded documents.
func (u *Collect) CollectBlog(ctx context.Context, userID uuid.UUID, rawURL string, persist bool) (CollectResult, error) {
	if userID == uuid.Nil {
		return CollectResult{}, ErrUnauthorized
	}

	pages, err := u.collector.Collect(ctx, rawURL)
	if err != nil {
		switch {
		case errors.Is(err, collector.ErrInvalidURL):
			return CollectResult{}, ErrBlogURLInvalid
		case errors.Is(err, collector.ErrNoContent):
			return CollectResult{}, ErrBlogNoContent
		default:
			u.logger.Printf("blog collect failed for %s: %v", rawURL, err)
			return CollectResult{}, ErrInternal
		}
	}

	text := collector.Text(pages)
	if text == "" {
		return CollectResult{}, ErrBlogNoContent
	}

	candidates, err := u.extractor.ExtractSkills(ctx, text)
	if err != nil {
		u.logger.Printf("blog extraction failed for %s: %v", rawURL, err)
		return CollectResult{}, ErrInternal
	}

	entries, err := u.keywords.ListKeywords(ctx)
	if err != nil {
		entries = extraction.DefaultKeywords()
	}
	agg := extraction.Aggregate(candidates, extraction.NewCategorizer(entries))

	if persist {
		for _, s := range agg.Skills {
			if _, err := persistAggregated(ctx, u.skills, userID, s, nil); err != nil {
				u.logger.Printf("blog skill persist failed: %v", err)
				return CollectResult{}, ErrInternal
			}
		}
	}

	return CollectResult{PagesVisited: len(pages), Skills: agg.Skills, Stats: agg.Stats()}, nil
}
