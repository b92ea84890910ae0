package repository

import (
	"context"

	"skillsense/internal/database"
	"skillsense/internal/domain/extraction"
	"skillsense/internal/domain/skill"
)

type KeywordRepository interface {
	ListKeywords(ctx context.Context) ([]extraction.KeywordCategory, error)
}

// PostgresKeywordRepository loads the keyword-to-category table the
// extraction aggregator falls back on when the model omits a category.
type PostgresKeywordRepository struct {
	db database.DB
}

func NewPostgresKeywordRepository(db database.DB) *PostgresKeywordRepository {
	return &PostgresKeywordRepository{db: db}
}

func (r *PostgresKeywordRepository) ListKeywords(ctx context.Context) ([]extraction.KeywordCategory, error) {
	rows, err := r.db.Query(ctx, `SELECT keyword, category FROM skill_category_keywords`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []extraction.KeywordCategory
	for rows.Next() {
		var keyword, category string
		if err := rows.Scan(&keyword, &category); err != nil {
			return nil, err
		}
		if cat, ok := skill.ParseCategory(category); ok {
			entries = append(entries, extraction.KeywordCategory{Keyword: keyword, Category: cat})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return extraction.DefaultKeywords(), nil
	}
	return entries, nil
}
