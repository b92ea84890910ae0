package seeder

import (
	"context"
	"log"

	"skillsense/internal/database"
	"skillsense/internal/domain/extraction"
)

// SeedKeywords loads the built-in categorization table into
// skill_category_keywords. Rows already present (operator-edited or from a
// previous boot) are left untouched.
func SeedKeywords(ctx context.Context, db database.DB, logger *log.Logger) error {
	inserted := int64(0)
	for _, kc := range extraction.DefaultKeywords() {
		n, err := db.Exec(ctx, `
INSERT INTO skill_category_keywords (keyword, category)
VALUES (lower($1), $2)
ON CONFLICT (keyword) DO NOTHING`,
			kc.Keyword, string(kc.Category),
		)
		if err != nil {
			return err
		}
		inserted += n
	}

	if logger != nil && inserted > 0 {
		logger.Printf("[Seeder] seeded %d category keywords", inserted)
	}
	return nil
}
