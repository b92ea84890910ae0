package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"skillsense/internal/collector"
	"skillsense/internal/config"
	"skillsense/internal/database"
	"skillsense/internal/database/migration"
	dbpostgres "skillsense/internal/database/postgres"
	"skillsense/internal/database/seeder"
	"skillsense/internal/extractor"
	"skillsense/internal/githubclient"
	"skillsense/internal/infrastructure/cache"
	"skillsense/internal/storage"
)

// Container owns every long-lived dependency: database pool, cache, object
// storage, the model client, and the outbound HTTP clients.
type Container struct {
	Config    config.Config
	DB        database.DB
	Cache     *cache.Redis
	Store     *storage.Client
	Extractor extractor.Extractor
	GitHub    *githubclient.Client
	Collector *collector.BlogCollector
	Logger    *log.Logger
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	runner := migration.Runner{Dir: cfg.Database.MigrationsDir}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	if err := seeder.SeedKeywords(ctx, db, logger); err != nil {
		logger.Printf("keyword seed skipped: %v", err)
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		logger.Printf("object storage unavailable: %v", err)
		store = nil
	}

	gemini, err := extractor.NewGemini(ctx, cfg.AI.APIKey, cfg.AI.Model, cfg.Extraction.DeriveExplicit)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init model client: %w", err)
	}

	return &Container{
		Config:    cfg,
		DB:        db,
		Cache:     redisCache,
		Store:     store,
		Extractor: gemini,
		GitHub:    githubclient.New(cfg.GitHub, redisCache),
		Collector: collector.NewBlogCollector(),
		Logger:    logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
