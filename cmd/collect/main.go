package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"skillsense/internal/collector"
	"skillsense/internal/domain/extraction"
	"skillsense/internal/extractor"

	"github.com/joho/godotenv"
)

// Offline collection tool: fetch a blog or portfolio page, run skill
// extraction, and print the aggregated skills as JSON. No database needed.
func main() {
	rawURL := flag.String("url", "", "blog or portfolio URL to collect")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall timeout")
	flag.Parse()

	_ = godotenv.Load()

	if strings.TrimSpace(*rawURL) == "" {
		log.Fatalf("provide -url")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	gemini, err := extractor.NewGemini(ctx, os.Getenv("AI_API_KEY"), os.Getenv("AI_MODEL"), false)
	if err != nil {
		log.Fatalf("init model client: %v", err)
	}

	pages, err := collector.NewBlogCollector().Collect(ctx, *rawURL)
	if err != nil {
		log.Fatalf("collect failed: %v", err)
	}
	log.Printf("collected %d pages from %s", len(pages), *rawURL)

	candidates, err := gemini.ExtractSkills(ctx, collector.Text(pages))
	if err != nil {
		log.Fatalf("extraction failed: %v", err)
	}

	agg := extraction.Aggregate(candidates, extraction.NewCategorizer(extraction.DefaultKeywords()))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(agg.Skills); err != nil {
		log.Fatalf("encode output: %v", err)
	}
}
