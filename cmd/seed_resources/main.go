package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"prepdeck/internal/config"
	"prepdeck/internal/database"
	"prepdeck/internal/domain"
	"prepdeck/internal/logger"
	"prepdeck/internal/repository"
	"prepdeck/internal/util"

	"go.uber.org/zap"
)

type seedResource struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Type        string   `json:"type"`
	URL         string   `json:"url"`
	Difficulty  string   `json:"difficulty"`
	Tags        []string `json:"tags"`
}

func main() {
	seedFilePath := flag.String("file", "configs/seed_data/study_resources.json", "path to the study resource seed file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to Oracle database", zap.Error(err))
	}
	defer db.Close()

	log.Info("Loading seed data from file", zap.String("path", *seedFilePath))
	raw, err := os.ReadFile(*seedFilePath)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", *seedFilePath), zap.Error(err))
	}

	var entries []seedResource
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}

	resourceRepo := repository.NewSQLXResourceRepository(db)

	seeded := 0
	for _, entry := range entries {
		difficulty, ok := domain.ParseDifficulty(entry.Difficulty, domain.DifficultyIntermediate)
		if !ok {
			log.Warn("Skipping resource with unknown difficulty",
				zap.String("title", entry.Title),
				zap.String("difficulty", entry.Difficulty))
			continue
		}

		resource := &domain.StudyResource{
			ID:          util.NewULID(),
			Title:       entry.Title,
			Description: entry.Description,
			Category:    entry.Category,
			Type:        domain.ResourceType(entry.Type),
			URL:         entry.URL,
			Difficulty:  difficulty,
			Tags:        entry.Tags,
			IsActive:    true,
			CreatedAt:   time.Now(),
		}
		if err := resourceRepo.Create(ctx, resource); err != nil {
			log.Error("Failed to seed resource", zap.String("title", entry.Title), zap.Error(err))
			continue
		}
		seeded++
	}

	log.Info("Resource seeding completed",
		zap.Int("seeded", seeded),
		zap.Int("total", len(entries)))
}
