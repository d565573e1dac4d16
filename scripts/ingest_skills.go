package main

import (
	"context"
	"log"
	"os"
	"strings"

	"internmatch/internal/config"
	"internmatch/internal/services"
)

func main() {
	log.Println("🚀 Starting skill vocabulary ingestion...")

	// Load configuration
	cfg := config.Load()

	// Initialize services
	embeddingService, err := services.NewGeminiEmbeddingService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	skillIndex, err := services.NewSkillIndexService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := skillIndex.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	ctx := context.Background()

	successCount := 0
	failCount := 0

	for i, skill := range services.SkillVocabulary {
		embedding, err := embeddingService.GenerateEmbedding(ctx, skill)
		if err != nil {
			log.Printf("❌ Failed to generate embedding for %q: %v", skill, err)
			failCount++
			continue
		}

		if err := skillIndex.UpsertSkill(ctx, skill, embedding); err != nil {
			log.Printf("❌ Failed to store %q: %v", skill, err)
			failCount++
			continue
		}

		successCount++
		if (i+1)%10 == 0 || i == len(services.SkillVocabulary)-1 {
			log.Printf("📊 Progress: %d/%d skills stored", i+1, len(services.SkillVocabulary))
		}
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d skills", successCount)
	log.Printf("   ❌ Failed: %d skills", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some skills failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ Skill vocabulary ingested successfully!")
}
