package services

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// EmbeddingService is the external embedding backend boundary. The
// production implementation talks to Gemini; tests substitute a stub.
type EmbeddingService interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type geminiEmbeddingService struct {
	client     *genai.Client
	embedModel string
}

func NewGeminiEmbeddingService(apiKey string) (EmbeddingService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiEmbeddingService{
		client:     client,
		embedModel: "text-embedding-004",
	}, nil
}

// GenerateEmbedding implements EmbeddingService.
func (g *geminiEmbeddingService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	// Truncate text if too long (max ~10000 tokens for embedding)
	if len(text) > 40000 {
		text = text[:40000]
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}
