package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// SkillIndexService keeps the skill vocabulary in a qdrant collection so
// the suggestions endpoint can search it semantically instead of by
// substring.
type SkillIndexService interface {
	InitCollection() error
	UpsertSkill(ctx context.Context, skill string, embedding []float32) error
	SearchSkills(ctx context.Context, queryEmbedding []float32, limit int) ([]string, error)
}

type skillIndexService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewSkillIndexService(urlStr, apiKey, collectionName string) (SkillIndexService, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &skillIndexService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     EmbeddingDimension,
	}, nil
}

// InitCollection implements SkillIndexService.
func (s *skillIndexService) InitCollection() error {
	ctx := context.Background()

	exists, err := s.client.CollectionExists(ctx, s.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Skill collection already exists")
		return nil
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     s.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})

	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", s.collectionName)
	return nil
}

// UpsertSkill implements SkillIndexService.
func (s *skillIndexService) UpsertSkill(ctx context.Context, skill string, embedding []float32) error {
	pointID := uuid.New()

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(pointID.ID())),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"skill": skill,
		}),
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert skill: %w", err)
	}

	return nil
}

// SearchSkills implements SkillIndexService.
func (s *skillIndexService) SearchSkills(ctx context.Context, queryEmbedding []float32, limit int) ([]string, error) {
	searchResult, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to search skills: %w", err)
	}

	var skills []string
	for _, point := range searchResult {
		if value, ok := point.Payload["skill"]; ok {
			if str, ok := value.GetKind().(*qdrant.Value_StringValue); ok {
				skills = append(skills, str.StringValue)
			}
		}
	}

	return skills, nil
}
