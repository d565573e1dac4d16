package services

import (
	"context"
	"errors"
	"math"
	"sync"
)

// ErrEmbeddingUnavailable is returned when no embedding backend is
// configured at all.
var ErrEmbeddingUnavailable = errors.New("embedding backend not configured")

// EmbeddingDimension is the fixed size of every vector the provider hands
// out, including the zero vector returned on backend failure.
const EmbeddingDimension = 1536

// EmbeddingCache is an append-only map from exact input text to its
// embedding. Writes are idempotent (same key always maps to the same
// computed value), so last-writer-wins on a rare concurrent collision is
// fine. No eviction; the domain of skill-set phrases stays small.
type EmbeddingCache struct {
	entries sync.Map
}

func NewEmbeddingCache() *EmbeddingCache {
	return &EmbeddingCache{}
}

func (c *EmbeddingCache) Get(text string) ([]float32, bool) {
	v, ok := c.entries.Load(text)
	if !ok {
		return nil, false
	}
	return v.([]float32), true
}

func (c *EmbeddingCache) Put(text string, vector []float32) {
	c.entries.Store(text, vector)
}

// SimilarityProvider turns skill text into comparable vectors. It is the
// only component that reaches the embedding backend; everything downstream
// is synchronous CPU work.
type SimilarityProvider struct {
	backend    EmbeddingService
	cache      *EmbeddingCache
	dimensions int
}

func NewSimilarityProvider(backend EmbeddingService, cache *EmbeddingCache) *SimilarityProvider {
	return &SimilarityProvider{
		backend:    backend,
		cache:      cache,
		dimensions: EmbeddingDimension,
	}
}

// Embed returns the vector for text, consulting the cache before the
// backend. On backend failure it returns a zero vector of the fixed
// dimensionality together with the error: callers that ignore the error
// still get a usable vector (similarity 0), and callers that inspect it can
// switch their whole batch to the fallback formula. Failures are never
// cached.
func (p *SimilarityProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if vector, ok := p.cache.Get(text); ok {
		return vector, nil
	}

	if p.backend == nil {
		return make([]float32, p.dimensions), ErrEmbeddingUnavailable
	}

	vector, err := p.backend.GenerateEmbedding(ctx, text)
	if err != nil {
		return make([]float32, p.dimensions), err
	}

	p.cache.Put(text, vector)
	return vector, nil
}

// CosineSimilarity returns dot(a,b)/(||a||*||b||) in [-1,1]. It returns 0
// when the vectors differ in length or either norm is 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
