package services

import (
	"context"
	"errors"
	"math"
	"testing"
)

type countingEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (c *countingEmbedder) GenerateEmbedding(_ context.Context, _ string) ([]float32, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.vector, nil
}

func TestCosineSimilarity(t *testing.T) {
	cases := []struct {
		name     string
		a, b     []float32
		expected float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
		{"length mismatch", []float32{1, 0, 0}, []float32{1, 0}, 0},
	}

	for _, tc := range cases {
		got := CosineSimilarity(tc.a, tc.b)
		if math.Abs(got-tc.expected) > 1e-9 {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.expected, got)
		}
	}
}

func TestEmbedCachesSuccesses(t *testing.T) {
	backend := &countingEmbedder{vector: []float32{1, 0, 0}}
	provider := NewSimilarityProvider(backend, NewEmbeddingCache())

	for i := 0; i < 3; i++ {
		vector, err := provider.Embed(context.Background(), "Python, SQL")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(vector) != 3 {
			t.Fatalf("unexpected vector length %d", len(vector))
		}
	}

	if backend.calls != 1 {
		t.Fatalf("expected 1 backend call, got %d", backend.calls)
	}
}

func TestEmbedFailureReturnsZeroVectorAndIsNotCached(t *testing.T) {
	backend := &countingEmbedder{err: errors.New("rate limited")}
	provider := NewSimilarityProvider(backend, NewEmbeddingCache())

	for i := 0; i < 2; i++ {
		vector, err := provider.Embed(context.Background(), "Go")
		if err == nil {
			t.Fatalf("expected error on attempt %d", i+1)
		}
		if len(vector) != EmbeddingDimension {
			t.Fatalf("expected zero vector of dimension %d, got %d", EmbeddingDimension, len(vector))
		}
		for _, v := range vector {
			if v != 0 {
				t.Fatalf("expected zero vector, found %v", v)
			}
		}
	}

	if backend.calls != 2 {
		t.Fatalf("expected failures to bypass the cache, got %d calls", backend.calls)
	}
}

func TestEmbedWithoutBackend(t *testing.T) {
	provider := NewSimilarityProvider(nil, NewEmbeddingCache())

	vector, err := provider.Embed(context.Background(), "Kubernetes")
	if !errors.Is(err, ErrEmbeddingUnavailable) {
		t.Fatalf("expected ErrEmbeddingUnavailable, got %v", err)
	}
	if len(vector) != EmbeddingDimension {
		t.Fatalf("expected zero vector of dimension %d, got %d", EmbeddingDimension, len(vector))
	}
}
