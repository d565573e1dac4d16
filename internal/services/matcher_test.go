package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/google/uuid"

	"internmatch/internal/models"
)

type stubEmbedder struct {
	vectors map[string][]float32
	failOn  map[string]bool
	failAll bool
	calls   int
}

func (s *stubEmbedder) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	s.calls++
	if s.failAll || s.failOn[text] {
		return nil, fmt.Errorf("backend unavailable")
	}
	if v, ok := s.vectors[text]; ok {
		return v, nil
	}
	return []float32{1, 0, 0}, nil
}

func newTestMatcher(backend EmbeddingService) MatcherService {
	return NewMatcherService(NewSimilarityProvider(backend, NewEmbeddingCache()))
}

func TestFallbackFormulaWorkedExample(t *testing.T) {
	internshipID := uuid.New()
	matcher := newTestMatcher(&stubEmbedder{failAll: true})

	response := matcher.CalculateMatches(context.Background(), models.MatchRequest{
		StudentProfile: models.StudentProfile{
			Skills:        []string{"Python", "SQL"},
			CGPA:          9.0,
			Location:      "Bangalore",
			DiversityFlag: true,
		},
		Internships: []models.InternshipSummary{
			{
				ID:             internshipID,
				RequiredSkills: []string{"Python", "Machine Learning"},
				Location:       "Bangalore",
				Title:          "ML Intern",
			},
		},
	})

	if len(response.Matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(response.Matches))
	}

	match := response.Matches[0]
	if match.MatchScore != 73.00 {
		t.Fatalf("expected score 73.00, got %v", match.MatchScore)
	}
	if len(match.SkillOverlap) != 1 || match.SkillOverlap[0] != "Python" {
		t.Fatalf("unexpected skill overlap: %v", match.SkillOverlap)
	}
	if len(match.MissingSkills) != 1 || match.MissingSkills[0] != "Machine Learning" {
		t.Fatalf("unexpected missing skills: %v", match.MissingSkills)
	}
	if !strings.HasPrefix(match.Explanation, "Basic matching (AI unavailable).") {
		t.Fatalf("expected fallback disclaimer, got %q", match.Explanation)
	}
}

func TestScoreClampedAndRounded(t *testing.T) {
	matcher := newTestMatcher(&stubEmbedder{failAll: true})

	profiles := []models.StudentProfile{
		{Skills: []string{"Python"}, CGPA: 10, Location: "Pune", DiversityFlag: true},
		{Skills: nil, CGPA: 0, Location: "", DiversityFlag: false},
		{Skills: []string{"Go", "SQL", "Docker"}, CGPA: 7.77, Location: "Pune", DiversityFlag: false},
	}

	internships := []models.InternshipSummary{
		{ID: uuid.New(), RequiredSkills: []string{"Python"}, Location: "Pune"},
		{ID: uuid.New(), RequiredSkills: nil, Location: "Delhi"},
		{ID: uuid.New(), RequiredSkills: []string{"Go", "SQL", "Kubernetes"}, Location: "Pune"},
	}

	for _, profile := range profiles {
		response := matcher.CalculateMatches(context.Background(), models.MatchRequest{
			StudentProfile: profile,
			Internships:    internships,
		})

		for _, match := range response.Matches {
			if match.MatchScore < 0 || match.MatchScore > 100 {
				t.Fatalf("score out of bounds: %v", match.MatchScore)
			}
			if math.Round(match.MatchScore*100)/100 != match.MatchScore {
				t.Fatalf("score not rounded to 2 decimals: %v", match.MatchScore)
			}
		}
	}
}

func TestSkillOverlapPartition(t *testing.T) {
	candidate := []string{"Java", "Python", "Data Science"}
	required := []string{"JavaScript", "Java", "Machine Learning", "python"}

	overlap, missing := skillOverlap(candidate, required)

	// Every required skill is classified exactly once.
	for _, req := range required {
		inMissing := false
		for _, m := range missing {
			if m == req {
				inMissing = true
			}
		}
		satisfied := false
		for _, o := range overlap {
			if skillsMatch(o, req) {
				satisfied = true
			}
		}
		if inMissing == satisfied {
			t.Fatalf("required skill %q not cleanly partitioned (missing=%v satisfied=%v)", req, inMissing, satisfied)
		}
	}

	for _, o := range overlap {
		for _, m := range missing {
			if o == m {
				t.Fatalf("skill %q appears in both overlap and missing", o)
			}
		}
	}

	if len(missing) != 1 || missing[0] != "Machine Learning" {
		t.Fatalf("unexpected missing set: %v", missing)
	}
}

func TestBatchFallsBackTogether(t *testing.T) {
	// The second internship's embedding fails; no result in the batch may
	// keep an AI-scored explanation.
	stub := &stubEmbedder{
		vectors: map[string][]float32{
			"Python":     {1, 0, 0},
			"JavaScript": {0, 1, 0},
		},
		failOn: map[string]bool{"Rust": true},
	}
	matcher := newTestMatcher(stub)

	response := matcher.CalculateMatches(context.Background(), models.MatchRequest{
		StudentProfile: models.StudentProfile{Skills: []string{"Python"}},
		Internships: []models.InternshipSummary{
			{ID: uuid.New(), RequiredSkills: []string{"JavaScript"}},
			{ID: uuid.New(), RequiredSkills: []string{"Rust"}},
		},
	})

	if len(response.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(response.Matches))
	}
	for _, match := range response.Matches {
		if !strings.HasPrefix(match.Explanation, "Basic matching (AI unavailable).") {
			t.Fatalf("expected uniform fallback, got %q", match.Explanation)
		}
	}
}

func TestIdempotentWithWarmCache(t *testing.T) {
	stub := &stubEmbedder{
		vectors: map[string][]float32{
			"Python, SQL": {1, 1, 0},
			"Python":      {1, 0, 0},
		},
	}
	matcher := newTestMatcher(stub)

	request := models.MatchRequest{
		StudentProfile: models.StudentProfile{
			Skills:        []string{"Python", "SQL"},
			CGPA:          8.5,
			Location:      "Mumbai",
			DiversityFlag: false,
		},
		Internships: []models.InternshipSummary{
			{ID: uuid.New(), RequiredSkills: []string{"Python"}, Location: "Mumbai"},
		},
	}

	first := matcher.CalculateMatches(context.Background(), request)
	callsAfterFirst := stub.calls
	second := matcher.CalculateMatches(context.Background(), request)

	if stub.calls != callsAfterFirst {
		t.Fatalf("expected warm cache to avoid backend calls, got %d extra", stub.calls-callsAfterFirst)
	}

	if len(first.Matches) != 1 || len(second.Matches) != 1 {
		t.Fatalf("expected 1 match per run")
	}
	if first.Matches[0].MatchScore != second.Matches[0].MatchScore {
		t.Fatalf("scores differ: %v vs %v", first.Matches[0].MatchScore, second.Matches[0].MatchScore)
	}
	if first.Matches[0].Explanation != second.Matches[0].Explanation {
		t.Fatalf("explanations differ: %q vs %q", first.Matches[0].Explanation, second.Matches[0].Explanation)
	}
}

func TestExplanationQualityBands(t *testing.T) {
	identical := []float32{1, 0, 0}
	orthogonal := []float32{0, 1, 0}

	stub := &stubEmbedder{
		vectors: map[string][]float32{
			"Python": identical,
			"python": identical,
			"Rust":   orthogonal,
		},
	}
	matcher := newTestMatcher(stub)

	response := matcher.CalculateMatches(context.Background(), models.MatchRequest{
		StudentProfile: models.StudentProfile{Skills: []string{"Python"}},
		Internships: []models.InternshipSummary{
			{ID: uuid.New(), RequiredSkills: []string{"python"}},
			{ID: uuid.New(), RequiredSkills: []string{"Rust"}},
		},
	})

	var excellent, limited bool
	for _, match := range response.Matches {
		if strings.HasPrefix(match.Explanation, "Excellent AI-powered skill match.") {
			excellent = true
		}
		if strings.HasPrefix(match.Explanation, "Limited skill match.") {
			limited = true
		}
	}

	if !excellent {
		t.Fatalf("expected an excellent-band explanation")
	}
	if !limited {
		t.Fatalf("expected a limited-band explanation")
	}
}

func TestRankStability(t *testing.T) {
	id1, id2, id3 := uuid.New(), uuid.New(), uuid.New()
	results := []models.MatchResult{
		{InternshipID: id1, MatchScore: 70},
		{InternshipID: id2, MatchScore: 90},
		{InternshipID: id3, MatchScore: 70},
	}

	Rank(results)

	expected := []uuid.UUID{id2, id1, id3}
	for i, id := range expected {
		if results[i].InternshipID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, results[i].InternshipID)
		}
	}
}

func TestTopN(t *testing.T) {
	results := []models.MatchResult{
		{MatchScore: 90},
		{MatchScore: 80},
		{MatchScore: 70},
	}

	if got := TopN(results, 2); len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got := TopN(results, 5); len(got) != 3 {
		t.Fatalf("expected 3 results, got %d", len(got))
	}
}

func TestHighCGPAAndDiversitySentences(t *testing.T) {
	matcher := newTestMatcher(&stubEmbedder{failAll: true})

	response := matcher.CalculateMatches(context.Background(), models.MatchRequest{
		StudentProfile: models.StudentProfile{
			Skills:        []string{"Python"},
			CGPA:          9.5,
			Location:      "Chennai",
			DiversityFlag: true,
		},
		Internships: []models.InternshipSummary{
			{ID: uuid.New(), RequiredSkills: []string{"Python"}, Location: "Chennai"},
		},
	})

	explanation := response.Matches[0].Explanation
	for _, sentence := range []string{
		"Skill overlap: Python.",
		"Location match bonus.",
		"High CGPA advantage.",
		"Diversity boost.",
	} {
		if !strings.Contains(explanation, sentence) {
			t.Fatalf("expected %q in explanation %q", sentence, explanation)
		}
	}
	if strings.HasSuffix(explanation, " ") {
		t.Fatalf("explanation not trimmed: %q", explanation)
	}
}

func TestMissingSkillsSentenceCapsAtTwo(t *testing.T) {
	matcher := newTestMatcher(&stubEmbedder{failAll: true})

	response := matcher.CalculateMatches(context.Background(), models.MatchRequest{
		StudentProfile: models.StudentProfile{Skills: []string{}},
		Internships: []models.InternshipSummary{
			{ID: uuid.New(), RequiredSkills: []string{"Rust", "Scala", "Haskell"}},
		},
	})

	explanation := response.Matches[0].Explanation
	if !strings.Contains(explanation, "Consider learning: Rust, Scala.") {
		t.Fatalf("expected capped skill list, got %q", explanation)
	}
	if strings.Contains(explanation, "Haskell") {
		t.Fatalf("expected at most 2 recommended skills, got %q", explanation)
	}
}
