package services

import (
	"testing"

	"github.com/google/uuid"

	"internmatch/internal/models"
)

func TestDiversityPercentage(t *testing.T) {
	cases := []struct {
		name          string
		withDiversity int64
		total         int64
		expected      float64
	}{
		{"no students", 0, 0, 0},
		{"negative guard", 5, -1, 0},
		{"one third", 1, 3, 33.3},
		{"two thirds", 2, 3, 66.7},
		{"everyone", 4, 4, 100},
		{"none flagged", 0, 10, 0},
	}

	for _, tc := range cases {
		if got := DiversityPercentage(tc.withDiversity, tc.total); got != tc.expected {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.expected, got)
		}
	}
}

func TestSystemStats(t *testing.T) {
	studentRepo := &stubStudentRepo{students: []models.Student{
		{ID: uuid.New()}, {ID: uuid.New()}, {ID: uuid.New()},
	}}
	internshipRepo := &stubInternshipRepo{internships: []models.Internship{
		{ID: uuid.New()},
	}}
	allocationRepo := &stubAllocationRepo{count: 7, avg: 72.146}

	stats := NewStatsService(studentRepo, internshipRepo, allocationRepo)

	systemStats, err := stats.SystemStats()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if systemStats.TotalStudents != 3 {
		t.Fatalf("expected 3 students, got %d", systemStats.TotalStudents)
	}
	if systemStats.ActiveInternships != 1 {
		t.Fatalf("expected 1 active internship, got %d", systemStats.ActiveInternships)
	}
	if systemStats.SuccessfulMatches != 7 {
		t.Fatalf("expected 7 matches, got %d", systemStats.SuccessfulMatches)
	}
	if systemStats.AvgMatchScore != 72.1 {
		t.Fatalf("expected average 72.1, got %v", systemStats.AvgMatchScore)
	}
}

func TestSystemStatsEmptySystem(t *testing.T) {
	stats := NewStatsService(&stubStudentRepo{}, &stubInternshipRepo{}, &stubAllocationRepo{})

	systemStats, err := stats.SystemStats()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if systemStats.AvgMatchScore != 0 {
		t.Fatalf("expected zero average with no allocations, got %v", systemStats.AvgMatchScore)
	}
}

func TestDiversityMetrics(t *testing.T) {
	studentRepo := &stubStudentRepo{
		students:      []models.Student{{ID: uuid.New()}, {ID: uuid.New()}, {ID: uuid.New()}, {ID: uuid.New()}},
		diversityOnly: 1,
	}

	stats := NewStatsService(studentRepo, &stubInternshipRepo{}, &stubAllocationRepo{})

	metrics, err := stats.DiversityMetrics()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if metrics.TotalStudents != 4 || metrics.TotalWithDiversity != 1 {
		t.Fatalf("unexpected counts: %+v", metrics)
	}
	if metrics.DiversityPercentage != 25 {
		t.Fatalf("expected 25%%, got %v", metrics.DiversityPercentage)
	}
}
