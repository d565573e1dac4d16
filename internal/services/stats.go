package services

import (
	"fmt"
	"math"

	"internmatch/internal/models"
	"internmatch/internal/repositories"
)

// StatsService is the read-side aggregator over persisted allocation and
// student data. Pure reads, no side effects.
type StatsService interface {
	SystemStats() (*models.SystemStats, error)
	DiversityMetrics() (*models.DiversityMetrics, error)
}

type statsService struct {
	studentRepo    repositories.StudentRepository
	internshipRepo repositories.InternshipRepository
	allocationRepo repositories.AllocationRepository
}

func NewStatsService(
	studentRepo repositories.StudentRepository,
	internshipRepo repositories.InternshipRepository,
	allocationRepo repositories.AllocationRepository,
) StatsService {
	return &statsService{
		studentRepo:    studentRepo,
		internshipRepo: internshipRepo,
		allocationRepo: allocationRepo,
	}
}

// SystemStats implements StatsService.
func (s *statsService) SystemStats() (*models.SystemStats, error) {
	totalStudents, err := s.studentRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}

	activeInternships, err := s.internshipRepo.CountActive()
	if err != nil {
		return nil, fmt.Errorf("failed to count internships: %w", err)
	}

	successfulMatches, err := s.allocationRepo.CountByStatus(models.StatusMatched)
	if err != nil {
		return nil, fmt.Errorf("failed to count matches: %w", err)
	}

	avgScore, err := s.allocationRepo.AverageScore()
	if err != nil {
		return nil, fmt.Errorf("failed to average scores: %w", err)
	}

	return &models.SystemStats{
		TotalStudents:     totalStudents,
		ActiveInternships: activeInternships,
		SuccessfulMatches: successfulMatches,
		AvgMatchScore:     round1(avgScore),
	}, nil
}

// DiversityMetrics implements StatsService.
func (s *statsService) DiversityMetrics() (*models.DiversityMetrics, error) {
	totalWithDiversity, err := s.studentRepo.CountWithDiversityFlag()
	if err != nil {
		return nil, fmt.Errorf("failed to count diversity students: %w", err)
	}

	totalStudents, err := s.studentRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}

	return &models.DiversityMetrics{
		DiversityPercentage: DiversityPercentage(totalWithDiversity, totalStudents),
		TotalWithDiversity:  totalWithDiversity,
		TotalStudents:       totalStudents,
	}, nil
}

// DiversityPercentage returns the share of diversity-flagged students as a
// percentage rounded to one decimal, 0 when there are no students.
func DiversityPercentage(withDiversity, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return round1(float64(withDiversity) / float64(total) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
