package services

import (
	"context"
	"fmt"
	"log"

	"internmatch/internal/models"
	"internmatch/internal/repositories"
)

type AllocatorService interface {
	// RunBulk scores every student against the current set of active
	// internships, keeps each student's top 3 matches at or above the
	// acceptance threshold, and persists them as "matched" allocations.
	// Returns the number of students processed.
	RunBulk(ctx context.Context) (int, error)
}

type allocatorService struct {
	studentRepo    repositories.StudentRepository
	internshipRepo repositories.InternshipRepository
	allocationRepo repositories.AllocationRepository
	matcher        MatcherService
}

func NewAllocatorService(
	studentRepo repositories.StudentRepository,
	internshipRepo repositories.InternshipRepository,
	allocationRepo repositories.AllocationRepository,
	matcher MatcherService,
) AllocatorService {
	return &allocatorService{
		studentRepo:    studentRepo,
		internshipRepo: internshipRepo,
		allocationRepo: allocationRepo,
		matcher:        matcher,
	}
}

// RunBulk implements AllocatorService. A full synchronous pass over the
// student × internship cross-product; students are processed in storage
// order. Allocation write failures are logged and skipped so one bad row
// does not abort the run.
func (a *allocatorService) RunBulk(ctx context.Context) (int, error) {
	students, err := a.studentRepo.FindAll()
	if err != nil {
		return 0, fmt.Errorf("failed to load students: %w", err)
	}

	internships, err := a.internshipRepo.FindAllActive()
	if err != nil {
		return 0, fmt.Errorf("failed to load active internships: %w", err)
	}

	summaries := make([]models.InternshipSummary, 0, len(internships))
	for i := range internships {
		summaries = append(summaries, internships[i].Summary())
	}

	processedCount := 0

	for _, student := range students {
		response := a.matcher.CalculateMatches(ctx, models.MatchRequest{
			StudentProfile: student.Profile(),
			Internships:    summaries,
		})

		for _, match := range TopN(response.Matches, BulkTopK) {
			if match.MatchScore < AcceptThreshold {
				continue
			}

			allocation := &models.Allocation{
				StudentID:    student.ID,
				InternshipID: match.InternshipID,
				MatchScore:   match.MatchScore,
				Explanation:  match.Explanation,
				Status:       models.StatusMatched,
			}

			if err := a.allocationRepo.Create(allocation); err != nil {
				log.Printf("⚠️  Failed to persist allocation for student %s: %v\n", student.ID, err)
			}
		}

		processedCount++
	}

	return processedCount, nil
}
