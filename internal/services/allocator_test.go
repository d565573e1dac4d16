package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"internmatch/internal/models"
	"internmatch/internal/repositories"
)

type stubStudentRepo struct {
	students      []models.Student
	err           error
	diversityOnly int64
}

func (s *stubStudentRepo) Create(*models.Student) error { return errors.New("not implemented") }
func (s *stubStudentRepo) FindByID(uuid.UUID) (*models.Student, error) {
	return nil, errors.New("not implemented")
}
func (s *stubStudentRepo) FindByUserID(uuid.UUID) (*models.Student, error) {
	return nil, errors.New("not implemented")
}
func (s *stubStudentRepo) Update(uuid.UUID, map[string]interface{}) (*models.Student, error) {
	return nil, errors.New("not implemented")
}
func (s *stubStudentRepo) FindAll() ([]models.Student, error) { return s.students, s.err }
func (s *stubStudentRepo) Count() (int64, error)              { return int64(len(s.students)), s.err }
func (s *stubStudentRepo) CountWithDiversityFlag() (int64, error) {
	return s.diversityOnly, s.err
}

type stubInternshipRepo struct {
	internships []models.Internship
	err         error
}

func (s *stubInternshipRepo) Create(*models.Internship) error { return errors.New("not implemented") }
func (s *stubInternshipRepo) FindByID(uuid.UUID) (*models.Internship, error) {
	return nil, errors.New("not implemented")
}
func (s *stubInternshipRepo) FindByCompany(uuid.UUID) ([]models.Internship, error) {
	return nil, errors.New("not implemented")
}
func (s *stubInternshipRepo) Update(uuid.UUID, map[string]interface{}) (*models.Internship, error) {
	return nil, errors.New("not implemented")
}
func (s *stubInternshipRepo) Delete(uuid.UUID) error { return errors.New("not implemented") }
func (s *stubInternshipRepo) FindAllActive() ([]models.Internship, error) {
	return s.internships, s.err
}
func (s *stubInternshipRepo) CountActive() (int64, error) {
	return int64(len(s.internships)), s.err
}

type stubAllocationRepo struct {
	created   []models.Allocation
	createErr error
	count     int64
	avg       float64
}

func (s *stubAllocationRepo) Create(allocation *models.Allocation) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, *allocation)
	return nil
}
func (s *stubAllocationRepo) FindByID(uuid.UUID) (*models.Allocation, error) {
	return nil, errors.New("not implemented")
}
func (s *stubAllocationRepo) Find(repositories.AllocationFilters) ([]models.Allocation, error) {
	return nil, errors.New("not implemented")
}
func (s *stubAllocationRepo) FindWithDetails() ([]models.AllocationDetail, error) {
	return nil, errors.New("not implemented")
}
func (s *stubAllocationRepo) UpdateStatus(uuid.UUID, models.AllocationStatus) error {
	return errors.New("not implemented")
}
func (s *stubAllocationRepo) CountByStatus(models.AllocationStatus) (int64, error) {
	return s.count, nil
}
func (s *stubAllocationRepo) AverageScore() (float64, error) { return s.avg, nil }

func TestRunBulkBelowThresholdAllocatesNothing(t *testing.T) {
	studentRepo := &stubStudentRepo{students: []models.Student{
		{ID: uuid.New(), Skills: nil, CGPA: 2.0, Location: "Delhi"},
	}}
	internshipRepo := &stubInternshipRepo{internships: []models.Internship{
		{ID: uuid.New(), RequiredSkills: []string{"Rust"}, Location: "Goa", IsActive: true},
	}}
	allocationRepo := &stubAllocationRepo{}

	allocator := NewAllocatorService(studentRepo, internshipRepo, allocationRepo,
		newTestMatcher(&stubEmbedder{failAll: true}))

	processedCount, err := allocator.RunBulk(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if processedCount != 1 {
		t.Fatalf("expected 1 processed student, got %d", processedCount)
	}
	if len(allocationRepo.created) != 0 {
		t.Fatalf("expected no allocations below threshold, got %d", len(allocationRepo.created))
	}
}

func TestRunBulkCapsAtTopThree(t *testing.T) {
	studentID := uuid.New()
	studentRepo := &stubStudentRepo{students: []models.Student{
		{ID: studentID, Skills: []string{"Python"}, CGPA: 9.0, Location: "Pune", DiversityFlag: true},
	}}

	internships := make([]models.Internship, 0, 5)
	for i := 0; i < 5; i++ {
		internships = append(internships, models.Internship{
			ID:             uuid.New(),
			RequiredSkills: []string{"Python"},
			Location:       "Pune",
			IsActive:       true,
		})
	}
	internshipRepo := &stubInternshipRepo{internships: internships}
	allocationRepo := &stubAllocationRepo{}

	allocator := NewAllocatorService(studentRepo, internshipRepo, allocationRepo,
		newTestMatcher(&stubEmbedder{failAll: true}))

	if _, err := allocator.RunBulk(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(allocationRepo.created) != BulkTopK {
		t.Fatalf("expected %d allocations, got %d", BulkTopK, len(allocationRepo.created))
	}
	for _, allocation := range allocationRepo.created {
		if allocation.Status != models.StatusMatched {
			t.Fatalf("expected status %q, got %q", models.StatusMatched, allocation.Status)
		}
		if allocation.StudentID != studentID {
			t.Fatalf("allocation points at wrong student")
		}
		if allocation.MatchScore < AcceptThreshold {
			t.Fatalf("persisted score %v below threshold", allocation.MatchScore)
		}
	}
}

func TestRunBulkSurvivesWriteFailures(t *testing.T) {
	studentRepo := &stubStudentRepo{students: []models.Student{
		{ID: uuid.New(), Skills: []string{"Go"}, CGPA: 9.0, Location: "Pune", DiversityFlag: true},
		{ID: uuid.New(), Skills: []string{"Go"}, CGPA: 9.0, Location: "Pune", DiversityFlag: true},
	}}
	internshipRepo := &stubInternshipRepo{internships: []models.Internship{
		{ID: uuid.New(), RequiredSkills: []string{"Go"}, Location: "Pune", IsActive: true},
	}}
	allocationRepo := &stubAllocationRepo{createErr: errors.New("disk full")}

	allocator := NewAllocatorService(studentRepo, internshipRepo, allocationRepo,
		newTestMatcher(&stubEmbedder{failAll: true}))

	processedCount, err := allocator.RunBulk(context.Background())
	if err != nil {
		t.Fatalf("expected write failures to be skipped, got %v", err)
	}
	if processedCount != 2 {
		t.Fatalf("expected 2 processed students, got %d", processedCount)
	}
}

func TestRunBulkPropagatesLoadErrors(t *testing.T) {
	allocator := NewAllocatorService(
		&stubStudentRepo{err: errors.New("db down")},
		&stubInternshipRepo{},
		&stubAllocationRepo{},
		newTestMatcher(&stubEmbedder{failAll: true}),
	)

	if _, err := allocator.RunBulk(context.Background()); err == nil {
		t.Fatalf("expected error when students cannot be loaded")
	}
}
