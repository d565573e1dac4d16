package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"internmatch/internal/models"
)

type AllocationFilters struct {
	StudentID    *uuid.UUID
	InternshipID *uuid.UUID
	Status       models.AllocationStatus
}

type AllocationRepository interface {
	Create(allocation *models.Allocation) error
	FindByID(id uuid.UUID) (*models.Allocation, error)
	Find(filters AllocationFilters) ([]models.Allocation, error)
	FindWithDetails() ([]models.AllocationDetail, error)
	UpdateStatus(id uuid.UUID, status models.AllocationStatus) error
	CountByStatus(status models.AllocationStatus) (int64, error)
	AverageScore() (float64, error)
}

type allocationRepository struct {
	db *gorm.DB
}

func NewAllocationRepository(db *gorm.DB) AllocationRepository {
	return &allocationRepository{db: db}
}

// Create implements AllocationRepository.
func (r *allocationRepository) Create(allocation *models.Allocation) error {
	if err := r.db.Create(allocation).Error; err != nil {
		return fmt.Errorf("failed to create allocation: %w", err)
	}
	return nil
}

// FindByID implements AllocationRepository.
func (r *allocationRepository) FindByID(id uuid.UUID) (*models.Allocation, error) {
	var allocation models.Allocation
	if err := r.db.Where("id = ?", id).First(&allocation).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("allocation not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find allocation: %w", err)
	}
	return &allocation, nil
}

// Find implements AllocationRepository.
func (r *allocationRepository) Find(filters AllocationFilters) ([]models.Allocation, error) {
	query := r.db.Model(&models.Allocation{})

	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.InternshipID != nil {
		query = query.Where("internship_id = ?", *filters.InternshipID)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	var allocations []models.Allocation
	if err := query.Order("timestamp DESC").Find(&allocations).Error; err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	return allocations, nil
}

// FindWithDetails implements AllocationRepository. Returns the full audit
// trail, newest first, joined with student, internship and company names.
func (r *allocationRepository) FindWithDetails() ([]models.AllocationDetail, error) {
	var details []models.AllocationDetail
	err := r.db.Model(&models.Allocation{}).
		Select(`allocations.id, allocations.match_score, allocations.explanation,
			allocations.status, allocations.timestamp,
			students.name AS student_name,
			internships.title AS internship_title,
			companies.name AS company_name`).
		Joins("LEFT JOIN students ON students.id = allocations.student_id").
		Joins("LEFT JOIN internships ON internships.id = allocations.internship_id").
		Joins("LEFT JOIN companies ON companies.id = internships.company_id").
		Order("allocations.timestamp DESC").
		Scan(&details).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load allocation details: %w", err)
	}
	return details, nil
}

// UpdateStatus implements AllocationRepository.
func (r *allocationRepository) UpdateStatus(id uuid.UUID, status models.AllocationStatus) error {
	result := r.db.Model(&models.Allocation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":    status,
			"timestamp": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update allocation status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("allocation not found")
	}

	return nil
}

// CountByStatus implements AllocationRepository.
func (r *allocationRepository) CountByStatus(status models.AllocationStatus) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Allocation{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count allocations: %w", err)
	}
	return count, nil
}

// AverageScore implements AllocationRepository. Returns 0 when there are no
// allocations.
func (r *allocationRepository) AverageScore() (float64, error) {
	var avg *float64
	if err := r.db.Model(&models.Allocation{}).
		Select("AVG(match_score)").
		Scan(&avg).Error; err != nil {
		return 0, fmt.Errorf("failed to average match scores: %w", err)
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
