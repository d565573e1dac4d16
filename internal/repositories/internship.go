package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"internmatch/internal/models"
)

type InternshipRepository interface {
	Create(internship *models.Internship) error
	FindByID(id uuid.UUID) (*models.Internship, error)
	FindByCompany(companyID uuid.UUID) ([]models.Internship, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*models.Internship, error)
	Delete(id uuid.UUID) error
	FindAllActive() ([]models.Internship, error)
	CountActive() (int64, error)
}

type internshipRepository struct {
	db *gorm.DB
}

func NewInternshipRepository(db *gorm.DB) InternshipRepository {
	return &internshipRepository{db: db}
}

// Create implements InternshipRepository.
func (r *internshipRepository) Create(internship *models.Internship) error {
	if err := r.db.Create(internship).Error; err != nil {
		return fmt.Errorf("failed to create internship: %w", err)
	}
	return nil
}

// FindByID implements InternshipRepository.
func (r *internshipRepository) FindByID(id uuid.UUID) (*models.Internship, error) {
	var internship models.Internship
	if err := r.db.Where("id = ?", id).First(&internship).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("internship not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find internship: %w", err)
	}
	return &internship, nil
}

// FindByCompany implements InternshipRepository.
func (r *internshipRepository) FindByCompany(companyID uuid.UUID) ([]models.Internship, error) {
	var internships []models.Internship
	err := r.db.
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&internships).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list internships: %w", err)
	}
	return internships, nil
}

// Update implements InternshipRepository.
func (r *internshipRepository) Update(id uuid.UUID, updates map[string]interface{}) (*models.Internship, error) {
	result := r.db.Model(&models.Internship{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to update internship: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("internship not found")
	}

	return r.FindByID(id)
}

// Delete implements InternshipRepository.
func (r *internshipRepository) Delete(id uuid.UUID) error {
	if err := r.db.Delete(&models.Internship{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete internship: %w", err)
	}
	return nil
}

// FindAllActive implements InternshipRepository. Only active postings take
// part in live matching.
func (r *internshipRepository) FindAllActive() ([]models.Internship, error) {
	var internships []models.Internship
	err := r.db.
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&internships).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active internships: %w", err)
	}
	return internships, nil
}

// CountActive implements InternshipRepository.
func (r *internshipRepository) CountActive() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Internship{}).
		Where("is_active = ?", true).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count active internships: %w", err)
	}
	return count, nil
}
