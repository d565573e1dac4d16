package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"internmatch/internal/models"
)

type CompanyRepository interface {
	Create(company *models.Company) error
	FindByID(id uuid.UUID) (*models.Company, error)
	FindByUserID(userID uuid.UUID) (*models.Company, error)
	Update(userID uuid.UUID, updates map[string]interface{}) (*models.Company, error)
}

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

// Create implements CompanyRepository.
func (r *companyRepository) Create(company *models.Company) error {
	if err := r.db.Create(company).Error; err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}
	return nil
}

// FindByID implements CompanyRepository.
func (r *companyRepository) FindByID(id uuid.UUID) (*models.Company, error) {
	var company models.Company
	if err := r.db.Where("id = ?", id).First(&company).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("company not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}
	return &company, nil
}

// FindByUserID implements CompanyRepository.
func (r *companyRepository) FindByUserID(userID uuid.UUID) (*models.Company, error) {
	var company models.Company
	if err := r.db.Where("user_id = ?", userID).First(&company).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("company not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}
	return &company, nil
}

// Update implements CompanyRepository.
func (r *companyRepository) Update(userID uuid.UUID, updates map[string]interface{}) (*models.Company, error) {
	result := r.db.Model(&models.Company{}).
		Where("user_id = ?", userID).
		Updates(updates)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to update company: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("company not found")
	}

	return r.FindByUserID(userID)
}
