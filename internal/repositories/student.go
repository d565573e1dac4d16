package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"internmatch/internal/models"
)

type StudentRepository interface {
	Create(student *models.Student) error
	FindByID(id uuid.UUID) (*models.Student, error)
	FindByUserID(userID uuid.UUID) (*models.Student, error)
	Update(userID uuid.UUID, updates map[string]interface{}) (*models.Student, error)
	FindAll() ([]models.Student, error)
	Count() (int64, error)
	CountWithDiversityFlag() (int64, error)
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

// Create implements StudentRepository.
func (r *studentRepository) Create(student *models.Student) error {
	if err := r.db.Create(student).Error; err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}
	return nil
}

// FindByID implements StudentRepository.
func (r *studentRepository) FindByID(id uuid.UUID) (*models.Student, error) {
	var student models.Student
	if err := r.db.Where("id = ?", id).First(&student).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("student not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find student: %w", err)
	}
	return &student, nil
}

// FindByUserID implements StudentRepository.
func (r *studentRepository) FindByUserID(userID uuid.UUID) (*models.Student, error) {
	var student models.Student
	if err := r.db.Where("user_id = ?", userID).First(&student).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("student not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find student: %w", err)
	}
	return &student, nil
}

// Update implements StudentRepository.
func (r *studentRepository) Update(userID uuid.UUID, updates map[string]interface{}) (*models.Student, error) {
	result := r.db.Model(&models.Student{}).
		Where("user_id = ?", userID).
		Updates(updates)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to update student: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("student not found")
	}

	return r.FindByUserID(userID)
}

// FindAll implements StudentRepository.
func (r *studentRepository) FindAll() ([]models.Student, error) {
	var students []models.Student
	if err := r.db.Find(&students).Error; err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

// Count implements StudentRepository.
func (r *studentRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Student{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return count, nil
}

// CountWithDiversityFlag implements StudentRepository.
func (r *studentRepository) CountWithDiversityFlag() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Student{}).
		Where("diversity_flag = ?", true).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count diversity students: %w", err)
	}
	return count, nil
}
