package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"internmatch/internal/models"
)

type FeedbackRepository interface {
	Create(feedback *models.MatchFeedback) error
	FindByStudent(studentID uuid.UUID) ([]models.MatchFeedback, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

// Create implements FeedbackRepository.
func (r *feedbackRepository) Create(feedback *models.MatchFeedback) error {
	if err := r.db.Create(feedback).Error; err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

// FindByStudent implements FeedbackRepository.
func (r *feedbackRepository) FindByStudent(studentID uuid.UUID) ([]models.MatchFeedback, error) {
	var feedback []models.MatchFeedback
	err := r.db.
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&feedback).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return feedback, nil
}
