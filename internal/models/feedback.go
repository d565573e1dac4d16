package models

import (
	"time"

	"github.com/google/uuid"
)

type FeedbackValue string

const (
	FeedbackGood FeedbackValue = "good"
	FeedbackPoor FeedbackValue = "poor"
)

type MatchFeedback struct {
	ID           uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID    uuid.UUID     `gorm:"type:uuid;not null;index" json:"student_id"`
	InternshipID uuid.UUID     `gorm:"type:uuid;not null;index" json:"internship_id"`
	Feedback     FeedbackValue `gorm:"type:text" json:"feedback"`
	CreatedAt    time.Time     `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (MatchFeedback) TableName() string {
	return "match_feedback"
}
