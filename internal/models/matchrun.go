package models

import (
	"time"

	"github.com/google/uuid"
)

type MatchRunStatus string

const (
	RunQueued     MatchRunStatus = "queued"
	RunProcessing MatchRunStatus = "processing"
	RunCompleted  MatchRunStatus = "completed"
	RunFailed     MatchRunStatus = "failed"
)

// MatchRun tracks one asynchronous bulk-matching pass from enqueue to
// completion.
type MatchRun struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Status         MatchRunStatus `gorm:"type:text;not null;default:'queued'" json:"status"`
	ProcessedCount *int           `json:"processed_count,omitempty"`
	ErrorMessage   *string        `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt      time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (MatchRun) TableName() string {
	return "match_runs"
}
