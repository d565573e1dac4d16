package models

import (
	"time"

	"github.com/google/uuid"
)

type AllocationStatus string

const (
	StatusMatched     AllocationStatus = "matched"
	StatusApplied     AllocationStatus = "applied"
	StatusShortlisted AllocationStatus = "shortlisted"
	StatusRejected    AllocationStatus = "rejected"
)

// ValidAllocationStatus reports whether s is one of the known statuses.
func ValidAllocationStatus(s AllocationStatus) bool {
	switch s {
	case StatusMatched, StatusApplied, StatusShortlisted, StatusRejected:
		return true
	}
	return false
}

// Allocation is the persisted audit record of a proposed match. The bulk
// allocator only ever writes the initial "matched" state; later transitions
// are driven by student and company actions.
type Allocation struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"student_id"`
	InternshipID uuid.UUID        `gorm:"type:uuid;not null;index" json:"internship_id"`
	MatchScore   float64          `gorm:"type:decimal(5,2)" json:"match_score"`
	Explanation  string           `gorm:"type:text" json:"explanation"`
	Status       AllocationStatus `gorm:"type:text;not null;default:'matched'" json:"status"`
	Timestamp    time.Time        `gorm:"type:timestamp;default:now()" json:"timestamp"`

	Student    Student    `gorm:"foreignKey:StudentID" json:"-"`
	Internship Internship `gorm:"foreignKey:InternshipID" json:"-"`
}

func (Allocation) TableName() string {
	return "allocations"
}

// AllocationDetail is one row of the admin audit trail, allocations joined
// with the names around them.
type AllocationDetail struct {
	ID              uuid.UUID        `json:"id"`
	MatchScore      float64          `json:"match_score"`
	Explanation     string           `json:"explanation"`
	Status          AllocationStatus `json:"status"`
	Timestamp       time.Time        `json:"timestamp"`
	StudentName     string           `json:"student_name"`
	InternshipTitle string           `json:"internship_title"`
	CompanyName     string           `json:"company_name"`
}
