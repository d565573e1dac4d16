package models

import (
	"time"

	"github.com/google/uuid"
)

type Internship struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CompanyID      uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	Title          string    `gorm:"type:text;not null" json:"title"`
	Description    string    `gorm:"type:text" json:"description"`
	RequiredSkills []string  `gorm:"type:jsonb;serializer:json" json:"required_skills"`
	Location       string    `gorm:"type:text" json:"location"`
	Stipend        int       `json:"stipend"`
	Positions      int       `gorm:"default:1" json:"positions"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`

	Company Company `gorm:"foreignKey:CompanyID" json:"-"`
}

func (Internship) TableName() string {
	return "internships"
}

// Summary converts the posting into the descriptor consumed by the matcher.
func (i *Internship) Summary() InternshipSummary {
	skills := i.RequiredSkills
	if skills == nil {
		skills = []string{}
	}

	return InternshipSummary{
		ID:             i.ID,
		RequiredSkills: skills,
		Location:       i.Location,
		Title:          i.Title,
	}
}
