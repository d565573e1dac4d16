package models

import (
	"time"

	"github.com/google/uuid"
)

type Student struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name             string    `gorm:"type:text;not null" json:"name"`
	Skills           []string  `gorm:"type:jsonb;serializer:json" json:"skills"`
	CGPA             float64   `gorm:"type:decimal(4,2)" json:"cgpa"`
	Location         string    `gorm:"type:text" json:"location"`
	DiversityFlag    bool      `gorm:"default:false" json:"diversity_flag"`
	ProfileCompleted bool      `gorm:"default:false" json:"profile_completed"`
	ResumeFilename   string    `gorm:"type:text" json:"resume_filename,omitempty"`
	ResumeText       string    `gorm:"type:text" json:"-"`
	CreatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Student) TableName() string {
	return "students"
}

// Profile converts the stored record into the snapshot consumed by the
// matcher, applying the permissive-input defaults for missing fields.
func (s *Student) Profile() StudentProfile {
	skills := s.Skills
	if skills == nil {
		skills = []string{}
	}

	return StudentProfile{
		Skills:        skills,
		CGPA:          s.CGPA,
		Location:      s.Location,
		DiversityFlag: s.DiversityFlag,
	}
}
