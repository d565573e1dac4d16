package models

import (
	"time"

	"github.com/google/uuid"
)

type Company struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Location  string    `gorm:"type:text" json:"location"`
	Industry  string    `gorm:"type:text" json:"industry"`
	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Company) TableName() string {
	return "companies"
}
