package models

import (
	"time"

	"gorm.io/gorm"
)

// Submission is an academic submission made by a user on behalf of an
// organisation. Published submissions are world-readable.
type Submission struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Title     string         `gorm:"type:varchar(255);not null" json:"title"`
	Text      string         `gorm:"type:text" json:"text"`
	UserID    uint64         `gorm:"not null;index" json:"user_id"`
	OrgID     uint64         `gorm:"not null;index" json:"org_id"`
	Published bool           `gorm:"not null;default:false" json:"published"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User         User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Organisation Organisation `gorm:"foreignKey:OrgID" json:"organisation,omitempty"`
}
