package models

import (
	"time"

	"gorm.io/gorm"
)

// UserOnOrg is an organisation membership. IsIGHead marks the member as the
// head of that organisation.
type UserOnOrg struct {
	UserID     uint64         `gorm:"primarykey" json:"user_id"`
	OrgID      uint64         `gorm:"primarykey" json:"org_id"`
	IsIGHead   bool           `gorm:"not null;default:false" json:"is_ig_head"`
	AssignedAt time.Time      `json:"assigned_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User         User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Organisation Organisation `gorm:"foreignKey:OrgID" json:"organisation,omitempty"`
}
