package models

import (
	"time"

	"gorm.io/gorm"
)

type Venue struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Unit      string         `gorm:"type:varchar(50)" json:"unit"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	AdminRoles []VenueAdminRole `gorm:"foreignKey:VenueID" json:"admin_roles,omitempty"`
	Bookings   []Booking        `gorm:"foreignKey:VenueID" json:"-"`
}
