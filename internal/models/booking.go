package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking reserves a venue for [Start, End). UserOrgID is the organisation
// charged with the booking; BookedForOrgID records the originally requested
// organisation when a booking admin books on behalf of another org.
type Booking struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	EventName      string         `gorm:"type:varchar(255);not null" json:"event_name"`
	VenueID        uint64         `gorm:"not null;index" json:"venue_id"`
	UserID         uint64         `gorm:"not null;index" json:"user_id"`
	UserOrgID      uint64         `gorm:"not null;index" json:"user_org_id"`
	Start          time.Time      `gorm:"column:start_time;not null;index" json:"start"`
	End            time.Time      `gorm:"column:end_time;not null;index" json:"end"`
	BookedAt       time.Time      `json:"booked_at"`
	BookedForOrgID *uint64        `json:"booked_for_org_id,omitempty"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Venue        Venue         `gorm:"foreignKey:VenueID" json:"venue,omitempty"`
	User         User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	UserOrg      Organisation  `gorm:"foreignKey:UserOrgID" json:"user_org,omitempty"`
	BookedForOrg *Organisation `gorm:"foreignKey:BookedForOrgID" json:"booked_for_org,omitempty"`
}
