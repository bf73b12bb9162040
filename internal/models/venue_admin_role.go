package models

// VenueAdminRole grants a role administrative rights over one specific venue,
// independent of organisation membership.
type VenueAdminRole struct {
	VenueID uint64 `gorm:"primarykey" json:"venue_id"`
	RoleID  uint64 `gorm:"primarykey" json:"role_id"`

	// Relations
	Venue Venue `gorm:"foreignKey:VenueID" json:"venue,omitempty"`
	Role  Role  `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}
