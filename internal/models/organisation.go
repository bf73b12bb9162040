package models

import (
	"time"

	"gorm.io/gorm"
)

type OrganisationCategory string

const (
	CategorySports         OrganisationCategory = "sports"
	CategoryArts           OrganisationCategory = "arts"
	CategoryAcademic       OrganisationCategory = "academic"
	CategoryInterestGroup  OrganisationCategory = "interest_group"
	CategoryAdministrative OrganisationCategory = "administrative"
)

// Organisation is a student group. IsAdminOrg grants its members blanket
// elevated booking privileges (duration and stacking exemptions).
type Organisation struct {
	ID          uint64               `gorm:"primarykey" json:"id"`
	Name        string               `gorm:"type:varchar(255);not null" json:"name"`
	Slug        string               `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	Category    OrganisationCategory `gorm:"type:varchar(50);not null" json:"category"`
	IsAdminOrg  bool                 `gorm:"not null;default:false" json:"is_admin_org"`
	IsInactive  bool                 `gorm:"not null;default:false" json:"is_inactive"`
	IsInvisible bool                 `gorm:"not null;default:false" json:"is_invisible"`
	InviteLink  string               `gorm:"type:varchar(255)" json:"invite_link"`
	Description string               `gorm:"type:text" json:"description"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	DeletedAt   gorm.DeletedAt       `gorm:"index" json:"-"`

	// Relations
	Members []UserOnOrg `gorm:"foreignKey:OrgID" json:"members,omitempty"`
	Roles   []OrgRole   `gorm:"foreignKey:OrgID" json:"roles,omitempty"`
}
