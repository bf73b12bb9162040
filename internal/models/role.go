package models

// Role is a named bundle of abilities, granted to organisations via OrgRole.
type Role struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`

	// Relations
	Abilities []RoleAbility `gorm:"foreignKey:RoleID" json:"abilities,omitempty"`
}
