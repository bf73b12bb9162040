package models

// RoleAbility links a role to one of its abilities.
type RoleAbility struct {
	RoleID    uint64 `gorm:"primarykey" json:"role_id"`
	AbilityID uint64 `gorm:"primarykey" json:"ability_id"`

	// Relations
	Role    Role    `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Ability Ability `gorm:"foreignKey:AbilityID" json:"ability,omitempty"`
}
