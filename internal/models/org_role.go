package models

// OrgRole grants a role to an organisation. A user's effective roles are the
// union over all organisations they belong to.
type OrgRole struct {
	OrgID  uint64 `gorm:"primarykey" json:"org_id"`
	RoleID uint64 `gorm:"primarykey" json:"role_id"`

	// Relations
	Organisation Organisation `gorm:"foreignKey:OrgID" json:"organisation,omitempty"`
	Role         Role         `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}
