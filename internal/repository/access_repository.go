package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/orgspace/orgspace-api/internal/models"
	"github.com/orgspace/orgspace-api/internal/policy"
)

// GormAccessRepository resolves a user's effective abilities, roles, and
// organisations by walking the membership graph: UserOnOrg -> OrgRole -> Role
// -> RoleAbility -> Ability. It implements policy.Directory.
type GormAccessRepository struct {
	db *gorm.DB
}

// NewAccessRepository creates a new access repository
func NewAccessRepository(db *gorm.DB) policy.Directory {
	return &GormAccessRepository{db: db}
}

// AbilitiesForUser returns the union of ability names over all organisations
// the user belongs to
func (r *GormAccessRepository) AbilitiesForUser(ctx context.Context, userID uint64) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Table("abilities").
		Distinct("abilities.name").
		Joins("JOIN role_abilities ON role_abilities.ability_id = abilities.id").
		Joins("JOIN org_roles ON org_roles.role_id = role_abilities.role_id").
		Joins("JOIN user_on_orgs ON user_on_orgs.org_id = org_roles.org_id").
		Where("user_on_orgs.user_id = ? AND user_on_orgs.deleted_at IS NULL", userID).
		Pluck("abilities.name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// RolesForUser returns the union of role names over all organisations the
// user belongs to
func (r *GormAccessRepository) RolesForUser(ctx context.Context, userID uint64) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Table("roles").
		Distinct("roles.name").
		Joins("JOIN org_roles ON org_roles.role_id = roles.id").
		Joins("JOIN user_on_orgs ON user_on_orgs.org_id = org_roles.org_id").
		Where("user_on_orgs.user_id = ? AND user_on_orgs.deleted_at IS NULL", userID).
		Pluck("roles.name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// OrgIDsForUser returns the ids of the organisations the user belongs to
func (r *GormAccessRepository) OrgIDsForUser(ctx context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).
		Model(&models.UserOnOrg{}).
		Where("user_id = ?", userID).
		Pluck("org_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// RolesForVenue returns the names of the roles with admin rights over a venue
func (r *GormAccessRepository) RolesForVenue(ctx context.Context, venueID uint64) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Table("roles").
		Joins("JOIN venue_admin_roles ON venue_admin_roles.role_id = roles.id").
		Where("venue_admin_roles.venue_id = ?", venueID).
		Pluck("roles.name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// IsAdminOrg reports whether the organisation carries the admin-org flag. A
// missing organisation is simply not an admin org.
func (r *GormAccessRepository) IsAdminOrg(ctx context.Context, orgID uint64) (bool, error) {
	var org models.Organisation
	if err := r.db.WithContext(ctx).Select("is_admin_org").First(&org, orgID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return org.IsAdminOrg, nil
}
