package repository

import (
	"gorm.io/gorm"

	"github.com/orgspace/orgspace-api/internal/models"
	"github.com/orgspace/orgspace-api/internal/utils"
)

// GormOrganisationRepository is a GORM implementation of OrganisationRepository
type GormOrganisationRepository struct {
	db *gorm.DB
}

// NewOrganisationRepository creates a new OrganisationRepository
func NewOrganisationRepository(db *gorm.DB) OrganisationRepository {
	return &GormOrganisationRepository{db: db}
}

// Create creates a new organisation
func (r *GormOrganisationRepository) Create(org *models.Organisation) error {
	return r.db.Create(org).Error
}

// FindByID finds an organisation by ID
func (r *GormOrganisationRepository) FindByID(id uint64) (*models.Organisation, error) {
	var org models.Organisation
	if err := r.db.First(&org, id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// FindBySlug finds an organisation by slug
func (r *GormOrganisationRepository) FindBySlug(slug string) (*models.Organisation, error) {
	var org models.Organisation
	if err := r.db.Where("slug = ?", slug).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// List retrieves organisations, hiding invisible and inactive ones by default
func (r *GormOrganisationRepository) List(includeHidden bool, params utils.PaginationParams) ([]models.Organisation, int64, error) {
	query := r.db.Model(&models.Organisation{})
	if !includeHidden {
		query = query.Where("is_invisible = ? AND is_inactive = ?", false, false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orgs []models.Organisation
	if err := query.Offset(params.Offset).Limit(params.Limit).Find(&orgs).Error; err != nil {
		return nil, 0, err
	}
	return orgs, total, nil
}

// Update updates an organisation
func (r *GormOrganisationRepository) Update(org *models.Organisation) error {
	return r.db.Save(org).Error
}

// Delete soft deletes an organisation and its membership and role edges
func (r *GormOrganisationRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("org_id = ?", id).Delete(&models.UserOnOrg{}).Error; err != nil {
			return err
		}
		if err := tx.Where("org_id = ?", id).Delete(&models.OrgRole{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Organisation{}, id).Error
	})
}

// AddMember adds a membership edge
func (r *GormOrganisationRepository) AddMember(member *models.UserOnOrg) error {
	return r.db.Create(member).Error
}

// RemoveMember soft deletes a membership edge
func (r *GormOrganisationRepository) RemoveMember(orgID, userID uint64) error {
	return r.db.Where("org_id = ? AND user_id = ?", orgID, userID).
		Delete(&models.UserOnOrg{}).Error
}

// FindMember finds a specific membership edge
func (r *GormOrganisationRepository) FindMember(orgID, userID uint64) (*models.UserOnOrg, error) {
	var member models.UserOnOrg
	if err := r.db.Where("org_id = ? AND user_id = ?", orgID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers lists all members of an organisation
func (r *GormOrganisationRepository) ListMembers(orgID uint64) ([]models.UserOnOrg, error) {
	var members []models.UserOnOrg
	if err := r.db.Preload("User").
		Where("org_id = ?", orgID).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// ListMembershipsByUserID lists all organisations a user belongs to
func (r *GormOrganisationRepository) ListMembershipsByUserID(userID uint64) ([]models.UserOnOrg, error) {
	var memberships []models.UserOnOrg
	if err := r.db.Preload("Organisation").
		Where("user_id = ?", userID).
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}
