package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/orgspace/orgspace-api/internal/models"
	"github.com/orgspace/orgspace-api/internal/repository"
	"github.com/orgspace/orgspace-api/internal/utils"
)

var (
	ErrOrganisationNotFound       = errors.New("organisation not found")
	ErrInvalidOrganisationName    = errors.New("organisation name cannot be empty")
	ErrInvalidOrganisationSlug    = errors.New("organisation slug cannot be empty")
	ErrOrganisationSlugTaken      = errors.New("organisation slug is already taken")
	ErrAlreadyOrganisationMember  = errors.New("user is already a member of this organisation")
	ErrOrganisationMemberNotFound = errors.New("organisation member not found")
)

// OrganisationService provides business logic for organisation operations.
type OrganisationService struct {
	orgRepo repository.OrganisationRepository
}

// NewOrganisationService creates a new OrganisationService.
func NewOrganisationService(orgRepo repository.OrganisationRepository) *OrganisationService {
	return &OrganisationService{
		orgRepo: orgRepo,
	}
}

// OrganisationInput represents parameters to create or update an organisation.
type OrganisationInput struct {
	Name        string
	Slug        string
	Category    models.OrganisationCategory
	IsAdminOrg  bool
	IsInactive  bool
	IsInvisible bool
	InviteLink  string
	Description string
}

// CreateOrganisation creates a new organisation.
func (s *OrganisationService) CreateOrganisation(input OrganisationInput) (*models.Organisation, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidOrganisationName
	}
	if strings.TrimSpace(input.Slug) == "" {
		return nil, ErrInvalidOrganisationSlug
	}

	if _, err := s.orgRepo.FindBySlug(input.Slug); err == nil {
		return nil, ErrOrganisationSlugTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}

	org := &models.Organisation{
		Name:        input.Name,
		Slug:        input.Slug,
		Category:    input.Category,
		IsAdminOrg:  input.IsAdminOrg,
		IsInactive:  input.IsInactive,
		IsInvisible: input.IsInvisible,
		InviteLink:  input.InviteLink,
		Description: input.Description,
	}

	if err := s.orgRepo.Create(org); err != nil {
		return nil, fmt.Errorf("failed to create organisation: %w", err)
	}
	return org, nil
}

// ListOrganisations returns organisations, hiding invisible and inactive ones
// unless includeHidden is set.
func (s *OrganisationService) ListOrganisations(includeHidden bool, params utils.PaginationParams) ([]models.Organisation, int64, error) {
	orgs, total, err := s.orgRepo.List(includeHidden, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list organisations: %w", err)
	}
	return orgs, total, nil
}

// GetOrganisationWithMembers returns an organisation and all of its members.
func (s *OrganisationService) GetOrganisationWithMembers(orgID uint64) (*models.Organisation, []models.UserOnOrg, error) {
	org, err := s.orgRepo.FindByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrOrganisationNotFound
		}
		return nil, nil, fmt.Errorf("failed to find organisation: %w", err)
	}

	members, err := s.orgRepo.ListMembers(orgID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list organisation members: %w", err)
	}

	return org, members, nil
}

// UpdateOrganisation updates an organisation.
func (s *OrganisationService) UpdateOrganisation(orgID uint64, input OrganisationInput) (*models.Organisation, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidOrganisationName
	}

	org, err := s.orgRepo.FindByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganisationNotFound
		}
		return nil, fmt.Errorf("failed to find organisation: %w", err)
	}

	if input.Slug != "" && input.Slug != org.Slug {
		if _, err := s.orgRepo.FindBySlug(input.Slug); err == nil {
			return nil, ErrOrganisationSlugTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check slug: %w", err)
		}
		org.Slug = input.Slug
	}

	org.Name = input.Name
	org.Category = input.Category
	org.IsAdminOrg = input.IsAdminOrg
	org.IsInactive = input.IsInactive
	org.IsInvisible = input.IsInvisible
	org.InviteLink = input.InviteLink
	org.Description = input.Description

	if err := s.orgRepo.Update(org); err != nil {
		return nil, fmt.Errorf("failed to update organisation: %w", err)
	}
	return org, nil
}

// DeleteOrganisation removes an organisation.
func (s *OrganisationService) DeleteOrganisation(orgID uint64) error {
	if _, err := s.orgRepo.FindByID(orgID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrganisationNotFound
		}
		return fmt.Errorf("failed to find organisation: %w", err)
	}

	if err := s.orgRepo.Delete(orgID); err != nil {
		return fmt.Errorf("failed to delete organisation: %w", err)
	}
	return nil
}

// AddMember adds a user to an organisation.
func (s *OrganisationService) AddMember(orgID, userID uint64, isIGHead bool) (*models.UserOnOrg, error) {
	if _, err := s.orgRepo.FindByID(orgID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganisationNotFound
		}
		return nil, fmt.Errorf("failed to find organisation: %w", err)
	}

	if _, err := s.orgRepo.FindMember(orgID, userID); err == nil {
		return nil, ErrAlreadyOrganisationMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	member := &models.UserOnOrg{
		OrgID:      orgID,
		UserID:     userID,
		IsIGHead:   isIGHead,
		AssignedAt: time.Now(),
	}

	if err := s.orgRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}
	return member, nil
}

// RemoveMember removes a member from the organisation.
func (s *OrganisationService) RemoveMember(orgID, userID uint64) error {
	if _, err := s.orgRepo.FindMember(orgID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrganisationMemberNotFound
		}
		return fmt.Errorf("failed to find organisation member: %w", err)
	}

	if err := s.orgRepo.RemoveMember(orgID, userID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}
