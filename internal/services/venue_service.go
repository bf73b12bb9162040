package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/orgspace/orgspace-api/internal/models"
	"github.com/orgspace/orgspace-api/internal/repository"
)

var (
	ErrVenueNotFound    = errors.New("venue not found")
	ErrInvalidVenueName = errors.New("venue name cannot be empty")
)

// VenueService provides business logic for venue management.
type VenueService struct {
	venueRepo repository.VenueRepository
}

// NewVenueService creates a new VenueService.
func NewVenueService(venueRepo repository.VenueRepository) *VenueService {
	return &VenueService{venueRepo: venueRepo}
}

// VenueInput represents parameters to create or update a venue.
type VenueInput struct {
	Name     string
	Unit     string
}

// CreateVenue creates a new venue.
func (s *VenueService) CreateVenue(input VenueInput) (*models.Venue, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidVenueName
	}

	venue := &models.Venue{
		Name:     name,
		Unit:     strings.TrimSpace(input.Unit),
	}

	if err := s.venueRepo.Create(venue); err != nil {
		return nil, fmt.Errorf("failed to create venue: %w", err)
	}
	return venue, nil
}

// GetVenue retrieves a venue by ID.
func (s *VenueService) GetVenue(id uint64) (*models.Venue, error) {
	venue, err := s.venueRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("failed to find venue: %w", err)
	}
	return venue, nil
}

// ListVenues retrieves all venues.
func (s *VenueService) ListVenues() ([]models.Venue, error) {
	venues, err := s.venueRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	return venues, nil
}

// UpdateVenue updates a venue.
func (s *VenueService) UpdateVenue(id uint64, input VenueInput) (*models.Venue, error) {
	venue, err := s.venueRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("failed to find venue: %w", err)
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		venue.Name = name
	}
	if unit := strings.TrimSpace(input.Unit); unit != "" {
		venue.Unit = unit
	}

	if err := s.venueRepo.Update(venue); err != nil {
		return nil, fmt.Errorf("failed to update venue: %w", err)
	}
	return venue, nil
}

// DeleteVenue soft deletes a venue.
func (s *VenueService) DeleteVenue(id uint64) error {
	if _, err := s.venueRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVenueNotFound
		}
		return fmt.Errorf("failed to find venue: %w", err)
	}

	if err := s.venueRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete venue: %w", err)
	}
	return nil
}
