package repository

import (
	"gorm.io/gorm"

	"github.com/orgspace/orgspace-api/internal/models"
)

// GormVenueRepository is a GORM implementation of VenueRepository
type GormVenueRepository struct {
	db *gorm.DB
}

// NewVenueRepository creates a new VenueRepository
func NewVenueRepository(db *gorm.DB) VenueRepository {
	return &GormVenueRepository{db: db}
}

func (r *GormVenueRepository) Create(venue *models.Venue) error {
	return r.db.Create(venue).Error
}

func (r *GormVenueRepository) FindByID(id uint64) (*models.Venue, error) {
	var venue models.Venue
	if err := r.db.First(&venue, id).Error; err != nil {
		return nil, err
	}
	return &venue, nil
}

func (r *GormVenueRepository) List() ([]models.Venue, error) {
	var venues []models.Venue
	if err := r.db.Order("name").Find(&venues).Error; err != nil {
		return nil, err
	}
	return venues, nil
}

func (r *GormVenueRepository) Update(venue *models.Venue) error {
	return r.db.Save(venue).Error
}

func (r *GormVenueRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Venue{}, id).Error
}
