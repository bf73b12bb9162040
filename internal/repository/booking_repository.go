package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/orgspace/orgspace-api/internal/models"
)

// GormBookingRepository is a GORM implementation of BookingRepository
type GormBookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &GormBookingRepository{db: db}
}

// Create creates a new booking
func (r *GormBookingRepository) Create(booking *models.Booking) error {
	return r.db.Create(booking).Error
}

// FindByID finds a booking by ID
func (r *GormBookingRepository) FindByID(id uint64) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListByVenue lists a venue's bookings intersecting [from, to)
func (r *GormBookingRepository) ListByVenue(venueID uint64, from, to time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.
		Where("venue_id = ? AND start_time < ? AND end_time > ?", venueID, to, from).
		Order("start_time").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// Update updates a booking
func (r *GormBookingRepository) Update(booking *models.Booking) error {
	return r.db.Save(booking).Error
}

// Delete soft deletes a booking
func (r *GormBookingRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Booking{}, id).Error
}

// FindOverlapping returns the venue's bookings overlapping [start, end) under
// half-open semantics: existing.start < end AND existing.end > start.
// Adjacent bookings do not overlap.
func (r *GormBookingRepository) FindOverlapping(venueID uint64, start, end time.Time, excludeID *uint64) ([]models.Booking, error) {
	query := r.db.
		Where("venue_id = ? AND start_time < ? AND end_time > ?", venueID, end, start)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// LatestEndingBefore finds the latest booking for (venue, org) ending at or
// before t
func (r *GormBookingRepository) LatestEndingBefore(ctx context.Context, venueID, orgID uint64, t time.Time) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Where("venue_id = ? AND user_org_id = ? AND end_time <= ?", venueID, orgID, t).
		Order("end_time DESC").
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// EarliestStartingAfter finds the earliest booking for (venue, org) starting
// at or after t
func (r *GormBookingRepository) EarliestStartingAfter(ctx context.Context, venueID, orgID uint64, t time.Time) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Where("venue_id = ? AND user_org_id = ? AND start_time >= ?", venueID, orgID, t).
		Order("start_time ASC").
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// Transaction runs fn against a repository bound to one database transaction.
// The conflict and stacking checks are check-then-act against storage; running
// them and the write in a single transaction narrows the double-booking race.
func (r *GormBookingRepository) Transaction(fn func(BookingRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormBookingRepository{db: tx})
	})
}
