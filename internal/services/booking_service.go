package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/orgspace/orgspace-api/internal/apperrors"
	"github.com/orgspace/orgspace-api/internal/models"
	"github.com/orgspace/orgspace-api/internal/policy"
	"github.com/orgspace/orgspace-api/internal/registry"
	"github.com/orgspace/orgspace-api/internal/repository"
)

// MsgBookingConflict is the fixed user-facing message for overlapping
// bookings.
const MsgBookingConflict = "Booking overlaps with an existing booking at this venue"

// BookingService orchestrates booking mutations: it applies the constraint
// engine and the admin re-targeting rule before persisting. Authorization is
// the controller's job, via the gate.
type BookingService struct {
	bookingRepo repository.BookingRepository
	venueRepo   repository.VenueRepository
	orgRepo     repository.OrganisationRepository
	dir         policy.Directory
	rules       policy.SlotRules

	// now is swapped out in tests
	now func() time.Time
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookingRepo repository.BookingRepository,
	venueRepo repository.VenueRepository,
	orgRepo repository.OrganisationRepository,
	dir policy.Directory,
	rules policy.SlotRules,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		venueRepo:   venueRepo,
		orgRepo:     orgRepo,
		dir:         dir,
		rules:       rules,
		now:         time.Now,
	}
}

// AddBookingInput represents parameters to create a new booking.
type AddBookingInput struct {
	EventName string
	VenueID   uint64
	UserOrgID uint64
	Start     time.Time
	End       time.Time
}

// AddBooking creates a booking. The conflict check, constraint policies, and
// the write run inside one database transaction to narrow the
// check-then-act race between concurrent requests for the same venue.
func (s *BookingService) AddBooking(ctx context.Context, user *models.User, input AddBookingInput) (*models.Booking, error) {
	if _, err := s.venueRepo.FindByID(input.VenueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("venue", input.VenueID)
		}
		return nil, fmt.Errorf("failed to find venue: %w", err)
	}

	if err := policy.ValidateSlotAlignment(s.rules, input.Start, input.End); err != nil {
		return nil, err
	}

	userOrgID := input.UserOrgID
	var bookedForOrgID *uint64

	privileged, err := s.isPrivilegedBooker(ctx, user)
	if err != nil {
		return nil, err
	}

	// A booking admin booking for an org they do not belong to books as
	// their own admin org; the originally requested org is kept for audit.
	if privileged {
		ownOrgs, err := s.dir.OrgIDsForUser(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if !containsID(ownOrgs, input.UserOrgID) {
			adminOrgID, err := s.adminOrgOf(ctx, ownOrgs)
			if err != nil {
				return nil, err
			}
			if adminOrgID != 0 {
				requested := input.UserOrgID
				bookedForOrgID = &requested
				userOrgID = adminOrgID
			}
		}
	}

	var booking *models.Booking
	err = s.bookingRepo.Transaction(func(txRepo repository.BookingRepository) error {
		overlapping, err := txRepo.FindOverlapping(input.VenueID, input.Start, input.End, nil)
		if err != nil {
			return fmt.Errorf("failed to check for conflicts: %w", err)
		}
		if len(overlapping) > 0 {
			return apperrors.NewConflict(MsgBookingConflict)
		}

		constraints := []policy.Policy{
			policy.NotTooShort(s.rules, input.Start, input.End),
		}
		if !privileged {
			constraints = append(constraints, policy.NotTooLong(s.rules, input.Start, input.End))
		}
		constraints = append(constraints,
			policy.WithinAdvanceWindow(s.rules, input.Start, s.now()),
			policy.NotStacked(txRepo, s.dir, s.rules, input.VenueID, userOrgID, input.Start, input.End),
		)

		res, err := policy.All(constraints...).Evaluate(ctx, user)
		if err != nil {
			return err
		}
		if res.Decision != policy.DecisionAllow {
			return apperrors.NewConflict(res.Reason)
		}

		booking = &models.Booking{
			EventName:      input.EventName,
			VenueID:        input.VenueID,
			UserID:         user.ID,
			UserOrgID:      userOrgID,
			Start:          input.Start,
			End:            input.End,
			BookedAt:       s.now(),
			BookedForOrgID: bookedForOrgID,
		}
		if err := txRepo.Create(booking); err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return booking, nil
}

// UpdateBookingInput represents parameters to update an existing booking.
type UpdateBookingInput struct {
	EventName string
	Start     time.Time
	End       time.Time
}

// UpdateBooking updates a booking's event name and interval. The conflict
// check excludes the booking's own id.
func (s *BookingService) UpdateBooking(ctx context.Context, id uint64, input UpdateBookingInput) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("booking", id)
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	if err := policy.ValidateSlotAlignment(s.rules, input.Start, input.End); err != nil {
		return nil, err
	}

	err = s.bookingRepo.Transaction(func(txRepo repository.BookingRepository) error {
		overlapping, err := txRepo.FindOverlapping(booking.VenueID, input.Start, input.End, &booking.ID)
		if err != nil {
			return fmt.Errorf("failed to check for conflicts: %w", err)
		}
		if len(overlapping) > 0 {
			return apperrors.NewConflict(MsgBookingConflict)
		}

		booking.EventName = input.EventName
		booking.Start = input.Start
		booking.End = input.End
		if err := txRepo.Update(booking); err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return booking, nil
}

// DestroyBooking deletes a booking. Deletion is terminal.
func (s *BookingService) DestroyBooking(ctx context.Context, id uint64) error {
	if _, err := s.bookingRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("booking", id)
		}
		return fmt.Errorf("failed to find booking: %w", err)
	}

	if err := s.bookingRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return nil
}

// GetBooking retrieves a booking by id.
func (s *BookingService) GetBooking(id uint64) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("booking", id)
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return booking, nil
}

// ListBookings lists a venue's bookings intersecting [from, to).
func (s *BookingService) ListBookings(venueID uint64, from, to time.Time) ([]models.Booking, error) {
	if _, err := s.venueRepo.FindByID(venueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("venue", venueID)
		}
		return nil, fmt.Errorf("failed to find venue: %w", err)
	}

	bookings, err := s.bookingRepo.ListByVenue(venueID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// CanManageBooking reports whether the user owns the booking or heads the
// booking's organisation. Used by controllers alongside the delete/update
// policies.
func (s *BookingService) CanManageBooking(ctx context.Context, user *models.User, booking *models.Booking) (bool, error) {
	if user == nil {
		return false, nil
	}
	if booking.UserID == user.ID {
		return true, nil
	}
	member, err := s.orgRepo.FindMember(booking.UserOrgID, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to find membership: %w", err)
	}
	return member.IsIGHead, nil
}

// isPrivilegedBooker reports whether the user is a recognized booking admin:
// either the canCreateBooking ability or membership in an admin org.
func (s *BookingService) isPrivilegedBooker(ctx context.Context, user *models.User) (bool, error) {
	if user == nil {
		return false, nil
	}
	abilities, err := s.dir.AbilitiesForUser(ctx, user.ID)
	if err != nil {
		return false, err
	}
	for _, a := range abilities {
		if a == registry.CanCreateBooking || a == registry.CanManageAll {
			return true, nil
		}
	}
	orgIDs, err := s.dir.OrgIDsForUser(ctx, user.ID)
	if err != nil {
		return false, err
	}
	for _, orgID := range orgIDs {
		adminOrg, err := s.dir.IsAdminOrg(ctx, orgID)
		if err != nil {
			return false, err
		}
		if adminOrg {
			return true, nil
		}
	}
	return false, nil
}

// adminOrgOf returns the first admin org among the given ids, or 0.
func (s *BookingService) adminOrgOf(ctx context.Context, orgIDs []uint64) (uint64, error) {
	for _, orgID := range orgIDs {
		adminOrg, err := s.dir.IsAdminOrg(ctx, orgID)
		if err != nil {
			return 0, err
		}
		if adminOrg {
			return orgID, nil
		}
	}
	return 0, nil
}

func containsID(ids []uint64, id uint64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
