package dto

import (
	"time"

	"github.com/orgspace/orgspace-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	TelegramUserName string `json:"telegram_user_name"`
}

// VenueDTO represents a venue in API responses
type VenueDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Unit string `json:"unit,omitempty"`
}

// BookingDTO represents a booking in API responses
type BookingDTO struct {
	ID             uint64           `json:"id"`
	EventName      string           `json:"event_name"`
	VenueID        uint64           `json:"venue_id"`
	UserID         uint64           `json:"user_id"`
	UserOrgID      uint64           `json:"user_org_id"`
	Start          time.Time        `json:"start"`
	End            time.Time        `json:"end"`
	BookedAt       time.Time        `json:"booked_at"`
	BookedForOrgID *uint64          `json:"booked_for_org_id,omitempty"`
	Venue          *VenueDTO        `json:"venue,omitempty"`
	User           *UserDTO         `json:"user,omitempty"`
	UserOrg        *OrganisationDTO `json:"user_org,omitempty"`
}

// BookingListResponse represents a venue's bookings over a window
type BookingListResponse struct {
	Bookings []BookingDTO `json:"bookings"`
	From     time.Time    `json:"from"`
	To       time.Time    `json:"to"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:               user.ID,
		Name:             user.Name,
		TelegramUserName: user.TelegramUserName,
	}
}

// ToVenueDTO converts a Venue model to VenueDTO
func ToVenueDTO(venue models.Venue) VenueDTO {
	return VenueDTO{
		ID:   venue.ID,
		Name: venue.Name,
		Unit: venue.Unit,
	}
}

// ToBookingDTO converts a Booking model to BookingDTO
func ToBookingDTO(booking models.Booking) BookingDTO {
	dto := BookingDTO{
		ID:             booking.ID,
		EventName:      booking.EventName,
		VenueID:        booking.VenueID,
		UserID:         booking.UserID,
		UserOrgID:      booking.UserOrgID,
		Start:          booking.Start,
		End:            booking.End,
		BookedAt:       booking.BookedAt,
		BookedForOrgID: booking.BookedForOrgID,
	}

	// Include venue if preloaded
	if booking.Venue.ID != 0 {
		venue := ToVenueDTO(booking.Venue)
		dto.Venue = &venue
	}

	// Include user if preloaded
	if booking.User.ID != 0 {
		user := ToUserDTO(booking.User)
		dto.User = &user
	}

	// Include organisation if preloaded
	if booking.UserOrg.ID != 0 {
		org := ToOrganisationDTO(booking.UserOrg)
		dto.UserOrg = &org
	}

	return dto
}

// ToBookingListResponse converts a slice of bookings to BookingListResponse
func ToBookingListResponse(bookings []models.Booking, from, to time.Time) BookingListResponse {
	items := make([]BookingDTO, len(bookings))
	for i, booking := range bookings {
		items[i] = ToBookingDTO(booking)
	}

	return BookingListResponse{
		Bookings: items,
		From:     from,
		To:       to,
	}
}
