package repository

import (
	"context"
	"time"

	"github.com/orgspace/orgspace-api/internal/models"
	"github.com/orgspace/orgspace-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByTelegramID finds a user by their Telegram numeric id
	FindByTelegramID(telegramID string) (*models.User, error)

	// FindByTelegramUserName finds a user whose Telegram id has not been
	// linked yet, matching by username
	FindByTelegramUserName(username string) (*models.User, error)

	// ExistsByTelegramUserName reports whether any user other than excludeID
	// already holds the given Telegram username
	ExistsByTelegramUserName(username string, excludeID uint64) (bool, error)

	// List retrieves users with pagination
	List(params utils.PaginationParams) ([]models.User, int64, error)

	// Update updates a user
	Update(user *models.User) error

	// Delete soft deletes a user
	Delete(id uint64) error
}

// OrganisationRepository defines the interface for organisation data access
type OrganisationRepository interface {
	// Create creates a new organisation
	Create(org *models.Organisation) error

	// FindByID finds an organisation by ID
	FindByID(id uint64) (*models.Organisation, error)

	// FindBySlug finds an organisation by slug
	FindBySlug(slug string) (*models.Organisation, error)

	// List retrieves organisations; hidden (invisible or inactive) orgs are
	// filtered out unless includeHidden is set
	List(includeHidden bool, params utils.PaginationParams) ([]models.Organisation, int64, error)

	// Update updates an organisation
	Update(org *models.Organisation) error

	// Delete soft deletes an organisation
	Delete(id uint64) error

	// AddMember adds a membership edge
	AddMember(member *models.UserOnOrg) error

	// RemoveMember soft deletes a membership edge
	RemoveMember(orgID, userID uint64) error

	// FindMember finds a specific membership edge
	FindMember(orgID, userID uint64) (*models.UserOnOrg, error)

	// ListMembers lists all members of an organisation
	ListMembers(orgID uint64) ([]models.UserOnOrg, error)

	// ListMembershipsByUserID lists all organisations a user belongs to
	ListMembershipsByUserID(userID uint64) ([]models.UserOnOrg, error)
}

// VenueRepository defines the interface for venue data access
type VenueRepository interface {
	Create(venue *models.Venue) error
	FindByID(id uint64) (*models.Venue, error)
	List() ([]models.Venue, error)
	Update(venue *models.Venue) error
	Delete(id uint64) error
}

// BookingRepository defines the interface for booking data access. The
// neighbor lookups take a context because they also serve policy evaluation.
type BookingRepository interface {
	// Create creates a new booking
	Create(booking *models.Booking) error

	// FindByID finds a booking by ID
	FindByID(id uint64) (*models.Booking, error)

	// ListByVenue lists a venue's bookings intersecting [from, to)
	ListByVenue(venueID uint64, from, to time.Time) ([]models.Booking, error)

	// Update updates a booking
	Update(booking *models.Booking) error

	// Delete soft deletes a booking
	Delete(id uint64) error

	// FindOverlapping returns non-deleted bookings for the venue whose
	// interval overlaps [start, end) under half-open semantics, optionally
	// excluding one booking id (used on update)
	FindOverlapping(venueID uint64, start, end time.Time, excludeID *uint64) ([]models.Booking, error)

	// LatestEndingBefore finds the latest booking for (venue, org) ending at
	// or before t; nil when none exists
	LatestEndingBefore(ctx context.Context, venueID, orgID uint64, t time.Time) (*models.Booking, error)

	// EarliestStartingAfter finds the earliest booking for (venue, org)
	// starting at or after t; nil when none exists
	EarliestStartingAfter(ctx context.Context, venueID, orgID uint64, t time.Time) (*models.Booking, error)

	// Transaction runs fn against a repository bound to a single database
	// transaction
	Transaction(fn func(BookingRepository) error) error
}

// SubmissionRepository defines the interface for submission data access
type SubmissionRepository interface {
	Create(submission *models.Submission) error
	FindByID(id uint64) (*models.Submission, error)

	// List retrieves submissions, optionally scoped to one organisation;
	// publishedOnly hides drafts
	List(orgID *uint64, publishedOnly bool, params utils.PaginationParams) ([]models.Submission, int64, error)

	Update(submission *models.Submission) error
	Delete(id uint64) error
}
