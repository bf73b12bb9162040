package policy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/orgspace/orgspace-api/internal/models"
	"github.com/orgspace/orgspace-api/internal/registry"
)

// OrgHeadBookingLimit caps bookings created by organisation heads who lack the
// canCreateBooking ability.
const OrgHeadBookingLimit = 2 * time.Hour

// Organisations, users, venues, and bookings are world-readable.

func ViewOrganisation() Policy { return Allow() }
func ViewUser() Policy         { return Allow() }
func ViewVenue() Policy        { return Allow() }
func ViewBooking() Policy      { return Allow() }

// Organisation and user mutation is reserved for canManageAll holders, who
// enter through the gate's admin bypass; the policies themselves deny.

func CreateOrganisation() Policy { return Deny() }
func UpdateOrganisation() Policy { return Deny() }
func DeleteOrganisation() Policy { return Deny() }
func CreateUser() Policy         { return Deny() }
func UpdateUser() Policy         { return Deny() }
func DeleteUser() Policy         { return Deny() }
func CreateVenue() Policy        { return Deny() }
func UpdateVenue() Policy        { return Deny() }
func DeleteVenue() Policy        { return Deny() }

// CreateBooking allows holders of canCreateBooking unconditionally, and
// organisation heads for bookings up to OrgHeadBookingLimit.
func CreateBooking(dir Directory, start, end time.Time) Policy {
	return Any(
		HasAnyAbilities(dir, registry.CanCreateBooking),
		All(
			HasRole(dir, registry.RoleOrganisationHead),
			MaxDuration(OrgHeadBookingLimit, start, end),
		),
	)
}

// UpdateBooking and DeleteBooking are combined at the controller layer with an
// ownership / organisation-head check on the booking itself.

func UpdateBooking(dir Directory) Policy {
	return Any(HasAnyAbilities(dir, registry.CanUpdateBooking))
}

func DeleteBooking(dir Directory) Policy {
	return Any(HasAnyAbilities(dir, registry.CanDeleteBooking))
}

func ViewSubmission(dir Directory) Policy {
	return Any(HasAnyAbilities(dir, registry.CanViewSubmission))
}

func CreateSubmission(dir Directory) Policy {
	return Any(HasAnyAbilities(dir, registry.CanCreateSubmission))
}

func UpdateSubmission(dir Directory) Policy {
	return Any(HasAnyAbilities(dir, registry.CanUpdateSubmission))
}

func PublishSubmission(dir Directory) Policy {
	return Any(HasAnyAbilities(dir, registry.CanPublishSubmission))
}

func DeleteSubmission(dir Directory) Policy {
	return Any(HasAnyAbilities(dir, registry.CanDeleteSubmission))
}

type venueAdminForBooking struct {
	dir     Directory
	venueID uint64
}

// VenueAdminForBooking allows users whose role set intersects the venue's
// admin roles.
func VenueAdminForBooking(dir Directory, venueID uint64) Policy {
	return venueAdminForBooking{dir: dir, venueID: venueID}
}

func (p venueAdminForBooking) Evaluate(ctx context.Context, user *models.User) (Result, error) {
	if user == nil {
		return denied(ReasonNotLoggedIn), nil
	}
	userRoles, err := p.dir.RolesForUser(ctx, user.ID)
	if err != nil {
		return Result{}, err
	}
	venueRoles, err := p.dir.RolesForVenue(ctx, p.venueID)
	if err != nil {
		return Result{}, err
	}
	held := make(map[string]bool, len(userRoles))
	for _, r := range userRoles {
		held[r] = true
	}
	for _, r := range venueRoles {
		if held[r] {
			return allowed(), nil
		}
	}
	return denied(fmt.Sprintf("User does not have any of the venue admin roles: %s", strings.Join(venueRoles, ", "))), nil
}
