// Package policy implements the composable authorization engine. A Policy
// evaluates to a Decision for an optional acting user; combinators build
// policies of policies to arbitrary depth. Evaluation returns the decision and
// reason together, so policies are stateless and safe to share.
package policy

import (
	"context"
	"time"

	"github.com/orgspace/orgspace-api/internal/models"
)

// Decision is the ternary outcome of a policy evaluation.
type Decision int

const (
	DecisionDeny Decision = iota
	DecisionAllow
	// DecisionTwoFactor is reserved by the contract; no concrete policy
	// currently returns it.
	DecisionTwoFactor
)

// Result carries a decision and, on denial, a human-readable reason.
type Result struct {
	Decision Decision
	Reason   string
}

// Policy is the unit of authorization. A nil user means the request is
// anonymous.
type Policy interface {
	Evaluate(ctx context.Context, user *models.User) (Result, error)
}

// Directory resolves a user's effective abilities, roles, and organisations
// (derived from org membership) and a venue's admin roles. Implemented by the
// access repository.
type Directory interface {
	AbilitiesForUser(ctx context.Context, userID uint64) ([]string, error)
	RolesForUser(ctx context.Context, userID uint64) ([]string, error)
	OrgIDsForUser(ctx context.Context, userID uint64) ([]uint64, error)
	RolesForVenue(ctx context.Context, venueID uint64) ([]string, error)
	IsAdminOrg(ctx context.Context, orgID uint64) (bool, error)
}

// NeighborFinder locates the bookings adjacent to a prospective slot for one
// (venue, organisation) pair. Both methods return nil when no neighbor exists.
type NeighborFinder interface {
	LatestEndingBefore(ctx context.Context, venueID, orgID uint64, t time.Time) (*models.Booking, error)
	EarliestStartingAfter(ctx context.Context, venueID, orgID uint64, t time.Time) (*models.Booking, error)
}

func allowed() Result {
	return Result{Decision: DecisionAllow}
}

func denied(reason string) Result {
	return Result{Decision: DecisionDeny, Reason: reason}
}
