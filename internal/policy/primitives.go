package policy

import (
	"context"
	"fmt"
	"strings"

	"github.com/orgspace/orgspace-api/internal/models"
)

const (
	// ReasonNotLoggedIn is returned by every user-dependent primitive when
	// the request is anonymous.
	ReasonNotLoggedIn = "User is not logged in"
	// ReasonAdminOnly is the fixed reason of the Deny primitive.
	ReasonAdminOnly = "Denied. Only admin is allowed to perform this action."
)

type allowPolicy struct{}

// Allow returns a policy that unconditionally allows.
func Allow() Policy {
	return allowPolicy{}
}

func (allowPolicy) Evaluate(ctx context.Context, user *models.User) (Result, error) {
	return allowed(), nil
}

type denyPolicy struct{}

// Deny returns a policy that unconditionally denies. Operations guarded by it
// are reachable only through the gate's canManageAll bypass.
func Deny() Policy {
	return denyPolicy{}
}

func (denyPolicy) Evaluate(ctx context.Context, user *models.User) (Result, error) {
	return denied(ReasonAdminOnly), nil
}

type hasAnyAbilities struct {
	dir   Directory
	names []string
}

// HasAnyAbilities allows when the user holds at least one of the named
// abilities.
func HasAnyAbilities(dir Directory, names ...string) Policy {
	return hasAnyAbilities{dir: dir, names: names}
}

func (p hasAnyAbilities) Evaluate(ctx context.Context, user *models.User) (Result, error) {
	if user == nil {
		return denied(ReasonNotLoggedIn), nil
	}
	abilities, err := p.dir.AbilitiesForUser(ctx, user.ID)
	if err != nil {
		return Result{}, err
	}
	held := make(map[string]bool, len(abilities))
	for _, a := range abilities {
		held[a] = true
	}
	for _, name := range p.names {
		if held[name] {
			return allowed(), nil
		}
	}
	return denied(fmt.Sprintf("User does not have any of the following abilities: %s", strings.Join(p.names, ", "))), nil
}

type hasAllAbilities struct {
	dir   Directory
	names []string
}

// HasAllAbilities allows only when the user holds every named ability. The
// first missing ability is named in the denial reason.
func HasAllAbilities(dir Directory, names ...string) Policy {
	return hasAllAbilities{dir: dir, names: names}
}

func (p hasAllAbilities) Evaluate(ctx context.Context, user *models.User) (Result, error) {
	if user == nil {
		return denied(ReasonNotLoggedIn), nil
	}
	abilities, err := p.dir.AbilitiesForUser(ctx, user.ID)
	if err != nil {
		return Result{}, err
	}
	held := make(map[string]bool, len(abilities))
	for _, a := range abilities {
		held[a] = true
	}
	for _, name := range p.names {
		if !held[name] {
			return denied(fmt.Sprintf("User is missing the %s ability", name)), nil
		}
	}
	return allowed(), nil
}

type hasRole struct {
	dir  Directory
	name string
}

// HasRole allows when the user's role set, derived via organisation
// membership, contains the named role.
func HasRole(dir Directory, name string) Policy {
	return hasRole{dir: dir, name: name}
}

func (p hasRole) Evaluate(ctx context.Context, user *models.User) (Result, error) {
	if user == nil {
		return denied(ReasonNotLoggedIn), nil
	}
	roles, err := p.dir.RolesForUser(ctx, user.ID)
	if err != nil {
		return Result{}, err
	}
	for _, r := range roles {
		if r == p.name {
			return allowed(), nil
		}
	}
	return denied(fmt.Sprintf("User does not have the %s role", p.name)), nil
}

type belongToOrg struct {
	dir   Directory
	orgID uint64
}

// BelongToOrg allows when the user is a member of the given organisation.
func BelongToOrg(dir Directory, orgID uint64) Policy {
	return belongToOrg{dir: dir, orgID: orgID}
}

func (p belongToOrg) Evaluate(ctx context.Context, user *models.User) (Result, error) {
	if user == nil {
		return denied(ReasonNotLoggedIn), nil
	}
	orgIDs, err := p.dir.OrgIDsForUser(ctx, user.ID)
	if err != nil {
		return Result{}, err
	}
	for _, id := range orgIDs {
		if id == p.orgID {
			return allowed(), nil
		}
	}
	return denied(fmt.Sprintf("User does not belong to organisation %d", p.orgID)), nil
}

type allOf struct {
	children []Policy
}

// All evaluates its children in order and short-circuits on the first
// non-allow, propagating that child's result.
func All(policies ...Policy) Policy {
	return allOf{children: policies}
}

func (p allOf) Evaluate(ctx context.Context, user *models.User) (Result, error) {
	for _, child := range p.children {
		res, err := child.Evaluate(ctx, user)
		if err != nil {
			return Result{}, err
		}
		if res.Decision != DecisionAllow {
			return res, nil
		}
	}
	return allowed(), nil
}

type anyOf struct {
	children []Policy
}

// Any evaluates its children in order and short-circuits on the first allow.
// When every child denies, the denial reasons are joined with " OR " in child
// order. A two-factor demand is propagated as-is.
func Any(policies ...Policy) Policy {
	return anyOf{children: policies}
}

func (p anyOf) Evaluate(ctx context.Context, user *models.User) (Result, error) {
	reasons := make([]string, 0, len(p.children))
	for _, child := range p.children {
		res, err := child.Evaluate(ctx, user)
		if err != nil {
			return Result{}, err
		}
		switch res.Decision {
		case DecisionAllow:
			return allowed(), nil
		case DecisionTwoFactor:
			return res, nil
		default:
			reasons = append(reasons, res.Reason)
		}
	}
	return denied(strings.Join(reasons, " OR ")), nil
}
