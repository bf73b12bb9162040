// Package registry holds the constant catalog of abilities, roles, and the
// role-to-ability grant table. The catalog is built once at startup and is
// read-only afterwards; all domain policies reference abilities and roles by
// these names.
package registry

import "fmt"

// Ability names. These strings are the stable identifiers used in policies
// and stored in the abilities table.
const (
	CanManageAll         = "canManageAll"
	CanCreateBooking     = "canCreateBooking"
	CanUpdateBooking     = "canUpdateBooking"
	CanDeleteBooking     = "canDeleteBooking"
	CanViewSubmission    = "canViewSubmission"
	CanCreateSubmission  = "canCreateSubmission"
	CanUpdateSubmission  = "canUpdateSubmission"
	CanPublishSubmission = "canPublishSubmission"
	CanDeleteSubmission  = "canDeleteSubmission"
)

// Role names.
const (
	RoleWebsiteAdmin     = "website_admin"
	RoleBookingAdmin     = "booking_admin"
	RoleOrganisationHead = "organisation_head"
	RoleAcadsAdmin       = "acads_admin"
	RoleMember           = "member"
)

// Ability describes one named permission.
type Ability struct {
	Name        string
	Description string
}

// Role describes one named role.
type Role struct {
	Name string
}

var abilityCatalog = []Ability{
	{Name: CanManageAll, Description: "Full administrative access to every resource"},
	{Name: CanCreateBooking, Description: "Create bookings of any length at any venue"},
	{Name: CanUpdateBooking, Description: "Update any booking"},
	{Name: CanDeleteBooking, Description: "Delete any booking"},
	{Name: CanViewSubmission, Description: "View unpublished submissions"},
	{Name: CanCreateSubmission, Description: "Create submissions"},
	{Name: CanUpdateSubmission, Description: "Update submissions"},
	{Name: CanPublishSubmission, Description: "Publish submissions"},
	{Name: CanDeleteSubmission, Description: "Delete submissions"},
}

var roleCatalog = []Role{
	{Name: RoleWebsiteAdmin},
	{Name: RoleBookingAdmin},
	{Name: RoleOrganisationHead},
	{Name: RoleAcadsAdmin},
	{Name: RoleMember},
}

var roleGrants = map[string][]string{
	RoleWebsiteAdmin: {
		CanManageAll,
		CanCreateBooking,
		CanUpdateBooking,
		CanDeleteBooking,
		CanViewSubmission,
		CanCreateSubmission,
		CanUpdateSubmission,
		CanPublishSubmission,
		CanDeleteSubmission,
	},
	RoleBookingAdmin: {
		CanCreateBooking,
		CanUpdateBooking,
		CanDeleteBooking,
	},
	RoleAcadsAdmin: {
		CanViewSubmission,
		CanCreateSubmission,
		CanUpdateSubmission,
		CanPublishSubmission,
		CanDeleteSubmission,
	},
	RoleOrganisationHead: {
		CanCreateSubmission,
	},
	RoleMember: {},
}

// Registry is the validated, name-indexed catalog.
type Registry struct {
	abilities map[string]Ability
	roles     map[string]Role
	grants    map[string][]string
}

// New builds the registry from the catalog tables. It returns an error if the
// grant table references a role or ability missing from the catalog.
func New() (*Registry, error) {
	r := &Registry{
		abilities: make(map[string]Ability, len(abilityCatalog)),
		roles:     make(map[string]Role, len(roleCatalog)),
		grants:    make(map[string][]string, len(roleGrants)),
	}

	for _, a := range abilityCatalog {
		if _, dup := r.abilities[a.Name]; dup {
			return nil, fmt.Errorf("registry: duplicate ability %q", a.Name)
		}
		r.abilities[a.Name] = a
	}
	for _, ro := range roleCatalog {
		if _, dup := r.roles[ro.Name]; dup {
			return nil, fmt.Errorf("registry: duplicate role %q", ro.Name)
		}
		r.roles[ro.Name] = ro
	}

	for roleName, abilities := range roleGrants {
		if _, ok := r.roles[roleName]; !ok {
			return nil, fmt.Errorf("registry: grant table references unknown role %q", roleName)
		}
		for _, abilityName := range abilities {
			if _, ok := r.abilities[abilityName]; !ok {
				return nil, fmt.Errorf("registry: role %q references unknown ability %q", roleName, abilityName)
			}
		}
		r.grants[roleName] = abilities
	}

	return r, nil
}

// Ability looks up an ability by name.
func (r *Registry) Ability(name string) (Ability, bool) {
	a, ok := r.abilities[name]
	return a, ok
}

// Role looks up a role by name.
func (r *Registry) Role(name string) (Role, bool) {
	ro, ok := r.roles[name]
	return ro, ok
}

// Abilities enumerates the full ability catalog in declaration order.
func (r *Registry) Abilities() []Ability {
	out := make([]Ability, len(abilityCatalog))
	copy(out, abilityCatalog)
	return out
}

// Roles enumerates the full role catalog in declaration order.
func (r *Registry) Roles() []Role {
	out := make([]Role, len(roleCatalog))
	copy(out, roleCatalog)
	return out
}

// AbilitiesForRole returns the ability names granted to a role.
func (r *Registry) AbilitiesForRole(roleName string) []string {
	grants := r.grants[roleName]
	out := make([]string, len(grants))
	copy(out, grants)
	return out
}
