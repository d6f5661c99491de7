package identity

import (
	"github.com/google/uuid"
)

// Role is an actor's access level, carried in the JWT claims.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleStaff    Role = "STAFF"
	RoleCustomer Role = "CUSTOMER"
)

// IsValid checks whether the role is one of the known values.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleCustomer:
		return true
	}
	return false
}

// IsStaff reports whether the role carries staff privileges.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleStaff
}

// Actor is the authenticated caller of an operation. A zero Actor
// (nil id) is an anonymous caller.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

// IsAnonymous reports whether the actor is unauthenticated.
func (a Actor) IsAnonymous() bool {
	return a.ID == uuid.Nil
}

// Rule is a capability rule: who may perform an operation on a resource.
type Rule int

const (
	// RuleAny admits everyone, authenticated or not.
	RuleAny Rule = iota
	// RuleAuthenticated admits any signed-in actor.
	RuleAuthenticated
	// RuleStaffOnly admits staff and admins.
	RuleStaffOnly
	// RuleOwnerOrStaff admits the resource owner plus staff and admins.
	RuleOwnerOrStaff
)

// Allowed evaluates a capability rule for an actor against a resource
// owner. The owner argument only matters for RuleOwnerOrStaff; pass
// uuid.Nil for unowned resources.
func Allowed(actor Actor, rule Rule, resourceOwner uuid.UUID) bool {
	switch rule {
	case RuleAny:
		return true
	case RuleAuthenticated:
		return !actor.IsAnonymous()
	case RuleStaffOnly:
		return !actor.IsAnonymous() && actor.Role.IsStaff()
	case RuleOwnerOrStaff:
		if actor.IsAnonymous() {
			return false
		}
		return actor.Role.IsStaff() || actor.ID == resourceOwner
	}
	return false
}
