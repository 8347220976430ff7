// Package access holds the single capability check used by every mutation
// and visibility path.
package access

import (
	"errors"

	"staybook/models"
)

// ErrForbidden is returned when an actor lacks the capability for an action.
var ErrForbidden = errors.New("you do not have permission to perform this action")

// Action names a guarded operation.
type Action string

const (
	CreateListing         Action = "listing:create"
	UpdateListing         Action = "listing:update"
	DeleteListing         Action = "listing:delete"
	ViewUnapprovedListing Action = "listing:view-unapproved"
	ModerateListing       Action = "listing:moderate"
	CreateBooking         Action = "booking:create"
	ReadBooking           Action = "booking:read"
	ReadAllBookings       Action = "booking:read-all"
	DeleteBooking         Action = "booking:delete"
	ManageUsers           Action = "user:manage"
)

// Actor is the authenticated caller. A zero Actor is anonymous.
type Actor struct {
	ID   string
	Role string
}

// ActorOf builds an Actor from a user record; nil yields the anonymous actor.
func ActorOf(u *models.User) Actor {
	if u == nil {
		return Actor{}
	}
	return Actor{ID: u.ID, Role: u.Role}
}

func (a Actor) IsAnonymous() bool { return a.ID == "" }
func (a Actor) IsAdmin() bool     { return a.Role == models.RoleAdmin }

// Can reports whether actor may perform action on a resource owned by ownerID.
// ownerID is ignored for actions that are not ownership scoped.
func Can(actor Actor, action Action, ownerID string) bool {
	if actor.IsAnonymous() {
		return false
	}
	if actor.IsAdmin() {
		return true
	}
	owns := ownerID != "" && ownerID == actor.ID

	switch action {
	case CreateListing:
		return actor.Role == models.RoleHost
	case UpdateListing, DeleteListing, ViewUnapprovedListing:
		return actor.Role == models.RoleHost && owns
	case CreateBooking:
		return true
	case ReadBooking:
		return owns
	default:
		// moderation, full booking access and user management are admin only
		return false
	}
}

// Require is Can returning ErrForbidden on denial.
func Require(actor Actor, action Action, ownerID string) error {
	if !Can(actor, action, ownerID) {
		return ErrForbidden
	}
	return nil
}
