package pipeline

import (
	"github.com/stayhub/rental-api/internal/domain/entity"
)

// Identity is the authenticated caller, populated by the auth guard and
// discarded with the request.
type Identity struct {
	ID   string
	Role entity.UserRole
}

// State is the request-scoped context accumulated across guards. Guards
// write into it; later guards and the handler read from it.
type State struct {
	// Identity is set by the auth guard; nil for anonymous requests.
	Identity *Identity
	// Resource is the entity fetched by the existence guard, cached so the
	// ownership guard and the handler do not refetch it.
	Resource Resource
	// Body is the DTO decoded by the validation guard.
	Body any
}

// UserID returns the authenticated user id or "" for anonymous requests.
func (s *State) UserID() string {
	if s.Identity == nil {
		return ""
	}
	return s.Identity.ID
}
