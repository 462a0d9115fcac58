package pipeline

import (
	"context"

	"github.com/gin-gonic/gin"
)

// Kind identifies a guard variant so route chains can be validated at
// registration time.
type Kind int

const (
	KindValidateID Kind = iota + 1
	KindValidateDTO
	KindAuth
	KindOptionalAuth
	KindExists
	KindOwner
)

func (k Kind) String() string {
	switch k {
	case KindValidateID:
		return "validate-id"
	case KindValidateDTO:
		return "validate-dto"
	case KindAuth:
		return "auth"
	case KindOptionalAuth:
		return "optional-auth"
	case KindExists:
		return "exists"
	case KindOwner:
		return "owner"
	default:
		return "unknown"
	}
}

// Guard is one ordered step of a route's pipeline. Check returns a halting
// Result for caller-attributable failures; an error return means the guard
// itself failed unexpectedly and the executor responds with a generic
// internal error.
type Guard interface {
	Kind() Kind
	Check(c *gin.Context, st *State) (Result, error)
}

// Resource is a stored entity that knows its owning user, enough for the
// ownership guard to compare against the authenticated identity.
type Resource interface {
	OwnedBy() string
}

// Lookup resolves a path-parameter id to a stored resource. The found flag
// distinguishes absence from store failure.
type Lookup interface {
	FindResource(ctx context.Context, id string) (Resource, bool, error)
}

// LookupFunc adapts a function to the Lookup interface.
type LookupFunc func(ctx context.Context, id string) (Resource, bool, error)

func (f LookupFunc) FindResource(ctx context.Context, id string) (Resource, bool, error) {
	return f(ctx, id)
}

// TokenVerifier validates a bearer credential and yields the identity it
// encodes. Verification failures carry no cause detail.
type TokenVerifier interface {
	Verify(token string) (Identity, error)
}
