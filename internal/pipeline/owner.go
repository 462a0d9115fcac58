package pipeline

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/stayhub/rental-api/pkg/apperr"
)

type ownerGuard struct{}

// Owner compares the cached resource's owner against the authenticated
// identity and halts with forbidden on mismatch. It relies on the auth and
// exists guards having run earlier in the chain; ValidateChain enforces
// that at registration time.
func Owner() Guard {
	return ownerGuard{}
}

func (ownerGuard) Kind() Kind { return KindOwner }

func (ownerGuard) Check(_ *gin.Context, st *State) (Result, error) {
	if st.Identity == nil || st.Resource == nil {
		return Continue(), errors.New("owner guard ran without auth and exists guards")
	}
	if st.Resource.OwnedBy() != st.Identity.ID {
		return Halt(apperr.Forbidden("only the owner may modify this resource")), nil
	}
	return Continue(), nil
}
