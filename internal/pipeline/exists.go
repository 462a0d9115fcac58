package pipeline

import (
	"github.com/gin-gonic/gin"

	"github.com/stayhub/rental-api/pkg/apperr"
)

type existsGuard struct {
	kind   string
	param  string
	lookup Lookup
}

// Exists confirms the path-parameter id resolves to a stored resource before
// the handler runs, halting with a not-found naming the resource kind
// otherwise. A deleted resource and one that never existed are
// indistinguishable. The fetched resource is cached in the state so later
// guards and the handler do not refetch it.
func Exists(kind, param string, lookup Lookup) Guard {
	return &existsGuard{kind: kind, param: param, lookup: lookup}
}

func (g *existsGuard) Kind() Kind { return KindExists }

func (g *existsGuard) Check(c *gin.Context, st *State) (Result, error) {
	id := c.Param(g.param)
	res, found, err := g.lookup.FindResource(c.Request.Context(), id)
	if err != nil {
		return Continue(), err
	}
	if !found {
		return Halt(apperr.NotFound(g.kind, id)), nil
	}
	st.Resource = res
	return Continue(), nil
}
