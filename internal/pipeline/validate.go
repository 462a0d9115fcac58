package pipeline

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stayhub/rental-api/pkg/apperr"
	"github.com/stayhub/rental-api/pkg/validation"
)

type validateIDGuard struct {
	param string
}

// ValidateID rejects requests whose named path parameter is not a well
// formed UUID, before any guard that resolves the id against the store.
func ValidateID(param string) Guard {
	return &validateIDGuard{param: param}
}

func (g *validateIDGuard) Kind() Kind { return KindValidateID }

func (g *validateIDGuard) Check(c *gin.Context, _ *State) (Result, error) {
	raw := c.Param(g.param)
	if _, err := uuid.Parse(raw); err != nil {
		return Halt(apperr.Validation(raw+" is not a valid id", map[string]string{g.param: "must be a valid UUID"})), nil
	}
	return Continue(), nil
}

type validateDTOGuard struct {
	newDTO func() any
}

// ValidateDTO decodes and validates the request body into a fresh DTO from
// the factory, halting with per-field violations on failure. The decoded DTO
// is cached in the state for the handler.
func ValidateDTO(newDTO func() any) Guard {
	return &validateDTOGuard{newDTO: newDTO}
}

func (g *validateDTOGuard) Kind() Kind { return KindValidateDTO }

func (g *validateDTOGuard) Check(c *gin.Context, st *State) (Result, error) {
	dto := g.newDTO()
	if err := c.ShouldBindJSON(dto); err != nil {
		return Halt(apperr.Validation("invalid payload", validation.ToDetails(err))), nil
	}
	st.Body = dto
	return Continue(), nil
}
