package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

type sampleDTO struct {
	Email  string `json:"email" binding:"required,email"`
	Rating int    `json:"rating" binding:"required,gte=1,lte=5"`
}

func TestToDetailsUsesJSONFieldNames(t *testing.T) {
	Init()

	err := binding.Validator.ValidateStruct(&sampleDTO{Email: "nope", Rating: 9})
	details := ToDetails(err)

	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "must be less than or equal to 5", details["rating"])
}

func TestToDetailsNilError(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
}
