package pipeline

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/stayhub/rental-api/pkg/validation"
)

type signupDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

func bodyRequest(t *testing.T, body string) (*gin.Context, *State) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/t", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, &State{}
}

func paramRequest(t *testing.T, param, value string) (*gin.Context, *State) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/t", nil)
	c.Params = gin.Params{{Key: param, Value: value}}
	return c, &State{}
}

func TestValidateIDAcceptsUUID(t *testing.T) {
	c, st := paramRequest(t, "offerId", "6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	res, err := ValidateID("offerId").Check(c, st)

	assert.NoError(t, err)
	assert.False(t, res.Halted())
}

func TestValidateIDRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "42", "not-a-uuid", "6ba7b810-9dad-11d1-80b4"} {
		c, st := paramRequest(t, "offerId", raw)

		res, err := ValidateID("offerId").Check(c, st)

		assert.NoError(t, err, raw)
		assert.True(t, res.Halted(), raw)
		assert.Equal(t, http.StatusBadRequest, res.Err().HTTPStatus(), raw)
	}
}

func TestValidateDTOCachesBody(t *testing.T) {
	validation.Init()
	c, st := bodyRequest(t, `{"email":"keks@example.com","password":"secret12"}`)

	res, err := ValidateDTO(func() any { return &signupDTO{} }).Check(c, st)

	assert.NoError(t, err)
	assert.False(t, res.Halted())
	dto, ok := st.Body.(*signupDTO)
	assert.True(t, ok)
	assert.Equal(t, "keks@example.com", dto.Email)
}

func TestValidateDTOHaltsWithFieldViolations(t *testing.T) {
	validation.Init()
	c, st := bodyRequest(t, `{"email":"not-an-email","password":"abc"}`)

	res, err := ValidateDTO(func() any { return &signupDTO{} }).Check(c, st)

	assert.NoError(t, err)
	assert.True(t, res.Halted())
	assert.Equal(t, http.StatusBadRequest, res.Err().HTTPStatus())
	details, ok := res.Err().Details.(map[string]string)
	assert.True(t, ok)
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "password")
	assert.Nil(t, st.Body)
}

func TestValidateDTOHaltsOnMalformedJSON(t *testing.T) {
	validation.Init()
	c, st := bodyRequest(t, `{"email": `)

	res, err := ValidateDTO(func() any { return &signupDTO{} }).Check(c, st)

	assert.NoError(t, err)
	assert.True(t, res.Halted())
	assert.Equal(t, http.StatusBadRequest, res.Err().HTTPStatus())
}

func TestOwnerWithoutStateIsGuardError(t *testing.T) {
	c, _ := paramRequest(t, "offerId", "x")

	_, err := Owner().Check(c, &State{})
	assert.Error(t, err)
}
