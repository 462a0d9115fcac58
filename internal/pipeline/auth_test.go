package pipeline

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func authRequest(t *testing.T, header string) (*gin.Context, *State) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/t", nil)
	if header != "" {
		c.Request.Header.Set("Authorization", header)
	}
	return c, &State{}
}

func TestAuthValidToken(t *testing.T) {
	c, st := authRequest(t, "Bearer user:alice")

	res, err := Auth(fakeVerifier{}).Check(c, st)

	assert.NoError(t, err)
	assert.False(t, res.Halted())
	assert.Equal(t, "alice", st.UserID())
}

func TestAuthFailuresAreUniform(t *testing.T) {
	headers := map[string]string{
		"missing header":   "",
		"wrong scheme":     "Basic dXNlcjpwYXNz",
		"empty token":      "Bearer ",
		"rejected token":   "Bearer garbage",
	}

	var messages []string
	for name, header := range headers {
		c, st := authRequest(t, header)
		res, err := Auth(fakeVerifier{}).Check(c, st)

		assert.NoError(t, err, name)
		assert.True(t, res.Halted(), name)
		assert.Equal(t, http.StatusUnauthorized, res.Err().HTTPStatus(), name)
		assert.Nil(t, st.Identity, name)
		messages = append(messages, res.Err().Message())
	}
	for _, m := range messages {
		assert.Equal(t, messages[0], m)
	}
}

func TestOptionalAuthNeverHalts(t *testing.T) {
	for name, header := range map[string]string{
		"anonymous": "",
		"bad token": "Bearer garbage",
	} {
		c, st := authRequest(t, header)
		res, err := OptionalAuth(fakeVerifier{}).Check(c, st)

		assert.NoError(t, err, name)
		assert.False(t, res.Halted(), name)
		assert.Nil(t, st.Identity, name)
	}
}

func TestOptionalAuthDecodesValidToken(t *testing.T) {
	c, st := authRequest(t, "Bearer user:bob")

	res, err := OptionalAuth(fakeVerifier{}).Check(c, st)

	assert.NoError(t, err)
	assert.False(t, res.Halted())
	assert.Equal(t, "bob", st.UserID())
}
