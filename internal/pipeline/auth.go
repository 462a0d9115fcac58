package pipeline

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stayhub/rental-api/pkg/apperr"
)

const bearerPrefix = "Bearer "

func bearerToken(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	if h == "" || !strings.HasPrefix(h, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(h[len(bearerPrefix):])
	return token, token != ""
}

type authGuard struct {
	verifier TokenVerifier
	optional bool
}

// Auth requires a valid bearer credential and writes the decoded identity
// into the request state. A missing, malformed, expired or forged credential
// halts with the same unauthorized result; the cause is never disclosed.
func Auth(verifier TokenVerifier) Guard {
	return &authGuard{verifier: verifier}
}

// OptionalAuth decodes the identity when a valid bearer credential is
// present and continues anonymously otherwise. It never halts.
func OptionalAuth(verifier TokenVerifier) Guard {
	return &authGuard{verifier: verifier, optional: true}
}

func (g *authGuard) Kind() Kind {
	if g.optional {
		return KindOptionalAuth
	}
	return KindAuth
}

func (g *authGuard) Check(c *gin.Context, st *State) (Result, error) {
	token, ok := bearerToken(c)
	if !ok {
		if g.optional {
			return Continue(), nil
		}
		return Halt(apperr.Unauthorized()), nil
	}
	id, err := g.verifier.Verify(token)
	if err != nil {
		if g.optional {
			return Continue(), nil
		}
		return Halt(apperr.Unauthorized()), nil
	}
	st.Identity = &id
	return Continue(), nil
}
