package middleware

import (
	"errors"

	"github.com/stayhub/rental-api/internal/domain/entity"
	"github.com/stayhub/rental-api/internal/pipeline"
	"github.com/stayhub/rental-api/pkg/helpers"
)

type jwtVerifier struct {
	jwt *helpers.JWTManager
}

// NewTokenVerifier adapts the JWT manager to the auth guard's verifier
// interface. Tokens carrying an unknown role are rejected outright.
func NewTokenVerifier(jwt *helpers.JWTManager) pipeline.TokenVerifier {
	return &jwtVerifier{jwt: jwt}
}

func (v *jwtVerifier) Verify(token string) (pipeline.Identity, error) {
	claims, err := v.jwt.ParseAccessToken(token)
	if err != nil {
		return pipeline.Identity{}, err
	}
	role, ok := entity.ParseUserRole(claims.Role)
	if !ok {
		return pipeline.Identity{}, errors.New("unknown role claim")
	}
	return pipeline.Identity{ID: claims.UserID, Role: role}, nil
}
