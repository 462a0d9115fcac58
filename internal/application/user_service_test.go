package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/stayhub/rental-api/internal/domain/entity"
	"github.com/stayhub/rental-api/pkg/apperr"
	"github.com/stayhub/rental-api/pkg/helpers"
)

func newUserService() (*UserService, *MockUserRepository) {
	users := new(MockUserRepository)
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	return NewUserService(users, jwt, nil, testLogger()), users
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc, users := newUserService()

	users.On("GetByEmail", mock.Anything, "taken@example.com").Return(&entity.User{ID: "u1"}, nil)

	_, err := svc.Register(context.Background(), RegisterInput{Email: "taken@example.com", Password: "secret12"})
	assert.Equal(t, apperr.KindConflict, apperr.From(err).Kind())
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterDefaultsToRegularRole(t *testing.T) {
	svc, users := newUserService()

	users.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Role == entity.RoleRegular && u.Password != "secret12"
	})).Return(nil)

	u, err := svc.Register(context.Background(), RegisterInput{Email: "new@example.com", Password: "secret12", Name: "Keks"})
	assert.NoError(t, err)
	assert.Equal(t, entity.RoleRegular, u.Role)
}

func TestLoginUnknownEmailAndWrongPasswordIndistinguishable(t *testing.T) {
	svc, users := newUserService()

	hash, err := helpers.HashPassword("right-password")
	assert.NoError(t, err)
	users.On("GetByEmail", mock.Anything, "known@example.com").Return(&entity.User{ID: "u1", Password: hash, Role: entity.RoleRegular}, nil)
	users.On("GetByEmail", mock.Anything, "unknown@example.com").Return(nil, nil)

	_, _, errWrong := svc.Login(context.Background(), "known@example.com", "wrong-password")
	_, _, errUnknown := svc.Login(context.Background(), "unknown@example.com", "whatever")

	assert.Equal(t, apperr.KindUnauthorized, apperr.From(errWrong).Kind())
	assert.Equal(t, apperr.KindUnauthorized, apperr.From(errUnknown).Kind())
	assert.Equal(t, apperr.From(errWrong).Message(), apperr.From(errUnknown).Message())
}

func TestLoginIssuesTokenPair(t *testing.T) {
	svc, users := newUserService()

	hash, err := helpers.HashPassword("right-password")
	assert.NoError(t, err)
	users.On("GetByEmail", mock.Anything, "known@example.com").Return(&entity.User{ID: "u1", Password: hash, Role: entity.RolePro}, nil)

	u, pair, err := svc.Login(context.Background(), "known@example.com", "right-password")
	assert.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.JWT.ParseAccessToken(pair.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, string(entity.RolePro), claims.Role)
}

func TestRefreshRejectsForgedToken(t *testing.T) {
	svc, _ := newUserService()

	_, _, err := svc.Refresh(context.Background(), "not-a-token")
	assert.Equal(t, apperr.KindUnauthorized, apperr.From(err).Kind())
}

func TestGetProfileMissingUser(t *testing.T) {
	svc, users := newUserService()

	users.On("GetByID", mock.Anything, "ghost").Return(nil, nil)

	_, err := svc.GetProfile(context.Background(), "ghost")
	assert.Equal(t, apperr.KindNotFound, apperr.From(err).Kind())
}
