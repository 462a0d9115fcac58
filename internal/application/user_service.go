package application

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/stayhub/rental-api/internal/domain/entity"
	"github.com/stayhub/rental-api/internal/domain/repository"
	"github.com/stayhub/rental-api/pkg/apperr"
	"github.com/stayhub/rental-api/pkg/helpers"
)

const sessionTTL = 24 * time.Hour

// UserService handles registration, login and profile lookups. Sessions are
// mirrored into Redis so logout can invalidate them early.
type UserService struct {
	Users  repository.UserRepository
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Logger *logrus.Logger
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func NewUserService(users repository.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, JWT: jwt, Redis: rdb, Logger: logger}
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

type RegisterInput struct {
	Email     string
	Password  string
	Name      string
	AvatarURL string
	Role      entity.UserRole
}

// Register creates a new user. A taken email is a conflict, never a silent
// overwrite.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	existing, err := s.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("an account with this email already exists")
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleRegular
	}
	u := &entity.User{
		Email:     in.Email,
		Password:  hash,
		Name:      in.Name,
		AvatarURL: in.AvatarURL,
		Role:      role,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email}).Info("user registered")
	return u, nil
}

// Login checks the credentials and issues a token pair. Every credential
// failure collapses into the same unauthorized error.
func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, TokenPair{}, err
	}
	if u == nil || !helpers.VerifyPassword(u.Password, password) {
		return nil, TokenPair{}, apperr.Unauthorized()
	}

	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

func (s *UserService) issueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, string(u.Role))
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, string(u.Role))
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		return TokenPair{}, err
	}

	if s.Redis != nil {
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"name":       u.Name,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		})
		pipe.Expire(ctx, key, sessionTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh rotates the token pair from a valid refresh token.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*entity.User, TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, TokenPair{}, apperr.Unauthorized()
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, TokenPair{}, err
	}
	if u == nil {
		return nil, TokenPair{}, apperr.Unauthorized()
	}
	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// Logout drops the user's session mirror. The access token itself stays
// valid until it expires.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Del(ctx, sessionKey(userID)).Err()
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("user", userID)
	}
	return u, nil
}
