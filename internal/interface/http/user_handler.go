package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stayhub/rental-api/internal/application"
	"github.com/stayhub/rental-api/internal/domain/entity"
	"github.com/stayhub/rental-api/internal/pipeline"
	"github.com/stayhub/rental-api/pkg/apperr"
	"github.com/stayhub/rental-api/pkg/response"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,pwd"`
	Name      string `json:"name" binding:"required,min=1,max=15"`
	AvatarURL string `json:"avatar_url" binding:"omitempty,url"`
	Role      string `json:"role" binding:"omitempty,oneof=regular pro"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type userView struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	Role      string `json:"role"`
}

type tokenView struct {
	AccessToken      string    `json:"access_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshToken     string    `json:"refresh_token"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

func newUserView(u *entity.User) userView {
	return userView{ID: u.ID, Email: u.Email, Name: u.Name, AvatarURL: u.AvatarURL, Role: string(u.Role)}
}

func newTokenView(p application.TokenPair) tokenView {
	return tokenView{
		AccessToken:      p.AccessToken,
		AccessExpiresAt:  p.AccessTokenExpiry,
		RefreshToken:     p.RefreshToken,
		RefreshExpiresAt: p.RefreshTokenExpiry,
	}
}

func (h *UserHandler) Register(c *gin.Context, st *pipeline.State) error {
	req := st.Body.(*RegisterRequest)
	role := entity.RoleRegular
	if req.Role != "" {
		role, _ = entity.ParseUserRole(req.Role)
	}
	u, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
		Role:      role,
	})
	if err != nil {
		return err
	}
	response.OK(c, http.StatusCreated, newUserView(u), "user registered")
	return nil
}

func (h *UserHandler) Login(c *gin.Context, st *pipeline.State) error {
	req := st.Body.(*LoginRequest)
	u, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	response.OK(c, http.StatusOK, gin.H{"user": newUserView(u), "tokens": newTokenView(pair)}, "login successful")
	return nil
}

func (h *UserHandler) Refresh(c *gin.Context, st *pipeline.State) error {
	req := st.Body.(*RefreshRequest)
	u, pair, err := h.Svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		return err
	}
	response.OK(c, http.StatusOK, gin.H{"user": newUserView(u), "tokens": newTokenView(pair)}, "token refreshed")
	return nil
}

func (h *UserHandler) Logout(c *gin.Context, st *pipeline.State) error {
	if err := h.Svc.Logout(c.Request.Context(), st.UserID()); err != nil {
		return err
	}
	response.NoContent(c)
	return nil
}

// CheckAuth returns the caller's profile from a valid credential. A valid
// token pointing at a deleted user still reads as unauthorized.
func (h *UserHandler) CheckAuth(c *gin.Context, st *pipeline.State) error {
	u, err := h.Svc.GetProfile(c.Request.Context(), st.UserID())
	if err != nil {
		if ae := apperr.From(err); ae.Kind() == apperr.KindNotFound {
			return apperr.Unauthorized()
		}
		return err
	}
	response.OK(c, http.StatusOK, newUserView(u), "profile")
	return nil
}
