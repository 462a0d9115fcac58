package modules

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/stayhub/rental-api/internal/interface/http"
	"github.com/stayhub/rental-api/internal/interface/middleware"
	"github.com/stayhub/rental-api/internal/pipeline"
)

// UserModule mounts registration, login, token refresh, logout and the
// credential check.
type UserModule struct {
	Handler  *handlers.UserHandler
	Verifier pipeline.TokenVerifier
	Redis    *redis.Client
}

func NewUserModule(h *handlers.UserHandler, verifier pipeline.TokenVerifier, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, Verifier: verifier, Redis: rdb}
}

func (m *UserModule) Routes() []Route {
	registerLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	refreshLimiter := middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	return []Route{
		{
			Route: pipeline.Route{
				Method:  http.MethodPost,
				Path:    "/users/register",
				Guards:  []pipeline.Guard{pipeline.ValidateDTO(func() any { return &handlers.RegisterRequest{} })},
				Handler: m.Handler.Register,
			},
			Middlewares: []gin.HandlerFunc{registerLimiter},
		},
		{
			Route: pipeline.Route{
				Method:  http.MethodPost,
				Path:    "/users/login",
				Guards:  []pipeline.Guard{pipeline.ValidateDTO(func() any { return &handlers.LoginRequest{} })},
				Handler: m.Handler.Login,
			},
			Middlewares: []gin.HandlerFunc{loginLimiter},
		},
		{
			Route: pipeline.Route{
				Method:  http.MethodPost,
				Path:    "/users/refresh",
				Guards:  []pipeline.Guard{pipeline.ValidateDTO(func() any { return &handlers.RefreshRequest{} })},
				Handler: m.Handler.Refresh,
			},
			Middlewares: []gin.HandlerFunc{refreshLimiter},
		},
		{
			Route: pipeline.Route{
				Method:  http.MethodPost,
				Path:    "/users/logout",
				Guards:  []pipeline.Guard{pipeline.Auth(m.Verifier)},
				Handler: m.Handler.Logout,
			},
		},
		{
			Route: pipeline.Route{
				Method:  http.MethodGet,
				Path:    "/users/login",
				Guards:  []pipeline.Guard{pipeline.Auth(m.Verifier)},
				Handler: m.Handler.CheckAuth,
			},
		},
	}
}
