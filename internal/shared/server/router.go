package server

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"biocard-backend/internal/shared/config"
	"biocard-backend/internal/shared/server/middleware"
)

// FeatureHandler attaches a feature's endpoints to the public and
// authenticated route groups.
type FeatureHandler interface {
	RegisterPublicRoutes(rg *gin.RouterGroup)
	RegisterProtectedRoutes(rg *gin.RouterGroup)
}

// OAuthHandler attaches browser-facing auth flow endpoints.
type OAuthHandler interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps carries everything the router mounts.
type RouterDeps struct {
	Config          config.Config
	Validator       middleware.TokenValidator
	AccountsHandler FeatureHandler
	ProfilesHandler FeatureHandler
	SystemHandler   FeatureHandler
	GoogleAuth      OAuthHandler
}

// NewRouter builds the gin engine with the shared middleware chain and all
// feature routes mounted under /api/v1.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT": {Rate: 20, Burst: 40},
			},
		}),
	)

	api := engine.Group("/api/v1")
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}

	features := []FeatureHandler{deps.AccountsHandler, deps.ProfilesHandler, deps.SystemHandler}
	for _, f := range features {
		if f != nil {
			f.RegisterPublicRoutes(api)
		}
	}

	protected := api.Group("", middleware.Auth(deps.Validator))
	for _, f := range features {
		if f != nil {
			f.RegisterProtectedRoutes(protected)
		}
	}

	return engine
}

// Addr returns a normalized listen address for the given port.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return fmt.Sprintf(":%s", port)
}
