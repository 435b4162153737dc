package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "admitportal-backend/internal/auth"
	"admitportal-backend/internal/applications"
	"admitportal-backend/internal/records"
	"admitportal-backend/internal/shared/config"
	"admitportal-backend/internal/shared/metrics"
	"admitportal-backend/internal/shared/server/middleware"
	"admitportal-backend/internal/shared/server/respond"
	"admitportal-backend/internal/universities"
	"admitportal-backend/internal/users"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config              config.Config
	UsersHandler        *users.Handler
	UniversitiesHandler *universities.Handler
	RecordsHandler      *records.Handler
	ApplicationsHandler *applications.Handler
	GoogleAuth          *googleauth.GoogleService
}

const (
	rateGroupDefault = "DEFAULT"
	rateGroupUpload  = "UPLOAD"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				rateGroupDefault: {Rate: 20, Burst: 40},
				rateGroupUpload:  {Rate: 1, Burst: 5},
			},
			DefaultGroup: rateGroupDefault,
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/academic-records" {
					return rateGroupUpload
				}
				return rateGroupDefault
			},
		}),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterRoutes(api)
	}
	if deps.UniversitiesHandler != nil {
		deps.UniversitiesHandler.RegisterRoutes(api)
	}
	if deps.RecordsHandler != nil {
		deps.RecordsHandler.RegisterRoutes(api)
	}
	if deps.ApplicationsHandler != nil {
		deps.ApplicationsHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
