package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"parser-backend/internal/schemas"
	"parser-backend/internal/shared/config"
	"parser-backend/internal/shared/server/middleware"
	"parser-backend/internal/shared/server/respond"
	"parser-backend/internal/uploads"
)

// ErrorNameRouteNotFound is returned for requests no handler matches.
const ErrorNameRouteNotFound = "ROUTE_NOT_FOUND"

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config        config.Config
	SchemaHandler *schemas.Handler
	UploadHandler *uploads.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	registerDocsRoutes(r)

	group := r.Group("/schemas")
	deps.SchemaHandler.RegisterRoutes(group)
	deps.UploadHandler.RegisterRoutes(group)

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, ErrorNameRouteNotFound,
			fmt.Sprintf("Can't find %s on the server!", c.Request.URL.Path))
	})

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
