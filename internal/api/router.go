package api

import (
	"github.com/gin-gonic/gin"
	"github.com/timmy/mememania/internal/api/handler"
	"github.com/timmy/mememania/internal/api/middleware"
	"github.com/timmy/mememania/internal/auth"
	"github.com/timmy/mememania/internal/config"
	"github.com/timmy/mememania/internal/logger"
	"github.com/timmy/mememania/internal/mcp"
)

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	mcpServer *mcp.Server,
	verifier auth.Verifier,
	cfg *config.ServerConfig,
	log *logger.Logger,
) *gin.Engine {
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.CORS.AllowAllOrigins,
	}))

	healthHandler := handler.NewHealthHandler(mcpServer.Registry())
	mcpHandler := handler.NewMCPHandler(mcpServer)

	// Health check
	r.GET("/health", healthHandler.Health)

	path := cfg.Path
	if path == "" {
		path = "/mcp"
	}

	tools := r.Group(path)
	tools.Use(middleware.BearerAuth(verifier))
	{
		tools.POST("", mcpHandler.Handle)
		tools.GET("", mcpHandler.MethodNotAllowed)
		tools.DELETE("", mcpHandler.MethodNotAllowed)
	}

	return r
}
