package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vodcomms/vodcomms/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	sessionHandler *Session
	mediaHandler   *Media
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, sessionHandler *Session, mediaHandler *Media) *Router {
	return &Router{
		cfg:            cfg,
		sessionHandler: sessionHandler,
		mediaHandler:   mediaHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	sessions := e.Group("/sessions")
	sessions.POST("", rt.sessionHandler.CreateSession)
	sessions.GET("", rt.sessionHandler.ListSessions)
	sessions.GET("/:id", rt.sessionHandler.GetSession)
	sessions.GET("/:id/chunks", rt.sessionHandler.GetChunks)
	sessions.POST("/:id/media", rt.mediaHandler.UploadMedia)
	sessions.POST("/:id/process", rt.mediaHandler.ProcessMedia)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
