package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/reelist/reelist/internal/service"
)

// NewRouter wires the list service into a gin engine with request-ID and
// logging middleware.
func NewRouter(svc *service.MyListService, logger *slog.Logger) *gin.Engine {
	h := NewHandlers(svc, logger)

	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(logger))

	router.GET("/healthz", h.Health)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/users/:userID/list", h.Add)
		v1.GET("/users/:userID/list", h.List)
		v1.GET("/users/:userID/list/search", h.Search)
		v1.DELETE("/users/:userID/list/:contentID", h.Remove)
	}

	return router
}
