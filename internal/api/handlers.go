package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/reelist/reelist/internal/domain"
	"github.com/reelist/reelist/internal/service"
)

// Handlers binds the list service to HTTP.
type Handlers struct {
	svc    *service.MyListService
	logger *slog.Logger
}

func NewHandlers(svc *service.MyListService, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{svc: svc, logger: logger}
}

type addRequest struct {
	ContentID   string `json:"contentId" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

// Add handles POST /api/v1/users/:userID/list
func (h *Handlers) Add(c *gin.Context) {
	var req addRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    codeInvalidRequest,
				"message": "contentId and contentType are required",
			},
		})
		return
	}

	contentType, err := domain.ParseContentType(req.ContentType)
	if err != nil {
		writeError(c, h.logger, "add", err)
		return
	}

	item, err := h.svc.Add(c.Request.Context(), c.Param("userID"), req.ContentID, contentType)
	if err != nil {
		writeError(c, h.logger, "add", err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// Remove handles DELETE /api/v1/users/:userID/list/:contentID
func (h *Handlers) Remove(c *gin.Context) {
	err := h.svc.Remove(c.Request.Context(), c.Param("userID"), c.Param("contentID"))
	if err != nil {
		writeError(c, h.logger, "remove", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// List handles GET /api/v1/users/:userID/list
func (h *Handlers) List(c *gin.Context) {
	limit := service.DefaultPageLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(c, h.logger, "list", domain.ErrLimitOutOfRange)
			return
		}
		limit = parsed
	}

	page, err := h.svc.List(c.Request.Context(), c.Param("userID"), limit, c.Query("cursor"))
	if err != nil {
		writeError(c, h.logger, "list", err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// Search handles GET /api/v1/users/:userID/list/search
func (h *Handlers) Search(c *gin.Context) {
	items, err := h.svc.Search(c.Request.Context(), c.Param("userID"), c.Query("q"))
	if err != nil {
		writeError(c, h.logger, "search", err)
		return
	}

	if items == nil {
		items = []domain.ListItem{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Health handles GET /healthz
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
