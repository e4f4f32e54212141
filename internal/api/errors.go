package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelist/reelist/internal/domain"
)

// Machine-readable error codes surfaced to callers.
const (
	codeContentNotFound    = "content_not_found"
	codeAlreadyInList      = "already_in_list"
	codeNotInList          = "not_in_list"
	codeInvalidCursor      = "invalid_cursor"
	codeLimitTooLarge      = "limit_too_large"
	codeInvalidContentType = "invalid_content_type"
	codeInvalidRequest     = "invalid_request"
	codeInternalError      = "internal_error"
)

// writeError maps a domain error onto its HTTP status and stable error code.
// Unexpected errors are logged with their operation context and masked as a
// generic internal error.
func writeError(c *gin.Context, logger *slog.Logger, op string, err error) {
	var (
		status = http.StatusInternalServerError
		code   = codeInternalError
		msg    = "internal error"
	)

	switch {
	case errors.Is(err, domain.ErrContentNotFound):
		status, code, msg = http.StatusNotFound, codeContentNotFound, "content not found in catalogue"
	case errors.Is(err, domain.ErrAlreadyInList):
		status, code, msg = http.StatusConflict, codeAlreadyInList, "content already in list"
	case errors.Is(err, domain.ErrNotInList):
		status, code, msg = http.StatusNotFound, codeNotInList, "content not in list"
	case errors.Is(err, domain.ErrInvalidCursor):
		status, code, msg = http.StatusBadRequest, codeInvalidCursor, "cursor token is not valid"
	case errors.Is(err, domain.ErrLimitOutOfRange):
		status, code, msg = http.StatusBadRequest, codeLimitTooLarge, "limit must be between 1 and 100"
	case errors.Is(err, domain.ErrInvalidContentType):
		status, code, msg = http.StatusBadRequest, codeInvalidContentType, "contentType must be Movie or Show"
	default:
		logger.Error("unexpected error",
			"operation", op,
			"userID", c.Param("userID"),
			"contentID", c.Param("contentID"),
			"error", err,
		)
	}

	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": msg,
		},
	})
}
