package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"socialnet/internal/app"
	"socialnet/internal/transport/http/middleware"
	"socialnet/internal/transport/http/response"
)

func getUserIDFromContext(c *gin.Context) (uint, bool) {
	userIDAny, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := userIDAny.(uint)
	return userID, ok && userID != 0
}

// parseIDParam reads a positive numeric path parameter. An absent parameter
// yields fallback.
func parseIDParam(c *gin.Context, name string, fallback uint) (uint, bool) {
	raw := c.Param(name)
	if raw == "" {
		return fallback, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// pageParams reads the optional :page path parameter and ?limit= query.
func pageParams(c *gin.Context) (int, int) {
	page := 1
	if raw := c.Param("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			page = parsed
		}
	}
	limit := app.DefaultPageSize
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}
	return page, limit
}

// fail logs err and writes the error envelope.
func fail(c *gin.Context, httpStatus, code int, err error, message string) {
	event := log.Warn()
	if httpStatus >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Int("status", httpStatus).
		Msg(message)
	response.Error(c, httpStatus, code, message)
}

// failService maps the service error kinds onto HTTP statuses.
func failService(c *gin.Context, err error, internalMessage string) {
	switch {
	case errors.Is(err, app.ErrValidation):
		fail(c, http.StatusBadRequest, response.CodeBadRequest, err, err.Error())
	case errors.Is(err, app.ErrConflict):
		fail(c, http.StatusConflict, response.CodeConflict, err, err.Error())
	case errors.Is(err, app.ErrNotFound):
		fail(c, http.StatusNotFound, response.CodeNotFound, err, err.Error())
	case errors.Is(err, app.ErrUnauthorized):
		fail(c, http.StatusUnauthorized, response.CodeUnauthorized, err, err.Error())
	case errors.Is(err, app.ErrTooManyAttempts):
		fail(c, http.StatusTooManyRequests, response.CodeTooManyRequests, err, err.Error())
	default:
		fail(c, http.StatusInternalServerError, response.CodeInternalServer, err, internalMessage)
	}
}

func unauthorized(c *gin.Context) {
	response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
}
