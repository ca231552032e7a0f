package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/repairdesk/backend/internal/domain/shared"
	"github.com/repairdesk/backend/internal/infrastructure/logger"
	"github.com/repairdesk/backend/internal/interfaces/http/dto"
	"github.com/repairdesk/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// dateLayout is the calendar-day format accepted in query strings
const dateLayout = "2006-01-02"

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID returns the id stored by the RequestID middleware, falling
// back to the inbound header.
func getRequestID(c *gin.Context) string {
	if id := c.GetString(logger.GinRequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// Success sends a success response. A nil pointer renders as "data": null.
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, code, message string) {
	h.Error(c, http.StatusBadRequest, code, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// BindingError renders a gin binding failure with per-field details
func (h *BaseHandler) BindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, middleware.FormatValidationErrors(err, getRequestID(c)))
}

// HandleError maps domain errors to HTTP responses by kind. Anything else
// is logged and answered with 500 ERR_INTERNAL.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.StatusForKind(domainErr.Kind)
		if status >= http.StatusInternalServerError {
			logger.GetGinLogger(c).Error("Request failed", zap.Error(err))
			h.Error(c, status, dto.ErrCodeInternal, "An unexpected error occurred")
			return
		}
		code := dto.NormalizeErrorCode(domainErr.Code)
		if code == "" {
			code = dto.ErrCodeValidation
		}
		h.Error(c, status, code, domainErr.Message)
		return
	}

	logger.GetGinLogger(c).Error("Unhandled error", zap.Error(err))
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
}

// pathID parses the :id path parameter, answering 400 when it is not a UUID
func (h *BaseHandler) pathID(c *gin.Context) (uuid.UUID, bool) {
	return h.uuidParam(c, "id")
}

func (h *BaseHandler) uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, dto.ErrCodeInvalidID, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// queryInt reads an optional integer query parameter
func (h *BaseHandler) queryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		h.BadRequest(c, dto.ErrCodeInvalidQuery, name+" must be an integer")
		return 0, false
	}
	return n, true
}

// queryDate reads a required calendar-day or RFC 3339 query parameter
func (h *BaseHandler) queryDate(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		h.BadRequest(c, dto.ErrCodeInvalidQuery, name+" is required")
		return time.Time{}, false
	}
	t, err := parseDate(raw)
	if err != nil {
		h.BadRequest(c, dto.ErrCodeInvalidQuery, name+" must be YYYY-MM-DD or RFC 3339")
		return time.Time{}, false
	}
	return t, true
}

// queryRangeEnd reads an inclusive upper bound. A calendar day covers the
// whole day.
func (h *BaseHandler) queryRangeEnd(c *gin.Context, name string) (time.Time, bool) {
	t, ok := h.queryDate(c, name)
	if ok && len(c.Query(name)) == len(dateLayout) {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, ok
}

// parseDate accepts RFC 3339 timestamps and calendar days
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(dateLayout, s)
}
