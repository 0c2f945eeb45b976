package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/workshopwise/marketplace-service/internal/models"
	"github.com/workshopwise/marketplace-service/internal/utils"
)

// ErrorResponse is the envelope for all error replies
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// SuccessResponse is the envelope for all success replies
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// BaseHandler carries shared helpers for all HTTP handlers
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs a handler entry with request-scoped fields
func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.GetLogger(c).Info(msg, args...)
}

// LogError logs a handler failure with request-scoped fields
func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	utils.GetLogger(c).Error(msg, append(args, "error", err)...)
}

// parseIDParam parses a numeric path parameter, replying 400 on failure
func (h *BaseHandler) parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + name + " parameter",
		})
		return 0, false
	}
	return uint(id), true
}

// getUserID returns the authenticated user's ID set by the auth middleware
func (h *BaseHandler) getUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Authentication required",
		})
		return 0, false
	}
	userID, ok := value.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Authentication required",
		})
		return 0, false
	}
	return userID, true
}

// getUserRole returns the authenticated user's role set by the auth middleware
func (h *BaseHandler) getUserRole(c *gin.Context) models.UserRole {
	if value, exists := c.Get("user_role"); exists {
		if role, ok := value.(models.UserRole); ok {
			return role
		}
	}
	return ""
}

// parsePagination reads limit and offset query parameters with defaults
func (h *BaseHandler) parsePagination(c *gin.Context) (int, int) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
