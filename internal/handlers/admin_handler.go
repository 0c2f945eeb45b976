package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/workshopwise/marketplace-service/internal/services"
	"github.com/workshopwise/marketplace-service/internal/utils"
	"github.com/workshopwise/marketplace-service/internal/validator"
)

type AdminHandler struct {
	BaseHandler
	moderationService services.ModerationService
}

func NewAdminHandler(moderationService services.ModerationService, logger utils.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler:       NewBaseHandler(logger),
		moderationService: moderationService,
	}
}

func (h *AdminHandler) listParams(c *gin.Context) services.AdminListParams {
	limit, offset := h.parsePagination(c)
	return services.AdminListParams{
		Query:  c.Query("q"),
		Limit:  limit,
		Offset: offset,
	}
}

// ===== USERS =====

func (h *AdminHandler) ListUsers(c *gin.Context) {
	actorID, ok := h.getUserID(c)
	if !ok {
		return
	}

	response, err := h.moderationService.ListUsers(c.Request.Context(), actorID, h.listParams(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: response})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	actorID, ok := h.getUserID(c)
	if !ok {
		return
	}
	userID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	h.LogRequest(c, "Deleting user", "actor_id", actorID, "target_user_id", userID)

	if err := h.moderationService.DeleteUser(c.Request.Context(), actorID, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "User deleted successfully"})
}

// ===== ENTERPRISES =====

func (h *AdminHandler) ListEnterprises(c *gin.Context) {
	actorID, ok := h.getUserID(c)
	if !ok {
		return
	}

	response, err := h.moderationService.ListEnterprises(c.Request.Context(), actorID, h.listParams(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: response})
}

func (h *AdminHandler) UpdateEnterpriseStatus(c *gin.Context) {
	actorID, ok := h.getUserID(c)
	if !ok {
		return
	}
	enterpriseID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req validator.EnterpriseStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Updating enterprise status",
		"actor_id", actorID, "enterprise_id", enterpriseID, "status", req.Status)

	enterprise, err := h.moderationService.UpdateEnterpriseStatus(c.Request.Context(), actorID, enterpriseID, req.Status)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Enterprise status updated",
		Data:    enterprise,
	})
}

func (h *AdminHandler) DeleteEnterprise(c *gin.Context) {
	actorID, ok := h.getUserID(c)
	if !ok {
		return
	}
	enterpriseID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	h.LogRequest(c, "Deleting enterprise", "actor_id", actorID, "enterprise_id", enterpriseID)

	if err := h.moderationService.DeleteEnterprise(c.Request.Context(), actorID, enterpriseID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Enterprise deleted successfully"})
}

// ===== WORKSHOPS =====

func (h *AdminHandler) ListWorkshops(c *gin.Context) {
	actorID, ok := h.getUserID(c)
	if !ok {
		return
	}

	response, err := h.moderationService.ListWorkshops(c.Request.Context(), actorID, h.listParams(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: response})
}

func (h *AdminHandler) UpdateWorkshopStatus(c *gin.Context) {
	actorID, ok := h.getUserID(c)
	if !ok {
		return
	}
	workshopID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req validator.WorkshopStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Updating workshop status",
		"actor_id", actorID, "workshop_id", workshopID, "status", req.Status)

	workshop, err := h.moderationService.UpdateWorkshopStatus(c.Request.Context(), actorID, workshopID, req.Status)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Workshop status updated",
		Data:    workshop,
	})
}

func (h *AdminHandler) DeleteWorkshop(c *gin.Context) {
	actorID, ok := h.getUserID(c)
	if !ok {
		return
	}
	workshopID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	h.LogRequest(c, "Deleting workshop", "actor_id", actorID, "workshop_id", workshopID)

	if err := h.moderationService.DeleteWorkshop(c.Request.Context(), actorID, workshopID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Workshop deleted successfully"})
}

// ===== REGISTRATIONS =====

func (h *AdminHandler) ListRegistrations(c *gin.Context) {
	actorID, ok := h.getUserID(c)
	if !ok {
		return
	}

	response, err := h.moderationService.ListRegistrations(c.Request.Context(), actorID, h.listParams(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: response})
}

func (h *AdminHandler) UpdateRegistrationStatus(c *gin.Context) {
	actorID, ok := h.getUserID(c)
	if !ok {
		return
	}
	registrationID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req validator.RegistrationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Updating registration status",
		"actor_id", actorID, "registration_id", registrationID, "status", req.Status)

	registration, err := h.moderationService.UpdateRegistrationStatus(c.Request.Context(), actorID, registrationID, req.Status)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Registration status updated",
		Data:    registration,
	})
}

func (h *AdminHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrors,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "User not found"})
	case errors.Is(err, services.ErrEnterpriseNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Enterprise not found"})
	case errors.Is(err, services.ErrWorkshopNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Workshop not found"})
	case errors.Is(err, services.ErrRegistrationNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Registration not found"})
	case errors.Is(err, services.ErrAdminSelfDelete):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Administrators cannot delete their own account",
		})
	case errors.Is(err, services.ErrWorkshopFull):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Workshop has no seats available",
		})
	default:
		h.LogError(c, err, "Admin operation failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
