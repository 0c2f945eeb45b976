package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/workshopwise/marketplace-service/internal/services"
	"github.com/workshopwise/marketplace-service/internal/utils"
	"github.com/workshopwise/marketplace-service/internal/validator"
)

type RegistrationHandler struct {
	BaseHandler
	registrationService services.RegistrationService
}

func NewRegistrationHandler(registrationService services.RegistrationService, logger utils.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		BaseHandler:         NewBaseHandler(logger),
		registrationService: registrationService,
	}
}

// Register signs the calling user up for a workshop. The resulting status
// depends on the workshop's registration mode.
func (h *RegistrationHandler) Register(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}
	workshopID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req validator.WorkshopRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Registering for workshop", "user_id", userID, "workshop_id", workshopID)

	registration, err := h.registrationService.Register(c.Request.Context(), userID, workshopID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Message: "Registration created",
		Data:    registration,
	})
}

// GetMine lists the calling user's registrations with workshop details
func (h *RegistrationHandler) GetMine(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	registrations, err := h.registrationService.GetMine(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Data: registrations})
}

func (h *RegistrationHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrors,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrWorkshopNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Workshop not found",
		})
	case errors.Is(err, services.ErrWorkshopNotApproved):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Workshop is not open for registration",
		})
	case errors.Is(err, services.ErrAlreadyRegistered):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Already registered for this workshop",
		})
	case errors.Is(err, services.ErrWorkshopFull):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Workshop has no seats available",
		})
	default:
		h.LogError(c, err, "Registration operation failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
