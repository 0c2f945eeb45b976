package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/workshopwise/marketplace-service/internal/models"
	"github.com/workshopwise/marketplace-service/internal/services"
	"github.com/workshopwise/marketplace-service/internal/utils"
	"github.com/workshopwise/marketplace-service/internal/validator"
)

type WorkshopHandler struct {
	BaseHandler
	workshopService services.WorkshopService
	exportService   services.ExportService
}

func NewWorkshopHandler(workshopService services.WorkshopService, exportService services.ExportService, logger utils.Logger) *WorkshopHandler {
	return &WorkshopHandler{
		BaseHandler:     NewBaseHandler(logger),
		workshopService: workshopService,
		exportService:   exportService,
	}
}

// ListWorkshops returns approved workshops for the public catalog
func (h *WorkshopHandler) ListWorkshops(c *gin.Context) {
	limit, offset := h.parsePagination(c)

	params := services.PublicListParams{Limit: limit, Offset: offset}
	if mode := c.Query("mode"); mode != "" {
		m := models.WorkshopMode(mode)
		params.Mode = &m
	}
	if c.Query("free") == "true" {
		params.FreeOnly = true
	}

	response, err := h.workshopService.ListPublic(c.Request.Context(), params)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Data: response})
}

// GetWorkshop returns a single approved workshop
func (h *WorkshopHandler) GetWorkshop(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	workshop, err := h.workshopService.GetPublic(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Data: workshop})
}

// CreateWorkshop submits a new workshop for approval
func (h *WorkshopHandler) CreateWorkshop(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	var req validator.WorkshopCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Creating workshop", "user_id", userID, "title", req.Title)

	workshop, err := h.workshopService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Message: "Workshop submitted for approval",
		Data:    workshop,
	})
}

// DeleteWorkshop removes an owned workshop and its registrations
func (h *WorkshopHandler) DeleteWorkshop(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	h.LogRequest(c, "Deleting workshop", "user_id", userID, "workshop_id", id)

	if err := h.workshopService.Delete(c.Request.Context(), userID, id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Workshop deleted successfully",
	})
}

// GetOwnWorkshops lists the calling enterprise's workshops in every status
func (h *WorkshopHandler) GetOwnWorkshops(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	workshops, err := h.workshopService.GetOwn(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Data: workshops})
}

// GetWorkshopRegistrations lists sign-ups for an owned workshop
func (h *WorkshopHandler) GetWorkshopRegistrations(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	registrations, err := h.workshopService.GetRegistrations(c.Request.Context(), userID, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Data: registrations})
}

// ExportWorkshopRegistrations downloads the attendee sheet as xlsx
func (h *WorkshopHandler) ExportWorkshopRegistrations(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	h.LogRequest(c, "Exporting workshop registrations", "user_id", userID, "workshop_id", id)

	data, filename, err := h.exportService.ExportWorkshopRegistrations(c.Request.Context(), userID, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *WorkshopHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrors,
		})
		return
	}

	var permissionError *services.PermissionError
	if errors.As(err, &permissionError) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Access denied",
			Details: map[string]interface{}{
				"resource": permissionError.Resource,
				"action":   permissionError.Action,
				"reason":   permissionError.Reason,
			},
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrWorkshopNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Workshop not found",
		})
	case errors.Is(err, services.ErrEnterpriseNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Enterprise account not found",
		})
	case errors.Is(err, services.ErrEnterpriseNotApproved):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Enterprise is not approved",
		})
	default:
		h.LogError(c, err, "Workshop operation failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
