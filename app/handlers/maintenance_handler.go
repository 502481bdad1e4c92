package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/openvarsity/inventory/app/dto"
	businessflow "github.com/openvarsity/inventory/business_flow"
	"github.com/openvarsity/inventory/models"
	"github.com/openvarsity/inventory/utils"
)

// MaintenanceHandlerInterface defines the contract for maintenance handlers
type MaintenanceHandlerInterface interface {
	ListMaintenance(c fiber.Ctx) error
	GetMaintenance(c fiber.Ctx) error
	CreateMaintenance(c fiber.Ctx) error
	UpdateMaintenance(c fiber.Ctx) error
	DeleteMaintenance(c fiber.Ctx) error
}

// MaintenanceHandler handles maintenance log HTTP requests
type MaintenanceHandler struct {
	maintenanceFlow businessflow.MaintenanceFlow
	validator       *validator.Validate
}

// NewMaintenanceHandler creates a new maintenance handler
func NewMaintenanceHandler(maintenanceFlow businessflow.MaintenanceFlow) *MaintenanceHandler {
	return &MaintenanceHandler{
		maintenanceFlow: maintenanceFlow,
		validator:       validator.New(),
	}
}

func (h *MaintenanceHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *MaintenanceHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ListMaintenance returns the filtered maintenance log with page statistics
// @Summary List Maintenance Records
// @Tags Maintenance
// @Produce json
// @Param status query string false "Record status"
// @Param type query string false "Maintenance type"
// @Param start_date query string false "Maintenance date lower bound (YYYY-MM-DD)"
// @Param end_date query string false "Maintenance date upper bound (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=dto.MaintenanceListResponse} "Maintenance records retrieved successfully"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/maintenance [get]
func (h *MaintenanceHandler) ListMaintenance(c fiber.Ctx) error {
	filter := models.MaintenanceFilter{
		Status:    c.Query("status"),
		Type:      c.Query("type"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}

	result, err := h.maintenanceFlow.ListMaintenance(createRequestContext(c, "/api/v1/maintenance"), filter)
	if err != nil {
		log.Println("Maintenance listing failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list maintenance records", "MAINTENANCE_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Maintenance records retrieved successfully", result)
}

// GetMaintenance returns one maintenance record
// @Summary Get Maintenance Record
// @Tags Maintenance
// @Produce json
// @Param id path int true "Maintenance record ID"
// @Success 200 {object} dto.APIResponse{data=dto.MaintenanceRecordDTO} "Maintenance record retrieved successfully"
// @Failure 404 {object} dto.APIResponse "Maintenance record not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/maintenance/{id} [get]
func (h *MaintenanceHandler) GetMaintenance(c fiber.Ctx) error {
	id := utils.CoerceUint(c.Params("id"))
	if id == 0 {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid maintenance record ID", "INVALID_MAINTENANCE_ID", nil)
	}

	result, err := h.maintenanceFlow.GetMaintenance(createRequestContext(c, "/api/v1/maintenance/:id"), id)
	if err != nil {
		if businessflow.IsMaintenanceNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Maintenance record not found", "MAINTENANCE_NOT_FOUND", nil)
		}
		log.Println("Maintenance fetch failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch maintenance record", "MAINTENANCE_FETCH_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Maintenance record retrieved successfully", result)
}

// CreateMaintenance logs a maintenance event against an asset
// @Summary Create Maintenance Record
// @Tags Maintenance
// @Accept json
// @Produce json
// @Param request body dto.CreateMaintenanceRequest true "Maintenance data"
// @Success 201 {object} dto.APIResponse{data=dto.MaintenanceRecordDTO} "Maintenance record created successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or missing asset"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/maintenance [post]
func (h *MaintenanceHandler) CreateMaintenance(c fiber.Ctx) error {
	var req dto.CreateMaintenanceRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	result, err := h.maintenanceFlow.CreateMaintenance(createRequestContext(c, "/api/v1/maintenance"), &req, principalFromContext(c), clientMetadata(c))
	if err != nil {
		if businessflow.IsAssignedUserNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Assigned user not found", "ASSIGNED_USER_NOT_FOUND", nil)
		}
		log.Println("Maintenance creation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Maintenance creation failed", "MAINTENANCE_CREATION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Maintenance record created successfully", result)
}

// UpdateMaintenance edits a maintenance record
// @Summary Update Maintenance Record
// @Tags Maintenance
// @Accept json
// @Produce json
// @Param id path int true "Maintenance record ID"
// @Param request body dto.UpdateMaintenanceRequest true "Maintenance update data"
// @Success 200 {object} dto.APIResponse{data=dto.MaintenanceRecordDTO} "Maintenance record updated successfully"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 404 {object} dto.APIResponse "Maintenance record not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/maintenance/{id} [put]
func (h *MaintenanceHandler) UpdateMaintenance(c fiber.Ctx) error {
	id := utils.CoerceUint(c.Params("id"))
	if id == 0 {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid maintenance record ID", "INVALID_MAINTENANCE_ID", nil)
	}

	var req dto.UpdateMaintenanceRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	result, err := h.maintenanceFlow.UpdateMaintenance(createRequestContext(c, "/api/v1/maintenance/:id"), id, &req, principalFromContext(c), clientMetadata(c))
	if err != nil {
		if businessflow.IsMaintenanceNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Maintenance record not found", "MAINTENANCE_NOT_FOUND", nil)
		}
		if businessflow.IsAssignedUserNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Assigned user not found", "ASSIGNED_USER_NOT_FOUND", nil)
		}
		log.Println("Maintenance update failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Maintenance update failed", "MAINTENANCE_UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Maintenance record updated successfully", result)
}

// DeleteMaintenance removes a maintenance record
// @Summary Delete Maintenance Record
// @Tags Maintenance
// @Produce json
// @Param id path int true "Maintenance record ID"
// @Success 200 {object} dto.APIResponse "Maintenance record deleted successfully"
// @Failure 404 {object} dto.APIResponse "Maintenance record not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/maintenance/{id} [delete]
func (h *MaintenanceHandler) DeleteMaintenance(c fiber.Ctx) error {
	id := utils.CoerceUint(c.Params("id"))
	if id == 0 {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid maintenance record ID", "INVALID_MAINTENANCE_ID", nil)
	}

	err := h.maintenanceFlow.DeleteMaintenance(createRequestContext(c, "/api/v1/maintenance/:id"), id, principalFromContext(c), clientMetadata(c))
	if err != nil {
		if businessflow.IsMaintenanceNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Maintenance record not found", "MAINTENANCE_NOT_FOUND", nil)
		}
		log.Println("Maintenance deletion failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Maintenance deletion failed", "MAINTENANCE_DELETE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Maintenance record deleted successfully", nil)
}
