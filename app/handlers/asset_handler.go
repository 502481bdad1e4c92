// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/openvarsity/inventory/app/dto"
	businessflow "github.com/openvarsity/inventory/business_flow"
	"github.com/openvarsity/inventory/models"
	"github.com/openvarsity/inventory/utils"
)

// AssetHandlerInterface defines the contract for asset handlers
type AssetHandlerInterface interface {
	ListAssets(c fiber.Ctx) error
	GetAsset(c fiber.Ctx) error
	CreateAsset(c fiber.Ctx) error
	UpdateAsset(c fiber.Ctx) error
	DeleteAsset(c fiber.Ctx) error
	ExportAssets(c fiber.Ctx) error
}

// AssetHandler handles asset-related HTTP requests
type AssetHandler struct {
	assetFlow businessflow.AssetFlow
	validator *validator.Validate
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(assetFlow businessflow.AssetFlow) *AssetHandler {
	return &AssetHandler{
		assetFlow: assetFlow,
		validator: validator.New(),
	}
}

func (h *AssetHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *AssetHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// assetFilterFromQuery binds the recognized query parameters into a typed
// filter. Unrecognized parameters are simply never read.
func assetFilterFromQuery(c fiber.Ctx) models.AssetFilter {
	return models.AssetFilter{
		Search:     c.Query("search"),
		CategoryID: utils.CoerceUint(c.Query("category")),
		Status:     c.Query("status"),
		StartDate:  c.Query("start_date"),
		EndDate:    c.Query("end_date"),
		Department: c.Query("department"),
	}
}

// ListAssets returns the filtered asset listing
// @Summary List Assets
// @Description List assets matching the optional search and filter parameters
// @Tags Assets
// @Produce json
// @Param search query string false "Substring over name, code, and serial number"
// @Param category query int false "Category ID"
// @Param status query string false "Asset status"
// @Param start_date query string false "Purchase date lower bound (YYYY-MM-DD)"
// @Param end_date query string false "Purchase date upper bound (YYYY-MM-DD)"
// @Param department query string false "Assigned user's department"
// @Success 200 {object} dto.APIResponse{data=dto.AssetListResponse} "Assets retrieved successfully"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/assets [get]
func (h *AssetHandler) ListAssets(c fiber.Ctx) error {
	filter := assetFilterFromQuery(c)

	result, err := h.assetFlow.ListAssets(createRequestContext(c, "/api/v1/assets"), filter)
	if err != nil {
		log.Println("Asset listing failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list assets", "ASSET_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Assets retrieved successfully", result)
}

// GetAsset returns a single asset with its category and custodian labels
// @Summary Get Asset
// @Description Get one asset by ID
// @Tags Assets
// @Produce json
// @Param id path int true "Asset ID"
// @Success 200 {object} dto.APIResponse "Asset retrieved successfully"
// @Failure 404 {object} dto.APIResponse "Asset not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/assets/{id} [get]
func (h *AssetHandler) GetAsset(c fiber.Ctx) error {
	id := utils.CoerceUint(c.Params("id"))
	if id == 0 {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid asset ID", "INVALID_ASSET_ID", nil)
	}

	row, err := h.assetFlow.GetAsset(createRequestContext(c, "/api/v1/assets/:id"), id)
	if err != nil {
		if businessflow.IsAssetNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Asset not found", "ASSET_NOT_FOUND", nil)
		}
		log.Println("Asset fetch failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch asset", "ASSET_FETCH_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Asset retrieved successfully", row)
}

// CreateAsset registers a new asset and generates its code
// @Summary Create Asset
// @Description Register a new asset; the asset code is generated server side
// @Tags Assets
// @Accept json
// @Produce json
// @Param request body dto.CreateAssetRequest true "Asset registration data"
// @Success 201 {object} dto.APIResponse{data=dto.CreateAssetResponse} "Asset created successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/assets [post]
func (h *AssetHandler) CreateAsset(c fiber.Ctx) error {
	var req dto.CreateAssetRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	result, err := h.assetFlow.CreateAsset(createRequestContext(c, "/api/v1/assets"), &req, principalFromContext(c), clientMetadata(c))
	if err != nil {
		if businessflow.IsAssetCategoryNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Asset category not found", "CATEGORY_NOT_FOUND", nil)
		}
		if businessflow.IsAssignedUserNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Assigned user not found", "ASSIGNED_USER_NOT_FOUND", nil)
		}
		log.Println("Asset creation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Asset creation failed", "ASSET_CREATION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Asset created successfully", result)
}

// UpdateAsset edits an existing asset
// @Summary Update Asset
// @Description Update an existing asset; absent fields are left unchanged
// @Tags Assets
// @Accept json
// @Produce json
// @Param id path int true "Asset ID"
// @Param request body dto.UpdateAssetRequest true "Asset update data"
// @Success 200 {object} dto.APIResponse "Asset updated successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 404 {object} dto.APIResponse "Asset not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/assets/{id} [put]
func (h *AssetHandler) UpdateAsset(c fiber.Ctx) error {
	id := utils.CoerceUint(c.Params("id"))
	if id == 0 {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid asset ID", "INVALID_ASSET_ID", nil)
	}

	var req dto.UpdateAssetRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	asset, err := h.assetFlow.UpdateAsset(createRequestContext(c, "/api/v1/assets/:id"), id, &req, principalFromContext(c), clientMetadata(c))
	if err != nil {
		if businessflow.IsAssetNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Asset not found", "ASSET_NOT_FOUND", nil)
		}
		if businessflow.IsAssetCategoryNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Asset category not found", "CATEGORY_NOT_FOUND", nil)
		}
		if businessflow.IsAssignedUserNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Assigned user not found", "ASSIGNED_USER_NOT_FOUND", nil)
		}
		log.Println("Asset update failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Asset update failed", "ASSET_UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Asset updated successfully", asset)
}

// DeleteAsset removes an asset and its maintenance history
// @Summary Delete Asset
// @Description Delete an asset; its maintenance records cascade
// @Tags Assets
// @Produce json
// @Param id path int true "Asset ID"
// @Success 200 {object} dto.APIResponse "Asset deleted successfully"
// @Failure 404 {object} dto.APIResponse "Asset not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c fiber.Ctx) error {
	id := utils.CoerceUint(c.Params("id"))
	if id == 0 {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid asset ID", "INVALID_ASSET_ID", nil)
	}

	err := h.assetFlow.DeleteAsset(createRequestContext(c, "/api/v1/assets/:id"), id, principalFromContext(c), clientMetadata(c))
	if err != nil {
		if businessflow.IsAssetNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Asset not found", "ASSET_NOT_FOUND", nil)
		}
		log.Println("Asset deletion failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Asset deletion failed", "ASSET_DELETE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Asset deleted successfully", nil)
}

// ExportAssets streams the filtered listing as a spreadsheet
// @Summary Export Assets
// @Description Export the filtered asset listing as an xlsx file
// @Tags Assets
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "Spreadsheet"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/assets/export [get]
func (h *AssetHandler) ExportAssets(c fiber.Ctx) error {
	filter := assetFilterFromQuery(c)

	file, err := h.assetFlow.ExportAssets(createRequestContext(c, "/api/v1/assets/export"), filter)
	if err != nil {
		log.Println("Asset export failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Asset export failed", "ASSET_EXPORT_FAILED", nil)
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		log.Println("Asset export failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Asset export failed", "ASSET_EXPORT_FAILED", nil)
	}

	filename := fmt.Sprintf("assets_%s.xlsx", utils.UTCNowFormat("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(buf.Bytes())
}
