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

// CategoryHandlerInterface defines the contract for category handlers
type CategoryHandlerInterface interface {
	ListCategories(c fiber.Ctx) error
	GetCategory(c fiber.Ctx) error
	CreateCategory(c fiber.Ctx) error
	UpdateCategory(c fiber.Ctx) error
	DeleteCategory(c fiber.Ctx) error
}

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryFlow businessflow.CategoryFlow
	validator    *validator.Validate
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryFlow businessflow.CategoryFlow) *CategoryHandler {
	return &CategoryHandler{
		categoryFlow: categoryFlow,
		validator:    validator.New(),
	}
}

func (h *CategoryHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *CategoryHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ListCategories returns the category listing with per-category asset counts
// @Summary List Categories
// @Tags Categories
// @Produce json
// @Param search query string false "Substring over category name"
// @Success 200 {object} dto.APIResponse{data=dto.CategoryListResponse} "Categories retrieved successfully"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/categories [get]
func (h *CategoryHandler) ListCategories(c fiber.Ctx) error {
	filter := models.CategoryFilter{Search: c.Query("search")}

	result, err := h.categoryFlow.ListCategories(createRequestContext(c, "/api/v1/categories"), filter)
	if err != nil {
		log.Println("Category listing failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list categories", "CATEGORY_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Categories retrieved successfully", result)
}

// GetCategory returns one category
// @Summary Get Category
// @Tags Categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} dto.APIResponse{data=dto.CategoryDTO} "Category retrieved successfully"
// @Failure 404 {object} dto.APIResponse "Category not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/categories/{id} [get]
func (h *CategoryHandler) GetCategory(c fiber.Ctx) error {
	id := utils.CoerceUint(c.Params("id"))
	if id == 0 {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid category ID", "INVALID_CATEGORY_ID", nil)
	}

	result, err := h.categoryFlow.GetCategory(createRequestContext(c, "/api/v1/categories/:id"), id)
	if err != nil {
		if businessflow.IsCategoryNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Category not found", "CATEGORY_NOT_FOUND", nil)
		}
		log.Println("Category fetch failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch category", "CATEGORY_FETCH_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Category retrieved successfully", result)
}

// CreateCategory creates a new category
// @Summary Create Category
// @Tags Categories
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Category data"
// @Success 201 {object} dto.APIResponse{data=dto.CategoryDTO} "Category created successfully"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 409 {object} dto.APIResponse "Category name already exists"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/categories [post]
func (h *CategoryHandler) CreateCategory(c fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	result, err := h.categoryFlow.CreateCategory(createRequestContext(c, "/api/v1/categories"), &req, principalFromContext(c), clientMetadata(c))
	if err != nil {
		if businessflow.IsCategoryNameExists(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Category name already exists", "CATEGORY_NAME_EXISTS", nil)
		}
		log.Println("Category creation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Category creation failed", "CATEGORY_CREATION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Category created successfully", result)
}

// UpdateCategory edits a category
// @Summary Update Category
// @Tags Categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body dto.UpdateCategoryRequest true "Category update data"
// @Success 200 {object} dto.APIResponse{data=dto.CategoryDTO} "Category updated successfully"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 404 {object} dto.APIResponse "Category not found"
// @Failure 409 {object} dto.APIResponse "Category name already exists"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c fiber.Ctx) error {
	id := utils.CoerceUint(c.Params("id"))
	if id == 0 {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid category ID", "INVALID_CATEGORY_ID", nil)
	}

	var req dto.UpdateCategoryRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	result, err := h.categoryFlow.UpdateCategory(createRequestContext(c, "/api/v1/categories/:id"), id, &req, principalFromContext(c), clientMetadata(c))
	if err != nil {
		if businessflow.IsCategoryNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Category not found", "CATEGORY_NOT_FOUND", nil)
		}
		if businessflow.IsCategoryNameExists(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Category name already exists", "CATEGORY_NAME_EXISTS", nil)
		}
		log.Println("Category update failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Category update failed", "CATEGORY_UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Category updated successfully", result)
}

// DeleteCategory removes a category that has no assets
// @Summary Delete Category
// @Tags Categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} dto.APIResponse "Category deleted successfully"
// @Failure 404 {object} dto.APIResponse "Category not found"
// @Failure 409 {object} dto.APIResponse "Category has existing assets"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c fiber.Ctx) error {
	id := utils.CoerceUint(c.Params("id"))
	if id == 0 {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid category ID", "INVALID_CATEGORY_ID", nil)
	}

	err := h.categoryFlow.DeleteCategory(createRequestContext(c, "/api/v1/categories/:id"), id, principalFromContext(c), clientMetadata(c))
	if err != nil {
		if businessflow.IsCategoryNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Category not found", "CATEGORY_NOT_FOUND", nil)
		}
		if businessflow.IsCategoryHasAssets(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Category has existing assets", "CATEGORY_HAS_ASSETS", nil)
		}
		log.Println("Category deletion failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Category deletion failed", "CATEGORY_DELETE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Category deleted successfully", nil)
}
