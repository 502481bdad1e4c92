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

// UserHandlerInterface defines the contract for user handlers
type UserHandlerInterface interface {
	ListUsers(c fiber.Ctx) error
	GetUser(c fiber.Ctx) error
	CreateUser(c fiber.Ctx) error
	UpdateUser(c fiber.Ctx) error
	DeleteUser(c fiber.Ctx) error
}

// UserHandler handles custodian account HTTP requests
type UserHandler struct {
	userFlow  businessflow.UserFlow
	validator *validator.Validate
}

// NewUserHandler creates a new user handler
func NewUserHandler(userFlow businessflow.UserFlow) *UserHandler {
	return &UserHandler{
		userFlow:  userFlow,
		validator: validator.New(),
	}
}

func (h *UserHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *UserHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ListUsers returns the user listing with department and role statistics
// @Summary List Users
// @Tags Users
// @Produce json
// @Param search query string false "Substring over username, name, email, department"
// @Param role query string false "User role"
// @Param department query string false "Department"
// @Success 200 {object} dto.APIResponse{data=dto.UserListResponse} "Users retrieved successfully"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/users [get]
func (h *UserHandler) ListUsers(c fiber.Ctx) error {
	filter := models.UserFilter{
		Search:     c.Query("search"),
		Role:       c.Query("role"),
		Department: c.Query("department"),
	}

	result, err := h.userFlow.ListUsers(createRequestContext(c, "/api/v1/users"), filter)
	if err != nil {
		log.Println("User listing failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list users", "USER_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Users retrieved successfully", result)
}

// GetUser returns one custodian account
// @Summary Get User
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserDTO} "User retrieved successfully"
// @Failure 404 {object} dto.APIResponse "User not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/users/{id} [get]
func (h *UserHandler) GetUser(c fiber.Ctx) error {
	id := utils.CoerceUint(c.Params("id"))
	if id == 0 {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid user ID", "INVALID_USER_ID", nil)
	}

	result, err := h.userFlow.GetUser(createRequestContext(c, "/api/v1/users/:id"), id)
	if err != nil {
		if businessflow.IsUserNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "User not found", "USER_NOT_FOUND", nil)
		}
		log.Println("User fetch failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch user", "USER_FETCH_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "User retrieved successfully", result)
}

// CreateUser creates a custodian account
// @Summary Create User
// @Tags Users
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "User data"
// @Success 201 {object} dto.APIResponse{data=dto.UserDTO} "User created successfully"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 409 {object} dto.APIResponse "Username or email already exists"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/users [post]
func (h *UserHandler) CreateUser(c fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	result, err := h.userFlow.CreateUser(createRequestContext(c, "/api/v1/users"), &req, principalFromContext(c), clientMetadata(c))
	if err != nil {
		if businessflow.IsUsernameExists(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Username already exists", "USERNAME_EXISTS", nil)
		}
		if businessflow.IsEmailExists(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Email already exists", "EMAIL_EXISTS", nil)
		}
		if businessflow.IsPasswordMismatch(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Passwords do not match", "PASSWORD_MISMATCH", nil)
		}
		log.Println("User creation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "User creation failed", "USER_CREATION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "User created successfully", result)
}

// UpdateUser edits a custodian account
// @Summary Update User
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body dto.UpdateUserRequest true "User update data"
// @Success 200 {object} dto.APIResponse{data=dto.UserDTO} "User updated successfully"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 404 {object} dto.APIResponse "User not found"
// @Failure 409 {object} dto.APIResponse "Username or email already exists"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/users/{id} [put]
func (h *UserHandler) UpdateUser(c fiber.Ctx) error {
	id := utils.CoerceUint(c.Params("id"))
	if id == 0 {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid user ID", "INVALID_USER_ID", nil)
	}

	var req dto.UpdateUserRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	result, err := h.userFlow.UpdateUser(createRequestContext(c, "/api/v1/users/:id"), id, &req, principalFromContext(c), clientMetadata(c))
	if err != nil {
		if businessflow.IsUserNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "User not found", "USER_NOT_FOUND", nil)
		}
		if businessflow.IsUsernameExists(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Username already exists", "USERNAME_EXISTS", nil)
		}
		if businessflow.IsEmailExists(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Email already exists", "EMAIL_EXISTS", nil)
		}
		log.Println("User update failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "User update failed", "USER_UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "User updated successfully", result)
}

// DeleteUser removes a custodian account with no assigned assets
// @Summary Delete User
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse "User deleted successfully"
// @Failure 404 {object} dto.APIResponse "User not found"
// @Failure 409 {object} dto.APIResponse "User has assigned assets or is the acting account"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/users/{id} [delete]
func (h *UserHandler) DeleteUser(c fiber.Ctx) error {
	id := utils.CoerceUint(c.Params("id"))
	if id == 0 {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid user ID", "INVALID_USER_ID", nil)
	}

	err := h.userFlow.DeleteUser(createRequestContext(c, "/api/v1/users/:id"), id, principalFromContext(c), clientMetadata(c))
	if err != nil {
		if businessflow.IsUserNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "User not found", "USER_NOT_FOUND", nil)
		}
		if businessflow.IsCannotDeleteSelf(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Cannot delete the acting account", "CANNOT_DELETE_SELF", nil)
		}
		if businessflow.IsUserHasAssets(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "User has assets assigned", "USER_HAS_ASSETS", nil)
		}
		log.Println("User deletion failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "User deletion failed", "USER_DELETE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "User deleted successfully", nil)
}
