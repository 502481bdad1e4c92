// Package businessflow contains the business logic for the asset inventory system.
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Asset-related errors
	ErrAssetNotFound          = errors.New("asset not found")
	ErrAssetCodeExhausted     = errors.New("could not generate a unique asset code")
	ErrAssetNameRequired      = errors.New("asset name is required")
	ErrPurchaseCostNegative   = errors.New("purchase cost cannot be negative")
	ErrCurrentValueNegative   = errors.New("current value cannot be negative")
	ErrInvalidAssetStatus     = errors.New("invalid asset status")
	ErrInvalidPurchaseDate    = errors.New("purchase date is invalid")
	ErrAssignedUserNotFound   = errors.New("assigned user not found")
	ErrAssetCategoryNotFound  = errors.New("asset category not found")

	// Category-related errors
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryNameExists    = errors.New("category name already exists")
	ErrCategoryHasAssets     = errors.New("category has existing assets")
	ErrCategoryNameRequired  = errors.New("category name is required")

	// User-related errors
	ErrUserNotFound        = errors.New("user not found")
	ErrUsernameExists      = errors.New("username already exists")
	ErrEmailExists         = errors.New("email already exists")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrInvalidUserRole     = errors.New("invalid user role")
	ErrCannotDeleteSelf    = errors.New("cannot delete the acting account")
	ErrUserHasAssets       = errors.New("user has assets assigned")
	ErrIncorrectPassword   = errors.New("incorrect password")
	ErrAdminRoleRequired   = errors.New("admin role required")

	// Maintenance-related errors
	ErrMaintenanceNotFound      = errors.New("maintenance record not found")
	ErrMaintenanceAssetRequired = errors.New("maintenance record requires an asset")
	ErrMaintenanceCostNegative  = errors.New("maintenance cost cannot be negative")
	ErrInvalidMaintenanceStatus = errors.New("invalid maintenance status")

	// Report-related errors
	ErrReportQueryFailed = errors.New("report query failed")

	// Filter errors
	ErrStartDateAfterEndDate = errors.New("start date cannot be after end date")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error-check helpers used by handlers to map flow errors to HTTP responses

func IsAssetNotFound(err error) bool       { return errors.Is(err, ErrAssetNotFound) }
func IsCategoryNotFound(err error) bool    { return errors.Is(err, ErrCategoryNotFound) }
func IsCategoryNameExists(err error) bool  { return errors.Is(err, ErrCategoryNameExists) }
func IsCategoryHasAssets(err error) bool   { return errors.Is(err, ErrCategoryHasAssets) }
func IsUserNotFound(err error) bool        { return errors.Is(err, ErrUserNotFound) }
func IsUsernameExists(err error) bool      { return errors.Is(err, ErrUsernameExists) }
func IsEmailExists(err error) bool         { return errors.Is(err, ErrEmailExists) }
func IsPasswordMismatch(err error) bool    { return errors.Is(err, ErrPasswordMismatch) }
func IsCannotDeleteSelf(err error) bool    { return errors.Is(err, ErrCannotDeleteSelf) }
func IsUserHasAssets(err error) bool       { return errors.Is(err, ErrUserHasAssets) }
func IsIncorrectPassword(err error) bool   { return errors.Is(err, ErrIncorrectPassword) }
func IsMaintenanceNotFound(err error) bool { return errors.Is(err, ErrMaintenanceNotFound) }
func IsReportQueryFailed(err error) bool   { return errors.Is(err, ErrReportQueryFailed) }
func IsAssignedUserNotFound(err error) bool {
	return errors.Is(err, ErrAssignedUserNotFound)
}
func IsAssetCategoryNotFound(err error) bool {
	return errors.Is(err, ErrAssetCategoryNotFound)
}
