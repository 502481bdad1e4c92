package dto

import (
	"github.com/openvarsity/inventory/models"
	"github.com/shopspring/decimal"
)

// CreateAssetRequest represents the payload for registering a new asset
type CreateAssetRequest struct {
	AssetName      string          `json:"asset_name" validate:"required,min=2,max=255"`
	CategoryID     uint            `json:"category_id" validate:"omitempty"`
	SerialNumber   *string         `json:"serial_number,omitempty" validate:"omitempty,max=255"`
	Model          *string         `json:"model,omitempty" validate:"omitempty,max=255"`
	Manufacturer   *string         `json:"manufacturer,omitempty" validate:"omitempty,max=255"`
	PurchaseDate   string          `json:"purchase_date" validate:"required,datetime=2006-01-02"`
	PurchaseCost   decimal.Decimal `json:"purchase_cost"`
	CurrentValue   decimal.Decimal `json:"current_value"`
	Location       *string         `json:"location,omitempty" validate:"omitempty,max=255"`
	Status         string          `json:"status" validate:"required,oneof=available in_use under_maintenance retired"`
	AssignedTo     *uint           `json:"assigned_to,omitempty"`
	WarrantyExpiry *string         `json:"warranty_expiry,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes          *string         `json:"notes,omitempty"`
}

// UpdateAssetRequest represents the payload for editing an asset. The asset
// code is immutable and therefore absent here.
type UpdateAssetRequest struct {
	AssetName      *string          `json:"asset_name,omitempty" validate:"omitempty,min=2,max=255"`
	CategoryID     *uint            `json:"category_id,omitempty"`
	SerialNumber   *string          `json:"serial_number,omitempty" validate:"omitempty,max=255"`
	Model          *string          `json:"model,omitempty" validate:"omitempty,max=255"`
	Manufacturer   *string          `json:"manufacturer,omitempty" validate:"omitempty,max=255"`
	PurchaseDate   *string          `json:"purchase_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PurchaseCost   *decimal.Decimal `json:"purchase_cost,omitempty"`
	CurrentValue   *decimal.Decimal `json:"current_value,omitempty"`
	Location       *string          `json:"location,omitempty" validate:"omitempty,max=255"`
	Status         *string          `json:"status,omitempty" validate:"omitempty,oneof=available in_use under_maintenance retired"`
	AssignedTo     *uint            `json:"assigned_to,omitempty"`
	WarrantyExpiry *string          `json:"warranty_expiry,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes          *string          `json:"notes,omitempty"`
}

// AssetListResponse carries the filtered asset rows
type AssetListResponse struct {
	Assets []models.AssetRow `json:"assets"`
	Total  int               `json:"total"`
}

// CreateAssetResponse carries the stored asset including its generated code
type CreateAssetResponse struct {
	Asset models.Asset `json:"asset"`
}
