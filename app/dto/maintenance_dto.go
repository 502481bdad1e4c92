package dto

import (
	"github.com/openvarsity/inventory/models"
	"github.com/shopspring/decimal"
)

// MaintenanceRecordDTO represents a maintenance record in API responses
type MaintenanceRecordDTO struct {
	ID              uint            `json:"maintenance_id"`
	AssetID         uint            `json:"asset_id"`
	MaintenanceType string          `json:"maintenance_type"`
	MaintenanceDate string          `json:"maintenance_date"`
	Cost            decimal.Decimal `json:"cost"`
	Status          string          `json:"status"`
	AssignedTo      *uint           `json:"assigned_to,omitempty"`
	Description     *string         `json:"description,omitempty"`
}

// CreateMaintenanceRequest represents the payload for logging maintenance
type CreateMaintenanceRequest struct {
	AssetID         uint            `json:"asset_id" validate:"required"`
	MaintenanceType string          `json:"maintenance_type" validate:"required,max=100"`
	MaintenanceDate string          `json:"maintenance_date" validate:"required,datetime=2006-01-02"`
	Cost            decimal.Decimal `json:"cost"`
	Status          string          `json:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	AssignedTo      *uint           `json:"assigned_to,omitempty"`
	Description     *string         `json:"description,omitempty"`
}

// UpdateMaintenanceRequest represents the payload for editing maintenance
type UpdateMaintenanceRequest struct {
	MaintenanceType *string          `json:"maintenance_type,omitempty" validate:"omitempty,max=100"`
	MaintenanceDate *string          `json:"maintenance_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Cost            *decimal.Decimal `json:"cost,omitempty"`
	Status          *string          `json:"status,omitempty" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	AssignedTo      *uint            `json:"assigned_to,omitempty"`
	Description     *string          `json:"description,omitempty"`
}

// MaintenanceStats summarizes the maintenance workload
type MaintenanceStats struct {
	TotalRecords    int64           `json:"total_records"`
	Pending         int64           `json:"pending"`
	InProgress      int64           `json:"in_progress"`
	Completed       int64           `json:"completed"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	UpcomingRecords int64           `json:"upcoming_records"`
}

// MaintenanceListResponse carries filtered records plus page statistics
type MaintenanceListResponse struct {
	Records []models.MaintenanceRow `json:"records"`
	Recent  []models.MaintenanceRow `json:"recent"`
	ByType  []MaintenanceTypeCount  `json:"by_type"`
	Stats   MaintenanceStats        `json:"stats"`
}

// MaintenanceTypeCount is one row of a maintenance-type breakdown
type MaintenanceTypeCount struct {
	MaintenanceType string `json:"maintenance_type"`
	Count           int64  `json:"count"`
}
