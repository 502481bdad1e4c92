package dto

import (
	"github.com/openvarsity/inventory/models"
	"github.com/shopspring/decimal"
)

// DashboardStats carries the headline counters shown on the dashboard
type DashboardStats struct {
	TotalAssets       int64           `json:"total_assets"`
	AvailableAssets   int64           `json:"available_assets"`
	InUseAssets       int64           `json:"in_use_assets"`
	MaintenanceAssets int64           `json:"maintenance_assets"`
	TotalValue        decimal.Decimal `json:"total_value"`
}

// DashboardResponse bundles the counters with the most recent assets
type DashboardResponse struct {
	Stats        DashboardStats    `json:"stats"`
	RecentAssets []models.AssetRow `json:"recent_assets"`
}
