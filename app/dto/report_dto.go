package dto

import (
	"github.com/openvarsity/inventory/models"
	"github.com/shopspring/decimal"
)

// Report type selectors. An unrecognized selector produces a payload with no
// computed sections rather than an error.
const (
	ReportTypeOverview     = "overview"
	ReportTypeAssets       = "assets"
	ReportTypeFinancial    = "financial"
	ReportTypeMaintenance  = "maintenance"
	ReportTypeDepreciation = "depreciation"
)

// ReportRequest carries the report selector and the raw filter values as
// supplied by the caller. Unrecognized filter keys are never bound here and
// are therefore ignored.
type ReportRequest struct {
	Type       string `json:"type"`
	Search     string `json:"search"`
	Category   string `json:"category"` // numeric id; malformed input coerces to absent
	Status     string `json:"status"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Department string `json:"department"`
}

// GroupCount is one bucket of a grouped count with its share of the total
type GroupCount struct {
	Key     string  `json:"key"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// MonthlyBucket is one month of a fixed 12-entry series
type MonthlyBucket struct {
	Month string          `json:"month"`
	Count int             `json:"count"`
	Value decimal.Decimal `json:"value"`
}

// LocationCount is one row of the per-location breakdown
type LocationCount struct {
	Location string          `json:"location"`
	Count    int             `json:"count"`
	Value    decimal.Decimal `json:"value"`
}

// CategoryFinancial is one row of the financial per-category reconciliation
type CategoryFinancial struct {
	Category         string          `json:"category"`
	AssetCount       int             `json:"asset_count"`
	PurchaseTotal    decimal.Decimal `json:"purchase_total"`
	CurrentTotal     decimal.Decimal `json:"current_total"`
	Depreciation     decimal.Decimal `json:"depreciation"`
	DepreciationRate decimal.Decimal `json:"depreciation_rate"`
}

// AssetMaintenanceCost aggregates maintenance spending for one asset
type AssetMaintenanceCost struct {
	AssetID     uint            `json:"asset_id"`
	AssetCode   string          `json:"asset_code"`
	AssetName   string          `json:"asset_name"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	RecordCount int             `json:"record_count"`
	AvgCost     decimal.Decimal `json:"avg_cost"`
}

// UpcomingMaintenance is one scheduled record with its countdown. A negative
// DaysUntil means the work is overdue.
type UpcomingMaintenance struct {
	MaintenanceID   uint   `json:"maintenance_id"`
	AssetCode       string `json:"asset_code"`
	AssetName       string `json:"asset_name"`
	MaintenanceType string `json:"maintenance_type"`
	ScheduledDate   string `json:"scheduled_date"`
	DaysUntil       int    `json:"days_until"`
	Overdue         bool   `json:"overdue"`
}

// DepreciationLine is one asset's row in the depreciation report
type DepreciationLine struct {
	AssetCode          string          `json:"asset_code"`
	AssetName          string          `json:"asset_name"`
	Category           string          `json:"category"`
	PurchaseDate       string          `json:"purchase_date"`
	AgeYears           int             `json:"age_years"`
	PurchaseCost       decimal.Decimal `json:"purchase_cost"`
	CurrentValue       decimal.Decimal `json:"current_value"`
	Depreciation       decimal.Decimal `json:"depreciation"`
	DepreciationRate   decimal.Decimal `json:"depreciation_rate"`
	AnnualDepreciation decimal.Decimal `json:"annual_depreciation"`
}

// OverviewSection carries the global headline statistics. These ignore the
// active filters; only the detailed rows honor them.
type OverviewSection struct {
	TotalAssets          int             `json:"total_assets"`
	TotalPurchaseValue   decimal.Decimal `json:"total_purchase_value"`
	TotalCurrentValue    decimal.Decimal `json:"total_current_value"`
	TotalDepreciation    decimal.Decimal `json:"total_depreciation"`
	DepreciationRate     decimal.Decimal `json:"depreciation_rate"`
	ByStatus             []GroupCount    `json:"by_status"`
	ByCategory           []GroupCount    `json:"by_category"`
	Monthly              []MonthlyBucket `json:"monthly"`
	TopLocations         []LocationCount `json:"top_locations"`
	MaintenanceMonthly   []MonthlyBucket `json:"maintenance_monthly"`
	TotalMaintenance     int             `json:"total_maintenance"`
	TotalMaintenanceCost decimal.Decimal `json:"total_maintenance_cost"`
	AvgMaintenanceCost   decimal.Decimal `json:"avg_maintenance_cost"`
	RecentAcquisitions   int             `json:"recent_acquisitions"`
}

// AssetTotalsSection carries the summed costs over the filtered rows
type AssetTotalsSection struct {
	RecordCount   int             `json:"record_count"`
	PurchaseTotal decimal.Decimal `json:"purchase_total"`
	CurrentTotal  decimal.Decimal `json:"current_total"`
}

// FinancialSection reconciles the filtered rows per category
type FinancialSection struct {
	ByCategory        []CategoryFinancial `json:"by_category"`
	PurchaseTotal     decimal.Decimal     `json:"purchase_total"`
	CurrentTotal      decimal.Decimal     `json:"current_total"`
	TotalDepreciation decimal.Decimal     `json:"total_depreciation"`
	DepreciationRate  decimal.Decimal     `json:"depreciation_rate"`
}

// MaintenanceSection carries per-asset spending plus the upcoming schedule
type MaintenanceSection struct {
	PerAsset    []AssetMaintenanceCost `json:"per_asset"`
	Upcoming    []UpcomingMaintenance  `json:"upcoming"`
	RecordCount int                    `json:"record_count"`
	TotalCost   decimal.Decimal        `json:"total_cost"`
}

// DepreciationSection carries the per-asset lines plus the grand total
type DepreciationSection struct {
	Lines             []DepreciationLine `json:"lines"`
	TotalDepreciation decimal.Decimal    `json:"total_depreciation"`
}

// ReportPayload is the bundle returned for one report invocation: the raw
// filtered rows plus whichever computed sections the selector asked for.
type ReportPayload struct {
	ReportType   string               `json:"report_type"`
	GeneratedAt  string               `json:"generated_at"`
	GeneratedBy  uint                 `json:"generated_by,omitempty"`
	Rows         []models.AssetRow    `json:"rows"`
	Overview     *OverviewSection     `json:"overview,omitempty"`
	AssetTotals  *AssetTotalsSection  `json:"asset_totals,omitempty"`
	Financial    *FinancialSection    `json:"financial,omitempty"`
	Maintenance  *MaintenanceSection  `json:"maintenance,omitempty"`
	Depreciation *DepreciationSection `json:"depreciation,omitempty"`
}
