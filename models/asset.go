// Package models contains domain entities and business models for the asset inventory system
package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetStatus represents the lifecycle status of an asset
type AssetStatus string

const (
	AssetStatusAvailable        AssetStatus = "available"
	AssetStatusInUse            AssetStatus = "in_use"
	AssetStatusUnderMaintenance AssetStatus = "under_maintenance"
	AssetStatusRetired          AssetStatus = "retired"
)

// String returns the string representation of the status
func (s AssetStatus) String() string {
	return string(s)
}

// Valid checks if the status is valid
func (s AssetStatus) Valid() bool {
	switch s {
	case AssetStatusAvailable, AssetStatusInUse,
		AssetStatusUnderMaintenance, AssetStatusRetired:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for AssetStatus
func (s *AssetStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = AssetStatus(v)
	case []byte:
		*s = AssetStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into AssetStatus", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for AssetStatus
func (s AssetStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid AssetStatus: %s", s)
	}
	return string(s), nil
}

// Asset represents a tracked physical item owned by the university
type Asset struct {
	ID             uint            `gorm:"primaryKey;column:asset_id" json:"asset_id"`
	UUID           uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"uuid"`
	AssetCode      string          `gorm:"size:50;uniqueIndex;not null" json:"asset_code"`
	AssetName      string          `gorm:"size:255;not null" json:"asset_name"`
	CategoryID     *uint           `gorm:"index:idx_assets_category_id" json:"category_id,omitempty"`
	Category       *Category       `gorm:"foreignKey:CategoryID;references:ID" json:"category,omitempty"`
	SerialNumber   *string         `gorm:"size:255" json:"serial_number,omitempty"`
	Model          *string         `gorm:"size:255" json:"model,omitempty"`
	Manufacturer   *string         `gorm:"size:255" json:"manufacturer,omitempty"`
	PurchaseDate   time.Time       `gorm:"type:date;not null;index:idx_assets_purchase_date" json:"purchase_date"`
	PurchaseCost   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"purchase_cost"`
	CurrentValue   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"current_value"`
	Location       *string         `gorm:"size:255" json:"location,omitempty"`
	Status         AssetStatus     `gorm:"size:50;not null;default:'available';index:idx_assets_status" json:"status"`
	AssignedTo     *uint           `gorm:"index:idx_assets_assigned_to" json:"assigned_to,omitempty"`
	AssignedUser   *User           `gorm:"foreignKey:AssignedTo;references:ID" json:"assigned_user,omitempty"`
	WarrantyExpiry *time.Time      `gorm:"type:date" json:"warranty_expiry,omitempty"`
	Notes          *string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Asset) TableName() string {
	return "assets"
}

// IsAssigned reports whether the asset is handed to a custodian
func (a *Asset) IsAssigned() bool {
	return a.AssignedTo != nil
}

// Depreciation returns purchase cost minus current value
func (a *Asset) Depreciation() decimal.Decimal {
	return a.PurchaseCost.Sub(a.CurrentValue)
}

// AssetFilter represents the optional criteria a caller may supply to narrow
// an asset listing or report. Zero values mean "no constraint"; malformed
// numeric input is coerced to zero upstream and therefore ignored.
type AssetFilter struct {
	Search     string // substring over asset_name, asset_code, serial_number
	CategoryID uint   // equality on category_id
	Status     string // equality on status
	StartDate  string // inclusive lower bound on purchase_date (YYYY-MM-DD)
	EndDate    string // inclusive upper bound on purchase_date (YYYY-MM-DD)
	Department string // equality, joined through the assigned user
}

// AssetRow is the joined projection produced by asset listing and report
// queries: one asset plus its category label and custodian details.
type AssetRow struct {
	AssetID        uint            `json:"asset_id"`
	AssetCode      string          `json:"asset_code"`
	AssetName      string          `json:"asset_name"`
	CategoryName   *string         `json:"category_name,omitempty"`
	SerialNumber   *string         `json:"serial_number,omitempty"`
	Model          *string         `json:"model,omitempty"`
	Manufacturer   *string         `json:"manufacturer,omitempty"`
	Location       *string         `json:"location,omitempty"`
	Status         AssetStatus     `json:"status"`
	PurchaseDate   time.Time       `json:"purchase_date"`
	PurchaseCost   decimal.Decimal `json:"purchase_cost"`
	CurrentValue   decimal.Decimal `json:"current_value"`
	WarrantyExpiry *time.Time      `json:"warranty_expiry,omitempty"`
	AssignedName   *string         `json:"assigned_name,omitempty"`
	Department     *string         `json:"department,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// CategoryLabel returns the category name or the uncategorized bucket label
func (r AssetRow) CategoryLabel() string {
	if r.CategoryName == nil || *r.CategoryName == "" {
		return "Uncategorized"
	}
	return *r.CategoryName
}

// LocationLabel returns the location or an empty string
func (r AssetRow) LocationLabel() string {
	if r.Location == nil {
		return ""
	}
	return *r.Location
}

// AssignedLabel returns the custodian name or the unassigned bucket label
func (r AssetRow) AssignedLabel() string {
	if r.AssignedName == nil || *r.AssignedName == "" {
		return "Not Assigned"
	}
	return *r.AssignedName
}
