package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MaintenanceStatus represents the processing state of a maintenance record
type MaintenanceStatus string

const (
	MaintenanceStatusPending    MaintenanceStatus = "pending"
	MaintenanceStatusInProgress MaintenanceStatus = "in_progress"
	MaintenanceStatusCompleted  MaintenanceStatus = "completed"
	MaintenanceStatusCancelled  MaintenanceStatus = "cancelled"
)

// String returns the string representation of the status
func (s MaintenanceStatus) String() string {
	return string(s)
}

// Valid checks if the status is valid
func (s MaintenanceStatus) Valid() bool {
	switch s {
	case MaintenanceStatusPending, MaintenanceStatusInProgress,
		MaintenanceStatusCompleted, MaintenanceStatusCancelled:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for MaintenanceStatus
func (s *MaintenanceStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = MaintenanceStatus(v)
	case []byte:
		*s = MaintenanceStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into MaintenanceStatus", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for MaintenanceStatus
func (s MaintenanceStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid MaintenanceStatus: %s", s)
	}
	return string(s), nil
}

// Well-known maintenance types. The column itself is free-form so records
// imported from older systems keep whatever label they carried.
const (
	MaintenanceTypePreventive       = "Preventive"
	MaintenanceTypeCorrective       = "Corrective"
	MaintenanceTypeInspection       = "Inspection"
	MaintenanceTypeRepair           = "Repair"
	MaintenanceTypePartsReplacement = "Parts Replacement"
	MaintenanceTypeSoftwareUpdate   = "Software Update"
	MaintenanceTypeCleaning         = "Cleaning"
	MaintenanceTypeOther            = "Other"
)

// MaintenanceRecord represents one maintenance event logged against an asset
type MaintenanceRecord struct {
	ID              uint              `gorm:"primaryKey;column:maintenance_id" json:"maintenance_id"`
	AssetID         uint              `gorm:"not null;index:idx_maintenance_asset" json:"asset_id"`
	Asset           *Asset            `gorm:"foreignKey:AssetID;references:ID;constraint:OnDelete:CASCADE" json:"asset,omitempty"`
	MaintenanceType string            `gorm:"size:100;not null" json:"maintenance_type"`
	MaintenanceDate time.Time         `gorm:"type:date;not null;index:idx_maintenance_date" json:"maintenance_date"`
	Cost            decimal.Decimal   `gorm:"type:numeric(10,2);not null;default:0" json:"cost"`
	Status          MaintenanceStatus `gorm:"size:50;not null;default:'pending';index:idx_maintenance_status" json:"status"`
	AssignedTo      *uint             `json:"assigned_to,omitempty"`
	AssignedUser    *User             `gorm:"foreignKey:AssignedTo;references:ID;constraint:OnDelete:SET NULL" json:"assigned_user,omitempty"`
	Description     *string           `gorm:"type:text" json:"description,omitempty"`
	CreatedAt       time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (MaintenanceRecord) TableName() string {
	return "maintenance_records"
}

// MaintenanceFilter represents filter criteria for maintenance queries
type MaintenanceFilter struct {
	Status    string // equality on status
	Type      string // equality on maintenance_type
	StartDate string // inclusive lower bound on maintenance_date (YYYY-MM-DD)
	EndDate   string // inclusive upper bound on maintenance_date (YYYY-MM-DD)
}

// MaintenanceRow is the joined projection produced by maintenance listing and
// report queries: one record plus its asset and category labels.
type MaintenanceRow struct {
	MaintenanceID   uint              `json:"maintenance_id"`
	AssetID         uint              `json:"asset_id"`
	MaintenanceType string            `json:"maintenance_type"`
	MaintenanceDate time.Time         `json:"maintenance_date"`
	Cost            decimal.Decimal   `json:"cost"`
	Status          MaintenanceStatus `json:"status"`
	AssignedTo      *uint             `json:"assigned_to,omitempty"`
	Description     *string           `json:"description,omitempty"`
	AssetName       *string           `json:"asset_name,omitempty"`
	AssetCode       *string           `json:"asset_code,omitempty"`
	CategoryName    *string           `json:"category_name,omitempty"`
}

// CategoryLabel returns the category name or the uncategorized bucket label
func (r MaintenanceRow) CategoryLabel() string {
	if r.CategoryName == nil || *r.CategoryName == "" {
		return "Uncategorized"
	}
	return *r.CategoryName
}
