package models

import (
	"time"

	"github.com/lib/pq"
)

// AuditLog records who changed what in the inventory
type AuditLog struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        *uint          `gorm:"index:idx_audit_user_id" json:"user_id,omitempty"`
	User          *User          `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	Action        string         `gorm:"size:100;not null;index:idx_audit_action" json:"action"`
	EntityType    *string        `gorm:"size:100" json:"entity_type,omitempty"`
	EntityID      *uint          `json:"entity_id,omitempty"`
	ChangedFields pq.StringArray `gorm:"type:text[]" json:"changed_fields,omitempty"`
	Description   *string        `gorm:"type:text" json:"description,omitempty"`
	IPAddress     *string        `gorm:"type:inet" json:"ip_address,omitempty"`
	RequestID     *string        `gorm:"size:255;index:idx_audit_request_id" json:"request_id,omitempty"`
	Success       *bool          `gorm:"default:true;index:idx_audit_success" json:"success"`
	ErrorMessage  *string        `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt     time.Time      `gorm:"default:CURRENT_TIMESTAMP;index:idx_audit_created_at" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_log"
}

// Audit action constants
const (
	AuditActionLoginSuccess       = "login_success"
	AuditActionLoginFailed        = "login_failed"
	AuditActionLogout             = "logout"
	AuditActionAssetCreated       = "asset_created"
	AuditActionAssetUpdated       = "asset_updated"
	AuditActionAssetDeleted       = "asset_deleted"
	AuditActionCategoryCreated    = "category_created"
	AuditActionCategoryUpdated    = "category_updated"
	AuditActionCategoryDeleted    = "category_deleted"
	AuditActionUserCreated        = "user_created"
	AuditActionUserUpdated        = "user_updated"
	AuditActionUserDeleted        = "user_deleted"
	AuditActionMaintenanceCreated = "maintenance_created"
	AuditActionMaintenanceUpdated = "maintenance_updated"
	AuditActionMaintenanceDeleted = "maintenance_deleted"
)

// Audited entity type constants
const (
	AuditEntityAsset       = "asset"
	AuditEntityCategory    = "category"
	AuditEntityUser        = "user"
	AuditEntityMaintenance = "maintenance_record"
)

// AuditLogFilter represents filter criteria for audit log queries
type AuditLogFilter struct {
	UserID        *uint
	Action        *string
	EntityType    *string
	Success       *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

func (a *AuditLog) IsFailed() bool {
	return a.Success != nil && !*a.Success
}
