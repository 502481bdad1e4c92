// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/openvarsity/inventory/models"
	"github.com/shopspring/decimal"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

// AssetRepository defines operations for assets
type AssetRepository interface {
	ByID(ctx context.Context, id uint) (*models.Asset, error)
	ByCode(ctx context.Context, code string) (*models.Asset, error)
	RowByID(ctx context.Context, id uint) (*models.AssetRow, error)
	ListRows(ctx context.Context, filter models.AssetFilter, orderBy string) ([]models.AssetRow, error)
	RecentRows(ctx context.Context, limit int) ([]models.AssetRow, error)
	Save(ctx context.Context, asset *models.Asset) error
	Update(ctx context.Context, asset *models.Asset) error
	DeleteByID(ctx context.Context, id uint) error
	Count(ctx context.Context, filter models.AssetFilter) (int64, error)
	CountByCategory(ctx context.Context, categoryID uint) (int64, error)
	CountAssignedTo(ctx context.Context, userID uint) (int64, error)
	TotalPurchaseCost(ctx context.Context) (decimal.Decimal, error)
}

// CategoryRepository defines operations for asset categories
type CategoryRepository interface {
	ByID(ctx context.Context, id uint) (*models.Category, error)
	ByName(ctx context.Context, name string) (*models.Category, error)
	List(ctx context.Context, filter models.CategoryFilter) ([]*models.Category, error)
	Save(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	DeleteByID(ctx context.Context, id uint) error
}

// UserRepository defines operations for asset custodian accounts
type UserRepository interface {
	ByID(ctx context.Context, id uint) (*models.User, error)
	ByUsername(ctx context.Context, username string) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, filter models.UserFilter) ([]*models.User, error)
	ListDepartments(ctx context.Context) ([]string, error)
	CountByRole(ctx context.Context) (map[models.UserRole]int64, error)
	Save(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	DeleteByID(ctx context.Context, id uint) error
}

// MaintenanceRepository defines operations for maintenance records
type MaintenanceRepository interface {
	ByID(ctx context.Context, id uint) (*models.MaintenanceRecord, error)
	ListRows(ctx context.Context, filter models.MaintenanceFilter, limit int) ([]models.MaintenanceRow, error)
	RecentRows(ctx context.Context, limit int) ([]models.MaintenanceRow, error)
	CountByType(ctx context.Context) ([]TypeCount, error)
	Count(ctx context.Context, filter models.MaintenanceFilter) (int64, error)
	TotalCost(ctx context.Context, filter models.MaintenanceFilter) (decimal.Decimal, error)
	Save(ctx context.Context, record *models.MaintenanceRecord) error
	Update(ctx context.Context, record *models.MaintenanceRecord) error
	DeleteByID(ctx context.Context, id uint) error
}

// TypeCount is one row of a maintenance-type breakdown
type TypeCount struct {
	MaintenanceType string `json:"maintenance_type"`
	Count           int64  `json:"count"`
}

// AuditLogRepository defines operations for audit logs
type AuditLogRepository interface {
	Save(ctx context.Context, entry *models.AuditLog) error
}

// Transactor runs a unit of work inside a single database transaction.
// Repositories called through the wrapped context share that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
