package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/openvarsity/inventory/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// assetRowSelect is the joined projection shared by asset listings and
// reports: every asset plus its category label and custodian details.
const assetRowSelect = `SELECT a.asset_id, a.asset_code, a.asset_name, c.category_name,
	a.serial_number, a.model, a.manufacturer, a.location, a.status,
	a.purchase_date, a.purchase_cost, a.current_value, a.warranty_expiry,
	u.full_name AS assigned_name, u.department, a.created_at
FROM assets a
LEFT JOIN asset_categories c ON a.category_id = c.category_id
LEFT JOIN users u ON a.assigned_to = u.user_id
WHERE 1=1`

// AssetRepositoryImpl implements AssetRepository
type AssetRepositoryImpl struct {
	*BaseRepository[models.Asset, models.AssetFilter]
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &AssetRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Asset, models.AssetFilter](db),
	}
}

// composeRows builds the parameterized asset-row query for the given filter.
// Filters contribute in declared order: search, category, status, date range,
// department. Absent values contribute nothing.
func composeRows(filter models.AssetFilter) *QueryComposer {
	return NewQueryComposer(assetRowSelect).
		Search(filter.Search, "a.asset_name", "a.asset_code", "a.serial_number").
		EqualID("a.category_id", filter.CategoryID).
		Equal("a.status", filter.Status).
		AtLeast("a.purchase_date", filter.StartDate).
		AtMost("a.purchase_date", filter.EndDate).
		Equal("u.department", filter.Department)
}

// ListRows retrieves joined asset rows matching the filter
func (r *AssetRepositoryImpl) ListRows(ctx context.Context, filter models.AssetFilter, orderBy string) ([]models.AssetRow, error) {
	db := r.getDB(ctx)

	if orderBy == "" {
		orderBy = "a.asset_code"
	}
	query, args := composeRows(filter).OrderBy(orderBy).SQL()

	var rows []models.AssetRow
	if err := db.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list asset rows: %w", err)
	}

	return rows, nil
}

// RecentRows retrieves the most recently created assets with joined labels
func (r *AssetRepositoryImpl) RecentRows(ctx context.Context, limit int) ([]models.AssetRow, error) {
	db := r.getDB(ctx)

	query, args := NewQueryComposer(assetRowSelect).
		OrderBy("a.created_at DESC").
		Limit(limit).
		SQL()

	var rows []models.AssetRow
	if err := db.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list recent asset rows: %w", err)
	}

	return rows, nil
}

// RowByID retrieves one joined asset row, or nil when the asset is missing
func (r *AssetRepositoryImpl) RowByID(ctx context.Context, id uint) (*models.AssetRow, error) {
	db := r.getDB(ctx)

	query, args := NewQueryComposer(assetRowSelect).
		Where("a.asset_id = ?", id).
		SQL()

	var rows []models.AssetRow
	if err := db.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find asset row by ID %d: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	return &rows[0], nil
}

// ByCode retrieves an asset by its immutable asset code
func (r *AssetRepositoryImpl) ByCode(ctx context.Context, code string) (*models.Asset, error) {
	db := r.getDB(ctx)

	var asset models.Asset
	err := db.Where("asset_code = ?", code).First(&asset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find asset by code %s: %w", code, err)
	}

	return &asset, nil
}

// Count returns the number of assets matching the filter
func (r *AssetRepositoryImpl) Count(ctx context.Context, filter models.AssetFilter) (int64, error) {
	db := r.getDB(ctx)

	query, args := NewQueryComposer(`SELECT COUNT(*) FROM assets a
LEFT JOIN users u ON a.assigned_to = u.user_id
WHERE 1=1`).
		Search(filter.Search, "a.asset_name", "a.asset_code", "a.serial_number").
		EqualID("a.category_id", filter.CategoryID).
		Equal("a.status", filter.Status).
		AtLeast("a.purchase_date", filter.StartDate).
		AtMost("a.purchase_date", filter.EndDate).
		Equal("u.department", filter.Department).
		SQL()

	var count int64
	if err := db.Raw(query, args...).Scan(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count assets: %w", err)
	}

	return count, nil
}

// CountByCategory returns the number of assets referencing a category
func (r *AssetRepositoryImpl) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	err := db.Model(&models.Asset{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count assets by category: %w", err)
	}

	return count, nil
}

// CountAssignedTo returns the number of assets assigned to a custodian
func (r *AssetRepositoryImpl) CountAssignedTo(ctx context.Context, userID uint) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	err := db.Model(&models.Asset{}).
		Where("assigned_to = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count assigned assets: %w", err)
	}

	return count, nil
}

// TotalPurchaseCost returns the summed purchase cost over all assets
func (r *AssetRepositoryImpl) TotalPurchaseCost(ctx context.Context) (decimal.Decimal, error) {
	db := r.getDB(ctx)

	var total decimal.NullDecimal
	err := db.Raw("SELECT SUM(purchase_cost) FROM assets").Scan(&total).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum purchase cost: %w", err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}

	return total.Decimal, nil
}
