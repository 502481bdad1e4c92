package repository

import (
	"context"
	"fmt"

	"github.com/openvarsity/inventory/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// maintenanceRowSelect joins each record to its asset and category labels.
const maintenanceRowSelect = `SELECT m.maintenance_id, m.asset_id, m.maintenance_type,
	m.maintenance_date, m.cost, m.status, m.assigned_to, m.description,
	a.asset_name, a.asset_code, c.category_name
FROM maintenance_records m
LEFT JOIN assets a ON m.asset_id = a.asset_id
LEFT JOIN asset_categories c ON a.category_id = c.category_id
WHERE 1=1`

// MaintenanceRepositoryImpl implements MaintenanceRepository
type MaintenanceRepositoryImpl struct {
	*BaseRepository[models.MaintenanceRecord, models.MaintenanceFilter]
}

// NewMaintenanceRepository creates a new maintenance repository
func NewMaintenanceRepository(db *gorm.DB) MaintenanceRepository {
	return &MaintenanceRepositoryImpl{
		BaseRepository: NewBaseRepository[models.MaintenanceRecord, models.MaintenanceFilter](db),
	}
}

// composeMaintenance applies the maintenance filter in declared order:
// status, type, date range.
func composeMaintenance(base string, filter models.MaintenanceFilter) *QueryComposer {
	return NewQueryComposer(base).
		Equal("m.status", filter.Status).
		Equal("m.maintenance_type", filter.Type).
		AtLeast("m.maintenance_date", filter.StartDate).
		AtMost("m.maintenance_date", filter.EndDate)
}

// ListRows retrieves joined maintenance rows matching the filter, most recent
// first. A positive limit caps the listing.
func (r *MaintenanceRepositoryImpl) ListRows(ctx context.Context, filter models.MaintenanceFilter, limit int) ([]models.MaintenanceRow, error) {
	db := r.getDB(ctx)

	query, args := composeMaintenance(maintenanceRowSelect, filter).
		OrderBy("m.maintenance_date DESC").
		Limit(limit).
		SQL()

	var rows []models.MaintenanceRow
	if err := db.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list maintenance rows: %w", err)
	}

	return rows, nil
}

// RecentRows retrieves the most recent maintenance records with joined labels
func (r *MaintenanceRepositoryImpl) RecentRows(ctx context.Context, limit int) ([]models.MaintenanceRow, error) {
	return r.ListRows(ctx, models.MaintenanceFilter{}, limit)
}

// CountByType returns the number of records per maintenance type
func (r *MaintenanceRepositoryImpl) CountByType(ctx context.Context) ([]TypeCount, error) {
	db := r.getDB(ctx)

	var rows []TypeCount
	err := db.Raw(`SELECT maintenance_type, COUNT(*) AS count
		FROM maintenance_records
		GROUP BY maintenance_type
		ORDER BY count DESC`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count maintenance by type: %w", err)
	}

	return rows, nil
}

// Count returns the number of maintenance records matching the filter
func (r *MaintenanceRepositoryImpl) Count(ctx context.Context, filter models.MaintenanceFilter) (int64, error) {
	db := r.getDB(ctx)

	query, args := composeMaintenance("SELECT COUNT(*) FROM maintenance_records m WHERE 1=1", filter).SQL()

	var count int64
	if err := db.Raw(query, args...).Scan(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count maintenance records: %w", err)
	}

	return count, nil
}

// TotalCost returns the summed cost of records matching the filter
func (r *MaintenanceRepositoryImpl) TotalCost(ctx context.Context, filter models.MaintenanceFilter) (decimal.Decimal, error) {
	db := r.getDB(ctx)

	query, args := composeMaintenance("SELECT SUM(m.cost) FROM maintenance_records m WHERE 1=1", filter).SQL()

	var total decimal.NullDecimal
	if err := db.Raw(query, args...).Scan(&total).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum maintenance cost: %w", err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}

	return total.Decimal, nil
}
