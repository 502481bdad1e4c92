package businessflow

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/openvarsity/inventory/models"
	"github.com/openvarsity/inventory/repository"
)

// In-memory repository stubs shared by the flow tests. Each stub serves
// canned data, records what it was asked for, and captures writes.

type stubAssetRepo struct {
	rows            []models.AssetRow
	err             error
	filters         []models.AssetFilter
	byID            map[uint]*models.Asset
	takenCodes      map[string]bool
	countByCategory int64
	countAssignedTo int64
	countsByStatus  map[string]int64
	totalCost       decimal.Decimal
	recent          []models.AssetRow
	saved           []*models.Asset
	updated         []*models.Asset
	deleted         []uint
}

func (s *stubAssetRepo) ListRows(_ context.Context, filter models.AssetFilter, _ string) ([]models.AssetRow, error) {
	s.filters = append(s.filters, filter)
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

func (s *stubAssetRepo) ByID(_ context.Context, id uint) (*models.Asset, error) {
	return s.byID[id], nil
}

func (s *stubAssetRepo) ByCode(_ context.Context, code string) (*models.Asset, error) {
	if s.takenCodes[code] {
		return &models.Asset{AssetCode: code}, nil
	}
	return nil, nil
}

func (s *stubAssetRepo) RowByID(context.Context, uint) (*models.AssetRow, error) { return nil, nil }

func (s *stubAssetRepo) RecentRows(context.Context, int) ([]models.AssetRow, error) {
	return s.recent, nil
}

func (s *stubAssetRepo) Save(_ context.Context, asset *models.Asset) error {
	s.saved = append(s.saved, asset)
	return nil
}

func (s *stubAssetRepo) Update(_ context.Context, asset *models.Asset) error {
	s.updated = append(s.updated, asset)
	return nil
}

func (s *stubAssetRepo) DeleteByID(_ context.Context, id uint) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubAssetRepo) Count(_ context.Context, filter models.AssetFilter) (int64, error) {
	if s.countsByStatus != nil {
		return s.countsByStatus[filter.Status], nil
	}
	return int64(len(s.rows)), nil
}

func (s *stubAssetRepo) CountByCategory(context.Context, uint) (int64, error) {
	return s.countByCategory, nil
}

func (s *stubAssetRepo) CountAssignedTo(context.Context, uint) (int64, error) {
	return s.countAssignedTo, nil
}

func (s *stubAssetRepo) TotalPurchaseCost(context.Context) (decimal.Decimal, error) {
	return s.totalCost, nil
}

type stubMaintenanceRepo struct {
	rows    []models.MaintenanceRow
	err     error
	filters []models.MaintenanceFilter
	byID    map[uint]*models.MaintenanceRecord
	saved   []*models.MaintenanceRecord
	deleted []uint
}

func (s *stubMaintenanceRepo) ListRows(_ context.Context, filter models.MaintenanceFilter, _ int) ([]models.MaintenanceRow, error) {
	s.filters = append(s.filters, filter)
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

func (s *stubMaintenanceRepo) ByID(_ context.Context, id uint) (*models.MaintenanceRecord, error) {
	return s.byID[id], nil
}

func (s *stubMaintenanceRepo) RecentRows(context.Context, int) ([]models.MaintenanceRow, error) {
	return nil, nil
}

func (s *stubMaintenanceRepo) CountByType(context.Context) ([]repository.TypeCount, error) {
	return nil, nil
}

func (s *stubMaintenanceRepo) Count(context.Context, models.MaintenanceFilter) (int64, error) {
	return 0, nil
}

func (s *stubMaintenanceRepo) TotalCost(context.Context, models.MaintenanceFilter) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (s *stubMaintenanceRepo) Save(_ context.Context, record *models.MaintenanceRecord) error {
	s.saved = append(s.saved, record)
	return nil
}

func (s *stubMaintenanceRepo) Update(context.Context, *models.MaintenanceRecord) error { return nil }

func (s *stubMaintenanceRepo) DeleteByID(_ context.Context, id uint) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubCategoryRepo struct {
	byID    map[uint]*models.Category
	byName  map[string]*models.Category
	saved   []*models.Category
	deleted []uint
}

func (s *stubCategoryRepo) ByID(_ context.Context, id uint) (*models.Category, error) {
	return s.byID[id], nil
}

func (s *stubCategoryRepo) ByName(_ context.Context, name string) (*models.Category, error) {
	return s.byName[name], nil
}

func (s *stubCategoryRepo) List(context.Context, models.CategoryFilter) ([]*models.Category, error) {
	return nil, nil
}

func (s *stubCategoryRepo) Save(_ context.Context, category *models.Category) error {
	s.saved = append(s.saved, category)
	return nil
}

func (s *stubCategoryRepo) Update(context.Context, *models.Category) error { return nil }

func (s *stubCategoryRepo) DeleteByID(_ context.Context, id uint) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubUserRepo struct {
	byID       map[uint]*models.User
	byUsername map[string]*models.User
	saved      []*models.User
	deleted    []uint
}

func (s *stubUserRepo) ByID(_ context.Context, id uint) (*models.User, error) {
	return s.byID[id], nil
}

func (s *stubUserRepo) ByUsername(_ context.Context, username string) (*models.User, error) {
	return s.byUsername[username], nil
}

func (s *stubUserRepo) ByEmail(context.Context, string) (*models.User, error) { return nil, nil }

func (s *stubUserRepo) List(context.Context, models.UserFilter) ([]*models.User, error) {
	return nil, nil
}

func (s *stubUserRepo) ListDepartments(context.Context) ([]string, error) { return nil, nil }

func (s *stubUserRepo) CountByRole(context.Context) (map[models.UserRole]int64, error) {
	return map[models.UserRole]int64{}, nil
}

func (s *stubUserRepo) Save(_ context.Context, user *models.User) error {
	s.saved = append(s.saved, user)
	return nil
}

func (s *stubUserRepo) Update(context.Context, *models.User) error { return nil }

func (s *stubUserRepo) DeleteByID(_ context.Context, id uint) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubAuditRepo struct {
	entries []*models.AuditLog
}

func (s *stubAuditRepo) Save(_ context.Context, entry *models.AuditLog) error {
	s.entries = append(s.entries, entry)
	return nil
}

// stubTransactor runs the unit of work directly and counts invocations.
type stubTransactor struct {
	calls int
}

func (s *stubTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.calls++
	return fn(ctx)
}
