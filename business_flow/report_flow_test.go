package businessflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openvarsity/inventory/app/dto"
	"github.com/openvarsity/inventory/models"
	"github.com/openvarsity/inventory/utils"
)

func newTestReportFlow(assets *stubAssetRepo, maintenance *stubMaintenanceRepo, now time.Time) *ReportFlowImpl {
	flow := NewReportFlow(assets, maintenance).(*ReportFlowImpl)
	flow.now = func() time.Time { return now }
	return flow
}

func testRows() []models.AssetRow {
	rows := []models.AssetRow{
		assetRow(models.AssetStatusAvailable, "Electronics", "Lab A", date(2025, time.March, 10), "10000", "7500"),
		assetRow(models.AssetStatusAvailable, "Electronics", "Lab A", date(2025, time.May, 2), "2000", "1500"),
		assetRow(models.AssetStatusInUse, "Furniture", "", date(2024, time.July, 20), "500", "500"),
	}
	for i := range rows {
		rows[i].AssetID = uint(i + 1)
	}
	return rows
}

func TestAssetFilterFromReport(t *testing.T) {
	req := &dto.ReportRequest{
		Search:     "laptop",
		Category:   "12",
		Status:     "in_use",
		StartDate:  "2024-01-01",
		EndDate:    "2024-12-31",
		Department: "Physics",
	}

	filter := AssetFilterFromReport(req)

	assert.Equal(t, "laptop", filter.Search)
	assert.Equal(t, uint(12), filter.CategoryID)
	assert.Equal(t, "in_use", filter.Status)
	assert.Equal(t, "2024-01-01", filter.StartDate)
	assert.Equal(t, "2024-12-31", filter.EndDate)
	assert.Equal(t, "Physics", filter.Department)
}

func TestAssetFilterFromReportMalformedCategory(t *testing.T) {
	filter := AssetFilterFromReport(&dto.ReportRequest{Category: "electronics"})
	assert.Equal(t, uint(0), filter.CategoryID)
}

func TestBuildReportUnknownSelector(t *testing.T) {
	assets := &stubAssetRepo{rows: testRows()}
	flow := newTestReportFlow(assets, &stubMaintenanceRepo{}, date(2026, time.June, 1))

	payload, err := flow.BuildReport(context.Background(), &dto.ReportRequest{Type: "bogus"}, nil)

	require.NoError(t, err)
	assert.Equal(t, "bogus", payload.ReportType)
	assert.Len(t, payload.Rows, 3)
	assert.Nil(t, payload.Overview)
	assert.Nil(t, payload.AssetTotals)
	assert.Nil(t, payload.Financial)
	assert.Nil(t, payload.Maintenance)
	assert.Nil(t, payload.Depreciation)
}

func TestBuildReportAssets(t *testing.T) {
	assets := &stubAssetRepo{rows: testRows()}
	flow := newTestReportFlow(assets, &stubMaintenanceRepo{}, date(2026, time.June, 1))

	payload, err := flow.BuildReport(context.Background(), &dto.ReportRequest{Type: dto.ReportTypeAssets}, nil)

	require.NoError(t, err)
	require.NotNil(t, payload.AssetTotals)
	assert.Equal(t, 3, payload.AssetTotals.RecordCount)
	assert.True(t, payload.AssetTotals.PurchaseTotal.Equal(decimal.RequireFromString("12500")))
	assert.True(t, payload.AssetTotals.CurrentTotal.Equal(decimal.RequireFromString("9500")))
}

func TestBuildReportFinancial(t *testing.T) {
	assets := &stubAssetRepo{rows: testRows()}
	flow := newTestReportFlow(assets, &stubMaintenanceRepo{}, date(2026, time.June, 1))

	payload, err := flow.BuildReport(context.Background(), &dto.ReportRequest{Type: dto.ReportTypeFinancial}, nil)

	require.NoError(t, err)
	require.NotNil(t, payload.Financial)
	assert.Len(t, payload.Financial.ByCategory, 2)
	assert.True(t, payload.Financial.TotalDepreciation.Equal(decimal.RequireFromString("3000")))
	assert.True(t, payload.Financial.DepreciationRate.Equal(decimal.RequireFromString("24")),
		"got %s", payload.Financial.DepreciationRate)
}

func TestBuildReportDepreciation(t *testing.T) {
	assets := &stubAssetRepo{rows: testRows()}
	flow := newTestReportFlow(assets, &stubMaintenanceRepo{}, date(2026, time.June, 1))

	payload, err := flow.BuildReport(context.Background(), &dto.ReportRequest{Type: dto.ReportTypeDepreciation}, nil)

	require.NoError(t, err)
	require.NotNil(t, payload.Depreciation)
	assert.Len(t, payload.Depreciation.Lines, 3)
	assert.True(t, payload.Depreciation.TotalDepreciation.Equal(decimal.RequireFromString("3000")))
}

func TestBuildReportMaintenance(t *testing.T) {
	assets := &stubAssetRepo{rows: testRows()}
	maintenance := &stubMaintenanceRepo{rows: []models.MaintenanceRow{
		{MaintenanceID: 1, AssetID: 1, Status: models.MaintenanceStatusPending,
			MaintenanceDate: date(2026, time.June, 10), Cost: decimal.RequireFromString("120")},
		{MaintenanceID: 2, AssetID: 1, Status: models.MaintenanceStatusCompleted,
			MaintenanceDate: date(2026, time.April, 1), Cost: decimal.RequireFromString("80")},
	}}
	flow := newTestReportFlow(assets, maintenance, date(2026, time.June, 1))

	payload, err := flow.BuildReport(context.Background(), &dto.ReportRequest{
		Type:      dto.ReportTypeMaintenance,
		StartDate: "2026-01-01",
		EndDate:   "2026-12-31",
	}, nil)

	require.NoError(t, err)
	require.NotNil(t, payload.Maintenance)
	assert.Equal(t, 2, payload.Maintenance.RecordCount)
	assert.True(t, payload.Maintenance.TotalCost.Equal(decimal.RequireFromString("200")))
	require.Len(t, payload.Maintenance.Upcoming, 1)
	assert.Equal(t, uint(1), payload.Maintenance.Upcoming[0].MaintenanceID)

	// Every filtered asset appears in the per-asset table, including the two
	// with no maintenance history.
	require.Len(t, payload.Maintenance.PerAsset, 3)
	assert.Equal(t, 2, payload.Maintenance.PerAsset[0].RecordCount)
	assert.Equal(t, 0, payload.Maintenance.PerAsset[1].RecordCount)
	assert.True(t, payload.Maintenance.PerAsset[1].TotalCost.IsZero())
	assert.Equal(t, 0, payload.Maintenance.PerAsset[2].RecordCount)

	// The date bounds from the request reach the maintenance query.
	require.Len(t, maintenance.filters, 1)
	assert.Equal(t, "2026-01-01", maintenance.filters[0].StartDate)
	assert.Equal(t, "2026-12-31", maintenance.filters[0].EndDate)
}

func TestBuildReportOverviewIgnoresFilters(t *testing.T) {
	assets := &stubAssetRepo{rows: testRows()}
	maintenance := &stubMaintenanceRepo{rows: []models.MaintenanceRow{
		{MaintenanceID: 1, AssetID: 1, Status: models.MaintenanceStatusCompleted,
			MaintenanceDate: date(2026, time.February, 1), Cost: decimal.RequireFromString("90")},
	}}
	flow := newTestReportFlow(assets, maintenance, date(2026, time.June, 1))

	payload, err := flow.BuildReport(context.Background(), &dto.ReportRequest{
		Type:   dto.ReportTypeOverview,
		Status: "available",
	}, nil)

	require.NoError(t, err)
	require.NotNil(t, payload.Overview)

	// Two asset queries: the filtered rows and the unfiltered headline pass.
	require.Len(t, assets.filters, 2)
	assert.Equal(t, "available", assets.filters[0].Status)
	assert.Equal(t, models.AssetFilter{}, assets.filters[1])

	overview := payload.Overview
	assert.Equal(t, 3, overview.TotalAssets)
	assert.True(t, overview.TotalPurchaseValue.Equal(decimal.RequireFromString("12500")))
	assert.True(t, overview.TotalDepreciation.Equal(decimal.RequireFromString("3000")))
	assert.Len(t, overview.Monthly, 12)
	assert.Len(t, overview.MaintenanceMonthly, 12)
	assert.Equal(t, 1, overview.TotalMaintenance)
	assert.True(t, overview.AvgMaintenanceCost.Equal(decimal.RequireFromString("90")))
}

func TestBuildReportGeneratedAtUsesClock(t *testing.T) {
	now := date(2026, time.August, 29)
	flow := newTestReportFlow(&stubAssetRepo{}, &stubMaintenanceRepo{}, now)

	payload, err := flow.BuildReport(context.Background(), &dto.ReportRequest{}, nil)

	require.NoError(t, err)
	assert.Equal(t, now.Format(time.RFC3339), payload.GeneratedAt)
}

func TestBuildReportRecordsPrincipal(t *testing.T) {
	flow := newTestReportFlow(&stubAssetRepo{}, &stubMaintenanceRepo{}, utils.UTCNow())

	payload, err := flow.BuildReport(context.Background(), &dto.ReportRequest{},
		&Principal{UserID: 42, Role: models.UserRoleAdmin})

	require.NoError(t, err)
	assert.Equal(t, uint(42), payload.GeneratedBy)

	anon, err := flow.BuildReport(context.Background(), &dto.ReportRequest{}, nil)
	require.NoError(t, err)
	assert.Zero(t, anon.GeneratedBy)
}

func TestBuildReportQueryFailure(t *testing.T) {
	dbErr := errors.New("connection reset")
	assets := &stubAssetRepo{err: dbErr}
	flow := newTestReportFlow(assets, &stubMaintenanceRepo{}, utils.UTCNow())

	payload, err := flow.BuildReport(context.Background(), &dto.ReportRequest{Type: dto.ReportTypeAssets}, nil)

	assert.Nil(t, payload)
	require.Error(t, err)
	assert.True(t, IsReportQueryFailed(err))
	assert.ErrorIs(t, err, dbErr)
}
