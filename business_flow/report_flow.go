package businessflow

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openvarsity/inventory/app/dto"
	"github.com/openvarsity/inventory/models"
	"github.com/openvarsity/inventory/repository"
	"github.com/openvarsity/inventory/utils"
)

// ReportFlow builds inventory reports. Every report carries the filtered
// asset rows; the selector decides which computed sections join them. An
// unrecognized selector yields the rows alone.
type ReportFlow interface {
	BuildReport(ctx context.Context, req *dto.ReportRequest, principal *Principal) (*dto.ReportPayload, error)
}

type ReportFlowImpl struct {
	assetRepo       repository.AssetRepository
	maintenanceRepo repository.MaintenanceRepository

	// now is swapped in tests so date arithmetic stays deterministic
	now func() time.Time
}

func NewReportFlow(
	assetRepo repository.AssetRepository,
	maintenanceRepo repository.MaintenanceRepository,
) ReportFlow {
	return &ReportFlowImpl{
		assetRepo:       assetRepo,
		maintenanceRepo: maintenanceRepo,
		now:             utils.UTCNow,
	}
}

// AssetFilterFromReport coerces the raw report request values into a typed
// filter. Malformed category input becomes 0 and is thereby ignored.
func AssetFilterFromReport(req *dto.ReportRequest) models.AssetFilter {
	return models.AssetFilter{
		Search:     req.Search,
		CategoryID: utils.CoerceUint(req.Category),
		Status:     req.Status,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Department: req.Department,
	}
}

// BuildReport assembles the requested report. The acting principal arrives as
// an explicit argument rather than ambient session state, so the computation
// stays a pure function of its inputs; no section currently varies by role.
func (f *ReportFlowImpl) BuildReport(ctx context.Context, req *dto.ReportRequest, principal *Principal) (*dto.ReportPayload, error) {
	now := f.now()
	filter := AssetFilterFromReport(req)

	rows, err := f.assetRepo.ListRows(ctx, filter, "")
	if err != nil {
		return nil, NewBusinessError("REPORT_ROWS_FAILED", "Failed to fetch report rows", wrapReportErr(err))
	}

	payload := &dto.ReportPayload{
		ReportType:  req.Type,
		GeneratedAt: now.Format(time.RFC3339),
		Rows:        rows,
	}
	if principal != nil {
		payload.GeneratedBy = principal.UserID
	}

	switch req.Type {
	case dto.ReportTypeOverview:
		payload.Overview, err = f.buildOverview(ctx, now)
	case dto.ReportTypeAssets:
		payload.AssetTotals = buildAssetTotals(rows)
	case dto.ReportTypeFinancial:
		payload.Financial = buildFinancial(rows)
	case dto.ReportTypeMaintenance:
		payload.Maintenance, err = f.buildMaintenance(ctx, req, rows, now)
	case dto.ReportTypeDepreciation:
		payload.Depreciation = buildDepreciation(rows, now)
	}
	if err != nil {
		return nil, err
	}

	return payload, nil
}

// buildOverview computes the global headline statistics over the whole
// inventory, independent of the active filters
func (f *ReportFlowImpl) buildOverview(ctx context.Context, now time.Time) (*dto.OverviewSection, error) {
	allRows, err := f.assetRepo.ListRows(ctx, models.AssetFilter{}, "")
	if err != nil {
		return nil, NewBusinessError("REPORT_OVERVIEW_FAILED", "Failed to fetch overview rows", wrapReportErr(err))
	}

	allMaintenance, err := f.maintenanceRepo.ListRows(ctx, models.MaintenanceFilter{}, 0)
	if err != nil {
		return nil, NewBusinessError("REPORT_OVERVIEW_FAILED", "Failed to fetch maintenance rows", wrapReportErr(err))
	}

	purchaseTotal := SumPurchaseCost(allRows)
	currentTotal := SumCurrentValue(allRows)
	depreciation := purchaseTotal.Sub(currentTotal)

	maintenanceCost := decimal.Zero
	for _, rec := range allMaintenance {
		maintenanceCost = maintenanceCost.Add(rec.Cost)
	}
	avgCost := decimal.Zero
	if len(allMaintenance) > 0 {
		avgCost = maintenanceCost.DivRound(decimal.NewFromInt(int64(len(allMaintenance))), 2)
	}

	cutoff := now.AddDate(0, 0, -30)
	recent := 0
	for _, row := range allRows {
		if !row.PurchaseDate.Before(cutoff) {
			recent++
		}
	}

	return &dto.OverviewSection{
		TotalAssets:        len(allRows),
		TotalPurchaseValue: purchaseTotal,
		TotalCurrentValue:  currentTotal,
		TotalDepreciation:  depreciation,
		DepreciationRate:   DepreciationRate(purchaseTotal, depreciation),
		ByStatus: GroupCountsBy(allRows, func(r models.AssetRow) string {
			return r.Status.String()
		}),
		ByCategory: GroupCountsBy(allRows, func(r models.AssetRow) string {
			return r.CategoryLabel()
		}),
		Monthly:              MonthlyAssetBuckets(allRows, now.Year()),
		TopLocations:         TopLocations(allRows, utils.TopLocationsLimit),
		MaintenanceMonthly:   MonthlyMaintenanceBuckets(allMaintenance, now.Year()),
		TotalMaintenance:     len(allMaintenance),
		TotalMaintenanceCost: maintenanceCost,
		AvgMaintenanceCost:   avgCost,
		RecentAcquisitions:   recent,
	}, nil
}

func buildAssetTotals(rows []models.AssetRow) *dto.AssetTotalsSection {
	return &dto.AssetTotalsSection{
		RecordCount:   len(rows),
		PurchaseTotal: SumPurchaseCost(rows),
		CurrentTotal:  SumCurrentValue(rows),
	}
}

func buildFinancial(rows []models.AssetRow) *dto.FinancialSection {
	purchaseTotal := SumPurchaseCost(rows)
	currentTotal := SumCurrentValue(rows)
	depreciation := purchaseTotal.Sub(currentTotal)

	return &dto.FinancialSection{
		ByCategory:        CategoryFinancials(rows),
		PurchaseTotal:     purchaseTotal,
		CurrentTotal:      currentTotal,
		TotalDepreciation: depreciation,
		DepreciationRate:  DepreciationRate(purchaseTotal, depreciation),
	}
}

func (f *ReportFlowImpl) buildMaintenance(ctx context.Context, req *dto.ReportRequest, assets []models.AssetRow, now time.Time) (*dto.MaintenanceSection, error) {
	records, err := f.maintenanceRepo.ListRows(ctx, models.MaintenanceFilter{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}, 0)
	if err != nil {
		return nil, NewBusinessError("REPORT_MAINTENANCE_FAILED", "Failed to fetch maintenance rows", wrapReportErr(err))
	}

	totalCost := decimal.Zero
	for _, rec := range records {
		totalCost = totalCost.Add(rec.Cost)
	}

	return &dto.MaintenanceSection{
		PerAsset:    MaintenanceCostPerAsset(assets, records),
		Upcoming:    UpcomingMaintenanceList(records, now),
		RecordCount: len(records),
		TotalCost:   totalCost,
	}, nil
}

func buildDepreciation(rows []models.AssetRow, now time.Time) *dto.DepreciationSection {
	lines, total := DepreciationLines(rows, now)
	return &dto.DepreciationSection{
		Lines:             lines,
		TotalDepreciation: total,
	}
}

// wrapReportErr ties a failed report query to ErrReportQueryFailed while
// keeping the driver error in the chain
func wrapReportErr(err error) error {
	return fmt.Errorf("%w: %w", ErrReportQueryFailed, err)
}
