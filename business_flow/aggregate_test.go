package businessflow

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openvarsity/inventory/models"
	"github.com/openvarsity/inventory/utils"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func assetRow(status models.AssetStatus, category, location string, purchase time.Time, cost, value string) models.AssetRow {
	row := models.AssetRow{
		Status:       status,
		PurchaseDate: purchase,
		PurchaseCost: money(cost),
		CurrentValue: money(value),
	}
	if category != "" {
		row.CategoryName = utils.ToPtr(category)
	}
	if location != "" {
		row.Location = utils.ToPtr(location)
	}
	return row
}

func TestPercentOfTotal(t *testing.T) {
	tests := []struct {
		name  string
		part  int
		total int
		want  float64
	}{
		{"two thirds rounds to one decimal", 2, 3, 66.7},
		{"exact half", 1, 2, 50.0},
		{"zero total yields zero", 5, 0, 0},
		{"zero part", 0, 10, 0},
		{"full share", 4, 4, 100.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PercentOfTotal(tt.part, tt.total))
		})
	}
}

func TestDepreciationRate(t *testing.T) {
	t.Run("quarter of cost is 25 percent", func(t *testing.T) {
		rate := DepreciationRate(money("10000"), money("2500"))
		assert.True(t, rate.Equal(money("25")), "got %s", rate)
	})

	t.Run("rounds to two decimal places", func(t *testing.T) {
		rate := DepreciationRate(money("3"), money("1"))
		assert.True(t, rate.Equal(money("33.33")), "got %s", rate)
	})

	t.Run("zero cost yields zero", func(t *testing.T) {
		rate := DepreciationRate(decimal.Zero, money("500"))
		assert.True(t, rate.IsZero())
	})
}

func TestAgeInYears(t *testing.T) {
	now := date(2026, time.June, 15)

	tests := []struct {
		name     string
		purchase time.Time
		want     int
	}{
		{"anniversary passed this year", date(2023, time.March, 1), 3},
		{"anniversary still ahead", date(2023, time.September, 1), 2},
		{"bought today", now, 0},
		{"bought this year", date(2026, time.January, 10), 0},
		{"future date clamps to zero", date(2027, time.January, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AgeInYears(tt.purchase, now))
		})
	}
}

func TestAnnualDepreciation(t *testing.T) {
	t.Run("spreads over age", func(t *testing.T) {
		annual := AnnualDepreciation(money("3000"), 3)
		assert.True(t, annual.Equal(money("1000")), "got %s", annual)
	})

	t.Run("age zero counts the full amount against year one", func(t *testing.T) {
		annual := AnnualDepreciation(money("2500"), 0)
		assert.True(t, annual.Equal(money("2500")), "got %s", annual)
	})
}

func TestGroupCountsBy(t *testing.T) {
	rows := []models.AssetRow{
		assetRow(models.AssetStatusAvailable, "", "", date(2024, 1, 1), "0", "0"),
		assetRow(models.AssetStatusInUse, "", "", date(2024, 1, 1), "0", "0"),
		assetRow(models.AssetStatusAvailable, "", "", date(2024, 1, 1), "0", "0"),
	}

	groups := GroupCountsBy(rows, func(r models.AssetRow) string { return r.Status.String() })

	require.Len(t, groups, 2)
	// First-seen order, not alphabetical.
	assert.Equal(t, "available", groups[0].Key)
	assert.Equal(t, 2, groups[0].Count)
	assert.Equal(t, 66.7, groups[0].Percent)
	assert.Equal(t, "in_use", groups[1].Key)
	assert.Equal(t, 1, groups[1].Count)
	assert.Equal(t, 33.3, groups[1].Percent)
}

func TestGroupCountsByCategoryFallsBackToUncategorized(t *testing.T) {
	rows := []models.AssetRow{
		assetRow(models.AssetStatusAvailable, "Electronics", "", date(2024, 1, 1), "0", "0"),
		assetRow(models.AssetStatusAvailable, "", "", date(2024, 1, 1), "0", "0"),
	}

	groups := GroupCountsBy(rows, models.AssetRow.CategoryLabel)

	require.Len(t, groups, 2)
	assert.Equal(t, "Electronics", groups[0].Key)
	assert.Equal(t, "Uncategorized", groups[1].Key)
}

func TestSums(t *testing.T) {
	rows := []models.AssetRow{
		assetRow(models.AssetStatusAvailable, "", "", date(2024, 1, 1), "1000", "800"),
		assetRow(models.AssetStatusInUse, "", "", date(2024, 1, 1), "750", "700"),
	}

	assert.True(t, SumPurchaseCost(rows).Equal(money("1750")))
	assert.True(t, SumCurrentValue(rows).Equal(money("1500")))
	assert.True(t, SumPurchaseCost(nil).IsZero())
}

func TestMonthlyAssetBuckets(t *testing.T) {
	rows := []models.AssetRow{
		assetRow(models.AssetStatusAvailable, "", "", date(2025, time.March, 5), "100", "90"),
		assetRow(models.AssetStatusAvailable, "", "", date(2025, time.March, 20), "200", "150"),
		assetRow(models.AssetStatusAvailable, "", "", date(2025, time.December, 1), "50", "50"),
		assetRow(models.AssetStatusAvailable, "", "", date(2024, time.March, 5), "999", "999"), // wrong year
	}

	buckets := MonthlyAssetBuckets(rows, 2025)

	require.Len(t, buckets, 12)
	assert.Equal(t, "Jan", buckets[0].Month)
	assert.Equal(t, "Dec", buckets[11].Month)

	assert.Equal(t, 2, buckets[2].Count)
	assert.True(t, buckets[2].Value.Equal(money("300")))
	assert.Equal(t, 1, buckets[11].Count)

	// Idle months stay present with zero values.
	assert.Equal(t, 0, buckets[0].Count)
	assert.True(t, buckets[0].Value.IsZero())
}

func TestMonthlyBucketsEmptyInput(t *testing.T) {
	buckets := MonthlyAssetBuckets(nil, 2025)

	require.Len(t, buckets, 12)
	for _, b := range buckets {
		assert.Equal(t, 0, b.Count)
		assert.True(t, b.Value.IsZero())
	}
}

func TestTopLocations(t *testing.T) {
	rows := []models.AssetRow{
		assetRow(models.AssetStatusAvailable, "", "Library", date(2024, 1, 1), "10", "10"),
		assetRow(models.AssetStatusAvailable, "", "Lab A", date(2024, 1, 1), "20", "15"),
		assetRow(models.AssetStatusAvailable, "", "Lab A", date(2024, 1, 1), "30", "25"),
		assetRow(models.AssetStatusAvailable, "", "", date(2024, 1, 1), "40", "40"),
	}

	locations := TopLocations(rows, 10)

	require.Len(t, locations, 3)
	assert.Equal(t, "Lab A", locations[0].Location)
	assert.Equal(t, 2, locations[0].Count)

	// The bucket value tracks current value, not purchase cost.
	assert.True(t, locations[0].Value.Equal(money("40")), "got %s", locations[0].Value)

	// Missing locations pool into a dedicated bucket.
	labels := []string{locations[0].Location, locations[1].Location, locations[2].Location}
	assert.Contains(t, labels, "Unspecified")
}

func TestTopLocationsTruncates(t *testing.T) {
	rows := []models.AssetRow{
		assetRow(models.AssetStatusAvailable, "", "A", date(2024, 1, 1), "0", "0"),
		assetRow(models.AssetStatusAvailable, "", "B", date(2024, 1, 1), "0", "0"),
		assetRow(models.AssetStatusAvailable, "", "C", date(2024, 1, 1), "0", "0"),
	}

	locations := TopLocations(rows, 2)
	assert.Len(t, locations, 2)
}

func TestCategoryFinancials(t *testing.T) {
	rows := []models.AssetRow{
		assetRow(models.AssetStatusAvailable, "Electronics", "", date(2024, 1, 1), "10000", "7500"),
		assetRow(models.AssetStatusAvailable, "Electronics", "", date(2024, 1, 1), "2000", "1500"),
		assetRow(models.AssetStatusAvailable, "Furniture", "", date(2024, 1, 1), "500", "500"),
	}

	financials := CategoryFinancials(rows)

	require.Len(t, financials, 2)

	electronics := financials[0]
	assert.Equal(t, "Electronics", electronics.Category)
	assert.Equal(t, 2, electronics.AssetCount)
	assert.True(t, electronics.PurchaseTotal.Equal(money("12000")))
	assert.True(t, electronics.CurrentTotal.Equal(money("9000")))
	assert.True(t, electronics.Depreciation.Equal(money("3000")))
	assert.True(t, electronics.DepreciationRate.Equal(money("25")), "got %s", electronics.DepreciationRate)

	furniture := financials[1]
	assert.True(t, furniture.Depreciation.IsZero())
	assert.True(t, furniture.DepreciationRate.IsZero())
}

func TestMaintenanceCostPerAsset(t *testing.T) {
	assets := []models.AssetRow{
		{AssetID: 1, AssetCode: "VU-EL-101", AssetName: "Projector"},
		{AssetID: 2, AssetCode: "VU-FU-205", AssetName: "Desk"},
		{AssetID: 3, AssetCode: "VU-EL-330", AssetName: "Scanner"},
	}
	records := []models.MaintenanceRow{
		{AssetID: 1, Cost: money("100")},
		{AssetID: 1, Cost: money("50")},
		{AssetID: 2, Cost: money("25")},
	}

	costs := MaintenanceCostPerAsset(assets, records)

	require.Len(t, costs, 3)
	assert.Equal(t, uint(1), costs[0].AssetID)
	assert.Equal(t, "VU-EL-101", costs[0].AssetCode)
	assert.Equal(t, 2, costs[0].RecordCount)
	assert.True(t, costs[0].TotalCost.Equal(money("150")))
	assert.True(t, costs[0].AvgCost.Equal(money("75")), "got %s", costs[0].AvgCost)

	// An asset with no maintenance history still gets a zero-value entry.
	scanner := costs[2]
	assert.Equal(t, uint(3), scanner.AssetID)
	assert.Equal(t, 0, scanner.RecordCount)
	assert.True(t, scanner.TotalCost.IsZero())
	assert.True(t, scanner.AvgCost.IsZero())
}

func TestMaintenanceCostPerAssetUnlistedAsset(t *testing.T) {
	assets := []models.AssetRow{
		{AssetID: 1, AssetCode: "VU-EL-101", AssetName: "Projector"},
	}
	records := []models.MaintenanceRow{
		{AssetID: 9, AssetCode: utils.ToPtr("VU-FU-900"), AssetName: utils.ToPtr("Cabinet"), Cost: money("60")},
	}

	costs := MaintenanceCostPerAsset(assets, records)

	require.Len(t, costs, 2)
	assert.Equal(t, uint(9), costs[1].AssetID)
	assert.Equal(t, "VU-FU-900", costs[1].AssetCode)
	assert.Equal(t, 1, costs[1].RecordCount)
	assert.True(t, costs[1].TotalCost.Equal(money("60")))
}

func TestUpcomingMaintenanceList(t *testing.T) {
	now := date(2026, time.August, 20)

	records := []models.MaintenanceRow{
		{MaintenanceID: 1, Status: models.MaintenanceStatusPending, MaintenanceDate: date(2026, time.August, 25)},
		{MaintenanceID: 2, Status: models.MaintenanceStatusCompleted, MaintenanceDate: date(2026, time.August, 21)},
		{MaintenanceID: 3, Status: models.MaintenanceStatusInProgress, MaintenanceDate: date(2026, time.August, 15)},
		{MaintenanceID: 4, Status: models.MaintenanceStatusCancelled, MaintenanceDate: date(2026, time.August, 22)},
	}

	upcoming := UpcomingMaintenanceList(records, now)

	// Completed and cancelled records never appear.
	require.Len(t, upcoming, 2)

	// Sorted soonest first, so the overdue record leads.
	assert.Equal(t, uint(3), upcoming[0].MaintenanceID)
	assert.Equal(t, -5, upcoming[0].DaysUntil)
	assert.True(t, upcoming[0].Overdue)

	assert.Equal(t, uint(1), upcoming[1].MaintenanceID)
	assert.Equal(t, 5, upcoming[1].DaysUntil)
	assert.False(t, upcoming[1].Overdue)
}

func TestDepreciationLines(t *testing.T) {
	now := date(2026, time.June, 1)
	rows := []models.AssetRow{
		assetRow(models.AssetStatusAvailable, "Electronics", "", date(2023, time.January, 15), "10000", "7000"),
		assetRow(models.AssetStatusAvailable, "", "", date(2026, time.February, 1), "400", "400"),
	}

	lines, total := DepreciationLines(rows, now)

	require.Len(t, lines, 2)
	assert.True(t, total.Equal(money("3000")))

	first := lines[0]
	assert.Equal(t, "Electronics", first.Category)
	assert.Equal(t, 3, first.AgeYears)
	assert.True(t, first.Depreciation.Equal(money("3000")))
	assert.True(t, first.DepreciationRate.Equal(money("30")), "got %s", first.DepreciationRate)
	assert.True(t, first.AnnualDepreciation.Equal(money("1000")), "got %s", first.AnnualDepreciation)

	second := lines[1]
	assert.Equal(t, "Uncategorized", second.Category)
	assert.Equal(t, 0, second.AgeYears)
	assert.True(t, second.Depreciation.IsZero())
}
