package businessflow

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openvarsity/inventory/app/dto"
	"github.com/openvarsity/inventory/models"
)

// Aggregation helpers for the reporting engine. Every function here is pure:
// it takes already-fetched rows and returns computed values, so the report
// flow stays a thin orchestrator and the arithmetic is testable without a
// database.

var hundred = decimal.NewFromInt(100)

// PercentOfTotal returns part as a percentage of total, rounded to one
// decimal place. A zero total yields 0 rather than a division error.
func PercentOfTotal(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}

// DepreciationRate returns depreciation as a percentage of cost, rounded to
// two decimal places. A zero cost yields 0.
func DepreciationRate(cost, depreciation decimal.Decimal) decimal.Decimal {
	if cost.IsZero() {
		return decimal.Zero
	}
	return depreciation.Div(cost).Mul(hundred).Round(2)
}

// AgeInYears returns the number of whole years elapsed since purchase.
// Dates in the future yield 0.
func AgeInYears(purchase, now time.Time) int {
	years := now.Year() - purchase.Year()
	anniversary := purchase.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// AnnualDepreciation spreads total depreciation over the asset's age in
// years. Assets younger than one year are treated as one year old, so the
// full depreciation counts against the first year.
func AnnualDepreciation(depreciation decimal.Decimal, ageYears int) decimal.Decimal {
	if ageYears <= 0 {
		ageYears = 1
	}
	return depreciation.DivRound(decimal.NewFromInt(int64(ageYears)), 2)
}

// GroupCountsBy counts rows per key, preserving first-seen key order, and
// fills each bucket's share of the total.
func GroupCountsBy(rows []models.AssetRow, key func(models.AssetRow) string) []dto.GroupCount {
	counts := make(map[string]int, len(rows))
	order := make([]string, 0, len(rows))
	for _, row := range rows {
		k := key(row)
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	out := make([]dto.GroupCount, 0, len(order))
	for _, k := range order {
		out = append(out, dto.GroupCount{
			Key:     k,
			Count:   counts[k],
			Percent: PercentOfTotal(counts[k], len(rows)),
		})
	}
	return out
}

// SumPurchaseCost totals purchase cost over the rows
func SumPurchaseCost(rows []models.AssetRow) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.PurchaseCost)
	}
	return total
}

// SumCurrentValue totals current value over the rows
func SumCurrentValue(rows []models.AssetRow) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.CurrentValue)
	}
	return total
}

// MonthlyAssetBuckets distributes the rows purchased in the given year over
// a fixed twelve-entry series, one bucket per calendar month. Months with no
// activity stay present with zero counts.
func MonthlyAssetBuckets(rows []models.AssetRow, year int) []dto.MonthlyBucket {
	buckets := emptyMonthlyBuckets()
	for _, row := range rows {
		if row.PurchaseDate.Year() != year {
			continue
		}
		i := int(row.PurchaseDate.Month()) - 1
		buckets[i].Count++
		buckets[i].Value = buckets[i].Value.Add(row.PurchaseCost)
	}
	return buckets
}

// MonthlyMaintenanceBuckets distributes maintenance records over the fixed
// twelve-entry series for the given year
func MonthlyMaintenanceBuckets(records []models.MaintenanceRow, year int) []dto.MonthlyBucket {
	buckets := emptyMonthlyBuckets()
	for _, rec := range records {
		if rec.MaintenanceDate.Year() != year {
			continue
		}
		i := int(rec.MaintenanceDate.Month()) - 1
		buckets[i].Count++
		buckets[i].Value = buckets[i].Value.Add(rec.Cost)
	}
	return buckets
}

func emptyMonthlyBuckets() []dto.MonthlyBucket {
	buckets := make([]dto.MonthlyBucket, 12)
	for i := range buckets {
		buckets[i] = dto.MonthlyBucket{
			Month: time.Month(i + 1).String()[:3],
			Value: decimal.Zero,
		}
	}
	return buckets
}

// TopLocations groups the rows by location, sorts descending by count, and
// keeps at most limit entries. Rows without a location fall into an
// "Unspecified" bucket. Ties keep first-seen order.
func TopLocations(rows []models.AssetRow, limit int) []dto.LocationCount {
	type bucket struct {
		count int
		value decimal.Decimal
	}
	buckets := make(map[string]*bucket)
	order := make([]string, 0)
	for _, row := range rows {
		loc := row.LocationLabel()
		if loc == "" {
			loc = "Unspecified"
		}
		b, seen := buckets[loc]
		if !seen {
			b = &bucket{value: decimal.Zero}
			buckets[loc] = b
			order = append(order, loc)
		}
		b.count++
		b.value = b.value.Add(row.CurrentValue)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return buckets[order[i]].count > buckets[order[j]].count
	})
	if limit > 0 && len(order) > limit {
		order = order[:limit]
	}

	out := make([]dto.LocationCount, 0, len(order))
	for _, loc := range order {
		out = append(out, dto.LocationCount{
			Location: loc,
			Count:    buckets[loc].count,
			Value:    buckets[loc].value,
		})
	}
	return out
}

// CategoryFinancials reconciles purchase and current totals per category in
// first-seen order. Depreciation and its rate derive from the two totals.
func CategoryFinancials(rows []models.AssetRow) []dto.CategoryFinancial {
	index := make(map[string]int)
	out := make([]dto.CategoryFinancial, 0)
	for _, row := range rows {
		label := row.CategoryLabel()
		i, seen := index[label]
		if !seen {
			i = len(out)
			index[label] = i
			out = append(out, dto.CategoryFinancial{
				Category:      label,
				PurchaseTotal: decimal.Zero,
				CurrentTotal:  decimal.Zero,
			})
		}
		out[i].AssetCount++
		out[i].PurchaseTotal = out[i].PurchaseTotal.Add(row.PurchaseCost)
		out[i].CurrentTotal = out[i].CurrentTotal.Add(row.CurrentValue)
	}

	for i := range out {
		out[i].Depreciation = out[i].PurchaseTotal.Sub(out[i].CurrentTotal)
		out[i].DepreciationRate = DepreciationRate(out[i].PurchaseTotal, out[i].Depreciation)
	}
	return out
}

// MaintenanceCostPerAsset totals maintenance spending per asset. Every asset
// appears in the result, with zero values when it has no records; records for
// assets outside the given slice are appended in first-seen order.
func MaintenanceCostPerAsset(assets []models.AssetRow, records []models.MaintenanceRow) []dto.AssetMaintenanceCost {
	index := make(map[uint]int)
	out := make([]dto.AssetMaintenanceCost, 0, len(assets))
	for _, asset := range assets {
		index[asset.AssetID] = len(out)
		out = append(out, dto.AssetMaintenanceCost{
			AssetID:   asset.AssetID,
			AssetCode: asset.AssetCode,
			AssetName: asset.AssetName,
			TotalCost: decimal.Zero,
			AvgCost:   decimal.Zero,
		})
	}

	for _, rec := range records {
		i, seen := index[rec.AssetID]
		if !seen {
			i = len(out)
			index[rec.AssetID] = i
			entry := dto.AssetMaintenanceCost{
				AssetID:   rec.AssetID,
				TotalCost: decimal.Zero,
				AvgCost:   decimal.Zero,
			}
			if rec.AssetCode != nil {
				entry.AssetCode = *rec.AssetCode
			}
			if rec.AssetName != nil {
				entry.AssetName = *rec.AssetName
			}
			out = append(out, entry)
		}
		out[i].RecordCount++
		out[i].TotalCost = out[i].TotalCost.Add(rec.Cost)
	}

	for i := range out {
		if out[i].RecordCount > 0 {
			out[i].AvgCost = out[i].TotalCost.DivRound(decimal.NewFromInt(int64(out[i].RecordCount)), 2)
		}
	}
	return out
}

// UpcomingMaintenanceList keeps the pending and in-progress records and
// computes how many days remain until each. Negative countdowns mark the
// record overdue. Results are sorted soonest first.
func UpcomingMaintenanceList(records []models.MaintenanceRow, now time.Time) []dto.UpcomingMaintenance {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	out := make([]dto.UpcomingMaintenance, 0)
	for _, rec := range records {
		if rec.Status != models.MaintenanceStatusPending && rec.Status != models.MaintenanceStatusInProgress {
			continue
		}
		scheduled := time.Date(
			rec.MaintenanceDate.Year(), rec.MaintenanceDate.Month(), rec.MaintenanceDate.Day(),
			0, 0, 0, 0, time.UTC)
		days := int(scheduled.Sub(today).Hours() / 24)

		entry := dto.UpcomingMaintenance{
			MaintenanceID:   rec.MaintenanceID,
			MaintenanceType: rec.MaintenanceType,
			ScheduledDate:   scheduled.Format("2006-01-02"),
			DaysUntil:       days,
			Overdue:         days < 0,
		}
		if rec.AssetCode != nil {
			entry.AssetCode = *rec.AssetCode
		}
		if rec.AssetName != nil {
			entry.AssetName = *rec.AssetName
		}
		out = append(out, entry)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysUntil < out[j].DaysUntil
	})
	return out
}

// DepreciationLines computes one line per row plus the grand total
func DepreciationLines(rows []models.AssetRow, now time.Time) ([]dto.DepreciationLine, decimal.Decimal) {
	lines := make([]dto.DepreciationLine, 0, len(rows))
	total := decimal.Zero
	for _, row := range rows {
		dep := row.PurchaseCost.Sub(row.CurrentValue)
		age := AgeInYears(row.PurchaseDate, now)
		lines = append(lines, dto.DepreciationLine{
			AssetCode:          row.AssetCode,
			AssetName:          row.AssetName,
			Category:           row.CategoryLabel(),
			PurchaseDate:       row.PurchaseDate.Format("2006-01-02"),
			AgeYears:           age,
			PurchaseCost:       row.PurchaseCost,
			CurrentValue:       row.CurrentValue,
			Depreciation:       dep,
			DepreciationRate:   DepreciationRate(row.PurchaseCost, dep),
			AnnualDepreciation: AnnualDepreciation(dep, age),
		})
		total = total.Add(dep)
	}
	return lines, total
}
