package businessflow

import (
	"context"

	"github.com/openvarsity/inventory/app/dto"
	"github.com/openvarsity/inventory/models"
	"github.com/openvarsity/inventory/repository"
	"github.com/openvarsity/inventory/utils"
)

// DashboardFlow assembles the landing-page counters
type DashboardFlow interface {
	GetDashboard(ctx context.Context) (*dto.DashboardResponse, error)
}

type DashboardFlowImpl struct {
	assetRepo repository.AssetRepository
}

func NewDashboardFlow(assetRepo repository.AssetRepository) DashboardFlow {
	return &DashboardFlowImpl{assetRepo: assetRepo}
}

func (f *DashboardFlowImpl) GetDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	total, err := f.assetRepo.Count(ctx, models.AssetFilter{})
	if err != nil {
		return nil, NewBusinessError("DASHBOARD_FAILED", "Failed to count assets", err)
	}
	available, err := f.assetRepo.Count(ctx, models.AssetFilter{Status: models.AssetStatusAvailable.String()})
	if err != nil {
		return nil, NewBusinessError("DASHBOARD_FAILED", "Failed to count available assets", err)
	}
	inUse, err := f.assetRepo.Count(ctx, models.AssetFilter{Status: models.AssetStatusInUse.String()})
	if err != nil {
		return nil, NewBusinessError("DASHBOARD_FAILED", "Failed to count in-use assets", err)
	}
	maintenance, err := f.assetRepo.Count(ctx, models.AssetFilter{Status: models.AssetStatusUnderMaintenance.String()})
	if err != nil {
		return nil, NewBusinessError("DASHBOARD_FAILED", "Failed to count assets under maintenance", err)
	}
	totalValue, err := f.assetRepo.TotalPurchaseCost(ctx)
	if err != nil {
		return nil, NewBusinessError("DASHBOARD_FAILED", "Failed to total asset value", err)
	}
	recent, err := f.assetRepo.RecentRows(ctx, utils.RecentAssetsLimit)
	if err != nil {
		return nil, NewBusinessError("DASHBOARD_FAILED", "Failed to fetch recent assets", err)
	}

	return &dto.DashboardResponse{
		Stats: dto.DashboardStats{
			TotalAssets:       total,
			AvailableAssets:   available,
			InUseAssets:       inUse,
			MaintenanceAssets: maintenance,
			TotalValue:        totalValue,
		},
		RecentAssets: recent,
	}, nil
}
