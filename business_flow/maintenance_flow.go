package businessflow

import (
	"context"
	"fmt"
	"time"

	"github.com/openvarsity/inventory/app/dto"
	"github.com/openvarsity/inventory/models"
	"github.com/openvarsity/inventory/repository"
	"github.com/openvarsity/inventory/utils"
)

// MaintenanceFlow handles the maintenance log
type MaintenanceFlow interface {
	ListMaintenance(ctx context.Context, filter models.MaintenanceFilter) (*dto.MaintenanceListResponse, error)
	GetMaintenance(ctx context.Context, id uint) (*dto.MaintenanceRecordDTO, error)
	CreateMaintenance(ctx context.Context, req *dto.CreateMaintenanceRequest, principal *Principal, metadata *ClientMetadata) (*dto.MaintenanceRecordDTO, error)
	UpdateMaintenance(ctx context.Context, id uint, req *dto.UpdateMaintenanceRequest, principal *Principal, metadata *ClientMetadata) (*dto.MaintenanceRecordDTO, error)
	DeleteMaintenance(ctx context.Context, id uint, principal *Principal, metadata *ClientMetadata) error
}

type MaintenanceFlowImpl struct {
	maintenanceRepo repository.MaintenanceRepository
	assetRepo       repository.AssetRepository
	userRepo        repository.UserRepository
	auditRepo       repository.AuditLogRepository
}

func NewMaintenanceFlow(
	maintenanceRepo repository.MaintenanceRepository,
	assetRepo repository.AssetRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditLogRepository,
) MaintenanceFlow {
	return &MaintenanceFlowImpl{
		maintenanceRepo: maintenanceRepo,
		assetRepo:       assetRepo,
		userRepo:        userRepo,
		auditRepo:       auditRepo,
	}
}

func (f *MaintenanceFlowImpl) ListMaintenance(ctx context.Context, filter models.MaintenanceFilter) (*dto.MaintenanceListResponse, error) {
	records, err := f.maintenanceRepo.ListRows(ctx, filter, utils.MaintenanceListLimit)
	if err != nil {
		return nil, NewBusinessError("MAINTENANCE_LIST_FAILED", "Failed to list maintenance records", err)
	}

	recent, err := f.maintenanceRepo.RecentRows(ctx, utils.RecentAssetsLimit)
	if err != nil {
		return nil, NewBusinessError("MAINTENANCE_LIST_FAILED", "Failed to list recent maintenance", err)
	}

	byType, err := f.maintenanceRepo.CountByType(ctx)
	if err != nil {
		return nil, NewBusinessError("MAINTENANCE_STATS_FAILED", "Failed to count maintenance types", err)
	}

	stats, err := f.buildStats(ctx, filter)
	if err != nil {
		return nil, err
	}

	typeCounts := make([]dto.MaintenanceTypeCount, 0, len(byType))
	for _, tc := range byType {
		typeCounts = append(typeCounts, dto.MaintenanceTypeCount{
			MaintenanceType: tc.MaintenanceType,
			Count:           tc.Count,
		})
	}

	return &dto.MaintenanceListResponse{
		Records: records,
		Recent:  recent,
		ByType:  typeCounts,
		Stats:   *stats,
	}, nil
}

func (f *MaintenanceFlowImpl) buildStats(ctx context.Context, filter models.MaintenanceFilter) (*dto.MaintenanceStats, error) {
	total, err := f.maintenanceRepo.Count(ctx, models.MaintenanceFilter{})
	if err != nil {
		return nil, NewBusinessError("MAINTENANCE_STATS_FAILED", "Failed to count maintenance records", err)
	}
	pending, err := f.maintenanceRepo.Count(ctx, models.MaintenanceFilter{Status: models.MaintenanceStatusPending.String()})
	if err != nil {
		return nil, NewBusinessError("MAINTENANCE_STATS_FAILED", "Failed to count pending maintenance", err)
	}
	inProgress, err := f.maintenanceRepo.Count(ctx, models.MaintenanceFilter{Status: models.MaintenanceStatusInProgress.String()})
	if err != nil {
		return nil, NewBusinessError("MAINTENANCE_STATS_FAILED", "Failed to count in-progress maintenance", err)
	}
	completed, err := f.maintenanceRepo.Count(ctx, models.MaintenanceFilter{Status: models.MaintenanceStatusCompleted.String()})
	if err != nil {
		return nil, NewBusinessError("MAINTENANCE_STATS_FAILED", "Failed to count completed maintenance", err)
	}
	totalCost, err := f.maintenanceRepo.TotalCost(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("MAINTENANCE_STATS_FAILED", "Failed to total maintenance cost", err)
	}

	today := utils.UTCNow().Format("2006-01-02")
	upcoming, err := f.maintenanceRepo.Count(ctx, models.MaintenanceFilter{
		Status:    models.MaintenanceStatusPending.String(),
		StartDate: today,
	})
	if err != nil {
		return nil, NewBusinessError("MAINTENANCE_STATS_FAILED", "Failed to count upcoming maintenance", err)
	}

	return &dto.MaintenanceStats{
		TotalRecords:    total,
		Pending:         pending,
		InProgress:      inProgress,
		Completed:       completed,
		TotalCost:       totalCost,
		UpcomingRecords: upcoming,
	}, nil
}

func (f *MaintenanceFlowImpl) GetMaintenance(ctx context.Context, id uint) (*dto.MaintenanceRecordDTO, error) {
	record, err := f.maintenanceRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("MAINTENANCE_FETCH_FAILED", "Failed to fetch maintenance record", err)
	}
	if record == nil {
		return nil, NewBusinessError("MAINTENANCE_NOT_FOUND", "Maintenance record not found", ErrMaintenanceNotFound)
	}
	out := ToMaintenanceDTO(*record)
	return &out, nil
}

func (f *MaintenanceFlowImpl) CreateMaintenance(ctx context.Context, req *dto.CreateMaintenanceRequest, principal *Principal, metadata *ClientMetadata) (*dto.MaintenanceRecordDTO, error) {
	if req.Cost.IsNegative() {
		return nil, NewBusinessError("MAINTENANCE_COST_NEGATIVE", "Maintenance cost cannot be negative", ErrMaintenanceCostNegative)
	}

	asset, err := f.assetRepo.ByID(ctx, req.AssetID)
	if err != nil {
		return nil, NewBusinessError("ASSET_FETCH_FAILED", "Failed to fetch asset", err)
	}
	if asset == nil {
		return nil, NewBusinessError("MAINTENANCE_ASSET_NOT_FOUND", "Maintenance record requires an existing asset", ErrMaintenanceAssetRequired)
	}

	date, err := time.Parse("2006-01-02", req.MaintenanceDate)
	if err != nil {
		return nil, NewBusinessError("INVALID_MAINTENANCE_DATE", "Maintenance date is invalid", ErrInvalidPurchaseDate)
	}

	status := models.MaintenanceStatusPending
	if req.Status != "" {
		status = models.MaintenanceStatus(req.Status)
		if !status.Valid() {
			return nil, NewBusinessError("INVALID_MAINTENANCE_STATUS", "Invalid maintenance status", ErrInvalidMaintenanceStatus)
		}
	}

	if req.AssignedTo != nil {
		technician, err := f.userRepo.ByID(ctx, *req.AssignedTo)
		if err != nil {
			return nil, NewBusinessError("USER_FETCH_FAILED", "Failed to fetch assigned user", err)
		}
		if technician == nil {
			return nil, NewBusinessError("ASSIGNED_USER_NOT_FOUND", "Assigned user not found", ErrAssignedUserNotFound)
		}
	}

	record := &models.MaintenanceRecord{
		AssetID:         req.AssetID,
		MaintenanceType: req.MaintenanceType,
		MaintenanceDate: date,
		Cost:            req.Cost,
		Status:          status,
		AssignedTo:      req.AssignedTo,
		Description:     req.Description,
	}
	if err := f.maintenanceRepo.Save(ctx, record); err != nil {
		return nil, NewBusinessError("MAINTENANCE_SAVE_FAILED", "Failed to save maintenance record", err)
	}

	writeAudit(ctx, f.auditRepo, principal, metadata, models.AuditActionMaintenanceCreated,
		models.AuditEntityMaintenance, record.ID,
		fmt.Sprintf("Maintenance %s logged for asset %s", record.MaintenanceType, asset.AssetCode), nil)

	out := ToMaintenanceDTO(*record)
	return &out, nil
}

func (f *MaintenanceFlowImpl) UpdateMaintenance(ctx context.Context, id uint, req *dto.UpdateMaintenanceRequest, principal *Principal, metadata *ClientMetadata) (*dto.MaintenanceRecordDTO, error) {
	record, err := f.maintenanceRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("MAINTENANCE_FETCH_FAILED", "Failed to fetch maintenance record", err)
	}
	if record == nil {
		return nil, NewBusinessError("MAINTENANCE_NOT_FOUND", "Maintenance record not found", ErrMaintenanceNotFound)
	}

	changed := make([]string, 0, 6)

	if req.MaintenanceType != nil {
		record.MaintenanceType = *req.MaintenanceType
		changed = append(changed, "maintenance_type")
	}
	if req.MaintenanceDate != nil {
		date, err := time.Parse("2006-01-02", *req.MaintenanceDate)
		if err != nil {
			return nil, NewBusinessError("INVALID_MAINTENANCE_DATE", "Maintenance date is invalid", ErrInvalidPurchaseDate)
		}
		record.MaintenanceDate = date
		changed = append(changed, "maintenance_date")
	}
	if req.Cost != nil {
		if req.Cost.IsNegative() {
			return nil, NewBusinessError("MAINTENANCE_COST_NEGATIVE", "Maintenance cost cannot be negative", ErrMaintenanceCostNegative)
		}
		record.Cost = *req.Cost
		changed = append(changed, "cost")
	}
	if req.Status != nil {
		status := models.MaintenanceStatus(*req.Status)
		if !status.Valid() {
			return nil, NewBusinessError("INVALID_MAINTENANCE_STATUS", "Invalid maintenance status", ErrInvalidMaintenanceStatus)
		}
		record.Status = status
		changed = append(changed, "status")
	}
	if req.AssignedTo != nil {
		if *req.AssignedTo == 0 {
			record.AssignedTo = nil
		} else {
			technician, err := f.userRepo.ByID(ctx, *req.AssignedTo)
			if err != nil {
				return nil, NewBusinessError("USER_FETCH_FAILED", "Failed to fetch assigned user", err)
			}
			if technician == nil {
				return nil, NewBusinessError("ASSIGNED_USER_NOT_FOUND", "Assigned user not found", ErrAssignedUserNotFound)
			}
			record.AssignedTo = req.AssignedTo
		}
		changed = append(changed, "assigned_to")
	}
	if req.Description != nil {
		record.Description = req.Description
		changed = append(changed, "description")
	}

	record.UpdatedAt = utils.UTCNow()
	if err := f.maintenanceRepo.Update(ctx, record); err != nil {
		return nil, NewBusinessError("MAINTENANCE_UPDATE_FAILED", "Failed to update maintenance record", err)
	}

	writeAudit(ctx, f.auditRepo, principal, metadata, models.AuditActionMaintenanceUpdated,
		models.AuditEntityMaintenance, record.ID,
		fmt.Sprintf("Maintenance record %d updated", record.ID), changed)

	out := ToMaintenanceDTO(*record)
	return &out, nil
}

func (f *MaintenanceFlowImpl) DeleteMaintenance(ctx context.Context, id uint, principal *Principal, metadata *ClientMetadata) error {
	record, err := f.maintenanceRepo.ByID(ctx, id)
	if err != nil {
		return NewBusinessError("MAINTENANCE_FETCH_FAILED", "Failed to fetch maintenance record", err)
	}
	if record == nil {
		return NewBusinessError("MAINTENANCE_NOT_FOUND", "Maintenance record not found", ErrMaintenanceNotFound)
	}

	if err := f.maintenanceRepo.DeleteByID(ctx, id); err != nil {
		return NewBusinessError("MAINTENANCE_DELETE_FAILED", "Failed to delete maintenance record", err)
	}

	writeAudit(ctx, f.auditRepo, principal, metadata, models.AuditActionMaintenanceDeleted,
		models.AuditEntityMaintenance, id,
		fmt.Sprintf("Maintenance record %d deleted", id), nil)

	return nil
}
