package businessflow

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openvarsity/inventory/app/dto"
	"github.com/openvarsity/inventory/models"
	"github.com/openvarsity/inventory/utils"
)

func newTestMaintenanceFlow(maintenance *stubMaintenanceRepo, assets *stubAssetRepo, users *stubUserRepo, audit *stubAuditRepo) MaintenanceFlow {
	if assets == nil {
		assets = &stubAssetRepo{}
	}
	if users == nil {
		users = &stubUserRepo{}
	}
	if audit == nil {
		audit = &stubAuditRepo{}
	}
	return NewMaintenanceFlow(maintenance, assets, users, audit)
}

func validMaintenanceRequest() *dto.CreateMaintenanceRequest {
	return &dto.CreateMaintenanceRequest{
		AssetID:         8,
		MaintenanceType: "repair",
		MaintenanceDate: "2026-03-05",
		Cost:            decimal.RequireFromString("150"),
	}
}

func TestCreateMaintenance(t *testing.T) {
	maintenance := &stubMaintenanceRepo{}
	assets := &stubAssetRepo{byID: map[uint]*models.Asset{
		8: {ID: 8, AssetCode: "VU-EL-412"},
	}}
	audit := &stubAuditRepo{}
	flow := newTestMaintenanceFlow(maintenance, assets, nil, audit)

	out, err := flow.CreateMaintenance(context.Background(), validMaintenanceRequest(),
		&Principal{UserID: 1}, NewClientMetadata("10.0.0.1", "test"))

	require.NoError(t, err)
	assert.Equal(t, uint(8), out.AssetID)
	assert.Equal(t, models.MaintenanceStatusPending.String(), out.Status)
	require.Len(t, maintenance.saved, 1)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.AuditActionMaintenanceCreated, audit.entries[0].Action)
}

func TestCreateMaintenanceValidation(t *testing.T) {
	assets := &stubAssetRepo{byID: map[uint]*models.Asset{
		8: {ID: 8, AssetCode: "VU-EL-412"},
	}}
	ctx := context.Background()

	t.Run("rejects missing asset", func(t *testing.T) {
		flow := newTestMaintenanceFlow(&stubMaintenanceRepo{}, &stubAssetRepo{}, nil, nil)
		_, err := flow.CreateMaintenance(ctx, validMaintenanceRequest(), nil, nil)
		assert.ErrorIs(t, err, ErrMaintenanceAssetRequired)
	})

	t.Run("rejects negative cost", func(t *testing.T) {
		flow := newTestMaintenanceFlow(&stubMaintenanceRepo{}, assets, nil, nil)
		req := validMaintenanceRequest()
		req.Cost = decimal.RequireFromString("-10")
		_, err := flow.CreateMaintenance(ctx, req, nil, nil)
		assert.ErrorIs(t, err, ErrMaintenanceCostNegative)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		flow := newTestMaintenanceFlow(&stubMaintenanceRepo{}, assets, nil, nil)
		req := validMaintenanceRequest()
		req.Status = "paused"
		_, err := flow.CreateMaintenance(ctx, req, nil, nil)
		assert.ErrorIs(t, err, ErrInvalidMaintenanceStatus)
	})

	t.Run("rejects missing technician", func(t *testing.T) {
		flow := newTestMaintenanceFlow(&stubMaintenanceRepo{}, assets, &stubUserRepo{}, nil)
		req := validMaintenanceRequest()
		req.AssignedTo = utils.ToPtr(uint(55))
		_, err := flow.CreateMaintenance(ctx, req, nil, nil)
		assert.ErrorIs(t, err, ErrAssignedUserNotFound)
	})
}

func TestUpdateMaintenanceTracksChangedFields(t *testing.T) {
	maintenance := &stubMaintenanceRepo{byID: map[uint]*models.MaintenanceRecord{
		2: {ID: 2, AssetID: 8, MaintenanceType: "repair", Status: models.MaintenanceStatusPending},
	}}
	audit := &stubAuditRepo{}
	flow := newTestMaintenanceFlow(maintenance, nil, nil, audit)

	out, err := flow.UpdateMaintenance(context.Background(), 2, &dto.UpdateMaintenanceRequest{
		Status: utils.ToPtr("completed"),
		Cost:   utils.ToPtr(decimal.RequireFromString("220")),
	}, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, models.MaintenanceStatusCompleted.String(), out.Status)
	require.Len(t, audit.entries, 1)
	assert.ElementsMatch(t, []string{"status", "cost"}, []string(audit.entries[0].ChangedFields))
}

func TestUpdateMaintenanceClearsTechnician(t *testing.T) {
	maintenance := &stubMaintenanceRepo{byID: map[uint]*models.MaintenanceRecord{
		2: {ID: 2, AssetID: 8, AssignedTo: utils.ToPtr(uint(4))},
	}}
	flow := newTestMaintenanceFlow(maintenance, nil, nil, nil)

	out, err := flow.UpdateMaintenance(context.Background(), 2, &dto.UpdateMaintenanceRequest{
		AssignedTo: utils.ToPtr(uint(0)),
	}, nil, nil)

	require.NoError(t, err)
	assert.Nil(t, out.AssignedTo)
}

func TestDeleteMaintenance(t *testing.T) {
	maintenance := &stubMaintenanceRepo{byID: map[uint]*models.MaintenanceRecord{
		2: {ID: 2, AssetID: 8},
	}}
	audit := &stubAuditRepo{}
	flow := newTestMaintenanceFlow(maintenance, nil, nil, audit)

	err := flow.DeleteMaintenance(context.Background(), 2, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, []uint{2}, maintenance.deleted)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.AuditActionMaintenanceDeleted, audit.entries[0].Action)
}

func TestDeleteMaintenanceNotFound(t *testing.T) {
	flow := newTestMaintenanceFlow(&stubMaintenanceRepo{}, nil, nil, nil)

	err := flow.DeleteMaintenance(context.Background(), 404, nil, nil)

	assert.ErrorIs(t, err, ErrMaintenanceNotFound)
}
