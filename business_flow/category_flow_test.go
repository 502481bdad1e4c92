package businessflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openvarsity/inventory/app/dto"
	"github.com/openvarsity/inventory/models"
	"github.com/openvarsity/inventory/utils"
)

func newTestCategoryFlow(categories *stubCategoryRepo, assets *stubAssetRepo, audit *stubAuditRepo) CategoryFlow {
	if assets == nil {
		assets = &stubAssetRepo{}
	}
	if audit == nil {
		audit = &stubAuditRepo{}
	}
	return NewCategoryFlow(categories, assets, audit, &stubTransactor{})
}

func TestCreateCategory(t *testing.T) {
	categories := &stubCategoryRepo{}
	audit := &stubAuditRepo{}
	flow := newTestCategoryFlow(categories, nil, audit)

	item, err := flow.CreateCategory(context.Background(), &dto.CreateCategoryRequest{
		CategoryName: "  Lab Equipment  ",
		Description:  utils.ToPtr("Microscopes and benches"),
	}, &Principal{UserID: 1}, NewClientMetadata("10.0.0.1", "test"))

	require.NoError(t, err)
	assert.Equal(t, "Lab Equipment", item.CategoryName)
	require.Len(t, categories.saved, 1)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.AuditActionCategoryCreated, audit.entries[0].Action)
}

func TestCreateCategoryRejectsBlankName(t *testing.T) {
	flow := newTestCategoryFlow(&stubCategoryRepo{}, nil, nil)

	_, err := flow.CreateCategory(context.Background(), &dto.CreateCategoryRequest{
		CategoryName: "   ",
	}, nil, nil)

	assert.ErrorIs(t, err, ErrCategoryNameRequired)
}

func TestCreateCategoryRejectsDuplicateName(t *testing.T) {
	categories := &stubCategoryRepo{byName: map[string]*models.Category{
		"Electronics": {ID: 2, CategoryName: "Electronics"},
	}}
	flow := newTestCategoryFlow(categories, nil, nil)

	_, err := flow.CreateCategory(context.Background(), &dto.CreateCategoryRequest{
		CategoryName: "Electronics",
	}, nil, nil)

	assert.ErrorIs(t, err, ErrCategoryNameExists)
	assert.Empty(t, categories.saved)
}

func TestDeleteCategory(t *testing.T) {
	categories := &stubCategoryRepo{byID: map[uint]*models.Category{
		4: {ID: 4, CategoryName: "Retired Gear"},
	}}
	audit := &stubAuditRepo{}
	flow := newTestCategoryFlow(categories, &stubAssetRepo{}, audit)

	err := flow.DeleteCategory(context.Background(), 4, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, []uint{4}, categories.deleted)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.AuditActionCategoryDeleted, audit.entries[0].Action)
}

func TestDeleteCategoryRunsInTransaction(t *testing.T) {
	categories := &stubCategoryRepo{byID: map[uint]*models.Category{
		4: {ID: 4, CategoryName: "Retired Gear"},
	}}
	tx := &stubTransactor{}
	flow := NewCategoryFlow(categories, &stubAssetRepo{}, &stubAuditRepo{}, tx)

	err := flow.DeleteCategory(context.Background(), 4, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)
}

func TestDeleteCategoryNotFound(t *testing.T) {
	flow := newTestCategoryFlow(&stubCategoryRepo{}, nil, nil)

	err := flow.DeleteCategory(context.Background(), 404, nil, nil)

	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestDeleteCategoryWithAssetsBlocked(t *testing.T) {
	categories := &stubCategoryRepo{byID: map[uint]*models.Category{
		4: {ID: 4, CategoryName: "Electronics"},
	}}
	flow := newTestCategoryFlow(categories, &stubAssetRepo{countByCategory: 3}, nil)

	err := flow.DeleteCategory(context.Background(), 4, nil, nil)

	assert.ErrorIs(t, err, ErrCategoryHasAssets)
	assert.Empty(t, categories.deleted)
}
