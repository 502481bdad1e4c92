package businessflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/openvarsity/inventory/app/dto"
	"github.com/openvarsity/inventory/models"
	"github.com/openvarsity/inventory/repository"
	"github.com/openvarsity/inventory/utils"
)

// CategoryFlow handles asset category management
type CategoryFlow interface {
	ListCategories(ctx context.Context, filter models.CategoryFilter) (*dto.CategoryListResponse, error)
	GetCategory(ctx context.Context, id uint) (*dto.CategoryDTO, error)
	CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest, principal *Principal, metadata *ClientMetadata) (*dto.CategoryDTO, error)
	UpdateCategory(ctx context.Context, id uint, req *dto.UpdateCategoryRequest, principal *Principal, metadata *ClientMetadata) (*dto.CategoryDTO, error)
	DeleteCategory(ctx context.Context, id uint, principal *Principal, metadata *ClientMetadata) error
}

type CategoryFlowImpl struct {
	categoryRepo repository.CategoryRepository
	assetRepo    repository.AssetRepository
	auditRepo    repository.AuditLogRepository
	tx           repository.Transactor
}

func NewCategoryFlow(
	categoryRepo repository.CategoryRepository,
	assetRepo repository.AssetRepository,
	auditRepo repository.AuditLogRepository,
	tx repository.Transactor,
) CategoryFlow {
	return &CategoryFlowImpl{
		categoryRepo: categoryRepo,
		assetRepo:    assetRepo,
		auditRepo:    auditRepo,
		tx:           tx,
	}
}

func (f *CategoryFlowImpl) ListCategories(ctx context.Context, filter models.CategoryFilter) (*dto.CategoryListResponse, error) {
	categories, err := f.categoryRepo.List(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("CATEGORY_LIST_FAILED", "Failed to list categories", err)
	}

	out := make([]dto.CategoryDTO, 0, len(categories))
	for _, category := range categories {
		item := ToCategoryDTO(*category)
		count, err := f.assetRepo.CountByCategory(ctx, category.ID)
		if err != nil {
			return nil, NewBusinessError("CATEGORY_COUNT_FAILED", "Failed to count category assets", err)
		}
		item.AssetCount = count
		out = append(out, item)
	}
	return &dto.CategoryListResponse{Categories: out}, nil
}

func (f *CategoryFlowImpl) GetCategory(ctx context.Context, id uint) (*dto.CategoryDTO, error) {
	category, err := f.categoryRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("CATEGORY_FETCH_FAILED", "Failed to fetch category", err)
	}
	if category == nil {
		return nil, NewBusinessError("CATEGORY_NOT_FOUND", "Category not found", ErrCategoryNotFound)
	}

	item := ToCategoryDTO(*category)
	count, err := f.assetRepo.CountByCategory(ctx, category.ID)
	if err != nil {
		return nil, NewBusinessError("CATEGORY_COUNT_FAILED", "Failed to count category assets", err)
	}
	item.AssetCount = count
	return &item, nil
}

func (f *CategoryFlowImpl) CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest, principal *Principal, metadata *ClientMetadata) (*dto.CategoryDTO, error) {
	name := strings.TrimSpace(req.CategoryName)
	if name == "" {
		return nil, NewBusinessError("CATEGORY_NAME_REQUIRED", "Category name is required", ErrCategoryNameRequired)
	}

	existing, err := f.categoryRepo.ByName(ctx, name)
	if err != nil {
		return nil, NewBusinessError("CATEGORY_LOOKUP_FAILED", "Failed to check category name", err)
	}
	if existing != nil {
		return nil, NewBusinessError("CATEGORY_NAME_EXISTS", "Category name already exists", ErrCategoryNameExists)
	}

	category := &models.Category{
		CategoryName: name,
		Description:  req.Description,
	}
	if err := f.categoryRepo.Save(ctx, category); err != nil {
		return nil, NewBusinessError("CATEGORY_SAVE_FAILED", "Failed to save category", err)
	}

	writeAudit(ctx, f.auditRepo, principal, metadata, models.AuditActionCategoryCreated,
		models.AuditEntityCategory, category.ID, fmt.Sprintf("Category %q created", name), nil)

	item := ToCategoryDTO(*category)
	return &item, nil
}

func (f *CategoryFlowImpl) UpdateCategory(ctx context.Context, id uint, req *dto.UpdateCategoryRequest, principal *Principal, metadata *ClientMetadata) (*dto.CategoryDTO, error) {
	category, err := f.categoryRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("CATEGORY_FETCH_FAILED", "Failed to fetch category", err)
	}
	if category == nil {
		return nil, NewBusinessError("CATEGORY_NOT_FOUND", "Category not found", ErrCategoryNotFound)
	}

	changed := make([]string, 0, 2)
	if req.CategoryName != nil {
		name := strings.TrimSpace(*req.CategoryName)
		if name == "" {
			return nil, NewBusinessError("CATEGORY_NAME_REQUIRED", "Category name is required", ErrCategoryNameRequired)
		}
		if name != category.CategoryName {
			existing, err := f.categoryRepo.ByName(ctx, name)
			if err != nil {
				return nil, NewBusinessError("CATEGORY_LOOKUP_FAILED", "Failed to check category name", err)
			}
			if existing != nil && existing.ID != category.ID {
				return nil, NewBusinessError("CATEGORY_NAME_EXISTS", "Category name already exists", ErrCategoryNameExists)
			}
			category.CategoryName = name
			changed = append(changed, "category_name")
		}
	}
	if req.Description != nil {
		category.Description = req.Description
		changed = append(changed, "description")
	}

	category.UpdatedAt = utils.UTCNow()
	if err := f.categoryRepo.Update(ctx, category); err != nil {
		return nil, NewBusinessError("CATEGORY_UPDATE_FAILED", "Failed to update category", err)
	}

	writeAudit(ctx, f.auditRepo, principal, metadata, models.AuditActionCategoryUpdated,
		models.AuditEntityCategory, category.ID, fmt.Sprintf("Category %q updated", category.CategoryName), changed)

	item := ToCategoryDTO(*category)
	return &item, nil
}

// DeleteCategory removes a category. The dependent-asset check and the
// delete run in one transaction so no asset can slip in between them.
func (f *CategoryFlowImpl) DeleteCategory(ctx context.Context, id uint, principal *Principal, metadata *ClientMetadata) error {
	var name string
	err := f.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		category, err := f.categoryRepo.ByID(ctx, id)
		if err != nil {
			return NewBusinessError("CATEGORY_FETCH_FAILED", "Failed to fetch category", err)
		}
		if category == nil {
			return NewBusinessError("CATEGORY_NOT_FOUND", "Category not found", ErrCategoryNotFound)
		}
		name = category.CategoryName

		count, err := f.assetRepo.CountByCategory(ctx, id)
		if err != nil {
			return NewBusinessError("CATEGORY_COUNT_FAILED", "Failed to count category assets", err)
		}
		if count > 0 {
			return NewBusinessError("CATEGORY_HAS_ASSETS",
				fmt.Sprintf("Category has %d assets and cannot be deleted", count), ErrCategoryHasAssets)
		}

		if err := f.categoryRepo.DeleteByID(ctx, id); err != nil {
			return NewBusinessError("CATEGORY_DELETE_FAILED", "Failed to delete category", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	writeAudit(ctx, f.auditRepo, principal, metadata, models.AuditActionCategoryDeleted,
		models.AuditEntityCategory, id, fmt.Sprintf("Category %q deleted", name), nil)

	return nil
}
