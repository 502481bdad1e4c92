package businessflow

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/openvarsity/inventory/app/dto"
	"github.com/openvarsity/inventory/models"
	"github.com/openvarsity/inventory/repository"
	"github.com/openvarsity/inventory/utils"
)

const assetCodeAttempts = 5

// AssetFlow handles asset registration, listing, editing, and export
type AssetFlow interface {
	ListAssets(ctx context.Context, filter models.AssetFilter) (*dto.AssetListResponse, error)
	GetAsset(ctx context.Context, id uint) (*models.AssetRow, error)
	CreateAsset(ctx context.Context, req *dto.CreateAssetRequest, principal *Principal, metadata *ClientMetadata) (*dto.CreateAssetResponse, error)
	UpdateAsset(ctx context.Context, id uint, req *dto.UpdateAssetRequest, principal *Principal, metadata *ClientMetadata) (*models.Asset, error)
	DeleteAsset(ctx context.Context, id uint, principal *Principal, metadata *ClientMetadata) error
	ExportAssets(ctx context.Context, filter models.AssetFilter) (*excelize.File, error)
}

type AssetFlowImpl struct {
	assetRepo    repository.AssetRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	auditRepo    repository.AuditLogRepository
}

func NewAssetFlow(
	assetRepo repository.AssetRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditLogRepository,
) AssetFlow {
	return &AssetFlowImpl{
		assetRepo:    assetRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		auditRepo:    auditRepo,
	}
}

func (f *AssetFlowImpl) ListAssets(ctx context.Context, filter models.AssetFilter) (*dto.AssetListResponse, error) {
	rows, err := f.assetRepo.ListRows(ctx, filter, "")
	if err != nil {
		return nil, NewBusinessError("ASSET_LIST_FAILED", "Failed to list assets", err)
	}
	return &dto.AssetListResponse{Assets: rows, Total: len(rows)}, nil
}

func (f *AssetFlowImpl) GetAsset(ctx context.Context, id uint) (*models.AssetRow, error) {
	row, err := f.assetRepo.RowByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("ASSET_FETCH_FAILED", "Failed to fetch asset", err)
	}
	if row == nil {
		return nil, NewBusinessError("ASSET_NOT_FOUND", "Asset not found", ErrAssetNotFound)
	}
	return row, nil
}

func (f *AssetFlowImpl) CreateAsset(ctx context.Context, req *dto.CreateAssetRequest, principal *Principal, metadata *ClientMetadata) (*dto.CreateAssetResponse, error) {
	status := models.AssetStatus(req.Status)
	if !status.Valid() {
		return nil, NewBusinessError("INVALID_ASSET_STATUS", "Invalid asset status", ErrInvalidAssetStatus)
	}
	if req.PurchaseCost.IsNegative() {
		return nil, NewBusinessError("PURCHASE_COST_NEGATIVE", "Purchase cost cannot be negative", ErrPurchaseCostNegative)
	}
	if req.CurrentValue.IsNegative() {
		return nil, NewBusinessError("CURRENT_VALUE_NEGATIVE", "Current value cannot be negative", ErrCurrentValueNegative)
	}

	purchaseDate, err := time.Parse("2006-01-02", req.PurchaseDate)
	if err != nil {
		return nil, NewBusinessError("INVALID_PURCHASE_DATE", "Purchase date is invalid", ErrInvalidPurchaseDate)
	}

	var category *models.Category
	if req.CategoryID != 0 {
		category, err = f.categoryRepo.ByID(ctx, req.CategoryID)
		if err != nil {
			return nil, NewBusinessError("CATEGORY_FETCH_FAILED", "Failed to fetch category", err)
		}
		if category == nil {
			return nil, NewBusinessError("CATEGORY_NOT_FOUND", "Asset category not found", ErrAssetCategoryNotFound)
		}
	}

	if req.AssignedTo != nil {
		custodian, err := f.userRepo.ByID(ctx, *req.AssignedTo)
		if err != nil {
			return nil, NewBusinessError("USER_FETCH_FAILED", "Failed to fetch assigned user", err)
		}
		if custodian == nil {
			return nil, NewBusinessError("ASSIGNED_USER_NOT_FOUND", "Assigned user not found", ErrAssignedUserNotFound)
		}
	}

	code, err := f.generateAssetCode(ctx, category)
	if err != nil {
		return nil, err
	}

	asset := &models.Asset{
		UUID:         uuid.New(),
		AssetCode:    code,
		AssetName:    strings.TrimSpace(req.AssetName),
		SerialNumber: req.SerialNumber,
		Model:        req.Model,
		Manufacturer: req.Manufacturer,
		PurchaseDate: purchaseDate,
		PurchaseCost: req.PurchaseCost,
		CurrentValue: req.CurrentValue,
		Location:     req.Location,
		Status:       status,
		AssignedTo:   req.AssignedTo,
		Notes:        req.Notes,
	}
	if req.CategoryID != 0 {
		asset.CategoryID = utils.ToPtr(req.CategoryID)
	}
	if req.WarrantyExpiry != nil {
		expiry, err := time.Parse("2006-01-02", *req.WarrantyExpiry)
		if err != nil {
			return nil, NewBusinessError("INVALID_WARRANTY_EXPIRY", "Warranty expiry is invalid", ErrInvalidPurchaseDate)
		}
		asset.WarrantyExpiry = &expiry
	}

	if err := f.assetRepo.Save(ctx, asset); err != nil {
		return nil, NewBusinessError("ASSET_SAVE_FAILED", "Failed to save asset", err)
	}

	f.audit(ctx, principal, metadata, models.AuditActionAssetCreated, asset.ID,
		fmt.Sprintf("Asset %s registered", asset.AssetCode), nil)

	return &dto.CreateAssetResponse{Asset: *asset}, nil
}

func (f *AssetFlowImpl) UpdateAsset(ctx context.Context, id uint, req *dto.UpdateAssetRequest, principal *Principal, metadata *ClientMetadata) (*models.Asset, error) {
	asset, err := f.assetRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("ASSET_FETCH_FAILED", "Failed to fetch asset", err)
	}
	if asset == nil {
		return nil, NewBusinessError("ASSET_NOT_FOUND", "Asset not found", ErrAssetNotFound)
	}

	changed := make([]string, 0, 8)

	if req.AssetName != nil {
		asset.AssetName = strings.TrimSpace(*req.AssetName)
		changed = append(changed, "asset_name")
	}
	if req.CategoryID != nil {
		if *req.CategoryID == 0 {
			asset.CategoryID = nil
		} else {
			category, err := f.categoryRepo.ByID(ctx, *req.CategoryID)
			if err != nil {
				return nil, NewBusinessError("CATEGORY_FETCH_FAILED", "Failed to fetch category", err)
			}
			if category == nil {
				return nil, NewBusinessError("CATEGORY_NOT_FOUND", "Asset category not found", ErrAssetCategoryNotFound)
			}
			asset.CategoryID = req.CategoryID
		}
		changed = append(changed, "category_id")
	}
	if req.SerialNumber != nil {
		asset.SerialNumber = req.SerialNumber
		changed = append(changed, "serial_number")
	}
	if req.Model != nil {
		asset.Model = req.Model
		changed = append(changed, "model")
	}
	if req.Manufacturer != nil {
		asset.Manufacturer = req.Manufacturer
		changed = append(changed, "manufacturer")
	}
	if req.PurchaseDate != nil {
		purchaseDate, err := time.Parse("2006-01-02", *req.PurchaseDate)
		if err != nil {
			return nil, NewBusinessError("INVALID_PURCHASE_DATE", "Purchase date is invalid", ErrInvalidPurchaseDate)
		}
		asset.PurchaseDate = purchaseDate
		changed = append(changed, "purchase_date")
	}
	if req.PurchaseCost != nil {
		if req.PurchaseCost.IsNegative() {
			return nil, NewBusinessError("PURCHASE_COST_NEGATIVE", "Purchase cost cannot be negative", ErrPurchaseCostNegative)
		}
		asset.PurchaseCost = *req.PurchaseCost
		changed = append(changed, "purchase_cost")
	}
	if req.CurrentValue != nil {
		if req.CurrentValue.IsNegative() {
			return nil, NewBusinessError("CURRENT_VALUE_NEGATIVE", "Current value cannot be negative", ErrCurrentValueNegative)
		}
		asset.CurrentValue = *req.CurrentValue
		changed = append(changed, "current_value")
	}
	if req.Location != nil {
		asset.Location = req.Location
		changed = append(changed, "location")
	}
	if req.Status != nil {
		status := models.AssetStatus(*req.Status)
		if !status.Valid() {
			return nil, NewBusinessError("INVALID_ASSET_STATUS", "Invalid asset status", ErrInvalidAssetStatus)
		}
		asset.Status = status
		changed = append(changed, "status")
	}
	if req.AssignedTo != nil {
		if *req.AssignedTo == 0 {
			asset.AssignedTo = nil
		} else {
			custodian, err := f.userRepo.ByID(ctx, *req.AssignedTo)
			if err != nil {
				return nil, NewBusinessError("USER_FETCH_FAILED", "Failed to fetch assigned user", err)
			}
			if custodian == nil {
				return nil, NewBusinessError("ASSIGNED_USER_NOT_FOUND", "Assigned user not found", ErrAssignedUserNotFound)
			}
			asset.AssignedTo = req.AssignedTo
		}
		changed = append(changed, "assigned_to")
	}
	if req.WarrantyExpiry != nil {
		expiry, err := time.Parse("2006-01-02", *req.WarrantyExpiry)
		if err != nil {
			return nil, NewBusinessError("INVALID_WARRANTY_EXPIRY", "Warranty expiry is invalid", ErrInvalidPurchaseDate)
		}
		asset.WarrantyExpiry = &expiry
		changed = append(changed, "warranty_expiry")
	}
	if req.Notes != nil {
		asset.Notes = req.Notes
		changed = append(changed, "notes")
	}

	asset.UpdatedAt = utils.UTCNow()
	if err := f.assetRepo.Update(ctx, asset); err != nil {
		return nil, NewBusinessError("ASSET_UPDATE_FAILED", "Failed to update asset", err)
	}

	f.audit(ctx, principal, metadata, models.AuditActionAssetUpdated, asset.ID,
		fmt.Sprintf("Asset %s updated", asset.AssetCode), changed)

	return asset, nil
}

func (f *AssetFlowImpl) DeleteAsset(ctx context.Context, id uint, principal *Principal, metadata *ClientMetadata) error {
	asset, err := f.assetRepo.ByID(ctx, id)
	if err != nil {
		return NewBusinessError("ASSET_FETCH_FAILED", "Failed to fetch asset", err)
	}
	if asset == nil {
		return NewBusinessError("ASSET_NOT_FOUND", "Asset not found", ErrAssetNotFound)
	}

	// Maintenance records cascade with the asset.
	if err := f.assetRepo.DeleteByID(ctx, id); err != nil {
		return NewBusinessError("ASSET_DELETE_FAILED", "Failed to delete asset", err)
	}

	f.audit(ctx, principal, metadata, models.AuditActionAssetDeleted, id,
		fmt.Sprintf("Asset %s deleted", asset.AssetCode), nil)

	return nil
}

// ExportAssets renders the filtered rows into a spreadsheet
func (f *AssetFlowImpl) ExportAssets(ctx context.Context, filter models.AssetFilter) (*excelize.File, error) {
	rows, err := f.assetRepo.ListRows(ctx, filter, "")
	if err != nil {
		return nil, NewBusinessError("ASSET_EXPORT_FAILED", "Failed to export assets", err)
	}

	file := excelize.NewFile()
	const sheet = "Assets"
	index, err := file.NewSheet(sheet)
	if err != nil {
		return nil, NewBusinessError("ASSET_EXPORT_FAILED", "Failed to build export sheet", err)
	}
	file.SetActiveSheet(index)
	_ = file.DeleteSheet("Sheet1")

	headers := []string{
		"Asset Code", "Asset Name", "Category", "Serial Number", "Model",
		"Manufacturer", "Location", "Status", "Purchase Date",
		"Purchase Cost", "Current Value", "Assigned To", "Department",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return nil, NewBusinessError("ASSET_EXPORT_FAILED", "Failed to write export header", err)
		}
	}

	for r, row := range rows {
		values := []any{
			row.AssetCode,
			row.AssetName,
			row.CategoryLabel(),
			derefOrEmpty(row.SerialNumber),
			derefOrEmpty(row.Model),
			derefOrEmpty(row.Manufacturer),
			row.LocationLabel(),
			row.Status.String(),
			row.PurchaseDate.Format("2006-01-02"),
			row.PurchaseCost.StringFixed(2),
			row.CurrentValue.StringFixed(2),
			row.AssignedLabel(),
			derefOrEmpty(row.Department),
		}
		for c, value := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return nil, NewBusinessError("ASSET_EXPORT_FAILED", "Failed to write export row", err)
			}
		}
	}

	return file, nil
}

// generateAssetCode builds a VU-XX-NNN code from the category abbreviation
// and a random three-digit suffix, retrying on collision
func (f *AssetFlowImpl) generateAssetCode(ctx context.Context, category *models.Category) (string, error) {
	abbrev := categoryAbbrev(category)
	for range assetCodeAttempts {
		code := fmt.Sprintf("%s-%s-%03d", utils.AssetCodePrefix, abbrev, 100+rand.Intn(900))
		existing, err := f.assetRepo.ByCode(ctx, code)
		if err != nil {
			return "", NewBusinessError("ASSET_CODE_LOOKUP_FAILED", "Failed to check asset code", err)
		}
		if existing == nil {
			return code, nil
		}
	}
	return "", NewBusinessError("ASSET_CODE_EXHAUSTED", "Could not generate a unique asset code", ErrAssetCodeExhausted)
}

// categoryAbbrev derives the two-letter code segment from the category name.
// Uncategorized assets fall back to the general "GN" segment.
func categoryAbbrev(category *models.Category) string {
	if category == nil {
		return "GN"
	}
	letters := make([]rune, 0, 2)
	for _, r := range category.CategoryName {
		if unicode.IsLetter(r) {
			letters = append(letters, unicode.ToUpper(r))
		}
		if len(letters) == 2 {
			break
		}
	}
	for len(letters) < 2 {
		letters = append(letters, 'X')
	}
	return string(letters)
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// audit records the action without failing the caller on audit errors
func (f *AssetFlowImpl) audit(ctx context.Context, principal *Principal, metadata *ClientMetadata, action string, entityID uint, description string, changed []string) {
	writeAudit(ctx, f.auditRepo, principal, metadata, action, models.AuditEntityAsset, entityID, description, changed)
}

func writeAudit(ctx context.Context, repo repository.AuditLogRepository, principal *Principal, metadata *ClientMetadata, action, entityType string, entityID uint, description string, changed []string) {
	if repo == nil {
		return
	}
	entry := &models.AuditLog{
		Action:        action,
		EntityType:    utils.ToPtr(entityType),
		EntityID:      utils.ToPtr(entityID),
		ChangedFields: changed,
		Description:   utils.ToPtr(description),
		Success:       utils.ToPtr(true),
	}
	if principal != nil && principal.UserID != 0 {
		entry.UserID = utils.ToPtr(principal.UserID)
	}
	if metadata != nil {
		if metadata.IPAddress != "" {
			entry.IPAddress = utils.ToPtr(metadata.IPAddress)
		}
		if metadata.RequestID != "" {
			entry.RequestID = utils.ToPtr(metadata.RequestID)
		}
	}
	if err := repo.Save(ctx, entry); err != nil {
		log.Printf("audit write failed for action %s: %v", action, err)
	}
}
