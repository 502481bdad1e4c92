package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/openvarsity/inventory/models"
	"gorm.io/gorm"
)

// CategoryRepositoryImpl implements CategoryRepository
type CategoryRepositoryImpl struct {
	*BaseRepository[models.Category, models.CategoryFilter]
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &CategoryRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Category, models.CategoryFilter](db),
	}
}

// ByName retrieves a category by its unique name
func (r *CategoryRepositoryImpl) ByName(ctx context.Context, name string) (*models.Category, error) {
	db := r.getDB(ctx)

	var category models.Category
	err := db.Where("category_name = ?", name).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find category by name %s: %w", name, err)
	}

	return &category, nil
}

// List retrieves categories ordered by name
func (r *CategoryRepositoryImpl) List(ctx context.Context, filter models.CategoryFilter) ([]*models.Category, error) {
	db := r.getDB(ctx)

	query := db.Model(&models.Category{})
	if filter.Search != "" {
		query = query.Where("category_name LIKE ?", "%"+filter.Search+"%")
	}

	var categories []*models.Category
	if err := query.Order("category_name").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, nil
}
