package dto

// CategoryDTO represents a category in API responses
type CategoryDTO struct {
	ID           uint    `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Description  *string `json:"description,omitempty"`
	AssetCount   int64   `json:"asset_count"`
	CreatedAt    string  `json:"created_at"`
}

// CreateCategoryRequest represents the payload for creating a category
type CreateCategoryRequest struct {
	CategoryName string  `json:"category_name" validate:"required,min=2,max=255"`
	Description  *string `json:"description,omitempty"`
}

// UpdateCategoryRequest represents the payload for editing a category
type UpdateCategoryRequest struct {
	CategoryName *string `json:"category_name,omitempty" validate:"omitempty,min=2,max=255"`
	Description  *string `json:"description,omitempty"`
}

// CategoryListResponse carries the category listing
type CategoryListResponse struct {
	Categories []CategoryDTO `json:"categories"`
}
