package models

import (
	"time"
)

// Category represents an asset category such as "Laptops" or "Furniture"
type Category struct {
	ID           uint      `gorm:"primaryKey;column:category_id" json:"category_id"`
	CategoryName string    `gorm:"size:255;uniqueIndex;not null" json:"category_name"`
	Description  *string   `gorm:"type:text" json:"description,omitempty"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Category) TableName() string {
	return "asset_categories"
}

// CategoryFilter represents filter criteria for category queries
type CategoryFilter struct {
	Search string // substring over category_name
}
