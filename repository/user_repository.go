package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/openvarsity/inventory/models"
	"gorm.io/gorm"
)

// UserRepositoryImpl implements UserRepository
type UserRepositoryImpl struct {
	*BaseRepository[models.User, models.UserFilter]
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{
		BaseRepository: NewBaseRepository[models.User, models.UserFilter](db),
	}
}

// ByUsername retrieves a user by username
func (r *UserRepositoryImpl) ByUsername(ctx context.Context, username string) (*models.User, error) {
	db := r.getDB(ctx)

	var user models.User
	err := db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by username %s: %w", username, err)
	}

	return &user, nil
}

// ByEmail retrieves a user by email
func (r *UserRepositoryImpl) ByEmail(ctx context.Context, email string) (*models.User, error) {
	db := r.getDB(ctx)

	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by email %s: %w", email, err)
	}

	return &user, nil
}

// List retrieves users matching the filter, most recently created first
func (r *UserRepositoryImpl) List(ctx context.Context, filter models.UserFilter) ([]*models.User, error) {
	db := r.getDB(ctx)

	query, args := NewQueryComposer("SELECT * FROM users WHERE 1=1").
		Search(filter.Search, "username", "full_name", "email", "department").
		Equal("role", filter.Role).
		Equal("department", filter.Department).
		OrderBy("created_at DESC").
		SQL()

	var users []*models.User
	if err := db.Raw(query, args...).Scan(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// ListDepartments returns the distinct non-empty departments in use
func (r *UserRepositoryImpl) ListDepartments(ctx context.Context) ([]string, error) {
	db := r.getDB(ctx)

	var departments []string
	err := db.Raw(`SELECT DISTINCT department FROM users
		WHERE department IS NOT NULL AND department != ''
		ORDER BY department`).Scan(&departments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	return departments, nil
}

// CountByRole returns the number of users per role
func (r *UserRepositoryImpl) CountByRole(ctx context.Context) (map[models.UserRole]int64, error) {
	db := r.getDB(ctx)

	type roleCount struct {
		Role  models.UserRole
		Count int64
	}
	var rows []roleCount
	err := db.Raw("SELECT role, COUNT(*) AS count FROM users GROUP BY role").Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count users by role: %w", err)
	}

	counts := make(map[models.UserRole]int64, len(rows))
	for _, row := range rows {
		counts[row.Role] = row.Count
	}

	return counts, nil
}
