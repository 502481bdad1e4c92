package businessflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/openvarsity/inventory/app/dto"
	"github.com/openvarsity/inventory/models"
	"github.com/openvarsity/inventory/repository"
	"github.com/openvarsity/inventory/utils"
)

// UserFlow handles custodian account management
type UserFlow interface {
	ListUsers(ctx context.Context, filter models.UserFilter) (*dto.UserListResponse, error)
	GetUser(ctx context.Context, id uint) (*dto.UserDTO, error)
	CreateUser(ctx context.Context, req *dto.CreateUserRequest, principal *Principal, metadata *ClientMetadata) (*dto.UserDTO, error)
	UpdateUser(ctx context.Context, id uint, req *dto.UpdateUserRequest, principal *Principal, metadata *ClientMetadata) (*dto.UserDTO, error)
	DeleteUser(ctx context.Context, id uint, principal *Principal, metadata *ClientMetadata) error
}

type UserFlowImpl struct {
	userRepo  repository.UserRepository
	assetRepo repository.AssetRepository
	auditRepo repository.AuditLogRepository
	tx        repository.Transactor
}

func NewUserFlow(
	userRepo repository.UserRepository,
	assetRepo repository.AssetRepository,
	auditRepo repository.AuditLogRepository,
	tx repository.Transactor,
) UserFlow {
	return &UserFlowImpl{
		userRepo:  userRepo,
		assetRepo: assetRepo,
		auditRepo: auditRepo,
		tx:        tx,
	}
}

func (f *UserFlowImpl) ListUsers(ctx context.Context, filter models.UserFilter) (*dto.UserListResponse, error) {
	users, err := f.userRepo.List(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("USER_LIST_FAILED", "Failed to list users", err)
	}

	departments, err := f.userRepo.ListDepartments(ctx)
	if err != nil {
		return nil, NewBusinessError("DEPARTMENT_LIST_FAILED", "Failed to list departments", err)
	}

	roleCounts, err := f.userRepo.CountByRole(ctx)
	if err != nil {
		return nil, NewBusinessError("USER_STATS_FAILED", "Failed to count users per role", err)
	}

	out := make([]dto.UserDTO, 0, len(users))
	for _, user := range users {
		out = append(out, ToUserDTO(*user))
	}

	stats := dto.UserStats{
		AdminCount:      roleCounts[models.UserRoleAdmin],
		StaffCount:      roleCounts[models.UserRoleStaff],
		FacultyCount:    roleCounts[models.UserRoleFaculty],
		TechnicianCount: roleCounts[models.UserRoleTechnician],
	}
	for _, count := range roleCounts {
		stats.TotalUsers += count
	}

	return &dto.UserListResponse{
		Users:       out,
		Departments: departments,
		Stats:       stats,
	}, nil
}

func (f *UserFlowImpl) GetUser(ctx context.Context, id uint) (*dto.UserDTO, error) {
	user, err := f.userRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("USER_FETCH_FAILED", "Failed to fetch user", err)
	}
	if user == nil {
		return nil, NewBusinessError("USER_NOT_FOUND", "User not found", ErrUserNotFound)
	}
	out := ToUserDTO(*user)
	return &out, nil
}

func (f *UserFlowImpl) CreateUser(ctx context.Context, req *dto.CreateUserRequest, principal *Principal, metadata *ClientMetadata) (*dto.UserDTO, error) {
	if req.Password != req.ConfirmPassword {
		return nil, NewBusinessError("PASSWORD_MISMATCH", "Passwords do not match", ErrPasswordMismatch)
	}
	role := models.UserRole(req.Role)
	if !role.Valid() {
		return nil, NewBusinessError("INVALID_USER_ROLE", "Invalid user role", ErrInvalidUserRole)
	}

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := f.userRepo.ByUsername(ctx, username)
	if err != nil {
		return nil, NewBusinessError("USER_LOOKUP_FAILED", "Failed to check username", err)
	}
	if existing != nil {
		return nil, NewBusinessError("USERNAME_EXISTS", "Username already exists", ErrUsernameExists)
	}

	existing, err = f.userRepo.ByEmail(ctx, email)
	if err != nil {
		return nil, NewBusinessError("USER_LOOKUP_FAILED", "Failed to check email", err)
	}
	if existing != nil {
		return nil, NewBusinessError("EMAIL_EXISTS", "Email already exists", ErrEmailExists)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewBusinessError("PASSWORD_HASH_FAILED", "Failed to hash password", err)
	}

	user := &models.User{
		UUID:         uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
		FullName:     strings.TrimSpace(req.FullName),
		Role:         role,
		Department:   req.Department,
	}
	if err := f.userRepo.Save(ctx, user); err != nil {
		return nil, NewBusinessError("USER_SAVE_FAILED", "Failed to save user", err)
	}

	writeAudit(ctx, f.auditRepo, principal, metadata, models.AuditActionUserCreated,
		models.AuditEntityUser, user.ID, fmt.Sprintf("User %s created with role %s", username, role), nil)

	out := ToUserDTO(*user)
	return &out, nil
}

func (f *UserFlowImpl) UpdateUser(ctx context.Context, id uint, req *dto.UpdateUserRequest, principal *Principal, metadata *ClientMetadata) (*dto.UserDTO, error) {
	user, err := f.userRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("USER_FETCH_FAILED", "Failed to fetch user", err)
	}
	if user == nil {
		return nil, NewBusinessError("USER_NOT_FOUND", "User not found", ErrUserNotFound)
	}

	changed := make([]string, 0, 5)

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username != user.Username {
			existing, err := f.userRepo.ByUsername(ctx, username)
			if err != nil {
				return nil, NewBusinessError("USER_LOOKUP_FAILED", "Failed to check username", err)
			}
			if existing != nil && existing.ID != user.ID {
				return nil, NewBusinessError("USERNAME_EXISTS", "Username already exists", ErrUsernameExists)
			}
			user.Username = username
			changed = append(changed, "username")
		}
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != user.Email {
			existing, err := f.userRepo.ByEmail(ctx, email)
			if err != nil {
				return nil, NewBusinessError("USER_LOOKUP_FAILED", "Failed to check email", err)
			}
			if existing != nil && existing.ID != user.ID {
				return nil, NewBusinessError("EMAIL_EXISTS", "Email already exists", ErrEmailExists)
			}
			user.Email = email
			changed = append(changed, "email")
		}
	}
	if req.FullName != nil {
		user.FullName = strings.TrimSpace(*req.FullName)
		changed = append(changed, "full_name")
	}
	if req.Role != nil {
		role := models.UserRole(*req.Role)
		if !role.Valid() {
			return nil, NewBusinessError("INVALID_USER_ROLE", "Invalid user role", ErrInvalidUserRole)
		}
		user.Role = role
		changed = append(changed, "role")
	}
	if req.Department != nil {
		user.Department = req.Department
		changed = append(changed, "department")
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, NewBusinessError("PASSWORD_HASH_FAILED", "Failed to hash password", err)
		}
		user.PasswordHash = string(hash)
		changed = append(changed, "password")
	}

	user.UpdatedAt = utils.UTCNow()
	if err := f.userRepo.Update(ctx, user); err != nil {
		return nil, NewBusinessError("USER_UPDATE_FAILED", "Failed to update user", err)
	}

	writeAudit(ctx, f.auditRepo, principal, metadata, models.AuditActionUserUpdated,
		models.AuditEntityUser, user.ID, fmt.Sprintf("User %s updated", user.Username), changed)

	out := ToUserDTO(*user)
	return &out, nil
}

// DeleteUser removes a custodian account. The assigned-asset check and the
// delete run in one transaction so no assignment can slip in between them.
func (f *UserFlowImpl) DeleteUser(ctx context.Context, id uint, principal *Principal, metadata *ClientMetadata) error {
	if principal != nil && principal.UserID == id {
		return NewBusinessError("CANNOT_DELETE_SELF", "Cannot delete the acting account", ErrCannotDeleteSelf)
	}

	var username string
	err := f.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := f.userRepo.ByID(ctx, id)
		if err != nil {
			return NewBusinessError("USER_FETCH_FAILED", "Failed to fetch user", err)
		}
		if user == nil {
			return NewBusinessError("USER_NOT_FOUND", "User not found", ErrUserNotFound)
		}
		username = user.Username

		assigned, err := f.assetRepo.CountAssignedTo(ctx, id)
		if err != nil {
			return NewBusinessError("USER_ASSET_COUNT_FAILED", "Failed to count assigned assets", err)
		}
		if assigned > 0 {
			return NewBusinessError("USER_HAS_ASSETS",
				fmt.Sprintf("User has %d assets assigned and cannot be deleted", assigned), ErrUserHasAssets)
		}

		if err := f.userRepo.DeleteByID(ctx, id); err != nil {
			return NewBusinessError("USER_DELETE_FAILED", "Failed to delete user", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	writeAudit(ctx, f.auditRepo, principal, metadata, models.AuditActionUserDeleted,
		models.AuditEntityUser, id, fmt.Sprintf("User %s deleted", username), nil)

	return nil
}
