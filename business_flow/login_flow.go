// Package businessflow contains the core business logic and use cases for authentication workflows
package businessflow

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/openvarsity/inventory/app/dto"
	"github.com/openvarsity/inventory/app/services"
	"github.com/openvarsity/inventory/models"
	"github.com/openvarsity/inventory/repository"
	"github.com/openvarsity/inventory/utils"
)

// LoginFlow handles user authentication
type LoginFlow interface {
	Login(ctx context.Context, request *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error)
	Logout(ctx context.Context, token string, principal *Principal, metadata *ClientMetadata) error
}

// LoginFlowImpl implements the login business flow
type LoginFlowImpl struct {
	userRepo     repository.UserRepository
	auditRepo    repository.AuditLogRepository
	tokenService services.TokenService
}

// NewLoginFlow creates a new login flow instance
func NewLoginFlow(
	userRepo repository.UserRepository,
	auditRepo repository.AuditLogRepository,
	tokenService services.TokenService,
) LoginFlow {
	return &LoginFlowImpl{
		userRepo:     userRepo,
		auditRepo:    auditRepo,
		tokenService: tokenService,
	}
}

// Login authenticates a user with username and password
func (lf *LoginFlowImpl) Login(ctx context.Context, request *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(request.Username)

	user, err := lf.userRepo.ByUsername(ctx, username)
	if err != nil {
		return nil, NewBusinessError("USER_LOOKUP_FAILED", "Failed to look up user", err)
	}
	if user == nil {
		lf.logAttempt(ctx, nil, models.AuditActionLoginFailed,
			fmt.Sprintf("Login failed for unknown username %s", username), false, metadata)
		return nil, NewBusinessError("LOGIN_FAILED", "Login failed", ErrUserNotFound)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)); err != nil {
		lf.logAttempt(ctx, user, models.AuditActionLoginFailed,
			fmt.Sprintf("Login failed for user %s: incorrect password", username), false, metadata)
		return nil, NewBusinessError("LOGIN_FAILED", "Login failed", ErrIncorrectPassword)
	}

	accessToken, err := lf.tokenService.GenerateToken(user.ID, user.Role.String())
	if err != nil {
		return nil, NewBusinessError("TOKEN_GENERATION_FAILED", "Failed to generate access token", err)
	}

	lf.logAttempt(ctx, user, models.AuditActionLoginSuccess,
		fmt.Sprintf("User %s logged in", username), true, metadata)

	return &dto.LoginResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   utils.AccessTokenTTLSeconds,
		User:        ToUserDTO(*user),
	}, nil
}

// Logout revokes the presented access token
func (lf *LoginFlowImpl) Logout(ctx context.Context, token string, principal *Principal, metadata *ClientMetadata) error {
	if err := lf.tokenService.RevokeToken(ctx, token); err != nil {
		return NewBusinessError("LOGOUT_FAILED", "Failed to revoke token", err)
	}

	var user *models.User
	if principal != nil && principal.UserID != 0 {
		user = &models.User{ID: principal.UserID}
	}
	lf.logAttempt(ctx, user, models.AuditActionLogout, "User logged out", true, metadata)

	return nil
}

func (lf *LoginFlowImpl) logAttempt(ctx context.Context, user *models.User, action, description string, success bool, metadata *ClientMetadata) {
	entry := &models.AuditLog{
		Action:      action,
		Description: &description,
		Success:     utils.ToPtr(success),
	}
	if user != nil {
		entry.UserID = utils.ToPtr(user.ID)
	}
	if metadata != nil {
		if metadata.IPAddress != "" {
			entry.IPAddress = utils.ToPtr(metadata.IPAddress)
		}
		if metadata.RequestID != "" {
			entry.RequestID = utils.ToPtr(metadata.RequestID)
		}
	}
	_ = lf.auditRepo.Save(ctx, entry)
}
