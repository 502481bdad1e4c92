package businessflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/openvarsity/inventory/app/dto"
	"github.com/openvarsity/inventory/app/services"
	"github.com/openvarsity/inventory/models"
)

type stubTokenService struct {
	token   string
	revoked []string
}

func (s *stubTokenService) GenerateToken(uint, string) (string, error) { return s.token, nil }

func (s *stubTokenService) ValidateToken(context.Context, string) (*services.TokenClaims, error) {
	return nil, nil
}

func (s *stubTokenService) RevokeToken(_ context.Context, token string) error {
	s.revoked = append(s.revoked, token)
	return nil
}

func (s *stubTokenService) IsTokenRevoked(context.Context, string) bool { return false }

func loginTestUser(t *testing.T) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		ID:           3,
		Username:     "jdoe",
		PasswordHash: string(hash),
		Email:        "jdoe@openvarsity.edu",
		FullName:     "Jordan Doe",
		Role:         models.UserRoleStaff,
	}
}

func TestLogin(t *testing.T) {
	users := &stubUserRepo{byUsername: map[string]*models.User{"jdoe": loginTestUser(t)}}
	audit := &stubAuditRepo{}
	flow := NewLoginFlow(users, audit, &stubTokenService{token: "signed-jwt"})

	resp, err := flow.Login(context.Background(), &dto.LoginRequest{
		Username: "  jdoe  ",
		Password: "correct-horse",
	}, NewClientMetadata("10.0.0.1", "req-1"))

	require.NoError(t, err)
	assert.Equal(t, "signed-jwt", resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "jdoe", resp.User.Username)

	require.Len(t, audit.entries, 1)
	entry := audit.entries[0]
	assert.Equal(t, models.AuditActionLoginSuccess, entry.Action)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, uint(3), *entry.UserID)
	require.NotNil(t, entry.IPAddress)
	assert.Equal(t, "10.0.0.1", *entry.IPAddress)
}

func TestLoginUnknownUsername(t *testing.T) {
	audit := &stubAuditRepo{}
	flow := NewLoginFlow(&stubUserRepo{}, audit, &stubTokenService{})

	_, err := flow.Login(context.Background(), &dto.LoginRequest{
		Username: "ghost",
		Password: "whatever",
	}, nil)

	assert.ErrorIs(t, err, ErrUserNotFound)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.AuditActionLoginFailed, audit.entries[0].Action)
	assert.Nil(t, audit.entries[0].UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	users := &stubUserRepo{byUsername: map[string]*models.User{"jdoe": loginTestUser(t)}}
	audit := &stubAuditRepo{}
	flow := NewLoginFlow(users, audit, &stubTokenService{})

	_, err := flow.Login(context.Background(), &dto.LoginRequest{
		Username: "jdoe",
		Password: "wrong-horse",
	}, nil)

	assert.ErrorIs(t, err, ErrIncorrectPassword)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.AuditActionLoginFailed, audit.entries[0].Action)
	require.NotNil(t, audit.entries[0].UserID)
}

func TestLogout(t *testing.T) {
	tokens := &stubTokenService{}
	audit := &stubAuditRepo{}
	flow := NewLoginFlow(&stubUserRepo{}, audit, tokens)

	err := flow.Logout(context.Background(), "signed-jwt", &Principal{UserID: 3}, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"signed-jwt"}, tokens.revoked)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.AuditActionLogout, audit.entries[0].Action)
}
