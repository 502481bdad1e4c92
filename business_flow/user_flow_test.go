package businessflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/openvarsity/inventory/app/dto"
	"github.com/openvarsity/inventory/models"
)

func newTestUserFlow(users *stubUserRepo, assets *stubAssetRepo, audit *stubAuditRepo) UserFlow {
	if assets == nil {
		assets = &stubAssetRepo{}
	}
	if audit == nil {
		audit = &stubAuditRepo{}
	}
	return NewUserFlow(users, assets, audit, &stubTransactor{})
}

func TestCreateUser(t *testing.T) {
	users := &stubUserRepo{}
	audit := &stubAuditRepo{}
	flow := newTestUserFlow(users, nil, audit)

	out, err := flow.CreateUser(context.Background(), &dto.CreateUserRequest{
		Username:        "jdoe",
		Password:        "correct-horse",
		ConfirmPassword: "correct-horse",
		Email:           "JDoe@Openvarsity.EDU",
		FullName:        "Jordan Doe",
		Role:            "staff",
	}, &Principal{UserID: 1, Role: models.UserRoleAdmin}, NewClientMetadata("10.0.0.1", "test"))

	require.NoError(t, err)
	assert.Equal(t, "jdoe@openvarsity.edu", out.Email)
	assert.Equal(t, "staff", out.Role)

	require.Len(t, users.saved, 1)
	saved := users.saved[0]
	assert.NotEqual(t, "correct-horse", saved.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("correct-horse")))

	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.AuditActionUserCreated, audit.entries[0].Action)
}

func TestCreateUserPasswordMismatch(t *testing.T) {
	flow := newTestUserFlow(&stubUserRepo{}, nil, nil)

	_, err := flow.CreateUser(context.Background(), &dto.CreateUserRequest{
		Username:        "jdoe",
		Password:        "one-password",
		ConfirmPassword: "another-password",
		Email:           "jdoe@openvarsity.edu",
		FullName:        "Jordan Doe",
		Role:            "staff",
	}, nil, nil)

	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestCreateUserInvalidRole(t *testing.T) {
	flow := newTestUserFlow(&stubUserRepo{}, nil, nil)

	_, err := flow.CreateUser(context.Background(), &dto.CreateUserRequest{
		Username:        "jdoe",
		Password:        "correct-horse",
		ConfirmPassword: "correct-horse",
		Email:           "jdoe@openvarsity.edu",
		FullName:        "Jordan Doe",
		Role:            "superuser",
	}, nil, nil)

	assert.ErrorIs(t, err, ErrInvalidUserRole)
}

func TestDeleteUser(t *testing.T) {
	users := &stubUserRepo{byID: map[uint]*models.User{
		7: {ID: 7, Username: "departing"},
	}}
	audit := &stubAuditRepo{}
	flow := newTestUserFlow(users, &stubAssetRepo{}, audit)

	err := flow.DeleteUser(context.Background(), 7, &Principal{UserID: 1}, nil)

	require.NoError(t, err)
	assert.Equal(t, []uint{7}, users.deleted)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.AuditActionUserDeleted, audit.entries[0].Action)
}

func TestDeleteUserRunsInTransaction(t *testing.T) {
	users := &stubUserRepo{byID: map[uint]*models.User{
		7: {ID: 7, Username: "departing"},
	}}
	tx := &stubTransactor{}
	flow := NewUserFlow(users, &stubAssetRepo{}, &stubAuditRepo{}, tx)

	err := flow.DeleteUser(context.Background(), 7, &Principal{UserID: 1}, nil)

	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)
}

func TestDeleteUserSelfBlocked(t *testing.T) {
	// The self check comes before any lookup, so even an account missing
	// from the store reports the self deletion error.
	flow := newTestUserFlow(&stubUserRepo{}, nil, nil)

	err := flow.DeleteUser(context.Background(), 5, &Principal{UserID: 5}, nil)

	assert.ErrorIs(t, err, ErrCannotDeleteSelf)
}

func TestDeleteUserNotFound(t *testing.T) {
	flow := newTestUserFlow(&stubUserRepo{}, nil, nil)

	err := flow.DeleteUser(context.Background(), 404, &Principal{UserID: 1}, nil)

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUserWithAssignedAssetsBlocked(t *testing.T) {
	users := &stubUserRepo{byID: map[uint]*models.User{
		7: {ID: 7, Username: "custodian"},
	}}
	flow := newTestUserFlow(users, &stubAssetRepo{countAssignedTo: 2}, nil)

	err := flow.DeleteUser(context.Background(), 7, &Principal{UserID: 1}, nil)

	assert.ErrorIs(t, err, ErrUserHasAssets)
	assert.Empty(t, users.deleted)
}
