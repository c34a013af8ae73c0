package usecase_test

import (
	"context"
	"testing"

	"librarylens/internal/delivery/dto"
	"librarylens/internal/domain/entity"
	"librarylens/internal/testutil"
	"librarylens/internal/usecase"
	"librarylens/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerRequest(username, email string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Username:        username,
		Email:           email,
		Password:        "correct horse",
		ConfirmPassword: "correct horse",
	}
}

func TestAuthUsecase_RegisterCreatesStudent(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	user, err := f.auth.Register(ctx, registerRequest("reader", "reader@example.com"))
	require.NoError(t, err)
	assert.Equal(t, string(entity.RoleStudent), user.Role)

	found, err := f.auth.FindByEmail(ctx, "reader@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.True(t, found.IsStudent())
	assert.NotEqual(t, "correct horse", found.PasswordHash)
	assert.True(t, f.auth.VerifyPassword(found, "correct horse"))
	assert.False(t, f.auth.VerifyPassword(found, "wrong horse"))
}

func TestAuthUsecase_RegisterRejectsDuplicates(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, registerRequest("reader", "reader@example.com"))
	require.NoError(t, err)

	_, err = f.auth.Register(ctx, registerRequest("reader", "other@example.com"))
	assert.ErrorIs(t, err, usecase.ErrDuplicateUsername)

	_, err = f.auth.Register(ctx, registerRequest("other", "reader@example.com"))
	assert.ErrorIs(t, err, usecase.ErrDuplicateEmail)
}

func TestAuthUsecase_CreateAccount(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	librarian, err := f.auth.CreateAccount(ctx, &dto.CreateAccountRequest{
		Username: "shelver",
		Email:    "shelver@example.com",
		Password: "password123",
	}, entity.RoleLibrarian)
	require.NoError(t, err)
	assert.Equal(t, string(entity.RoleLibrarian), librarian.Role)

	_, err = f.auth.CreateAccount(ctx, &dto.CreateAccountRequest{
		Username: "ghost",
		Email:    "ghost@example.com",
		Password: "password123",
	}, entity.RoleName("Janitor"))
	assert.ErrorIs(t, err, usecase.ErrInvalidRole)
}

func TestAuthUsecase_FindByMissing(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	_, err = f.auth.FindByID(ctx, 42)
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)
}

func TestAuthUsecase_LoginRefreshLogout(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	student := f.user(t, "reader", entity.RoleStudent)

	_, err := f.auth.Login(ctx, &dto.LoginRequest{Username: "reader", Password: "nope"})
	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)
	_, err = f.auth.Login(ctx, &dto.LoginRequest{Username: "nobody", Password: testutil.Password})
	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)

	tokens, err := f.auth.Login(ctx, &dto.LoginRequest{Username: "reader", Password: testutil.Password})
	require.NoError(t, err)
	assert.Equal(t, int64(60), tokens.ExpiresIn)

	access, err := f.jwtService.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, student.ID, access.UserID)
	assert.Equal(t, string(entity.RoleStudent), access.Role)

	// Refresh tokens are single use
	refreshed, err := f.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	_, err = f.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, usecase.ErrTokenRevoked)

	// An access token cannot be used to refresh
	_, err = f.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: refreshed.AccessToken})
	assert.ErrorIs(t, err, usecase.ErrInvalidToken)

	newAccess, err := f.jwtService.ValidateToken(refreshed.AccessToken)
	require.NoError(t, err)
	exists, err := f.tokens.Exists(ctx, jwt.AccessToken, student.ID, newAccess.TokenID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, f.auth.Logout(ctx, newAccess.TokenID, ""))
	exists, err = f.tokens.Exists(ctx, jwt.AccessToken, student.ID, newAccess.TokenID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAuthUsecase_LogoutAll(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	student := f.user(t, "reader", entity.RoleStudent)
	other := f.user(t, "browser", entity.RoleStudent)

	first, err := f.auth.Login(ctx, &dto.LoginRequest{Username: "reader", Password: testutil.Password})
	require.NoError(t, err)
	second, err := f.auth.Login(ctx, &dto.LoginRequest{Username: "reader", Password: testutil.Password})
	require.NoError(t, err)
	kept, err := f.auth.Login(ctx, &dto.LoginRequest{Username: "browser", Password: testutil.Password})
	require.NoError(t, err)

	require.NoError(t, f.auth.LogoutAll(ctx, student.ID))

	for _, tokens := range []*dto.TokenResponse{first, second} {
		_, err := f.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
		assert.ErrorIs(t, err, usecase.ErrTokenRevoked)
	}

	claims, err := f.jwtService.ValidateToken(kept.AccessToken)
	require.NoError(t, err)
	exists, err := f.tokens.Exists(ctx, jwt.AccessToken, other.ID, claims.TokenID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestAuthUsecase_GetCurrentUser(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	settings := testutil.SeedSettings(t, f.db, true, "9.99")
	student := f.user(t, "reader", entity.RoleStudent)
	librarian := f.user(t, "shelver", entity.RoleLibrarian)

	me, err := f.auth.GetCurrentUser(ctx, student.ID)
	require.NoError(t, err)
	assert.True(t, me.CanPurchase)
	assert.Equal(t, []string{string(entity.CapPurchaseBooks)}, me.Capabilities)

	staff, err := f.auth.GetCurrentUser(ctx, librarian.ID)
	require.NoError(t, err)
	assert.False(t, staff.CanPurchase)
	assert.Equal(t, []string{string(entity.CapManageCatalog)}, staff.Capabilities)

	require.NoError(t, f.db.Model(settings).Update("allow_student_purchases", false).Error)
	me, err = f.auth.GetCurrentUser(ctx, student.ID)
	require.NoError(t, err)
	assert.False(t, me.CanPurchase)

	_, err = f.auth.GetCurrentUser(ctx, 999)
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)
}
