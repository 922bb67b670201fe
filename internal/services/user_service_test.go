package services

import (
	"testing"
	"time"

	"threadswap_backend/internal/auth"
	"threadswap_backend/internal/models"
	"threadswap_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserFixture(t *testing.T) (UserService, *fakeUserRepo, *fakeWardrobeRepo, *fakeSwapRepo, *fakeCollectionRepo) {
	t.Helper()
	testConfig(t)
	users := newFakeUserRepo()
	wardrobe := newFakeWardrobeRepo()
	swaps := newFakeSwapRepo(wardrobe)
	collections := newFakeCollectionRepo()
	service := NewUserService(users, wardrobe, collections, swaps)
	return service, users, wardrobe, swaps, collections
}

func TestRegister(t *testing.T) {
	t.Run("new account starts on basic", func(t *testing.T) {
		service, users, _, _, _ := newUserFixture(t)

		result, err := service.Register(RegisterInput{
			Email: "nora@example.com", Password: "hunter2hunter2", DisplayName: "Nora",
		})

		require.NoError(t, err)
		assert.Equal(t, models.TierBasic, result.User.Tier)
		assert.Equal(t, models.UserStatusActive, result.User.Status)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.False(t, result.User.CreditsPeriodStart.IsZero())

		// The hash is stored, never the password.
		stored, err := users.FindByEmail("nora@example.com")
		require.NoError(t, err)
		assert.NotEqual(t, "hunter2hunter2", stored.PasswordHash)
		assert.True(t, auth.CheckPasswordHash("hunter2hunter2", stored.PasswordHash))
	})

	t.Run("short password rejected", func(t *testing.T) {
		service, _, _, _, _ := newUserFixture(t)

		_, err := service.Register(RegisterInput{
			Email: "nora@example.com", Password: "short", DisplayName: "Nora",
		})

		assert.Equal(t, 400, httpCode(t, err))
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		service, _, _, _, _ := newUserFixture(t)
		input := RegisterInput{Email: "nora@example.com", Password: "hunter2hunter2", DisplayName: "Nora"}
		_, err := service.Register(input)
		require.NoError(t, err)

		_, err = service.Register(input)

		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	})
}

func TestLogin(t *testing.T) {
	service, users, _, _, _ := newUserFixture(t)
	registered, err := service.Register(RegisterInput{
		Email: "nora@example.com", Password: "hunter2hunter2", DisplayName: "Nora",
	})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		result, err := service.Login(LoginInput{Email: "nora@example.com", Password: "hunter2hunter2"})

		require.NoError(t, err)
		assert.Equal(t, registered.User.ID, result.User.ID)

		claims, err := auth.ParseToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, registered.User.ID, claims.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Login(LoginInput{Email: "nora@example.com", Password: "wrong-password"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown email gets the same error as a wrong password", func(t *testing.T) {
		_, err := service.Login(LoginInput{Email: "nobody@example.com", Password: "hunter2hunter2"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("suspended account", func(t *testing.T) {
		users.users[registered.User.ID].Status = models.UserStatusSuspended
		defer func() { users.users[registered.User.ID].Status = models.UserStatusActive }()

		_, err := service.Login(LoginInput{Email: "nora@example.com", Password: "hunter2hunter2"})
		assert.ErrorIs(t, err, apperrors.ErrUserSuspended)
	})
}

func TestRefreshRotation(t *testing.T) {
	service, users, _, _, _ := newUserFixture(t)
	registered, err := service.Register(RegisterInput{
		Email: "nora@example.com", Password: "hunter2hunter2", DisplayName: "Nora",
	})
	require.NoError(t, err)

	refreshed, err := service.Refresh(registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// The presented token is single use.
	_, err = service.Refresh(registered.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	t.Run("expired token", func(t *testing.T) {
		users.refreshTokens[refreshed.RefreshToken].ExpiresAt = time.Now().Add(-time.Minute)
		_, err := service.Refresh(refreshed.RefreshToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}

func TestLogoutRevokesAllSessions(t *testing.T) {
	service, users, _, _, _ := newUserFixture(t)
	registered, err := service.Register(RegisterInput{
		Email: "nora@example.com", Password: "hunter2hunter2", DisplayName: "Nora",
	})
	require.NoError(t, err)
	second, err := service.Login(LoginInput{Email: "nora@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)
	require.Len(t, users.refreshTokens, 2)

	require.NoError(t, service.Logout(registered.User.ID))

	_, err = service.Refresh(registered.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	_, err = service.Refresh(second.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestUpdateProfilePatchesOnlyProvidedFields(t *testing.T) {
	service, _, _, _, _ := newUserFixture(t)
	registered, err := service.Register(RegisterInput{
		Email: "nora@example.com", Password: "hunter2hunter2", DisplayName: "Nora",
	})
	require.NoError(t, err)

	bio := "Slow fashion enthusiast"
	key := "user-supplied-key"
	updated, err := service.UpdateProfile(registered.User.ID, UpdateProfileInput{
		Bio:          &bio,
		GeminiAPIKey: &key,
	})

	require.NoError(t, err)
	assert.Equal(t, "Nora", updated.DisplayName)
	assert.Equal(t, bio, updated.Bio)
	assert.Equal(t, key, updated.GeminiAPIKey)
}

func TestChangeTier(t *testing.T) {
	service, _, _, _, _ := newUserFixture(t)
	registered, err := service.Register(RegisterInput{
		Email: "nora@example.com", Password: "hunter2hunter2", DisplayName: "Nora",
	})
	require.NoError(t, err)

	updated, err := service.ChangeTier(registered.User.ID, models.TierPro)
	require.NoError(t, err)
	assert.Equal(t, models.TierPro, updated.Tier)

	_, err = service.ChangeTier(registered.User.ID, models.Tier("platinum"))
	assert.Equal(t, 400, httpCode(t, err))
}

func TestGetUsage(t *testing.T) {
	service, _, wardrobe, swaps, collections := newUserFixture(t)
	registered, err := service.Register(RegisterInput{
		Email: "nora@example.com", Password: "hunter2hunter2", DisplayName: "Nora",
	})
	require.NoError(t, err)
	userID := registered.User.ID

	require.NoError(t, wardrobe.Create(&models.WardrobeItem{OwnerID: userID, Title: "Jacket"}))
	require.NoError(t, wardrobe.Create(&models.WardrobeItem{OwnerID: userID, Title: "Scarf"}))
	deleted := &models.WardrobeItem{OwnerID: userID, Title: "Old"}
	require.NoError(t, wardrobe.Create(deleted))
	require.NoError(t, wardrobe.SoftDelete(deleted.ID))
	require.NoError(t, collections.Create(&models.Collection{UserID: userID, Name: "Fall"}))
	swaps.swaps["s1"] = &models.SwapRequest{RequesterID: userID, Status: models.SwapStatusPending}
	swaps.swaps["s2"] = &models.SwapRequest{RequesterID: userID, Status: models.SwapStatusDeclined}

	usage, err := service.GetUsage(userID)

	require.NoError(t, err)
	assert.Equal(t, models.TierBasic, usage.Tier)
	assert.Equal(t, int64(2), usage.WardrobeItems, "deleted items do not count")
	assert.Equal(t, int64(1), usage.Collections)
	assert.Equal(t, int64(1), usage.ActiveSwaps, "terminal swaps do not count")
	assert.Equal(t, 20, usage.Limits.MaxWardrobeItems)
}
