package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aps-academy/admin-service/internal/auth"
	"github.com/aps-academy/admin-service/internal/models"
)

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	records := []PersonRecord{
		adult("Sam", "sam@example.com"),
		{FirstName: "Mia", LastName: "Lee", Password: "kidpw", DOB: "01-01-2015", Email: "mia@example.com"},
	}
	family, err := env.manager.User().Register(ctx, records, FlowSelf, nil)
	require.NoError(t, err)

	tests := []struct {
		name    string
		req     LoginRequest
		wantErr error
	}{
		{"missing password", LoginRequest{Email: "sam@example.com"}, ErrCredentialsRequired},
		{"missing email", LoginRequest{Password: "pw"}, ErrCredentialsRequired},
		{"unknown account", LoginRequest{Email: "nobody@example.com", Password: "pw"}, ErrUserNotFound},
		{"dependent account", LoginRequest{Email: "mia@example.com", Password: "kidpw"}, ErrUseGuardianAccount},
		{"wrong password", LoginRequest{Email: "sam@example.com", Password: "nope"}, ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.manager.Auth().Login(ctx, &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("success", func(t *testing.T) {
		result, err := env.manager.Auth().Login(ctx, &LoginRequest{Email: " SAM@example.com", Password: "pw"})
		require.NoError(t, err)
		assert.Equal(t, family.Primary.ID, result.User.ID)
		require.NotNil(t, result.Session)
		assert.Equal(t, auth.CookieNameForRole(string(models.RoleParent)), result.Session.CookieName)
		assert.WithinDuration(t, time.Now().Add(time.Hour), result.Session.ExpiresAt, time.Minute)
	})
}

func TestLogin_InactiveAfterPasswordCheck(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.manager.User().Register(ctx, []PersonRecord{adult("Ava", "ava@example.com")}, FlowSelf, nil)
	require.NoError(t, err)
	_, err = env.manager.User().Deactivate(ctx, result.Primary.ID, adminActor())
	require.NoError(t, err)

	_, err = env.manager.Auth().Login(ctx, &LoginRequest{Email: "ava@example.com", Password: "bad"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.manager.Auth().Login(ctx, &LoginRequest{Email: "ava@example.com", Password: "pw"})
	assert.ErrorIs(t, err, ErrAccountDeactivated)
}

func TestAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.manager.User().Register(ctx, []PersonRecord{adult("Ava", "ava@example.com")}, FlowSelf, nil)
	require.NoError(t, err)

	user, err := env.manager.Auth().Authenticate(ctx, result.Session.Token)
	require.NoError(t, err)
	assert.Equal(t, result.Primary.ID, user.ID)

	_, err = env.manager.Auth().Authenticate(ctx, "")
	assert.ErrorIs(t, err, ErrNoToken)

	_, err = env.manager.Auth().Authenticate(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	foreign, err := auth.NewTokenIssuer("other-secret", "admin-service", time.Hour).Issue(user.ID, user.Email, string(user.Role))
	require.NoError(t, err)
	_, err = env.manager.Auth().Authenticate(ctx, foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	ghost, err := env.tokens.Issue("missing-id", "ghost@example.com", "Student")
	require.NoError(t, err)
	_, err = env.manager.Auth().Authenticate(ctx, ghost)
	assert.ErrorIs(t, err, ErrInactiveSession)

	_, err = env.manager.User().Deactivate(ctx, user.ID, adminActor())
	require.NoError(t, err)
	_, err = env.manager.Auth().Authenticate(ctx, result.Session.Token)
	assert.ErrorIs(t, err, ErrInactiveSession)
}
