package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfbeat/shelfbeat-server/internal/domain"
	domainerrors "github.com/shelfbeat/shelfbeat-server/internal/errors"
)

func TestAuthService_SignupAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.auth.Signup(ctx, SignupRequest{
		Email:       "new@example.com",
		Password:    "correct horse battery",
		DisplayName: "New Reader",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, domain.RoleReader, resp.User.Role)
	assert.Equal(t, "new@example.com", resp.User.Email)
	assert.True(t, resp.ExpiresAt.After(resp.User.CreatedAt))

	claims, err := env.auth.VerifyAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)

	login, err := env.auth.Login(ctx, LoginRequest{
		Email:    "new@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
	assert.NotEmpty(t, login.AccessToken)
}

func TestAuthService_Signup_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  SignupRequest
	}{
		{"bad email", SignupRequest{Email: "not-an-email", Password: "longenough", DisplayName: "X"}},
		{"short password", SignupRequest{Email: "a@example.com", Password: "short", DisplayName: "X"}},
		{"missing display name", SignupRequest{Email: "a@example.com", Password: "longenough"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.Signup(ctx, tt.req)
			assert.True(t, errors.Is(err, domainerrors.ErrValidation), "expected validation error, got %v", err)
		})
	}
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req := SignupRequest{
		Email:       "taken@example.com",
		Password:    "longenough",
		DisplayName: "First",
	}
	_, err := env.auth.Signup(ctx, req)
	require.NoError(t, err)

	_, err = env.auth.Signup(ctx, req)
	assert.True(t, errors.Is(err, domainerrors.ErrAlreadyExists), "expected already exists, got %v", err)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Signup(ctx, SignupRequest{
		Email:       "user@example.com",
		Password:    "the right password",
		DisplayName: "User",
	})
	require.NoError(t, err)

	// Wrong password and unknown email fail identically.
	_, err = env.auth.Login(ctx, LoginRequest{
		Email:    "user@example.com",
		Password: "the wrong password",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials), "expected invalid credentials, got %v", err)

	_, err = env.auth.Login(ctx, LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever password",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials), "expected invalid credentials, got %v", err)
}

func TestAuthService_Me(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.auth.Signup(ctx, SignupRequest{
		Email:       "me@example.com",
		Password:    "longenough",
		DisplayName: "Me",
	})
	require.NoError(t, err)

	user, err := env.auth.Me(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", user.Email)

	_, err = env.auth.Me(ctx, "usr-missing")
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound), "expected not found, got %v", err)
}
