package accounts_test

import (
	"net/http"
	"testing"

	"github.com/flowmerce/accounts/pkg/accountsdk"
	"github.com/stretchr/testify/require"
)

// TestAccountLifecycle walks one account from registration to deletion.
func TestAccountLifecycle(t *testing.T) {
	baseURL, cleanup := setupAccountsContainer(t, nil)
	defer cleanup()

	client := accountsdk.NewClient(baseURL)
	ctx := t.Context()

	session := registerAndLogin(t, client, "lifecycle@example.com")
	require.EqualValues(t, 86400, session.ExpiresIn())

	_, err := client.Register(ctx, accountsdk.RegisterRequest{
		Email:    "lifecycle@example.com",
		Password: userPassword,
		FullName: "Duplicate",
	})
	requireStatus(t, err, http.StatusConflict)

	me, err := session.UpdateProfile(ctx, accountsdk.UpdateProfileRequest{
		FullName: "Life Cycle",
		Phone:    "0412 345 678",
	})
	require.NoError(t, err)
	require.Equal(t, "Life Cycle", me.FullName)
	require.Equal(t, "+61412345678", me.Phone)
	require.Equal(t, "BUYER", me.Role)

	second, err := client.Login(ctx, "lifecycle@example.com", userPassword)
	require.NoError(t, err)

	_, err = session.ChangePassword(ctx, userPassword, "Changed123!")
	require.NoError(t, err)

	// Every session dies with the password change
	_, err = session.Profile(ctx)
	requireStatus(t, err, http.StatusUnauthorized)
	_, err = second.Profile(ctx)
	requireStatus(t, err, http.StatusUnauthorized)

	_, err = client.Login(ctx, "lifecycle@example.com", userPassword)
	requireStatus(t, err, http.StatusUnauthorized)

	session, err = client.Login(ctx, "lifecycle@example.com", "Changed123!")
	require.NoError(t, err)

	_, err = session.DeleteAccount(ctx)
	require.NoError(t, err)

	_, err = client.Login(ctx, "lifecycle@example.com", "Changed123!")
	requireStatus(t, err, http.StatusUnauthorized)
}

// TestLogout verifies a revoked token is rejected and cannot be revoked twice.
func TestLogout(t *testing.T) {
	baseURL, cleanup := setupAccountsContainer(t, nil)
	defer cleanup()

	client := accountsdk.NewClient(baseURL)
	session := registerAndLogin(t, client, "logout@example.com")

	msg, err := session.Logout(t.Context())
	require.NoError(t, err)
	require.Equal(t, "Logged out successfully.", msg)

	_, err = session.Profile(t.Context())
	requireStatus(t, err, http.StatusUnauthorized)

	_, err = session.Logout(t.Context())
	requireStatus(t, err, http.StatusBadRequest)
}

// TestForgotPassword_NoEnumeration verifies known and unknown emails get the
// same answer.
func TestForgotPassword_NoEnumeration(t *testing.T) {
	baseURL, cleanup := setupAccountsContainer(t, nil)
	defer cleanup()

	client := accountsdk.NewClient(baseURL)
	registerAndLogin(t, client, "forgot@example.com")

	known, err := client.ForgotPassword(t.Context(), "forgot@example.com")
	require.NoError(t, err)
	unknown, err := client.ForgotPassword(t.Context(), "nobody@example.com")
	require.NoError(t, err)
	require.Equal(t, known, unknown)

	_, err = client.ResetPassword(t.Context(), "never-issued-token", "Whatever123!")
	requireStatus(t, err, http.StatusBadRequest)
}

// TestRequireActivation verifies unactivated accounts cannot log in when
// activation is enforced.
func TestRequireActivation(t *testing.T) {
	baseURL, cleanup := setupAccountsContainer(t, map[string]string{"AUTH_REQUIRE_ACTIVATION": "true"})
	defer cleanup()

	client := accountsdk.NewClient(baseURL)

	_, err := client.Register(t.Context(), accountsdk.RegisterRequest{
		Email:    "inactive@example.com",
		Password: userPassword,
		FullName: "Not Yet",
	})
	require.NoError(t, err)

	_, err = client.Login(t.Context(), "inactive@example.com", userPassword)
	requireStatus(t, err, http.StatusUnauthorized)

	_, err = client.Activate(t.Context(), "not-a-real-token")
	requireStatus(t, err, http.StatusBadRequest)

	// The seeded admin is activated on creation
	loginAdmin(t, client)
}

// TestValidationEnvelope verifies field errors are reported together.
func TestValidationEnvelope(t *testing.T) {
	baseURL, cleanup := setupAccountsContainer(t, nil)
	defer cleanup()

	client := accountsdk.NewClient(baseURL)

	_, err := client.Register(t.Context(), accountsdk.RegisterRequest{Email: "bad", Password: "short"})
	requireStatus(t, err, http.StatusBadRequest)

	var apiErr *accountsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Validation failed", apiErr.Message)
	require.Contains(t, apiErr.Fields, "email")
	require.Contains(t, apiErr.Fields, "password")
	require.Contains(t, apiErr.Fields, "fullName")
}
