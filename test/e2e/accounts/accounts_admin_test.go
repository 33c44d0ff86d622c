package accounts_test

import (
	"net/http"
	"testing"

	"github.com/flowmerce/accounts/pkg/accountsdk"
	"github.com/stretchr/testify/require"
)

// TestMerchantFlow covers merchant creation, verification and removal.
func TestMerchantFlow(t *testing.T) {
	baseURL, cleanup := setupAccountsContainer(t, nil)
	defer cleanup()

	client := accountsdk.NewClient(baseURL)
	ctx := t.Context()

	seller := registerAndLogin(t, client, "seller@example.com")
	admin := loginAdmin(t, client)

	_, err := seller.Merchant(ctx)
	requireStatus(t, err, http.StatusNotFound)

	merchant, err := seller.CreateMerchant(ctx, "Seller Supplies")
	require.NoError(t, err)
	require.False(t, merchant.IsVerified)

	_, err = seller.CreateMerchant(ctx, "Again")
	requireStatus(t, err, http.StatusConflict)

	// Buyers and merchants cannot use admin endpoints
	_, err = seller.VerifyMerchant(ctx, merchant.MerchantID)
	requireStatus(t, err, http.StatusForbidden)

	verified, err := admin.VerifyMerchant(ctx, merchant.MerchantID)
	require.NoError(t, err)
	require.True(t, verified.IsVerified)

	me, err := seller.Profile(ctx)
	require.NoError(t, err)
	require.Equal(t, "MERCHANT", me.Role)

	merchants, err := admin.ListMerchants(ctx)
	require.NoError(t, err)
	require.Len(t, merchants, 1)

	_, err = admin.DeleteMerchant(ctx, merchant.MerchantID)
	require.NoError(t, err)

	_, err = seller.Profile(ctx)
	requireStatus(t, err, http.StatusUnauthorized)
}

// TestAdminUsers covers listing and deleting users.
func TestAdminUsers(t *testing.T) {
	baseURL, cleanup := setupAccountsContainer(t, nil)
	defer cleanup()

	client := accountsdk.NewClient(baseURL)
	ctx := t.Context()

	buyer := registerAndLogin(t, client, "buyer@example.com")
	admin := loginAdmin(t, client)

	_, err := buyer.ListUsers(ctx)
	requireStatus(t, err, http.StatusForbidden)

	users, err := admin.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	var buyerID string
	for _, u := range users {
		if u.Email == "buyer@example.com" {
			buyerID = u.UserID
		}
	}
	require.NotEmpty(t, buyerID)

	_, err = admin.DeleteUser(ctx, buyerID)
	require.NoError(t, err)

	_, err = admin.DeleteUser(ctx, buyerID)
	requireStatus(t, err, http.StatusNotFound)

	_, err = buyer.Profile(ctx)
	requireStatus(t, err, http.StatusUnauthorized)
}

// TestLoginRateLimit verifies the default strict limit on login attempts.
func TestLoginRateLimit(t *testing.T) {
	baseURL, cleanup := setupAccountsContainer(t, map[string]string{
		"RATELIMIT_STRICT_REQUESTS": "5",
		"RATELIMIT_STRICT_BURST":    "5",
	})
	defer cleanup()

	client := accountsdk.NewClient(baseURL)

	for range 5 {
		_, err := client.Login(t.Context(), "victim@example.com", "wrong-password")
		requireStatus(t, err, http.StatusUnauthorized)
	}

	_, err := client.Login(t.Context(), "victim@example.com", "wrong-password")
	requireStatus(t, err, http.StatusTooManyRequests)
}
