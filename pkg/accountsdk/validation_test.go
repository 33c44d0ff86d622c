package accountsdk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterRequest_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := RegisterRequest{Email: "alice@example.com", Password: "Passw0rd!", FullName: "Alice"}
		require.Nil(t, req.Validate())
	})

	t.Run("collects every field error", func(t *testing.T) {
		errs := RegisterRequest{Email: "not-an-email", Password: "short"}.Validate()
		require.Equal(t, map[string]string{
			"email":    "Invalid email format",
			"password": "Password must be at least 8 characters",
			"fullName": "Full name is required",
		}, errs)
	})

	t.Run("blank fields", func(t *testing.T) {
		errs := RegisterRequest{}.Validate()
		require.Equal(t, "Email is required", errs["email"])
		require.Equal(t, "Password is required", errs["password"])
		require.Equal(t, "Full name is required", errs["fullName"])
	})
}

func TestOtherRequests_Validate(t *testing.T) {
	require.Nil(t, LoginRequest{Email: "a@b.co", Password: "x"}.Validate())
	require.Contains(t, LoginRequest{Email: "a@b.co"}.Validate(), "password")

	require.Nil(t, ForgotPasswordRequest{Email: "a@b.co"}.Validate())
	require.Equal(t, "Invalid email format", ForgotPasswordRequest{Email: "nope"}.Validate()["email"])

	errs := ResetPasswordRequest{NewPassword: "short"}.Validate()
	require.Equal(t, "Token is required", errs["token"])
	require.Equal(t, "Password must be at least 8 characters", errs["newPassword"])

	errs = ChangePasswordRequest{}.Validate()
	require.Len(t, errs, 2)
	require.Equal(t, "Current password is required", errs["currentPassword"])

	require.Equal(t, "Full name is required", UpdateProfileRequest{Phone: "+61412345678"}.Validate()["fullName"])
	require.Equal(t, "Business name is required", MerchantRequest{}.Validate()["businessName"])
	require.Nil(t, MerchantRequest{BusinessName: "Shop"}.Validate())
}
