package accountsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Session performs requests on behalf of a logged in account. Tokens are not
// refreshed; log in again once a session ends.
type Session struct {
	client    *Client
	token     string
	expiresIn int64
}

// Token returns the bearer token.
func (s *Session) Token() string { return s.token }

// ExpiresIn returns the token lifetime in seconds reported at login, or 0
// for sessions built with NewSession.
func (s *Session) ExpiresIn() int64 { return s.expiresIn }

// Logout revokes this session's token.
func (s *Session) Logout(ctx context.Context) (string, error) {
	return s.client.message(ctx, http.MethodPost, "/api/auth/logout", s.token, nil)
}

// ============================================================================
// Profile
// ============================================================================

// Profile returns the caller's account.
func (s *Session) Profile(ctx context.Context) (*UserResponse, error) {
	var out UserResponse
	if err := s.client.call(ctx, http.MethodGet, "/api/users/me", s.token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile replaces the caller's name and, when non-empty, phone.
func (s *Session) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*UserResponse, error) {
	var out UserResponse
	if err := s.client.call(ctx, http.MethodPut, "/api/users/me", s.token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword replaces the password. Every session of the account,
// including this one, is revoked.
func (s *Session) ChangePassword(ctx context.Context, current, newPassword string) (string, error) {
	return s.client.message(ctx, http.MethodPut, "/api/users/me/change-password", s.token,
		ChangePasswordRequest{CurrentPassword: current, NewPassword: newPassword})
}

// DeleteAccount deletes the caller's account.
func (s *Session) DeleteAccount(ctx context.Context) (string, error) {
	return s.client.message(ctx, http.MethodDelete, "/api/users/me", s.token, nil)
}

// ============================================================================
// Merchant
// ============================================================================

// CreateMerchant opens a merchant profile and upgrades the account to
// MERCHANT.
func (s *Session) CreateMerchant(ctx context.Context, businessName string) (*MerchantResponse, error) {
	var out MerchantResponse
	err := s.client.call(ctx, http.MethodPost, "/api/merchants/me", s.token,
		MerchantRequest{BusinessName: businessName}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Merchant returns the caller's merchant profile.
func (s *Session) Merchant(ctx context.Context) (*MerchantResponse, error) {
	var out MerchantResponse
	if err := s.client.call(ctx, http.MethodGet, "/api/merchants/me", s.token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteMerchantAccount deletes the caller's merchant profile and account.
func (s *Session) DeleteMerchantAccount(ctx context.Context) (string, error) {
	return s.client.message(ctx, http.MethodDelete, "/api/merchants/me", s.token, nil)
}

// ============================================================================
// Admin (requires the ADMIN role)
// ============================================================================

// ListUsers returns every account.
func (s *Session) ListUsers(ctx context.Context) ([]UserResponse, error) {
	var out []UserResponse
	if err := s.client.call(ctx, http.MethodGet, "/api/admin/users", s.token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteUser deletes an account by id.
func (s *Session) DeleteUser(ctx context.Context, userID string) (string, error) {
	return s.client.message(ctx, http.MethodDelete, "/api/admin/users/"+url.PathEscape(userID), s.token, nil)
}

// ListMerchants returns every merchant profile.
func (s *Session) ListMerchants(ctx context.Context) ([]MerchantResponse, error) {
	var out []MerchantResponse
	if err := s.client.call(ctx, http.MethodGet, "/api/admin/merchants", s.token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// VerifyMerchant marks a merchant as verified.
func (s *Session) VerifyMerchant(ctx context.Context, merchantID string) (*MerchantResponse, error) {
	var out MerchantResponse
	path := "/api/admin/merchants/" + url.PathEscape(merchantID) + "/verify"
	if err := s.client.call(ctx, http.MethodPut, path, s.token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteMerchant deletes a merchant and its owning account.
func (s *Session) DeleteMerchant(ctx context.Context, merchantID string) (string, error) {
	return s.client.message(ctx, http.MethodDelete, "/api/admin/merchants/"+url.PathEscape(merchantID), s.token, nil)
}
