package accountsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Register creates an account. The activation link is emailed.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (string, error) {
	return c.message(ctx, http.MethodPost, "/api/auth/register", "", req)
}

// Activate redeems an activation token.
func (c *Client) Activate(ctx context.Context, token string) (string, error) {
	return c.message(ctx, http.MethodGet, "/api/auth/activate?token="+url.QueryEscape(token), "", nil)
}

// Login authenticates with email and password and returns a Session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var out LoginResponse
	err := c.call(ctx, http.MethodPost, "/api/auth/login", "", LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &Session{client: c, token: out.Token, expiresIn: out.ExpiresIn}, nil
}

// ForgotPassword requests a reset link. The response is the same whether or
// not the email is registered.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	return c.message(ctx, http.MethodPost, "/api/auth/forgot-password", "", ForgotPasswordRequest{Email: email})
}

// ResetPassword redeems a reset token and sets a new password.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	return c.message(ctx, http.MethodPost, "/api/auth/reset-password", "",
		ResetPasswordRequest{Token: token, NewPassword: newPassword})
}
