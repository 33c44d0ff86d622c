package http

import (
	"net/http"

	"github.com/flowmerce/accounts/internal/accounts/service"
	"github.com/flowmerce/accounts/pkg/accountsdk"
	"github.com/flowmerce/accounts/pkg/httpx"
)

type AuthHandler struct {
	AuthService *service.AuthService
	PhoneRegion string
}

// HandleRegister godoc
//
//	@Summary		Register
//	@Description	Create a BUYER (or the requested role) account and email an activation link.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.RegisterRequest	true	"Account details"
//	@Success		200		{object}	accountsdk.MessageResponse
//	@Failure		400		{object}	accountsdk.ErrorResponse	"Validation failed or invalid role"
//	@Failure		409		{object}	accountsdk.ErrorResponse	"Email already registered"
//	@Failure		429		{object}	accountsdk.ErrorResponse
//	@Router			/api/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.RegisterRequest
	if !decodeRequest(w, r, &req, phoneCheck(&req.Phone, h.PhoneRegion)) {
		return
	}

	msg, err := h.AuthService.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		Role:     req.Role,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteMessage(w, msg)
}

// HandleActivate godoc
//
//	@Summary		Activate account
//	@Description	Redeem the activation link sent at registration. Each token works once.
//	@Tags			Auth
//	@Produce		json
//	@Param			token	query		string	true	"Activation token"
//	@Success		200		{object}	accountsdk.MessageResponse
//	@Failure		400		{object}	accountsdk.ErrorResponse	"Invalid or expired activation token"
//	@Router			/api/auth/activate [get].
func (h *AuthHandler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	msg, err := h.AuthService.Activate(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteMessage(w, msg)
}

// HandleLogin godoc
//
//	@Summary		Login
//	@Description	Exchange email and password for a session token valid for 24 hours.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	accountsdk.LoginResponse
//	@Failure		400		{object}	accountsdk.ErrorResponse	"Validation failed"
//	@Failure		401		{object}	accountsdk.ErrorResponse	"Invalid email or password"
//	@Failure		429		{object}	accountsdk.ErrorResponse
//	@Router			/api/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.LoginRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	res, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, accountsdk.LoginResponse{
		Token:     res.Token,
		TokenType: res.TokenType,
		ExpiresIn: res.ExpiresIn,
	})
}

// HandleLogout godoc
//
//	@Summary		Logout
//	@Description	Revoke the presented session token. A token that is unknown or already revoked is rejected.
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	accountsdk.MessageResponse
//	@Failure		400	{object}	accountsdk.ErrorResponse	"Token is already revoked or does not exist"
//	@Router			/api/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	token, _ := httpx.ExtractBearer(r)

	msg, err := h.AuthService.Logout(r.Context(), token)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteMessage(w, msg)
}

// HandleForgotPassword godoc
//
//	@Summary		Forgot password
//	@Description	Email a password reset link. The response is identical whether or not the email is registered.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.ForgotPasswordRequest	true	"Account email"
//	@Success		200		{object}	accountsdk.MessageResponse
//	@Failure		400		{object}	accountsdk.ErrorResponse	"Validation failed"
//	@Failure		429		{object}	accountsdk.ErrorResponse
//	@Router			/api/auth/forgot-password [post].
func (h *AuthHandler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.ForgotPasswordRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	httpx.WriteMessage(w, h.AuthService.ForgotPassword(r.Context(), req.Email))
}

// HandleResetPassword godoc
//
//	@Summary		Reset password
//	@Description	Redeem a reset link, set a new password and revoke every session of the account.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.ResetPasswordRequest	true	"Reset token and new password"
//	@Success		200		{object}	accountsdk.MessageResponse
//	@Failure		400		{object}	accountsdk.ErrorResponse	"Validation failed or invalid token"
//	@Failure		404		{object}	accountsdk.ErrorResponse	"Account no longer exists"
//	@Router			/api/auth/reset-password [post].
func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.ResetPasswordRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	msg, err := h.AuthService.ResetPassword(r.Context(), req.Token, req.NewPassword)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteMessage(w, msg)
}
