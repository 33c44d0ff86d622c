package http

import (
	"net/http"

	"github.com/flowmerce/accounts/internal/accounts/service"
	"github.com/flowmerce/accounts/pkg/accountsdk"
	"github.com/flowmerce/accounts/pkg/httpx"
)

type UsersHandler struct {
	AuthService *service.AuthService
	UserService *service.UserService
	PhoneRegion string
}

// HandleGetMe godoc
//
//	@Summary		Get my profile
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	accountsdk.UserResponse
//	@Failure		401	{object}	accountsdk.ErrorResponse
//	@Router			/api/users/me [get].
func (h *UsersHandler) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	id, _ := httpx.AccountID(r.Context())

	a, err := h.UserService.Profile(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(a))
}

// HandleUpdateMe godoc
//
//	@Summary		Update my profile
//	@Description	Replace the full name and, when given, the phone number.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		accountsdk.UpdateProfileRequest	true	"Profile fields"
//	@Success		200		{object}	accountsdk.UserResponse
//	@Failure		400		{object}	accountsdk.ErrorResponse	"Validation failed"
//	@Failure		401		{object}	accountsdk.ErrorResponse
//	@Router			/api/users/me [put].
func (h *UsersHandler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.UpdateProfileRequest
	if !decodeRequest(w, r, &req, phoneCheck(&req.Phone, h.PhoneRegion)) {
		return
	}
	id, _ := httpx.AccountID(r.Context())

	a, err := h.UserService.UpdateProfile(r.Context(), id, req.FullName, req.Phone)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(a))
}

// HandleChangePassword godoc
//
//	@Summary		Change my password
//	@Description	Verify the current password, set a new one and revoke every session of the account.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		accountsdk.ChangePasswordRequest	true	"Current and new password"
//	@Success		200		{object}	accountsdk.MessageResponse
//	@Failure		400		{object}	accountsdk.ErrorResponse	"Validation failed"
//	@Failure		401		{object}	accountsdk.ErrorResponse	"Current password is incorrect"
//	@Router			/api/users/me/change-password [put].
func (h *UsersHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.ChangePasswordRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	id, _ := httpx.AccountID(r.Context())

	msg, err := h.AuthService.ChangePassword(r.Context(), id, req.CurrentPassword, req.NewPassword)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteMessage(w, msg)
}

// HandleDeleteMe godoc
//
//	@Summary		Delete my account
//	@Description	Delete the caller's account, its merchant profile if any, and revoke its sessions.
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	accountsdk.MessageResponse
//	@Failure		401	{object}	accountsdk.ErrorResponse
//	@Router			/api/users/me [delete].
func (h *UsersHandler) HandleDeleteMe(w http.ResponseWriter, r *http.Request) {
	id, _ := httpx.AccountID(r.Context())

	msg, err := h.AuthService.DeleteAccount(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteMessage(w, msg)
}

// HandleList godoc
//
//	@Summary		List users
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		accountsdk.UserResponse
//	@Failure		401	{object}	accountsdk.ErrorResponse
//	@Failure		403	{object}	accountsdk.ErrorResponse
//	@Router			/api/admin/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.UserService.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]accountsdk.UserResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toUserResponse(a))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleDelete godoc
//
//	@Summary		Delete user
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"User ID"
//	@Success		200	{object}	accountsdk.MessageResponse
//	@Failure		403	{object}	accountsdk.ErrorResponse
//	@Failure		404	{object}	accountsdk.ErrorResponse
//	@Router			/api/admin/users/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	msg, err := h.AuthService.AdminDeleteUser(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteMessage(w, msg)
}
