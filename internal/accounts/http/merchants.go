package http

import (
	"net/http"

	"github.com/flowmerce/accounts/internal/accounts/service"
	"github.com/flowmerce/accounts/pkg/accountsdk"
	"github.com/flowmerce/accounts/pkg/httpx"
)

type MerchantsHandler struct {
	MerchantService *service.MerchantService
}

// HandleCreate godoc
//
//	@Summary		Create my merchant profile
//	@Description	Open a merchant profile for the caller and upgrade the account to MERCHANT.
//	@Tags			Merchants
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		accountsdk.MerchantRequest	true	"Business details"
//	@Success		200		{object}	accountsdk.MerchantResponse
//	@Failure		400		{object}	accountsdk.ErrorResponse	"Validation failed"
//	@Failure		409		{object}	accountsdk.ErrorResponse	"Profile already exists"
//	@Router			/api/merchants/me [post].
func (h *MerchantsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.MerchantRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	id, _ := httpx.AccountID(r.Context())

	m, err := h.MerchantService.CreateProfile(r.Context(), id, req.BusinessName)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toMerchantResponse(m))
}

// HandleGetMe godoc
//
//	@Summary		Get my merchant profile
//	@Tags			Merchants
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	accountsdk.MerchantResponse
//	@Failure		404	{object}	accountsdk.ErrorResponse	"Merchant profile not found"
//	@Router			/api/merchants/me [get].
func (h *MerchantsHandler) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	id, _ := httpx.AccountID(r.Context())

	m, err := h.MerchantService.Profile(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toMerchantResponse(m))
}

// HandleDeleteMe godoc
//
//	@Summary		Delete my merchant account
//	@Description	Delete the caller's merchant profile and account, revoking every session.
//	@Tags			Merchants
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	accountsdk.MessageResponse
//	@Failure		404	{object}	accountsdk.ErrorResponse	"Merchant profile not found"
//	@Router			/api/merchants/me [delete].
func (h *MerchantsHandler) HandleDeleteMe(w http.ResponseWriter, r *http.Request) {
	id, _ := httpx.AccountID(r.Context())

	msg, err := h.MerchantService.DeleteOwnAccount(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteMessage(w, msg)
}

// HandleList godoc
//
//	@Summary		List merchants
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		accountsdk.MerchantResponse
//	@Failure		403	{object}	accountsdk.ErrorResponse
//	@Router			/api/admin/merchants [get].
func (h *MerchantsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	merchants, err := h.MerchantService.ListMerchants(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]accountsdk.MerchantResponse, 0, len(merchants))
	for _, m := range merchants {
		out = append(out, toMerchantResponse(m))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleVerify godoc
//
//	@Summary		Verify merchant
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Merchant ID"
//	@Success		200	{object}	accountsdk.MerchantResponse
//	@Failure		403	{object}	accountsdk.ErrorResponse
//	@Failure		404	{object}	accountsdk.ErrorResponse
//	@Router			/api/admin/merchants/{id}/verify [put].
func (h *MerchantsHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	m, err := h.MerchantService.Verify(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toMerchantResponse(m))
}

// HandleDelete godoc
//
//	@Summary		Delete merchant
//	@Description	Delete a merchant and its owning account.
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Merchant ID"
//	@Success		200	{object}	accountsdk.MessageResponse
//	@Failure		403	{object}	accountsdk.ErrorResponse
//	@Failure		404	{object}	accountsdk.ErrorResponse
//	@Router			/api/admin/merchants/{id} [delete].
func (h *MerchantsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	msg, err := h.MerchantService.DeleteMerchant(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteMessage(w, msg)
}
