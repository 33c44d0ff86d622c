package http

import (
	"errors"
	"net/http"

	"github.com/flowmerce/accounts/internal/accounts/service"
	"github.com/flowmerce/accounts/pkg/httpx"
	"github.com/flowmerce/accounts/pkg/phonex"
	"github.com/flowmerce/accounts/pkg/slogx"
)

// writeServiceError maps a service error onto the error envelope. Errors
// without a kind are logged and reported as a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var se *service.Error
	if errors.As(err, &se) {
		httpx.WriteError(w, r, statusFor(se.Kind), se.Message)
		return
	}

	slogx.FromContext(r.Context()).Error("request failed", "err", err)
	httpx.WriteError(w, r, http.StatusInternalServerError, httpx.InternalErrorMessage)
}

func statusFor(kind error) int {
	switch kind {
	case service.ErrBadRequest:
		return http.StatusBadRequest
	case service.ErrUnauthorized:
		return http.StatusUnauthorized
	case service.ErrForbidden:
		return http.StatusForbidden
	case service.ErrNotFound:
		return http.StatusNotFound
	case service.ErrConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// validator is implemented by the request bodies in accountsdk.
type validator interface {
	Validate() map[string]string
}

// fieldCheck adds server side field errors that the request type cannot
// check on its own.
type fieldCheck func(fields map[string]string)

// decodeRequest decodes the JSON body into v and validates it. On failure the
// response has been written and false is returned.
func decodeRequest(w http.ResponseWriter, r *http.Request, v validator, checks ...fieldCheck) bool {
	if err := httpx.DecodeJSON(r, v); err != nil {
		slogx.FromContext(r.Context()).Debug("malformed request body", "err", err)
		httpx.WriteError(w, r, http.StatusBadRequest, "Malformed request body")
		return false
	}

	fields := v.Validate()
	if fields == nil {
		fields = make(map[string]string)
	}
	for _, check := range checks {
		check(fields)
	}
	if len(fields) > 0 {
		httpx.WriteValidationError(w, r, fields)
		return false
	}
	return true
}

// phoneCheck rewrites *phone to E.164 in place, or records a field error.
func phoneCheck(phone *string, region string) fieldCheck {
	return func(fields map[string]string) {
		normalized, err := phonex.Normalize(*phone, region)
		if err != nil {
			fields["phone"] = "Invalid phone format"
			return
		}
		*phone = normalized
	}
}
