package accountsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the accounts service.
type APIError struct {
	ErrorResponse
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for field, msg := range e.Fields {
			parts = append(parts, field+": "+msg)
		}
		return fmt.Sprintf("%d %s: %s (%s)", e.Status, e.ErrorResponse.Error, e.Message, strings.Join(parts, ", "))
	}
	return fmt.Sprintf("%d %s: %s", e.Status, e.ErrorResponse.Error, e.Message)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// parseErrorResponse builds an APIError from a failed response. Bodies that
// are not the service envelope, e.g. from a proxy, keep the status code.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{}
	if err := json.Unmarshal(body, &apiErr.ErrorResponse); err != nil || apiErr.Status == 0 {
		apiErr.ErrorResponse = ErrorResponse{
			Status:  resp.StatusCode,
			Error:   http.StatusText(resp.StatusCode),
			Message: strings.TrimSpace(string(body)),
			Path:    resp.Request.URL.Path,
		}
	}
	return apiErr
}
