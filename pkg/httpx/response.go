package httpx

import (
	"encoding/json"
	"net/http"
	"time"
)

// ErrorBody is the uniform error envelope every failing endpoint returns.
type ErrorBody struct {
	Status    int               `json:"status"`
	Error     string            `json:"error"`
	Message   string            `json:"message"`
	Path      string            `json:"path"`
	Timestamp time.Time         `json:"timestamp"`
	Fields    map[string]string `json:"fields,omitempty"`
}

// MessageBody is the success body for endpoints that only report an outcome.
type MessageBody struct {
	Message string `json:"message"`
}

// InternalErrorMessage is what callers see for any unclassified failure.
const InternalErrorMessage = "An unexpected error occurred. Please try again later."

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteMessage writes a 200 with a MessageBody.
func WriteMessage(w http.ResponseWriter, msg string) {
	WriteJSON(w, http.StatusOK, MessageBody{Message: msg})
}

// WriteError writes the error envelope for status with the given message.
func WriteError(w http.ResponseWriter, r *http.Request, status int, message string) {
	WriteJSON(w, status, ErrorBody{
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Path:      r.URL.Path,
		Timestamp: time.Now().UTC(),
	})
}

// WriteValidationError writes a 400 envelope carrying every failing field.
func WriteValidationError(w http.ResponseWriter, r *http.Request, fields map[string]string) {
	WriteJSON(w, http.StatusBadRequest, ErrorBody{
		Status:    http.StatusBadRequest,
		Error:     http.StatusText(http.StatusBadRequest),
		Message:   "Validation failed",
		Path:      r.URL.Path,
		Timestamp: time.Now().UTC(),
		Fields:    fields,
	})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// This is commonly required for sensitive responses like tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// MaxBodyBytes caps JSON request bodies.
const MaxBodyBytes = 1 << 20

// DecodeJSON reads a JSON request body into v, rejecting unknown fields.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
