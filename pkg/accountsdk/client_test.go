package accountsdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_LoginAndProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/auth/login":
			var req LoginRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "alice@example.com", req.Email)
			_ = json.NewEncoder(w).Encode(LoginResponse{Token: "tok", TokenType: "Bearer", ExpiresIn: 86400})
		case "/api/users/me":
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode(UserResponse{UserID: "u1", Email: "alice@example.com", Role: "BUYER"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	c := NewClient(srv.URL + "/")

	s, err := c.Login(ctx, "alice@example.com", "Passw0rd!")
	require.NoError(t, err)
	require.Equal(t, "tok", s.Token())
	require.EqualValues(t, 86400, s.ExpiresIn())

	me, err := s.Profile(ctx)
	require.NoError(t, err)
	require.Equal(t, "u1", me.UserID)
	require.Equal(t, "BUYER", me.Role)
}

func TestClient_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(ErrorResponse{
			Status:  http.StatusConflict,
			Error:   "Conflict",
			Message: "Email is already registered: alice@example.com",
			Path:    r.URL.Path,
		})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Register(context.Background(), RegisterRequest{Email: "alice@example.com"})
	require.Error(t, err)
	require.True(t, IsStatus(err, http.StatusConflict))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "Email is already registered: alice@example.com", apiErr.Message)
	require.Equal(t, "/api/auth/register", apiErr.Path)
}

func TestClient_NonEnvelopeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetLiveness(context.Background())
	require.True(t, IsStatus(err, http.StatusBadGateway))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "upstream unavailable", apiErr.Message)
	require.Equal(t, "/livez", apiErr.Path)
}

func TestClient_ActivateEscapesToken(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query().Get("token")
		_ = json.NewEncoder(w).Encode(MessageResponse{Message: "ok"})
	}))
	defer srv.Close()

	msg, err := NewClient(srv.URL).Activate(context.Background(), "a+b/c=")
	require.NoError(t, err)
	require.Equal(t, "ok", msg)
	require.Equal(t, "a+b/c=", got)
}
