package accountsdk

import (
	"time"

	"github.com/flowmerce/accounts/pkg/jwtx"
)

// ============================================================================
// Auth
// ============================================================================

// RegisterRequest creates a new account. Role defaults to BUYER.
type RegisterRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"Passw0rd!"`
	FullName string `json:"fullName" example:"Alice Example"`
	Phone    string `json:"phone,omitempty" example:"+61412345678"`
	Role     string `json:"role,omitempty" example:"BUYER" enums:"ADMIN,MERCHANT,BUYER,GUEST"`
}

// LoginRequest exchanges credentials for a bearer token.
type LoginRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"Passw0rd!"`
}

// LoginResponse carries the session bearer token.
type LoginResponse struct {
	Token     string `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
	TokenType string `json:"token_type" example:"Bearer"`

	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn int64 `json:"expires_in" example:"86400"`
}

// ForgotPasswordRequest asks for a reset link to be mailed.
type ForgotPasswordRequest struct {
	Email string `json:"email" example:"alice@example.com"`
}

// ResetPasswordRequest redeems a reset link.
type ResetPasswordRequest struct {
	Token       string `json:"token" example:"q4k1Yc3p..."`
	NewPassword string `json:"newPassword" example:"N3wPassw0rd!"`
}

// ============================================================================
// Users
// ============================================================================

// UpdateProfileRequest replaces the caller's name and, when given, phone.
type UpdateProfileRequest struct {
	FullName string `json:"fullName" example:"Alice Example"`
	Phone    string `json:"phone,omitempty" example:"+61412345678"`
}

// ChangePasswordRequest replaces the caller's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" example:"Passw0rd!"`
	NewPassword     string `json:"newPassword" example:"N3wPassw0rd!"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	UserID       string    `json:"userId" example:"01HZX3J8Q4T1K9V5N2M7C6B0AD"`
	Email        string    `json:"email" example:"alice@example.com"`
	FullName     string    `json:"fullName" example:"Alice Example"`
	Phone        string    `json:"phone,omitempty" example:"+61412345678"`
	Role         string    `json:"role" example:"BUYER"`
	IsMFAEnabled bool      `json:"isMfaEnabled" example:"false"`
	CreatedAt    time.Time `json:"createdAt" example:"2026-01-02T03:04:05Z"`
}

// ============================================================================
// Merchants
// ============================================================================

// MerchantRequest opens a merchant profile for the caller.
type MerchantRequest struct {
	BusinessName string `json:"businessName" example:"Alice's Shop"`
}

// MerchantResponse is the public view of a merchant profile.
type MerchantResponse struct {
	MerchantID   string `json:"merchantId" example:"01HZX3M2A7R8S9T0U1V2W3X4YZ"`
	UserID       string `json:"userId" example:"01HZX3J8Q4T1K9V5N2M7C6B0AD"`
	BusinessName string `json:"businessName" example:"Alice's Shop"`
	IsVerified   bool   `json:"isVerified" example:"false"`
	Email        string `json:"email" example:"alice@example.com"`
	FullName     string `json:"fullName" example:"Alice Example"`
}

// ============================================================================
// Common
// ============================================================================

// MessageResponse is returned by endpoints that only report an outcome.
type MessageResponse struct {
	Message string `json:"message" example:"Logged out successfully."`
}

// ErrorResponse is the error envelope of every failing endpoint. Fields is
// only set for validation failures.
type ErrorResponse struct {
	Status    int               `json:"status" example:"400"`
	Error     string            `json:"error" example:"Bad Request"`
	Message   string            `json:"message" example:"Validation failed"`
	Path      string            `json:"path" example:"/api/auth/register"`
	Timestamp time.Time         `json:"timestamp" example:"2026-01-02T03:04:05Z"`
	Fields    map[string]string `json:"fields,omitempty"`
}

// HealthResponse is returned by /livez and /readyz. Checks is only set by
// /readyz.
type HealthResponse struct {
	Status  string        `json:"status" example:"ok"`
	Uptime  string        `json:"uptime,omitempty" example:"1h23m45s"`
	Version string        `json:"version,omitempty" example:"v0.1.0"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the status of critical dependencies.
type HealthChecks struct {
	Database string `json:"database" example:"ok"`
	Signer   string `json:"signer" example:"ok"`
}

// JWKSResponse is the public key set. It is empty when tokens are signed
// with a shared secret.
type JWKSResponse jwtx.JWKS
