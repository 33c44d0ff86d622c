package gen

import (
	"database/sql"
	"time"
)

type Account struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	Phone        sql.NullString
	Role         string
	MfaEnabled   bool
	ActivatedAt  sql.NullTime
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Session struct {
	ID        string
	AccountID string
	TokenHash string
	Revoked   bool
	CreatedAt time.Time
	ExpiresAt time.Time
}

type OneTimeToken struct {
	TokenHash string
	Kind      string
	Email     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

type Merchant struct {
	ID           string
	AccountID    string
	BusinessName string
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MerchantProfileRow is a merchant joined with its owning account.
type MerchantProfileRow struct {
	ID           string
	AccountID    string
	BusinessName string
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Email        string
	FullName     string
}
