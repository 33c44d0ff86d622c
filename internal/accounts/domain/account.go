package domain

import "time"

type Account struct {
	ID           string
	Email        string // unique, compared as stored
	PasswordHash string // argon2id PHC string
	FullName     string
	Phone        string // E.164, empty when not provided
	Role         Role
	MFAEnabled   bool       // reported only, never enforced
	ActivatedAt  *time.Time // nil until the activation token is consumed
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Activated reports whether the account has consumed its activation token.
func (a Account) Activated() bool { return a.ActivatedAt != nil }
