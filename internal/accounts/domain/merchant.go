package domain

import "time"

type Merchant struct {
	ID           string
	AccountID    string
	BusinessName string
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MerchantProfile joins a merchant with the owning account's public fields.
type MerchantProfile struct {
	Merchant
	Email    string
	FullName string
}
