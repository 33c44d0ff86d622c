package service

import (
	"context"

	"github.com/flowmerce/accounts/internal/accounts/domain"
)

// UserService serves profile reads and edits plus the admin listing.
type UserService struct {
	Credentials *CredentialStore
}

// Profile returns the caller's account.
func (s *UserService) Profile(ctx context.Context, accountID string) (domain.Account, error) {
	return s.Credentials.FindByID(ctx, accountID)
}

// UpdateProfile replaces the display name and, when given, the phone.
func (s *UserService) UpdateProfile(ctx context.Context, accountID, fullName, phone string) (domain.Account, error) {
	return s.Credentials.UpdateProfile(ctx, accountID, fullName, phone)
}

// ListUsers returns every account, oldest first.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.Account, error) {
	return s.Credentials.ListAll(ctx)
}
