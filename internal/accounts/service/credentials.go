package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flowmerce/accounts/internal/accounts/domain"
	"github.com/flowmerce/accounts/internal/accounts/store"
	"github.com/flowmerce/accounts/pkg/cryptox"
	"github.com/flowmerce/accounts/pkg/idx"
)

// CredentialStore owns account identity, password hashes and roles.
type CredentialStore struct {
	Store store.Store
	Now   func() time.Time
}

// With returns a copy bound to s, typically a transaction.
func (c *CredentialStore) With(s store.Store) *CredentialStore {
	cp := *c
	cp.Store = s
	return &cp
}

func (c *CredentialStore) now() time.Time {
	if c.Now != nil {
		return c.Now().UTC()
	}
	return time.Now().UTC()
}

// NewAccount is the input to Create. Phone must already be normalised.
type NewAccount struct {
	Email    string
	Password string
	FullName string
	Phone    string
	Role     domain.Role
}

// Create hashes the password and inserts the account. The UNIQUE(email)
// constraint decides duplicates, so a racing insert also ends in ErrConflict.
func (c *CredentialStore) Create(ctx context.Context, in NewAccount) (domain.Account, error) {
	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.Account{}, fmt.Errorf("hash password: %w", err)
	}

	role := in.Role
	if role == "" {
		role = domain.DefaultRole
	}

	now := c.now()
	a := domain.Account{
		ID:           idx.New().String(),
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     in.FullName,
		Phone:        in.Phone,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := c.Store.Accounts().CreateAccount(ctx, a); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Account{}, newError(ErrConflict, "Email is already registered: %s", in.Email)
		}
		return domain.Account{}, err
	}
	return a, nil
}

// VerifyPassword reports whether plain matches the stored hash for email. An
// unknown email still burns one hash comparison and reports false, so neither
// the result nor the latency reveals whether the account exists.
func (c *CredentialStore) VerifyPassword(ctx context.Context, email, plain string) (domain.Account, bool, error) {
	a, err := c.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			cryptox.VerifyDummy(plain)
			return domain.Account{}, false, nil
		}
		return domain.Account{}, false, err
	}

	switch err := cryptox.VerifyPassword(plain, a.PasswordHash); {
	case err == nil:
		return a, true, nil
	case errors.Is(err, cryptox.ErrPasswordMismatch):
		return domain.Account{}, false, nil
	default:
		return domain.Account{}, false, err
	}
}

// ChangePassword re-hashes and replaces the password. Revoking the account's
// sessions is the caller's job, in the same transaction.
func (c *CredentialStore) ChangePassword(ctx context.Context, accountID, newPlain string) error {
	hash, err := cryptox.HashPassword(newPlain)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := c.Store.Accounts().UpdatePasswordHash(ctx, accountID, hash); err != nil {
		return c.mapAccountErr(err, accountID)
	}
	return nil
}

func (c *CredentialStore) FindByEmail(ctx context.Context, email string) (domain.Account, error) {
	a, err := c.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, newError(ErrNotFound, "User not found with email: %s", email)
		}
		return domain.Account{}, err
	}
	return a, nil
}

func (c *CredentialStore) FindByID(ctx context.Context, id string) (domain.Account, error) {
	a, err := c.Store.Accounts().GetAccountByID(ctx, id)
	if err != nil {
		return domain.Account{}, c.mapAccountErr(err, id)
	}
	return a, nil
}

func (c *CredentialStore) ListAll(ctx context.Context) ([]domain.Account, error) {
	return c.Store.Accounts().ListAccounts(ctx)
}

// Delete removes the account row. Sessions cascade; a merchant profile must
// be removed first.
func (c *CredentialStore) Delete(ctx context.Context, id string) error {
	if err := c.Store.Accounts().DeleteAccount(ctx, id); err != nil {
		return c.mapAccountErr(err, id)
	}
	return nil
}

// UpgradeRole sets the role. Setting the current role again is a no-op.
func (c *CredentialStore) UpgradeRole(ctx context.Context, id string, role domain.Role) error {
	if !role.Valid() {
		return newError(ErrBadRequest, "%s", (&domain.InvalidRoleError{Value: string(role)}).Error())
	}
	if err := c.Store.Accounts().UpdateRole(ctx, id, role); err != nil {
		return c.mapAccountErr(err, id)
	}
	return nil
}

// UpdateProfile replaces the display name and, when phone is non-empty, the
// phone number.
func (c *CredentialStore) UpdateProfile(ctx context.Context, id, fullName, phone string) (domain.Account, error) {
	a, err := c.FindByID(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}
	if phone == "" {
		phone = a.Phone
	}
	if err := c.Store.Accounts().UpdateProfile(ctx, id, fullName, phone); err != nil {
		return domain.Account{}, c.mapAccountErr(err, id)
	}
	return c.FindByID(ctx, id)
}

// MarkActivated stamps the activation time. It reports false when the email
// no longer belongs to an account.
func (c *CredentialStore) MarkActivated(ctx context.Context, email string) (bool, error) {
	err := c.Store.Accounts().MarkActivated(ctx, email, c.now())
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, store.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (c *CredentialStore) mapAccountErr(err error, id string) error {
	if errors.Is(err, store.ErrNotFound) {
		return newError(ErrNotFound, "User not found with id: %s", id)
	}
	return err
}
