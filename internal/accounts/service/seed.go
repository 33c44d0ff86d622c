package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/flowmerce/accounts/internal/accounts/domain"
	"github.com/flowmerce/accounts/internal/accounts/store"
	"github.com/flowmerce/accounts/pkg/cryptox"
	"github.com/flowmerce/accounts/pkg/slogx"
)

// SeedService makes sure an administrator exists at startup.
type SeedService struct {
	Store       store.Store
	Credentials *CredentialStore
}

// SeedResult reports what SeedAdmin did. GeneratedPassword is set only when
// the account was created without a configured password.
type SeedResult struct {
	AccountID         string
	Created           bool
	GeneratedPassword string
}

// SeedAdmin creates an activated ADMIN account for email, or promotes the
// existing account to ADMIN. An empty password is replaced by a generated one.
func (s *SeedService) SeedAdmin(ctx context.Context, email, password string) (SeedResult, error) {
	l := slogx.FromContext(ctx)
	if email == "" {
		return SeedResult{}, errors.New("seed admin: email is required")
	}

	var res SeedResult
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		creds := s.Credentials.With(tx)

		existing, err := tx.Accounts().GetAccountByEmail(ctx, email)
		switch {
		case err == nil:
			res.AccountID = existing.ID
			if existing.Role == domain.RoleAdmin {
				return nil
			}
			return creds.UpgradeRole(ctx, existing.ID, domain.RoleAdmin)
		case !errors.Is(err, store.ErrNotFound):
			return err
		}

		if password == "" {
			password, err = cryptox.GeneratePassword()
			if err != nil {
				return fmt.Errorf("generate admin password: %w", err)
			}
			res.GeneratedPassword = password
		}

		a, err := creds.Create(ctx, NewAccount{
			Email:    email,
			Password: password,
			FullName: "Administrator",
			Role:     domain.RoleAdmin,
		})
		if err != nil {
			return err
		}
		if _, err := creds.MarkActivated(ctx, email); err != nil {
			return err
		}
		res.AccountID = a.ID
		res.Created = true
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}

	l.Info("admin account ensured", slog.String("account_id", res.AccountID), slog.Bool("created", res.Created))
	return res, nil
}
