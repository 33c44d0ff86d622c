package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/flowmerce/accounts/internal/accounts/domain"
	"github.com/flowmerce/accounts/internal/accounts/store"
	"github.com/flowmerce/accounts/pkg/idx"
	"github.com/flowmerce/accounts/pkg/slogx"
)

const (
	MsgMerchantAccountDeleted = "Merchant account deleted successfully."
	MsgMerchantDeleted        = "Merchant deleted successfully."
)

// MerchantService manages merchant profiles. Creating a profile upgrades the
// owning account to MERCHANT.
type MerchantService struct {
	Store       store.Store
	Credentials *CredentialStore
	Sessions    *SessionManager
	Now         func() time.Time
}

// CreateProfile opens a merchant profile for the account and upgrades its
// role in the same transaction.
func (s *MerchantService) CreateProfile(ctx context.Context, accountID, businessName string) (domain.MerchantProfile, error) {
	var profile domain.MerchantProfile
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		creds := s.Credentials.With(tx)
		if _, err := creds.FindByID(ctx, accountID); err != nil {
			return err
		}

		now := time.Now().UTC()
		if s.Now != nil {
			now = s.Now().UTC()
		}
		m := domain.Merchant{
			ID:           idx.NewAt(now).String(),
			AccountID:    accountID,
			BusinessName: businessName,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.Merchants().CreateMerchant(ctx, m); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return newError(ErrConflict, "Merchant profile already exists for this user")
			}
			return err
		}

		if err := creds.UpgradeRole(ctx, accountID, domain.RoleMerchant); err != nil {
			return err
		}

		var err error
		profile, err = tx.Merchants().GetMerchantByID(ctx, m.ID)
		return err
	})
	if err != nil {
		return domain.MerchantProfile{}, err
	}

	slogx.FromContext(ctx).Info("merchant profile created",
		slog.String("account_id", accountID),
		slog.String("merchant_id", profile.ID),
	)
	return profile, nil
}

// Profile returns the caller's merchant profile.
func (s *MerchantService) Profile(ctx context.Context, accountID string) (domain.MerchantProfile, error) {
	m, err := s.Store.Merchants().GetMerchantByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.MerchantProfile{}, newError(ErrNotFound, "Merchant profile not found")
		}
		return domain.MerchantProfile{}, err
	}
	return m, nil
}

// DeleteOwnAccount removes the caller's merchant profile, sessions and
// account. Callers without a merchant profile get NotFound.
func (s *MerchantService) DeleteOwnAccount(ctx context.Context, accountID string) (string, error) {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Merchants().GetMerchantByAccountID(ctx, accountID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return newError(ErrNotFound, "Merchant profile not found")
			}
			return err
		}
		return removeAccount(ctx, tx, s.Credentials.With(tx), s.Sessions.With(tx), accountID)
	})
	if err != nil {
		return "", err
	}
	slogx.FromContext(ctx).Info("merchant account deleted", slog.String("account_id", accountID))
	return MsgMerchantAccountDeleted, nil
}

// ListMerchants returns every merchant profile, oldest first.
func (s *MerchantService) ListMerchants(ctx context.Context) ([]domain.MerchantProfile, error) {
	return s.Store.Merchants().ListMerchants(ctx)
}

// Verify marks a merchant as verified.
func (s *MerchantService) Verify(ctx context.Context, merchantID string) (domain.MerchantProfile, error) {
	if err := s.Store.Merchants().VerifyMerchant(ctx, merchantID); err != nil {
		return domain.MerchantProfile{}, mapMerchantErr(err, merchantID)
	}
	m, err := s.Store.Merchants().GetMerchantByID(ctx, merchantID)
	if err != nil {
		return domain.MerchantProfile{}, mapMerchantErr(err, merchantID)
	}
	return m, nil
}

// DeleteMerchant removes a merchant and its owning account by merchant id.
func (s *MerchantService) DeleteMerchant(ctx context.Context, merchantID string) (string, error) {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		m, err := tx.Merchants().GetMerchantByID(ctx, merchantID)
		if err != nil {
			return mapMerchantErr(err, merchantID)
		}
		return removeAccount(ctx, tx, s.Credentials.With(tx), s.Sessions.With(tx), m.AccountID)
	})
	if err != nil {
		return "", err
	}
	slogx.FromContext(ctx).Info("merchant deleted", slog.String("merchant_id", merchantID))
	return MsgMerchantDeleted, nil
}

func mapMerchantErr(err error, id string) error {
	if errors.Is(err, store.ErrNotFound) {
		return newError(ErrNotFound, "Merchant not found with id: %s", id)
	}
	return err
}
