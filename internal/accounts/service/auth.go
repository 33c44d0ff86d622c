package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/flowmerce/accounts/internal/accounts/domain"
	"github.com/flowmerce/accounts/internal/accounts/store"
	"github.com/flowmerce/accounts/pkg/slogx"
)

// Messages returned by the workflows on success.
const (
	MsgRegistered      = "Registration successful. Please check your email to activate your account."
	MsgActivated       = "Account activated successfully. You can now log in."
	MsgLoggedOut       = "Logged out successfully."
	MsgForgotPassword  = "If this email is registered, a password reset link has been sent."
	MsgPasswordReset   = "Password reset successfully. Please log in again."
	MsgPasswordChanged = "Password changed successfully. Please log in again."
	MsgAccountDeleted  = "Account deleted successfully."
	MsgUserDeleted     = "User deleted successfully."
)

const (
	msgInvalidCredentials   = "Invalid email or password"
	msgInvalidActivation    = "Invalid or expired activation token."
	msgInvalidReset         = "Invalid or expired password reset token."
	msgTokenNotActive       = "Token is already revoked or does not exist."
	msgWrongCurrentPassword = "Current password is incorrect"
)

// Mailer hands activation and reset links to the mail subsystem. Calls return
// immediately; delivery failures are logged by the implementation.
type Mailer interface {
	SendActivationEmail(ctx context.Context, email, token string)
	SendPasswordResetEmail(ctx context.Context, email, token string)
}

// AuthService composes the credential store, token registry and session
// manager into the account lifecycle workflows.
type AuthService struct {
	Store       store.Store
	Credentials *CredentialStore
	Tokens      *TokenRegistry
	Sessions    *SessionManager
	Mailer      Mailer

	// RequireActivation rejects logins from accounts that never consumed
	// their activation token.
	RequireActivation bool
}

type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Phone    string
	Role     string
}

// Register creates the account and its activation token in one transaction,
// then queues the activation email.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, error) {
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return "", newError(ErrBadRequest, "%s", err.Error())
	}

	var (
		account domain.Account
		token   string
	)
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		account, err = s.Credentials.With(tx).Create(ctx, NewAccount{
			Email:    in.Email,
			Password: in.Password,
			FullName: in.FullName,
			Phone:    in.Phone,
			Role:     role,
		})
		if err != nil {
			return err
		}
		token, err = s.Tokens.With(tx).Issue(ctx, domain.TokenActivation, account.Email)
		return err
	})
	if err != nil {
		return "", err
	}

	slogx.FromContext(ctx).Info("account registered",
		slog.String("account_id", account.ID),
		slog.String("role", string(account.Role)),
	)
	s.Mailer.SendActivationEmail(ctx, account.Email, token)

	return MsgRegistered, nil
}

// Activate redeems an activation token and stamps the account.
func (s *AuthService) Activate(ctx context.Context, token string) (string, error) {
	email, err := s.Tokens.Consume(ctx, domain.TokenActivation, token)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			return "", newError(ErrBadRequest, msgInvalidActivation)
		}
		return "", err
	}

	ok, err := s.Credentials.MarkActivated(ctx, email)
	if err != nil {
		return "", err
	}
	if !ok {
		slogx.FromContext(ctx).Info("activation token redeemed for a deleted account")
	}
	return MsgActivated, nil
}

// Login checks the credentials and opens a new session. Unknown emails and
// wrong passwords fail identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.LoginResult, error) {
	a, ok, err := s.Credentials.VerifyPassword(ctx, email, password)
	if err != nil {
		return domain.LoginResult{}, err
	}
	if !ok || (s.RequireActivation && !a.Activated()) {
		return domain.LoginResult{}, newError(ErrUnauthorized, msgInvalidCredentials)
	}

	token, session, err := s.Sessions.Issue(ctx, a)
	if err != nil {
		return domain.LoginResult{}, err
	}

	slogx.FromContext(ctx).Info("session opened",
		slog.String("account_id", a.ID),
		slog.String("sid", session.ID),
	)
	return domain.LoginResult{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(session.ExpiresAt.Sub(session.CreatedAt).Seconds()),
	}, nil
}

// Logout revokes the session bound to token. A token that is not a live
// session is rejected.
func (s *AuthService) Logout(ctx context.Context, token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", newError(ErrBadRequest, msgTokenNotActive)
	}
	if err := s.Sessions.Revoke(ctx, token); err != nil {
		return "", err
	}
	return MsgLoggedOut, nil
}

// ForgotPassword always answers with the same message. A reset token is
// minted and stored whether or not the email belongs to an account, so both
// branches cost one lookup and one insert; only a registered account gets the
// link mailed.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) string {
	log := slogx.FromContext(ctx)

	_, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	registered := err == nil
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Error("password reset lookup failed", slog.Any("error", err))
		return MsgForgotPassword
	}

	token, err := s.Tokens.Issue(ctx, domain.TokenPasswordReset, email)
	if err != nil {
		log.Error("failed to issue password reset token", slog.Any("error", err))
		return MsgForgotPassword
	}
	if registered {
		s.Mailer.SendPasswordResetEmail(ctx, email, token)
	}

	return MsgForgotPassword
}

// ResetPassword redeems a reset token, replaces the password and revokes
// every session of the account in one transaction.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	email, err := s.Tokens.Consume(ctx, domain.TokenPasswordReset, token)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			return "", newError(ErrBadRequest, msgInvalidReset)
		}
		return "", err
	}

	a, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", newError(ErrNotFound, "User not found")
		}
		return "", err
	}

	if err := s.replacePassword(ctx, a.ID, newPassword); err != nil {
		return "", err
	}

	slogx.FromContext(ctx).Info("password reset", slog.String("account_id", a.ID))
	return MsgPasswordReset, nil
}

// ChangePassword verifies the current password, then replaces it and revokes
// every session of the account in one transaction.
func (s *AuthService) ChangePassword(ctx context.Context, accountID, current, newPassword string) (string, error) {
	a, err := s.Credentials.FindByID(ctx, accountID)
	if err != nil {
		return "", err
	}

	if _, ok, err := s.Credentials.VerifyPassword(ctx, a.Email, current); err != nil {
		return "", err
	} else if !ok {
		return "", newError(ErrUnauthorized, msgWrongCurrentPassword)
	}

	if err := s.replacePassword(ctx, a.ID, newPassword); err != nil {
		return "", err
	}

	slogx.FromContext(ctx).Info("password changed", slog.String("account_id", a.ID))
	return MsgPasswordChanged, nil
}

func (s *AuthService) replacePassword(ctx context.Context, accountID, newPassword string) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := s.Credentials.With(tx).ChangePassword(ctx, accountID, newPassword); err != nil {
			return err
		}
		return s.Sessions.With(tx).RevokeAll(ctx, accountID)
	})
}

// DeleteAccount removes the caller's own account.
func (s *AuthService) DeleteAccount(ctx context.Context, accountID string) (string, error) {
	if err := s.removeAccount(ctx, accountID); err != nil {
		return "", err
	}
	return MsgAccountDeleted, nil
}

// AdminDeleteUser removes any account by id.
func (s *AuthService) AdminDeleteUser(ctx context.Context, accountID string) (string, error) {
	if err := s.removeAccount(ctx, accountID); err != nil {
		return "", err
	}
	return MsgUserDeleted, nil
}

func (s *AuthService) removeAccount(ctx context.Context, accountID string) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		return removeAccount(ctx, tx, s.Credentials.With(tx), s.Sessions.With(tx), accountID)
	})
	if err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("account deleted", slog.String("account_id", accountID))
	return nil
}

// removeAccount deletes the merchant profile if any, revokes all sessions and
// deletes the account. tx must be a transaction.
func removeAccount(
	ctx context.Context,
	tx store.Tx,
	creds *CredentialStore,
	sessions *SessionManager,
	accountID string,
) error {
	if _, err := creds.FindByID(ctx, accountID); err != nil {
		return err
	}

	m, err := tx.Merchants().GetMerchantByAccountID(ctx, accountID)
	switch {
	case err == nil:
		if err := tx.Merchants().DeleteMerchant(ctx, m.ID); err != nil {
			return err
		}
	case !errors.Is(err, store.ErrNotFound):
		return err
	}

	if err := sessions.RevokeAll(ctx, accountID); err != nil {
		return err
	}
	return creds.Delete(ctx, accountID)
}
