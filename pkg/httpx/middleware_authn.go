package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/flowmerce/accounts/pkg/jwtx"
	"github.com/flowmerce/accounts/pkg/slogx"
)

// Authenticator turns a raw bearer token into verified claims. The accounts
// service backs it with the session store, so a token is only accepted while
// its session row is live.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (jwtx.Claims, error)
}

// AuthenticatorFunc adapts a function to Authenticator.
type AuthenticatorFunc func(ctx context.Context, token string) (jwtx.Claims, error)

func (f AuthenticatorFunc) Authenticate(ctx context.Context, token string) (jwtx.Claims, error) {
	return f(ctx, token)
}

// VerifierAuthenticator authenticates with signature and expiry checks only.
func VerifierAuthenticator(v jwtx.Verifier) Authenticator {
	return AuthenticatorFunc(func(_ context.Context, token string) (jwtx.Claims, error) {
		return v.Verify(token)
	})
}

// ExtractBearer returns the token from an "Authorization: Bearer <token>" header.
func ExtractBearer(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if len(authz) < len("Bearer ") || !strings.EqualFold(authz[:len("Bearer ")], "Bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(authz[len("Bearer "):])
	return raw, raw != ""
}

// AuthnMiddleware rejects requests without a valid bearer session and stores
// the caller's claims in the request context.
func AuthnMiddleware(a Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := ExtractBearer(r)
			if !ok {
				writeBearerError(w, r, "missing bearer token")
				return
			}

			claims, err := a.Authenticate(ctx, raw)
			if err != nil {
				log.Info("bearer authentication failed", "err", err)
				writeBearerError(w, r, "invalid or expired token")
				return
			}

			ctx = contextWithAuth(ctx, raw, claims)
			ctx = slogx.WithAccount(ctx, claims.UID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750 challenge plus the usual error envelope.
func writeBearerError(w http.ResponseWriter, r *http.Request, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, r, http.StatusUnauthorized, "Authentication required: "+desc)
}
