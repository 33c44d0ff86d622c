package httpx

import (
	"context"

	"github.com/flowmerce/accounts/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyAccountID ctxKey = "account_id"
	CtxKeyRole      ctxKey = "role"
	CtxKeyClaims    ctxKey = "claims"
	CtxKeyToken     ctxKey = "bearer_token"
)

func contextWithAuth(ctx context.Context, token string, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyAccountID, c.UID)
	ctx = context.WithValue(ctx, CtxKeyRole, c.Role)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	ctx = context.WithValue(ctx, CtxKeyToken, token)
	return ctx
}

// AccountID returns the authenticated account id, if any.
func AccountID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(CtxKeyAccountID).(string)
	return v, ok && v != ""
}

// Role returns the role claim of the authenticated caller.
func Role(ctx context.Context) string {
	v, _ := ctx.Value(CtxKeyRole).(string)
	return v
}

// ClaimsFrom returns the verified claims of the caller.
func ClaimsFrom(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return c, ok
}

// BearerToken returns the raw bearer token the caller authenticated with.
func BearerToken(ctx context.Context) string {
	v, _ := ctx.Value(CtxKeyToken).(string)
	return v
}
