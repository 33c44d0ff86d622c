package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/flowmerce/accounts/internal/accounts/store"
	"github.com/flowmerce/accounts/pkg/accountsdk"
	"github.com/flowmerce/accounts/pkg/httpx"
	"github.com/flowmerce/accounts/pkg/jwtx"
)

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe returning uptime and version. Always 200 while the process runs.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	accountsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, accountsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe. Reports degraded with 503 when the database or the token signer is unavailable.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	accountsdk.HealthResponse	"every check ok"
//	@Failure		503	{object}	accountsdk.HealthResponse	"at least one check failed"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store, keys *jwtx.KeyManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var checks accountsdk.HealthChecks
		probes := []struct {
			result *string
			check  func() error
		}{
			{&checks.Database, func() error { return st.Ping(r.Context()) }},
			{&checks.Signer, func() error {
				if !keys.IsReady() {
					return errors.New("no keys loaded")
				}
				return nil
			}},
		}

		resp := accountsdk.HealthResponse{Status: "ok", Version: version, Checks: &checks}
		code := http.StatusOK
		for _, p := range probes {
			*p.result = "ok"
			if err := p.check(); err != nil {
				*p.result = "error: " + err.Error()
				resp.Status = "degraded"
				code = http.StatusServiceUnavailable
			}
		}
		resp.Uptime = time.Since(startTime).String()
		httpx.WriteJSON(w, code, resp)
	}
}

// JWKSHandler exposes the JSON Web Key Set for public key discovery.
//
//	@Summary		Get JWKS
//	@Description	Returns the public keys used to verify session tokens. Empty when tokens are HS256 signed.
//	@Tags			well-known
//	@Produce		json
//	@Success		200	{object}	accountsdk.JWKSResponse	"The JSON Web Key Set"
//	@Router			/.well-known/jwks.json [get].
func JWKSHandler(keys *jwtx.KeySet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, accountsdk.JWKSResponse(keys.PublicJWKS()))
	}
}
