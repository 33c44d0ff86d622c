package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/flowmerce/accounts/internal/accounts/domain"
	"github.com/flowmerce/accounts/internal/accounts/service"
	"github.com/flowmerce/accounts/internal/accounts/store"
	"github.com/flowmerce/accounts/pkg/httpx"
	"github.com/flowmerce/accounts/pkg/jwtx"
	"github.com/flowmerce/accounts/pkg/slogx"

	_ "github.com/flowmerce/accounts/api/accounts" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeyManager
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	AuthService     *service.AuthService
	UserService     *service.UserService
	MerchantService *service.MerchantService
	SessionManager  *service.SessionManager

	// PhoneRegion interprets phone numbers given without a country code.
	PhoneRegion string
}

func NewRouter(
	keys *jwtx.KeyManager,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerMerchants()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			FlowMerce Accounts API
//	@version		0.1.0
//	@description	Account lifecycle for the FlowMerce marketplace: registration, activation, login,
//	@description	password reset, profiles, merchant profiles and administration.
//	@description
//	@description				Session tokens are JWTs (HS256 by default). A token is only accepted while its
//	@description				server side session is live; logout and password changes revoke it immediately.
//
//	@contact.name				FlowMerce Team
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authenticated verifies the bearer session before h, then applies the
// per-account rate limit.
func (r *Router) authenticated(h http.HandlerFunc, limit httpx.RateLimitConfig, roles ...domain.Role) http.Handler {
	mws := []httpx.Middleware{httpx.AuthnMiddleware(r.SessionManager)}
	if len(roles) > 0 {
		names := make([]string, len(roles))
		for i, role := range roles {
			names[i] = role.String()
		}
		mws = append(mws, httpx.RequireRole(names...))
	}
	mws = append(mws, httpx.RateLimitByAccount(limit))
	return httpx.Chain(h, mws...)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService, PhoneRegion: r.PhoneRegion}

	// Credential endpoints - strict limits against brute force and enumeration
	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)
	r.Mux.Handle("POST /api/auth/forgot-password",
		httpx.Chain(http.HandlerFunc(h.HandleForgotPassword),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)
	r.Mux.Handle("POST /api/auth/reset-password",
		httpx.Chain(http.HandlerFunc(h.HandleResetPassword),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /api/auth/activate",
		httpx.Chain(http.HandlerFunc(h.HandleActivate),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// Logout reads the bearer itself so a dead token gets the logout error
	// rather than a 401.
	r.Mux.Handle("POST /api/auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{
		AuthService: r.AuthService,
		UserService: r.UserService,
		PhoneRegion: r.PhoneRegion,
	}

	r.Mux.Handle("GET /api/users/me", r.authenticated(h.HandleGetMe, httpx.LenientLimit))
	r.Mux.Handle("PUT /api/users/me", r.authenticated(h.HandleUpdateMe, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/users/me", r.authenticated(h.HandleDeleteMe, httpx.ModerateLimit))
	r.Mux.Handle("PUT /api/users/me/change-password", r.authenticated(h.HandleChangePassword, httpx.StrictLimit))
}

func (r *Router) registerMerchants() {
	h := &MerchantsHandler{MerchantService: r.MerchantService}

	r.Mux.Handle("POST /api/merchants/me", r.authenticated(h.HandleCreate, httpx.ModerateLimit))
	r.Mux.Handle("GET /api/merchants/me", r.authenticated(h.HandleGetMe, httpx.LenientLimit))
	r.Mux.Handle("DELETE /api/merchants/me", r.authenticated(h.HandleDeleteMe, httpx.ModerateLimit))
}

func (r *Router) registerAdmin() {
	users := &UsersHandler{
		AuthService: r.AuthService,
		UserService: r.UserService,
		PhoneRegion: r.PhoneRegion,
	}
	merchants := &MerchantsHandler{MerchantService: r.MerchantService}

	r.Mux.Handle("GET /api/admin/users",
		r.authenticated(users.HandleList, httpx.ModerateLimit, domain.RoleAdmin))
	r.Mux.Handle("DELETE /api/admin/users/{id}",
		r.authenticated(users.HandleDelete, httpx.ModerateLimit, domain.RoleAdmin))
	r.Mux.Handle("GET /api/admin/merchants",
		r.authenticated(merchants.HandleList, httpx.ModerateLimit, domain.RoleAdmin))
	r.Mux.Handle("PUT /api/admin/merchants/{id}/verify",
		r.authenticated(merchants.HandleVerify, httpx.ModerateLimit, domain.RoleAdmin))
	r.Mux.Handle("DELETE /api/admin/merchants/{id}",
		r.authenticated(merchants.HandleDelete, httpx.ModerateLimit, domain.RoleAdmin))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// Public key discovery - only populated for EdDSA
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys.KeySet),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
