package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mercato/mercato/infrastructure/config"
	"github.com/mercato/mercato/infrastructure/http/handler"
	"github.com/mercato/mercato/infrastructure/http/middleware"
)

// RouterDeps carries everything route registration needs. Handlers stay
// ignorant of paths; all wiring lives here.
type RouterDeps struct {
	Config         *config.Config
	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	ProductHandler *handler.ProductHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimit      *middleware.RateLimitMiddleware
}

func NewRouter(deps RouterDeps) http.Handler {
	r := mux.NewRouter()
	cfg := deps.Config
	auth := deps.AuthMiddleware
	rl := deps.RateLimit

	api := r.PathPrefix("/api").Subrouter()

	// Auth. Login and refresh sit behind per-IP rate limits because both
	// accept guessable secrets.
	api.HandleFunc("/auth/register", deps.AuthHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login",
		rl.Limit("login", cfg.RateLimitLoginLimit, cfg.RateLimitLoginWindow, deps.AuthHandler.Login),
	).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh",
		rl.Limit("refresh", cfg.RateLimitRefreshLimit, cfg.RateLimitRefreshWindow, deps.AuthHandler.Refresh),
	).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", auth.RequireAuth(deps.AuthHandler.Logout)).Methods(http.MethodPost)
	api.HandleFunc("/auth/me", auth.RequireAuth(deps.AuthHandler.Me)).Methods(http.MethodGet)

	// Current account.
	api.HandleFunc("/users/me", auth.RequireAuth(deps.AuthHandler.Me)).Methods(http.MethodGet)
	api.HandleFunc("/users/me", auth.RequireAuth(deps.UserHandler.UpdateMe)).Methods(http.MethodPut)
	api.HandleFunc("/users/me/change-password", auth.RequireAuth(deps.UserHandler.ChangePassword)).Methods(http.MethodPost)

	// User administration.
	api.HandleFunc("/users", auth.RequireAdmin(deps.UserHandler.List)).Methods(http.MethodGet)
	api.HandleFunc("/users/{id:[0-9]+}", auth.RequireAdmin(deps.UserHandler.Get)).Methods(http.MethodGet)
	api.HandleFunc("/users/{id:[0-9]+}", auth.RequireAdmin(deps.UserHandler.Update)).Methods(http.MethodPut)
	api.HandleFunc("/users/{id:[0-9]+}", auth.RequireAdmin(deps.UserHandler.Delete)).Methods(http.MethodDelete)
	api.HandleFunc("/users/{id:[0-9]+}/role", auth.RequireAdmin(deps.UserHandler.UpdateRole)).Methods(http.MethodPatch)

	// Catalog. Reads are public; OptionalAuth lets admins see inactive rows.
	api.HandleFunc("/products", auth.OptionalAuth(deps.ProductHandler.List)).Methods(http.MethodGet)
	api.HandleFunc("/products/categories", deps.ProductHandler.Categories).Methods(http.MethodGet)
	api.HandleFunc("/products/brands", deps.ProductHandler.Brands).Methods(http.MethodGet)
	api.HandleFunc("/products/{id:[0-9]+}", auth.OptionalAuth(deps.ProductHandler.Get)).Methods(http.MethodGet)
	api.HandleFunc("/products", auth.RequireAdmin(deps.ProductHandler.Create)).Methods(http.MethodPost)
	api.HandleFunc("/products/{id:[0-9]+}", auth.RequireAdmin(deps.ProductHandler.Update)).Methods(http.MethodPut)
	api.HandleFunc("/products/{id:[0-9]+}", auth.RequireAdmin(deps.ProductHandler.Delete)).Methods(http.MethodDelete)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)

	var chained http.Handler = r
	if cfg.CORSEnabled && len(cfg.CORSAllowedOrigins) > 0 {
		chained = middleware.CORS(chained, cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials)
	}
	chained = middleware.CorrelationID(chained)

	return chained
}
