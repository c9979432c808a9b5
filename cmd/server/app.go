package main

import (
	"net/http"
	"time"

	"github.com/diewo77/go-commandes/httpx"
	"github.com/diewo77/go-commandes/internal/config"
	"github.com/diewo77/go-commandes/internal/handlers"
	"github.com/diewo77/go-commandes/internal/identity"
	"github.com/diewo77/go-commandes/internal/mailer"
	"github.com/diewo77/go-commandes/internal/middleware"
	"github.com/diewo77/go-commandes/internal/policy"
	"github.com/diewo77/go-commandes/internal/services"
	"github.com/diewo77/go-commandes/internal/session"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// profileCacheTTL is how long resolved role profiles are reused.
const profileCacheTTL = 5 * time.Minute

// NewApp wires collaborators and returns the routed handler.
func NewApp(conn *gorm.DB, cfg *config.Config, log *zap.Logger) http.Handler {
	tokens := session.NewTokens(cfg.Auth.JWTSecret, session.DefaultTTL)

	var provider identity.Provider
	if cfg.Auth.Remote() {
		provider = identity.NewRemoteProvider(cfg.Auth.URL, cfg.Auth.ServiceRoleKey, cfg.Auth.AnonKey)
	} else {
		provider = identity.NewLocalProvider(conn, tokens)
	}
	sender := mailer.NewResendClient(cfg.Email.APIKey, cfg.Email.BaseURL)

	authGate := policy.NewAuthGate(conn, profileCacheTTL)
	profiles := services.NewProfileStore(conn)
	roleRouter := services.NewRoleRouter(profiles, log)

	provisioner := services.NewProvisioner(provider, profiles, log)
	provisioner.OnCreated = authGate.InvalidateUser

	api := handlers.NewAPIHandler(provisioner, services.NewOrderLines(conn), services.NewMailer(sender, cfg.Email.DefaultFrom, log))
	auth := handlers.NewAuthHandler(provider, roleRouter, !cfg.App.Dev, log)
	home := handlers.NewHomeHandler(roleRouter)
	areas := handlers.NewAreaHandler(conn, profiles, authGate, log)

	r := chi.NewRouter()
	r.Use(baseMiddleware(log)...)
	r.Use(session.Middleware(tokens))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/admin/create-store-user", api.CreateStoreUser)
		r.Post("/commandes/update-quantity", api.UpdateQuantity)
		r.Post("/send-email", api.SendEmail)
	})

	r.Get("/", home.Dashboard)
	r.Get("/dashboard", home.Dashboard)
	r.Get("/login", auth.LoginPage)
	r.Post("/login", auth.Login)
	r.Post("/logout", auth.Logout)

	for _, area := range []string{"admin", "client", "magasin"} {
		r.With(authGate.RequireArea(area)).Get("/"+area, areas.Show(area))
	}

	return r
}

// baseMiddleware runs outermost first. Recover sits inside Logger so a
// recovered panic still produces its access-log line.
func baseMiddleware(log *zap.Logger) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.Logger(log),
		middleware.Recover(log),
		middleware.Lang,
	}
}
