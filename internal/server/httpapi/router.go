// Package httpapi exposes the credential operations over HTTP using chi.
package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/walletkeeper/internal/logging"
	"github.com/dmitrijs2005/walletkeeper/internal/server/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig collects what NewRouter needs.
type RouterConfig struct {
	Service        CredentialService
	Verifier       auth.TokenVerifier
	Logger         logging.Logger
	AllowedOrigins []string
}

// NewRouter creates and configures the chi router.
func NewRouter(cfg RouterConfig) *chi.Mux {
	logger := cfg.Logger.With("module", "http")

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	h := NewAuthHandler(cfg.Service, logger)

	r.Get("/healthz", Healthz)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(Authenticate(cfg.Verifier, logger))
			r.Get("/me", h.Me)
		})
	})

	return r
}
