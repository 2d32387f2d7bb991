package http

import (
	"net/http"

	"github.com/atinyakov/receipts/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns the HTTP handler of the web front end.
//
// Parameters:
//
//	pages    - handler for the home, landing and health pages
//	sessions - handler for the logout action
//	logger   - structured logger for request logging middleware
//	gate     - access gate configuration; its Logger defaults to logger
//
// Routes:
//
//	GET  /         → pages.Home
//	GET  /landing  → pages.Landing (protected by SessionGate)
//	GET  /healthz  → pages.Health
//	POST /logout   → sessions.Logout
//
// Middleware chain (applied in order):
//  1. RequestID                  : tags each request with an id
//  2. WithRequestLogging(logger) : logs every served request
//  3. SessionGate(gate)          : redirects protected paths without a session cookie
func NewRouter(
	pages *PageHandler,
	sessions *SessionHandler,
	logger *zap.Logger,
	gate middleware.GateConfig,
) http.Handler {
	if gate.Logger == nil {
		gate.Logger = logger
	}

	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.SessionGate(gate))

	r.Get("/", pages.Home)
	r.Get("/landing", pages.Landing)
	r.Get("/healthz", pages.Health)

	// Only form posts and JSON bodies are accepted by actions
	r.Group(func(r chi.Router) {
		r.Use(chiMiddleware.AllowContentType("application/x-www-form-urlencoded", "application/json"))
		r.Post("/logout", sessions.Logout)
	})

	return r
}
