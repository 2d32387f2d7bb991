// Package middleware provides HTTP middlewares for access gating and logging.
package middleware

import (
	"context"
	"net/http"

	"github.com/atinyakov/receipts/internal/models"
	"go.uber.org/zap"
)

// Decision is the outcome of the access gate for one request.
type Decision struct {
	// RedirectTo is the target path when the request is turned away, empty
	// when it may proceed.
	RedirectTo string
}

// Allowed reports whether the request may proceed unmodified.
func (d Decision) Allowed() bool {
	return d.RedirectTo == ""
}

// Evaluate decides the fate of a request to path. Protected paths without
// a session cookie are redirected home; everything else is allowed. Only the
// presence of the cookie matters, never its validity.
func Evaluate(routes models.RouteTable, path string, hasSession bool) Decision {
	if routes.Classify(path) == models.Protected && !hasSession {
		return Decision{RedirectTo: models.HomePath}
	}
	return Decision{}
}

// HasSessionCookie reports whether r carries a non-empty session cookie.
func HasSessionCookie(r *http.Request) bool {
	c, err := r.Cookie(models.SessionCookieName)
	return err == nil && c.Value != ""
}

// EventRecorder receives gate denials for the auth activity journal.
type EventRecorder interface {
	Record(ctx context.Context, kind models.AuthEventKind, path, detail string)
}

// GateConfig configures SessionGate.
type GateConfig struct {
	// Routes classifies paths. DefaultRoutes is used when nil.
	Routes models.RouteTable
	// Logger receives denial logs. A no-op logger is used when nil.
	Logger *zap.Logger
	// Journal optionally records denials.
	Journal EventRecorder
}

// SessionGate is a middleware that enforces the session cookie on
// protected paths.
//
// The check is stateless and runs on every request: nothing is cached
// between requests and the in-memory session of any client is never read.
// Denied requests get a 307 redirect to the home page.
func SessionGate(cfg GateConfig) func(http.Handler) http.Handler {
	routes := cfg.Routes
	if routes == nil {
		routes = models.DefaultRoutes()
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := Evaluate(routes, r.URL.Path, HasSessionCookie(r))
			if d.Allowed() {
				next.ServeHTTP(w, r)
				return
			}

			log.Info("redirecting request without session",
				zap.String("path", r.URL.Path),
				zap.String("to", d.RedirectTo),
			)
			if cfg.Journal != nil {
				cfg.Journal.Record(r.Context(), models.EventGateRedirect, r.URL.Path, "missing session cookie")
			}
			http.Redirect(w, r, d.RedirectTo, http.StatusTemporaryRedirect)
		})
	}
}
