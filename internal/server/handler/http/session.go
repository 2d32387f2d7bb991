package http

import (
	"context"
	"net/http"

	"github.com/atinyakov/receipts/internal/client/api"
	"github.com/atinyakov/receipts/internal/middleware"
	"github.com/atinyakov/receipts/internal/models"
	"go.uber.org/zap"
)

// LogoutAPI defines the remote operation required by the logout action.
type LogoutAPI interface {
	// Logout ends the remote session identified by opts.CookieHeader.
	Logout(ctx context.Context, opts api.LogoutOptions) error
}

// SessionHandler handles the server-side session actions.
type SessionHandler struct {
	// AuthAPI performs the remote logout.
	AuthAPI LogoutAPI
	// Journal optionally records logout outcomes.
	Journal middleware.EventRecorder
	// Logger receives remote failures.
	Logger *zap.Logger
}

// Logout handles POST /logout. The browser has no cookie jar we can reach
// from here, so its Cookie header is forwarded to the remote logout
// endpoint. The session cookie is deleted whatever the remote outcome and
// the browser is sent back home.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	err := h.AuthAPI.Logout(r.Context(), api.LogoutOptions{
		CookieHeader: r.Header.Get("Cookie"),
	})

	ClearSessionCookie(w)

	kind, detail := models.EventLogout, ""
	if err != nil {
		kind, detail = models.EventLogoutFailed, api.UserMessage(err, "remote logout unavailable")
		if h.Logger != nil {
			h.Logger.Warn("remote logout failed, session cookie cleared anyway", zap.Error(err))
		}
	}
	if h.Journal != nil {
		h.Journal.Record(r.Context(), kind, r.URL.Path, detail)
	}

	http.Redirect(w, r, models.HomePath, http.StatusSeeOther)
}

// ClearSessionCookie instructs the browser to drop the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     models.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
