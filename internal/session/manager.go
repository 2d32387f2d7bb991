package session

import (
	"context"

	"github.com/atinyakov/receipts/internal/client/api"
	"github.com/atinyakov/receipts/internal/models"
	"go.uber.org/zap"
)

// AuthAPI defines the remote auth operations the Manager depends on.
type AuthAPI interface {
	// Login exchanges credentials for a profile.
	Login(ctx context.Context, email, password string) (models.Profile, error)
	// Register creates an account and returns the profile to cache.
	Register(ctx context.Context, profile models.Profile, password string) (models.Profile, error)
	// Logout ends the remote session.
	Logout(ctx context.Context, opts api.LogoutOptions) error
}

// CookieStore gives the Manager access to the client's session cookie.
type CookieStore interface {
	// DeleteSession removes the session cookie locally.
	DeleteSession()
}

// Manager is the provider owning the Store. Views receive it explicitly and
// go through it for every session mutation.
type Manager struct {
	api     AuthAPI
	store   *Store
	cookies CookieStore
	log     *zap.Logger
}

// NewManager wires a Manager. A nil logger is replaced by a no-op one.
func NewManager(authAPI AuthAPI, store *Store, cookies CookieStore, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{api: authAPI, store: store, cookies: cookies, log: log}
}

// Store returns the session store for read access.
func (m *Manager) Store() *Store {
	return m.store
}

// Login authenticates and, on success, stores the returned profile. On
// failure the session state is left untouched and the error is returned.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	profile, err := m.api.Login(ctx, email, password)
	if err != nil {
		m.log.Info("sign in rejected", zap.Error(err))
		return err
	}
	m.store.SetAuthenticated(profile)
	m.log.Info("signed in", zap.String("email", profile.Email))
	return nil
}

// Register creates the account and, on success, stores the client-supplied
// profile as the authenticated user.
func (m *Manager) Register(ctx context.Context, profile models.Profile, password string) error {
	registered, err := m.api.Register(ctx, profile, password)
	if err != nil {
		m.log.Info("sign up rejected", zap.Error(err))
		return err
	}
	m.store.SetAuthenticated(registered)
	m.log.Info("signed up", zap.String("email", registered.Email))
	return nil
}

// Logout ends the remote session on a best-effort basis and always clears
// the Store and the session cookie, even when the remote call fails or the
// session was already anonymous. The cookie reaches the backend through the
// client's own jar, so no header is forwarded.
func (m *Manager) Logout(ctx context.Context) {
	defer func() {
		m.store.Clear()
		if m.cookies != nil {
			m.cookies.DeleteSession()
		}
	}()

	if err := m.api.Logout(ctx, api.LogoutOptions{}); err != nil {
		m.log.Warn("remote logout failed, clearing local session anyway", zap.Error(err))
		return
	}
	m.log.Info("logged out")
}
