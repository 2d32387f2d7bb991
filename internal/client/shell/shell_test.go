package shell

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/atinyakov/receipts/internal/client/api"
	"github.com/atinyakov/receipts/internal/client/forms"
	"github.com/atinyakov/receipts/internal/models"
	"github.com/atinyakov/receipts/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessions struct {
	store    *session.Store
	jar      http.CookieJar
	site     *url.URL
	loginErr error
	logins   int
	logouts  int
	profile  models.Profile
}

func (f *fakeSessions) Login(_ context.Context, email, _ string) error {
	f.logins++
	if f.loginErr != nil {
		return f.loginErr
	}
	f.store.SetAuthenticated(models.Profile{FirstName: "Ada", LastName: "Lovelace", Email: email})
	f.jar.SetCookies(f.site, []*http.Cookie{{Name: models.SessionCookieName, Value: "opaque", Path: "/"}})
	return nil
}

func (f *fakeSessions) Register(_ context.Context, profile models.Profile, _ string) error {
	f.profile = profile
	f.store.SetAuthenticated(profile)
	f.jar.SetCookies(f.site, []*http.Cookie{{Name: models.SessionCookieName, Value: "opaque", Path: "/"}})
	return nil
}

func (f *fakeSessions) Logout(context.Context) {
	f.logouts++
	f.store.Clear()
	f.jar.SetCookies(f.site, []*http.Cookie{{Name: models.SessionCookieName, Value: "", Path: "/", MaxAge: -1}})
}

func (f *fakeSessions) Store() *session.Store {
	return f.store
}

func gatedSite() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(models.SessionCookieName); err != nil || c.Value == "" {
			http.Redirect(w, r, models.HomePath, http.StatusTemporaryRedirect)
			return
		}
		_, _ = w.Write([]byte("this is the landing page"))
	}))
}

func runShell(t *testing.T, input string, sessions *fakeSessions, siteURL string) string {
	t.Helper()

	var out bytes.Buffer
	sh := New(Config{
		Sessions:    sessions,
		Prompter:    forms.NewPrompter(strings.NewReader(input), &out),
		Out:         &out,
		Pages:       NewPagesClient(sessions.jar),
		FrontendURL: siteURL,
	})
	require.NoError(t, sh.Run(context.Background()))
	return out.String()
}

func newFakeSessions(t *testing.T, siteURL string) *fakeSessions {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	u, err := url.Parse(siteURL)
	require.NoError(t, err)
	return &fakeSessions{store: session.NewStore(), jar: jar, site: u}
}

func TestShell_SignInThenLogout(t *testing.T) {
	site := gatedSite()
	defer site.Close()
	sessions := newFakeSessions(t, site.URL)

	out := runShell(t, "landing\nsignin\nada@example.com\nsecret\nwhoami\nlogout\nlanding\nexit\n", sessions, site.URL)

	assert.Equal(t, 1, sessions.logins)
	assert.Equal(t, 1, sessions.logouts)
	assert.False(t, sessions.store.IsLoggedIn())

	first := strings.Index(out, "No session: redirected to /")
	welcome := strings.Index(out, "Welcome, Ada Lovelace")
	last := strings.LastIndex(out, "No session: redirected to /")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, welcome)
	assert.Less(t, first, welcome)
	assert.Less(t, welcome, last)

	assert.Contains(t, out, "Signed in successfully!")
	assert.Contains(t, out, "this is the landing page")
	assert.Contains(t, out, "Ada Lovelace <ada@example.com>")
	assert.Contains(t, out, "Logged out successfully!")
	assert.Contains(t, out, "Bye")
}

func TestShell_Navbar(t *testing.T) {
	site := gatedSite()
	defer site.Close()
	sessions := newFakeSessions(t, site.URL)

	out := runShell(t, "signin\nada@example.com\nsecret\nlogout\n", sessions, site.URL)

	bars := []string{}
	for _, line := range strings.Split(out, "\n") {
		if i := strings.Index(line, "[ Receipts and Insights ]"); i >= 0 {
			bars = append(bars, strings.TrimSpace(line[i:]))
		}
	}
	assert.Equal(t, []string{
		"[ Receipts and Insights ]  Login",
		"[ Receipts and Insights ]  Logout",
		"[ Receipts and Insights ]  Login",
	}, bars)
}

func TestShell_SignInErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{"server message", &api.AuthError{Status: http.StatusUnauthorized, Message: "Invalid credentials"}, "Invalid credentials"},
		{"transport failure", &api.TransportError{Op: "login"}, "Failed to sign in. Please try again."},
		{"not configured", &api.ConfigurationError{Endpoint: "login"}, "Failed to sign in. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := newFakeSessions(t, "http://127.0.0.1:1")
			sessions.loginErr = tt.err

			out := runShell(t, "signin\nada@example.com\nsecret\nexit\n", sessions, "http://127.0.0.1:1")

			assert.Contains(t, out, tt.message)
			assert.NotContains(t, out, "Signed in successfully!")
			assert.False(t, sessions.store.IsLoggedIn())
		})
	}
}

func TestShell_SignInValidation(t *testing.T) {
	sessions := newFakeSessions(t, "http://127.0.0.1:1")

	out := runShell(t, "signin\nnot-an-email\n\nexit\n", sessions, "http://127.0.0.1:1")

	assert.Equal(t, 0, sessions.logins)
	assert.Contains(t, out, "email: Please enter a valid email address")
	assert.Contains(t, out, "password: Password is required")
}

func TestShell_SignUp(t *testing.T) {
	site := gatedSite()
	defer site.Close()
	sessions := newFakeSessions(t, site.URL)

	out := runShell(t, "signup\nGrace\nHopper\ngrace@example.com\n12345678\n12345678\nexit\n", sessions, site.URL)

	assert.Equal(t, models.Profile{FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com"}, sessions.profile)
	assert.Contains(t, out, "Account created successfully!")
	assert.Contains(t, out, "Welcome, Grace Hopper")
}

func TestShell_SignUpMismatch(t *testing.T) {
	sessions := newFakeSessions(t, "http://127.0.0.1:1")

	out := runShell(t, "signup\nGrace\nHopper\ngrace@example.com\n12345678\n87654321\nexit\n", sessions, "http://127.0.0.1:1")

	assert.Contains(t, out, "confirmPassword: Passwords do not match")
	assert.False(t, sessions.store.IsLoggedIn())
}

func TestShell_LogoutWhenAnonymous(t *testing.T) {
	sessions := newFakeSessions(t, "http://127.0.0.1:1")

	out := runShell(t, "logout\nwhoami\n", sessions, "http://127.0.0.1:1")

	assert.Equal(t, 1, sessions.logouts)
	assert.Contains(t, out, "Logged out successfully!")
	assert.Contains(t, out, "Not signed in")
}

func TestShell_UnknownCommand(t *testing.T) {
	sessions := newFakeSessions(t, "http://127.0.0.1:1")

	out := runShell(t, "frobnicate\n", sessions, "http://127.0.0.1:1")

	assert.Contains(t, out, "Unknown command")
	assert.True(t, strings.HasSuffix(out, "Bye\n"))
}

func TestShell_CanceledContext(t *testing.T) {
	sessions := newFakeSessions(t, "http://127.0.0.1:1")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sh := New(Config{
		Sessions: sessions,
		Prompter: forms.NewPrompter(strings.NewReader("help\n"), &bytes.Buffer{}),
		Out:      &bytes.Buffer{},
	})
	assert.ErrorIs(t, sh.Run(ctx), context.Canceled)
}

func TestShell_CancelWhileWaitingForInput(t *testing.T) {
	sessions := newFakeSessions(t, "http://127.0.0.1:1")
	in, w := io.Pipe()
	defer w.Close()

	sh := New(Config{
		Sessions: sessions,
		Prompter: forms.NewPrompter(in, io.Discard),
		Out:      io.Discard,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sh.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestShell_CancelDuringSignInForm(t *testing.T) {
	sessions := newFakeSessions(t, "http://127.0.0.1:1")
	in, w := io.Pipe()
	defer w.Close()

	sh := New(Config{
		Sessions: sessions,
		Prompter: forms.NewPrompter(in, io.Discard),
		Out:      io.Discard,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sh.Run(ctx) }()

	_, err := w.Write([]byte("signin\nada@example.com\n"))
	require.NoError(t, err)
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	assert.Equal(t, 0, sessions.logins)
}
