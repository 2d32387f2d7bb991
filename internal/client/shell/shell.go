// Package shell implements the interactive client: one process plays one
// browser tab with its own cookie jar and session store.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/atinyakov/receipts/internal/client/api"
	"github.com/atinyakov/receipts/internal/client/forms"
	"github.com/atinyakov/receipts/internal/models"
	"github.com/atinyakov/receipts/internal/session"
	"go.uber.org/zap"
)

// Prompt is printed before every command.
const Prompt = "receipts> "

const (
	signInFailed = "Failed to sign in. Please try again."
	signUpFailed = "Failed to create account. Please try again."
)

// SessionManager is the session provider the views go through.
type SessionManager interface {
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, profile models.Profile, password string) error
	Logout(ctx context.Context)
	Store() *session.Store
}

// Config holds the Shell dependencies.
type Config struct {
	// Sessions owns the Session Store.
	Sessions SessionManager
	// Prompter reads commands and form fields.
	Prompter *forms.Prompter
	// Out receives everything shown to the user.
	Out io.Writer
	// Pages fetches front end pages. It must share the API client's cookie
	// jar and must not follow redirects.
	Pages *http.Client
	// FrontendURL is the base URL of the web front end.
	FrontendURL string
	// Logger receives diagnostics.
	Logger *zap.Logger
}

// Shell is the read-eval-print loop of the client.
type Shell struct {
	cfg Config
}

// New creates a Shell.
func New(cfg Config) *Shell {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Shell{cfg: cfg}
}

// NewPagesClient returns an http.Client over jar that reports redirects
// instead of following them.
func NewPagesClient(jar http.CookieJar) *http.Client {
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// Run processes commands until exit, end of input or ctx cancellation.
func (s *Shell) Run(ctx context.Context) error {
	s.navbar()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := await(ctx, func() (string, error) {
			return s.cfg.Prompter.Line(Prompt)
		})
		if errors.Is(err, io.EOF) {
			s.println("Bye")
			return nil
		}
		if err != nil {
			return err
		}

		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			s.println("Available commands: help, signin, signup, logout, whoami, landing, exit")
		case "signin":
			err = s.signIn(ctx)
		case "signup":
			err = s.signUp(ctx)
		case "logout":
			s.cfg.Sessions.Logout(ctx)
			s.println("Logged out successfully!")
			s.navbar()
		case "whoami":
			s.whoami()
		case "landing":
			s.landing(ctx)
		case "exit":
			s.println("Bye")
			return nil
		default:
			s.println("Unknown command. Type 'help' for a list of commands.")
		}
		if err != nil {
			return err
		}
	}
}

func (s *Shell) signIn(ctx context.Context) error {
	form, err := await(ctx, s.cfg.Prompter.SignIn)
	if err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		s.validationFailed(err)
		return nil
	}

	if err := s.cfg.Sessions.Login(ctx, strings.TrimSpace(form.Email), form.Password); err != nil {
		s.println(api.UserMessage(err, signInFailed))
		return nil
	}
	s.println("Signed in successfully!")
	s.navbar()
	s.landing(ctx)
	return nil
}

func (s *Shell) signUp(ctx context.Context) error {
	form, err := await(ctx, s.cfg.Prompter.SignUp)
	if err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		s.validationFailed(err)
		return nil
	}

	if err := s.cfg.Sessions.Register(ctx, form.Profile(), form.Password); err != nil {
		s.println(api.UserMessage(err, signUpFailed))
		return nil
	}
	s.println("Account created successfully!")
	s.navbar()
	s.landing(ctx)
	return nil
}

func (s *Shell) validationFailed(err error) {
	var verr *forms.ValidationError
	if !errors.As(err, &verr) {
		s.println(err.Error())
		return
	}
	for _, line := range strings.Split(verr.Error(), "; ") {
		s.println("  " + line)
	}
}

func (s *Shell) whoami() {
	u, ok := s.cfg.Sessions.Store().User()
	if !ok || !u.IsLoggedIn {
		s.println("Not signed in")
		return
	}
	s.println(fmt.Sprintf("%s %s <%s>", u.FirstName, u.LastName, u.Email))
}

// navbar mirrors the page header: the action offered depends only on the
// Session Store.
func (s *Shell) navbar() {
	action := "Login"
	if s.cfg.Sessions.Store().IsLoggedIn() {
		action = "Logout"
	}
	s.println("[ Receipts and Insights ]  " + action)
}

// landing visits the protected page and reports what the gate decided.
func (s *Shell) landing(ctx context.Context) {
	target := strings.TrimRight(s.cfg.FrontendURL, "/") + models.LandingPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		s.println("Landing page unavailable: " + err.Error())
		return
	}

	resp, err := s.cfg.Pages.Do(req)
	if err != nil {
		s.cfg.Logger.Warn("landing request failed", zap.String("url", target), zap.Error(err))
		s.println("Landing page unavailable: " + err.Error())
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode >= 300 && resp.StatusCode < 400:
		s.println(fmt.Sprintf("No session: redirected to %s", resp.Header.Get("Location")))
	case resp.StatusCode == http.StatusOK:
		if u, ok := s.cfg.Sessions.Store().User(); ok {
			s.println(fmt.Sprintf("Welcome, %s %s", u.FirstName, u.LastName))
		}
		s.println("this is the landing page")
	default:
		s.println(fmt.Sprintf("Landing page unavailable (status %d)", resp.StatusCode))
	}
}

// await runs a blocking read and gives up when ctx is done. The abandoned
// read keeps its goroutine until input arrives; Run returns right after, so
// no second read competes for the Prompter.
func await[T any](ctx context.Context, read func() (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := read()
		ch <- result{v, err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case r := <-ch:
		return r.v, r.err
	}
}

func (s *Shell) println(line string) {
	fmt.Fprintln(s.cfg.Out, line)
}
