package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/atinyakov/receipts/internal/models"
)

// LogoutOptions tunes a logout call.
type LogoutOptions struct {
	// CookieHeader is forwarded as the Cookie request header when set. It is
	// used from server context, where no ambient cookie jar exists.
	CookieHeader string
}

// Login exchanges credentials for the user's profile. The email of the
// returned profile is the one supplied by the caller.
func (c *Client) Login(ctx context.Context, email, password string) (models.Profile, error) {
	resp, err := c.do(ctx, "login", c.routes.LoginURL(), models.LoginRequest{
		Email:    email,
		Password: password,
	}, nil)
	if err != nil {
		return models.Profile{}, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return models.Profile{}, errorFromResponse(resp, "Server error: %d")
	}

	var payload models.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.Profile{}, &TransportError{Op: "login", Err: err}
	}

	return models.Profile{
		FirstName: payload.FirstName(),
		LastName:  payload.LastName(),
		Email:     email,
	}, nil
}

// Register creates an account. The returned profile is the client-supplied
// one: the response body is never used to populate it. Registering does not
// by itself mark anyone as logged in.
func (c *Client) Register(ctx context.Context, profile models.Profile, password string) (models.Profile, error) {
	resp, err := c.do(ctx, "register", c.routes.RegisterURL(), models.RegisterRequest{
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Email:     profile.Email,
		Password:  password,
	}, nil)
	if err != nil {
		return models.Profile{}, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return models.Profile{}, errorFromResponse(resp, "Server error: %d")
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	return profile, nil
}

// Logout ends the remote session identified by the session cookie.
func (c *Client) Logout(ctx context.Context, opts LogoutOptions) error {
	var header http.Header
	if opts.CookieHeader != "" {
		header = http.Header{"Cookie": []string{opts.CookieHeader}}
	}

	resp, err := c.do(ctx, "logout", c.routes.LogoutURL(), nil, header)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return errorFromResponse(resp, "Logout request failed with status %d")
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
