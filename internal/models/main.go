// Package models defines the core data structures shared by the web front
// end, the auth API client and the session store.
package models

// SessionCookieName is the name of the opaque session cookie issued by the
// backend. Its presence is the only thing the access gate trusts.
const SessionCookieName = "session_token"

// Profile holds the non-secret attributes of an authenticated user.
type Profile struct {
	// FirstName is the user's given name.
	FirstName string
	// LastName is the user's family name.
	LastName string
	// Email is the address the user signs in with.
	Email string
}

// User is the session profile cached client-side after authentication.
// It never carries credentials.
type User struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	IsLoggedIn bool   `json:"isLoggedIn"`
}

// LoginRequest is the JSON payload sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the profile payload returned by the login endpoint.
// The backend may answer in either snake_case or camelCase.
type LoginResponse struct {
	FirstNameSnake string `json:"first_name,omitempty"`
	FirstNameCamel string `json:"firstName,omitempty"`
	LastNameSnake  string `json:"last_name,omitempty"`
	LastNameCamel  string `json:"lastName,omitempty"`
}

// FirstName returns the snake_case value when present, the camelCase one otherwise.
func (r LoginResponse) FirstName() string {
	if r.FirstNameSnake != "" {
		return r.FirstNameSnake
	}
	return r.FirstNameCamel
}

// LastName returns the snake_case value when present, the camelCase one otherwise.
func (r LoginResponse) LastName() string {
	if r.LastNameSnake != "" {
		return r.LastNameSnake
	}
	return r.LastNameCamel
}

// RegisterRequest is the JSON payload sent to the register endpoint.
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// ErrorResponse is the error body the backend returns on failure.
type ErrorResponse struct {
	Message string `json:"message"`
}

// Protection classifies a navigable path.
type Protection int

const (
	// Public paths are served to everyone.
	Public Protection = iota
	// Protected paths require a session cookie.
	Protected
)

// RouteTable maps a path to its protection level. Paths missing from the
// table are public.
type RouteTable map[string]Protection

// LandingPath is the only protected page of the front end.
const LandingPath = "/landing"

// HomePath is where unauthenticated requests are sent back to.
const HomePath = "/"

// DefaultRoutes returns the static route classification of the front end.
func DefaultRoutes() RouteTable {
	return RouteTable{LandingPath: Protected}
}

// Classify returns the protection level of path.
func (t RouteTable) Classify(path string) Protection {
	if p, ok := t[path]; ok {
		return p
	}
	return Public
}

// AuthEventKind identifies a journaled auth activity.
type AuthEventKind string

const (
	// EventGateRedirect is recorded when the access gate turns a request away.
	EventGateRedirect AuthEventKind = "gate_redirect"
	// EventLogout is recorded when a logout action completes remotely.
	EventLogout AuthEventKind = "logout"
	// EventLogoutFailed is recorded when the remote logout failed but the
	// session cookie was still removed.
	EventLogoutFailed AuthEventKind = "logout_failed"
)

// AuthEvent is one entry of the auth activity journal.
type AuthEvent struct {
	// ID is the unique identifier of the event.
	ID string `json:"id"`
	// Kind is the activity type.
	Kind AuthEventKind `json:"kind"`
	// Path is the request path that triggered the event.
	Path string `json:"path"`
	// Detail holds a short free-form explanation, never a credential.
	Detail string `json:"detail"`
	// CreatedAt is the unix timestamp of the event.
	CreatedAt int64 `json:"created_at"`
}
