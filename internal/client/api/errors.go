package api

import (
	"errors"
	"fmt"
)

// ConfigurationError reports an auth endpoint whose URL could not be
// resolved. It is fatal to the attempted operation only.
type ConfigurationError struct {
	// Endpoint names the operation ("login", "register", "logout").
	Endpoint string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s endpoint is not configured", e.Endpoint)
}

// AuthError reports a non-success response from the auth API.
type AuthError struct {
	// Status is the HTTP status code of the response.
	Status int
	// Message is the server-supplied reason, or a synthesized one that
	// embeds Status.
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// TransportError reports a request that produced no usable response:
// network failure or an unparseable success body.
type TransportError struct {
	// Op names the operation ("login", "register", "logout").
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UserMessage returns the text to show for err: the server's own message
// for an AuthError, fallback for everything else.
func UserMessage(err error, fallback string) string {
	var authErr *AuthError
	if errors.As(err, &authErr) && authErr.Message != "" {
		return authErr.Message
	}
	return fallback
}
