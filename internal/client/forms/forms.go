// Package forms validates the sign-in and sign-up forms of the shell client
// and prompts the user for their fields.
package forms

import (
	"net/mail"
	"sort"
	"strings"

	"github.com/atinyakov/receipts/internal/models"
)

// MinPasswordLength is the shortest password the sign-up form accepts.
const MinPasswordLength = 8

// ValidationError lists the invalid fields of a form with the message to
// show next to each.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return strings.Join(parts, "; ")
}

// SignIn holds the sign-in form fields.
type SignIn struct {
	Email    string
	Password string
}

// Validate checks the form, returning a *ValidationError when a field is invalid.
func (f SignIn) Validate() error {
	errs := map[string]string{}
	validateEmail(errs, f.Email)
	if f.Password == "" {
		errs["password"] = "Password is required"
	}
	return asError(errs)
}

// SignUp holds the sign-up form fields.
type SignUp struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Validate checks the form, returning a *ValidationError when a field is invalid.
func (f SignUp) Validate() error {
	errs := map[string]string{}
	if strings.TrimSpace(f.FirstName) == "" {
		errs["firstName"] = "First name is required"
	}
	if strings.TrimSpace(f.LastName) == "" {
		errs["lastName"] = "Last name is required"
	}
	validateEmail(errs, f.Email)

	switch {
	case f.Password == "":
		errs["password"] = "Password is required"
	case len(f.Password) < MinPasswordLength:
		errs["password"] = "Password must be at least 8 characters"
	}

	switch {
	case f.ConfirmPassword == "":
		errs["confirmPassword"] = "Please confirm your password"
	case f.Password != f.ConfirmPassword:
		errs["confirmPassword"] = "Passwords do not match"
	}
	return asError(errs)
}

// Profile returns the non-secret fields of the form.
func (f SignUp) Profile() models.Profile {
	return models.Profile{
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
		Email:     strings.TrimSpace(f.Email),
	}
}

func validateEmail(errs map[string]string, email string) {
	email = strings.TrimSpace(email)
	if email == "" {
		errs["email"] = "Email is required"
		return
	}
	if !IsEmail(email) {
		errs["email"] = "Please enter a valid email address"
	}
}

// IsEmail reports whether s is a bare email address with a dotted domain.
func IsEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	domain := s[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}

func asError(errs map[string]string) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: errs}
}
