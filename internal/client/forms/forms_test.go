package forms

import (
	"testing"

	"github.com/atinyakov/receipts/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmail(t *testing.T) {
	valid := []string{"a@b.com", "john.doe+tag@example.co.uk"}
	invalid := []string{"", "plain", "a@b", "a@.com", "a@b.", "John <a@b.com>", "<a@b.com>", "a b@c.com"}

	for _, s := range valid {
		assert.True(t, IsEmail(s), s)
	}
	for _, s := range invalid {
		assert.False(t, IsEmail(s), s)
	}
}

func TestSignIn_Validate(t *testing.T) {
	tests := []struct {
		name string
		form SignIn
		want map[string]string
	}{
		{"valid", SignIn{Email: "a@b.com", Password: "x"}, nil},
		{"empty", SignIn{}, map[string]string{
			"email":    "Email is required",
			"password": "Password is required",
		}},
		{"bad email", SignIn{Email: "nope", Password: "x"}, map[string]string{
			"email": "Please enter a valid email address",
		}},
		{"blank email", SignIn{Email: "   ", Password: "x"}, map[string]string{
			"email": "Email is required",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.want, verr.Fields)
		})
	}
}

func TestSignUp_Validate(t *testing.T) {
	valid := SignUp{FirstName: "A", LastName: "B", Email: "a@b.com", Password: "12345678", ConfirmPassword: "12345678"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name  string
		edit  func(f *SignUp)
		field string
		msg   string
	}{
		{"missing first name", func(f *SignUp) { f.FirstName = " " }, "firstName", "First name is required"},
		{"missing last name", func(f *SignUp) { f.LastName = "" }, "lastName", "Last name is required"},
		{"bad email", func(f *SignUp) { f.Email = "a@b" }, "email", "Please enter a valid email address"},
		{"short password", func(f *SignUp) { f.Password, f.ConfirmPassword = "1234567", "1234567" }, "password", "Password must be at least 8 characters"},
		{"missing confirmation", func(f *SignUp) { f.ConfirmPassword = "" }, "confirmPassword", "Please confirm your password"},
		{"mismatch", func(f *SignUp) { f.ConfirmPassword = "87654321" }, "confirmPassword", "Passwords do not match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.edit(&f)

			var verr *ValidationError
			require.ErrorAs(t, f.Validate(), &verr)
			assert.Equal(t, map[string]string{tt.field: tt.msg}, verr.Fields)
		})
	}
}

func TestSignUp_Profile(t *testing.T) {
	f := SignUp{FirstName: " A ", LastName: "B", Email: "a@b.com ", Password: "secret-pw"}
	assert.Equal(t, models.Profile{FirstName: "A", LastName: "B", Email: "a@b.com"}, f.Profile())
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"password": "Password is required", "email": "Email is required"}}
	assert.Equal(t, "email: Email is required; password: Password is required", err.Error())
}
