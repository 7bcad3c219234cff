package booking

import "strings"

// AuthMode selects the simulated account flow.
type AuthMode string

const (
	AuthLogin  AuthMode = "login"
	AuthSignup AuthMode = "signup"
)

// ParseAuthMode accepts "login" or "signup".
func ParseAuthMode(raw string) (AuthMode, error) {
	switch m := AuthMode(strings.ToLower(strings.TrimSpace(raw))); m {
	case AuthLogin, AuthSignup:
		return m, nil
	}
	return "", ErrUnknownAuthMode
}

// Title is the dialog heading for the mode.
func (m AuthMode) Title() string {
	if m == AuthSignup {
		return "Sign up"
	}
	return "Log in"
}

// Credentials is the account dialog submission. The password is accepted and discarded.
type Credentials struct {
	Email    string `validate:"required,email"`
	Password string
}

// Validate requires a well-formed email.
func (c Credentials) Validate() error {
	c.Email = strings.TrimSpace(c.Email)
	if err := validate.Struct(c); err != nil {
		return &Problem{Field: "Email", Message: "Please enter a valid email address", Err: ErrInvalidEmail}
	}
	return nil
}

// SocialProviders lists the sign-in buttons, keyed by path segment.
var SocialProviders = map[string]string{
	"google":   "Google",
	"facebook": "Facebook",
	"apple":    "Apple",
}
