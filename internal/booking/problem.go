// Package booking models the storefront's simulated forms: search, reservation, account
// and the filters modal. Nothing here is persisted.
package booking

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	ErrIncompleteSearch = errors.New("booking: incomplete search")
	ErrMissingDates     = errors.New("booking: missing stay dates")
	ErrGuestsOutOfRange = errors.New("booking: guests out of range")
	ErrInvalidEmail     = errors.New("booking: invalid email")
	ErrUnknownAuthMode  = errors.New("booking: unknown auth mode")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Problem is a rejected form submission. Message is shown to the visitor as is.
type Problem struct {
	Field   string
	Message string
	Err     error
}

func (p *Problem) Error() string {
	if p.Field == "" {
		return fmt.Sprintf("%v: %s", p.Err, p.Message)
	}
	return fmt.Sprintf("%v: %s: %s", p.Err, p.Field, p.Message)
}

func (p *Problem) Unwrap() error { return p.Err }

// AsProblem extracts a Problem from err.
func AsProblem(err error) (*Problem, bool) {
	var p *Problem
	if errors.As(err, &p) {
		return p, true
	}
	return nil, false
}

// firstField names the first failing field of a validator error.
func firstField(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field()
	}
	return ""
}
