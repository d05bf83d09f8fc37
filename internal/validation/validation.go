// Package validation holds the field rules shared by the login, profile and kudo forms.
package validation

import (
	"fmt"
	"strings"

	"kudos_web/internal/config"

	"github.com/go-playground/validator/v10"
)

const defaultMinPasswordLength = 5

// Messages shown next to a rejected field.
const (
	MsgInvalidEmail      = "Please enter a valid email address"
	MsgEmptyValue        = "Please enter a value"
	MsgInvalidDepartment = "Please choose a department"
)

// Errors maps a form field name to the message rendered next to it.
// A non-empty Errors rejects the whole submission.
type Errors map[string]string

// Add records msg for field unless msg is empty. The first message per field wins.
func (e Errors) Add(field, msg string) {
	if msg == "" {
		return
	}
	if _, exists := e[field]; !exists {
		e[field] = msg
	}
}

// HasAny reports whether at least one field failed.
func (e Errors) HasAny() bool { return len(e) > 0 }

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

// Validator checks individual form values. Each check returns "" when the value is
// acceptable and the user-facing message otherwise.
type Validator struct {
	validate          *validator.Validate
	minPasswordLength int
}

// New builds a Validator using MIN_PASSWORD_LENGTH from cfg.
func New(cfg *config.Config) *Validator {
	return NewWithMinPasswordLength(cfg.MinPasswordLength)
}

// NewWithMinPasswordLength builds a Validator with an explicit password floor.
func NewWithMinPasswordLength(n int) *Validator {
	if n <= 0 {
		n = defaultMinPasswordLength
	}
	return &Validator{validate: validator.New(), minPasswordLength: n}
}

// MinPasswordLength returns the configured password floor.
func (v *Validator) MinPasswordLength() int { return v.minPasswordLength }

// Email requires a syntactically valid address.
func (v *Validator) Email(email string) string {
	if v.validate.Var(strings.TrimSpace(email), "required,email") != nil {
		return MsgInvalidEmail
	}
	return ""
}

// Password requires at least MinPasswordLength characters.
func (v *Validator) Password(password string) string {
	if v.validate.Var(password, fmt.Sprintf("min=%d", v.minPasswordLength)) != nil {
		return fmt.Sprintf("Please enter a password that is at least %d characters long", v.minPasswordLength)
	}
	return ""
}

// Name requires a value that is not just whitespace.
func (v *Validator) Name(name string) string {
	if v.validate.Var(strings.TrimSpace(name), "required") != nil {
		return MsgEmptyValue
	}
	return ""
}

// OneOf requires value to be one of allowed. Used for the department and style enums.
func (v *Validator) OneOf(value string, allowed []string, msg string) string {
	if value == "" || v.validate.Var(value, "oneof="+strings.Join(allowed, " ")) != nil {
		return msg
	}
	return ""
}
