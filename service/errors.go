// Package service holds the business rules behind the HTTP handlers:
// password auth, identity reconciliation, credential issuance and the
// password reset flow
package service

import "errors"

var (
	// ErrInvalidCredentials covers every way a login can fail so the
	// response never reveals whether the email exists
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrEmailTaken    = errors.New("email already registered")
	ErrNotFound      = errors.New("record not found")
	ErrCategoryInUse = errors.New("category has associated articles")
	ErrNoPassword    = errors.New("must set a password first")
	ErrProviderAuth  = errors.New("authentication failed")
	ErrResetInvalid  = errors.New("invalid or expired reset token")
)

// ValidationError carries field-level messages in the same shape the
// JSON envelope emits them
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
