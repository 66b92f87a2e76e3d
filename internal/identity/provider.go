// Package identity verifies credentials and manages login accounts. It is the
// only place that sees passwords.
package identity

import (
	"context"
	"errors"
	"fmt"
)

// Identity is the authenticated subject returned by a provider.
type Identity struct {
	SubjectID string
	Email     string
}

// Code is the closed set of provider failure reasons.
type Code string

const (
	CodeInvalidCredential   Code = "invalid-credential"
	CodeUserDisabled        Code = "user-disabled"
	CodeTooManyRequests     Code = "too-many-requests"
	CodeWeakPassword        Code = "weak-password"
	CodeEmailAlreadyInUse   Code = "email-already-in-use"
	CodeInvalidEmail        Code = "invalid-email"
	CodeOperationNotAllowed Code = "operation-not-allowed"
)

// Error carries a provider Code and an optional cause.
type Error struct {
	Code Code
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("identity/%s: %v", e.Code, e.Err)
	}
	return "identity/" + string(e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code Code) error {
	return &Error{Code: code}
}

// CodeOf extracts the provider code from err.
func CodeOf(err error) (Code, bool) {
	var idErr *Error
	if errors.As(err, &idErr) {
		return idErr.Code, true
	}
	return "", false
}

// Provider is the identity collaborator used by the session issuer.
type Provider interface {
	VerifyCredentials(ctx context.Context, email, password string) (*Identity, error)
	CreateAccount(ctx context.Context, email, password string) (*Identity, error)
	DeleteAccount(ctx context.Context, subjectID string) error
}
