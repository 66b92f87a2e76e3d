package service

import (
	"net/http"

	"github.com/interinest/marketplace/internal/identity"
	"github.com/interinest/marketplace/pkg/util/errorutil"
)

// Session issuer failures. Each is rendered to the client as code + message.
var (
	ErrInvalidCredentials   = errorutil.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password. Please try again.", http.StatusUnauthorized, nil)
	ErrInvalidEmailFormat   = errorutil.NewDomainError("INVALID_EMAIL", "Please enter a valid email address.", http.StatusBadRequest, nil)
	ErrAccountDisabled      = errorutil.NewDomainError("ACCOUNT_DISABLED", "This account has been disabled.", http.StatusForbidden, nil)
	ErrTooManyAttempts      = errorutil.NewDomainError("TOO_MANY_ATTEMPTS", "Too many failed attempts. Please try again later.", http.StatusTooManyRequests, nil)
	ErrAccountNotRegistered = errorutil.NewDomainError("ACCOUNT_NOT_REGISTERED", "Account not found. Please register first.", http.StatusForbidden, nil)
	ErrEmailAlreadyInUse    = errorutil.NewDomainError("EMAIL_IN_USE", "This email is already registered. Try logging in instead.", http.StatusConflict, nil)
	ErrWeakPassword         = errorutil.NewDomainError("WEAK_PASSWORD", "Password is too weak. Use at least 6 characters.", http.StatusBadRequest, nil)
	ErrSignupDisabled       = errorutil.NewDomainError("SIGNUP_DISABLED", "Email/password sign-up is currently disabled.", http.StatusForbidden, nil)
	ErrPhoneAlreadyInUse    = errorutil.NewDomainError("PHONE_IN_USE", "This phone number is already registered.", http.StatusConflict, nil)
	ErrLoginFailed          = errorutil.NewDomainError("AUTH_FAILED", "Login failed. Please try again.", http.StatusInternalServerError, nil)
	ErrRegistrationFailed   = errorutil.NewDomainError("AUTH_FAILED", "Registration failed. Please try again.", http.StatusInternalServerError, nil)
)

func mapLoginError(err error) error {
	code, ok := identity.CodeOf(err)
	if !ok {
		return ErrLoginFailed
	}
	switch code {
	case identity.CodeInvalidCredential:
		return ErrInvalidCredentials
	case identity.CodeInvalidEmail:
		return ErrInvalidEmailFormat
	case identity.CodeUserDisabled:
		return ErrAccountDisabled
	case identity.CodeTooManyRequests:
		return ErrTooManyAttempts
	}
	return ErrLoginFailed
}

func mapRegistrationError(err error) error {
	code, ok := identity.CodeOf(err)
	if !ok {
		return ErrRegistrationFailed
	}
	switch code {
	case identity.CodeEmailAlreadyInUse:
		return ErrEmailAlreadyInUse
	case identity.CodeInvalidEmail:
		return ErrInvalidEmailFormat
	case identity.CodeWeakPassword:
		return ErrWeakPassword
	case identity.CodeOperationNotAllowed:
		return ErrSignupDisabled
	}
	return ErrRegistrationFailed
}
