package errors

import (
	"errors"
	"fmt"
)

// Failure kinds surfaced by the session subsystem
var (
	// Authentication errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrRefreshRejected    = errors.New("refresh rejected")

	// Authorization errors
	ErrForbidden = errors.New("forbidden")

	// Transport errors
	ErrNetwork = errors.New("network failure")
	ErrTimeout = errors.New("request timed out")

	// Input errors
	ErrValidation = errors.New("validation failed")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// IsUnauthorized reports whether err is a 401-class failure. Both the
// expired-token and rejected-refresh cases wrap ErrUnauthorized.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsNetwork reports whether err is a connectivity or timeout failure,
// recoverable by retrying once the network returns.
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork) || errors.Is(err, ErrTimeout)
}

// IsValidation reports whether err is a bad-input failure on login or register.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
