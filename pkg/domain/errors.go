// Package domain holds the error taxonomy shared by every wallet component.
// Entity packages wrap these sentinels so callers can match either the
// specific error or its category with errors.Is.
package domain

import "errors"

// Common domain errors
var (
	// ErrNotFound is returned when an identity, wallet, transaction, session or OTP is absent or expired
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrInvalidCredentials is returned when the password step of a login fails.
	// It never tells apart an unknown username from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidOTP is returned when the one-time code step of a login fails
	ErrInvalidOTP = errors.New("invalid one-time code")
	// ErrUnauthenticated is returned when a session token is absent, expired or revoked
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden is returned when a user is not allowed to perform an action
	ErrForbidden = errors.New("forbidden")
	// ErrInsufficientFunds is returned when a debit exceeds the wallet balance
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInvalidKind is returned when a transaction kind is neither credit nor debit
	ErrInvalidKind = errors.New("invalid transaction kind")
	// ErrInvalidAmount is returned when a transaction amount is not a positive magnitude
	ErrInvalidAmount = errors.New("transaction amount must be positive")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrPersistence is returned when the underlying store could not apply a write
	ErrPersistence = errors.New("persistence error")
)
