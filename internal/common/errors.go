// Package common defines sentinel errors shared by the service, repository
// and transport layers. Callers match them with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors.
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrEmailTaken   = errors.New("email already registered")

	// Credential errors. Both are reported to clients as the same
	// status so an attacker cannot tell a missing account from a wrong
	// password; they stay distinct here for logging.
	ErrCredentialsIncorrect = errors.New("credentials incorrect")

	// Bearer-token decode errors.
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
	ErrWeakSecret   = errors.New("signing secret too short")

	// Security-token lifecycle errors.
	ErrTokenAlreadyUsed = errors.New("token already used")
)
