package domain

import "errors"

var (
	// ErrTokenAlreadyExists is returned when attempting to mint a token that already exists
	ErrTokenAlreadyExists = errors.New("token already exists")

	// ErrTokenNotFound is returned when a token is not found
	ErrTokenNotFound = errors.New("token not found")

	// ErrUnauthorized is returned when the caller is not allowed to act on a token
	ErrUnauthorized = errors.New("caller is not the token owner")

	// ErrInsufficientDeposit is returned when the attached deposit does not cover the storage cost
	ErrInsufficientDeposit = errors.New("insufficient deposit for storage")

	// ErrDepositNotAccepted is returned when a payment is attached to a call that does not take one
	ErrDepositNotAccepted = errors.New("method does not accept a deposit")

	// ErrMissingCaller is returned when a mutating call carries no caller identity
	ErrMissingCaller = errors.New("call has no caller identity")

	// ErrStorageReleased is returned when a growth-only call ends with less storage than it started with
	ErrStorageReleased = errors.New("storage usage decreased during a growth-only call")

	// ErrInvalidAccountID is returned when an account identifier is malformed
	ErrInvalidAccountID = errors.New("invalid account id")

	// ErrInvalidBalance is returned when a balance amount cannot be parsed or overflows
	ErrInvalidBalance = errors.New("invalid balance")

	// ErrInvalidCollectionMetadata is returned when collection metadata fails validation
	ErrInvalidCollectionMetadata = errors.New("invalid collection metadata")

	// ErrNotInitialized is returned when the registry has not been initialized
	ErrNotInitialized = errors.New("registry not initialized")

	// ErrAlreadyInitialized is returned when the registry is initialized twice
	ErrAlreadyInitialized = errors.New("registry already initialized")
)
