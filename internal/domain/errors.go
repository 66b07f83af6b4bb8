package domain

import "errors"

var (
	// Credential errors
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")

	// Operation errors
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Concurrency errors
	ErrVersionConflict = errors.New("account version conflict")
	ErrConflict        = errors.New("account was modified concurrently, retries exhausted")
	ErrTimeout         = errors.New("timed out waiting for account lock")
)
