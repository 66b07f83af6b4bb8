package dto

import (
	"errors"

	"github.com/iho/gobank/internal/usecase"
)

// Request validation errors. Malformed payloads are rejected here, before
// anything reaches the ledger core.
var (
	ErrMissingUsername = errors.New("username is required")
	ErrMissingPassword = errors.New("password is required")
	ErrMissingReceiver = errors.New("receiver is required")
	ErrMissingAmount   = errors.New("amount is required and must be a positive integer in minor units")
)

// RegisterRequest represents a request to register a user.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks required fields.
func (r *RegisterRequest) Validate() error {
	if r.Username == "" {
		return ErrMissingUsername
	}
	if r.Password == "" {
		return ErrMissingPassword
	}
	return nil
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Username: r.Username,
		Password: r.Password,
	}
}

// MoneyRequest represents a deposit, withdrawal or loan request. Amounts
// are integer minor currency units.
type MoneyRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Amount   int64  `json:"amount"`
}

// Validate checks required fields.
func (r *MoneyRequest) Validate() error {
	if r.Username == "" {
		return ErrMissingUsername
	}
	if r.Password == "" {
		return ErrMissingPassword
	}
	if r.Amount == 0 {
		return ErrMissingAmount
	}
	return nil
}

// TransferRequest represents a transfer request.
type TransferRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Receiver string `json:"receiver"`
	Amount   int64  `json:"amount"`
}

// Validate checks required fields.
func (r *TransferRequest) Validate() error {
	if r.Username == "" {
		return ErrMissingUsername
	}
	if r.Password == "" {
		return ErrMissingPassword
	}
	if r.Receiver == "" {
		return ErrMissingReceiver
	}
	if r.Amount == 0 {
		return ErrMissingAmount
	}
	return nil
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput() usecase.TransferInput {
	return usecase.TransferInput{
		Username: r.Username,
		Password: r.Password,
		Receiver: r.Receiver,
		Amount:   r.Amount,
	}
}

// BalanceRequest represents a balance query.
type BalanceRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks required fields.
func (r *BalanceRequest) Validate() error {
	if r.Username == "" {
		return ErrMissingUsername
	}
	if r.Password == "" {
		return ErrMissingPassword
	}
	return nil
}

// ToUseCaseInput converts to use case input.
func (r *BalanceRequest) ToUseCaseInput() usecase.BalanceInput {
	return usecase.BalanceInput{
		Username: r.Username,
		Password: r.Password,
	}
}
