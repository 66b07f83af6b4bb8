package dto

import (
	"time"

	"github.com/iho/gobank/internal/usecase"
)

// ReceiptResponse confirms a committed operation.
type ReceiptResponse struct {
	ID          string    `json:"id"`
	Operation   string    `json:"operation"`
	Username    string    `json:"username"`
	Amount      int64     `json:"amount"`
	CashBalance int64     `json:"cash_balance"`
	DebtBalance int64     `json:"debt_balance"`
	CreatedAt   time.Time `json:"created_at"`
}

// ReceiptFromUseCase converts a usecase receipt to a response.
func ReceiptFromUseCase(r *usecase.Receipt) *ReceiptResponse {
	return &ReceiptResponse{
		ID:          r.ID,
		Operation:   r.Operation,
		Username:    r.Username,
		Amount:      r.Amount,
		CashBalance: r.CashBalance,
		DebtBalance: r.DebtBalance,
		CreatedAt:   r.CreatedAt,
	}
}

// PayLoanResponse is a receipt extended with the repayment outcome.
type PayLoanResponse struct {
	ReceiptResponse
	Applied int64 `json:"applied"`
	NoDebt  bool  `json:"no_debt"`
}

// PayLoanFromUseCase converts a usecase pay-loan receipt to a response.
func PayLoanFromUseCase(r *usecase.PayLoanReceipt) *PayLoanResponse {
	return &PayLoanResponse{
		ReceiptResponse: *ReceiptFromUseCase(&r.Receipt),
		Applied:         r.Applied,
		NoDebt:          r.NoDebt,
	}
}

// BalanceResponse is a read-only snapshot of one account's balances.
type BalanceResponse struct {
	Username    string `json:"username"`
	CashBalance int64  `json:"cash_balance"`
	DebtBalance int64  `json:"debt_balance"`
}

// BalanceFromUseCase converts a usecase balance to a response.
func BalanceFromUseCase(b *usecase.Balance) *BalanceResponse {
	return &BalanceResponse{
		Username:    b.Username,
		CashBalance: b.CashBalance,
		DebtBalance: b.DebtBalance,
	}
}

// RegisterResponse confirms a registration.
type RegisterResponse struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
