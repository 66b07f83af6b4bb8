package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iho/gobank/internal/adapter/http/dto"
	"github.com/iho/gobank/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	Deposit(ctx context.Context, input usecase.DepositInput) (*usecase.Receipt, error)
	Withdraw(ctx context.Context, input usecase.WithdrawInput) (*usecase.Receipt, error)
	Transfer(ctx context.Context, input usecase.TransferInput) (*usecase.Receipt, error)
	TakeLoan(ctx context.Context, input usecase.LoanInput) (*usecase.Receipt, error)
	PayLoan(ctx context.Context, input usecase.LoanInput) (*usecase.PayLoanReceipt, error)
	GetBalance(ctx context.Context, input usecase.BalanceInput) (*usecase.Balance, error)
}

// LedgerHandler handles money-movement HTTP requests.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// Deposit credits the requesting account.
func (h *LedgerHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req dto.MoneyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	receipt, err := h.ledgerUC.Deposit(r.Context(), usecase.DepositInput{
		Username: req.Username,
		Password: req.Password,
		Amount:   req.Amount,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "deposit failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReceiptFromUseCase(receipt))
}

// Withdraw debits the requesting account.
func (h *LedgerHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req dto.MoneyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	receipt, err := h.ledgerUC.Withdraw(r.Context(), usecase.WithdrawInput{
		Username: req.Username,
		Password: req.Password,
		Amount:   req.Amount,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "withdrawal failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReceiptFromUseCase(receipt))
}

// Transfer moves money from the requesting account to a receiver.
func (h *LedgerHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	receipt, err := h.ledgerUC.Transfer(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "transfer failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReceiptFromUseCase(receipt))
}

// TakeLoan raises the requesting account's cash and debt.
func (h *LedgerHandler) TakeLoan(w http.ResponseWriter, r *http.Request) {
	var req dto.MoneyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	receipt, err := h.ledgerUC.TakeLoan(r.Context(), usecase.LoanInput{
		Username: req.Username,
		Password: req.Password,
		Amount:   req.Amount,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "loan failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReceiptFromUseCase(receipt))
}

// PayLoan pays down the requesting account's debt.
func (h *LedgerHandler) PayLoan(w http.ResponseWriter, r *http.Request) {
	var req dto.MoneyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	receipt, err := h.ledgerUC.PayLoan(r.Context(), usecase.LoanInput{
		Username: req.Username,
		Password: req.Password,
		Amount:   req.Amount,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "loan payment failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PayLoanFromUseCase(receipt))
}

// Balance returns the requesting account's balances.
func (h *LedgerHandler) Balance(w http.ResponseWriter, r *http.Request) {
	var req dto.BalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	balance, err := h.ledgerUC.GetBalance(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "balance query failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromUseCase(balance))
}
