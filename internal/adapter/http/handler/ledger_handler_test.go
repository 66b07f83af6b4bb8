package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/iho/gobank/internal/adapter/http/handler"
	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

type stubLedgerService struct {
	err error
}

func (s *stubLedgerService) receipt(operation, username string, amount int64) *usecase.Receipt {
	return &usecase.Receipt{
		ID:          "receipt-000001",
		Operation:   operation,
		Username:    username,
		Amount:      amount,
		CashBalance: 99,
		CreatedAt:   time.Now().UTC(),
	}
}

func (s *stubLedgerService) Deposit(ctx context.Context, input usecase.DepositInput) (*usecase.Receipt, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.receipt("deposit", input.Username, input.Amount), nil
}

func (s *stubLedgerService) Withdraw(ctx context.Context, input usecase.WithdrawInput) (*usecase.Receipt, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.receipt("withdraw", input.Username, input.Amount), nil
}

func (s *stubLedgerService) Transfer(ctx context.Context, input usecase.TransferInput) (*usecase.Receipt, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.receipt("transfer", input.Username, input.Amount), nil
}

func (s *stubLedgerService) TakeLoan(ctx context.Context, input usecase.LoanInput) (*usecase.Receipt, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.receipt("take_loan", input.Username, input.Amount), nil
}

func (s *stubLedgerService) PayLoan(ctx context.Context, input usecase.LoanInput) (*usecase.PayLoanReceipt, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &usecase.PayLoanReceipt{
		Receipt: *s.receipt("pay_loan", input.Username, input.Amount),
		Applied: input.Amount,
	}, nil
}

func (s *stubLedgerService) GetBalance(ctx context.Context, input usecase.BalanceInput) (*usecase.Balance, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &usecase.Balance{Username: input.Username, CashBalance: 99}, nil
}

func TestLedgerHandler_Deposit(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		serviceErr   error
		expectedCode int
	}{
		{
			name:         "success",
			body:         `{"username":"alice","password":"password-1","amount":100}`,
			expectedCode: http.StatusOK,
		},
		{
			name:         "malformed json",
			body:         `{"username":`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "missing amount",
			body:         `{"username":"alice","password":"password-1"}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "missing password",
			body:         `{"username":"alice","amount":100}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "invalid credentials",
			body:         `{"username":"alice","password":"wrong","amount":100}`,
			serviceErr:   domain.ErrInvalidCredentials,
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "timeout",
			body:         `{"username":"alice","password":"password-1","amount":100}`,
			serviceErr:   domain.ErrTimeout,
			expectedCode: http.StatusServiceUnavailable,
		},
		{
			name:         "conflict",
			body:         `{"username":"alice","password":"password-1","amount":100}`,
			serviceErr:   domain.ErrConflict,
			expectedCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewLedgerHandler(&stubLedgerService{err: tt.serviceErr})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/deposit", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Deposit(rec, req)

			if rec.Code != tt.expectedCode {
				t.Errorf("expected %d, got %d (%s)", tt.expectedCode, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestLedgerHandler_DepositResponseBody(t *testing.T) {
	h := handler.NewLedgerHandler(&stubLedgerService{})

	body, _ := json.Marshal(map[string]any{
		"username": "alice", "password": "password-1", "amount": 100,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/deposit", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Deposit(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %s", ct)
	}

	var result map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if result["operation"] != "deposit" {
		t.Errorf("expected operation deposit, got %v", result["operation"])
	}
	if result["id"] != "receipt-000001" {
		t.Errorf("expected receipt id, got %v", result["id"])
	}
}

func TestLedgerHandler_PayLoanIncludesOutcome(t *testing.T) {
	h := handler.NewLedgerHandler(&stubLedgerService{})

	body := `{"username":"alice","password":"password-1","amount":30}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/loans/pay", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.PayLoan(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var result map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if applied := result["applied"].(float64); applied != 30 {
		t.Errorf("expected applied 30, got %v", applied)
	}
	if _, ok := result["no_debt"]; !ok {
		t.Error("expected no_debt field in response")
	}
}

func TestLedgerHandler_WithdrawInsufficientFunds(t *testing.T) {
	h := handler.NewLedgerHandler(&stubLedgerService{err: domain.ErrInsufficientFunds})

	body := `{"username":"alice","password":"password-1","amount":100}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/withdraw", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Withdraw(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", rec.Code)
	}
}

func TestLedgerHandler_TransferMissingReceiver(t *testing.T) {
	h := handler.NewLedgerHandler(&stubLedgerService{})

	body := `{"username":"alice","password":"password-1","amount":100}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transfer", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Transfer(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
