package domain_test

import (
	"testing"
	"time"

	"github.com/iho/gobank/internal/domain"
)

func TestAccount_ValidateDebit(t *testing.T) {
	tests := []struct {
		name        string
		cash        int64
		amount      int64
		expectError bool
	}{
		{name: "sufficient funds", cash: 100, amount: 50, expectError: false},
		{name: "exact balance", cash: 100, amount: 100, expectError: false},
		{name: "insufficient funds", cash: 100, amount: 101, expectError: true},
		{name: "zero balance", cash: 0, amount: 1, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := &domain.Account{Username: "alice", CashBalance: tt.cash}

			err := account.ValidateDebit(tt.amount)

			if tt.expectError {
				if err != domain.ErrInsufficientFunds {
					t.Errorf("expected ErrInsufficientFunds, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAccount_ApplyLoan(t *testing.T) {
	account := &domain.Account{Username: "alice", CashBalance: 10, DebtBalance: 5}

	account.ApplyLoan(100)

	if account.CashBalance != 110 {
		t.Errorf("expected cash 110, got %d", account.CashBalance)
	}
	if account.DebtBalance != 105 {
		t.Errorf("expected debt 105, got %d", account.DebtBalance)
	}
}

func TestAccount_ApplyRepayment(t *testing.T) {
	tests := []struct {
		name            string
		cash            int64
		debt            int64
		amount          int64
		expectedApplied int64
		expectedCash    int64
		expectedDebt    int64
	}{
		{
			name: "partial repayment",
			cash: 100, debt: 80, amount: 30,
			expectedApplied: 30, expectedCash: 70, expectedDebt: 50,
		},
		{
			name: "exact repayment",
			cash: 100, debt: 80, amount: 80,
			expectedApplied: 80, expectedCash: 20, expectedDebt: 0,
		},
		{
			name: "overpayment clamped to debt",
			cash: 100, debt: 30, amount: 100,
			expectedApplied: 30, expectedCash: 70, expectedDebt: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := &domain.Account{Username: "alice", CashBalance: tt.cash, DebtBalance: tt.debt}

			applied := account.ApplyRepayment(tt.amount)

			if applied != tt.expectedApplied {
				t.Errorf("expected applied %d, got %d", tt.expectedApplied, applied)
			}
			if account.CashBalance != tt.expectedCash {
				t.Errorf("expected cash %d, got %d", tt.expectedCash, account.CashBalance)
			}
			if account.DebtBalance != tt.expectedDebt {
				t.Errorf("expected debt %d, got %d", tt.expectedDebt, account.DebtBalance)
			}
		})
	}
}

func TestAccount_Clone(t *testing.T) {
	original := domain.NewAccount("alice", time.Now().UTC())
	original.CashBalance = 100

	clone := original.Clone()
	clone.CashBalance = 50
	clone.Version = 7

	if original.CashBalance != 100 {
		t.Errorf("clone mutation leaked into original: cash %d", original.CashBalance)
	}
	if original.Version != 0 {
		t.Errorf("clone mutation leaked into original: version %d", original.Version)
	}
}

func TestAccount_IsBank(t *testing.T) {
	bank := domain.NewAccount(domain.BankUsername, time.Now().UTC())
	if !bank.IsBank() {
		t.Error("expected bank account to be recognized")
	}

	alice := domain.NewAccount("alice", time.Now().UTC())
	if alice.IsBank() {
		t.Error("expected regular account not to be the bank")
	}
}
