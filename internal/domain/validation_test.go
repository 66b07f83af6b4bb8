package domain_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/iho/gobank/internal/domain"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name        string
		username    string
		expectError bool
	}{
		{name: "valid simple", username: "alice", expectError: false},
		{name: "valid with separators", username: "alice.smith_1-a", expectError: false},
		{name: "minimum length", username: "abc", expectError: false},
		{name: "too short", username: "ab", expectError: true},
		{name: "too long", username: strings.Repeat("a", 65), expectError: true},
		{name: "empty", username: "", expectError: true},
		{name: "leading separator", username: "-alice", expectError: true},
		{name: "illegal characters", username: "al ice!", expectError: true},
		{name: "reserved bank name", username: domain.BankUsername, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateUsername(tt.username)

			if tt.expectError {
				if !errors.Is(err, domain.ErrInvalidUsername) {
					t.Errorf("expected ErrInvalidUsername, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name        string
		password    string
		expectError bool
	}{
		{name: "valid", password: "correct-horse", expectError: false},
		{name: "minimum length", password: "12345678", expectError: false},
		{name: "too short", password: "1234567", expectError: true},
		{name: "too long", password: strings.Repeat("x", 129), expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidatePassword(tt.password)

			if tt.expectError {
				if !errors.Is(err, domain.ErrPasswordTooWeak) {
					t.Errorf("expected ErrPasswordTooWeak, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name        string
		amount      int64
		expectError bool
	}{
		{name: "valid", amount: 100, expectError: false},
		{name: "one minor unit", amount: 1, expectError: false},
		{name: "maximum", amount: domain.MaxAmount, expectError: false},
		{name: "zero", amount: 0, expectError: true},
		{name: "negative", amount: -1, expectError: true},
		{name: "above maximum", amount: domain.MaxAmount + 1, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateAmount(tt.amount)

			if tt.expectError {
				if !errors.Is(err, domain.ErrInvalidAmount) {
					t.Errorf("expected ErrInvalidAmount, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
