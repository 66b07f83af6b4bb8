package domain

import "time"

// BankUsername is the reserved account that accumulates transaction fees.
// It is an ordinary account record; only its name is special.
const BankUsername = "BANK"

// Fee is the flat charge, in minor currency units, credited to the bank
// account on every deposit, withdrawal and transfer. Loans carry no fee.
const Fee int64 = 1

// Account represents one ledger participant. Balances are integer minor
// currency units (e.g. cents); both must be non-negative after every
// committed update. Version is bumped by the store on each commit and is
// used to detect concurrent modification.
type Account struct {
	Username    string
	CashBalance int64
	DebtBalance int64
	Version     uint64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewAccount returns a zero-balance account for username.
func NewAccount(username string, now time.Time) *Account {
	return &Account{
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a copy of the account.
func (a *Account) Clone() *Account {
	clone := *a
	return &clone
}

// IsBank reports whether this is the fee-collecting bank account.
func (a *Account) IsBank() bool {
	return a.Username == BankUsername
}

// ValidateDebit checks that the account can give up amount in cash without
// going negative.
func (a *Account) ValidateDebit(amount int64) error {
	if a.CashBalance-amount < 0 {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyDebit removes amount from the cash balance.
func (a *Account) ApplyDebit(amount int64) {
	a.CashBalance -= amount
}

// ApplyCredit adds amount to the cash balance.
func (a *Account) ApplyCredit(amount int64) {
	a.CashBalance += amount
}

// ApplyLoan raises cash and debt in lockstep.
func (a *Account) ApplyLoan(amount int64) {
	a.CashBalance += amount
	a.DebtBalance += amount
}

// ApplyRepayment pays down debt with cash. The repayment is clamped to the
// outstanding debt so it never takes more cash than is actually owed and
// never drives the debt balance negative. Returns the amount applied.
func (a *Account) ApplyRepayment(amount int64) int64 {
	applied := amount
	if applied > a.DebtBalance {
		applied = a.DebtBalance
	}
	a.CashBalance -= applied
	a.DebtBalance -= applied
	return applied
}
