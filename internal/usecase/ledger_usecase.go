package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/iho/gobank/internal/domain"
)

// OperationMetrics records ledger operation outcomes. Implementations must
// be safe for concurrent use.
type OperationMetrics interface {
	ObserveOperation(operation string, err error, elapsed time.Duration)
}

// LedgerUseCase validates and executes money movements against the account
// store. All methods are safe for concurrent use; operations sharing an
// account are serialized by the coordinator.
type LedgerUseCase struct {
	accounts    AccountRepository
	credentials CredentialRepository
	coordinator *txCoordinator
	idGen       IDGenerator
	metrics     OperationMetrics

	bankReady atomic.Bool
}

// NewLedgerUseCase creates a new LedgerUseCase. metrics may be nil.
func NewLedgerUseCase(accounts AccountRepository, credentials CredentialRepository, idGen IDGenerator, metrics OperationMetrics) *LedgerUseCase {
	return &LedgerUseCase{
		accounts:    accounts,
		credentials: credentials,
		coordinator: newTxCoordinator(accounts),
		idGen:       idGen,
		metrics:     metrics,
	}
}

// Receipt confirms a committed operation and carries the account's balances
// as of the commit.
type Receipt struct {
	ID          string
	Operation   string
	Username    string
	Amount      int64
	CashBalance int64
	DebtBalance int64
	CreatedAt   time.Time
}

// Balance is a read-only snapshot of one account's balances.
type Balance struct {
	Username    string
	CashBalance int64
	DebtBalance int64
}

// EnsureBankAccount creates the fee-collecting bank account if it does not
// exist yet. It is called at startup and lazily before the first fee
// credit, so a fresh store needs no seeding step.
func (uc *LedgerUseCase) EnsureBankAccount(ctx context.Context) error {
	if uc.bankReady.Load() {
		return nil
	}

	err := uc.accounts.Create(ctx, domain.NewAccount(domain.BankUsername, time.Now().UTC()))
	if err != nil && !errors.Is(err, domain.ErrUserExists) {
		return err
	}

	uc.bankReady.Store(true)
	return nil
}

// DepositInput represents input for a deposit.
type DepositInput struct {
	Username string
	Password string
	Amount   int64
}

// Deposit credits the user with amount minus the fee and the bank with the
// fee, as one atomic update.
func (uc *LedgerUseCase) Deposit(ctx context.Context, input DepositInput) (receipt *Receipt, err error) {
	defer uc.observe("deposit", time.Now(), &err)

	if err = domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if err = uc.credentials.Verify(ctx, input.Username, input.Password); err != nil {
		return nil, err
	}

	if err = uc.EnsureBankAccount(ctx); err != nil {
		return nil, err
	}

	var cash, debt int64
	err = uc.coordinator.execute(ctx, []string{input.Username, domain.BankUsername}, func(accounts map[string]*domain.Account) error {
		user := accounts[input.Username]
		bank := accounts[domain.BankUsername]

		// Re-derive the post balance instead of trusting amount > 0 alone:
		// a fee larger than the deposit must never underflow the account.
		post := user.CashBalance + input.Amount - domain.Fee
		if post < 0 {
			return domain.ErrInvalidAmount
		}

		user.CashBalance = post
		bank.ApplyCredit(domain.Fee)

		cash, debt = user.CashBalance, user.DebtBalance
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.receipt("deposit", input.Username, input.Amount, cash, debt), nil
}

// WithdrawInput represents input for a withdrawal.
type WithdrawInput struct {
	Username string
	Password string
	Amount   int64
}

// Withdraw debits the user by amount plus the fee and credits the bank
// with the fee, as one atomic update.
func (uc *LedgerUseCase) Withdraw(ctx context.Context, input WithdrawInput) (receipt *Receipt, err error) {
	defer uc.observe("withdraw", time.Now(), &err)

	if err = domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if err = uc.credentials.Verify(ctx, input.Username, input.Password); err != nil {
		return nil, err
	}

	if err = uc.EnsureBankAccount(ctx); err != nil {
		return nil, err
	}

	var cash, debt int64
	err = uc.coordinator.execute(ctx, []string{input.Username, domain.BankUsername}, func(accounts map[string]*domain.Account) error {
		user := accounts[input.Username]
		bank := accounts[domain.BankUsername]

		if err := user.ValidateDebit(input.Amount + domain.Fee); err != nil {
			return err
		}

		user.ApplyDebit(input.Amount + domain.Fee)
		bank.ApplyCredit(domain.Fee)

		cash, debt = user.CashBalance, user.DebtBalance
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.receipt("withdraw", input.Username, input.Amount, cash, debt), nil
}

// TransferInput represents input for a transfer.
type TransferInput struct {
	Username string
	Password string
	Receiver string
	Amount   int64
}

// Transfer atomically debits the sender by amount plus the fee, credits
// the receiver with amount and credits the bank with the fee. A transfer
// to oneself is permitted and nets to a pure fee charge.
func (uc *LedgerUseCase) Transfer(ctx context.Context, input TransferInput) (receipt *Receipt, err error) {
	defer uc.observe("transfer", time.Now(), &err)

	if err = domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if err = uc.credentials.Verify(ctx, input.Username, input.Password); err != nil {
		return nil, err
	}

	if err = uc.EnsureBankAccount(ctx); err != nil {
		return nil, err
	}

	var cash, debt int64
	err = uc.coordinator.execute(ctx, []string{input.Username, input.Receiver, domain.BankUsername}, func(accounts map[string]*domain.Account) error {
		sender := accounts[input.Username]
		receiver := accounts[input.Receiver]
		bank := accounts[domain.BankUsername]

		if err := sender.ValidateDebit(input.Amount + domain.Fee); err != nil {
			return err
		}

		sender.ApplyDebit(input.Amount + domain.Fee)
		receiver.ApplyCredit(input.Amount)
		bank.ApplyCredit(domain.Fee)

		cash, debt = sender.CashBalance, sender.DebtBalance
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.receipt("transfer", input.Username, input.Amount, cash, debt), nil
}

// LoanInput represents input for taking out or paying back a loan.
type LoanInput struct {
	Username string
	Password string
	Amount   int64
}

// TakeLoan raises the user's cash and debt balances by amount. No fee.
func (uc *LedgerUseCase) TakeLoan(ctx context.Context, input LoanInput) (receipt *Receipt, err error) {
	defer uc.observe("take_loan", time.Now(), &err)

	if err = domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if err = uc.credentials.Verify(ctx, input.Username, input.Password); err != nil {
		return nil, err
	}

	var cash, debt int64
	err = uc.coordinator.execute(ctx, []string{input.Username}, func(accounts map[string]*domain.Account) error {
		user := accounts[input.Username]
		user.ApplyLoan(input.Amount)

		cash, debt = user.CashBalance, user.DebtBalance
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.receipt("take_loan", input.Username, input.Amount, cash, debt), nil
}

// PayLoanReceipt is a Receipt extended with the repayment outcome. Applied
// is how much cash and debt actually moved; NoDebt reports that there was
// nothing to repay, which is a successful no-op rather than an error.
type PayLoanReceipt struct {
	Receipt
	Applied int64
	NoDebt  bool
}

// PayLoan pays down the user's debt by min(amount, debt), taking the same
// amount of cash. No fee.
func (uc *LedgerUseCase) PayLoan(ctx context.Context, input LoanInput) (receipt *PayLoanReceipt, err error) {
	defer uc.observe("pay_loan", time.Now(), &err)

	if err = domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if err = uc.credentials.Verify(ctx, input.Username, input.Password); err != nil {
		return nil, err
	}

	var applied, cash, debt int64
	var noDebt bool

	err = uc.coordinator.execute(ctx, []string{input.Username}, func(accounts map[string]*domain.Account) error {
		user := accounts[input.Username]

		if err := user.ValidateDebit(input.Amount); err != nil {
			return err
		}

		if user.DebtBalance == 0 {
			noDebt = true
			cash, debt = user.CashBalance, user.DebtBalance
			return errNoCommit
		}

		applied = user.ApplyRepayment(input.Amount)
		cash, debt = user.CashBalance, user.DebtBalance
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &PayLoanReceipt{
		Receipt: *uc.receipt("pay_loan", input.Username, input.Amount, cash, debt),
		Applied: applied,
		NoDebt:  noDebt,
	}, nil
}

// BalanceInput represents input for a balance query.
type BalanceInput struct {
	Username string
	Password string
}

// GetBalance returns a read-only snapshot of the user's balances. The read
// bypasses the sequencer: committed state is always consistent, and a
// balance racing a concurrent operation is as-of before or after it, never
// in between.
func (uc *LedgerUseCase) GetBalance(ctx context.Context, input BalanceInput) (balance *Balance, err error) {
	defer uc.observe("balance", time.Now(), &err)

	if err = uc.credentials.Verify(ctx, input.Username, input.Password); err != nil {
		return nil, err
	}

	account, err := uc.accounts.Get(ctx, input.Username)
	if err != nil {
		return nil, err
	}

	return &Balance{
		Username:    account.Username,
		CashBalance: account.CashBalance,
		DebtBalance: account.DebtBalance,
	}, nil
}

func (uc *LedgerUseCase) receipt(operation, username string, amount, cash, debt int64) *Receipt {
	return &Receipt{
		ID:          uc.idGen.Generate(),
		Operation:   operation,
		Username:    username,
		Amount:      amount,
		CashBalance: cash,
		DebtBalance: debt,
		CreatedAt:   time.Now().UTC(),
	}
}

func (uc *LedgerUseCase) observe(operation string, start time.Time, err *error) {
	if uc.metrics == nil {
		return
	}

	uc.metrics.ObserveOperation(operation, *err, time.Since(start))
}
