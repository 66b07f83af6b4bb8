// Package postgres implements the repository contracts on PostgreSQL via
// pgx. The conditional update maps to an UPDATE guarded by the stored
// version column; no explicit row locks are taken because the ledger core
// serializes writers itself.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gobank/internal/domain"
)

const pgErrUniqueViolation = "23505"

// AccountRepository implements usecase.AccountRepository on PostgreSQL.
type AccountRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{
		pool:    pool,
		retrier: NewRetrier(),
	}
}

const getAccountSQL = `
SELECT username, cash_balance, debt_balance, version, created_at, updated_at
FROM accounts
WHERE username = $1`

// Get retrieves an account by username.
func (r *AccountRepository) Get(ctx context.Context, username string) (*domain.Account, error) {
	var account domain.Account
	var version int64

	err := r.pool.QueryRow(ctx, getAccountSQL, username).Scan(
		&account.Username,
		&account.CashBalance,
		&account.DebtBalance,
		&version,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}

		return nil, err
	}

	account.Version = uint64(version)
	return &account, nil
}

const createAccountSQL = `
INSERT INTO accounts (username, cash_balance, debt_balance, version, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)`

// Create inserts a new account record.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.pool.Exec(ctx, createAccountSQL,
		account.Username,
		account.CashBalance,
		account.DebtBalance,
		int64(account.Version),
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return domain.ErrUserExists
		}

		return err
	}

	return nil
}

const casAccountSQL = `
UPDATE accounts
SET cash_balance = $2, debt_balance = $3, version = $4, updated_at = $5
WHERE username = $1 AND version = $6`

const accountExistsSQL = `SELECT EXISTS (SELECT 1 FROM accounts WHERE username = $1)`

// CompareAndSwap commits the account if the stored version still equals
// expectedVersion. The version guard in the WHERE clause makes the update
// atomic at the row level.
func (r *AccountRepository) CompareAndSwap(ctx context.Context, expectedVersion uint64, account *domain.Account) error {
	return r.retrier.Retry(ctx, func() error {
		tag, err := r.pool.Exec(ctx, casAccountSQL,
			account.Username,
			account.CashBalance,
			account.DebtBalance,
			int64(expectedVersion+1),
			account.UpdatedAt,
			int64(expectedVersion),
		)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			var exists bool
			if err := r.pool.QueryRow(ctx, accountExistsSQL, account.Username).Scan(&exists); err != nil {
				return err
			}

			if !exists {
				return domain.ErrUserNotFound
			}

			return domain.ErrVersionConflict
		}

		return nil
	})
}
