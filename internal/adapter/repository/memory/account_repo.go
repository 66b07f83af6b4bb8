// Package memory provides in-process repository implementations backed by
// maps. They satisfy the same contracts as the postgres adapters,
// including conditional-update semantics, and back the dev store mode and
// most of the test suite.
package memory

import (
	"context"
	"sync"

	"github.com/iho/gobank/internal/domain"
)

// AccountRepository implements usecase.AccountRepository in memory.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
}

// NewAccountRepository creates an empty in-memory account store.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Get returns a copy of the stored account.
func (r *AccountRepository) Get(ctx context.Context, username string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	return account.Clone(), nil
}

// Create stores a new account record.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.Username]; ok {
		return domain.ErrUserExists
	}

	r.accounts[account.Username] = account.Clone()
	return nil
}

// CompareAndSwap commits account if the stored record still carries
// expectedVersion, persisting it with the version bumped by one.
func (r *AccountRepository) CompareAndSwap(ctx context.Context, expectedVersion uint64, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.accounts[account.Username]
	if !ok {
		return domain.ErrUserNotFound
	}

	if current.Version != expectedVersion {
		return domain.ErrVersionConflict
	}

	committed := account.Clone()
	committed.Version = expectedVersion + 1
	r.accounts[account.Username] = committed
	return nil
}
