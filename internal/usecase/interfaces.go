package usecase

import (
	"context"
	"time"

	"github.com/iho/gobank/internal/domain"
)

// AccountRepository defines durable keyed storage of account records.
// Each call is individually atomic; no cross-record transactions are
// assumed. Get returns a private copy the caller may mutate freely.
type AccountRepository interface {
	Get(ctx context.Context, username string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) error

	// CompareAndSwap commits account only if the stored record still carries
	// expectedVersion, persisting it with the version bumped by one. Returns
	// domain.ErrVersionConflict if the record changed in between, and
	// domain.ErrUserNotFound if it does not exist.
	CompareAndSwap(ctx context.Context, expectedVersion uint64, account *domain.Account) error
}

// CredentialRepository defines durable keyed storage of username to
// credential-hash records. Hashing is an implementation concern of the
// store; the core only ever sees pass/fail.
type CredentialRepository interface {
	Create(ctx context.Context, username, password string) error
	Delete(ctx context.Context, username string) error
	Exists(ctx context.Context, username string) (bool, error)

	// Verify returns domain.ErrInvalidCredentials when the username is
	// unknown or the password does not match. The two cases are not
	// distinguished to the caller.
	Verify(ctx context.Context, username, password string) error
}

// IDGenerator generates unique IDs for operation receipts.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
