package memory

import (
	"context"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/iho/gobank/internal/domain"
)

// CredentialRepository implements usecase.CredentialRepository in memory.
// Passwords are stored bcrypt-hashed, same as the postgres adapter.
type CredentialRepository struct {
	mu     sync.RWMutex
	hashes map[string][]byte
}

// NewCredentialRepository creates an empty in-memory credential store.
func NewCredentialRepository() *CredentialRepository {
	return &CredentialRepository{
		hashes: make(map[string][]byte),
	}
}

// Create stores a new credential record.
func (r *CredentialRepository) Create(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.hashes[username]; ok {
		return domain.ErrUserExists
	}

	r.hashes[username] = hash
	return nil
}

// Delete removes a credential record. Deleting an absent record is not an
// error; compensation during registration relies on that.
func (r *CredentialRepository) Delete(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.hashes, username)
	return nil
}

// Exists reports whether a credential record exists for username.
func (r *CredentialRepository) Exists(ctx context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.hashes[username]
	return ok, nil
}

// Verify checks the password against the stored hash. Unknown usernames
// and wrong passwords both report domain.ErrInvalidCredentials.
func (r *CredentialRepository) Verify(ctx context.Context, username, password string) error {
	r.mu.RLock()
	hash, ok := r.hashes[username]
	r.mu.RUnlock()

	if !ok {
		return domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return domain.ErrInvalidCredentials
	}

	return nil
}
