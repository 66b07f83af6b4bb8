package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iho/gobank/internal/domain"
)

// FakeAccountRepository is an in-memory implementation of
// usecase.AccountRepository. Individual methods can be overridden through
// the Func fields.
type FakeAccountRepository struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account

	GetFunc            func(ctx context.Context, username string) (*domain.Account, error)
	CreateFunc         func(ctx context.Context, account *domain.Account) error
	CompareAndSwapFunc func(ctx context.Context, expectedVersion uint64, account *domain.Account) error
}

func NewFakeAccountRepository() *FakeAccountRepository {
	return &FakeAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (m *FakeAccountRepository) Get(ctx context.Context, username string) (*domain.Account, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, username)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.accounts[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	return account.Clone(), nil
}

func (m *FakeAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.accounts[account.Username]; ok {
		return domain.ErrUserExists
	}

	m.accounts[account.Username] = account.Clone()
	return nil
}

func (m *FakeAccountRepository) CompareAndSwap(ctx context.Context, expectedVersion uint64, account *domain.Account) error {
	if m.CompareAndSwapFunc != nil {
		return m.CompareAndSwapFunc(ctx, expectedVersion, account)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.accounts[account.Username]
	if !ok {
		return domain.ErrUserNotFound
	}

	if current.Version != expectedVersion {
		return domain.ErrVersionConflict
	}

	committed := account.Clone()
	committed.Version = expectedVersion + 1
	m.accounts[account.Username] = committed
	return nil
}

// Seed stores an account directly, bypassing Create semantics.
func (m *FakeAccountRepository) Seed(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.Username] = account.Clone()
}

// FakeCredentialRepository is an in-memory implementation of
// usecase.CredentialRepository storing plaintext passwords.
type FakeCredentialRepository struct {
	mu        sync.Mutex
	passwords map[string]string

	VerifyFunc func(ctx context.Context, username, password string) error
	DeleteFunc func(ctx context.Context, username string) error
}

func NewFakeCredentialRepository() *FakeCredentialRepository {
	return &FakeCredentialRepository{
		passwords: make(map[string]string),
	}
}

func (m *FakeCredentialRepository) Create(ctx context.Context, username, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.passwords[username]; ok {
		return domain.ErrUserExists
	}

	m.passwords[username] = password
	return nil
}

func (m *FakeCredentialRepository) Delete(ctx context.Context, username string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, username)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.passwords, username)
	return nil
}

func (m *FakeCredentialRepository) Exists(ctx context.Context, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.passwords[username]
	return ok, nil
}

func (m *FakeCredentialRepository) Verify(ctx context.Context, username, password string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, username, password)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.passwords[username]
	if !ok || stored != password {
		return domain.ErrInvalidCredentials
	}

	return nil
}

// FakeIDGenerator generates sequential IDs.
type FakeIDGenerator struct {
	mu   sync.Mutex
	next int

	GenerateFunc func() string
}

func NewFakeIDGenerator() *FakeIDGenerator {
	return &FakeIDGenerator{}
}

func (m *FakeIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.next++
	return fmt.Sprintf("receipt-%06d", m.next)
}

// FakeIdempotencyStore is an in-memory usecase.IdempotencyStore.
type FakeIdempotencyStore struct {
	mu        sync.Mutex
	responses map[string][]byte
}

func NewFakeIdempotencyStore() *FakeIdempotencyStore {
	return &FakeIdempotencyStore{
		responses: make(map[string][]byte),
	}
}

func (m *FakeIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.responses[key]; ok {
		return true, existing, nil
	}

	if response != nil {
		m.responses[key] = response
	}

	return false, nil, nil
}

func (m *FakeIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.responses[key] = response
	return nil
}
