package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/iho/gobank/internal/domain"
)

// UserUseCase handles registration and credential checks.
type UserUseCase struct {
	credentials CredentialRepository
	accounts    AccountRepository
	metrics     OperationMetrics
}

// NewUserUseCase creates a new UserUseCase. metrics may be nil.
func NewUserUseCase(credentials CredentialRepository, accounts AccountRepository, metrics OperationMetrics) *UserUseCase {
	return &UserUseCase{
		credentials: credentials,
		accounts:    accounts,
		metrics:     metrics,
	}
}

// RegisterInput represents input for registering a user.
type RegisterInput struct {
	Username string
	Password string
}

// Register creates a credential record and a zero-balance account. The two
// stores are independent, so the account half cannot be made transactional
// with the credential half; instead a failed account create is compensated
// by deleting the credential record, leaving no partial registration
// behind.
func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (err error) {
	if uc.metrics != nil {
		start := time.Now()
		defer func() {
			uc.metrics.ObserveOperation("register", err, time.Since(start))
		}()
	}

	if err = domain.ValidateUsername(input.Username); err != nil {
		return err
	}

	if err = domain.ValidatePassword(input.Password); err != nil {
		return err
	}

	exists, err := uc.credentials.Exists(ctx, input.Username)
	if err != nil {
		err = fmt.Errorf("check user exists: %w", err)
		return err
	}
	if exists {
		err = domain.ErrUserExists
		return err
	}

	if err = uc.credentials.Create(ctx, input.Username, input.Password); err != nil {
		return err
	}

	if err = uc.accounts.Create(ctx, domain.NewAccount(input.Username, time.Now().UTC())); err != nil {
		if delErr := uc.credentials.Delete(ctx, input.Username); delErr != nil {
			err = fmt.Errorf("create account: %w (credential rollback failed: %v)", err, delErr)
			return err
		}

		err = fmt.Errorf("create account: %w", err)
		return err
	}

	return nil
}

// Authenticate verifies a username/password pair.
func (uc *UserUseCase) Authenticate(ctx context.Context, username, password string) error {
	return uc.credentials.Verify(ctx, username, password)
}
