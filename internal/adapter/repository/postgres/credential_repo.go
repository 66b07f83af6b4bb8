package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/iho/gobank/internal/domain"
)

// CredentialRepository implements usecase.CredentialRepository on
// PostgreSQL. Passwords are stored bcrypt-hashed; the hash never leaves
// this package.
type CredentialRepository struct {
	pool *pgxpool.Pool
}

// NewCredentialRepository creates a new CredentialRepository.
func NewCredentialRepository(pool *pgxpool.Pool) *CredentialRepository {
	return &CredentialRepository{pool: pool}
}

const createCredentialSQL = `
INSERT INTO credentials (username, password_hash, created_at)
VALUES ($1, $2, now())`

// Create inserts a new credential record.
func (r *CredentialRepository) Create(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, createCredentialSQL, username, hash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return domain.ErrUserExists
		}

		return err
	}

	return nil
}

const deleteCredentialSQL = `DELETE FROM credentials WHERE username = $1`

// Delete removes a credential record. Deleting an absent record is not an
// error.
func (r *CredentialRepository) Delete(ctx context.Context, username string) error {
	_, err := r.pool.Exec(ctx, deleteCredentialSQL, username)
	return err
}

const credentialExistsSQL = `SELECT EXISTS (SELECT 1 FROM credentials WHERE username = $1)`

// Exists reports whether a credential record exists for username.
func (r *CredentialRepository) Exists(ctx context.Context, username string) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, credentialExistsSQL, username).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

const getCredentialSQL = `SELECT password_hash FROM credentials WHERE username = $1`

// Verify checks the password against the stored hash. Unknown usernames
// and wrong passwords both report domain.ErrInvalidCredentials.
func (r *CredentialRepository) Verify(ctx context.Context, username, password string) error {
	var hash []byte
	err := r.pool.QueryRow(ctx, getCredentialSQL, username).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrInvalidCredentials
		}

		return err
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return domain.ErrInvalidCredentials
	}

	return nil
}
