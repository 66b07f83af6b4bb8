package usecase

import "time"

const (
	// maxCommitRetries bounds how often a conflicted commit is re-attempted
	// before the operation fails with domain.ErrConflict.
	maxCommitRetries = 3

	// Backoff between commit attempts. Conflicts can only come from
	// out-of-band writers, so the intervals are short.
	commitRetryInitialInterval = 5 * time.Millisecond
	commitRetryMaxInterval     = 50 * time.Millisecond

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)
