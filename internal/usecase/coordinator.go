package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/iho/gobank/internal/domain"
)

// errNoCommit is returned by an apply func to report success without
// writing anything back. PayLoan uses it for the no-debt no-op.
var errNoCommit = errors.New("nothing to commit")

// txCoordinator applies updates spanning one or more accounts as a single
// atomic unit over a store that only offers per-record conditional writes.
//
// The per-account sequencer is the authoritative mechanism: while the
// tokens for the touched accounts are held, no other ledger operation can
// read or write them, so the snapshot-compute-commit sequence below cannot
// interleave with another operation on a shared account. The version check
// on commit is defense in depth against out-of-band writers.
type txCoordinator struct {
	accounts AccountRepository
	seq      *sequencer
}

func newTxCoordinator(accounts AccountRepository) *txCoordinator {
	return &txCoordinator{
		accounts: accounts,
		seq:      newSequencer(),
	}
}

// execute snapshots the named accounts, runs apply on the copies and
// commits every copy back with a version check, all while holding the
// per-account sequencer tokens. apply sees a map keyed by username and may
// mutate the copies; any error from apply aborts with nothing written.
//
// Commits happen in the same deterministic order the tokens were acquired
// in (lexicographic, bank last). A version conflict on the first record is
// retried with fresh snapshots up to maxCommitRetries times; a conflict
// after a record has already been committed cannot be rolled back with
// single-record primitives and fails the operation immediately.
func (c *txCoordinator) execute(ctx context.Context, usernames []string, apply func(accounts map[string]*domain.Account) error) error {
	order := lockOrder(usernames...)

	release, err := c.seq.acquire(ctx, order)
	if err != nil {
		return err
	}
	defer release()

	attempt := func() error {
		snapshots := make(map[string]*domain.Account, len(order))
		versions := make(map[string]uint64, len(order))

		for _, username := range order {
			account, err := c.accounts.Get(ctx, username)
			if err != nil {
				return backoff.Permanent(err)
			}

			snapshots[username] = account
			versions[username] = account.Version
		}

		if err := apply(snapshots); err != nil {
			if errors.Is(err, errNoCommit) {
				return nil
			}

			return backoff.Permanent(err)
		}

		now := time.Now().UTC()

		committed := 0
		for _, username := range order {
			account := snapshots[username]
			account.UpdatedAt = now

			if err := c.accounts.CompareAndSwap(ctx, versions[username], account); err != nil {
				if errors.Is(err, domain.ErrVersionConflict) && committed == 0 {
					return err
				}

				return backoff.Permanent(err)
			}

			committed++
		}

		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = commitRetryInitialInterval
	b.MaxInterval = commitRetryMaxInterval

	err = backoff.Retry(attempt, backoff.WithContext(backoff.WithMaxRetries(b, maxCommitRetries), ctx))
	if err != nil {
		if errors.Is(err, domain.ErrVersionConflict) {
			return domain.ErrConflict
		}

		return err
	}

	return nil
}
