package usecase

import (
	"context"
	"sort"
	"sync"

	"github.com/iho/gobank/internal/domain"
)

// sequencer serializes mutating operations per account. A token is a
// buffered channel of capacity one so that acquisition can be abandoned
// when the caller's context is cancelled while waiting.
type sequencer struct {
	mu     sync.Mutex
	tokens map[string]chan struct{}
}

func newSequencer() *sequencer {
	return &sequencer{
		tokens: make(map[string]chan struct{}),
	}
}

// token returns the lock token for username, creating it on first use.
// Entries are never removed; the map is bounded by the number of accounts.
func (s *sequencer) token(username string) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	tok, ok := s.tokens[username]
	if !ok {
		tok = make(chan struct{}, 1)
		s.tokens[username] = tok
	}

	return tok
}

// acquire takes the tokens for usernames, which must already be in global
// lock order (see lockOrder). On context cancellation it releases every
// token it holds and reports domain.ErrTimeout; no balance has changed at
// that point.
func (s *sequencer) acquire(ctx context.Context, usernames []string) (release func(), err error) {
	held := make([]chan struct{}, 0, len(usernames))
	release = func() {
		for i := len(held) - 1; i >= 0; i-- {
			<-held[i]
		}
	}

	for _, username := range usernames {
		tok := s.token(username)
		select {
		case tok <- struct{}{}:
			held = append(held, tok)
		case <-ctx.Done():
			release()
			return nil, domain.ErrTimeout
		}
	}

	return release, nil
}

// lockOrder returns the deduplicated usernames in the global acquisition
// order: lexicographic, with the bank account always last. Every operation
// acquiring tokens in this one order makes waiter cycles impossible.
func lockOrder(usernames ...string) []string {
	seen := make(map[string]bool, len(usernames))
	ordered := make([]string, 0, len(usernames))
	bank := false

	for _, username := range usernames {
		if seen[username] {
			continue
		}
		seen[username] = true

		if username == domain.BankUsername {
			bank = true
			continue
		}

		ordered = append(ordered, username)
	}

	sort.Strings(ordered)

	if bank {
		ordered = append(ordered, domain.BankUsername)
	}

	return ordered
}
