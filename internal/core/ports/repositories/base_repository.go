package repositories

import (
	"context"
)

// TransactionRunner runs a unit of work atomically: fn's mutations are all
// committed if it returns nil and all discarded otherwise.
type TransactionRunner interface {
	// RunInTx executes fn with a LedgerStore bound to a single storage transaction.
	RunInTx(ctx context.Context, fn func(ctx context.Context, store LedgerStore) error) error
}
