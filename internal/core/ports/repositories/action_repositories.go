package repositories

import (
	"context"

	"github.com/SscSPs/token_ledger/internal/core/domain"
)

// ActionReader defines read operations for the action log
type ActionReader interface {
	// ListActions retrieves actions newest first using token-based pagination.
	// When account is non-empty only actions naming it as actor, sender, receiver or
	// recipient are returned. It returns the actions, a token for the next page, and an error.
	ListActions(ctx context.Context, account string, limit int, nextToken *string) ([]domain.Action, *string, error)
}

// ActionWriter defines write operations for the action log
type ActionWriter interface {
	// SaveAction appends an action and sets its Sequence.
	SaveAction(ctx context.Context, action *domain.Action) error
}
