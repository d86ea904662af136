package services

import (
	"context"

	"github.com/SscSPs/token_ledger/internal/core/domain"
)

// Authorizer checks that the action being applied carries an identity's authority.
type Authorizer interface {
	// RequireAuth returns apperrors.ErrUnauthorized unless the current action is
	// authorised by identity.
	RequireAuth(ctx context.Context, identity string) error
}

// Notifier informs an identity that an action affecting it was applied.
// Delivery is best effort; the ledger never depends on the outcome.
type Notifier interface {
	Notify(ctx context.Context, identity string, action domain.Action)
}

// AccountDirectory answers whether an identity is a known account.
type AccountDirectory interface {
	AccountExists(ctx context.Context, accountName string) (bool, error)
}

// ActionDispatcher applies an action induced by another one as a separately
// authorised and separately recorded action, inside the same atomic unit as the
// action that induced it.
type ActionDispatcher interface {
	Dispatch(ctx context.Context, action domain.Action) error
}
