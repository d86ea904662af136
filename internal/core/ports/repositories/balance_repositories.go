package repositories

import (
	"context"

	"github.com/SscSPs/token_ledger/internal/core/domain"
)

// BalanceReader defines read operations for balance records
type BalanceReader interface {
	// FindBalance retrieves the record of owner for a symbol code.
	// Returns apperrors.ErrNotFound if the record does not exist.
	FindBalance(ctx context.Context, owner string, symbolCode string) (*domain.Balance, error)

	// ListBalancesByOwner retrieves every record held by owner ordered by symbol code.
	ListBalancesByOwner(ctx context.Context, owner string) ([]domain.Balance, error)

	// ListBalancesBySymbol retrieves every record of a symbol code.
	ListBalancesBySymbol(ctx context.Context, symbolCode string) ([]domain.Balance, error)

	// CountBalancesByPayer counts the records whose storage is paid by payer.
	CountBalancesByPayer(ctx context.Context, payer string) (int, error)
}

// BalanceWriter defines write operations for balance records
type BalanceWriter interface {
	// SaveBalance persists a new record, charging its storage to balance.Payer.
	SaveBalance(ctx context.Context, balance domain.Balance) error

	// UpdateBalance replaces the amount held in an existing record. The payer is unchanged.
	UpdateBalance(ctx context.Context, owner string, balance domain.Amount, updatedBy string) error

	// DeleteBalance erases the record of owner for a symbol code.
	DeleteBalance(ctx context.Context, owner string, symbolCode string) error
}
