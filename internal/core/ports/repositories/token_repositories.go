package repositories

import (
	"context"

	"github.com/SscSPs/token_ledger/internal/core/domain"
)

// TokenStatReader defines read operations for the token registry
type TokenStatReader interface {
	// FindTokenStat retrieves the registry entry for a symbol code.
	// Returns apperrors.ErrNotFound if the symbol is not registered.
	FindTokenStat(ctx context.Context, symbolCode string) (*domain.TokenStat, error)

	// ListTokenStats retrieves all registry entries ordered by symbol code.
	ListTokenStats(ctx context.Context) ([]domain.TokenStat, error)
}

// TokenStatWriter defines write operations for the token registry
type TokenStatWriter interface {
	// SaveTokenStat persists a new registry entry.
	SaveTokenStat(ctx context.Context, stat domain.TokenStat) error

	// UpdateTokenSupply replaces the current supply of a registered symbol.
	UpdateTokenSupply(ctx context.Context, symbolCode string, supply domain.Amount, updatedBy string) error
}
