package services

import (
	"context"

	"github.com/SscSPs/token_ledger/internal/core/domain"
	"github.com/SscSPs/token_ledger/internal/dto"
)

// LedgerWriterSvc defines the operations that change ledger state. Each returns
// the actions it applied, the requested one first followed by any it induced.
type LedgerWriterSvc interface {
	// CreateToken registers a new symbol with its issuer and maximum supply.
	CreateToken(ctx context.Context, issuer string, maximumSupply domain.Amount, actor string) ([]domain.Action, error)

	// Issue mints quantity to the issuer and forwards it to `to` when they differ.
	Issue(ctx context.Context, to string, quantity domain.Amount, memo string, fundNewRecords bool, actor string) ([]domain.Action, error)

	// Burn retires quantity from `from`'s balance and the outstanding supply.
	Burn(ctx context.Context, from string, quantity domain.Amount, memo string, actor string) ([]domain.Action, error)

	// Signup opens a zero balance record for owner, paid for by owner.
	Signup(ctx context.Context, owner string, quantity domain.Amount, actor string) ([]domain.Action, error)

	// Transfer moves quantity from `from` to `to`.
	Transfer(ctx context.Context, from, to string, quantity domain.Amount, memo string, fundNewRecords bool, actor string) ([]domain.Action, error)
}

// LedgerReaderSvc defines read operations over ledger state
type LedgerReaderSvc interface {
	// GetTokenStat retrieves the registry entry of a symbol code.
	GetTokenStat(ctx context.Context, symbolCode string) (*domain.TokenStat, error)

	// ListTokenStats retrieves all registry entries.
	ListTokenStats(ctx context.Context) ([]domain.TokenStat, error)

	// AuditSupply compares the recorded supply of a symbol with the sum of its balances.
	AuditSupply(ctx context.Context, symbolCode string) (*domain.SupplyAudit, error)

	// GetBalance retrieves the balance record of owner for a symbol code.
	GetBalance(ctx context.Context, owner string, symbolCode string) (*domain.Balance, error)

	// ListBalances retrieves all balance records of owner.
	ListBalances(ctx context.Context, owner string) ([]domain.Balance, error)

	// GetResourceUsage reports the balance records held and paid for by an account.
	GetResourceUsage(ctx context.Context, accountName string) (*domain.ResourceUsage, error)

	// ListActions retrieves the action log using token-based pagination.
	ListActions(ctx context.Context, params dto.ListActionsParams) (*dto.ListActionsResponse, error)
}

// LedgerSvcFacade combines all ledger service interfaces
type LedgerSvcFacade interface {
	LedgerWriterSvc
	LedgerReaderSvc
}
