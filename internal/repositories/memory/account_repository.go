package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/SscSPs/token_ledger/internal/apperrors"
	"github.com/SscSPs/token_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/token_ledger/internal/core/ports/repositories"
)

// AccountRepository keeps accounts in a map keyed by name.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
}

// NewAccountRepository creates an empty in-memory account table.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: map[string]domain.Account{}}
}

var _ portsrepo.AccountRepositoryFacade = (*AccountRepository)(nil)

func (r *AccountRepository) SaveAccount(_ context.Context, account domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[account.AccountName]; ok {
		return fmt.Errorf("%w: account %s already exists", apperrors.ErrDuplicate, account.AccountName)
	}
	r.accounts[account.AccountName] = account
	return nil
}

func (r *AccountRepository) FindAccountByName(_ context.Context, accountName string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.accounts[accountName]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &account, nil
}

// NewRepositoryProvider wires a fresh in-memory account table and ledger.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: NewAccountRepository(),
		LedgerRepo:  NewLedgerRepository(),
	}
}
