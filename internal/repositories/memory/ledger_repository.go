// Package memory holds map-backed repositories for tests, the CLI and
// single-process deployments. State lives only as long as the process.
package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/token_ledger/internal/apperrors"
	"github.com/SscSPs/token_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/token_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/token_ledger/internal/utils/pagination"
)

type balanceKey struct {
	owner      string
	symbolCode string
}

// ledgerState is one consistent version of the ledger tables.
type ledgerState struct {
	stats    map[string]domain.TokenStat
	balances map[balanceKey]domain.Balance
	actions  []domain.Action
	nextSeq  int64
}

func newLedgerState() *ledgerState {
	return &ledgerState{
		stats:    map[string]domain.TokenStat{},
		balances: map[balanceKey]domain.Balance{},
		nextSeq:  1,
	}
}

func (s *ledgerState) clone() *ledgerState {
	return &ledgerState{
		stats:    maps.Clone(s.stats),
		balances: maps.Clone(s.balances),
		actions:  slices.Clone(s.actions),
		nextSeq:  s.nextSeq,
	}
}

// LedgerRepository keeps the registry, balances and action log in maps. A unit
// of work runs against a copy that replaces the live state only on success.
type LedgerRepository struct {
	mu    sync.RWMutex
	state *ledgerState
	now   func() time.Time
}

// NewLedgerRepository creates an empty in-memory ledger.
func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{
		state: newLedgerState(),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

var _ portsrepo.LedgerRepositoryFacade = (*LedgerRepository)(nil)

func (r *LedgerRepository) RunInTx(ctx context.Context, fn func(ctx context.Context, store portsrepo.LedgerStore) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	working := r.state.clone()
	if err := fn(ctx, &stateStore{state: working, now: r.now}); err != nil {
		return err
	}
	r.state = working
	return nil
}

// read returns a store over the committed state. Callers hold r.mu.
func (r *LedgerRepository) read() *stateStore {
	return &stateStore{state: r.state, now: r.now}
}

func (r *LedgerRepository) FindTokenStat(ctx context.Context, symbolCode string) (*domain.TokenStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.read().FindTokenStat(ctx, symbolCode)
}

func (r *LedgerRepository) ListTokenStats(ctx context.Context) ([]domain.TokenStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.read().ListTokenStats(ctx)
}

func (r *LedgerRepository) FindBalance(ctx context.Context, owner string, symbolCode string) (*domain.Balance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.read().FindBalance(ctx, owner, symbolCode)
}

func (r *LedgerRepository) ListBalancesByOwner(ctx context.Context, owner string) ([]domain.Balance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.read().ListBalancesByOwner(ctx, owner)
}

func (r *LedgerRepository) ListBalancesBySymbol(ctx context.Context, symbolCode string) ([]domain.Balance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.read().ListBalancesBySymbol(ctx, symbolCode)
}

func (r *LedgerRepository) CountBalancesByPayer(ctx context.Context, payer string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.read().CountBalancesByPayer(ctx, payer)
}

// ListActions pages through the log newest first.
func (r *LedgerRepository) ListActions(_ context.Context, account string, limit int, nextToken *string) ([]domain.Action, *string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	before := int64(-1)
	if nextToken != nil && *nextToken != "" {
		seq, err := pagination.DecodeSequenceToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		before = seq
	}

	var page []domain.Action
	var newToken *string
	for i := len(r.state.actions) - 1; i >= 0; i-- {
		a := r.state.actions[i]
		if before >= 0 && a.Sequence >= before {
			continue
		}
		if account != "" && !involves(a, account) {
			continue
		}
		if len(page) == limit {
			token := pagination.EncodeSequenceToken(page[len(page)-1].Sequence)
			newToken = &token
			break
		}
		page = append(page, a)
	}
	return page, newToken, nil
}

func involves(a domain.Action, account string) bool {
	return a.Actor == account || a.From == account || a.To == account || slices.Contains(a.Recipients, account)
}

// stateStore is a LedgerStore over one ledgerState.
type stateStore struct {
	state *ledgerState
	now   func() time.Time
}

var _ portsrepo.LedgerStore = (*stateStore)(nil)

func (s *stateStore) FindTokenStat(_ context.Context, symbolCode string) (*domain.TokenStat, error) {
	stat, ok := s.state.stats[symbolCode]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &stat, nil
}

func (s *stateStore) ListTokenStats(_ context.Context) ([]domain.TokenStat, error) {
	stats := make([]domain.TokenStat, 0, len(s.state.stats))
	for _, code := range slices.Sorted(maps.Keys(s.state.stats)) {
		stats = append(stats, s.state.stats[code])
	}
	return stats, nil
}

func (s *stateStore) SaveTokenStat(_ context.Context, stat domain.TokenStat) error {
	code := stat.Symbol().Code
	if _, ok := s.state.stats[code]; ok {
		return fmt.Errorf("%w: token %s", apperrors.ErrDuplicate, code)
	}
	s.state.stats[code] = stat
	return nil
}

func (s *stateStore) UpdateTokenSupply(_ context.Context, symbolCode string, supply domain.Amount, updatedBy string) error {
	stat, ok := s.state.stats[symbolCode]
	if !ok {
		return apperrors.ErrNotFound
	}
	stat.Supply = supply
	stat.LastUpdatedAt = s.now()
	stat.LastUpdatedBy = updatedBy
	s.state.stats[symbolCode] = stat
	return nil
}

func (s *stateStore) FindBalance(_ context.Context, owner string, symbolCode string) (*domain.Balance, error) {
	balance, ok := s.state.balances[balanceKey{owner, symbolCode}]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &balance, nil
}

func (s *stateStore) ListBalancesByOwner(_ context.Context, owner string) ([]domain.Balance, error) {
	var balances []domain.Balance
	for k, b := range s.state.balances {
		if k.owner == owner {
			balances = append(balances, b)
		}
	}
	sort.Slice(balances, func(i, j int) bool {
		return balances[i].Balance.Symbol.Code < balances[j].Balance.Symbol.Code
	})
	return balances, nil
}

func (s *stateStore) ListBalancesBySymbol(_ context.Context, symbolCode string) ([]domain.Balance, error) {
	var balances []domain.Balance
	for k, b := range s.state.balances {
		if k.symbolCode == symbolCode {
			balances = append(balances, b)
		}
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i].Owner < balances[j].Owner })
	return balances, nil
}

func (s *stateStore) CountBalancesByPayer(_ context.Context, payer string) (int, error) {
	count := 0
	for _, b := range s.state.balances {
		if b.Payer == payer {
			count++
		}
	}
	return count, nil
}

func (s *stateStore) SaveBalance(_ context.Context, balance domain.Balance) error {
	key := balanceKey{balance.Owner, balance.Balance.Symbol.Code}
	if _, ok := s.state.balances[key]; ok {
		return fmt.Errorf("%w: balance of %s in %s", apperrors.ErrDuplicate, key.owner, key.symbolCode)
	}
	s.state.balances[key] = balance
	return nil
}

func (s *stateStore) UpdateBalance(_ context.Context, owner string, balance domain.Amount, updatedBy string) error {
	key := balanceKey{owner, balance.Symbol.Code}
	record, ok := s.state.balances[key]
	if !ok {
		return apperrors.ErrNotFound
	}
	record.Balance = balance
	record.LastUpdatedAt = s.now()
	record.LastUpdatedBy = updatedBy
	s.state.balances[key] = record
	return nil
}

func (s *stateStore) DeleteBalance(_ context.Context, owner string, symbolCode string) error {
	key := balanceKey{owner, symbolCode}
	if _, ok := s.state.balances[key]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.state.balances, key)
	return nil
}

func (s *stateStore) SaveAction(_ context.Context, action *domain.Action) error {
	action.Sequence = s.state.nextSeq
	s.state.nextSeq++
	stored := *action
	stored.Recipients = slices.Clone(action.Recipients)
	s.state.actions = append(s.state.actions, stored)
	return nil
}
