package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/token_ledger/internal/apperrors"
	"github.com/SscSPs/token_ledger/internal/core/domain"
	"github.com/SscSPs/token_ledger/internal/dto"
)

func (s *ledgerService) GetTokenStat(ctx context.Context, symbolCode string) (*domain.TokenStat, error) {
	stat, err := s.repo.FindTokenStat(ctx, symbolCode)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find token", slog.String("symbol", symbolCode))
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownSymbol, symbolCode)
	}
	return stat, nil
}

func (s *ledgerService) ListTokenStats(ctx context.Context) ([]domain.TokenStat, error) {
	stats, err := s.repo.ListTokenStats(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list tokens")
		return nil, err
	}
	return stats, nil
}

// AuditSupply holds the ledger lock so the figures come from a single state.
func (s *ledgerService) AuditSupply(ctx context.Context, symbolCode string) (*domain.SupplyAudit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stat, err := s.GetTokenStat(ctx, symbolCode)
	if err != nil {
		return nil, err
	}
	balances, err := s.repo.ListBalancesBySymbol(ctx, symbolCode)
	if err != nil {
		s.LogError(ctx, err, "Failed to list balances for audit", slog.String("symbol", symbolCode))
		return nil, err
	}

	sum := domain.ZeroOf(stat.Symbol())
	for _, b := range balances {
		if sum, err = sum.Add(b.Balance); err != nil {
			return nil, fmt.Errorf("balance of %s cannot be summed: %w", b.Owner, err)
		}
	}

	audit := &domain.SupplyAudit{
		Symbol:       stat.Symbol(),
		Supply:       stat.Supply,
		BalancesSum:  sum,
		RecordCount:  len(balances),
		IsConsistent: sum == stat.Supply,
	}
	if !audit.IsConsistent {
		s.GetLogger(ctx).Warn("Supply does not match balances",
			slog.String("symbol", symbolCode),
			slog.String("supply", stat.Supply.String()),
			slog.String("balances_sum", sum.String()))
	}
	return audit, nil
}

func (s *ledgerService) GetBalance(ctx context.Context, owner string, symbolCode string) (*domain.Balance, error) {
	balance, err := s.repo.FindBalance(ctx, owner, symbolCode)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find balance", slog.String("owner", owner), slog.String("symbol", symbolCode))
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s holds no %s", apperrors.ErrNoBalance, owner, symbolCode)
	}
	return balance, nil
}

func (s *ledgerService) ListBalances(ctx context.Context, owner string) ([]domain.Balance, error) {
	balances, err := s.repo.ListBalancesByOwner(ctx, owner)
	if err != nil {
		s.LogError(ctx, err, "Failed to list balances", slog.String("owner", owner))
		return nil, err
	}
	return balances, nil
}

func (s *ledgerService) GetResourceUsage(ctx context.Context, accountName string) (*domain.ResourceUsage, error) {
	paid, err := s.repo.CountBalancesByPayer(ctx, accountName)
	if err != nil {
		s.LogError(ctx, err, "Failed to count paid records", slog.String("account", accountName))
		return nil, err
	}
	held, err := s.repo.ListBalancesByOwner(ctx, accountName)
	if err != nil {
		s.LogError(ctx, err, "Failed to list held records", slog.String("account", accountName))
		return nil, err
	}
	return &domain.ResourceUsage{
		AccountName: accountName,
		RecordsPaid: paid,
		RecordsHeld: len(held),
	}, nil
}

func (s *ledgerService) ListActions(ctx context.Context, params dto.ListActionsParams) (*dto.ListActionsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	actions, nextToken, err := s.repo.ListActions(ctx, params.Account, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list actions", slog.String("account", params.Account))
		return nil, err
	}
	return &dto.ListActionsResponse{
		Actions:   dto.ToListActionResponse(actions),
		NextToken: nextToken,
	}, nil
}
