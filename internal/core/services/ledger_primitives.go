package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/token_ledger/internal/apperrors"
	"github.com/SscSPs/token_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/token_ledger/internal/core/ports/repositories"
)

// debit removes value from owner's record. A record drained to exactly zero is
// erased, releasing its storage.
func (s *ledgerService) debit(ctx context.Context, store portsrepo.LedgerStore, owner string, value domain.Amount) error {
	code := value.Symbol.Code
	record, err := store.FindBalance(ctx, owner, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: %s holds no %s", apperrors.ErrNoBalance, owner, code)
		}
		return fmt.Errorf("failed to load balance of %s: %w", owner, err)
	}
	if record.Balance.Amount < value.Amount {
		return fmt.Errorf("%w: %s holds %s", apperrors.ErrOverdrawn, owner, record.Balance)
	}

	if record.Balance.Amount == value.Amount {
		if err := store.DeleteBalance(ctx, owner, code); err != nil {
			return fmt.Errorf("failed to erase balance of %s: %w", owner, err)
		}
		return nil
	}

	remaining, err := record.Balance.Sub(value)
	if err != nil {
		return err
	}
	if err := store.UpdateBalance(ctx, owner, remaining, s.actor(ctx)); err != nil {
		return fmt.Errorf("failed to update balance of %s: %w", owner, err)
	}
	return nil
}

// credit adds value to owner's record. A missing record is created with payer
// charged for its storage, unless fundNewRecords is false.
func (s *ledgerService) credit(ctx context.Context, store portsrepo.LedgerStore, owner string, value domain.Amount, payer string, fundNewRecords bool) error {
	code := value.Symbol.Code
	record, err := store.FindBalance(ctx, owner, code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to load balance of %s: %w", owner, err)
	}

	if record == nil {
		if !fundNewRecords {
			return fmt.Errorf("%w: %s has no %s record", apperrors.ErrRecordMissing, owner, code)
		}
		if err := store.SaveBalance(ctx, domain.Balance{
			Owner:       owner,
			Balance:     value,
			Payer:       payer,
			AuditFields: s.audit(ctx),
		}); err != nil {
			return fmt.Errorf("failed to create balance of %s: %w", owner, err)
		}
		return nil
	}

	total, err := record.Balance.Add(value)
	if err != nil {
		return err
	}
	if err := store.UpdateBalance(ctx, owner, total, s.actor(ctx)); err != nil {
		return fmt.Errorf("failed to update balance of %s: %w", owner, err)
	}
	return nil
}
