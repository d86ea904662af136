package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/token_ledger/internal/apperrors"
	"github.com/SscSPs/token_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/token_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/token_ledger/internal/models"
	"github.com/SscSPs/token_ledger/internal/utils/mapping"
)

const balanceColumns = `owner, symbol_code, symbol_precision, balance, payer, created_at, created_by, last_updated_at, last_updated_by`

// PgxBalanceRepository reads and writes balance records.
type PgxBalanceRepository struct {
	db       querier
	lockRows bool
}

func newPgxBalanceRepository(db querier, lockRows bool) *PgxBalanceRepository {
	return &PgxBalanceRepository{db: db, lockRows: lockRows}
}

var (
	_ portsrepo.BalanceReader = (*PgxBalanceRepository)(nil)
	_ portsrepo.BalanceWriter = (*PgxBalanceRepository)(nil)
)

func (r *PgxBalanceRepository) FindBalance(ctx context.Context, owner string, symbolCode string) (*domain.Balance, error) {
	query := `SELECT ` + balanceColumns + ` FROM balances WHERE owner = $1 AND symbol_code = $2`
	if r.lockRows {
		query += ` FOR UPDATE`
	}
	rows, err := r.db.Query(ctx, query, owner, symbolCode)
	if err != nil {
		return nil, fmt.Errorf("failed to find balance of %s: %w", owner, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Balance])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan balance of %s: %w", owner, err)
	}
	balance := mapping.ToDomainBalance(m)
	return &balance, nil
}

func (r *PgxBalanceRepository) ListBalancesByOwner(ctx context.Context, owner string) ([]domain.Balance, error) {
	return r.list(ctx, `SELECT `+balanceColumns+` FROM balances WHERE owner = $1 ORDER BY symbol_code`, owner)
}

func (r *PgxBalanceRepository) ListBalancesBySymbol(ctx context.Context, symbolCode string) ([]domain.Balance, error) {
	return r.list(ctx, `SELECT `+balanceColumns+` FROM balances WHERE symbol_code = $1 ORDER BY owner`, symbolCode)
}

func (r *PgxBalanceRepository) list(ctx context.Context, query string, arg string) ([]domain.Balance, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Balance])
	if err != nil {
		return nil, fmt.Errorf("failed to scan balances: %w", err)
	}
	return mapping.ToDomainBalanceSlice(ms), nil
}

func (r *PgxBalanceRepository) CountBalancesByPayer(ctx context.Context, payer string) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM balances WHERE payer = $1`, payer).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count records paid by %s: %w", payer, err)
	}
	return count, nil
}

func (r *PgxBalanceRepository) SaveBalance(ctx context.Context, balance domain.Balance) error {
	m := mapping.ToModelBalance(balance)
	query := `
		INSERT INTO balances (` + balanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db.Exec(ctx, query,
		m.Owner,
		m.SymbolCode,
		m.SymbolPrecision,
		m.Balance,
		m.Payer,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: balance of %s in %s", apperrors.ErrDuplicate, m.Owner, m.SymbolCode)
		}
		return fmt.Errorf("failed to save balance of %s: %w", m.Owner, err)
	}
	return nil
}

func (r *PgxBalanceRepository) UpdateBalance(ctx context.Context, owner string, balance domain.Amount, updatedBy string) error {
	query := `
		UPDATE balances
		SET balance = $3, last_updated_at = NOW(), last_updated_by = $4
		WHERE owner = $1 AND symbol_code = $2;
	`
	tag, err := r.db.Exec(ctx, query, owner, balance.Symbol.Code, balance.Amount, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update balance of %s: %w", owner, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBalanceRepository) DeleteBalance(ctx context.Context, owner string, symbolCode string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM balances WHERE owner = $1 AND symbol_code = $2`, owner, symbolCode)
	if err != nil {
		return fmt.Errorf("failed to delete balance of %s: %w", owner, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
