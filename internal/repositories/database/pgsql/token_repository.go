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

const tokenStatColumns = `symbol_code, symbol_precision, issuer, max_supply, supply, created_at, created_by, last_updated_at, last_updated_by`

// PgxTokenStatRepository reads and writes the token registry. Inside a
// transaction (lockRows set) lookups lock the row until commit.
type PgxTokenStatRepository struct {
	db       querier
	lockRows bool
}

func newPgxTokenStatRepository(db querier, lockRows bool) *PgxTokenStatRepository {
	return &PgxTokenStatRepository{db: db, lockRows: lockRows}
}

var (
	_ portsrepo.TokenStatReader = (*PgxTokenStatRepository)(nil)
	_ portsrepo.TokenStatWriter = (*PgxTokenStatRepository)(nil)
)

func (r *PgxTokenStatRepository) FindTokenStat(ctx context.Context, symbolCode string) (*domain.TokenStat, error) {
	query := `SELECT ` + tokenStatColumns + ` FROM token_stats WHERE symbol_code = $1`
	if r.lockRows {
		query += ` FOR UPDATE`
	}
	rows, err := r.db.Query(ctx, query, symbolCode)
	if err != nil {
		return nil, fmt.Errorf("failed to find token %s: %w", symbolCode, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.TokenStat])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan token %s: %w", symbolCode, err)
	}
	stat := mapping.ToDomainTokenStat(m)
	return &stat, nil
}

func (r *PgxTokenStatRepository) ListTokenStats(ctx context.Context) ([]domain.TokenStat, error) {
	rows, err := r.db.Query(ctx, `SELECT `+tokenStatColumns+` FROM token_stats ORDER BY symbol_code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.TokenStat])
	if err != nil {
		return nil, fmt.Errorf("failed to scan tokens: %w", err)
	}
	return mapping.ToDomainTokenStatSlice(ms), nil
}

func (r *PgxTokenStatRepository) SaveTokenStat(ctx context.Context, stat domain.TokenStat) error {
	m := mapping.ToModelTokenStat(stat)
	query := `
		INSERT INTO token_stats (` + tokenStatColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db.Exec(ctx, query,
		m.SymbolCode,
		m.SymbolPrecision,
		m.Issuer,
		m.MaxSupply,
		m.Supply,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: token %s", apperrors.ErrDuplicate, m.SymbolCode)
		}
		return fmt.Errorf("failed to save token %s: %w", m.SymbolCode, err)
	}
	return nil
}

func (r *PgxTokenStatRepository) UpdateTokenSupply(ctx context.Context, symbolCode string, supply domain.Amount, updatedBy string) error {
	query := `
		UPDATE token_stats
		SET supply = $2, last_updated_at = NOW(), last_updated_by = $3
		WHERE symbol_code = $1;
	`
	tag, err := r.db.Exec(ctx, query, symbolCode, supply.Amount, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update supply of %s: %w", symbolCode, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
