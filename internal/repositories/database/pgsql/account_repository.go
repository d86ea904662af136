package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/token_ledger/internal/apperrors"
	"github.com/SscSPs/token_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/token_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/token_ledger/internal/models"
	"github.com/SscSPs/token_ledger/internal/utils/mapping"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (account_name, password_hash, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountName,
		m.PasswordHash,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account %s already exists", apperrors.ErrDuplicate, m.AccountName)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountName, err)
	}
	return nil
}

// FindAccountByName retrieves an account by its name.
func (r *PgxAccountRepository) FindAccountByName(ctx context.Context, accountName string) (*domain.Account, error) {
	query := `
		SELECT account_name, password_hash, created_at, created_by, last_updated_at, last_updated_by
		FROM accounts
		WHERE account_name = $1;
	`
	rows, err := r.Pool.Query(ctx, query, accountName)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountName, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan account %s: %w", accountName, err)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}
