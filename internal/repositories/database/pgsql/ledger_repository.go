package pgsql

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/token_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/token_ledger/internal/core/ports/repositories"
)

// ledgerLockKey names the advisory lock every ledger transaction holds, so
// operations from all processes sharing the database apply one at a time.
const ledgerLockKey int64 = 0x746f6b656e // "token"

// PgxLedgerRepository serves ledger reads from the pool and runs operations in
// a transaction that holds the ledger lock and locks every registry and balance
// row it reads.
type PgxLedgerRepository struct {
	BaseRepository
	*PgxTokenStatRepository
	*PgxBalanceRepository
	*PgxActionRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) *PgxLedgerRepository {
	return &PgxLedgerRepository{
		BaseRepository:         BaseRepository{Pool: pool},
		PgxTokenStatRepository: newPgxTokenStatRepository(pool, false),
		PgxBalanceRepository:   newPgxBalanceRepository(pool, false),
		PgxActionRepository:    newPgxActionRepository(pool),
	}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// txLedgerStore binds every repository to one pgx.Tx.
type txLedgerStore struct {
	*PgxTokenStatRepository
	*PgxBalanceRepository
	*PgxActionRepository
}

var _ portsrepo.LedgerStore = (*txLedgerStore)(nil)

// RunInTx commits fn's writes if it returns nil and rolls them back otherwise.
// The transaction first takes the ledger advisory lock, released at commit or
// rollback.
func (r *PgxLedgerRepository) RunInTx(ctx context.Context, fn func(ctx context.Context, store portsrepo.LedgerStore) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", ledgerLockKey); err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to lock ledger", err)
	}

	store := &txLedgerStore{
		PgxTokenStatRepository: newPgxTokenStatRepository(tx, true),
		PgxBalanceRepository:   newPgxBalanceRepository(tx, true),
		PgxActionRepository:    newPgxActionRepository(tx),
	}
	if err := fn(ctx, store); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
