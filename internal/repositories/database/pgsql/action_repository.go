package pgsql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/token_ledger/internal/apperrors"
	"github.com/SscSPs/token_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/token_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/token_ledger/internal/models"
	"github.com/SscSPs/token_ledger/internal/utils/mapping"
	"github.com/SscSPs/token_ledger/internal/utils/pagination"
)

const actionColumns = `sequence, action_id, parent_action_id, name, actor, from_account, to_account, quantity, symbol_precision, symbol_code, memo, recipients, created_at`

// PgxActionRepository appends to and pages through the action log.
type PgxActionRepository struct {
	db querier
}

func newPgxActionRepository(db querier) *PgxActionRepository {
	return &PgxActionRepository{db: db}
}

var (
	_ portsrepo.ActionReader = (*PgxActionRepository)(nil)
	_ portsrepo.ActionWriter = (*PgxActionRepository)(nil)
)

func (r *PgxActionRepository) SaveAction(ctx context.Context, action *domain.Action) error {
	m := mapping.ToModelAction(*action)
	query := `
		INSERT INTO actions (action_id, parent_action_id, name, actor, from_account, to_account, quantity, symbol_precision, symbol_code, memo, recipients, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING sequence;
	`
	err := r.db.QueryRow(ctx, query,
		m.ActionID,
		m.ParentActionID,
		m.Name,
		m.Actor,
		m.FromAccount,
		m.ToAccount,
		m.Quantity,
		m.SymbolPrecision,
		m.SymbolCode,
		m.Memo,
		m.Recipients,
		m.CreatedAt,
	).Scan(&action.Sequence)
	if err != nil {
		return fmt.Errorf("failed to save action %s: %w", m.ActionID, err)
	}
	return nil
}

// ListActions pages through the log newest first. The token carries the sequence
// of the last action returned.
func (r *PgxActionRepository) ListActions(ctx context.Context, account string, limit int, nextToken *string) ([]domain.Action, *string, error) {
	args := []any{}
	query := `SELECT ` + actionColumns + ` FROM actions WHERE TRUE`

	if account != "" {
		args = append(args, account)
		p := "$" + strconv.Itoa(len(args))
		query += ` AND (actor = ` + p + ` OR from_account = ` + p + ` OR to_account = ` + p + ` OR ` + p + ` = ANY(recipients))`
	}
	if nextToken != nil && *nextToken != "" {
		lastSequence, err := pagination.DecodeSequenceToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		args = append(args, lastSequence)
		query += ` AND sequence < $` + strconv.Itoa(len(args))
	}

	// Fetch one extra row to know whether another page exists.
	args = append(args, limit+1)
	query += ` ORDER BY sequence DESC LIMIT $` + strconv.Itoa(len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list actions: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Action])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan actions: %w", err)
	}

	var newToken *string
	if len(ms) > limit {
		ms = ms[:limit]
		token := pagination.EncodeSequenceToken(ms[len(ms)-1].Sequence)
		newToken = &token
	}
	return mapping.ToDomainActionSlice(ms), newToken, nil
}
