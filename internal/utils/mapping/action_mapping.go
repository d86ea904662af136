package mapping

import (
	"github.com/SscSPs/token_ledger/internal/core/domain"
	"github.com/SscSPs/token_ledger/internal/models"
)

// ToModelAction converts a domain Action to a model Action
func ToModelAction(d domain.Action) models.Action {
	recipients := d.Recipients
	if recipients == nil {
		recipients = []string{}
	}
	return models.Action{
		Sequence:        d.Sequence,
		ActionID:        d.ActionID,
		ParentActionID:  d.ParentActionID,
		Name:            string(d.Name),
		Actor:           d.Actor,
		FromAccount:     d.From,
		ToAccount:       d.To,
		Quantity:        d.Quantity.Amount,
		SymbolPrecision: int16(d.Quantity.Symbol.Precision),
		SymbolCode:      d.Quantity.Symbol.Code,
		Memo:            d.Memo,
		Recipients:      recipients,
		CreatedAt:       d.CreatedAt,
	}
}

// ToDomainAction converts a model Action to a domain Action
func ToDomainAction(m models.Action) domain.Action {
	return domain.Action{
		Sequence:       m.Sequence,
		ActionID:       m.ActionID,
		ParentActionID: m.ParentActionID,
		Name:           domain.ActionName(m.Name),
		Actor:          m.Actor,
		From:           m.FromAccount,
		To:             m.ToAccount,
		Quantity:       domain.NewAmount(m.Quantity, domain.NewSymbol(uint8(m.SymbolPrecision), m.SymbolCode)),
		Memo:           m.Memo,
		Recipients:     m.Recipients,
		CreatedAt:      m.CreatedAt,
	}
}

// ToDomainActionSlice converts a slice of model Actions to a slice of domain Actions
func ToDomainActionSlice(ms []models.Action) []domain.Action {
	ds := make([]domain.Action, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAction(m)
	}
	return ds
}
