package mapping

import (
	"github.com/SscSPs/token_ledger/internal/core/domain"
	"github.com/SscSPs/token_ledger/internal/models"
)

// ToModelTokenStat converts a domain TokenStat to a model TokenStat
func ToModelTokenStat(d domain.TokenStat) models.TokenStat {
	sym := d.Symbol()
	return models.TokenStat{
		SymbolCode:      sym.Code,
		SymbolPrecision: int16(sym.Precision),
		Issuer:          d.Issuer,
		MaxSupply:       d.MaxSupply.Amount,
		Supply:          d.Supply.Amount,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTokenStat converts a model TokenStat to a domain TokenStat
func ToDomainTokenStat(m models.TokenStat) domain.TokenStat {
	sym := domain.NewSymbol(uint8(m.SymbolPrecision), m.SymbolCode)
	return domain.TokenStat{
		Supply:      domain.NewAmount(m.Supply, sym),
		MaxSupply:   domain.NewAmount(m.MaxSupply, sym),
		Issuer:      m.Issuer,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTokenStatSlice converts a slice of model TokenStats to a slice of domain TokenStats
func ToDomainTokenStatSlice(ms []models.TokenStat) []domain.TokenStat {
	ds := make([]domain.TokenStat, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTokenStat(m)
	}
	return ds
}

// ToModelBalance converts a domain Balance to a model Balance
func ToModelBalance(d domain.Balance) models.Balance {
	return models.Balance{
		Owner:           d.Owner,
		SymbolCode:      d.Balance.Symbol.Code,
		SymbolPrecision: int16(d.Balance.Symbol.Precision),
		Balance:         d.Balance.Amount,
		Payer:           d.Payer,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBalance converts a model Balance to a domain Balance
func ToDomainBalance(m models.Balance) domain.Balance {
	return domain.Balance{
		Owner:       m.Owner,
		Balance:     domain.NewAmount(m.Balance, domain.NewSymbol(uint8(m.SymbolPrecision), m.SymbolCode)),
		Payer:       m.Payer,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBalanceSlice converts a slice of model Balances to a slice of domain Balances
func ToDomainBalanceSlice(ms []models.Balance) []domain.Balance {
	ds := make([]domain.Balance, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBalance(m)
	}
	return ds
}
