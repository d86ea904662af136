package models

// TokenStat is a row of the token_stats table. Amounts are stored in the
// symbol's smallest unit.
type TokenStat struct {
	SymbolCode      string `db:"symbol_code"`
	SymbolPrecision int16  `db:"symbol_precision"`
	Issuer          string `db:"issuer"`
	MaxSupply       int64  `db:"max_supply"`
	Supply          int64  `db:"supply"`
	AuditFields
}

// Balance is a row of the balances table.
type Balance struct {
	Owner           string `db:"owner"`
	SymbolCode      string `db:"symbol_code"`
	SymbolPrecision int16  `db:"symbol_precision"`
	Balance         int64  `db:"balance"`
	Payer           string `db:"payer"`
	AuditFields
}
