package domain

// TokenStat is the registry entry of a token symbol: who may issue it, its
// ceiling and how much is currently outstanding.
// Invariant: 0 <= Supply.Amount <= MaxSupply.Amount, and both carry the same Symbol.
type TokenStat struct {
	Supply    Amount `json:"supply"`
	MaxSupply Amount `json:"maxSupply"`
	Issuer    string `json:"issuer"`
	AuditFields
}

// Symbol returns the registered symbol of the token.
func (t TokenStat) Symbol() Symbol {
	return t.MaxSupply.Symbol
}

// Headroom returns how many units may still be issued.
func (t TokenStat) Headroom() int64 {
	return t.MaxSupply.Amount - t.Supply.Amount
}

// SupplyAudit compares a token's recorded supply with the sum of all balances.
type SupplyAudit struct {
	Symbol       Symbol `json:"symbol"`
	Supply       Amount `json:"supply"`
	BalancesSum  Amount `json:"balancesSum"`
	RecordCount  int    `json:"recordCount"`
	IsConsistent bool   `json:"isConsistent"`
}
