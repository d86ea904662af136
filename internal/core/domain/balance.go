package domain

// Balance is the holding of one account in one token symbol. The record exists
// only while the account holds the symbol (or has signed up for it); Payer is the
// identity charged for the record's storage.
type Balance struct {
	Owner   string `json:"owner"`
	Balance Amount `json:"balance"`
	Payer   string `json:"payer"`
	AuditFields
}

// ResourceUsage reports how many balance records an account pays storage for.
type ResourceUsage struct {
	AccountName string `json:"accountName"`
	RecordsPaid int    `json:"recordsPaid"`
	RecordsHeld int    `json:"recordsHeld"`
}
