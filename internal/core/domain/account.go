package domain

import "regexp"

// MaxAccountNameLength is the longest permitted account name.
const MaxAccountNameLength = 12

var accountNamePattern = regexp.MustCompile(`^[a-z1-5.]{1,12}$`)

// Account is an identity known to the ledger host. Balances, token issuers and
// resource payers all refer to accounts by name.
type Account struct {
	AccountName  string `json:"accountName"` // Primary Key (e.g., "alice")
	PasswordHash string `json:"-"`
	AuditFields
}

// IsValidAccountName reports whether name is 1-12 characters of a-z, 1-5 and '.',
// not ending in '.'.
func IsValidAccountName(name string) bool {
	return accountNamePattern.MatchString(name) && name[len(name)-1] != '.'
}
