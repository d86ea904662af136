package models

// Account is a row of the accounts table.
type Account struct {
	AccountName  string `db:"account_name"`
	PasswordHash string `db:"password_hash"`
	AuditFields
}
