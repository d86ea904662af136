package repositories

// LedgerStore is the keyed storage a single ledger operation reads and mutates.
// Every call made through one LedgerStore belongs to the same transaction.
type LedgerStore interface {
	TokenStatReader
	TokenStatWriter
	BalanceReader
	BalanceWriter
	ActionWriter
}

// LedgerRepositoryFacade combines read access to ledger state with the ability
// to run atomic units of work against it.
type LedgerRepositoryFacade interface {
	TokenStatReader
	BalanceReader
	ActionReader
	TransactionRunner
}

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo AccountRepositoryFacade
	LedgerRepo  LedgerRepositoryFacade
}
