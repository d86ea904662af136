package services

import (
	"context"

	"github.com/SscSPs/token_ledger/internal/core/domain"
	"github.com/SscSPs/token_ledger/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByName retrieves an account by name.
	GetAccountByName(ctx context.Context, accountName string) (*domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount registers a new account with a password.
	CreateAccount(ctx context.Context, req dto.RegisterAccountRequest) (*domain.Account, error)
}

// AccountAuthSvc defines operations for account authentication
type AccountAuthSvc interface {
	// AuthenticateAccount checks the password of an account.
	AuthenticateAccount(ctx context.Context, accountName, password string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountAuthSvc
	AccountDirectory
}
