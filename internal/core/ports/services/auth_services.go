package services

import (
	"context"
	"time"

	"github.com/SscSPs/token_ledger/internal/core/domain"
)

// TokenSvcFacade issues access tokens for authenticated accounts.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT whose subject is the account name.
	GenerateAccessToken(ctx context.Context, account *domain.Account) (string, time.Time, error)
}
