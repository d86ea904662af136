package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/token_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/token_ledger/internal/core/ports/services"
	"github.com/SscSPs/token_ledger/internal/platform/config"
	"github.com/SscSPs/token_ledger/internal/utils"
)

// tokenService issues JWT access tokens for authenticated accounts.
type tokenService struct {
	BaseService
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// GenerateAccessToken creates a new JWT access token for the given account.
func (s *tokenService) GenerateAccessToken(ctx context.Context, account *domain.Account) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateJWT(account.AccountName, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("account", account.AccountName))
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return accessToken, expiryTime, nil
}
