package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/token_ledger/internal/apperrors"
	"github.com/SscSPs/token_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/token_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/token_ledger/internal/core/ports/services"
	"github.com/SscSPs/token_ledger/internal/dto"
	"github.com/SscSPs/token_ledger/internal/utils"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(repo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: repo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.RegisterAccountRequest) (*domain.Account, error) {
	if !domain.IsValidAccountName(req.AccountName) {
		return nil, apperrors.NewBadRequestError("account name must be 1-12 characters of a-z, 1-5 and '.'")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password", slog.String("account", req.AccountName))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountName:  req.AccountName,
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     req.AccountName,
			LastUpdatedAt: now,
			LastUpdatedBy: req.AccountName,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, req.AccountName)
		}
		s.LogError(ctx, err, "Failed to save account", slog.String("account", req.AccountName))
		return nil, err
	}

	s.LogInfo(ctx, "Account registered", slog.String("account", account.AccountName))
	return &account, nil
}

func (s *accountService) GetAccountByName(ctx context.Context, accountName string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByName(ctx, accountName)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account", accountName))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) AuthenticateAccount(ctx context.Context, accountName, password string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByName(ctx, accountName)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError("invalid account name or password")
		}
		s.LogError(ctx, err, "Failed to load account for login", slog.String("account", accountName))
		return nil, err
	}
	if !utils.CheckPasswordHash(password, account.PasswordHash) {
		s.GetLogger(ctx).Warn("Password mismatch", slog.String("account", accountName))
		return nil, apperrors.NewUnauthorizedError("invalid account name or password")
	}
	return account, nil
}

// AccountExists answers the ledger's question whether an identity is known.
func (s *accountService) AccountExists(ctx context.Context, accountName string) (bool, error) {
	_, err := s.accountRepo.FindAccountByName(ctx, accountName)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return false, nil
	}
	return false, err
}
