package services

import (
	portsrepo "github.com/SscSPs/token_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/token_ledger/internal/core/ports/services"
	"github.com/SscSPs/token_ledger/internal/platform/config"
	"github.com/SscSPs/token_ledger/internal/utils"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, posthogClient *utils.PosthogClientWrapper) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The account service doubles as the ledger's account directory
	container.Account = NewAccountService(repos.AccountRepo)

	container.Ledger = NewLedgerService(
		repos.LedgerRepo,
		container.Account,
		cfg.LedgerOwner,
		WithNotifier(NewLoggingNotifier(NewPosthogNotifier(posthogClient))),
	)

	container.TokenService = NewTokenService(cfg)

	return container
}
