package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/token_ledger/internal/apperrors"
	"github.com/SscSPs/token_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/token_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/token_ledger/internal/core/ports/services"
)

// maxMemoLength is the largest memo, in bytes, an action may carry.
const maxMemoLength = 256

// ledgerService applies token ledger operations. Operations are applied one at
// a time; each one, together with the actions it induces, runs inside a single
// storage transaction.
type ledgerService struct {
	BaseService
	repo       portsrepo.LedgerRepositoryFacade
	accounts   portssvc.AccountDirectory
	authorizer portssvc.Authorizer
	notifier   portssvc.Notifier
	owner      string
	now        func() time.Time

	mu sync.Mutex
}

// LedgerOption is a functional option for configuring the ledger service
type LedgerOption func(*ledgerService)

// WithAuthorizer replaces the default action authorizer.
func WithAuthorizer(authorizer portssvc.Authorizer) LedgerOption {
	return func(s *ledgerService) {
		s.authorizer = authorizer
	}
}

// WithNotifier sets where recipient notifications are delivered after commit.
func WithNotifier(notifier portssvc.Notifier) LedgerOption {
	return func(s *ledgerService) {
		s.notifier = notifier
	}
}

// WithClock overrides the time source used for audit fields and action timestamps.
func WithClock(now func() time.Time) LedgerOption {
	return func(s *ledgerService) {
		s.now = now
	}
}

// NewLedgerService creates a ledger service. owner is the identity allowed to
// register new symbols.
func NewLedgerService(repo portsrepo.LedgerRepositoryFacade, accounts portssvc.AccountDirectory, owner string, options ...LedgerOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		repo:       repo,
		accounts:   accounts,
		authorizer: NewActionAuthorizer(),
		notifier:   NewLoggingNotifier(nil),
		owner:      owner,
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var (
	_ portssvc.LedgerSvcFacade  = (*ledgerService)(nil)
	_ portssvc.ActionDispatcher = (*ledgerService)(nil)
)

// execution is the state of one atomic operation: the transaction-bound store,
// every action applied so far in order, and the action currently being applied.
type execution struct {
	store   portsrepo.LedgerStore
	trace   []*domain.Action
	current *domain.Action
}

type executionCtxKey struct{}

func withExecution(ctx context.Context, exec *execution) context.Context {
	return context.WithValue(ctx, executionCtxKey{}, exec)
}

func executionFromCtx(ctx context.Context) *execution {
	exec, _ := ctx.Value(executionCtxKey{}).(*execution)
	return exec
}

func (s *ledgerService) CreateToken(ctx context.Context, issuer string, maximumSupply domain.Amount, actor string) ([]domain.Action, error) {
	return s.execute(ctx, domain.Action{
		Name:     domain.ActionCreate,
		Actor:    actor,
		To:       issuer,
		Quantity: maximumSupply,
	})
}

func (s *ledgerService) Issue(ctx context.Context, to string, quantity domain.Amount, memo string, fundNewRecords bool, actor string) ([]domain.Action, error) {
	name := domain.ActionIssue
	if !fundNewRecords {
		name = domain.ActionIssueFree
	}
	return s.execute(ctx, domain.Action{
		Name:     name,
		Actor:    actor,
		To:       to,
		Quantity: quantity,
		Memo:     memo,
	})
}

func (s *ledgerService) Burn(ctx context.Context, from string, quantity domain.Amount, memo string, actor string) ([]domain.Action, error) {
	return s.execute(ctx, domain.Action{
		Name:     domain.ActionBurn,
		Actor:    actor,
		From:     from,
		Quantity: quantity,
		Memo:     memo,
	})
}

func (s *ledgerService) Signup(ctx context.Context, owner string, quantity domain.Amount, actor string) ([]domain.Action, error) {
	return s.execute(ctx, domain.Action{
		Name:     domain.ActionSignup,
		Actor:    actor,
		To:       owner,
		Quantity: quantity,
	})
}

func (s *ledgerService) Transfer(ctx context.Context, from, to string, quantity domain.Amount, memo string, fundNewRecords bool, actor string) ([]domain.Action, error) {
	name := domain.ActionTransfer
	if !fundNewRecords {
		name = domain.ActionTransferFree
	}
	return s.execute(ctx, domain.Action{
		Name:     name,
		Actor:    actor,
		From:     from,
		To:       to,
		Quantity: quantity,
		Memo:     memo,
	})
}

// Dispatch applies an action induced by the one currently being applied. Outside
// of an operation it behaves like a top-level request.
func (s *ledgerService) Dispatch(ctx context.Context, action domain.Action) error {
	if executionFromCtx(ctx) == nil {
		_, err := s.execute(ctx, action)
		return err
	}
	return s.apply(ctx, action)
}

// execute runs action as one atomic operation, records every applied action and,
// once committed, notifies the recipients.
func (s *ledgerService) execute(ctx context.Context, action domain.Action) ([]domain.Action, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	defer func() {
		mOperationDuration.WithLabelValues(string(action.Name)).Observe(time.Since(start).Seconds())
	}()

	var applied []domain.Action
	err := s.repo.RunInTx(ctx, func(txCtx context.Context, store portsrepo.LedgerStore) error {
		exec := &execution{store: store}
		if err := s.apply(withExecution(txCtx, exec), action); err != nil {
			return err
		}
		applied = make([]domain.Action, 0, len(exec.trace))
		for _, a := range exec.trace {
			if err := store.SaveAction(txCtx, a); err != nil {
				return fmt.Errorf("failed to record %s action: %w", a.Name, err)
			}
			applied = append(applied, *a)
		}
		return nil
	})
	if err != nil {
		kind := apperrors.KindOf(err)
		if kind == "" {
			kind = "Internal"
			s.LogError(ctx, err, "Ledger operation failed",
				slog.String("action", string(action.Name)),
				slog.String("actor", action.Actor))
		} else {
			s.LogInfo(ctx, "Ledger operation rejected",
				slog.String("action", string(action.Name)),
				slog.String("actor", action.Actor),
				slog.String("kind", kind),
				slog.String("reason", err.Error()))
		}
		mOperationsRejected.WithLabelValues(string(action.Name), kind).Inc()
		return nil, err
	}

	for _, a := range applied {
		mActionsApplied.WithLabelValues(string(a.Name)).Inc()
		for _, recipient := range a.Recipients {
			s.notifier.Notify(ctx, recipient, a)
		}
	}
	s.LogInfo(ctx, "Ledger operation applied",
		slog.String("action", string(action.Name)),
		slog.String("actor", action.Actor),
		slog.String("quantity", action.Quantity.String()),
		slog.Int("actions", len(applied)))
	return applied, nil
}

// apply appends action to the execution trace and runs it with the authority of
// its actor.
func (s *ledgerService) apply(ctx context.Context, action domain.Action) error {
	exec := executionFromCtx(ctx)
	if exec == nil {
		return fmt.Errorf("%w: action applied outside of an operation", apperrors.ErrInternal)
	}

	act := action
	act.ActionID = uuid.NewString()
	act.Recipients = nil
	act.CreatedAt = s.now()
	if exec.current != nil {
		parentID := exec.current.ActionID
		act.ParentActionID = &parentID
	}
	exec.trace = append(exec.trace, &act)

	parent := exec.current
	exec.current = &act
	defer func() { exec.current = parent }()

	ctx = WithAuthority(ctx, act.Actor)

	switch act.Name {
	case domain.ActionCreate:
		return s.doCreate(ctx, exec.store, act.To, act.Quantity)
	case domain.ActionIssue, domain.ActionIssueFree:
		return s.doIssue(ctx, exec.store, act.To, act.Quantity, act.Memo, act.Name.FundsNewRecords())
	case domain.ActionBurn:
		return s.doBurn(ctx, exec.store, act.From, act.Quantity, act.Memo)
	case domain.ActionSignup:
		return s.doSignup(ctx, exec.store, act.To, act.Quantity)
	case domain.ActionTransfer, domain.ActionTransferFree:
		return s.doTransfer(ctx, exec.store, act.From, act.To, act.Quantity, act.Memo, act.Name.FundsNewRecords())
	default:
		return fmt.Errorf("%w: unknown action %q", apperrors.ErrValidation, act.Name)
	}
}

// notify marks identity as a recipient of the action being applied.
func (s *ledgerService) notify(ctx context.Context, identity string) {
	if exec := executionFromCtx(ctx); exec != nil && exec.current != nil {
		exec.current.AddRecipient(identity)
	}
}

// actor returns the identity whose authority the current action carries.
func (s *ledgerService) actor(ctx context.Context) string {
	if exec := executionFromCtx(ctx); exec != nil && exec.current != nil {
		return exec.current.Actor
	}
	return ""
}

func (s *ledgerService) audit(ctx context.Context) domain.AuditFields {
	now := s.now()
	actor := s.actor(ctx)
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actor,
		LastUpdatedAt: now,
		LastUpdatedBy: actor,
	}
}

// findStat looks up the registry entry of symbolCode, reporting an unknown symbol
// as ErrUnknownSymbol.
func findStat(ctx context.Context, store portsrepo.TokenStatReader, symbolCode string) (*domain.TokenStat, error) {
	stat, err := store.FindTokenStat(ctx, symbolCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownSymbol, symbolCode)
		}
		return nil, fmt.Errorf("failed to load token %s: %w", symbolCode, err)
	}
	return stat, nil
}

func checkMemo(memo string) error {
	if len(memo) > maxMemoLength {
		return apperrors.ErrMemoTooLong
	}
	return nil
}

func (s *ledgerService) doCreate(ctx context.Context, store portsrepo.LedgerStore, issuer string, maximumSupply domain.Amount) error {
	if err := s.authorizer.RequireAuth(ctx, s.owner); err != nil {
		return err
	}

	sym := maximumSupply.Symbol
	if !sym.IsValid() {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidSymbol, sym)
	}
	if !maximumSupply.IsValid() {
		return fmt.Errorf("%w: invalid supply", apperrors.ErrInvalidAmount)
	}
	if maximumSupply.Amount <= 0 {
		return fmt.Errorf("%w: max-supply must be positive", apperrors.ErrInvalidAmount)
	}

	_, err := store.FindTokenStat(ctx, sym.Code)
	if err == nil {
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicateSymbol, sym.Code)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check token %s: %w", sym.Code, err)
	}

	stat := domain.TokenStat{
		Supply:      domain.ZeroOf(sym),
		MaxSupply:   maximumSupply,
		Issuer:      issuer,
		AuditFields: s.audit(ctx),
	}
	if err := store.SaveTokenStat(ctx, stat); err != nil {
		return fmt.Errorf("failed to save token %s: %w", sym.Code, err)
	}
	return nil
}

func (s *ledgerService) doIssue(ctx context.Context, store portsrepo.LedgerStore, to string, quantity domain.Amount, memo string, fundNewRecords bool) error {
	sym := quantity.Symbol
	if !sym.IsValid() {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidSymbol, sym)
	}
	if err := checkMemo(memo); err != nil {
		return err
	}

	stat, err := findStat(ctx, store, sym.Code)
	if err != nil {
		return err
	}

	if err := s.authorizer.RequireAuth(ctx, stat.Issuer); err != nil {
		return err
	}
	if !quantity.IsValid() {
		return fmt.Errorf("%w: invalid quantity", apperrors.ErrInvalidAmount)
	}
	if quantity.Amount < 0 {
		return fmt.Errorf("%w: must issue positive quantity or zero", apperrors.ErrInvalidAmount)
	}
	if quantity.Symbol != stat.Supply.Symbol {
		return fmt.Errorf("%w: %s vs %s", apperrors.ErrSymbolMismatch, quantity.Symbol, stat.Supply.Symbol)
	}
	if quantity.Amount > stat.Headroom() {
		return fmt.Errorf("%w: %s", apperrors.ErrSupplyExceeded, quantity)
	}

	supply, err := stat.Supply.Add(quantity)
	if err != nil {
		return err
	}
	if err := store.UpdateTokenSupply(ctx, sym.Code, supply, s.actor(ctx)); err != nil {
		return fmt.Errorf("failed to update supply of %s: %w", sym.Code, err)
	}

	if err := s.credit(ctx, store, stat.Issuer, quantity, stat.Issuer, true); err != nil {
		return err
	}

	if to == stat.Issuer {
		return nil
	}
	name := domain.ActionTransfer
	if !fundNewRecords {
		name = domain.ActionTransferFree
	}
	return s.Dispatch(ctx, domain.Action{
		Name:     name,
		Actor:    stat.Issuer,
		From:     stat.Issuer,
		To:       to,
		Quantity: quantity,
		Memo:     memo,
	})
}

func (s *ledgerService) doBurn(ctx context.Context, store portsrepo.LedgerStore, from string, quantity domain.Amount, memo string) error {
	sym := quantity.Symbol
	if !sym.IsValid() {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidSymbol, sym)
	}
	if err := checkMemo(memo); err != nil {
		return err
	}

	stat, err := findStat(ctx, store, sym.Code)
	if err != nil {
		return err
	}

	if err := s.authorizer.RequireAuth(ctx, from); err != nil {
		return err
	}
	s.notify(ctx, from)

	if !quantity.IsValid() {
		return fmt.Errorf("%w: invalid quantity", apperrors.ErrInvalidAmount)
	}
	if quantity.Amount < 0 {
		return fmt.Errorf("%w: must burn positive or zero quantity", apperrors.ErrInvalidAmount)
	}
	if quantity.Symbol != stat.Supply.Symbol {
		return fmt.Errorf("%w: %s vs %s", apperrors.ErrSymbolMismatch, quantity.Symbol, stat.Supply.Symbol)
	}
	if quantity.Amount > stat.Supply.Amount {
		return fmt.Errorf("%w: %s", apperrors.ErrSupplyExceeded, quantity)
	}

	supply, err := stat.Supply.Sub(quantity)
	if err != nil {
		return err
	}
	if err := store.UpdateTokenSupply(ctx, sym.Code, supply, s.actor(ctx)); err != nil {
		return fmt.Errorf("failed to update supply of %s: %w", sym.Code, err)
	}

	return s.debit(ctx, store, from, quantity)
}

func (s *ledgerService) doSignup(ctx context.Context, store portsrepo.LedgerStore, owner string, quantity domain.Amount) error {
	sym := quantity.Symbol
	if !sym.IsValid() {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidSymbol, sym)
	}

	stat, err := findStat(ctx, store, sym.Code)
	if err != nil {
		return err
	}

	if err := s.authorizer.RequireAuth(ctx, owner); err != nil {
		return err
	}
	s.notify(ctx, owner)

	_, err = store.FindBalance(ctx, owner, sym.Code)
	if err == nil {
		return fmt.Errorf("%w: %s holds %s", apperrors.ErrAlreadySignedUp, owner, sym.Code)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to load balance of %s: %w", owner, err)
	}

	if !quantity.IsValid() {
		return fmt.Errorf("%w: invalid quantity", apperrors.ErrInvalidAmount)
	}
	if quantity.Amount != 0 {
		return fmt.Errorf("%w: quantity exceeds signup allowance", apperrors.ErrInvalidAmount)
	}
	if quantity.Symbol != stat.Supply.Symbol {
		return fmt.Errorf("%w: %s vs %s", apperrors.ErrSymbolMismatch, quantity.Symbol, stat.Supply.Symbol)
	}
	if quantity.Amount > stat.Headroom() {
		return fmt.Errorf("%w: %s", apperrors.ErrSupplyExceeded, quantity)
	}

	supply, err := stat.Supply.Add(quantity)
	if err != nil {
		return err
	}
	if err := store.UpdateTokenSupply(ctx, sym.Code, supply, s.actor(ctx)); err != nil {
		return fmt.Errorf("failed to update supply of %s: %w", sym.Code, err)
	}

	return s.credit(ctx, store, owner, quantity, owner, true)
}

func (s *ledgerService) doTransfer(ctx context.Context, store portsrepo.LedgerStore, from, to string, quantity domain.Amount, memo string, fundNewRecords bool) error {
	if from == to {
		return apperrors.ErrSelfTransfer
	}
	if err := s.authorizer.RequireAuth(ctx, from); err != nil {
		return err
	}

	exists, err := s.accounts.AccountExists(ctx, to)
	if err != nil {
		return fmt.Errorf("failed to look up account %s: %w", to, err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", apperrors.ErrUnknownAccount, to)
	}

	sym := quantity.Symbol
	if !sym.IsValid() {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidSymbol, sym)
	}
	stat, err := findStat(ctx, store, sym.Code)
	if err != nil {
		return err
	}

	s.notify(ctx, from)
	s.notify(ctx, to)

	if !quantity.IsValid() {
		return fmt.Errorf("%w: invalid quantity", apperrors.ErrInvalidAmount)
	}
	if quantity.Amount <= 0 {
		return fmt.Errorf("%w: must transfer positive quantity", apperrors.ErrInvalidAmount)
	}
	if quantity.Symbol != stat.Supply.Symbol {
		return fmt.Errorf("%w: %s vs %s", apperrors.ErrSymbolMismatch, quantity.Symbol, stat.Supply.Symbol)
	}
	if err := checkMemo(memo); err != nil {
		return err
	}

	if err := s.debit(ctx, store, from, quantity); err != nil {
		return err
	}
	return s.credit(ctx, store, to, quantity, from, fundNewRecords)
}
