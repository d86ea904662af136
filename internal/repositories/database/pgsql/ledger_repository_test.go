package pgsql_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/token_ledger/internal/apperrors"
	"github.com/SscSPs/token_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/token_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/token_ledger/internal/core/ports/services"
	"github.com/SscSPs/token_ledger/internal/core/services"
	"github.com/SscSPs/token_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/token_ledger/pkg/database"
)

const ledgerOwner = "ledger"

type staticDirectory map[string]bool

func (d staticDirectory) AccountExists(_ context.Context, accountName string) (bool, error) {
	return d[accountName], nil
}

// PgxLedgerRepositoryTestSuite runs against the database named by
// TEST_PGSQL_URL. Every table is truncated before each test.
type PgxLedgerRepositoryTestSuite struct {
	suite.Suite
	pool  *pgxpool.Pool
	repos portsrepo.RepositoryProvider
	ctx   context.Context
}

func TestPgxLedgerRepositoryTestSuite(t *testing.T) {
	if os.Getenv("TEST_PGSQL_URL") == "" {
		t.Skip("TEST_PGSQL_URL not set")
	}
	suite.Run(t, new(PgxLedgerRepositoryTestSuite))
}

func (s *PgxLedgerRepositoryTestSuite) SetupSuite() {
	url := os.Getenv("TEST_PGSQL_URL")
	s.ctx = context.Background()

	_, err := database.RunMigrations(url, "file://../../../../migrations", database.MigrateUp, slog.Default())
	s.Require().NoError(err)

	s.pool, err = database.NewPgxPool(s.ctx, url, true)
	s.Require().NoError(err)
	s.repos = pgsql.NewRepositoryProvider(s.pool)
}

func (s *PgxLedgerRepositoryTestSuite) TearDownSuite() {
	database.ClosePgxPool(s.pool)
}

func (s *PgxLedgerRepositoryTestSuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, `TRUNCATE actions, balances, token_stats, accounts RESTART IDENTITY`)
	s.Require().NoError(err)
}

// newLedger returns a ledger service with its own in-process lock, standing in
// for a separate server process sharing the database.
func (s *PgxLedgerRepositoryTestSuite) newLedger() portssvc.LedgerSvcFacade {
	accounts := staticDirectory{ledgerOwner: true, "alice": true, "bob": true, "carol": true, "dave": true, "erin": true}
	return services.NewLedgerService(s.repos.LedgerRepo, accounts, ledgerOwner)
}

func (s *PgxLedgerRepositoryTestSuite) amt(str string) domain.Amount {
	a, err := domain.ParseAmount(str)
	s.Require().NoError(err)
	return a
}

func (s *PgxLedgerRepositoryTestSuite) TestRunInTx_RollsBackOnError() {
	tok := domain.NewSymbol(4, "TOK")
	now := time.Now().UTC()
	boom := errors.New("boom")

	err := s.repos.LedgerRepo.RunInTx(s.ctx, func(ctx context.Context, store portsrepo.LedgerStore) error {
		s.Require().NoError(store.SaveTokenStat(ctx, domain.TokenStat{
			Supply:      domain.NewAmount(0, tok),
			MaxSupply:   domain.NewAmount(10_000_000, tok),
			Issuer:      "alice",
			AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: ledgerOwner, LastUpdatedAt: now, LastUpdatedBy: ledgerOwner},
		}))
		return boom
	})
	s.ErrorIs(err, boom)

	_, err = s.repos.LedgerRepo.FindTokenStat(s.ctx, "TOK")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *PgxLedgerRepositoryTestSuite) TestSaveAction_AssignsSequenceAndPages() {
	tok := domain.NewSymbol(4, "TOK")
	var sequences []int64
	err := s.repos.LedgerRepo.RunInTx(s.ctx, func(ctx context.Context, store portsrepo.LedgerStore) error {
		for i, to := range []string{"bob", "carol", "bob", "dave", "bob"} {
			action := &domain.Action{
				ActionID:   uuid.NewString(),
				Name:       domain.ActionTransfer,
				Actor:      "alice",
				From:       "alice",
				To:         to,
				Quantity:   domain.NewAmount(int64(i+1), tok),
				Recipients: []string{"alice", to},
				CreatedAt:  time.Now().UTC(),
			}
			if err := store.SaveAction(ctx, action); err != nil {
				return err
			}
			sequences = append(sequences, action.Sequence)
		}
		return nil
	})
	s.Require().NoError(err)
	s.Equal([]int64{1, 2, 3, 4, 5}, sequences)

	page, next, err := s.repos.LedgerRepo.ListActions(s.ctx, "bob", 2, nil)
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Equal(int64(5), page[0].Sequence)
	s.Equal(int64(3), page[1].Sequence)
	s.Equal([]string{"alice", "bob"}, page[0].Recipients)
	s.Require().NotNil(next)

	page, next, err = s.repos.LedgerRepo.ListActions(s.ctx, "bob", 2, next)
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal(int64(1), page[0].Sequence)
	s.Equal("0.0001 TOK", page[0].Quantity.String())
	s.Nil(next)

	all, _, err := s.repos.LedgerRepo.ListActions(s.ctx, "", 10, nil)
	s.Require().NoError(err)
	s.Len(all, 5)
}

func (s *PgxLedgerRepositoryTestSuite) TestConcurrentCreateAcrossProcesses() {
	ledgers := []portssvc.LedgerSvcFacade{s.newLedger(), s.newLedger()}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		errs      []error
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(ledger portssvc.LedgerSvcFacade) {
			defer wg.Done()
			_, err := ledger.CreateToken(s.ctx, "alice", s.amt("1000.0000 TOK"), ledgerOwner)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
				return
			}
			errs = append(errs, err)
		}(ledgers[i%2])
	}
	wg.Wait()

	s.Equal(1, succeeded)
	for _, err := range errs {
		s.ErrorIs(err, apperrors.ErrDuplicateSymbol)
		s.Equal("DuplicateSymbol", apperrors.KindOf(err))
	}
}

func (s *PgxLedgerRepositoryTestSuite) TestConcurrentCreditsToNewRecordAcrossProcesses() {
	ledgers := []portssvc.LedgerSvcFacade{s.newLedger(), s.newLedger()}
	setup := ledgers[0]

	_, err := setup.CreateToken(s.ctx, "alice", s.amt("1000.0000 TOK"), ledgerOwner)
	s.Require().NoError(err)
	senders := []string{"alice", "bob", "carol", "dave"}
	for _, to := range senders {
		_, err := setup.Issue(s.ctx, to, s.amt("10.0000 TOK"), "", true, "alice")
		s.Require().NoError(err)
	}

	var wg sync.WaitGroup
	errs := make([]error, len(senders))
	for i, from := range senders {
		wg.Add(1)
		go func(i int, from string) {
			defer wg.Done()
			_, errs[i] = ledgers[i%2].Transfer(s.ctx, from, "erin", s.amt("2.5000 TOK"), "", true, from)
		}(i, from)
	}
	wg.Wait()
	for _, err := range errs {
		s.NoError(err)
	}

	balance, err := s.repos.LedgerRepo.FindBalance(s.ctx, "erin", "TOK")
	s.Require().NoError(err)
	s.Equal("10.0000 TOK", balance.Balance.String())

	audit, err := setup.AuditSupply(s.ctx, "TOK")
	s.Require().NoError(err)
	s.True(audit.IsConsistent)
	s.Equal("40.0000 TOK", audit.Supply.String())
}
