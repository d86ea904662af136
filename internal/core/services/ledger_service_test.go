package services_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/token_ledger/internal/apperrors"
	"github.com/SscSPs/token_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/token_ledger/internal/core/ports/services"
	"github.com/SscSPs/token_ledger/internal/core/services"
	"github.com/SscSPs/token_ledger/internal/dto"
	"github.com/SscSPs/token_ledger/internal/repositories/memory"
)

const ledgerOwner = "ledger"

// --- Mock Notifier ---
type MockNotifier struct {
	mock.Mock
	mu       sync.Mutex
	received []string // "identity:action"
}

func (m *MockNotifier) Notify(ctx context.Context, identity string, action domain.Action) {
	m.mu.Lock()
	m.received = append(m.received, identity+":"+string(action.Name))
	m.mu.Unlock()
	m.Called(ctx, identity, action)
}

// --- Fake AccountDirectory ---
type staticDirectory map[string]bool

func (d staticDirectory) AccountExists(_ context.Context, accountName string) (bool, error) {
	return d[accountName], nil
}

type LedgerServiceTestSuite struct {
	suite.Suite
	repo     *memory.LedgerRepository
	notifier *MockNotifier
	service  portssvc.LedgerSvcFacade
	ctx      context.Context
	tok      domain.Symbol
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.repo = memory.NewLedgerRepository()
	s.notifier = new(MockNotifier)
	s.notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything).Return()
	accounts := staticDirectory{"ledger": true, "alice": true, "bob": true, "carol": true}
	s.service = services.NewLedgerService(s.repo, accounts, ledgerOwner, services.WithNotifier(s.notifier))
	s.ctx = context.Background()
	s.tok = domain.NewSymbol(4, "TOK")
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

// amt parses "100.0000 TOK" style quantities.
func (s *LedgerServiceTestSuite) amt(str string) domain.Amount {
	a, err := domain.ParseAmount(str)
	s.Require().NoError(err)
	return a
}

// createTOK registers TOK/4 with issuer alice and a ceiling of 1000.0000.
func (s *LedgerServiceTestSuite) createTOK() {
	_, err := s.service.CreateToken(s.ctx, "alice", s.amt("1000.0000 TOK"), ledgerOwner)
	s.Require().NoError(err)
}

func (s *LedgerServiceTestSuite) balanceOf(owner string) int64 {
	b, err := s.repo.FindBalance(s.ctx, owner, "TOK")
	if err != nil {
		s.Require().ErrorIs(err, apperrors.ErrNotFound)
		return -1
	}
	return b.Balance.Amount
}

func (s *LedgerServiceTestSuite) supply() int64 {
	stat, err := s.repo.FindTokenStat(s.ctx, "TOK")
	s.Require().NoError(err)
	return stat.Supply.Amount
}

// assertConserved checks that the supply equals the sum of balances.
func (s *LedgerServiceTestSuite) assertConserved() {
	audit, err := s.service.AuditSupply(s.ctx, "TOK")
	s.Require().NoError(err)
	s.True(audit.IsConsistent, "supply %s vs balances %s", audit.Supply, audit.BalancesSum)
	s.GreaterOrEqual(audit.Supply.Amount, int64(0))
}

// --- create ---

func (s *LedgerServiceTestSuite) TestCreateToken_Success() {
	actions, err := s.service.CreateToken(s.ctx, "alice", s.amt("1000.0000 TOK"), ledgerOwner)
	s.Require().NoError(err)
	s.Require().Len(actions, 1)
	s.Equal(domain.ActionCreate, actions[0].Name)
	s.NotEmpty(actions[0].ActionID)

	stat, err := s.service.GetTokenStat(s.ctx, "TOK")
	s.Require().NoError(err)
	s.Equal("alice", stat.Issuer)
	s.Equal(int64(0), stat.Supply.Amount)
	s.Equal(s.tok, stat.Supply.Symbol)
	s.Equal(int64(10_000_000), stat.MaxSupply.Amount)
}

func (s *LedgerServiceTestSuite) TestCreateToken_Failures() {
	s.createTOK()

	tests := []struct {
		name   string
		issuer string
		max    domain.Amount
		actor  string
		want   error
	}{
		{"requires owner authority", "alice", s.amt("5.0000 NEW"), "alice", apperrors.ErrUnauthorized},
		{"lowercase symbol", "alice", domain.NewAmount(1, domain.NewSymbol(4, "tok")), ledgerOwner, apperrors.ErrInvalidSymbol},
		{"symbol too long", "alice", domain.NewAmount(1, domain.NewSymbol(4, "TOOLONGX")), ledgerOwner, apperrors.ErrInvalidSymbol},
		{"amount out of range", "alice", domain.NewAmount(domain.MaxAmount+1, domain.NewSymbol(0, "BIG")), ledgerOwner, apperrors.ErrInvalidAmount},
		{"zero max supply", "alice", s.amt("0.0000 ZRO"), ledgerOwner, apperrors.ErrInvalidAmount},
		{"negative max supply", "alice", s.amt("-1.0000 NEG"), ledgerOwner, apperrors.ErrInvalidAmount},
		{"duplicate symbol", "bob", s.amt("5.00 TOK"), ledgerOwner, apperrors.ErrDuplicateSymbol},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.CreateToken(s.ctx, tt.issuer, tt.max, tt.actor)
			s.ErrorIs(err, tt.want)
		})
	}

	stat, err := s.service.GetTokenStat(s.ctx, "TOK")
	s.Require().NoError(err)
	s.Equal("alice", stat.Issuer, "duplicate create leaves the registry unchanged")
}

// --- issue ---

func (s *LedgerServiceTestSuite) TestIssue_ToIssuer() {
	s.createTOK()

	actions, err := s.service.Issue(s.ctx, "alice", s.amt("100.0000 TOK"), "mint", true, "alice")
	s.Require().NoError(err)
	s.Require().Len(actions, 1, "no inline transfer when issuing to the issuer")
	s.Equal(int64(1_000_000), s.supply())
	s.Equal(int64(1_000_000), s.balanceOf("alice"))

	b, err := s.service.GetBalance(s.ctx, "alice", "TOK")
	s.Require().NoError(err)
	s.Equal("alice", b.Payer)
	s.assertConserved()
}

func (s *LedgerServiceTestSuite) TestIssue_ToThirdPartyDispatchesTransfer() {
	s.createTOK()

	actions, err := s.service.Issue(s.ctx, "bob", s.amt("100.0000 TOK"), "hello", true, "alice")
	s.Require().NoError(err)
	s.Require().Len(actions, 2)

	issue, transfer := actions[0], actions[1]
	s.Equal(domain.ActionIssue, issue.Name)
	s.Nil(issue.ParentActionID)
	s.Equal(domain.ActionTransfer, transfer.Name)
	s.Require().NotNil(transfer.ParentActionID)
	s.Equal(issue.ActionID, *transfer.ParentActionID)
	s.Equal("alice", transfer.Actor)
	s.Equal("alice", transfer.From)
	s.Equal("bob", transfer.To)
	s.Equal("hello", transfer.Memo)
	s.Equal([]string{"alice", "bob"}, transfer.Recipients)
	s.Less(issue.Sequence, transfer.Sequence)

	s.Equal(int64(1_000_000), s.supply())
	s.Equal(int64(-1), s.balanceOf("alice"), "issuer record drained to zero is erased")
	s.Equal(int64(1_000_000), s.balanceOf("bob"))

	b, err := s.service.GetBalance(s.ctx, "bob", "TOK")
	s.Require().NoError(err)
	s.Equal("alice", b.Payer, "the issuer funds the new record")

	s.notifier.AssertCalled(s.T(), "Notify", mock.Anything, "bob", mock.MatchedBy(func(a domain.Action) bool {
		return a.Name == domain.ActionTransfer
	}))
	s.assertConserved()
}

func (s *LedgerServiceTestSuite) TestIssueFree_ToUnfundedRecordRollsBack() {
	s.createTOK()

	_, err := s.service.Issue(s.ctx, "bob", s.amt("10.0000 TOK"), "", false, "alice")
	s.ErrorIs(err, apperrors.ErrRecordMissing)

	s.Equal(int64(0), s.supply(), "the minted supply is rolled back with the failed inline transfer")
	s.Equal(int64(-1), s.balanceOf("alice"))
	s.Equal(int64(-1), s.balanceOf("bob"))

	actions, err := s.service.ListActions(s.ctx, dto.ListActionsParams{Limit: 10})
	s.Require().NoError(err)
	s.Len(actions.Actions, 1, "only the create action is logged")
	s.notifier.AssertNotCalled(s.T(), "Notify", mock.Anything, "bob", mock.Anything)
}

func (s *LedgerServiceTestSuite) TestIssueFree_AfterSignup() {
	s.createTOK()

	_, err := s.service.Signup(s.ctx, "bob", s.amt("0.0000 TOK"), "bob")
	s.Require().NoError(err)

	actions, err := s.service.Issue(s.ctx, "bob", s.amt("10.0000 TOK"), "", false, "alice")
	s.Require().NoError(err)
	s.Require().Len(actions, 2)
	s.Equal(domain.ActionIssueFree, actions[0].Name)
	s.Equal(domain.ActionTransferFree, actions[1].Name)

	s.Equal(int64(100_000), s.balanceOf("bob"))
	b, err := s.service.GetBalance(s.ctx, "bob", "TOK")
	s.Require().NoError(err)
	s.Equal("bob", b.Payer, "the signed-up record keeps its payer")
	s.assertConserved()
}

func (s *LedgerServiceTestSuite) TestIssue_ExactHeadroomBoundary() {
	s.createTOK()

	_, err := s.service.Issue(s.ctx, "alice", s.amt("999.9999 TOK"), "", true, "alice")
	s.Require().NoError(err)

	_, err = s.service.Issue(s.ctx, "alice", s.amt("0.0002 TOK"), "", true, "alice")
	s.ErrorIs(err, apperrors.ErrSupplyExceeded)

	_, err = s.service.Issue(s.ctx, "alice", s.amt("0.0001 TOK"), "", true, "alice")
	s.Require().NoError(err)
	s.Equal(int64(10_000_000), s.supply())

	_, err = s.service.Issue(s.ctx, "alice", s.amt("0.0001 TOK"), "", true, "alice")
	s.ErrorIs(err, apperrors.ErrSupplyExceeded)
	s.assertConserved()
}

func (s *LedgerServiceTestSuite) TestIssue_Failures() {
	s.createTOK()

	tests := []struct {
		name     string
		to       string
		quantity domain.Amount
		memo     string
		actor    string
		want     error
	}{
		{"invalid symbol", "alice", domain.NewAmount(1, domain.NewSymbol(4, "T0K")), "", "alice", apperrors.ErrInvalidSymbol},
		{"memo too long", "alice", s.amt("1.0000 TOK"), strings.Repeat("m", 257), "alice", apperrors.ErrMemoTooLong},
		{"unknown symbol", "alice", s.amt("1.0000 NOPE"), "", "alice", apperrors.ErrUnknownSymbol},
		{"requires issuer authority", "alice", s.amt("1.0000 TOK"), "", "bob", apperrors.ErrUnauthorized},
		{"negative quantity", "alice", s.amt("-1.0000 TOK"), "", "alice", apperrors.ErrInvalidAmount},
		{"precision mismatch", "alice", s.amt("1.00 TOK"), "", "alice", apperrors.ErrSymbolMismatch},
		{"above ceiling", "alice", s.amt("1000.0001 TOK"), "", "alice", apperrors.ErrSupplyExceeded},
		{"zero to third party", "bob", s.amt("0.0000 TOK"), "", "alice", apperrors.ErrInvalidAmount},
		{"unknown recipient", "dave", s.amt("1.0000 TOK"), "", "alice", apperrors.ErrUnknownAccount},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.Issue(s.ctx, tt.to, tt.quantity, tt.memo, true, tt.actor)
			s.ErrorIs(err, tt.want)
			s.Equal(int64(0), s.supply())
		})
	}
}

func (s *LedgerServiceTestSuite) TestIssue_MemoAtLimit() {
	s.createTOK()
	_, err := s.service.Issue(s.ctx, "alice", s.amt("1.0000 TOK"), strings.Repeat("m", 256), true, "alice")
	s.NoError(err)
}

func (s *LedgerServiceTestSuite) TestIssue_ZeroToIssuerIsPermitted() {
	s.createTOK()

	_, err := s.service.Issue(s.ctx, "alice", s.amt("0.0000 TOK"), "", true, "alice")
	s.Require().NoError(err)
	s.Equal(int64(0), s.supply())
	s.Equal(int64(0), s.balanceOf("alice"), "a zero record is created for the issuer")
}

// --- burn ---

func (s *LedgerServiceTestSuite) TestBurn_RoundTrip() {
	s.createTOK()
	_, err := s.service.Issue(s.ctx, "alice", s.amt("100.0000 TOK"), "", true, "alice")
	s.Require().NoError(err)

	actions, err := s.service.Burn(s.ctx, "alice", s.amt("40.0000 TOK"), "retire", "alice")
	s.Require().NoError(err)
	s.Require().Len(actions, 1)
	s.Equal([]string{"alice"}, actions[0].Recipients)
	s.Equal(int64(600_000), s.supply())
	s.Equal(int64(600_000), s.balanceOf("alice"))

	_, err = s.service.Burn(s.ctx, "alice", s.amt("60.0000 TOK"), "", "alice")
	s.Require().NoError(err)
	s.Equal(int64(0), s.supply(), "issue then burn of the same quantity restores the supply")
	s.Equal(int64(-1), s.balanceOf("alice"))
	s.assertConserved()
}

func (s *LedgerServiceTestSuite) TestBurn_Failures() {
	s.createTOK()
	_, err := s.service.Issue(s.ctx, "bob", s.amt("10.0000 TOK"), "", true, "alice")
	s.Require().NoError(err)

	tests := []struct {
		name     string
		from     string
		quantity domain.Amount
		actor    string
		want     error
	}{
		{"invalid symbol", "bob", domain.NewAmount(1, domain.NewSymbol(4, "")), "bob", apperrors.ErrInvalidSymbol},
		{"unknown symbol", "bob", s.amt("1.0000 NOPE"), "bob", apperrors.ErrUnknownSymbol},
		{"requires holder authority", "bob", s.amt("1.0000 TOK"), "alice", apperrors.ErrUnauthorized},
		{"negative quantity", "bob", s.amt("-1.0000 TOK"), "bob", apperrors.ErrInvalidAmount},
		{"precision mismatch", "bob", s.amt("1.000 TOK"), "bob", apperrors.ErrSymbolMismatch},
		{"above supply", "bob", s.amt("10.0001 TOK"), "bob", apperrors.ErrSupplyExceeded},
		{"no record", "carol", s.amt("1.0000 TOK"), "carol", apperrors.ErrNoBalance},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.Burn(s.ctx, tt.from, tt.quantity, "", tt.actor)
			s.ErrorIs(err, tt.want)
			s.Equal(int64(100_000), s.supply())
		})
	}
}

func (s *LedgerServiceTestSuite) TestBurn_OverdrawnRollsBackSupply() {
	s.createTOK()
	_, err := s.service.Issue(s.ctx, "bob", s.amt("10.0000 TOK"), "", true, "alice")
	s.Require().NoError(err)
	_, err = s.service.Issue(s.ctx, "carol", s.amt("5.0000 TOK"), "", true, "alice")
	s.Require().NoError(err)

	// within supply but above carol's holding
	_, err = s.service.Burn(s.ctx, "carol", s.amt("6.0000 TOK"), "", "carol")
	s.ErrorIs(err, apperrors.ErrOverdrawn)
	s.Equal(int64(150_000), s.supply())
	s.Equal(int64(50_000), s.balanceOf("carol"))
	s.assertConserved()
}

func (s *LedgerServiceTestSuite) TestBurn_ZeroFromZeroRecordErasesIt() {
	s.createTOK()
	_, err := s.service.Signup(s.ctx, "bob", s.amt("0.0000 TOK"), "bob")
	s.Require().NoError(err)
	s.Equal(int64(0), s.balanceOf("bob"))

	_, err = s.service.Burn(s.ctx, "bob", s.amt("0.0000 TOK"), "", "bob")
	s.Require().NoError(err)
	s.Equal(int64(-1), s.balanceOf("bob"))
}

// --- signup ---

func (s *LedgerServiceTestSuite) TestSignup() {
	s.createTOK()

	actions, err := s.service.Signup(s.ctx, "bob", s.amt("0.0000 TOK"), "bob")
	s.Require().NoError(err)
	s.Require().Len(actions, 1)
	s.Equal([]string{"bob"}, actions[0].Recipients)

	b, err := s.service.GetBalance(s.ctx, "bob", "TOK")
	s.Require().NoError(err)
	s.Equal(int64(0), b.Balance.Amount)
	s.Equal("bob", b.Payer)

	usage, err := s.service.GetResourceUsage(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal(1, usage.RecordsPaid)
	s.Equal(1, usage.RecordsHeld)

	_, err = s.service.Signup(s.ctx, "bob", s.amt("0.0000 TOK"), "bob")
	s.ErrorIs(err, apperrors.ErrAlreadySignedUp)
}

func (s *LedgerServiceTestSuite) TestSignup_Failures() {
	s.createTOK()

	tests := []struct {
		name     string
		owner    string
		quantity domain.Amount
		actor    string
		want     error
	}{
		{"invalid symbol", "bob", domain.NewAmount(0, domain.NewSymbol(19, "TOK")), "bob", apperrors.ErrInvalidSymbol},
		{"unknown symbol", "bob", s.amt("0.0000 NOPE"), "bob", apperrors.ErrUnknownSymbol},
		{"requires owner authority", "bob", s.amt("0.0000 TOK"), "alice", apperrors.ErrUnauthorized},
		{"non-zero quantity", "bob", s.amt("0.0001 TOK"), "bob", apperrors.ErrInvalidAmount},
		{"precision mismatch", "bob", s.amt("0.00 TOK"), "bob", apperrors.ErrSymbolMismatch},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.Signup(s.ctx, tt.owner, tt.quantity, tt.actor)
			s.ErrorIs(err, tt.want)
			s.Equal(int64(-1), s.balanceOf("bob"))
		})
	}
}

// --- transfer ---

func (s *LedgerServiceTestSuite) TestTransfer_Scenario() {
	s.createTOK()
	_, err := s.service.Issue(s.ctx, "alice", s.amt("100.0000 TOK"), "", true, "alice")
	s.Require().NoError(err)

	actions, err := s.service.Transfer(s.ctx, "alice", "bob", s.amt("40.0000 TOK"), "rent", true, "alice")
	s.Require().NoError(err)
	s.Require().Len(actions, 1)
	s.Equal([]string{"alice", "bob"}, actions[0].Recipients)
	s.Equal(int64(600_000), s.balanceOf("alice"))
	s.Equal(int64(400_000), s.balanceOf("bob"))

	// exact balance drains and erases the record
	_, err = s.service.Transfer(s.ctx, "bob", "carol", s.amt("40.0000 TOK"), "", true, "bob")
	s.Require().NoError(err)
	s.Equal(int64(-1), s.balanceOf("bob"))
	s.Equal(int64(400_000), s.balanceOf("carol"))

	c, err := s.service.GetBalance(s.ctx, "carol", "TOK")
	s.Require().NoError(err)
	s.Equal("bob", c.Payer)

	usage, err := s.service.GetResourceUsage(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal(1, usage.RecordsPaid, "bob still pays for carol's record")
	s.Equal(0, usage.RecordsHeld)

	s.Equal(int64(1_000_000), s.supply(), "transfers never change the supply")
	s.assertConserved()
}

func (s *LedgerServiceTestSuite) TestTransfer_Failures() {
	s.createTOK()
	_, err := s.service.Issue(s.ctx, "alice", s.amt("100.0000 TOK"), "", true, "alice")
	s.Require().NoError(err)

	tests := []struct {
		name     string
		from, to string
		quantity domain.Amount
		memo     string
		actor    string
		fund     bool
		want     error
	}{
		{"self transfer", "alice", "alice", s.amt("1.0000 TOK"), "", "alice", true, apperrors.ErrSelfTransfer},
		{"requires sender authority", "alice", "bob", s.amt("1.0000 TOK"), "", "bob", true, apperrors.ErrUnauthorized},
		{"unknown recipient", "alice", "dave", s.amt("1.0000 TOK"), "", "alice", true, apperrors.ErrUnknownAccount},
		{"invalid symbol", "alice", "bob", domain.NewAmount(1, domain.NewSymbol(4, "tok")), "", "alice", true, apperrors.ErrInvalidSymbol},
		{"unknown symbol", "alice", "bob", s.amt("1.0000 NOPE"), "", "alice", true, apperrors.ErrUnknownSymbol},
		{"zero quantity", "alice", "bob", s.amt("0.0000 TOK"), "", "alice", true, apperrors.ErrInvalidAmount},
		{"negative quantity", "alice", "bob", s.amt("-1.0000 TOK"), "", "alice", true, apperrors.ErrInvalidAmount},
		{"precision mismatch", "alice", "bob", s.amt("1.00 TOK"), "", "alice", true, apperrors.ErrSymbolMismatch},
		{"memo too long", "alice", "bob", s.amt("1.0000 TOK"), strings.Repeat("x", 300), "alice", true, apperrors.ErrMemoTooLong},
		{"overdrawn", "alice", "bob", s.amt("100.0001 TOK"), "", "alice", true, apperrors.ErrOverdrawn},
		{"sender has no record", "bob", "alice", s.amt("1.0000 TOK"), "", "bob", true, apperrors.ErrNoBalance},
		{"unfunded destination", "alice", "bob", s.amt("1.0000 TOK"), "", "alice", false, apperrors.ErrRecordMissing},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.Transfer(s.ctx, tt.from, tt.to, tt.quantity, tt.memo, tt.fund, tt.actor)
			s.ErrorIs(err, tt.want)
			s.Equal(int64(1_000_000), s.balanceOf("alice"), "failed transfers leave balances unchanged")
			s.Equal(int64(-1), s.balanceOf("bob"))
		})
	}
	s.assertConserved()
}

func (s *LedgerServiceTestSuite) TestTransfer_SelfCheckedBeforeAuthority() {
	s.createTOK()
	// bob cannot sign for alice, but a self transfer is rejected first
	_, err := s.service.Transfer(s.ctx, "alice", "alice", s.amt("1.0000 TOK"), "", true, "bob")
	s.ErrorIs(err, apperrors.ErrSelfTransfer)
}

// --- observers ---

func (s *LedgerServiceTestSuite) TestNotificationsDeliveredAfterCommit() {
	s.createTOK()
	_, err := s.service.Issue(s.ctx, "bob", s.amt("1.0000 TOK"), "", true, "alice")
	s.Require().NoError(err)

	s.Equal([]string{"alice:transfer", "bob:transfer"}, s.notifier.received)

	_, err = s.service.Transfer(s.ctx, "bob", "carol", s.amt("2.0000 TOK"), "", true, "bob")
	s.ErrorIs(err, apperrors.ErrOverdrawn)
	s.Len(s.notifier.received, 2, "rolled back operations notify no one")
}

func (s *LedgerServiceTestSuite) TestListActions_FilterAndPaginate() {
	s.createTOK()
	for i := 0; i < 3; i++ {
		_, err := s.service.Issue(s.ctx, "bob", s.amt(fmt.Sprintf("%d.0000 TOK", i+1)), "", true, "alice")
		s.Require().NoError(err)
	}

	page, err := s.service.ListActions(s.ctx, dto.ListActionsParams{Limit: 4})
	s.Require().NoError(err)
	s.Len(page.Actions, 4)
	s.Require().NotNil(page.NextToken)
	s.Equal("transfer", page.Actions[0].Name)

	rest, err := s.service.ListActions(s.ctx, dto.ListActionsParams{Limit: 4, NextToken: page.NextToken})
	s.Require().NoError(err)
	s.Len(rest.Actions, 3, "7 actions in total: create plus 3 issue/transfer pairs")
	s.Nil(rest.NextToken)

	bobs, err := s.service.ListActions(s.ctx, dto.ListActionsParams{Limit: 20, Account: "bob"})
	s.Require().NoError(err)
	s.Len(bobs.Actions, 6, "issues name bob as the receiver, transfers as sender's counterparty")
}

func (s *LedgerServiceTestSuite) TestReads_UnknownKinds() {
	_, err := s.service.GetTokenStat(s.ctx, "TOK")
	s.ErrorIs(err, apperrors.ErrUnknownSymbol)

	_, err = s.service.GetBalance(s.ctx, "bob", "TOK")
	s.ErrorIs(err, apperrors.ErrNoBalance)

	_, err = s.service.AuditSupply(s.ctx, "TOK")
	s.ErrorIs(err, apperrors.ErrUnknownSymbol)
}

func (s *LedgerServiceTestSuite) TestListTokenStatsAndBalances() {
	s.createTOK()
	_, err := s.service.CreateToken(s.ctx, "bob", s.amt("50.00 ABC"), ledgerOwner)
	s.Require().NoError(err)
	_, err = s.service.Issue(s.ctx, "bob", s.amt("5.00 ABC"), "", true, "bob")
	s.Require().NoError(err)
	_, err = s.service.Issue(s.ctx, "bob", s.amt("1.0000 TOK"), "", true, "alice")
	s.Require().NoError(err)

	stats, err := s.service.ListTokenStats(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(stats, 2)
	s.Equal("ABC", stats[0].Symbol().Code)
	s.Equal("TOK", stats[1].Symbol().Code)

	balances, err := s.service.ListBalances(s.ctx, "bob")
	s.Require().NoError(err)
	s.Require().Len(balances, 2)
	s.Equal("5.00 ABC", balances[0].Balance.String())
	s.Equal("1.0000 TOK", balances[1].Balance.String())
}

func (s *LedgerServiceTestSuite) TestConcurrentTransfersConserveSupply() {
	s.createTOK()
	_, err := s.service.Issue(s.ctx, "alice", s.amt("1000.0000 TOK"), "", true, "alice")
	s.Require().NoError(err)
	_, err = s.service.Signup(s.ctx, "bob", s.amt("0.0000 TOK"), "bob")
	s.Require().NoError(err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = s.service.Transfer(s.ctx, "alice", "bob", s.amt("1.0000 TOK"), "", false, "alice")
		}()
		go func() {
			defer wg.Done()
			_, _ = s.service.Transfer(s.ctx, "bob", "alice", s.amt("0.5000 TOK"), "", true, "bob")
		}()
	}
	wg.Wait()

	s.Equal(int64(10_000_000), s.supply())
	s.assertConserved()
}

// --- authorizer ---

func TestActionAuthorizer(t *testing.T) {
	authz := services.NewActionAuthorizer()
	ctx := services.WithAuthority(context.Background(), "alice")

	if err := authz.RequireAuth(ctx, "alice"); err != nil {
		t.Fatalf("alice signed the action: %v", err)
	}
	err := authz.RequireAuth(ctx, "bob")
	if err == nil || apperrors.KindOf(err) != "Unauthorized" {
		t.Fatalf("expected Unauthorized, got %v", err)
	}
	if err := authz.RequireAuth(context.Background(), "alice"); err == nil {
		t.Fatal("no authority in context must be rejected")
	}
}
