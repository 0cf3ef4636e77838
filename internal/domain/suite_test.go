package domain

import (
	"context"
	"testing"
	"time"

	"github.com/questx-lab/rewardengine/internal/domain/abuse"
	"github.com/questx-lab/rewardengine/internal/entity"
	"github.com/questx-lab/rewardengine/internal/repository"
	"github.com/questx-lab/rewardengine/pkg/testutil"
	"github.com/questx-lab/rewardengine/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type allowAllGuard struct{}

func (allowAllGuard) CheckAndRecord(context.Context, string, string, string) abuse.Decision {
	return abuse.Decision{Allowed: true}
}

type suite struct {
	ctx       context.Context
	now       time.Time
	publisher *testutil.MockPublisher

	accountRepo     repository.AccountRepository
	ledgerRepo      repository.LedgerRepository
	prizeRepo       repository.PrizeRepository
	drawHistoryRepo repository.DrawHistoryRepository

	ledgerDomain     *ledgerDomain
	ticketDomain     *ticketDomain
	dailyClaimDomain *dailyClaimDomain
	drawDomain       *drawDomain
	claimDomain      *claimDomain
	prizeDomain      *prizeDomain
	accountDomain    *accountDomain
	abuseDomain      *abuseDomain
}

// newSuite creates a database with fixtures and every domain on top of it.
// The clock of the domains is frozen at s.now, a nil guard lets every action
// through.
func newSuite(t *testing.T, guard abuse.Guard) *suite {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	s := &suite{
		ctx:             ctx,
		now:             time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		publisher:       &testutil.MockPublisher{},
		accountRepo:     repository.NewAccountRepository(),
		ledgerRepo:      repository.NewLedgerRepository(testutil.LedgerNode),
		prizeRepo:       repository.NewPrizeRepository(),
		drawHistoryRepo: repository.NewDrawHistoryRepository(),
	}

	if guard == nil {
		guard = allowAllGuard{}
	}

	clock := func() time.Time { return s.now }

	s.ledgerDomain = NewLedgerDomain(s.accountRepo, s.ledgerRepo)
	s.ticketDomain = NewTicketDomain(s.accountRepo, s.ledgerRepo, guard)
	s.dailyClaimDomain = NewDailyClaimDomain(s.accountRepo, s.ledgerRepo, guard)
	s.dailyClaimDomain.now = clock
	s.drawDomain = NewDrawDomain(s.accountRepo, s.ledgerRepo, s.prizeRepo, s.drawHistoryRepo,
		s.ticketDomain, guard, s.publisher)
	s.drawDomain.now = clock
	s.claimDomain = NewClaimDomain(s.accountRepo, s.prizeRepo, s.drawHistoryRepo, guard, s.publisher)
	s.claimDomain.now = clock
	s.prizeDomain = NewPrizeDomain(s.prizeRepo)
	s.accountDomain = NewAccountDomain(s.accountRepo)
	s.abuseDomain = NewAbuseDomain(s.accountRepo, guard)

	return s
}

func (s *suite) userCtx(userID string) context.Context {
	return xcontext.WithRequestUserID(s.ctx, userID)
}

func (s *suite) account(t *testing.T, userID string) *entity.Account {
	account, err := s.accountRepo.GetByID(s.ctx, userID)
	require.NoError(t, err)
	return account
}

// requireConserved checks that the cached balances equal the ledger sums.
func (s *suite) requireConserved(t *testing.T, userID string) {
	account := s.account(t, userID)

	coinSum, err := s.ledgerRepo.Sum(s.ctx, userID, entity.CurrencyCoin)
	require.NoError(t, err)
	require.Equal(t, account.CoinBalance, coinSum)

	ticketSum, err := s.ledgerRepo.Sum(s.ctx, userID, entity.CurrencyTicket)
	require.NoError(t, err)
	require.Equal(t, account.TicketCount, ticketSum)

	require.GreaterOrEqual(t, account.CoinBalance, int64(0))
	require.GreaterOrEqual(t, account.TicketCount, int64(0))
}
