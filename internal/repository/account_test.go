package repository_test

import (
	"testing"
	"time"

	"github.com/questx-lab/rewardengine/internal/entity"
	"github.com/questx-lab/rewardengine/internal/repository"
	"github.com/questx-lab/rewardengine/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_accountRepository_IncreaseBalance(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewAccountRepository()

	require.NoError(t, repo.IncreaseBalance(ctx, testutil.User1.UserID, entity.CurrencyCoin, -400))
	require.NoError(t, repo.IncreaseBalance(ctx, testutil.User1.UserID, entity.CurrencyTicket, 3))

	account, err := repo.GetByID(ctx, testutil.User1.UserID)
	require.NoError(t, err)
	require.Equal(t, int64(600), account.CoinBalance)
	require.Equal(t, int64(5), account.TicketCount)

	// The balance must never become negative.
	err = repo.IncreaseBalance(ctx, testutil.User1.UserID, entity.CurrencyCoin, -601)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Banned accounts cannot move funds.
	err = repo.IncreaseBalance(ctx, testutil.User3.UserID, entity.CurrencyCoin, 10)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.IncreaseBalance(ctx, "unknown", entity.CurrencyCoin, 10)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	account, err = repo.GetByID(ctx, testutil.User1.UserID)
	require.NoError(t, err)
	require.Equal(t, int64(600), account.CoinBalance)
}

func Test_accountRepository_ClaimDaily(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewAccountRepository()

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	window := 24 * time.Hour

	require.NoError(t, repo.ClaimDaily(ctx, testutil.User2.UserID, now, window))
	require.ErrorIs(t, repo.ClaimDaily(ctx, testutil.User2.UserID, now.Add(time.Hour), window), gorm.ErrRecordNotFound)
	require.NoError(t, repo.ClaimDaily(ctx, testutil.User2.UserID, now.Add(window), window))

	// The free spin has its own cooldown.
	require.NoError(t, repo.UseFreeSpin(ctx, testutil.User2.UserID, now, window))

	account, err := repo.GetByID(ctx, testutil.User2.UserID)
	require.NoError(t, err)
	require.True(t, account.LastDailyClaimAt.Valid)
	require.True(t, account.LastDailyClaimAt.Time.Equal(now.Add(window)))
	require.True(t, account.LastFreeSpinAt.Time.Equal(now))

	require.ErrorIs(t, repo.ClaimDaily(ctx, testutil.User3.UserID, now, window), gorm.ErrRecordNotFound)
}

func Test_accountRepository_Ban(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewAccountRepository()

	banned, err := repo.Ban(ctx, testutil.User1.UserID, "spam")
	require.NoError(t, err)
	require.True(t, banned)

	banned, err = repo.Ban(ctx, testutil.User1.UserID, "spam again")
	require.NoError(t, err)
	require.False(t, banned)

	account, err := repo.GetByID(ctx, testutil.User1.UserID)
	require.NoError(t, err)
	require.True(t, account.Banned)
	require.Equal(t, "spam", account.BanReason)

	// Banning an unknown user creates its account.
	banned, err = repo.Ban(ctx, "newcomer", "keyword")
	require.NoError(t, err)
	require.True(t, banned)

	require.NoError(t, repo.Unban(ctx, testutil.User1.UserID))
	account, err = repo.GetByID(ctx, testutil.User1.UserID)
	require.NoError(t, err)
	require.False(t, account.Banned)
	require.Empty(t, account.BanReason)

	require.ErrorIs(t, repo.Unban(ctx, "unknown"), gorm.ErrRecordNotFound)
}
