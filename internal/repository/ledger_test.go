package repository_test

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/questx-lab/rewardengine/internal/entity"
	"github.com/questx-lab/rewardengine/internal/repository"
	"github.com/questx-lab/rewardengine/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_ledgerRepository(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewLedgerRepository(testutil.LedgerNode)

	entries := []*entity.LedgerEntry{
		{UserID: "user1", Currency: entity.CurrencyCoin, Amount: 100, Kind: entity.LedgerDailyClaim},
		{UserID: "user1", Currency: entity.CurrencyCoin, Amount: -30, Kind: entity.LedgerTicketPurchase},
		{UserID: "user1", Currency: entity.CurrencyTicket, Amount: 3, Kind: entity.LedgerTicketPurchase},
		{UserID: "user2", Currency: entity.CurrencyCoin, Amount: 7, Kind: entity.LedgerAdminAdjust},
	}
	for _, e := range entries {
		require.NoError(t, repo.Create(ctx, e))
		require.NotZero(t, e.ID)
	}

	coins, err := repo.Sum(ctx, "user1", entity.CurrencyCoin)
	require.NoError(t, err)
	require.Equal(t, int64(70), coins)

	tickets, err := repo.Sum(ctx, "user1", entity.CurrencyTicket)
	require.NoError(t, err)
	require.Equal(t, int64(3), tickets)

	empty, err := repo.Sum(ctx, "nobody", entity.CurrencyCoin)
	require.NoError(t, err)
	require.Zero(t, empty)

	// Newest first.
	list, err := repo.GetByUserID(ctx, "user1", 0, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, entries[2].ID, list[0].ID)
	require.Equal(t, entries[1].ID, list[1].ID)

	list, err = repo.GetByUserID(ctx, "user1", 2, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, entries[0].ID, list[0].ID)
}

func Test_ledgerRepository_UniqueIDs(t *testing.T) {
	ctx := testutil.MockContext()

	// The fixtures and the repositories of a process share one node.
	testutil.CreateFixtureDb(ctx)
	first := repository.NewLedgerRepository(testutil.LedgerNode)
	second := repository.NewLedgerRepository(testutil.LedgerNode)

	// Another instance runs with its own node id.
	otherNode, err := snowflake.NewNode(testutil.LedgerNode.Generate().Node() + 1)
	require.NoError(t, err)
	other := repository.NewLedgerRepository(otherNode)

	seen := map[int64]bool{}
	for i := 0; i < 200; i++ {
		for _, repo := range []repository.LedgerRepository{first, second, other} {
			entry := &entity.LedgerEntry{
				UserID:   "user1",
				Currency: entity.CurrencyCoin,
				Amount:   1,
				Kind:     entity.LedgerAdminAdjust,
			}
			require.NoError(t, repo.Create(ctx, entry))
			require.False(t, seen[entry.ID], "duplicated id %d", entry.ID)
			seen[entry.ID] = true
		}
	}

	sum, err := first.Sum(ctx, "user1", entity.CurrencyCoin)
	require.NoError(t, err)
	require.Equal(t, testutil.User1.CoinBalance+600, sum)
}
